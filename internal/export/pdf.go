package export

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/mmynk/mokkicalc/internal/calculator"
	"github.com/mmynk/mokkicalc/internal/models"
)

var (
	pdfHeaderColor  = props.Color{Red: 50, Green: 50, Blue: 50}
	pdfMutedColor   = props.Color{Red: 120, Green: 120, Blue: 120}
	pdfLineColor    = props.Color{Red: 200, Green: 200, Blue: 200}
	pdfWarningColor = props.Color{Red: 190, Green: 90, Blue: 0}
)

// RenderPDF lays out a one-document breakdown of the trip: totals, each day's
// rates and what every person owes. The trip must have been recomputed.
func RenderPDF(t *models.Trip, summary calculator.Summary) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	m.AddRow(14,
		text.NewCol(12, t.Name, props.Text{
			Style: fontstyle.Bold,
			Size:  16,
			Color: &pdfHeaderColor,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, fmt.Sprintf("%d days, %d people, %d expenses", len(t.Days), len(t.People), len(t.Expenses)), props.Text{
			Size:  11,
			Color: &pdfMutedColor,
		}),
	)
	if t.UpdatedAt != 0 {
		m.AddRow(6,
			text.NewCol(12, "Updated "+time.Unix(t.UpdatedAt, 0).Format("Jan 2, 2006 15:04"), props.Text{
				Size:  8,
				Color: &pdfMutedColor,
			}),
		)
	}
	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))
	m.AddRow(4)

	section(m, "Meals")
	for _, meal := range models.AllMeals {
		amountRow(m, "  "+titleCase(meal.String()), Money(t.Totals.Meals.Get(meal)), false)
	}
	m.AddRow(4)

	section(m, "Days")
	for _, d := range t.Days {
		amountRow(m, "  "+d.Name, Money(d.TotalRate), true)
		for _, meal := range d.Servings.Meals() {
			m.AddRow(5,
				text.NewCol(6, "    "+meal.String(), props.Text{Size: 8, Color: &pdfMutedColor}),
				text.NewCol(3, fmt.Sprintf("%d eating", d.AttendanceCounts.Get(meal)), props.Text{
					Size:  8,
					Align: align.Right,
					Color: &pdfMutedColor,
				}),
				text.NewCol(3, Money(d.Rates.Get(meal)), props.Text{
					Size:  8,
					Align: align.Right,
					Color: &pdfMutedColor,
				}),
			)
		}
	}
	m.AddRow(4)

	section(m, "People")
	for _, p := range t.People {
		amountRow(m, "  "+p.Name, Money(p.Cost), false)
	}

	if len(summary.Warnings) > 0 {
		m.AddRow(4)
		section(m, "Warnings")
		for _, w := range summary.Warnings {
			m.AddRow(6,
				text.NewCol(12, "  "+w.Message, props.Text{Size: 9, Color: &pdfWarningColor}),
			)
		}
	}

	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))
	amountTotal(m, "Total", Money(summary.Total))
	if !summary.Balanced {
		amountTotal(m, "Unallocated", Money(summary.Unallocated))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generating PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func section(m core.Maroto, title string) {
	m.AddRow(8,
		text.NewCol(12, title, props.Text{
			Style: fontstyle.Bold,
			Size:  11,
			Color: &pdfHeaderColor,
		}),
	)
}

func amountRow(m core.Maroto, label, amount string, bold bool) {
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	m.AddRow(6,
		text.NewCol(9, label, props.Text{Size: 9, Style: style}),
		text.NewCol(3, amount, props.Text{Size: 9, Style: style, Align: align.Right}),
	)
}

func amountTotal(m core.Maroto, label, amount string) {
	m.AddRow(10,
		text.NewCol(9, label, props.Text{
			Style: fontstyle.Bold,
			Size:  12,
			Color: &pdfHeaderColor,
		}),
		text.NewCol(3, amount, props.Text{
			Style: fontstyle.Bold,
			Size:  12,
			Align: align.Right,
			Color: &pdfHeaderColor,
		}),
	)
}
