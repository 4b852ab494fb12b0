package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mmynk/mokkicalc/internal/calculator"
	"github.com/mmynk/mokkicalc/internal/export"
	"github.com/mmynk/mokkicalc/internal/models"
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(silentStyle).
		Headers(headers...)
}

// printTrip writes the full breakdown of a recomputed trip.
func printTrip(w io.Writer, t *models.Trip, summary calculator.Summary) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Bold(t.Name), Silent("("+t.ID+")"))

	if len(t.Expenses) > 0 {
		expenses := newTable("#", "Expense", "Price", "Meals", "Day")
		for i, e := range t.Expenses {
			day := "all"
			if idx := t.DayIndex(e.DayID); idx >= 0 {
				day = t.Days[idx].Name
			}
			expenses.Row(strconv.Itoa(i+1), e.Name, export.Money(e.Price), e.Servings.String(), day)
		}
		_, _ = fmt.Fprintln(w, expenses.String())
	}

	if len(t.Days) > 0 {
		headers := []string{"#", "Day"}
		for _, m := range models.AllMeals {
			headers = append(headers, m.String())
		}
		headers = append(headers, "total")
		days := newTable(headers...)
		for i, d := range t.Days {
			row := []string{strconv.Itoa(i + 1), d.Name}
			for _, m := range models.AllMeals {
				if !d.Servings.Has(m) {
					row = append(row, "-")
					continue
				}
				row = append(row, fmt.Sprintf("%s ×%d", d.Rates.Get(m).StringFixed(2), d.AttendanceCounts.Get(m)))
			}
			row = append(row, export.Money(d.TotalRate))
			days.Row(row...)
		}
		_, _ = fmt.Fprintln(w, days.String())
	}

	if len(t.People) > 0 {
		headers := []string{"#", "Person"}
		for _, d := range t.Days {
			headers = append(headers, d.Name)
		}
		headers = append(headers, "owes")
		people := newTable(headers...)
		for i, p := range t.People {
			row := []string{strconv.Itoa(i + 1), p.Name}
			for _, a := range p.Attendance {
				if a.Present {
					row = append(row, a.Servings.String())
				} else {
					row = append(row, "-")
				}
			}
			row = append(row, export.Money(p.Cost))
			people.Row(row...)
		}
		_, _ = fmt.Fprintln(w, people.String())
	}

	printSummary(w, summary)
}

func printSummary(w io.Writer, s calculator.Summary) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Text("total:"), Primary(export.Money(s.Total)))
	if s.Balanced {
		_, _ = fmt.Fprintf(w, "%s\n", Info("every expense is covered"))
	} else {
		_, _ = fmt.Fprintf(w, "%s %s\n", Warning("unallocated:"), Warning(export.Money(s.Unallocated)))
	}
	for _, warn := range s.Warnings {
		_, _ = fmt.Fprintf(w, "  %s %s\n", Warning("!"), warn.Message)
	}
}

// printTripList writes one line per trip.
func printTripList(w io.Writer, trips []*models.Trip) {
	if len(trips) == 0 {
		_, _ = fmt.Fprintln(w, Silent("no trips yet"))
		return
	}
	list := newTable("ID", "Name", "Days", "People", "Total", "Updated")
	for _, t := range trips {
		list.Row(
			shortID(t.ID),
			t.Name,
			strconv.Itoa(len(t.Days)),
			strconv.Itoa(len(t.People)),
			export.Money(t.Totals.Total),
			time.Unix(t.UpdatedAt, 0).Format("2006-01-02 15:04"),
		)
	}
	_, _ = fmt.Fprintln(w, list.String())
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
