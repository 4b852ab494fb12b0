// Package export renders a recomputed trip as an XLSX workbook or a PDF breakdown.
package export

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/mokkicalc/internal/models"
)

// Format names an export file type.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat accepts "xlsx" or "pdf" in any case.
func ParseFormat(s string) (Format, bool) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatXLSX, FormatPDF:
		return f, true
	}
	return "", false
}

// Money renders an amount with two decimals and a euro sign.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2) + " €"
}

// mealCells returns one value per meal, in models.AllMeals order.
func mealCells(a models.MealAmounts) []any {
	cells := make([]any, 0, len(models.AllMeals))
	for _, m := range models.AllMeals {
		cells = append(cells, a.Get(m).InexactFloat64())
	}
	return cells
}

func mealHeaders(prefix ...string) []any {
	headers := make([]any, 0, len(prefix)+len(models.AllMeals))
	for _, p := range prefix {
		headers = append(headers, p)
	}
	for _, m := range models.AllMeals {
		headers = append(headers, titleCase(m.String()))
	}
	return headers
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
