package export

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mmynk/mokkicalc/internal/calculator"
	"github.com/mmynk/mokkicalc/internal/models"
	"github.com/mmynk/mokkicalc/internal/trip"
)

// weekend is two days, Alice and Bob present on both, groceries for breakfast
// and lunch, and a dinner nobody attends.
func weekend(t *testing.T) (*models.Trip, calculator.Summary) {
	t.Helper()
	s := trip.NewSession(&models.Trip{Name: "Cottage weekend"})
	s.AddDay("Friday")
	s.AddDay("Saturday")
	for _, name := range []string{"Alice", "Bob"} {
		_, err := s.AddPerson(name)
		require.NoError(t, err)
	}
	_, err := s.AddExpense("Groceries", decimal.NewFromInt(100))
	require.NoError(t, err)
	require.NoError(t, s.SetExpenseServings(0, models.Servings{Breakfast: true, Lunch: true}))
	_, err = s.AddExpense("Steak", decimal.NewFromInt(30))
	require.NoError(t, err)
	require.NoError(t, s.SetExpenseServings(1, models.Servings{Dinner: true}))
	for p := 0; p < 2; p++ {
		for d := 0; d < 2; d++ {
			require.NoError(t, s.SetPresent(p, d, true))
			require.NoError(t, s.SetAttendanceServing(p, d, models.Dinner, false))
		}
	}
	summary := s.Summary()
	return s.Trip(), summary
}

func TestParseFormat(t *testing.T) {
	f, ok := ParseFormat(" XLSX ")
	assert.True(t, ok)
	assert.Equal(t, FormatXLSX, f)

	f, ok = ParseFormat("pdf")
	assert.True(t, ok)
	assert.Equal(t, FormatPDF, f)

	_, ok = ParseFormat("csv")
	assert.False(t, ok)
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "12.50 €", Money(decimal.RequireFromString("12.5")))
	assert.Equal(t, "33.33 €", Money(decimal.NewFromInt(100).Div(decimal.NewFromInt(3))))
	assert.Equal(t, "0.00 €", Money(decimal.Zero))
}

func TestWriteXLSX(t *testing.T) {
	tr, summary := weekend(t)

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, tr, summary))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetExpenses, SheetDays, SheetPeople}, f.GetSheetList())

	summaryRows, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	assert.Equal(t, []string{"Trip", "Cottage weekend"}, summaryRows[0])
	assert.Equal(t, []string{"Total", "130"}, summaryRows[1])
	assert.Equal(t, []string{"Balanced", "no"}, summaryRows[4])
	assert.Contains(t, summaryRows, []string{"Warnings"})

	expenses, err := f.GetRows(SheetExpenses)
	require.NoError(t, err)
	require.Len(t, expenses, 3)
	assert.Equal(t, []string{"Groceries", "100", "breakfast,lunch", "all"}, expenses[1])

	days, err := f.GetRows(SheetDays)
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, "Friday", days[1][0])
	assert.Equal(t, "Breakfast", days[0][2])

	people, err := f.GetRows(SheetPeople)
	require.NoError(t, err)
	require.Len(t, people, 3)
	assert.Equal(t, []string{"Person", "Cost", "Friday", "Saturday"}, people[0])
	assert.Equal(t, []string{"Alice", "50", "breakfast,lunch,snacks", "breakfast,lunch,snacks"}, people[1])
}

func TestRenderPDF(t *testing.T) {
	tr, summary := weekend(t)

	data, err := RenderPDF(tr, summary)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output is a PDF document")

	empty, err := RenderPDF(&models.Trip{Name: "Empty"}, calculator.Summary{Balanced: true})
	require.NoError(t, err)
	assert.NotEmpty(t, empty)
}
