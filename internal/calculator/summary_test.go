package calculator

import (
	"testing"

	"github.com/mmynk/mokkicalc/internal/models"
)

func warningKinds(s Summary) map[WarningKind]int {
	kinds := make(map[WarningKind]int)
	for _, w := range s.Warnings {
		kinds[w.Kind]++
	}
	return kinds
}

func TestSummarize(t *testing.T) {
	t.Run("fully covered trip is balanced", func(t *testing.T) {
		trip := newTrip(models.AllServings())
		trip.Expenses = []models.Expense{
			{Name: "Groceries", Price: amount(100), Servings: models.Servings{Breakfast: true, Lunch: true}},
		}
		addPerson(trip, "Alice").Attendance[0].Present = true
		addPerson(trip, "Bob").Attendance[0].Present = true
		RecomputeAll(trip)

		s := Summarize(trip)

		assertAmount(t, "total", s.Total, 100)
		assertAmount(t, "covered", s.Covered, 100)
		assertAmount(t, "unallocated", s.Unallocated, 0)
		if !s.Balanced {
			t.Error("expected balanced summary")
		}
		if len(s.Warnings) != 0 {
			t.Errorf("expected no warnings, got %+v", s.Warnings)
		}
	})

	t.Run("uneven thirds still balance", func(t *testing.T) {
		trip := newTrip(models.AllServings())
		trip.Expenses = []models.Expense{
			{Name: "Dinner", Price: amount(100), Servings: models.Servings{Dinner: true}},
		}
		for _, name := range []string{"Alice", "Bob", "Carol"} {
			addPerson(trip, name).Attendance[0].Present = true
		}
		RecomputeAll(trip)

		s := Summarize(trip)
		if !s.Balanced {
			t.Errorf("expected balanced, unallocated = %s", s.Unallocated)
		}
	})

	t.Run("reports why money is unallocated", func(t *testing.T) {
		trip := newTrip(models.Servings{Lunch: true, Dinner: true}, models.Servings{Dinner: true})
		trip.Expenses = []models.Expense{
			{Name: "Firewood", Price: amount(15)},
			{Name: "Croissants", Price: amount(10), Servings: models.Servings{Breakfast: true}},
			{Name: "Cake", Price: amount(12), Servings: models.Servings{Lunch: true}, DayID: "d2"},
			{Name: "Stew", Price: amount(40), Servings: models.Servings{Dinner: true}},
		}
		p := addPerson(trip, "Alice")
		p.Attendance[0].Present = true
		RecomputeAll(trip)

		s := Summarize(trip)
		kinds := warningKinds(s)

		for _, kind := range []WarningKind{
			WarnExpenseWithoutServings,
			WarnMealWithoutDays,
			WarnTargetDayNotServing,
			WarnUnattendedMeal,
			WarnUncovered,
		} {
			if kinds[kind] != 1 {
				t.Errorf("warning %s count = %d, want 1 (all: %+v)", kind, kinds[kind], s.Warnings)
			}
		}
		if s.Balanced {
			t.Error("expected unbalanced summary")
		}
		// Alice eats day 1 dinner only: 40 / 2 days.
		assertAmount(t, "covered", s.Covered, 20)
		assertAmount(t, "unallocated", s.Unallocated, 57)
	})
}
