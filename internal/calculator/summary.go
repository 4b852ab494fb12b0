package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/mokkicalc/internal/models"
)

// WarningKind identifies a class of allocation problem.
type WarningKind string

const (
	WarnExpenseWithoutServings WarningKind = "expense_without_servings"
	WarnMealWithoutDays        WarningKind = "meal_without_days"
	WarnUnattendedMeal         WarningKind = "unattended_meal"
	WarnTargetDayNotServing    WarningKind = "target_day_not_serving"
	WarnUncovered              WarningKind = "uncovered"
)

// Warning describes money that cannot be allocated to anyone.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
	Expense string      `json:"expense,omitempty"`
	Day     string      `json:"day,omitempty"`
	Meal    string      `json:"meal,omitempty"`
}

// Summary compares what people owe against what was spent.
type Summary struct {
	Total       decimal.Decimal `json:"total"`
	Covered     decimal.Decimal `json:"covered"`     // sum of person costs
	Unallocated decimal.Decimal `json:"unallocated"` // Total - Covered
	Balanced    bool            `json:"balanced"`
	Warnings    []Warning       `json:"warnings,omitempty"`
}

// Tolerance below which a coverage gap is treated as rounding noise.
var Tolerance = decimal.New(1, -2)

// Summarize reports coverage and the reasons for any gap.
// The trip must have been recomputed.
func Summarize(t *models.Trip) Summary {
	covered := decimal.Zero
	for _, p := range t.People {
		covered = covered.Add(p.Cost)
	}
	unallocated := t.Totals.Total.Sub(covered)

	s := Summary{
		Total:       t.Totals.Total,
		Covered:     covered,
		Unallocated: unallocated,
		Balanced:    unallocated.Abs().LessThanOrEqual(Tolerance),
	}

	for _, e := range t.Expenses {
		if e.Servings.Count() == 0 {
			s.Warnings = append(s.Warnings, Warning{
				Kind:    WarnExpenseWithoutServings,
				Message: fmt.Sprintf("expense %q must be assigned to at least one serving", e.Name),
				Expense: e.Name,
			})
			continue
		}
		if e.DayID == "" {
			continue
		}
		idx := t.DayIndex(e.DayID)
		if idx < 0 {
			continue
		}
		day := t.Days[idx]
		for _, meal := range e.Servings.Meals() {
			if !day.Servings.Has(meal) {
				s.Warnings = append(s.Warnings, Warning{
					Kind:    WarnTargetDayNotServing,
					Message: fmt.Sprintf("expense %q targets day %s which does not serve %s", e.Name, day.Name, meal),
					Expense: e.Name,
					Day:     day.Name,
					Meal:    meal.String(),
				})
			}
		}
	}

	divisors := ServingDays(t.Days)
	for _, meal := range models.AllMeals {
		if divisors.Get(meal) == 0 && t.Totals.Meals.Get(meal).IsPositive() {
			s.Warnings = append(s.Warnings, Warning{
				Kind:    WarnMealWithoutDays,
				Message: fmt.Sprintf("no day serves %s", meal),
				Meal:    meal.String(),
			})
		}
	}

	for _, day := range t.Days {
		for _, meal := range day.Servings.Meals() {
			if day.Rates.Get(meal).IsPositive() && day.AttendanceCounts.Get(meal) == 0 {
				s.Warnings = append(s.Warnings, Warning{
					Kind:    WarnUnattendedMeal,
					Message: fmt.Sprintf("nobody attends %s on day %s", meal, day.Name),
					Day:     day.Name,
					Meal:    meal.String(),
				})
			}
		}
	}

	if unallocated.GreaterThan(Tolerance) {
		s.Warnings = append(s.Warnings, Warning{
			Kind:    WarnUncovered,
			Message: "all expenses are not covered yet",
		})
	}

	return s
}
