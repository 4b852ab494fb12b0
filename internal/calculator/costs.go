package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/mokkicalc/internal/models"
)

// RecomputeAll runs both passes in dependency order.
func RecomputeAll(t *models.Trip) {
	RecomputeAttendance(t)
	RecomputeCosts(t)
}

// RecomputeCosts derives the trip totals, the day rates and what each person owes.
// It reads Day.AttendanceCounts, so RecomputeAttendance must have run first.
//
// Algorithm:
//   - Totals: every expense price is split evenly over its selected meals
//   - Day rates: each meal subtotal is spread evenly over the days serving that
//     meal; single-day expenses go to their day only
//   - Person cost: each day's meal rate is split evenly among the people
//     attending that meal on that day
func RecomputeCosts(t *models.Trip) {
	t.Totals = ExpenseTotals(t.Expenses)
	distributeDayRates(t)
	distributePersonCosts(t)
}

// ExpenseTotals reduces expenses to the overall total and one subtotal per meal.
// An expense with no meal selected counts towards the overall total only.
func ExpenseTotals(expenses []models.Expense) models.Totals {
	var totals models.Totals
	for _, e := range expenses {
		totals.Total = totals.Total.Add(e.Price)
		share, ok := mealShare(e)
		if !ok {
			continue
		}
		for _, meal := range e.Servings.Meals() {
			totals.Meals.Add(meal, share)
		}
	}
	return totals
}

// mealShare is the part of the price allocated to each selected meal.
func mealShare(e models.Expense) (decimal.Decimal, bool) {
	k := e.Servings.Count()
	if k == 0 {
		return decimal.Zero, false
	}
	return e.Price.Div(decimal.NewFromInt(int64(k))), true
}

// ServingDays counts, per meal, the days that serve it.
func ServingDays(days []models.Day) models.MealCounts {
	var counts models.MealCounts
	for _, d := range days {
		for _, meal := range d.Servings.Meals() {
			counts.Set(meal, counts.Get(meal)+1)
		}
	}
	return counts
}

func distributeDayRates(t *models.Trip) {
	var spread models.MealAmounts
	targeted := make(map[string]*models.MealAmounts)

	for _, e := range t.Expenses {
		share, ok := mealShare(e)
		if !ok {
			continue
		}
		dest := &spread
		if e.DayID != "" && t.DayIndex(e.DayID) >= 0 {
			if targeted[e.DayID] == nil {
				targeted[e.DayID] = &models.MealAmounts{}
			}
			dest = targeted[e.DayID]
		}
		for _, meal := range e.Servings.Meals() {
			dest.Add(meal, share)
		}
	}

	divisors := ServingDays(t.Days)
	for i := range t.Days {
		day := &t.Days[i]
		var rates models.MealAmounts
		for _, meal := range models.AllMeals {
			if !day.Servings.Has(meal) {
				continue
			}
			if n := divisors.Get(meal); n > 0 {
				rates.Set(meal, spread.Get(meal).Div(decimal.NewFromInt(int64(n))))
			}
			if extra := targeted[day.ID]; extra != nil {
				rates.Add(meal, extra.Get(meal))
			}
		}
		day.Rates = rates
		day.TotalRate = rates.Sum()
	}
}

func distributePersonCosts(t *models.Trip) {
	for p := range t.People {
		person := &t.People[p]
		cost := decimal.Zero
		for i, a := range person.Attendance {
			if !a.Present {
				continue
			}
			for _, meal := range a.Servings.Meals() {
				cost = cost.Add(PerHead(t.Days[i], meal))
			}
		}
		person.Cost = cost
	}
}

// PerHead is the share of a day's meal rate owed by each attendee.
// Nobody attending means nobody is charged.
func PerHead(d models.Day, meal models.Meal) decimal.Decimal {
	n := d.AttendanceCounts.Get(meal)
	if n == 0 {
		return decimal.Zero
	}
	return d.Rates.Get(meal).Div(decimal.NewFromInt(int64(n)))
}
