package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Expense is a shared purchase whose price is divided across the meals it covers.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// Name is the label shown to people, e.g. "Groceries".
	Name string `json:"name"`

	// Price is the full amount paid. Never negative.
	Price decimal.Decimal `json:"price"`

	// Servings selects the meals the price is split across, evenly.
	// New expenses start with no meal selected.
	Servings Servings `json:"servings"`

	// DayID restricts the expense to a single day. Empty means the
	// meal shares are spread over every day serving that meal.
	DayID string `json:"day_id,omitempty"`
}

// Day is one day of the trip and the meals served on it.
type Day struct {
	// ID is a stable identifier referenced by Attendance and Expense.DayID.
	ID string `json:"id"`

	// Name is the display label. Defaults to the 1-based day position.
	Name string `json:"name"`

	// Servings are the meals offered on this day.
	Servings Servings `json:"servings"`

	// Rates is the per-meal share of the meal totals allocated to this day. Derived.
	Rates MealAmounts `json:"rates"`

	// AttendanceCounts is the number of present people eating each meal. Derived.
	AttendanceCounts MealCounts `json:"attendance_counts"`

	// TotalRate is the sum of Rates. Derived.
	TotalRate decimal.Decimal `json:"total_rate"`
}

// Attendance records whether a person is there on a day and which meals they eat.
type Attendance struct {
	DayID    string   `json:"day_id"`
	Present  bool     `json:"present"`
	Servings Servings `json:"servings"`
}

// Person is a trip participant with one Attendance per day, in day order.
type Person struct {
	// ID is the unique identifier for the person (UUID format).
	ID string `json:"id"`

	// Name is the display name of the person.
	Name string `json:"name"`

	// Attendance is index-aligned with Trip.Days.
	Attendance []Attendance `json:"attendance"`

	// Cost is the total amount this person owes. Derived.
	Cost decimal.Decimal `json:"cost"`
}

// Totals are the expense reductions: the overall total and one subtotal per meal.
type Totals struct {
	Total decimal.Decimal `json:"total"`
	Meals MealAmounts     `json:"meals"`
}

// Trip is the complete state of one cost allocation: the inputs and every derived value.
// It is stored as a single blob.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string `json:"id"`

	// OwnerID is the user who created the trip. Empty for local CLI trips.
	OwnerID string `json:"owner_id,omitempty"`

	// Name is the human-readable name of the trip (e.g., "Cottage weekend").
	Name string `json:"name"`

	Expenses []Expense `json:"expenses"`
	Days     []Day     `json:"days"`
	People   []Person  `json:"people"`

	// Totals is derived from Expenses.
	Totals Totals `json:"totals"`

	// Version is bumped by storage on every successful update.
	Version int64 `json:"version"`

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// DayIndex returns the position of the day with the given id, or -1.
func (t *Trip) DayIndex(id string) int {
	for i := range t.Days {
		if t.Days[i].ID == id {
			return i
		}
	}
	return -1
}

// Validate checks that every person has exactly one attendance per day, in day order.
func (t *Trip) Validate() error {
	for _, p := range t.People {
		if len(p.Attendance) != len(t.Days) {
			return fmt.Errorf("person %q has %d attendance records for %d days", p.Name, len(p.Attendance), len(t.Days))
		}
		for i, a := range p.Attendance {
			if a.DayID != t.Days[i].ID {
				return fmt.Errorf("person %q attendance %d refers to day %q, want %q", p.Name, i, a.DayID, t.Days[i].ID)
			}
		}
	}
	return nil
}
