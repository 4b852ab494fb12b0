package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Meal is one of the four servings an expense, day or attendance record can cover.
type Meal int

const (
	Breakfast Meal = iota
	Lunch
	Dinner
	Snacks
)

// AllMeals lists the meals in display order.
var AllMeals = [...]Meal{Breakfast, Lunch, Dinner, Snacks}

var mealNames = [...]string{"breakfast", "lunch", "dinner", "snacks"}

func (m Meal) String() string {
	if m < Breakfast || m > Snacks {
		return fmt.Sprintf("Meal(%d)", int(m))
	}
	return mealNames[m]
}

// ParseMeal accepts the lower-case meal name, ignoring surrounding space and case.
func ParseMeal(s string) (Meal, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range mealNames {
		if n == name {
			return Meal(i), nil
		}
	}
	return 0, fmt.Errorf("unknown meal %q", s)
}

// MarshalText encodes the meal by name so JSON commands read "breakfast" rather than 0.
func (m Meal) MarshalText() ([]byte, error) {
	if m < Breakfast || m > Snacks {
		return nil, fmt.Errorf("invalid meal %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *Meal) UnmarshalText(text []byte) error {
	parsed, err := ParseMeal(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Servings holds the four meal flags.
type Servings struct {
	Breakfast bool `json:"breakfast"`
	Lunch     bool `json:"lunch"`
	Dinner    bool `json:"dinner"`
	Snacks    bool `json:"snacks"`
}

// AllServings returns servings with every meal switched on.
func AllServings() Servings {
	return Servings{Breakfast: true, Lunch: true, Dinner: true, Snacks: true}
}

// ParseServings parses a comma separated meal list such as "breakfast,dinner".
// "all" and "none" are accepted as shorthands.
func ParseServings(s string) (Servings, error) {
	var out Servings
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return out, nil
	case "all":
		return AllServings(), nil
	}
	for _, part := range strings.Split(s, ",") {
		m, err := ParseMeal(part)
		if err != nil {
			return Servings{}, err
		}
		out.Set(m, true)
	}
	return out, nil
}

// Has reports whether the meal flag is set.
func (s Servings) Has(m Meal) bool {
	switch m {
	case Breakfast:
		return s.Breakfast
	case Lunch:
		return s.Lunch
	case Dinner:
		return s.Dinner
	case Snacks:
		return s.Snacks
	}
	return false
}

// Set switches a single meal flag.
func (s *Servings) Set(m Meal, on bool) {
	switch m {
	case Breakfast:
		s.Breakfast = on
	case Lunch:
		s.Lunch = on
	case Dinner:
		s.Dinner = on
	case Snacks:
		s.Snacks = on
	}
}

// Count returns the number of meals switched on.
func (s Servings) Count() int {
	n := 0
	for _, m := range AllMeals {
		if s.Has(m) {
			n++
		}
	}
	return n
}

// Meals returns the meals switched on, in display order.
func (s Servings) Meals() []Meal {
	var out []Meal
	for _, m := range AllMeals {
		if s.Has(m) {
			out = append(out, m)
		}
	}
	return out
}

func (s Servings) String() string {
	meals := s.Meals()
	if len(meals) == 0 {
		return "none"
	}
	names := make([]string, len(meals))
	for i, m := range meals {
		names[i] = m.String()
	}
	return strings.Join(names, ",")
}

// MealAmounts is one decimal amount per meal.
type MealAmounts struct {
	Breakfast decimal.Decimal `json:"breakfast"`
	Lunch     decimal.Decimal `json:"lunch"`
	Dinner    decimal.Decimal `json:"dinner"`
	Snacks    decimal.Decimal `json:"snacks"`
}

func (a MealAmounts) Get(m Meal) decimal.Decimal {
	switch m {
	case Breakfast:
		return a.Breakfast
	case Lunch:
		return a.Lunch
	case Dinner:
		return a.Dinner
	case Snacks:
		return a.Snacks
	}
	return decimal.Zero
}

func (a *MealAmounts) Set(m Meal, v decimal.Decimal) {
	switch m {
	case Breakfast:
		a.Breakfast = v
	case Lunch:
		a.Lunch = v
	case Dinner:
		a.Dinner = v
	case Snacks:
		a.Snacks = v
	}
}

// Add increments the amount of a single meal.
func (a *MealAmounts) Add(m Meal, v decimal.Decimal) {
	a.Set(m, a.Get(m).Add(v))
}

// Sum returns the total across all four meals.
func (a MealAmounts) Sum() decimal.Decimal {
	return a.Breakfast.Add(a.Lunch).Add(a.Dinner).Add(a.Snacks)
}

// MealCounts is one integer count per meal.
type MealCounts struct {
	Breakfast int `json:"breakfast"`
	Lunch     int `json:"lunch"`
	Dinner    int `json:"dinner"`
	Snacks    int `json:"snacks"`
}

func (c MealCounts) Get(m Meal) int {
	switch m {
	case Breakfast:
		return c.Breakfast
	case Lunch:
		return c.Lunch
	case Dinner:
		return c.Dinner
	case Snacks:
		return c.Snacks
	}
	return 0
}

func (c *MealCounts) Set(m Meal, v int) {
	switch m {
	case Breakfast:
		c.Breakfast = v
	case Lunch:
		c.Lunch = v
	case Dinner:
		c.Dinner = v
	case Snacks:
		c.Snacks = v
	}
}
