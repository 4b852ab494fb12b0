// Package trip owns a trip's mutable state between recomputations.
//
// A Session applies user edits to a models.Trip, queues removals by index and
// applies them as a batch, and tracks which derived values are stale. Call
// Recompute before reading any derived field.
package trip

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/mokkicalc/internal/calculator"
	"github.com/mmynk/mokkicalc/internal/models"
)

var (
	ErrEmptyName       = errors.New("name must not be empty")
	ErrInvalidPrice    = errors.New("price must be positive")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrUnknownDay      = errors.New("unknown day")
	ErrMissingField    = errors.New("missing field")
)

// Session is not safe for concurrent use.
type Session struct {
	trip *models.Trip

	daysToRemove     []int
	peopleToRemove   []int
	expensesToRemove []int

	attendanceStale bool
	costsStale      bool
}

// NewSession wraps t. Derived values are treated as stale until the first Recompute.
func NewSession(t *models.Trip) *Session {
	return &Session{trip: t, attendanceStale: true, costsStale: true}
}

// Trip returns the underlying state.
func (s *Session) Trip() *models.Trip {
	return s.trip
}

// Stale reports whether Recompute has work to do.
func (s *Session) Stale() bool {
	return s.attendanceStale || s.costsStale || s.pendingRemovals()
}

func (s *Session) pendingRemovals() bool {
	return len(s.daysToRemove) > 0 || len(s.peopleToRemove) > 0 || len(s.expensesToRemove) > 0
}

func (s *Session) markAttendance() {
	s.attendanceStale = true
	s.costsStale = true
}

func (s *Session) markCosts() {
	s.costsStale = true
}

// AddDay appends a day serving every meal and a matching absent attendance to every person.
// An empty name defaults to the day's 1-based position.
func (s *Session) AddDay(name string) models.Day {
	name = strings.TrimSpace(name)
	if name == "" {
		name = strconv.Itoa(len(s.trip.Days) + 1)
	}
	day := models.Day{
		ID:       uuid.New().String(),
		Name:     name,
		Servings: models.AllServings(),
	}
	s.trip.Days = append(s.trip.Days, day)
	for i := range s.trip.People {
		s.trip.People[i].Attendance = append(s.trip.People[i].Attendance, newAttendance(day.ID))
	}
	s.markAttendance()
	return day
}

func newAttendance(dayID string) models.Attendance {
	return models.Attendance{DayID: dayID, Servings: models.AllServings()}
}

// RenameDay changes a day's label. Attendance refers to days by ID and is unaffected.
func (s *Session) RenameDay(index int, name string) error {
	if err := checkIndex(index, len(s.trip.Days), "day"); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	s.trip.Days[index].Name = name
	return nil
}

// RemoveDay queues the day at index for removal.
func (s *Session) RemoveDay(index int) error {
	if err := checkIndex(index, len(s.trip.Days), "day"); err != nil {
		return err
	}
	s.daysToRemove = append(s.daysToRemove, index)
	return nil
}

// RemoveLastDay queues the last day that is not already queued, so repeated
// calls within one batch remove consecutive trailing days.
func (s *Session) RemoveLastDay() error {
	for i := len(s.trip.Days) - 1; i >= 0; i-- {
		if !slices.Contains(s.daysToRemove, i) {
			return s.RemoveDay(i)
		}
	}
	return fmt.Errorf("%w: no day left to remove", ErrIndexOutOfRange)
}

// AddPerson appends a person who is absent on every existing day.
func (s *Session) AddPerson(name string) (models.Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Person{}, ErrEmptyName
	}
	p := models.Person{
		ID:         uuid.New().String(),
		Name:       name,
		Attendance: make([]models.Attendance, 0, len(s.trip.Days)),
	}
	for _, d := range s.trip.Days {
		p.Attendance = append(p.Attendance, newAttendance(d.ID))
	}
	s.trip.People = append(s.trip.People, p)
	s.markAttendance()
	return p, nil
}

// RemovePerson queues the person at index for removal.
func (s *Session) RemovePerson(index int) error {
	if err := checkIndex(index, len(s.trip.People), "person"); err != nil {
		return err
	}
	s.peopleToRemove = append(s.peopleToRemove, index)
	return nil
}

// AddExpense appends an expense with no meal selected yet.
func (s *Session) AddExpense(name string, price decimal.Decimal) (models.Expense, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Expense{}, ErrEmptyName
	}
	if !price.IsPositive() {
		return models.Expense{}, ErrInvalidPrice
	}
	e := models.Expense{
		ID:    uuid.New().String(),
		Name:  name,
		Price: price,
	}
	s.trip.Expenses = append(s.trip.Expenses, e)
	s.markCosts()
	return e, nil
}

// RemoveExpense queues the expense at index for removal.
func (s *Session) RemoveExpense(index int) error {
	if err := checkIndex(index, len(s.trip.Expenses), "expense"); err != nil {
		return err
	}
	s.expensesToRemove = append(s.expensesToRemove, index)
	return nil
}

// SetDayServing switches a meal on or off for a day.
func (s *Session) SetDayServing(day int, meal models.Meal, on bool) error {
	if err := checkIndex(day, len(s.trip.Days), "day"); err != nil {
		return err
	}
	s.trip.Days[day].Servings.Set(meal, on)
	s.markAttendance()
	return nil
}

// SetDayServings replaces every serving flag of a day.
func (s *Session) SetDayServings(day int, servings models.Servings) error {
	if err := checkIndex(day, len(s.trip.Days), "day"); err != nil {
		return err
	}
	s.trip.Days[day].Servings = servings
	s.markAttendance()
	return nil
}

// SetPresent marks whether a person is there on a day.
func (s *Session) SetPresent(person, day int, present bool) error {
	a, err := s.attendance(person, day)
	if err != nil {
		return err
	}
	a.Present = present
	s.markAttendance()
	return nil
}

// SetAttendanceServing selects whether a person eats a meal on a day.
func (s *Session) SetAttendanceServing(person, day int, meal models.Meal, on bool) error {
	a, err := s.attendance(person, day)
	if err != nil {
		return err
	}
	a.Servings.Set(meal, on)
	s.markAttendance()
	return nil
}

// SetAttendanceServings replaces the meals a person eats on a day.
func (s *Session) SetAttendanceServings(person, day int, servings models.Servings) error {
	a, err := s.attendance(person, day)
	if err != nil {
		return err
	}
	a.Servings = servings
	s.markAttendance()
	return nil
}

func (s *Session) attendance(person, day int) (*models.Attendance, error) {
	if err := checkIndex(person, len(s.trip.People), "person"); err != nil {
		return nil, err
	}
	if err := checkIndex(day, len(s.trip.Days), "day"); err != nil {
		return nil, err
	}
	return &s.trip.People[person].Attendance[day], nil
}

// SetExpenseServing selects whether an expense is divided across a meal.
func (s *Session) SetExpenseServing(expense int, meal models.Meal, on bool) error {
	if err := checkIndex(expense, len(s.trip.Expenses), "expense"); err != nil {
		return err
	}
	s.trip.Expenses[expense].Servings.Set(meal, on)
	s.markCosts()
	return nil
}

// SetExpenseServings replaces the meals an expense is divided across.
func (s *Session) SetExpenseServings(expense int, servings models.Servings) error {
	if err := checkIndex(expense, len(s.trip.Expenses), "expense"); err != nil {
		return err
	}
	s.trip.Expenses[expense].Servings = servings
	s.markCosts()
	return nil
}

// SetExpensePrice updates the price. Zero is allowed here so an expense can be
// cleared without removing it.
func (s *Session) SetExpensePrice(expense int, price decimal.Decimal) error {
	if err := checkIndex(expense, len(s.trip.Expenses), "expense"); err != nil {
		return err
	}
	if price.IsNegative() {
		return ErrInvalidPrice
	}
	s.trip.Expenses[expense].Price = price
	s.markCosts()
	return nil
}

// SetExpenseDay restricts an expense to one day. An empty dayID spreads it over all days.
func (s *Session) SetExpenseDay(expense int, dayID string) error {
	if err := checkIndex(expense, len(s.trip.Expenses), "expense"); err != nil {
		return err
	}
	if dayID != "" && s.trip.DayIndex(dayID) < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownDay, dayID)
	}
	s.trip.Expenses[expense].DayID = dayID
	s.markCosts()
	return nil
}

// Reset drops every expense, day and person, including queued removals.
func (s *Session) Reset() {
	s.trip.Expenses = nil
	s.trip.Days = nil
	s.trip.People = nil
	s.daysToRemove = nil
	s.peopleToRemove = nil
	s.expensesToRemove = nil
	s.markAttendance()
}

// ApplyRemovals removes every queued index, highest first so earlier indices stay valid.
func (s *Session) ApplyRemovals() {
	if !s.pendingRemovals() {
		return
	}

	for _, idx := range descending(s.expensesToRemove) {
		s.trip.Expenses = slices.Delete(s.trip.Expenses, idx, idx+1)
	}
	for _, idx := range descending(s.peopleToRemove) {
		s.trip.People = slices.Delete(s.trip.People, idx, idx+1)
	}
	for _, idx := range descending(s.daysToRemove) {
		removed := s.trip.Days[idx].ID
		s.trip.Days = slices.Delete(s.trip.Days, idx, idx+1)
		for p := range s.trip.People {
			s.trip.People[p].Attendance = slices.Delete(s.trip.People[p].Attendance, idx, idx+1)
		}
		for e := range s.trip.Expenses {
			if s.trip.Expenses[e].DayID == removed {
				s.trip.Expenses[e].DayID = ""
			}
		}
	}

	s.expensesToRemove = nil
	s.peopleToRemove = nil
	s.daysToRemove = nil
	s.markAttendance()
}

// Recompute applies queued removals and refreshes every derived value if anything
// changed. Both passes always run together. It reports whether work was done.
func (s *Session) Recompute() bool {
	s.ApplyRemovals()
	if !s.attendanceStale && !s.costsStale {
		return false
	}
	calculator.RecomputeAll(s.trip)
	s.attendanceStale = false
	s.costsStale = false
	return true
}

// Summary recomputes if needed and summarises coverage.
func (s *Session) Summary() calculator.Summary {
	s.Recompute()
	return calculator.Summarize(s.trip)
}

func checkIndex(index, n int, what string) error {
	if index < 0 || index >= n {
		return fmt.Errorf("%w: %s %d (have %d)", ErrIndexOutOfRange, what, index, n)
	}
	return nil
}

// descending returns the distinct indices, largest first.
func descending(indices []int) []int {
	out := slices.Clone(indices)
	slices.Sort(out)
	out = slices.Compact(out)
	slices.Reverse(out)
	return out
}
