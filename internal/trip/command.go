package trip

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/mokkicalc/internal/models"
)

// Op names a mutation in its serialised form.
type Op string

const (
	OpAddDay               Op = "add_day"
	OpRemoveDay            Op = "remove_day"
	OpRenameDay            Op = "rename_day"
	OpSetDayServing        Op = "set_day_serving"
	OpAddPerson            Op = "add_person"
	OpRemovePerson         Op = "remove_person"
	OpSetPresent           Op = "set_present"
	OpSetAttendanceServing Op = "set_attendance_serving"
	OpAddExpense           Op = "add_expense"
	OpRemoveExpense        Op = "remove_expense"
	OpSetExpenseServing    Op = "set_expense_serving"
	OpSetExpensePrice      Op = "set_expense_price"
	OpSetExpenseDay        Op = "set_expense_day"
	OpReset                Op = "reset"
)

// Command is one edit sent by a client. Only the fields relevant to Op are read,
// and the index and meal fields an op lists are required:
//
//	add_day                 Name
//	remove_day              Day (-1 removes the last day not yet removed)
//	rename_day              Day, Name
//	set_day_serving         Day, Meal, Value
//	add_person              Name
//	remove_person           Person
//	set_present             Person, Day, Value
//	set_attendance_serving  Person, Day, Meal, Value
//	add_expense             Name, Price, Servings (optional), DayID (optional)
//	remove_expense          Expense
//	set_expense_serving     Expense, Meal, Value
//	set_expense_price       Expense, Price
//	set_expense_day         Expense, DayID
//	reset
type Command struct {
	Op       Op               `json:"op"`
	Name     string           `json:"name,omitempty"`
	Day      *int             `json:"day,omitempty"`
	Person   *int             `json:"person,omitempty"`
	Expense  *int             `json:"expense,omitempty"`
	Meal     *models.Meal     `json:"meal,omitempty"`
	Value    bool             `json:"value,omitempty"`
	Price    decimal.Decimal  `json:"price,omitempty"`
	Servings *models.Servings `json:"servings,omitempty"`
	DayID    string           `json:"day_id,omitempty"`
}

// Index returns a pointer for the index fields of a Command.
func Index(i int) *int {
	return &i
}

// MealRef returns a pointer for Command.Meal.
func MealRef(m models.Meal) *models.Meal {
	return &m
}

func required[T any](v *T, field string) (T, error) {
	if v == nil {
		var zero T
		return zero, fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	return *v, nil
}

// Apply performs a single command against the session.
func (s *Session) Apply(cmd Command) error {
	switch cmd.Op {
	case OpAddDay:
		s.AddDay(cmd.Name)
		return nil
	case OpRemoveDay:
		day, err := required(cmd.Day, "day")
		if err != nil {
			return err
		}
		if day == -1 {
			return s.RemoveLastDay()
		}
		return s.RemoveDay(day)
	case OpRenameDay:
		day, err := required(cmd.Day, "day")
		if err != nil {
			return err
		}
		return s.RenameDay(day, cmd.Name)
	case OpSetDayServing:
		day, err := required(cmd.Day, "day")
		if err != nil {
			return err
		}
		meal, err := required(cmd.Meal, "meal")
		if err != nil {
			return err
		}
		return s.SetDayServing(day, meal, cmd.Value)
	case OpAddPerson:
		_, err := s.AddPerson(cmd.Name)
		return err
	case OpRemovePerson:
		person, err := required(cmd.Person, "person")
		if err != nil {
			return err
		}
		return s.RemovePerson(person)
	case OpSetPresent:
		person, day, err := personDay(cmd)
		if err != nil {
			return err
		}
		return s.SetPresent(person, day, cmd.Value)
	case OpSetAttendanceServing:
		person, day, err := personDay(cmd)
		if err != nil {
			return err
		}
		meal, err := required(cmd.Meal, "meal")
		if err != nil {
			return err
		}
		return s.SetAttendanceServing(person, day, meal, cmd.Value)
	case OpAddExpense:
		return s.addExpense(cmd)
	case OpRemoveExpense:
		expense, err := required(cmd.Expense, "expense")
		if err != nil {
			return err
		}
		return s.RemoveExpense(expense)
	case OpSetExpenseServing:
		expense, err := required(cmd.Expense, "expense")
		if err != nil {
			return err
		}
		meal, err := required(cmd.Meal, "meal")
		if err != nil {
			return err
		}
		return s.SetExpenseServing(expense, meal, cmd.Value)
	case OpSetExpensePrice:
		expense, err := required(cmd.Expense, "expense")
		if err != nil {
			return err
		}
		return s.SetExpensePrice(expense, cmd.Price)
	case OpSetExpenseDay:
		expense, err := required(cmd.Expense, "expense")
		if err != nil {
			return err
		}
		return s.SetExpenseDay(expense, cmd.DayID)
	case OpReset:
		s.Reset()
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd.Op)
	}
}

func personDay(cmd Command) (int, int, error) {
	person, err := required(cmd.Person, "person")
	if err != nil {
		return 0, 0, err
	}
	day, err := required(cmd.Day, "day")
	if err != nil {
		return 0, 0, err
	}
	return person, day, nil
}

func (s *Session) addExpense(cmd Command) error {
	if cmd.DayID != "" && s.trip.DayIndex(cmd.DayID) < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownDay, cmd.DayID)
	}
	if _, err := s.AddExpense(cmd.Name, cmd.Price); err != nil {
		return err
	}
	idx := len(s.trip.Expenses) - 1
	if cmd.Servings != nil {
		if err := s.SetExpenseServings(idx, *cmd.Servings); err != nil {
			return err
		}
	}
	if cmd.DayID != "" {
		return s.SetExpenseDay(idx, cmd.DayID)
	}
	return nil
}

// ApplyAll applies commands in order and stops at the first failure.
// The returned error names the failing command's position.
func (s *Session) ApplyAll(cmds []Command) error {
	for i, cmd := range cmds {
		if err := s.Apply(cmd); err != nil {
			return fmt.Errorf("command %d (%s): %w", i, cmd.Op, err)
		}
	}
	return nil
}
