package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmynk/mokkicalc/internal/export"
	"github.com/mmynk/mokkicalc/internal/models"
	"github.com/mmynk/mokkicalc/internal/storage"
	"github.com/mmynk/mokkicalc/internal/trip"
)

var expenseCmd = GroupCommand{
	Use:   "expense",
	Short: "Manage what was bought and which meals it feeds",
	Subcommands: []*cobra.Command{
		expenseAddCmd,
		expenseRemoveCmd,
		expenseServeCmd,
		expensePriceCmd,
		expenseDayCmd,
	},
}.Build()

var expenseAddCmd = LeafCommand{
	Use:   "add TRIP NAME PRICE",
	Short: "Add an expense",
	Args:  cobra.ExactArgs(3),
	StrFlags: []StringFlag{
		{Name: "meals", Usage: "meals the expense feeds (e.g. breakfast,lunch or all)"},
		{Name: "day", Usage: "restrict the expense to a single day"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		meals, _ := cmd.Flags().GetString("meals")
		day, _ := cmd.Flags().GetString("day")
		return withStore(cmd, func(ctx context.Context, store storage.TripStore) error {
			return runExpenseAdd(ctx, cmd, store, args[0], args[1], args[2], meals, day)
		})
	},
}.Build()

func runExpenseAdd(ctx context.Context, cmd *cobra.Command, store storage.TripStore, ref, name, priceArg, meals, dayRef string) error {
	price, err := parsePrice(priceArg)
	if err != nil {
		return err
	}
	var servings models.Servings
	if meals != "" {
		if servings, err = models.ParseServings(meals); err != nil {
			return err
		}
	}

	var e models.Expense
	_, err = editTrip(ctx, store, ref, func(s *trip.Session) error {
		dayID := ""
		if dayRef != "" {
			idx, err := dayIndex(s.Trip(), dayRef)
			if err != nil {
				return err
			}
			dayID = s.Trip().Days[idx].ID
		}
		var err error
		if e, err = s.AddExpense(name, price); err != nil {
			return err
		}
		last := len(s.Trip().Expenses) - 1
		if err := s.SetExpenseServings(last, servings); err != nil {
			return err
		}
		return s.SetExpenseDay(last, dayID)
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s\n", Text(fmt.Sprintf("expense '%s' added (%s)", Primary(e.Name), export.Money(e.Price))))
	if servings.Count() == 0 {
		_, _ = fmt.Fprintf(out, "%s\n", Warning("no meals selected yet: run 'mokki expense serve' to allocate it"))
	}
	return nil
}

var expenseRemoveCmd = LeafCommand{
	Use:   "remove TRIP EXPENSE",
	Short: "Remove an expense",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, store storage.TripStore) error {
			return runExpenseRemove(ctx, cmd, store, args[0], args[1])
		})
	},
}.Build()

func runExpenseRemove(ctx context.Context, cmd *cobra.Command, store storage.TripStore, ref, expenseRef string) error {
	var name string
	_, err := editTrip(ctx, store, ref, func(s *trip.Session) error {
		idx, err := expenseIndex(s.Trip(), expenseRef)
		if err != nil {
			return err
		}
		name = s.Trip().Expenses[idx].Name
		return s.RemoveExpense(idx)
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("expense '%s' removed", Primary(name))))
	return nil
}

var expenseServeCmd = LeafCommand{
	Use:   "serve TRIP EXPENSE MEALS",
	Short: "Set the meals an expense feeds",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, store storage.TripStore) error {
			return runExpenseServe(ctx, cmd, store, args[0], args[1], args[2])
		})
	},
}.Build()

func runExpenseServe(ctx context.Context, cmd *cobra.Command, store storage.TripStore, ref, expenseRef, meals string) error {
	servings, err := models.ParseServings(meals)
	if err != nil {
		return err
	}
	var name string
	_, err = editTrip(ctx, store, ref, func(s *trip.Session) error {
		idx, err := expenseIndex(s.Trip(), expenseRef)
		if err != nil {
			return err
		}
		name = s.Trip().Expenses[idx].Name
		return s.SetExpenseServings(idx, servings)
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("expense '%s' feeds %s", Primary(name), servings)))
	return nil
}

var expensePriceCmd = LeafCommand{
	Use:   "price TRIP EXPENSE PRICE",
	Short: "Change the price of an expense",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, store storage.TripStore) error {
			return runExpensePrice(ctx, cmd, store, args[0], args[1], args[2])
		})
	},
}.Build()

func runExpensePrice(ctx context.Context, cmd *cobra.Command, store storage.TripStore, ref, expenseRef, priceArg string) error {
	price, err := parsePrice(priceArg)
	if err != nil {
		return err
	}
	var name string
	_, err = editTrip(ctx, store, ref, func(s *trip.Session) error {
		idx, err := expenseIndex(s.Trip(), expenseRef)
		if err != nil {
			return err
		}
		name = s.Trip().Expenses[idx].Name
		return s.SetExpensePrice(idx, price)
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("expense '%s' now costs %s", Primary(name), export.Money(price))))
	return nil
}

var expenseDayCmd = LeafCommand{
	Use:   "day TRIP EXPENSE DAY",
	Short: "Restrict an expense to one day, or 'all' to spread it over every day",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, store storage.TripStore) error {
			return runExpenseDay(ctx, cmd, store, args[0], args[1], args[2])
		})
	},
}.Build()

func runExpenseDay(ctx context.Context, cmd *cobra.Command, store storage.TripStore, ref, expenseRef, dayRef string) error {
	var name, day string
	_, err := editTrip(ctx, store, ref, func(s *trip.Session) error {
		t := s.Trip()
		idx, err := expenseIndex(t, expenseRef)
		if err != nil {
			return err
		}
		name = t.Expenses[idx].Name
		if strings.EqualFold(dayRef, "all") {
			return s.SetExpenseDay(idx, "")
		}
		d, err := dayIndex(t, dayRef)
		if err != nil {
			return err
		}
		day = t.Days[d].Name
		return s.SetExpenseDay(idx, t.Days[d].ID)
	})
	if err != nil {
		return err
	}

	if day == "" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("expense '%s' is spread over every day", Primary(name))))
		return nil
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("expense '%s' only counts on day '%s'", Primary(name), day)))
	return nil
}
