package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/mokkicalc/internal/models"
	"github.com/mmynk/mokkicalc/internal/storage"
	"github.com/mmynk/mokkicalc/internal/trip"
)

var dayCmd = GroupCommand{
	Use:   "day",
	Short: "Manage the days of a trip and the meals served on them",
	Subcommands: []*cobra.Command{
		dayAddCmd,
		dayRemoveCmd,
		dayRenameCmd,
		dayServeCmd,
	},
}.Build()

var dayAddCmd = LeafCommand{
	Use:   "add TRIP [NAME]",
	Short: "Add a day serving every meal",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 2 {
			name = args[1]
		}
		return withStore(cmd, func(ctx context.Context, store storage.TripStore) error {
			return runDayAdd(ctx, cmd, store, args[0], name)
		})
	},
}.Build()

func runDayAdd(ctx context.Context, cmd *cobra.Command, store storage.TripStore, ref, name string) error {
	var day models.Day
	_, err := editTrip(ctx, store, ref, func(s *trip.Session) error {
		day = s.AddDay(name)
		return nil
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("day '%s' added", Primary(day.Name))))
	return nil
}

var dayRemoveCmd = LeafCommand{
	Use:   "remove TRIP [DAY]",
	Short: "Remove a day, or the last day when none is given",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		day := ""
		if len(args) == 2 {
			day = args[1]
		}
		return withStore(cmd, func(ctx context.Context, store storage.TripStore) error {
			return runDayRemove(ctx, cmd, store, args[0], day)
		})
	},
}.Build()

func runDayRemove(ctx context.Context, cmd *cobra.Command, store storage.TripStore, ref, dayRef string) error {
	var name string
	_, err := editTrip(ctx, store, ref, func(s *trip.Session) error {
		t := s.Trip()
		idx := len(t.Days) - 1
		if dayRef != "" {
			var err error
			if idx, err = dayIndex(t, dayRef); err != nil {
				return err
			}
		}
		if idx < 0 {
			return fmt.Errorf("trip '%s' has no days", t.Name)
		}
		name = t.Days[idx].Name
		return s.RemoveDay(idx)
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("day '%s' removed", Primary(name))))
	return nil
}

var dayRenameCmd = LeafCommand{
	Use:   "rename TRIP DAY NAME",
	Short: "Rename a day",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, store storage.TripStore) error {
			return runDayRename(ctx, cmd, store, args[0], args[1], args[2])
		})
	},
}.Build()

func runDayRename(ctx context.Context, cmd *cobra.Command, store storage.TripStore, ref, dayRef, name string) error {
	var old string
	_, err := editTrip(ctx, store, ref, func(s *trip.Session) error {
		idx, err := dayIndex(s.Trip(), dayRef)
		if err != nil {
			return err
		}
		old = s.Trip().Days[idx].Name
		return s.RenameDay(idx, name)
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("day '%s' renamed to '%s'", old, Primary(name))))
	return nil
}

var dayServeCmd = LeafCommand{
	Use:   "serve TRIP DAY MEALS",
	Short: "Set the meals served on a day (e.g. breakfast,dinner, all or none)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, store storage.TripStore) error {
			return runDayServe(ctx, cmd, store, args[0], args[1], args[2])
		})
	},
}.Build()

func runDayServe(ctx context.Context, cmd *cobra.Command, store storage.TripStore, ref, dayRef, meals string) error {
	servings, err := models.ParseServings(meals)
	if err != nil {
		return err
	}
	var name string
	_, err = editTrip(ctx, store, ref, func(s *trip.Session) error {
		idx, err := dayIndex(s.Trip(), dayRef)
		if err != nil {
			return err
		}
		name = s.Trip().Days[idx].Name
		return s.SetDayServings(idx, servings)
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("day '%s' serves %s", Primary(name), servings)))
	return nil
}
