package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/mokkicalc/internal/models"
	"github.com/mmynk/mokkicalc/internal/storage"
	"github.com/mmynk/mokkicalc/internal/trip"
)

var tripCmd = GroupCommand{
	Use:   "trip",
	Short: "Create, inspect and delete trips",
	Subcommands: []*cobra.Command{
		tripCreateCmd,
		tripListCmd,
		tripShowCmd,
		tripDeleteCmd,
		tripResetCmd,
	},
}.Build()

var tripCreateCmd = LeafCommand{
	Use:   "create [NAME]",
	Short: "Create a trip",
	Args:  cobra.MaximumNArgs(1),
	IntFlags: []IntFlag{
		{Name: "days", Usage: "number of days to start with"},
	},
	StrFlags: []StringFlag{
		{Name: "people", Usage: "comma-separated names of the people coming"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		days, _ := cmd.Flags().GetInt("days")
		people, _ := cmd.Flags().GetString("people")
		return withStore(cmd, func(ctx context.Context, store storage.TripStore) error {
			return runTripCreate(ctx, cmd, store, name, days, splitNames(people))
		})
	},
}.Build()

func runTripCreate(ctx context.Context, cmd *cobra.Command, store storage.TripStore, name string, days int, people []string) error {
	if days < 0 {
		return fmt.Errorf("--days must not be negative")
	}

	s := trip.NewSession(&models.Trip{Name: name})
	for i := 0; i < days; i++ {
		s.AddDay("")
	}
	for _, p := range people {
		if _, err := s.AddPerson(p); err != nil {
			return err
		}
	}
	s.Recompute()

	t := s.Trip()
	if err := store.CreateTrip(ctx, t); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("trip '%s' created (%s)", Primary(t.Name), Silent(shortID(t.ID)))))
	return nil
}

var tripListCmd = LeafCommand{
	Use:   "list",
	Short: "List trips",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, store storage.TripStore) error {
			return runTripList(ctx, cmd, store)
		})
	},
}.Build()

func runTripList(ctx context.Context, cmd *cobra.Command, store storage.TripStore) error {
	trips, err := store.ListTrips(ctx, "")
	if err != nil {
		return err
	}
	printTripList(cmd.OutOrStdout(), trips)
	return nil
}

var tripShowCmd = LeafCommand{
	Use:   "show TRIP",
	Short: "Show what everyone owes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, store storage.TripStore) error {
			return runTripShow(ctx, cmd, store, args[0])
		})
	},
}.Build()

func runTripShow(ctx context.Context, cmd *cobra.Command, store storage.TripStore, ref string) error {
	t, err := findTrip(ctx, store, ref)
	if err != nil {
		return err
	}
	s := trip.NewSession(t)
	printTrip(cmd.OutOrStdout(), t, s.Summary())
	return nil
}

var tripDeleteCmd = LeafCommand{
	Use:   "delete TRIP",
	Short: "Delete a trip",
	Args:  cobra.ExactArgs(1),
	BoolFlags: []BoolFlag{
		{Name: "yes", Usage: "skip confirmation prompt"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		confirm := ResolveConfirmFunc(yes)
		return withStore(cmd, func(ctx context.Context, store storage.TripStore) error {
			return runTripDelete(ctx, cmd, store, args[0], confirm)
		})
	},
}.Build()

func runTripDelete(ctx context.Context, cmd *cobra.Command, store storage.TripStore, ref string, confirm ConfirmFunc) error {
	t, err := findTrip(ctx, store, ref)
	if err != nil {
		return err
	}

	confirmed, err := confirm(fmt.Sprintf("Delete trip '%s' with %d expenses?", t.Name, len(t.Expenses)))
	if err != nil {
		return err
	}
	if !confirmed {
		return fmt.Errorf("aborted")
	}

	if err := store.DeleteTrip(ctx, t.ID); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("trip '%s' deleted", Primary(t.Name))))
	return nil
}

var tripResetCmd = LeafCommand{
	Use:   "reset TRIP",
	Short: "Remove every expense, day and person from a trip",
	Args:  cobra.ExactArgs(1),
	BoolFlags: []BoolFlag{
		{Name: "yes", Usage: "skip confirmation prompt"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		confirm := ResolveConfirmFunc(yes)
		return withStore(cmd, func(ctx context.Context, store storage.TripStore) error {
			return runTripReset(ctx, cmd, store, args[0], confirm)
		})
	},
}.Build()

func runTripReset(ctx context.Context, cmd *cobra.Command, store storage.TripStore, ref string, confirm ConfirmFunc) error {
	t, err := findTrip(ctx, store, ref)
	if err != nil {
		return err
	}

	confirmed, err := confirm(fmt.Sprintf("Clear all expenses, days and people of '%s'?", t.Name))
	if err != nil {
		return err
	}
	if !confirmed {
		return fmt.Errorf("aborted")
	}

	if _, err := editTrip(ctx, store, t.ID, func(s *trip.Session) error {
		s.Reset()
		return nil
	}); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("trip '%s' reset", Primary(t.Name))))
	return nil
}
