package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/mokkicalc/internal/models"
	"github.com/mmynk/mokkicalc/internal/storage"
	"github.com/mmynk/mokkicalc/internal/trip"
)

var personCmd = GroupCommand{
	Use:   "person",
	Short: "Manage who is coming and when they eat",
	Subcommands: []*cobra.Command{
		personAddCmd,
		personRemoveCmd,
		personAttendCmd,
	},
}.Build()

var personAddCmd = LeafCommand{
	Use:   "add TRIP NAME",
	Short: "Add a person, absent on every day until marked present",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, store storage.TripStore) error {
			return runPersonAdd(ctx, cmd, store, args[0], args[1])
		})
	},
}.Build()

func runPersonAdd(ctx context.Context, cmd *cobra.Command, store storage.TripStore, ref, name string) error {
	var p models.Person
	_, err := editTrip(ctx, store, ref, func(s *trip.Session) error {
		var err error
		p, err = s.AddPerson(name)
		return err
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("person '%s' added", Primary(p.Name))))
	return nil
}

var personRemoveCmd = LeafCommand{
	Use:   "remove TRIP PERSON",
	Short: "Remove a person",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, store storage.TripStore) error {
			return runPersonRemove(ctx, cmd, store, args[0], args[1])
		})
	},
}.Build()

func runPersonRemove(ctx context.Context, cmd *cobra.Command, store storage.TripStore, ref, personRef string) error {
	var name string
	_, err := editTrip(ctx, store, ref, func(s *trip.Session) error {
		idx, err := personIndex(s.Trip(), personRef)
		if err != nil {
			return err
		}
		name = s.Trip().People[idx].Name
		return s.RemovePerson(idx)
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("person '%s' removed", Primary(name))))
	return nil
}

var personAttendCmd = LeafCommand{
	Use:   "attend TRIP PERSON DAY",
	Short: "Mark a person present on a day and choose the meals they eat",
	Args:  cobra.ExactArgs(3),
	BoolFlags: []BoolFlag{
		{Name: "absent", Usage: "mark the person absent instead"},
	},
	StrFlags: []StringFlag{
		{Name: "meals", Usage: "meals eaten that day (e.g. lunch,dinner, all or none)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		absent, _ := cmd.Flags().GetBool("absent")
		meals, _ := cmd.Flags().GetString("meals")
		return withStore(cmd, func(ctx context.Context, store storage.TripStore) error {
			return runPersonAttend(ctx, cmd, store, args[0], args[1], args[2], !absent, meals)
		})
	},
}.Build()

func runPersonAttend(ctx context.Context, cmd *cobra.Command, store storage.TripStore, ref, personRef, dayRef string, present bool, meals string) error {
	var servings *models.Servings
	if meals != "" {
		parsed, err := models.ParseServings(meals)
		if err != nil {
			return err
		}
		servings = &parsed
	}

	var p, d int
	s, err := editTrip(ctx, store, ref, func(s *trip.Session) error {
		t := s.Trip()
		var err error
		if p, err = personIndex(t, personRef); err != nil {
			return err
		}
		if d, err = dayIndex(t, dayRef); err != nil {
			return err
		}
		if err := s.SetPresent(p, d, present); err != nil {
			return err
		}
		if servings != nil {
			return s.SetAttendanceServings(p, d, *servings)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Recompute may have switched off meals the day does not serve.
	t := s.Trip()
	person, day := t.People[p].Name, t.Days[d].Name
	out := cmd.OutOrStdout()
	if !present {
		_, _ = fmt.Fprintf(out, "%s\n", Text(fmt.Sprintf("%s is away on day '%s'", Primary(person), day)))
		return nil
	}
	eats := t.People[p].Attendance[d].Servings
	_, _ = fmt.Fprintf(out, "%s\n", Text(fmt.Sprintf("%s eats %s on day '%s'", Primary(person), eats, day)))
	return nil
}
