package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/mokkicalc/internal/models"
	"github.com/mmynk/mokkicalc/internal/storage"
	"github.com/mmynk/mokkicalc/internal/trip"
)

// findTrip resolves a trip by ID, unique ID prefix or case-insensitive name.
func findTrip(ctx context.Context, store storage.TripStore, ref string) (*models.Trip, error) {
	t, err := store.GetTrip(ctx, ref)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	trips, err := store.ListTrips(ctx, "")
	if err != nil {
		return nil, err
	}
	var matches []*models.Trip
	for _, t := range trips {
		if strings.EqualFold(t.Name, ref) || strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("trip '%s' not found", ref)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("trip '%s' is ambiguous: %d trips match", ref, len(matches))
	}
}

// editTrip loads a trip, lets fn edit it, recomputes and saves the result.
func editTrip(ctx context.Context, store storage.TripStore, ref string, fn func(s *trip.Session) error) (*trip.Session, error) {
	t, err := findTrip(ctx, store, ref)
	if err != nil {
		return nil, err
	}
	s := trip.NewSession(t)
	if err := fn(s); err != nil {
		return nil, err
	}
	s.Recompute()
	if err := store.UpdateTrip(ctx, t); err != nil {
		return nil, err
	}
	return s, nil
}

// resolveIndex accepts a case-insensitive name or a 1-based position. Names win,
// so a day still called "3" after an earlier day was removed resolves by name.
func resolveIndex(what, ref string, n int, name func(i int) string) (int, error) {
	for i := 0; i < n; i++ {
		if strings.EqualFold(name(i), ref) {
			return i, nil
		}
	}
	if pos, err := strconv.Atoi(ref); err == nil && pos >= 1 && pos <= n {
		return pos - 1, nil
	}
	return -1, fmt.Errorf("%s '%s' not found", what, ref)
}

func dayIndex(t *models.Trip, ref string) (int, error) {
	return resolveIndex("day", ref, len(t.Days), func(i int) string { return t.Days[i].Name })
}

func personIndex(t *models.Trip, ref string) (int, error) {
	return resolveIndex("person", ref, len(t.People), func(i int) string { return t.People[i].Name })
}

func expenseIndex(t *models.Trip, ref string) (int, error) {
	return resolveIndex("expense", ref, len(t.Expenses), func(i int) string { return t.Expenses[i].Name })
}

func parsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "€")))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price '%s'", s)
	}
	return d, nil
}

func splitNames(s string) []string {
	var names []string
	for _, n := range strings.Split(s, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}
