package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/mokkicalc/internal/models"
	"github.com/mmynk/mokkicalc/internal/storage"
	"github.com/mmynk/mokkicalc/internal/trip"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// sampleTrip builds a recomputed two-day trip with one expense and two people.
func sampleTrip(t *testing.T, owner string) *models.Trip {
	t.Helper()
	s := trip.NewSession(&models.Trip{Name: "Cottage weekend", OwnerID: owner})
	s.AddDay("Friday")
	s.AddDay("Saturday")
	for _, name := range []string{"Alice", "Bob"} {
		if _, err := s.AddPerson(name); err != nil {
			t.Fatalf("AddPerson failed: %v", err)
		}
	}
	if _, err := s.AddExpense("Groceries", decimal.NewFromInt(100)); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	if err := s.SetExpenseServings(0, models.Servings{Breakfast: true, Lunch: true}); err != nil {
		t.Fatalf("SetExpenseServings failed: %v", err)
	}
	if err := s.SetPresent(0, 0, true); err != nil {
		t.Fatalf("SetPresent failed: %v", err)
	}
	s.Recompute()
	return s.Trip()
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateTrip generates ID, name and version", func(t *testing.T) {
		tr := &models.Trip{}

		if err := store.CreateTrip(ctx, tr); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}

		if tr.ID == "" {
			t.Error("Expected trip ID to be generated")
		}
		if tr.Name == "" {
			t.Error("Expected trip name to be generated")
		}
		if tr.CreatedAt == 0 || tr.UpdatedAt == 0 {
			t.Error("Expected timestamps to be set")
		}
		if tr.Version != 1 {
			t.Errorf("Version = %d, want 1", tr.Version)
		}
	})

	t.Run("GetTrip round-trips the full state", func(t *testing.T) {
		original := sampleTrip(t, "")
		if err := store.CreateTrip(ctx, original); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}

		got, err := store.GetTrip(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetTrip failed: %v", err)
		}

		if got.Name != "Cottage weekend" {
			t.Errorf("Name mismatch: got %s", got.Name)
		}
		if len(got.Days) != 2 || len(got.People) != 2 || len(got.Expenses) != 1 {
			t.Fatalf("Collection sizes mismatch: days=%d people=%d expenses=%d",
				len(got.Days), len(got.People), len(got.Expenses))
		}
		if got.Days[0].ID != original.Days[0].ID {
			t.Errorf("Day ID mismatch: got %s, want %s", got.Days[0].ID, original.Days[0].ID)
		}
		if !got.Expenses[0].Price.Equal(decimal.NewFromInt(100)) {
			t.Errorf("Price mismatch: got %s", got.Expenses[0].Price)
		}
		if !got.Totals.Total.Equal(original.Totals.Total) {
			t.Errorf("Total mismatch: got %s, want %s", got.Totals.Total, original.Totals.Total)
		}
		if !got.People[0].Cost.Equal(original.People[0].Cost) {
			t.Errorf("Cost mismatch: got %s, want %s", got.People[0].Cost, original.People[0].Cost)
		}
		if !got.People[0].Attendance[0].Present {
			t.Error("Expected Alice to be present on day 1")
		}
	})

	t.Run("GetTrip returns ErrNotFound for nonexistent trip", func(t *testing.T) {
		_, err := store.GetTrip(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("UpdateTrip bumps version and rejects stale writes", func(t *testing.T) {
		tr := sampleTrip(t, "")
		if err := store.CreateTrip(ctx, tr); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}

		stale, err := store.GetTrip(ctx, tr.ID)
		if err != nil {
			t.Fatalf("GetTrip failed: %v", err)
		}

		tr.Name = "Renamed"
		if err := store.UpdateTrip(ctx, tr); err != nil {
			t.Fatalf("UpdateTrip failed: %v", err)
		}
		if tr.Version != 2 {
			t.Errorf("Version = %d, want 2", tr.Version)
		}

		stale.Name = "Lost update"
		err = store.UpdateTrip(ctx, stale)
		if !errors.Is(err, storage.ErrVersionConflict) {
			t.Errorf("Expected ErrVersionConflict, got %v", err)
		}

		got, err := store.GetTrip(ctx, tr.ID)
		if err != nil {
			t.Fatalf("GetTrip failed: %v", err)
		}
		if got.Name != "Renamed" || got.Version != 2 {
			t.Errorf("Stored trip = %s v%d, want Renamed v2", got.Name, got.Version)
		}
	})

	t.Run("UpdateTrip returns ErrNotFound for deleted trip", func(t *testing.T) {
		tr := &models.Trip{Name: "Short lived"}
		if err := store.CreateTrip(ctx, tr); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}
		if err := store.DeleteTrip(ctx, tr.ID); err != nil {
			t.Fatalf("DeleteTrip failed: %v", err)
		}

		if err := store.UpdateTrip(ctx, tr); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
		if err := store.DeleteTrip(ctx, tr.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
	})

	t.Run("ListTrips filters by owner", func(t *testing.T) {
		for _, owner := range []string{"owner-a", "owner-a", "owner-b"} {
			if err := store.CreateTrip(ctx, sampleTrip(t, owner)); err != nil {
				t.Fatalf("CreateTrip failed: %v", err)
			}
		}

		trips, err := store.ListTrips(ctx, "owner-a")
		if err != nil {
			t.Fatalf("ListTrips failed: %v", err)
		}
		if len(trips) != 2 {
			t.Errorf("ListTrips returned %d trips, want 2", len(trips))
		}
		for _, tr := range trips {
			if tr.OwnerID != "owner-a" {
				t.Errorf("Unexpected owner %s", tr.OwnerID)
			}
		}
	})
}

func TestSQLiteStore_Users(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("alice@example.com", "Alice", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	byEmail, err := store.GetUserByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if byEmail.ID != user.ID || byEmail.DisplayName != "Alice" {
		t.Errorf("GetUserByEmail returned %+v", byEmail)
	}

	byID, err := store.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if byID.Email != user.Email {
		t.Errorf("Email mismatch: got %s", byID.Email)
	}

	if _, err := store.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	if err := store.CreateUser(ctx, models.NewUser("alice@example.com", "Other", "hash")); err == nil {
		t.Error("Expected duplicate email to fail")
	}
}

func TestNew_ReopensExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	first, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	tr := &models.Trip{Name: "Persisted"}
	if err := first.CreateTrip(ctx, tr); err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}
	first.Close()

	second, err := New(path)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer second.Close()

	got, err := second.GetTrip(ctx, tr.ID)
	if err != nil {
		t.Fatalf("GetTrip after reopen failed: %v", err)
	}
	if got.Name != "Persisted" {
		t.Errorf("Name = %s, want Persisted", got.Name)
	}
}
