package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/mokkicalc/internal/models"
	"github.com/mmynk/mokkicalc/internal/storage"
	"github.com/mmynk/mokkicalc/internal/storage/sqlite"
)

func newTestStore(t *testing.T) storage.TripStore {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "trips.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// execRun runs fn against a fresh command and returns what it printed.
func execRun(fn func(cmd *cobra.Command) error) (string, error) {
	stdout := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(stdout)
	err := fn(cmd)
	return stdout.String(), err
}

func mustRun(t *testing.T, fn func(cmd *cobra.Command) error) string {
	t.Helper()
	out, err := execRun(fn)
	require.NoError(t, err)
	return out
}

func loadTrip(t *testing.T, store storage.TripStore, ref string) *models.Trip {
	t.Helper()
	tr, err := findTrip(context.Background(), store, ref)
	require.NoError(t, err)
	return tr
}

// cottage creates a two-day trip for Alice and Bob.
func cottage(t *testing.T, store storage.TripStore) {
	t.Helper()
	ctx := context.Background()
	mustRun(t, func(cmd *cobra.Command) error {
		return runTripCreate(ctx, cmd, store, "Cottage", 2, []string{"Alice", "Bob"})
	})
}

func TestTripCreate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	out := mustRun(t, func(cmd *cobra.Command) error {
		return runTripCreate(ctx, cmd, store, "Cottage", 3, []string{"Alice", "Bob"})
	})
	assert.Contains(t, out, "trip 'Cottage' created")

	tr := loadTrip(t, store, "cottage")
	assert.Len(t, tr.Days, 3)
	assert.Len(t, tr.People, 2)
	require.NoError(t, tr.Validate())

	_, err := execRun(func(cmd *cobra.Command) error {
		return runTripCreate(ctx, cmd, store, "Bad", -1, nil)
	})
	assert.Error(t, err)
}

func TestTripList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	out := mustRun(t, func(cmd *cobra.Command) error { return runTripList(ctx, cmd, store) })
	assert.Contains(t, out, "no trips yet")

	cottage(t, store)
	out = mustRun(t, func(cmd *cobra.Command) error { return runTripList(ctx, cmd, store) })
	assert.Contains(t, out, "Cottage")
}

func TestFullTripFlow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	cottage(t, store)

	out := mustRun(t, func(cmd *cobra.Command) error {
		return runExpenseAdd(ctx, cmd, store, "Cottage", "Groceries", "100", "breakfast,lunch", "")
	})
	assert.Contains(t, out, "expense 'Groceries' added (100.00 €)")

	for _, person := range []string{"Alice", "Bob"} {
		for _, day := range []string{"1", "2"} {
			mustRun(t, func(cmd *cobra.Command) error {
				return runPersonAttend(ctx, cmd, store, "Cottage", person, day, true, "")
			})
		}
	}
	out = mustRun(t, func(cmd *cobra.Command) error {
		return runPersonAttend(ctx, cmd, store, "Cottage", "bob", "2", true, "breakfast,snacks")
	})
	assert.Contains(t, out, "Bob eats breakfast,snacks on day '2'")

	tr := loadTrip(t, store, "Cottage")
	assert.Equal(t, "62.50", tr.People[0].Cost.StringFixed(2))
	assert.Equal(t, "37.50", tr.People[1].Cost.StringFixed(2))

	out = mustRun(t, func(cmd *cobra.Command) error { return runTripShow(ctx, cmd, store, "Cottage") })
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "62.50 €")
	assert.Contains(t, out, "37.50 €")
	assert.Contains(t, out, "every expense is covered")
}

func TestShowReportsUnallocatedMoney(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	cottage(t, store)

	out := mustRun(t, func(cmd *cobra.Command) error {
		return runExpenseAdd(ctx, cmd, store, "Cottage", "Firewood", "20", "", "")
	})
	assert.Contains(t, out, "no meals selected yet")

	out = mustRun(t, func(cmd *cobra.Command) error { return runTripShow(ctx, cmd, store, "Cottage") })
	assert.Contains(t, out, "unallocated:")
	assert.Contains(t, out, "Firewood")
}

func TestDayCommands(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	cottage(t, store)

	out := mustRun(t, func(cmd *cobra.Command) error { return runDayAdd(ctx, cmd, store, "Cottage", "") })
	assert.Contains(t, out, "day '3' added")

	out = mustRun(t, func(cmd *cobra.Command) error { return runDayRename(ctx, cmd, store, "Cottage", "3", "Sunday") })
	assert.Contains(t, out, "renamed to 'Sunday'")

	out = mustRun(t, func(cmd *cobra.Command) error { return runDayServe(ctx, cmd, store, "Cottage", "sunday", "breakfast") })
	assert.Contains(t, out, "serves breakfast")

	tr := loadTrip(t, store, "Cottage")
	require.Len(t, tr.Days, 3)
	assert.Equal(t, models.Servings{Breakfast: true}, tr.Days[2].Servings)

	out = mustRun(t, func(cmd *cobra.Command) error { return runDayRemove(ctx, cmd, store, "Cottage", "1") })
	assert.Contains(t, out, "day '1' removed")
	out = mustRun(t, func(cmd *cobra.Command) error { return runDayRemove(ctx, cmd, store, "Cottage", "") })
	assert.Contains(t, out, "day 'Sunday' removed")

	tr = loadTrip(t, store, "Cottage")
	require.Len(t, tr.Days, 1)
	assert.Equal(t, "2", tr.Days[0].Name)
	require.NoError(t, tr.Validate())

	_, err := execRun(func(cmd *cobra.Command) error { return runDayRename(ctx, cmd, store, "Cottage", "9", "Nope") })
	assert.ErrorContains(t, err, "day '9' not found")

	_, err = execRun(func(cmd *cobra.Command) error { return runDayServe(ctx, cmd, store, "Cottage", "2", "brunch") })
	assert.Error(t, err)
}

func TestPersonCommands(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	cottage(t, store)

	out := mustRun(t, func(cmd *cobra.Command) error { return runPersonAdd(ctx, cmd, store, "Cottage", "Carol") })
	assert.Contains(t, out, "person 'Carol' added")

	out = mustRun(t, func(cmd *cobra.Command) error {
		return runPersonAttend(ctx, cmd, store, "Cottage", "Carol", "1", false, "")
	})
	assert.Contains(t, out, "Carol is away on day '1'")

	out = mustRun(t, func(cmd *cobra.Command) error { return runPersonRemove(ctx, cmd, store, "Cottage", "alice") })
	assert.Contains(t, out, "person 'Alice' removed")

	tr := loadTrip(t, store, "Cottage")
	require.Len(t, tr.People, 2)
	assert.Equal(t, "Bob", tr.People[0].Name)
	assert.Equal(t, "Carol", tr.People[1].Name)

	_, err := execRun(func(cmd *cobra.Command) error { return runPersonAdd(ctx, cmd, store, "Cottage", " ") })
	assert.Error(t, err)
}

func TestExpenseCommands(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	cottage(t, store)
	mustRun(t, func(cmd *cobra.Command) error {
		return runPersonAttend(ctx, cmd, store, "Cottage", "Alice", "2", true, "")
	})

	mustRun(t, func(cmd *cobra.Command) error {
		return runExpenseAdd(ctx, cmd, store, "Cottage", "Sauna beer", "30€", "snacks", "2")
	})

	tr := loadTrip(t, store, "Cottage")
	require.Len(t, tr.Expenses, 1)
	assert.Equal(t, tr.Days[1].ID, tr.Expenses[0].DayID)
	assert.Equal(t, "30.00", tr.Days[1].Rates.Snacks.StringFixed(2))
	assert.True(t, tr.Days[0].Rates.Snacks.IsZero())
	assert.Equal(t, "30.00", tr.People[0].Cost.StringFixed(2))

	out := mustRun(t, func(cmd *cobra.Command) error { return runExpensePrice(ctx, cmd, store, "Cottage", "sauna beer", "24.5") })
	assert.Contains(t, out, "now costs 24.50 €")

	out = mustRun(t, func(cmd *cobra.Command) error { return runExpenseDay(ctx, cmd, store, "Cottage", "1", "all") })
	assert.Contains(t, out, "spread over every day")

	out = mustRun(t, func(cmd *cobra.Command) error { return runExpenseServe(ctx, cmd, store, "Cottage", "1", "snacks,dinner") })
	assert.Contains(t, out, "feeds dinner,snacks")

	tr = loadTrip(t, store, "Cottage")
	assert.Empty(t, tr.Expenses[0].DayID)
	assert.Equal(t, "24.50", tr.Totals.Total.StringFixed(2))

	_, err := execRun(func(cmd *cobra.Command) error { return runExpensePrice(ctx, cmd, store, "Cottage", "1", "-3") })
	assert.Error(t, err)
	_, err = execRun(func(cmd *cobra.Command) error { return runExpensePrice(ctx, cmd, store, "Cottage", "1", "lots") })
	assert.ErrorContains(t, err, "invalid price")

	out = mustRun(t, func(cmd *cobra.Command) error { return runExpenseRemove(ctx, cmd, store, "Cottage", "1") })
	assert.Contains(t, out, "expense 'Sauna beer' removed")
	assert.Empty(t, loadTrip(t, store, "Cottage").Expenses)
}

func TestTripDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	cottage(t, store)

	decline := func(_ string) (bool, error) { return false, nil }
	_, err := execRun(func(cmd *cobra.Command) error { return runTripDelete(ctx, cmd, store, "Cottage", decline) })
	assert.ErrorContains(t, err, "aborted")
	loadTrip(t, store, "Cottage")

	out := mustRun(t, func(cmd *cobra.Command) error { return runTripDelete(ctx, cmd, store, "Cottage", AlwaysYes()) })
	assert.Contains(t, out, "trip 'Cottage' deleted")

	_, err = findTrip(ctx, store, "Cottage")
	assert.ErrorContains(t, err, "not found")
}

func TestTripReset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	cottage(t, store)
	mustRun(t, func(cmd *cobra.Command) error {
		return runExpenseAdd(ctx, cmd, store, "Cottage", "Groceries", "10", "all", "")
	})

	out := mustRun(t, func(cmd *cobra.Command) error { return runTripReset(ctx, cmd, store, "Cottage", AlwaysYes()) })
	assert.Contains(t, out, "trip 'Cottage' reset")

	tr := loadTrip(t, store, "Cottage")
	assert.Empty(t, tr.Days)
	assert.Empty(t, tr.People)
	assert.Empty(t, tr.Expenses)
	assert.True(t, tr.Totals.Total.IsZero())
}

func TestFindTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	cottage(t, store)
	tr := loadTrip(t, store, "Cottage")

	byID, err := findTrip(ctx, store, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, tr.ID, byID.ID)

	byPrefix, err := findTrip(ctx, store, tr.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, tr.ID, byPrefix.ID)

	cottage(t, store)
	_, err = findTrip(ctx, store, "cottage")
	assert.ErrorContains(t, err, "ambiguous")
}

func TestExport(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	cottage(t, store)
	dir := t.TempDir()

	xlsx := filepath.Join(dir, "out.xlsx")
	out := mustRun(t, func(cmd *cobra.Command) error { return runExport(ctx, cmd, store, "Cottage", "xlsx", xlsx) })
	assert.Contains(t, out, "exported 'Cottage'")
	info, err := os.Stat(xlsx)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	pdf := filepath.Join(dir, "out.pdf")
	mustRun(t, func(cmd *cobra.Command) error { return runExport(ctx, cmd, store, "Cottage", "PDF", pdf) })
	data, err := os.ReadFile(pdf)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	_, err = execRun(func(cmd *cobra.Command) error { return runExport(ctx, cmd, store, "Cottage", "csv", "") })
	assert.ErrorContains(t, err, "unsupported format")
}

func TestResolveIndex(t *testing.T) {
	names := []string{"Friday", "Saturday", "3"}
	name := func(i int) string { return names[i] }

	tests := []struct {
		ref     string
		want    int
		wantErr bool
	}{
		{"1", 0, false},
		{"saturday", 1, false},
		{"3", 2, false},
		{"0", -1, true},
		{"4", -1, true},
		{"Sunday", -1, true},
	}
	for _, tt := range tests {
		got, err := resolveIndex("day", tt.ref, len(names), name)
		if tt.wantErr {
			assert.Error(t, err, tt.ref)
			continue
		}
		require.NoError(t, err, tt.ref)
		assert.Equal(t, tt.want, got, tt.ref)
	}

	// After the first default-named day is gone, "2" is the day called 2.
	shifted := []string{"2", "3"}
	got, err := resolveIndex("day", "2", len(shifted), func(i int) string { return shifted[i] })
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "cottage-weekend", fileName("Cottage Weekend"))
	assert.Equal(t, "mkki-2026", fileName("Mökki 2026!"))
	assert.Equal(t, "trip", fileName("???"))
}

func TestCommandsRegistered(t *testing.T) {
	names := func(c *cobra.Command) []string {
		var out []string
		for _, sub := range c.Commands() {
			out = append(out, sub.Name())
		}
		return out
	}

	assert.Subset(t, names(rootCmd), []string{"trip", "day", "person", "expense", "export"})
	assert.ElementsMatch(t, []string{"create", "list", "show", "delete", "reset"}, names(tripCmd))
	assert.ElementsMatch(t, []string{"add", "remove", "rename", "serve"}, names(dayCmd))
	assert.ElementsMatch(t, []string{"add", "remove", "attend"}, names(personCmd))
	assert.ElementsMatch(t, []string{"add", "remove", "serve", "price", "day"}, names(expenseCmd))
}
