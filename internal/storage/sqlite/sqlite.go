// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/mokkicalc/internal/models"
	"github.com/mmynk/mokkicalc/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer; serialising in the pool avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateTrip persists a new trip to the database.
func (s *SQLiteStore) CreateTrip(ctx context.Context, trip *models.Trip) error {
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if trip.CreatedAt == 0 {
		trip.CreatedAt = now
	}
	trip.UpdatedAt = now
	trip.Version = 1
	if trip.Name == "" {
		trip.Name = generateName(trip.CreatedAt)
	}

	state, err := json.Marshal(trip)
	if err != nil {
		return fmt.Errorf("failed to encode trip: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO trips (id, owner_id, name, state, version, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		trip.ID, trip.OwnerID, trip.Name, string(state), trip.Version, trip.CreatedAt, trip.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	return nil
}

// GetTrip retrieves a trip by ID and checks its attendance alignment.
func (s *SQLiteStore) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	var state string
	var version int64
	err := s.db.QueryRowContext(ctx,
		"SELECT state, version FROM trips WHERE id = ?",
		tripID,
	).Scan(&state, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("trip %s: %w", tripID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	return decodeTrip(state, version)
}

// ListTrips returns the trips of one owner, most recently updated first.
func (s *SQLiteStore) ListTrips(ctx context.Context, ownerID string) ([]*models.Trip, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT state, version FROM trips WHERE owner_id = ? ORDER BY updated_at DESC, name",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var trips []*models.Trip
	for rows.Next() {
		var state string
		var version int64
		if err := rows.Scan(&state, &version); err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trip, err := decodeTrip(state, version)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trips: %w", err)
	}

	return trips, nil
}

// UpdateTrip stores the new state if nobody else updated the trip in between.
func (s *SQLiteStore) UpdateTrip(ctx context.Context, trip *models.Trip) error {
	expected := trip.Version
	next := *trip
	next.Version = expected + 1
	next.UpdatedAt = time.Now().Unix()

	state, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("failed to encode trip: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE trips SET name = ?, state = ?, version = ?, updated_at = ?
		 WHERE id = ? AND version = ?`,
		next.Name, string(state), next.Version, next.UpdatedAt, trip.ID, expected,
	)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update: %w", err)
	}
	if n == 0 {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM trips WHERE id = ?", trip.ID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("trip %s: %w", trip.ID, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to check trip: %w", err)
		}
		return fmt.Errorf("trip %s at version %d: %w", trip.ID, expected, storage.ErrVersionConflict)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	trip.Version = next.Version
	trip.UpdatedAt = next.UpdatedAt
	return nil
}

// DeleteTrip removes a trip by ID.
func (s *SQLiteStore) DeleteTrip(ctx context.Context, tripID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM trips WHERE id = ?", tripID)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("trip %s: %w", tripID, storage.ErrNotFound)
	}
	return nil
}

// decodeTrip unmarshals a stored state blob. The version column is authoritative.
func decodeTrip(state string, version int64) (*models.Trip, error) {
	trip := &models.Trip{}
	if err := json.Unmarshal([]byte(state), trip); err != nil {
		return nil, fmt.Errorf("failed to decode trip: %w", err)
	}
	trip.Version = version
	if err := trip.Validate(); err != nil {
		return nil, fmt.Errorf("stored trip %s is corrupt: %w", trip.ID, err)
	}
	return trip, nil
}

// generateName creates a default trip name from its creation date.
func generateName(createdAt int64) string {
	return fmt.Sprintf("Trip - %s", time.Unix(createdAt, 0).Format("Jan 2, 2006"))
}
