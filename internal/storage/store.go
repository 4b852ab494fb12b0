// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/mokkicalc/internal/models"
)

var (
	// ErrNotFound is returned when a trip or user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrVersionConflict is returned by UpdateTrip when the stored trip has
	// moved on since it was read.
	ErrVersionConflict = errors.New("trip was modified by someone else")
)

// TripStore persists whole trips as opaque state blobs.
type TripStore interface {
	// CreateTrip persists a new trip.
	// ID, CreatedAt, UpdatedAt and Version are populated by the store.
	CreateTrip(ctx context.Context, trip *models.Trip) error

	// GetTrip retrieves a trip by its ID.
	// Returns ErrNotFound if the trip does not exist.
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)

	// ListTrips returns the trips owned by ownerID, most recently updated first.
	ListTrips(ctx context.Context, ownerID string) ([]*models.Trip, error)

	// UpdateTrip replaces the stored state if trip.Version still matches the
	// stored version, then bumps trip.Version.
	// Returns ErrVersionConflict otherwise, ErrNotFound if the trip is gone.
	UpdateTrip(ctx context.Context, trip *models.Trip) error

	// DeleteTrip removes a trip. Returns ErrNotFound if it does not exist.
	DeleteTrip(ctx context.Context, tripID string) error
}

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail and GetUserByID return ErrNotFound for unknown users.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Store defines the full storage surface used by the server.
// This abstraction allows swapping storage backends without changing the service layer.
type Store interface {
	TripStore
	UserStore

	// Close releases any resources held by the store.
	Close() error
}
