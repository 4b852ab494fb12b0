package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/mokkicalc/internal/api"
	"github.com/mmynk/mokkicalc/internal/metrics"
	"github.com/mmynk/mokkicalc/internal/middleware"
	"github.com/mmynk/mokkicalc/internal/models"
	"github.com/mmynk/mokkicalc/internal/storage"
	"github.com/mmynk/mokkicalc/internal/trip"
)

// maxDays bounds the number of days a trip can be created with in one call.
const maxDays = 366

// TripService implements the mokki.v1.TripService procedures.
type TripService struct {
	store   storage.TripStore
	metrics *metrics.Metrics
}

// NewTripService creates a TripService. m may be nil.
func NewTripService(store storage.TripStore, m *metrics.Metrics) *TripService {
	return &TripService{store: store, metrics: m}
}

// CreateTrip starts a trip owned by the caller.
func (s *TripService) CreateTrip(ctx context.Context, req *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, fmt.Errorf("authentication required"))
	}
	slog.Info("CreateTrip request received", "name", req.Msg.Name, "days", req.Msg.Days, "people", len(req.Msg.People))

	if req.Msg.Days < 0 || req.Msg.Days > maxDays {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("days must be between 0 and %d", maxDays))
	}

	session := trip.NewSession(&models.Trip{Name: req.Msg.Name, OwnerID: userID})
	for i := 0; i < req.Msg.Days; i++ {
		session.AddDay("")
	}
	for _, name := range req.Msg.People {
		if _, err := session.AddPerson(name); err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("person %q: %w", name, err))
		}
	}
	view := s.recompute(session)

	if err := s.store.CreateTrip(ctx, session.Trip()); err != nil {
		slog.Error("CreateTrip failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Trip created", "trip_id", session.Trip().ID, "owner_id", userID)
	return connect.NewResponse(&api.CreateTripResponse{TripView: view}), nil
}

// GetTrip returns a trip and its coverage summary.
func (s *TripService) GetTrip(ctx context.Context, req *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error) {
	slog.Info("GetTrip request received", "trip_id", req.Msg.TripID)

	t, err := s.loadOwned(ctx, req.Msg.TripID)
	if err != nil {
		return nil, err
	}

	view := s.recompute(trip.NewSession(t))
	return connect.NewResponse(&api.GetTripResponse{TripView: view}), nil
}

// ListTrips returns the caller's trips, most recently updated first.
func (s *TripService) ListTrips(ctx context.Context, req *connect.Request[api.ListTripsRequest]) (*connect.Response[api.ListTripsResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, fmt.Errorf("authentication required"))
	}
	slog.Info("ListTrips request received", "user_id", userID)

	trips, err := s.store.ListTrips(ctx, userID)
	if err != nil {
		slog.Error("ListTrips failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	infos := make([]api.TripInfo, 0, len(trips))
	for _, t := range trips {
		infos = append(infos, api.NewTripInfo(t))
	}
	return connect.NewResponse(&api.ListTripsResponse{Trips: infos}), nil
}

// UpdateTrip applies a batch of commands to the version of the trip the caller
// last read, recomputes once and stores the result.
func (s *TripService) UpdateTrip(ctx context.Context, req *connect.Request[api.UpdateTripRequest]) (*connect.Response[api.UpdateTripResponse], error) {
	slog.Info("UpdateTrip request received",
		"trip_id", req.Msg.TripID,
		"version", req.Msg.Version,
		"commands", len(req.Msg.Commands),
	)

	t, err := s.loadOwned(ctx, req.Msg.TripID)
	if err != nil {
		return nil, err
	}
	if t.Version != req.Msg.Version {
		return nil, connect.NewError(connect.CodeAborted,
			fmt.Errorf("trip is at version %d, not %d: %w", t.Version, req.Msg.Version, storage.ErrVersionConflict))
	}

	session := trip.NewSession(t)
	if err := session.ApplyAll(req.Msg.Commands); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	for _, cmd := range req.Msg.Commands {
		s.metrics.CountCommand(string(cmd.Op))
	}
	view := s.recompute(session)

	if len(req.Msg.Commands) > 0 {
		if err := s.store.UpdateTrip(ctx, t); err != nil {
			return nil, storeError("UpdateTrip", err)
		}
	}

	slog.Info("Trip updated", "trip_id", t.ID, "version", t.Version, "balanced", view.Summary.Balanced)
	return connect.NewResponse(&api.UpdateTripResponse{TripView: view}), nil
}

// DeleteTrip removes one of the caller's trips.
func (s *TripService) DeleteTrip(ctx context.Context, req *connect.Request[api.DeleteTripRequest]) (*connect.Response[api.DeleteTripResponse], error) {
	slog.Info("DeleteTrip request received", "trip_id", req.Msg.TripID)

	if _, err := s.loadOwned(ctx, req.Msg.TripID); err != nil {
		return nil, err
	}
	if err := s.store.DeleteTrip(ctx, req.Msg.TripID); err != nil {
		return nil, storeError("DeleteTrip", err)
	}

	slog.Info("Trip deleted", "trip_id", req.Msg.TripID)
	return connect.NewResponse(&api.DeleteTripResponse{}), nil
}

// loadOwned fetches a trip and checks that the caller owns it.
func (s *TripService) loadOwned(ctx context.Context, tripID string) (*models.Trip, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, fmt.Errorf("authentication required"))
	}
	if tripID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("trip_id is required"))
	}

	t, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, storeError("GetTrip", err)
	}
	if t.OwnerID != userID {
		return nil, connect.NewError(connect.CodePermissionDenied, fmt.Errorf("trip %s belongs to another user", tripID))
	}
	return t, nil
}

func (s *TripService) recompute(session *trip.Session) api.TripView {
	start := time.Now()
	didWork := session.Recompute()
	s.metrics.ObserveRecompute(start, didWork)
	return api.TripView{Trip: session.Trip(), Summary: session.Summary()}
}

// storeError maps storage sentinels onto Connect codes.
func storeError(op string, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrVersionConflict):
		return connect.NewError(connect.CodeAborted, err)
	default:
		slog.Error(op+" failed", "error", err)
		return connect.NewError(connect.CodeInternal, err)
	}
}
