package api

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/mokkicalc/internal/calculator"
	"github.com/mmynk/mokkicalc/internal/models"
	"github.com/mmynk/mokkicalc/internal/trip"
)

const (
	TripServiceName = "mokki.v1.TripService"
	AuthServiceName = "mokki.v1.AuthService"
)

// Procedure paths, in the /package.Service/Method form Connect routes on.
const (
	CreateTripProcedure = "/" + TripServiceName + "/CreateTrip"
	GetTripProcedure    = "/" + TripServiceName + "/GetTrip"
	ListTripsProcedure  = "/" + TripServiceName + "/ListTrips"
	UpdateTripProcedure = "/" + TripServiceName + "/UpdateTrip"
	DeleteTripProcedure = "/" + TripServiceName + "/DeleteTrip"

	RegisterProcedure = "/" + AuthServiceName + "/Register"
	LoginProcedure    = "/" + AuthServiceName + "/Login"
)

// TripView is a trip together with its coverage summary.
type TripView struct {
	Trip    *models.Trip       `json:"trip"`
	Summary calculator.Summary `json:"summary"`
}

// TripInfo is the list form of a trip.
type TripInfo struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Days      int             `json:"days"`
	People    int             `json:"people"`
	Expenses  int             `json:"expenses"`
	Total     decimal.Decimal `json:"total"`
	Version   int64           `json:"version"`
	UpdatedAt int64           `json:"updated_at"`
}

// NewTripInfo summarises a trip for listings.
func NewTripInfo(t *models.Trip) TripInfo {
	return TripInfo{
		ID:        t.ID,
		Name:      t.Name,
		Days:      len(t.Days),
		People:    len(t.People),
		Expenses:  len(t.Expenses),
		Total:     t.Totals.Total,
		Version:   t.Version,
		UpdatedAt: t.UpdatedAt,
	}
}

// CreateTripRequest starts a trip with Days empty days and the named people.
type CreateTripRequest struct {
	Name   string   `json:"name"`
	Days   int      `json:"days"`
	People []string `json:"people,omitempty"`
}

type CreateTripResponse struct {
	TripView
}

type GetTripRequest struct {
	TripID string `json:"trip_id"`
}

type GetTripResponse struct {
	TripView
}

type ListTripsRequest struct{}

type ListTripsResponse struct {
	Trips []TripInfo `json:"trips"`
}

// UpdateTripRequest applies Commands in order, then recomputes once.
// Version must be the version the client last read.
type UpdateTripRequest struct {
	TripID   string         `json:"trip_id"`
	Version  int64          `json:"version"`
	Commands []trip.Command `json:"commands"`
}

type UpdateTripResponse struct {
	TripView
}

type DeleteTripRequest struct {
	TripID string `json:"trip_id"`
}

type DeleteTripResponse struct{}

func (r *GetTripRequest) GetTripID() string    { return r.TripID }
func (r *UpdateTripRequest) GetTripID() string { return r.TripID }
func (r *DeleteTripRequest) GetTripID() string { return r.TripID }

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// User is the public view of an account.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	CreatedAt   int64  `json:"created_at"`
}

// NewUser drops the password hash from an account.
func NewUser(u *models.User) User {
	return User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}
