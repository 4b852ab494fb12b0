package service

import (
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/mokkicalc/internal/api"
)

// NewTripServiceHandler builds the HTTP handler serving every TripService
// procedure. It returns the path prefix to mount it on.
func NewTripServiceHandler(svc *TripService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{api.WithJSON()}, opts...)
	mux := http.NewServeMux()
	mux.Handle(api.CreateTripProcedure, connect.NewUnaryHandler(api.CreateTripProcedure, svc.CreateTrip, opts...))
	mux.Handle(api.GetTripProcedure, connect.NewUnaryHandler(api.GetTripProcedure, svc.GetTrip, opts...))
	mux.Handle(api.ListTripsProcedure, connect.NewUnaryHandler(api.ListTripsProcedure, svc.ListTrips, opts...))
	mux.Handle(api.UpdateTripProcedure, connect.NewUnaryHandler(api.UpdateTripProcedure, svc.UpdateTrip, opts...))
	mux.Handle(api.DeleteTripProcedure, connect.NewUnaryHandler(api.DeleteTripProcedure, svc.DeleteTrip, opts...))
	return "/" + api.TripServiceName + "/", mux
}

// NewAuthServiceHandler builds the HTTP handler serving every AuthService procedure.
func NewAuthServiceHandler(svc *AuthService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{api.WithJSON()}, opts...)
	mux := http.NewServeMux()
	mux.Handle(api.RegisterProcedure, connect.NewUnaryHandler(api.RegisterProcedure, svc.Register, opts...))
	mux.Handle(api.LoginProcedure, connect.NewUnaryHandler(api.LoginProcedure, svc.Login, opts...))
	return "/" + api.AuthServiceName + "/", mux
}
