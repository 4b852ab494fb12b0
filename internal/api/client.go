package api

import (
	"context"

	"connectrpc.com/connect"
)

// TripClient calls the trip service.
type TripClient struct {
	createTrip *connect.Client[CreateTripRequest, CreateTripResponse]
	getTrip    *connect.Client[GetTripRequest, GetTripResponse]
	listTrips  *connect.Client[ListTripsRequest, ListTripsResponse]
	updateTrip *connect.Client[UpdateTripRequest, UpdateTripResponse]
	deleteTrip *connect.Client[DeleteTripRequest, DeleteTripResponse]
}

// NewTripClient builds a client for the trip service at baseURL.
func NewTripClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *TripClient {
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &TripClient{
		createTrip: connect.NewClient[CreateTripRequest, CreateTripResponse](httpClient, baseURL+CreateTripProcedure, opts...),
		getTrip:    connect.NewClient[GetTripRequest, GetTripResponse](httpClient, baseURL+GetTripProcedure, opts...),
		listTrips:  connect.NewClient[ListTripsRequest, ListTripsResponse](httpClient, baseURL+ListTripsProcedure, opts...),
		updateTrip: connect.NewClient[UpdateTripRequest, UpdateTripResponse](httpClient, baseURL+UpdateTripProcedure, opts...),
		deleteTrip: connect.NewClient[DeleteTripRequest, DeleteTripResponse](httpClient, baseURL+DeleteTripProcedure, opts...),
	}
}

func (c *TripClient) CreateTrip(ctx context.Context, req *connect.Request[CreateTripRequest]) (*connect.Response[CreateTripResponse], error) {
	return c.createTrip.CallUnary(ctx, req)
}

func (c *TripClient) GetTrip(ctx context.Context, req *connect.Request[GetTripRequest]) (*connect.Response[GetTripResponse], error) {
	return c.getTrip.CallUnary(ctx, req)
}

func (c *TripClient) ListTrips(ctx context.Context, req *connect.Request[ListTripsRequest]) (*connect.Response[ListTripsResponse], error) {
	return c.listTrips.CallUnary(ctx, req)
}

func (c *TripClient) UpdateTrip(ctx context.Context, req *connect.Request[UpdateTripRequest]) (*connect.Response[UpdateTripResponse], error) {
	return c.updateTrip.CallUnary(ctx, req)
}

func (c *TripClient) DeleteTrip(ctx context.Context, req *connect.Request[DeleteTripRequest]) (*connect.Response[DeleteTripResponse], error) {
	return c.deleteTrip.CallUnary(ctx, req)
}

// AuthClient calls the auth service.
type AuthClient struct {
	register *connect.Client[RegisterRequest, RegisterResponse]
	login    *connect.Client[LoginRequest, LoginResponse]
}

// NewAuthClient builds a client for the auth service at baseURL.
func NewAuthClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthClient {
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &AuthClient{
		register: connect.NewClient[RegisterRequest, RegisterResponse](httpClient, baseURL+RegisterProcedure, opts...),
		login:    connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+LoginProcedure, opts...),
	}
}

func (c *AuthClient) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *AuthClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}
