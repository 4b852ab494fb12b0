package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// tripScoped is implemented by requests that address a single trip.
type tripScoped interface {
	GetTripID() string
}

// LoggingInterceptor logs each RPC with its procedure, caller, trip and duration.
// Client errors log at warn, internal failures at error.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			attrs := []any{
				"procedure", req.Spec().Procedure,
				"user_id", GetUserID(ctx), // empty if pre-auth
			}
			if msg, ok := req.Any().(tripScoped); ok {
				attrs = append(attrs, "trip_id", msg.GetTripID())
			}

			resp, err := next(ctx, req)

			attrs = append(attrs, "duration_ms", time.Since(start).Milliseconds())
			var connectErr *connect.Error
			switch {
			case err == nil:
				slog.Info("RPC ok", attrs...)
			case errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal:
				slog.Warn("RPC rejected", append(attrs, "code", connectErr.Code(), "error", connectErr.Message())...)
			default:
				slog.Error("RPC failed", append(attrs, "error", err)...)
			}

			return resp, err
		}
	}
}
