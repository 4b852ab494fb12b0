package middleware

import (
	"context"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/mokkicalc/internal/metrics"
)

// MetricsInterceptor counts RPCs by procedure and result code and records their latency.
// A nil m records nothing.
func MetricsInterceptor(m *metrics.Metrics) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			m.ObserveRPC(procedure, code, start)

			return resp, err
		}
	}
}
