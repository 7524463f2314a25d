package kit

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Endpoint is a transport-agnostic action function.
// Each action (transform, list tables) is an Endpoint.
// HTTP handlers and MCP tools both dispatch to the same Endpoints.
type Endpoint func(ctx context.Context, request any) (response any, err error)

// Middleware wraps an Endpoint with cross-cutting concerns (logging, tracing).
type Middleware func(Endpoint) Endpoint

// Chain composes middlewares so the first is outermost.
// Chain(a, b, c)(endpoint) == a(b(c(endpoint)))
func Chain(outer Middleware, others ...Middleware) Middleware {
	return func(next Endpoint) Endpoint {
		for i := len(others) - 1; i >= 0; i-- {
			next = others[i](next)
		}
		return outer(next)
	}
}

// Logging logs every call of the endpoint named name at debug level, and
// failures at warn.
func Logging(logger *zerolog.Logger, name string) Middleware {
	return func(next Endpoint) Endpoint {
		return func(ctx context.Context, request any) (any, error) {
			start := time.Now()
			resp, err := next(ctx, request)

			evt := logger.Debug()
			if err != nil {
				evt = logger.Warn().Err(err)
			}
			evt.Str("endpoint", name).
				Str("transport", GetTransport(ctx)).
				Str("request_id", GetRequestID(ctx)).
				Dur("elapsed", time.Since(start)).
				Msg("endpoint call")
			return resp, err
		}
	}
}
