package lambda

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"product-catalog-api/internal/apperrors"
)

// Middleware wraps a handler with cross-cutting behavior.
type Middleware func(HandlerFunc) HandlerFunc

// Chain applies middlewares around a handler. The first middleware is
// the outermost layer.
func Chain(handler HandlerFunc, middlewares ...Middleware) HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

// WithErrorMapping converts a handler error into the taxonomy's
// HTTP-shaped JSON response. After this stage no error escapes to the
// runtime; unrecognized failures become a 500 "unknown error" body.
func WithErrorMapping() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *Request) (*Response, error) {
			resp, err := next(ctx, req)
			if err == nil {
				return resp, nil
			}

			status, body := apperrors.ToResponse(err)
			mapped, encodeErr := JSON(status, body)
			if encodeErr != nil {
				return &Response{
					StatusCode: 500,
					Headers:    map[string]string{"Content-Type": "application/json"},
					Body:       []byte(`{"code":"internal_server_error","message":"unknown error"}`),
				}, nil
			}
			return mapped, nil
		}
	}
}

// WithRecovery turns a handler panic into an error for the mapper above.
func WithRecovery(logger *logrus.Logger) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *Request) (resp *Response, err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.WithFields(logrus.Fields{
						"panic":  r,
						"method": req.Method,
						"path":   req.Path,
					}).Error("Handler panic recovered")
					resp = nil
					err = fmt.Errorf("handler panic: %v", r)
				}
			}()
			return next(ctx, req)
		}
	}
}

// WithMetricsFlush forces a metric export after every invocation, so
// counters recorded during the request are not lost when the execution
// environment freezes between invocations. A flush failure is logged
// and never alters the response.
func WithMetricsFlush(flush func(context.Context) error, logger *logrus.Logger) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *Request) (*Response, error) {
			resp, err := next(ctx, req)
			if flushErr := flush(ctx); flushErr != nil {
				logger.WithError(flushErr).Warn("Metric flush failed")
			}
			return resp, err
		}
	}
}

// WithRequestLogging logs one structured line per invocation, tagged
// with a generated request id.
func WithRequestLogging(logger *logrus.Logger) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *Request) (*Response, error) {
			start := time.Now()
			requestID := req.Headers["X-Request-ID"]
			if requestID == "" {
				requestID = uuid.New().String()
			}

			resp, err := next(ctx, req)

			fields := logrus.Fields{
				"request_id": requestID,
				"method":     req.Method,
				"path":       req.Path,
				"latency_ms": float64(time.Since(start).Nanoseconds()) / 1e6,
			}
			if resp != nil {
				fields["status_code"] = resp.StatusCode
			}

			switch {
			case err != nil:
				logger.WithFields(fields).WithError(err).Error("Request failed")
			case resp != nil && resp.StatusCode >= 400:
				logger.WithFields(fields).Warn("Request completed with error status")
			default:
				logger.WithFields(fields).Info("Request completed")
			}

			return resp, err
		}
	}
}
