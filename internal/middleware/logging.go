// Package middleware holds Connect interceptors and HTTP wrappers shared by
// the server.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call.
// It logs the procedure name, receipt ID when present, duration, and any
// error codes/messages.
func LoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure
			receiptID := receiptIDOf(req.Any())

			resp, err := next(ctx, req)

			duration := time.Since(start).Milliseconds()
			if err != nil {
				var connectErr *connect.Error
				if errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal {
					logger.Warn("RPC error",
						"procedure", procedure,
						"code", connectErr.Code(),
						"error", connectErr.Message(),
						"receipt_id", receiptID,
						"duration_ms", duration,
					)
				} else {
					logger.Error("RPC error",
						"procedure", procedure,
						"error", err,
						"receipt_id", receiptID,
						"duration_ms", duration,
					)
				}
			} else {
				logger.Info("RPC ok",
					"procedure", procedure,
					"receipt_id", receiptID,
					"duration_ms", duration,
				)
			}

			return resp, err
		}
	}
}

// receiptIDOf extracts the receipt ID from request messages that carry one.
func receiptIDOf(msg any) string {
	if m, ok := msg.(interface{ GetReceiptID() string }); ok {
		return m.GetReceiptID()
	}
	return ""
}
