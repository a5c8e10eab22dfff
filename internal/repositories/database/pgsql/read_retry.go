package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pixbank-app/pixbank-backend/internal/apperrors"
)

// readWithRetry runs an idempotent read, retrying a single time when the
// first attempt fails with an error the driver reports as safe to retry
// (the request never reached the server). Only reads go through here;
// mutating statements are never retried. A second transient failure surfaces
// as apperrors.ErrInternal.
func readWithRetry[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	res, err := fn(ctx)
	if err == nil || !pgconn.SafeToRetry(err) || ctx.Err() != nil {
		return res, err
	}

	res, err = fn(ctx)
	if err != nil && pgconn.SafeToRetry(err) {
		var zero T
		return zero, fmt.Errorf("%w: store unavailable: %v", apperrors.ErrInternal, err)
	}
	return res, err
}
