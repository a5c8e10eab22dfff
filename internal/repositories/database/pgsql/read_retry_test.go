package pgsql

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixbank-app/pixbank-backend/internal/apperrors"
)

// connNotSentErr mimics a pgconn error raised before the request reached the
// server, which the driver reports as safe to retry.
type connNotSentErr struct{}

func (connNotSentErr) Error() string     { return "conn busy" }
func (connNotSentErr) SafeToRetry() bool { return true }

func TestReadWithRetry_FirstAttemptSucceeds(t *testing.T) {
	calls := 0
	got, err := readWithRetry(context.Background(), func(ctx context.Context) (int, error) {
		calls++
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 1, calls)
}

func TestReadWithRetry_TransientFailureRetriedOnce(t *testing.T) {
	calls := 0
	got, err := readWithRetry(context.Background(), func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", connNotSentErr{}
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 2, calls)
}

func TestReadWithRetry_SecondTransientFailureSurfacesAsInternal(t *testing.T) {
	calls := 0
	_, err := readWithRetry(context.Background(), func(ctx context.Context) (int, error) {
		calls++
		return 0, connNotSentErr{}
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInternal)
	assert.Equal(t, 2, calls)
}

func TestReadWithRetry_NonTransientFailureNotRetried(t *testing.T) {
	calls := 0
	_, err := readWithRetry(context.Background(), func(ctx context.Context) (int, error) {
		calls++
		return 0, apperrors.ErrNotFound
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NotErrorIs(t, err, apperrors.ErrInternal)
	assert.Equal(t, 1, calls)
}

func TestReadWithRetry_CancelledContextNotRetried(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	_, err := readWithRetry(ctx, func(ctx context.Context) (int, error) {
		calls++
		cancel()
		return 0, connNotSentErr{}
	})

	require.Error(t, err)
	var transient connNotSentErr
	assert.True(t, errors.As(err, &transient))
	assert.Equal(t, 1, calls)
}

func TestLockAccountsQueryOrdersRowsBeforeLocking(t *testing.T) {
	orderBy := strings.Index(lockAccountsForUpdateQuery, "ORDER BY account_id")
	forUpdate := strings.Index(lockAccountsForUpdateQuery, "FOR UPDATE")

	require.NotEqual(t, -1, orderBy, "locking query must sort by account_id")
	require.NotEqual(t, -1, forUpdate)
	assert.Less(t, orderBy, forUpdate, "rows must be sorted before FOR UPDATE applies")
}

// The account-delete cascade lives in the schema; this guards the migrations
// against losing it.
func TestOwnedRowsCascadeOnAccountDelete(t *testing.T) {
	for _, name := range []string{
		"000002_create_pix_keys.up.sql",
		"000003_create_transactions.up.sql",
	} {
		raw, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "migrations", name))
		require.NoError(t, err, name)

		ddl := string(raw)
		assert.Contains(t, ddl, "REFERENCES accounts", name)
		assert.Contains(t, ddl, "ON DELETE CASCADE", name)
	}
}
