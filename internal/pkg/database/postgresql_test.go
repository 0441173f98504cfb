package database

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireError(t *testing.T) {
	err := acquireError(context.Background(), context.DeadlineExceeded)
	assert.ErrorIs(t, err, ErrPoolExhausted)

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	err = acquireError(canceled, context.Canceled)
	assert.NotErrorIs(t, err, ErrPoolExhausted)
	assert.ErrorIs(t, err, context.Canceled)

	expired, cancelExpired := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancelExpired()
	err = acquireError(expired, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, ErrPoolExhausted, "the caller's own deadline is not pool exhaustion")

	err = acquireError(context.Background(), errors.New("dial tcp: refused"))
	assert.NotErrorIs(t, err, ErrPoolExhausted)
}

func TestErrRow(t *testing.T) {
	var dest int
	assert.ErrorIs(t, errRow{err: ErrPoolExhausted}.Scan(&dest), ErrPoolExhausted)
}

func TestQuerierFromContext_BoundsAcquireOutsideTx(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := NewPostgreSQLDB(dsn, Options{MaxConns: 1, AcquireTimeout: 100 * time.Millisecond})
	require.NoError(t, err)
	defer db.Close()

	var one int
	require.NoError(t, db.QuerierFromContext(context.Background()).QueryRow(context.Background(), "SELECT 1").Scan(&one))
	assert.Equal(t, 1, one)

	rows, err := db.QuerierFromContext(context.Background()).Query(context.Background(), "SELECT generate_series(1, 3)")
	require.NoError(t, err)
	count := 0
	for rows.Next() {
		count++
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, 3, count)

	err = db.WithinTx(context.Background(), func(ctx context.Context) error {
		outside := context.Background()
		start := time.Now()

		scanErr := db.QuerierFromContext(outside).QueryRow(outside, "SELECT 1").Scan(&one)
		assert.ErrorIs(t, scanErr, ErrPoolExhausted)
		assert.Less(t, time.Since(start), 2*time.Second)

		_, queryErr := db.QuerierFromContext(outside).Query(outside, "SELECT 1")
		assert.ErrorIs(t, queryErr, ErrPoolExhausted)

		_, execErr := db.QuerierFromContext(outside).Exec(outside, "SELECT 1")
		assert.ErrorIs(t, execErr, ErrPoolExhausted)
		return nil
	})
	require.NoError(t, err)

	// The connection is back in the pool once the rows above were drained.
	require.NoError(t, db.QuerierFromContext(context.Background()).QueryRow(context.Background(), "SELECT 1").Scan(&one))
}
