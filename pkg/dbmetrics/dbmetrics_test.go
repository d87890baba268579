package dbmetrics

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EquipShare-BookingService/pkg/metrics"
)

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", operation("SELECT id FROM bookings"))
	assert.Equal(t, "insert", operation("  insert into bookings (id) values ($1)"))
	assert.Equal(t, "update", operation("UPDATE bookings SET status = $1"))
	assert.Equal(t, "other", operation("LOCK TABLE bookings"))
}

func TestGetExecutor(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	wrapped := Wrap(db, nil)
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Equal(t, DBExecutor(wrapped), GetExecutor(ctx, wrapped))

	mock.ExpectBegin()
	tx, err := wrapped.BeginTx(ctx, nil)
	require.NoError(t, err)

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Equal(t, DBExecutor(tx), GetExecutor(txCtx, wrapped))

	mock.ExpectRollback()
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_RecordsErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m := metrics.NewWithRegistry("test", prometheus.NewRegistry())
	wrapped := Wrap(db, m)

	mock.ExpectExec("UPDATE bookings").WillReturnError(assert.AnError)

	_, err = wrapped.ExecContext(context.Background(), "UPDATE bookings SET status = $1", "Approved")
	require.Error(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("test", "update")))
	assert.NoError(t, mock.ExpectationsWereMet())
}
