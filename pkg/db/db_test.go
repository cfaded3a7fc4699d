package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/campusmart/storefront/pkg/config"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSQLiteClient(t *testing.T) *Client {
	t.Helper()
	client, err := New(context.Background(), config.DBConfig{
		Driver: config.DriverSQLite,
		DSN:    "file:dbclient_" + uuid.NewString() + "?mode=memory&cache=shared",
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestNewRequiresDSN(t *testing.T) {
	_, err := New(context.Background(), config.DBConfig{}, nil)
	assert.Error(t, err)
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(context.Background(), config.DBConfig{Driver: "oracle", DSN: "x"}, nil)
	assert.Error(t, err)
}

func TestWithTxCommitsAndRollsBack(t *testing.T) {
	client := newSQLiteClient(t)
	ctx := context.Background()
	require.NoError(t, client.Ping(ctx))
	require.NoError(t, client.DB().Exec(`CREATE TABLE counters (name TEXT PRIMARY KEY, value INTEGER)`).Error)

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Exec(`INSERT INTO counters (name, value) VALUES ('a', 1)`).Error
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Exec(`INSERT INTO counters (name, value) VALUES ('b', 2)`).Error; err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, client.DB().Raw(`SELECT COUNT(*) FROM counters`).Scan(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "ux_orders_user_idempotency_key"}
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", pgErr), ""))
	assert.True(t, IsUniqueViolation(pgErr, "ux_orders_user_idempotency_key"))
	assert.False(t, IsUniqueViolation(pgErr, "users_email_key"))

	pqErr := &pq.Error{Code: "23505", Constraint: "users_email_key"}
	assert.True(t, IsUniqueViolation(pqErr, "users_email_key"))

	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: users.email"), ""))
	assert.False(t, IsUniqueViolation(errors.New("connection reset"), ""))
	assert.False(t, IsUniqueViolation(nil, ""))
}
