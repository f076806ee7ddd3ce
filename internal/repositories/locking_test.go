package repositories

import (
	"context"
	"testing"
	"time"

	apperrors "propmarket/internal/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newDryRunPostgres returns a postgres-dialect DB that renders statements
// without executing them, and the SELECTs it rendered.
func newDryRunPostgres(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *[]string) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	var queries []string
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:capture_sql", func(tx *gorm.DB) {
		queries = append(queries, tx.Statement.SQL.String())
	}))
	return db, mock, &queries
}

func TestRowLocks_RenderForUpdate(t *testing.T) {
	db, _, queries := newDryRunPostgres(t)
	p := NewProcedures(db, ProceduresConfig{}).(*procedures)

	_, err := lockProperty(db, "prop-1", apperrors.ErrPropertyNotFound)
	require.NoError(t, err)
	_, err = p.lockWallet(db, "user-1")
	require.NoError(t, err)
	// Nothing is scanned in a dry run, so the request never looks pending.
	_, _ = lockWithdrawal(db, "wr-1")

	require.Len(t, *queries, 3)
	for i, table := range []string{`"properties"`, `"wallets"`, `"withdrawal_requests"`} {
		q := (*queries)[i]
		assert.Contains(t, q, table)
		assert.Contains(t, q, "FOR UPDATE", q)
	}
}

func TestExpireListings_SkipsLockedRows(t *testing.T) {
	db, mock, queries := newDryRunPostgres(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	ids, err := NewProcedures(db, ProceduresConfig{}).ExpireListings(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.Len(t, *queries, 1)
	assert.Contains(t, (*queries)[0], "FOR UPDATE SKIP LOCKED")
	assert.NoError(t, mock.ExpectationsWereMet())
}
