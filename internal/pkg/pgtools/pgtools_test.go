package pgtools

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
	commitErr  error
}

func (f *fakeTx) Commit(context.Context) error {
	f.committed = true

	return f.commitErr
}

func (f *fakeTx) Rollback(context.Context) error {
	f.rolledBack = true

	return nil
}

func TestCommitOrRollback(t *testing.T) {
	ctx := context.Background()

	tx := &fakeTx{}
	require.NoError(t, CommitOrRollback(ctx, tx, nil, "create"))
	require.True(t, tx.committed)
	require.False(t, tx.rolledBack)

	sentinel := errors.New("boom")
	tx = &fakeTx{}
	err := CommitOrRollback(ctx, tx, sentinel, "update")
	require.ErrorIs(t, err, sentinel)
	require.ErrorContains(t, err, "update error")
	require.True(t, tx.rolledBack)
	require.False(t, tx.committed)

	tx = &fakeTx{commitErr: errors.New("conn lost")}
	require.ErrorContains(t, CommitOrRollback(ctx, tx, nil, "delete"), "commit error")
}

func TestPgErrorCode(t *testing.T) {
	err := fmt.Errorf("exec error: %w", &pgconn.PgError{Code: CodeUniqueViolation, ConstraintName: "users_email_key"})

	code, constraint := PgErrorCode(err)
	require.Equal(t, CodeUniqueViolation, code)
	require.Equal(t, "users_email_key", constraint)

	code, constraint = PgErrorCode(errors.New("plain"))
	require.Empty(t, code)
	require.Empty(t, constraint)
}

func TestConnectStopsOnContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*100)
	defer cancel()

	start := time.Now()

	db, err := Connect(ctx, "postgres://u:p@127.0.0.1:1/feedback?connect_timeout=1")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Nil(t, db)
	require.Less(t, time.Since(start), time.Second)
}
