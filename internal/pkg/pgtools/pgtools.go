package pgtools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Leopold1975/feedback_board/internal/pkg/config"
	"github.com/Leopold1975/feedback_board/migrations"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // driver for migrations
	"github.com/pressly/goose/v3"
)

const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
)

// New connects to postgres and brings the schema up to cfg.Version.
func New(ctx context.Context, cfg config.PostgresDB) (*pgxpool.Pool, error) {
	db, err := Connect(ctx, cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("connect to db error: %w", err)
	}

	if err := ApplyMigration(cfg); err != nil {
		db.Close()

		return nil, fmt.Errorf("apply migration error: %w", err)
	}

	return db, nil
}

const maxPingDelay = time.Second * 10

// Connect waits for postgres with a growing delay between pings. The pool is
// closed on every error path, including ctx cancellation.
func Connect(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	db, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("cannot create db pool error: %w", err)
	}

	delay := time.Second

	for {
		err := db.Ping(ctx)
		if err == nil {
			return db, nil
		}

		if delay > maxPingDelay {
			db.Close()

			return nil, fmt.Errorf("cannot ping db error: %w", err)
		}

		select {
		case <-ctx.Done():
			db.Close()

			return nil, fmt.Errorf("context error: %w", ctx.Err())
		case <-time.After(delay):
		}

		delay += time.Second
	}
}

func ApplyMigration(cfg config.PostgresDB) error {
	defaultVersion := 0

	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose set dialect error: %w", err)
	}

	dbM, err := goose.OpenDBWithDriver("pgx", cfg.MigrationConnString())
	if err != nil {
		return fmt.Errorf("goose open pgx db error: %w", err)
	}
	defer dbM.Close()

	if cfg.Reload {
		if err := goose.DownTo(dbM, ".", int64(defaultVersion)); err != nil {
			return fmt.Errorf("goose down error: %w", err)
		}
	}

	if cfg.Version == 0 {
		if err := goose.Up(dbM, "."); err != nil {
			return fmt.Errorf("goose up error: %w", err)
		}

		return nil
	}

	if err := goose.UpTo(dbM, ".", int64(cfg.Version)); err != nil {
		return fmt.Errorf("goose up error: %w", err)
	}

	return nil
}

func CommitOrRollback(ctx context.Context, tx pgx.Tx, err error, where string) error {
	if err == nil {
		if errT := tx.Commit(ctx); errT != nil {
			err = fmt.Errorf("commit error: %w", errT)
		}
	} else {
		if errT := tx.Rollback(ctx); errT != nil {
			err = fmt.Errorf("%s error: %w rollback error: %w", where, err, errT)
		} else {
			err = fmt.Errorf("%s error: %w", where, err)
		}
	}

	return err
}

// PgErrorCode returns the SQLSTATE and constraint of err, if it came from postgres.
func PgErrorCode(err error) (code string, constraint string) {
	target := new(pgconn.PgError)
	if errors.As(err, &target) {
		return target.Code, target.ConstraintName
	}

	return "", ""
}
