package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Leopold1975/feedback_board/internal/feedback/domain/models"
	repo "github.com/Leopold1975/feedback_board/internal/feedback/repository/feedbackrepo"
	"github.com/Leopold1975/feedback_board/internal/pkg/pgtools"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var columns = []string{"id", "title", "content", "username"}

type FeedbackPostgresRepo struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) FeedbackPostgresRepo {
	return FeedbackPostgresRepo{
		db: db,
	}
}

func (fr FeedbackPostgresRepo) CreateFeedback(ctx context.Context, //nolint:nonamedreturns
	f models.Feedback,
) (created models.Feedback, err error) {
	tx, err := fr.db.Begin(ctx)
	if err != nil {
		return models.Feedback{}, fmt.Errorf("cannot begin transaction error: %w", err)
	}

	defer func() {
		err = pgtools.CommitOrRollback(ctx, tx, err, "create")
	}()

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query, args, err := psql.Insert("feedback").
		Columns("title", "content", "username").
		Values(f.Title, f.Content, f.Username).
		Suffix("RETURNING id").ToSql()
	if err != nil {
		return models.Feedback{}, fmt.Errorf("to sql error: %w", err)
	}

	if err = tx.QueryRow(ctx, query, args...).Scan(&f.ID); err != nil {
		if code, _ := pgtools.PgErrorCode(err); code == pgtools.CodeForeignKeyViolation {
			return models.Feedback{}, repo.ErrUserNotFound
		}

		return models.Feedback{}, fmt.Errorf("scan error: %w", err)
	}

	return f, nil
}

func (fr FeedbackPostgresRepo) GetFeedback(ctx context.Context, id int64) (models.Feedback, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query, args, err := psql.Select(columns...).
		From("feedback").
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return models.Feedback{}, fmt.Errorf("to sql error: %w", err)
	}

	return scanOne(fr.db.QueryRow(ctx, query, args...))
}

func (fr FeedbackPostgresRepo) ListFeedbackByUser(ctx context.Context, username string) ([]models.Feedback, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query, args, err := psql.Select(columns...).
		From("feedback").
		Where(squirrel.Eq{"username": username}).
		OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("to sql error: %w", err)
	}

	rows, err := fr.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	feedback := make([]models.Feedback, 0, 10) //nolint:gomnd

	for rows.Next() {
		var f models.Feedback

		if err := rows.Scan(&f.ID, &f.Title, &f.Content, &f.Username); err != nil {
			return nil, fmt.Errorf("scan error %w", err)
		}

		feedback = append(feedback, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return feedback, nil
}

func (fr FeedbackPostgresRepo) UpdateFeedback(ctx context.Context, //nolint:nonamedreturns
	id int64, update repo.UpdateFunc,
) (updated models.Feedback, err error) {
	tx, err := fr.db.Begin(ctx)
	if err != nil {
		return models.Feedback{}, fmt.Errorf("cannot begin transaction error: %w", err)
	}

	defer func() {
		err = pgtools.CommitOrRollback(ctx, tx, err, "update")
	}()

	current, err := lockFeedback(ctx, tx, id)
	if err != nil {
		return models.Feedback{}, err
	}

	next := current
	if err = update(&next); err != nil {
		return models.Feedback{}, err
	}

	next.ID = current.ID
	next.Username = current.Username

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query, args, err := psql.Update("feedback").
		Set("title", next.Title).
		Set("content", next.Content).
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return models.Feedback{}, fmt.Errorf("to sql error: %w", err)
	}

	if _, err = tx.Exec(ctx, query, args...); err != nil {
		return models.Feedback{}, fmt.Errorf("exec error: %w", err)
	}

	return next, nil
}

func (fr FeedbackPostgresRepo) DeleteFeedback(ctx context.Context, id int64, check repo.CheckFunc) (err error) {
	tx, err := fr.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("cannot begin transaction error: %w", err)
	}

	defer func() {
		err = pgtools.CommitOrRollback(ctx, tx, err, "delete")
	}()

	current, err := lockFeedback(ctx, tx, id)
	if err != nil {
		return err
	}

	if err = check(current); err != nil {
		return err
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query, args, err := psql.Delete("feedback").
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("to sql error: %w", err)
	}

	if _, err = tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("exec error: %w", err)
	}

	return nil
}

func lockFeedback(ctx context.Context, tx pgx.Tx, id int64) (models.Feedback, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query, args, err := psql.Select(columns...).
		From("feedback").
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE").ToSql()
	if err != nil {
		return models.Feedback{}, fmt.Errorf("to sql error: %w", err)
	}

	return scanOne(tx.QueryRow(ctx, query, args...))
}

func scanOne(row pgx.Row) (models.Feedback, error) {
	var f models.Feedback

	if err := row.Scan(&f.ID, &f.Title, &f.Content, &f.Username); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Feedback{}, repo.ErrNotFound
		}

		return models.Feedback{}, fmt.Errorf("scan error: %w", err)
	}

	return f, nil
}
