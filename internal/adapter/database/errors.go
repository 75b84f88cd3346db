package database

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"

	"goalsapp/internal/core/domain"
)

// translateError maps driver errors that carry domain meaning. A foreign key
// failure can only come from tasks.goal_id, so it means the goal is gone.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
		return domain.ErrGoalNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ForeignKeyViolation:
			return domain.ErrGoalNotFound
		case pgerrcode.InvalidDatetimeFormat, pgerrcode.DatetimeFieldOverflow:
			return domain.ErrDateFormat
		}
	}

	return err
}
