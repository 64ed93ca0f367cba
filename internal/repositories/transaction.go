package repositories

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Guarded mutations need isolation, not just atomicity: under read committed
// two concurrent transactions could each count 9 admins and both commit their
// promotion. Serializable isolation makes the count query and the write behave
// as one unit; Postgres aborts one of two conflicting transactions with
// SQLSTATE 40001, which is safe to retry. SQLite runs serializable natively.
var serializableOpts = &sql.TxOptions{Isolation: sql.LevelSerializable}

const serializableAttempts = 3

// runSerializable executes fn inside a serializable transaction, retrying a
// bounded number of times when the database aborts it with a serialization
// failure.
func runSerializable(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return withSerializableRetry(func() error {
		return db.Transaction(fn, serializableOpts)
	})
}

func withSerializableRetry(fn func() error) error {
	var err error
	for attempt := 0; attempt < serializableAttempts; attempt++ {
		err = fn()
		if !isSerializationFailure(err) {
			return err
		}
	}
	return err
}

// isSerializationFailure reports whether err is a Postgres serialization
// failure (SQLSTATE 40001).
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "40001"
}
