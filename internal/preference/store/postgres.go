package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/lib/pq"

	"atelier/pkg/platform/sentinel"
)

// Schema creates the table Postgres reads and writes.
const Schema = `
CREATE TABLE IF NOT EXISTS visitor_preferences (
	visitor_id TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (visitor_id, key)
)`

// Postgres persists values per visitor in PostgreSQL.
type Postgres struct {
	db      *sql.DB
	visitor string
}

func NewPostgres(db *sql.DB, visitor string) *Postgres {
	return &Postgres{db: db, visitor: visitor}
}

// Migrate applies Schema.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("migrate visitor_preferences: %w", err)
	}
	return nil
}

func (s *Postgres) Get(ctx context.Context, key string) (string, error) {
	defer observe("postgres", "get", time.Now())
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM visitor_preferences WHERE visitor_id = $1 AND key = $2`,
		s.visitor, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", classify("get preference", err)
	}
	return value, nil
}

func (s *Postgres) Set(ctx context.Context, key, value string) error {
	defer observe("postgres", "set", time.Now())
	query := `
		INSERT INTO visitor_preferences (visitor_id, key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (visitor_id, key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, s.visitor, key, value); err != nil {
		return classify("set preference", err)
	}
	return nil
}

func (s *Postgres) Remove(ctx context.Context, key string) error {
	defer observe("postgres", "remove", time.Now())
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM visitor_preferences WHERE visitor_id = $1 AND key = $2`,
		s.visitor, key,
	)
	if err != nil {
		return classify("remove preference", err)
	}
	return nil
}

// classify marks connection-class failures as sentinel.ErrUnavailable: pq's
// connection exception class, dial and I/O errors, broken pooled connections and
// deadlines. Anything else, such as a constraint violation, is passed through.
func classify(op string, err error) error {
	if unavailable(err) {
		return fmt.Errorf("%s: %w: %v", op, sentinel.ErrUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func unavailable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "57P01", "57P02", "57P03": // admin_shutdown, crash_shutdown, cannot_connect_now
			return true
		}
		return pqErr.Code.Class() == "08"
	}
	var netErr net.Error
	switch {
	case errors.As(err, &netErr):
		return true
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, context.DeadlineExceeded):
		return true
	}
	return false
}
