// Package journal keeps an append-only MySQL log of submission outcomes.
package journal

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

const table = "Submission_Journal"

const (
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Entry struct {
	CorrelationID string    `json:"correlation_id"`
	Wallet        string    `json:"wallet_address"`
	Action        string    `json:"action"`
	Control       string    `json:"control"`
	Status        string    `json:"status"`
	Digest        string    `json:"digest,omitempty"`
	Message       string    `json:"message,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type Journal interface {
	Record(ctx context.Context, e Entry) error
	Recent(ctx context.Context, wallet string, limit int) ([]Entry, error)
}

type sqlJournal struct {
	db *sql.DB
}

func New(db *sql.DB) Journal {
	return &sqlJournal{db: db}
}

// Migrate brings the journal schema up to date.
func Migrate(dsn string) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("migrate: unable to read migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, "mysql://"+dsn)
	if err != nil {
		return fmt.Errorf("migrate: unable to connect: %w", err)
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

var columns = []string{"correlation_id", "wallet_address", "action", "control", "status", "digest", "message", "created_at"}

func insertStatement(table string, cols []string) string {
	params := make([]string, len(cols))
	for i := range cols {
		params[i] = "?"
	}
	return fmt.Sprintf(`INSERT INTO %s(%s) VALUES (%s);`, table, strings.Join(cols, ", "), strings.Join(params, ", "))
}

func (j *sqlJournal) Record(ctx context.Context, e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	stmt, err := j.db.PrepareContext(ctx, insertStatement(table, columns))
	if err != nil {
		return fmt.Errorf("record: error preparing sql query: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, e.CorrelationID, e.Wallet, e.Action, e.Control, e.Status, e.Digest, e.Message, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("record: unable to insert record in %s: %w", table, err)
	}
	return nil
}

func (j *sqlJournal) Recent(ctx context.Context, wallet string, limit int) ([]Entry, error) {
	q := fmt.Sprintf(`SELECT %s FROM %s WHERE wallet_address = ? ORDER BY created_at DESC LIMIT ?;`, strings.Join(columns, ", "), table)
	st, err := j.db.PrepareContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("recent: unable to prepare query: %w", err)
	}
	defer st.Close()

	rows, err := st.QueryContext(ctx, wallet, limit)
	if err != nil {
		return nil, fmt.Errorf("recent: error querying db: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var digest, message sql.NullString
		err := rows.Scan(&e.CorrelationID, &e.Wallet, &e.Action, &e.Control, &e.Status, &digest, &message, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("recent: error scanning submissions: %w", err)
		}
		e.Digest, e.Message = digest.String, message.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

type nop struct{}

// Nop discards entries; used when no database is configured.
func Nop() Journal {
	return nop{}
}

func (nop) Record(context.Context, Entry) error { return nil }

func (nop) Recent(context.Context, string, int) ([]Entry, error) { return nil, nil }
