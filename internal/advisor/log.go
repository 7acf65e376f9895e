// internal/advisor/log.go
//
// SQLite-backed transcript of advisory calls (advice_log table).
// Entries are written best-effort by Service and read back newest first.

package advisor

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Entry is one recorded advisory call.
type Entry struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Input     string    `json:"input"`
	Response  string    `json:"response"`
	Fallback  bool      `json:"fallback"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"createdAt"`
}

// timeLayout is fixed-width so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Default and maximum page sizes for Recent.
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// Log stores entries in the advice_log table.
type Log struct{ db *sql.DB }

func NewLog(db *sql.DB) *Log { return &Log{db: db} }

// Record inserts e, assigning an ID when it has none.
func (l *Log) Record(ctx context.Context, e Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	fallback := 0
	if e.Fallback {
		fallback = 1
	}
	_, err := l.db.ExecContext(ctx, `
        INSERT INTO advice_log (id, kind, input, response, fallback, model, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, string(e.Kind), e.Input, e.Response, fallback, e.Model, e.CreatedAt.UTC().Format(timeLayout),
	)
	return err
}

// Recent returns up to limit entries, newest first.
// A limit outside 1..MaxHistoryLimit is replaced by the nearest bound (or the default when <= 0).
func (l *Log) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	rows, err := l.db.QueryContext(ctx, `
        SELECT id, kind, input, response, fallback, model, created_at
        FROM advice_log
        ORDER BY created_at DESC, rowid DESC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Entry, 0, limit)
	for rows.Next() {
		var (
			e        Entry
			kind     string
			fallback int
			created  string
		)
		if err := rows.Scan(&e.ID, &kind, &e.Input, &e.Response, &fallback, &e.Model, &created); err != nil {
			return nil, err
		}
		e.Kind = Kind(kind)
		e.Fallback = fallback != 0
		ts, err := time.Parse(timeLayout, created)
		if err != nil {
			return nil, fmt.Errorf("advice %s: created_at: %w", e.ID, err)
		}
		e.CreatedAt = ts
		out = append(out, e)
	}
	return out, rows.Err()
}
