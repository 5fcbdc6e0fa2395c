// Package audit keeps an append-only local record of moderator decisions
// made from this console: single actions, bulk actions (success count only),
// appeal submissions and filter creations.
package audit

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/campusmedia/modconsole/internal/database"
)

// Entry is one recorded decision.
type Entry struct {
	ID        string
	Kind      string
	Subject   string
	Detail    string
	CreatedAt time.Time
}

// Log writes and reads the audit trail.
type Log struct {
	db *sql.DB
}

func NewLog(db *sql.DB) *Log { return &Log{db: db} }

// Record appends one entry. It satisfies the controller's Auditor interface;
// a write failure is swallowed because the audit trail must never block a
// moderation action.
func (l *Log) Record(ctx context.Context, kind, subject, detail string) {
	_, _ = l.db.ExecContext(ctx, `
	INSERT INTO audit_log(id, kind, subject, detail, created_at)
	VALUES(?, ?, ?, ?, ?);
	`, uuid.NewString(), kind, subject, detail, database.Now())
}

// Recent returns the newest entries, most recent first.
func (l *Log) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := l.db.QueryContext(ctx, `
	SELECT id, kind, subject, detail, created_at
	FROM audit_log
	ORDER BY created_at DESC, id DESC
	LIMIT ?;
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Kind, &e.Subject, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CountByKind returns entry counts grouped by kind.
func (l *Log) CountByKind(ctx context.Context) (map[string]int, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM audit_log GROUP BY kind;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		counts[kind] = n
	}
	return counts, rows.Err()
}
