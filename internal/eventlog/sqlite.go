// Package eventlog stores the append-only event trail of every story.
package eventlog

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pixil98/go-quest/internal/game"
	_ "modernc.org/sqlite"
)

var _ game.EventSink = (*SQLiteLog)(nil)

// SQLiteLog persists events in a SQLite database.
type SQLiteLog struct {
	db     *sql.DB
	window time.Duration
}

type LogOpt func(*logOpts)

type logOpts struct {
	window time.Duration
}

// WithWindow sets how far back Recent looks.
func WithWindow(d time.Duration) LogOpt {
	return func(o *logOpts) {
		o.window = d
	}
}

func buildOpts(opts []LogOpt) logOpts {
	o := logOpts{window: game.DefaultEventWindow}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// OpenSQLite opens or creates the database at path and applies migrations.
func OpenSQLite(ctx context.Context, path string, opts ...LogOpt) (*SQLiteLog, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("event log path is required")
	}
	// The driver only honours pragmas passed as _pragma; they are applied to
	// every pooled connection.
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_pragma=synchronous(NORMAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	o := buildOpts(opts)
	return &SQLiteLog{db: db, window: o.window}, nil
}

func (l *SQLiteLog) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}

func (l *SQLiteLog) Append(ctx context.Context, ev game.Event) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO events (id, story_id, type, message, actor, target, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ev.Id, ev.StoryId, string(ev.Type), ev.Message, ev.Actor, ev.Target, ev.Timestamp.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("inserting event %s: %w", ev.Id, err)
	}
	return nil
}

func (l *SQLiteLog) Recent(ctx context.Context, storyId string, now time.Time) ([]game.Event, error) {
	since := now.Add(-l.window).UTC().UnixMilli()

	rows, err := l.db.QueryContext(ctx,
		`SELECT id, story_id, type, message, actor, target, created_at
FROM events WHERE story_id = ? AND created_at > ?
ORDER BY created_at, id`,
		storyId, since,
	)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []game.Event
	for rows.Next() {
		var ev game.Event
		var typ string
		var created int64
		if err := rows.Scan(&ev.Id, &ev.StoryId, &typ, &ev.Message, &ev.Actor, &ev.Target, &created); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		ev.Type = game.EventType(typ)
		ev.Timestamp = time.UnixMilli(created).UTC()
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return out, nil
}
