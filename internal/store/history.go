// Package store provides a SQLite-backed history of metrics snapshots.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/chatpulse/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// timeLayout is fixed-width so captured_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// ErrNoSnapshots is returned by Latest on an empty history.
var ErrNoSnapshots = errors.New("no snapshots recorded")

// History stores snapshots in SQLite.
type History struct {
	db *sql.DB
}

// Open opens or creates the history database at the given path.
func Open(dbPath string) (*History, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &History{db: db}, nil
}

// Close closes the history database.
func (h *History) Close() error {
	return h.db.Close()
}

// Record appends a snapshot and returns its row id.
func (h *History) Record(s model.Snapshot) (int64, error) {
	var satisfaction sql.NullFloat64
	if s.Metrics.CustomerSatisfaction != nil {
		satisfaction = sql.NullFloat64{Float64: *s.Metrics.CustomerSatisfaction, Valid: true}
	}

	// SQLite has no NaN; store it as NULL.
	var avg sql.NullFloat64
	if !math.IsNaN(s.Metrics.AverageResponseTime) {
		avg = sql.NullFloat64{Float64: s.Metrics.AverageResponseTime, Valid: true}
	}

	captured := s.CapturedAt
	if captured.IsZero() {
		captured = time.Now()
	}

	res, err := h.db.Exec(`INSERT INTO snapshots
		(captured_at, source, total_messages, avg_response_minutes, resolved_chats,
		 active_admins, customer_satisfaction, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		captured.UTC().Format(timeLayout), s.Source,
		s.Metrics.TotalMessages, avg, s.Metrics.ResolvedChats,
		s.Metrics.ActiveAdmins, satisfaction, time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("recording snapshot: %w", err)
	}
	return res.LastInsertId()
}

const selectSnapshot = `SELECT id, captured_at, source, total_messages, avg_response_minutes,
	resolved_chats, active_admins, customer_satisfaction FROM snapshots`

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (model.Snapshot, error) {
	var (
		s            model.Snapshot
		captured     string
		avg          sql.NullFloat64
		satisfaction sql.NullFloat64
	)
	err := row.Scan(&s.ID, &captured, &s.Source,
		&s.Metrics.TotalMessages, &avg,
		&s.Metrics.ResolvedChats, &s.Metrics.ActiveAdmins, &satisfaction)
	if err != nil {
		return s, err
	}
	s.CapturedAt, err = time.Parse(timeLayout, captured)
	if err != nil {
		return s, fmt.Errorf("parsing captured_at of snapshot %d: %w", s.ID, err)
	}
	s.Metrics.AverageResponseTime = math.NaN()
	if avg.Valid {
		s.Metrics.AverageResponseTime = avg.Float64
	}
	if satisfaction.Valid {
		v := satisfaction.Float64
		s.Metrics.CustomerSatisfaction = &v
	}
	return s, nil
}

// Latest returns the most recently captured snapshot.
func (h *History) Latest() (model.Snapshot, error) {
	row := h.db.QueryRow(selectSnapshot + " ORDER BY captured_at DESC, id DESC LIMIT 1")
	s, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return s, ErrNoSnapshots
	}
	if err != nil {
		return s, fmt.Errorf("reading latest snapshot: %w", err)
	}
	return s, nil
}

// List returns up to limit snapshots, newest first. limit <= 0 returns all.
func (h *History) List(limit int) ([]model.Snapshot, error) {
	query := selectSnapshot + " ORDER BY captured_at DESC, id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := h.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Snapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Prune keeps the newest keep snapshots and deletes the rest. keep <= 0
// is a no-op. It returns the number of rows removed.
func (h *History) Prune(keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}
	res, err := h.db.Exec(`DELETE FROM snapshots WHERE id NOT IN (
		SELECT id FROM snapshots ORDER BY captured_at DESC, id DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning snapshots: %w", err)
	}
	return res.RowsAffected()
}

// Count returns the number of stored snapshots.
func (h *History) Count() (int, error) {
	var count int
	err := h.db.QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&count)
	return count, err
}
