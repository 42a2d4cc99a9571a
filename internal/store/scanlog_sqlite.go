package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"time"

	"stocktake-cli/internal/model"

	_ "modernc.org/sqlite"
)

const scanlogFileName = "scanlog.sqlite"

func (s Store) scanlogPath() string {
	return filepath.Join(s.Dir, scanlogFileName)
}

func (s Store) openScanlog(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.scanlogPath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout helps avoid
	// "database is locked" flakiness when the CLI and TUI overlap.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS scan_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ts_unixms INTEGER NOT NULL,
		source TEXT NOT NULL,
		code TEXT NOT NULL,
		item_id INTEGER NOT NULL,
		action TEXT NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// AppendScanEvent records one capture/mutation in the audit log. Callers treat
// it as best-effort: a log failure must never fail the user-facing operation.
func (s Store) AppendScanEvent(ctx context.Context, ev model.ScanEvent) error {
	db, err := s.openScanlog(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	ts := ev.TS
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO scan_events(ts_unixms, source, code, item_id, action) VALUES(?, ?, ?, ?, ?)`,
		ts.UnixMilli(), string(ev.Source), ev.Code, ev.ItemID, ev.Action)
	return err
}

// ReadScanEvents returns the most recent events, newest first.
// limit <= 0 returns all events.
func (s Store) ReadScanEvents(ctx context.Context, limit int) ([]model.ScanEvent, error) {
	db, err := s.openScanlog(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT id, ts_unixms, source, code, item_id, action FROM scan_events ORDER BY id DESC`
	var rows *sql.Rows
	if limit > 0 {
		rows, err = db.QueryContext(ctx, q+` LIMIT ?`, limit)
	} else {
		rows, err = db.QueryContext(ctx, q)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ScanEvent{}
	for rows.Next() {
		var ev model.ScanEvent
		var tsms int64
		var src string
		if err := rows.Scan(&ev.ID, &tsms, &src, &ev.Code, &ev.ItemID, &ev.Action); err != nil {
			return nil, err
		}
		ev.TS = time.UnixMilli(tsms).UTC()
		ev.Source = model.ScanSource(src)
		out = append(out, ev)
	}
	return out, rows.Err()
}
