package adherence

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/KasumiMercury/primind-medication-alarm/internal/domain"
)

const createAdherenceLog = `
CREATE TABLE IF NOT EXISTS adherence_log (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	reminder_id   INTEGER NOT NULL,
	medicine_name TEXT    NOT NULL,
	action        TEXT    NOT NULL,
	action_date   TEXT    NOT NULL,
	action_time   TEXT    NOT NULL
)`

// SQLiteRecorder appends adherence rows to a local database file.
type SQLiteRecorder struct {
	db *sql.DB
}

func NewSQLiteRecorder(ctx context.Context, path string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open adherence database: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, createAdherenceLog); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create adherence_log table: %w", err)
	}

	slog.InfoContext(ctx, "adherence recorder initialized",
		slog.String("type", "sqlite"),
		slog.String("path", path),
	)

	return &SQLiteRecorder{db: db}, nil
}

func (r *SQLiteRecorder) Record(ctx context.Context, record domain.AdherenceRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO adherence_log (reminder_id, medicine_name, action, action_date, action_time)
		VALUES (?, ?, ?, ?, ?)
	`, record.ReminderID, record.MedicineName, string(record.Action), record.ActionDate(), record.ActionTime())
	if err != nil {
		return fmt.Errorf("failed to insert adherence record: %w", err)
	}
	return nil
}

// Records returns the rows for one reminder, oldest first.
func (r *SQLiteRecorder) Records(ctx context.Context, reminderID int) ([]Row, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT reminder_id, medicine_name, action, action_date, action_time
		FROM adherence_log
		WHERE reminder_id = ?
		ORDER BY id
	`, reminderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query adherence records: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.ReminderID, &row.MedicineName, &row.Action, &row.ActionDate, &row.ActionTime); err != nil {
			return nil, fmt.Errorf("failed to scan adherence record: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}

// Row is one stored adherence_log entry.
type Row struct {
	ReminderID   int
	MedicineName string
	Action       string
	ActionDate   string
	ActionTime   string
}
