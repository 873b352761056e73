package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"hydraulic_dashboard/internal/models"

	"github.com/google/uuid"
)

// serviceLogCapacity bounds the audit log; older rows are pruned on append.
const serviceLogCapacity = 1000

type ServiceLogSQLite struct {
	db *sql.DB
}

func NewServiceLogSQLite(db *sql.DB) *ServiceLogSQLite { return &ServiceLogSQLite{db: db} }

const (
	insertServiceLogSQL = `
		INSERT INTO service_logs (id, ts, event_type, severity, component, message, details, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	pruneServiceLogsSQL = `
		DELETE FROM service_logs
		WHERE id NOT IN (SELECT id FROM service_logs ORDER BY ts DESC, id DESC LIMIT ?)
	`
)

// Append inserts a new log entry and prunes rows beyond capacity.
// If ID or Timestamp are empty, they’re set.
func (r *ServiceLogSQLite) Append(ctx context.Context, e models.ServiceLogEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp == 0 {
		e.Timestamp = time.Now().UnixMilli()
	}

	// marshal details if present
	var detailsPtr *string
	if e.Details != nil {
		if b, err := json.Marshal(e.Details); err == nil {
			s := string(b)
			detailsPtr = &s
		}
	}

	var userPtr *string
	if e.UserID != "" {
		userPtr = &e.UserID
	}

	if _, err := r.db.ExecContext(ctx, insertServiceLogSQL,
		e.ID,
		e.Timestamp,
		strings.ToLower(strings.TrimSpace(e.EventType)),
		strings.ToLower(strings.TrimSpace(e.Severity)),
		e.Component,
		e.Message,
		detailsPtr,
		userPtr,
	); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx, pruneServiceLogsSQL, serviceLogCapacity)
	return err
}

// List returns entries newest first, filtered and paginated, plus the total
// count matching the filters before pagination.
func (r *ServiceLogSQLite) List(ctx context.Context, f ServiceLogFilter) ([]models.ServiceLogEntry, int, error) {
	var (
		conds []string
		args  []any
	)
	if f.EventType != "" {
		conds = append(conds, "event_type = ?")
		args = append(args, strings.ToLower(f.EventType))
	}
	if f.Severity != "" {
		conds = append(conds, "severity = ?")
		args = append(args, strings.ToLower(f.Severity))
	}
	if f.Component != "" {
		conds = append(conds, "component = ?")
		args = append(args, f.Component)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM service_logs"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `SELECT id, ts, event_type, severity, component, message, details, user_id FROM service_logs` +
		where + " ORDER BY ts DESC, id DESC LIMIT ? OFFSET ?"
	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]models.ServiceLogEntry, 0, limit)
	for rows.Next() {
		var (
			e          models.ServiceLogEntry
			detailsStr sql.NullString
			userStr    sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.EventType, &e.Severity, &e.Component, &e.Message, &detailsStr, &userStr); err != nil {
			return nil, 0, err
		}
		if detailsStr.Valid && detailsStr.String != "" {
			var d map[string]any
			if err := json.Unmarshal([]byte(detailsStr.String), &d); err == nil {
				e.Details = d
			}
		}
		if userStr.Valid {
			e.UserID = userStr.String
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
