package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"hydraulic_dashboard/internal/models"

	"github.com/google/uuid"
)

type MaintenanceSQLite struct {
	db *sql.DB
}

func NewMaintenanceSQLite(db *sql.DB) *MaintenanceSQLite { return &MaintenanceSQLite{db: db} }

const insertMaintenanceSQL = `
	INSERT INTO maintenance_records
		(id, ts, maintenance_type, component, description, technician, duration_minutes, status, cost)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// Create inserts a new maintenance record. If ID or Timestamp are empty,
// they’re set.
func (r *MaintenanceSQLite) Create(ctx context.Context, rec models.MaintenanceRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp == 0 {
		rec.Timestamp = time.Now().UnixMilli()
	}

	var costPtr *float64
	if rec.Cost != nil {
		costPtr = rec.Cost
	}

	_, err := r.db.ExecContext(ctx, insertMaintenanceSQL,
		rec.ID,
		rec.Timestamp,
		rec.MaintenanceType,
		rec.Component,
		rec.Description,
		rec.Technician,
		rec.DurationMinutes,
		rec.Status,
		costPtr,
	)
	return err
}

// List returns records newest first, filtered and paginated, plus the total
// count matching the filters before pagination.
func (r *MaintenanceSQLite) List(ctx context.Context, f MaintenanceFilter) ([]models.MaintenanceRecord, int, error) {
	var (
		conds []string
		args  []any
	)
	if f.MaintenanceType != "" {
		conds = append(conds, "maintenance_type = ?")
		args = append(args, f.MaintenanceType)
	}
	if f.Component != "" {
		conds = append(conds, "component = ?")
		args = append(args, f.Component)
	}
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM maintenance_records"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `SELECT id, ts, maintenance_type, component, description, technician, duration_minutes, status, cost
		FROM maintenance_records` + where + " ORDER BY ts DESC, id DESC LIMIT ? OFFSET ?"
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]models.MaintenanceRecord, 0, limit)
	for rows.Next() {
		var (
			rec  models.MaintenanceRecord
			cost sql.NullFloat64
		)
		if err := rows.Scan(&rec.ID, &rec.Timestamp, &rec.MaintenanceType, &rec.Component,
			&rec.Description, &rec.Technician, &rec.DurationMinutes, &rec.Status, &cost); err != nil {
			return nil, 0, err
		}
		if cost.Valid {
			c := cost.Float64
			rec.Cost = &c
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
