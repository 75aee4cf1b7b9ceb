package mysql

import (
	"context"
	"fmt"
	"time"

	"flotilla-golang/internal/storage"
)

// GetChecklistReadings regresa lecturas de horómetro en [from, to).
// El servicio pide from = inicio de ventana - 30 días para tener línea base.
func (s *Storage) GetChecklistReadings(ctx context.Context, from, to time.Time) ([]*storage.ChecklistReading, error) {
	const op = "storage.checklist.GetChecklistReadings.sql"

	stmt := `
		SELECT c.asset_id, c.hour_reading, c.created_at
		FROM checklist_readings c
		WHERE c.hour_reading IS NOT NULL
		  AND c.created_at >= ?
		  AND c.created_at < ?
		ORDER BY c.created_at
	`

	rows, err := s.db.QueryContext(ctx, stmt, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: error consultando lecturas de checklist %w", op, err)
	}
	defer rows.Close()

	var readings []*storage.ChecklistReading
	for rows.Next() {
		var r storage.ChecklistReading
		if err := rows.Scan(&r.AssetID, &r.HourReading, &r.ReadAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		readings = append(readings, &r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return readings, nil
}
