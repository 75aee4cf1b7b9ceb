package storage

import "time"

// ChecklistReading — lectura de horómetro capturada en el checklist diario.
type ChecklistReading struct {
	AssetID     int       `json:"asset_id"`
	HourReading float64   `json:"hour_reading"`
	ReadAt      time.Time `json:"read_at"`
}
