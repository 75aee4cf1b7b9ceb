package storage

import "time"

type WorkOrder struct {
	ID          int        `json:"id"`
	AssetID     int        `json:"asset_id"`
	Type        string     `json:"type"`
	CompletedAt *time.Time `json:"completed_at"`
	PlannedDate *time.Time `json:"planned_date"`
	CreatedAt   time.Time  `json:"created_at"`
}

// PurchaseOrder — orden de compra de mantenimiento. El equipo se resuelve
// a través de la orden de trabajo ligada; sin orden de trabajo no hay equipo.
type PurchaseOrder struct {
	ID           int        `json:"id"`
	Status       string     `json:"status"`
	TotalAmount  float64    `json:"total_amount"`
	ActualAmount *float64   `json:"actual_amount"`
	PurchaseDate *time.Time `json:"purchase_date"`
	CreatedAt    time.Time  `json:"created_at"`
	WorkOrder    *WorkOrder `json:"work_order"`
}

// AdHocExpense — gasto directo de mantenimiento que todavía no se convierte
// en orden de compra (adjustment_po_id nulo).
type AdHocExpense struct {
	ID             int       `json:"id"`
	AssetID        int       `json:"asset_id"`
	Amount         float64   `json:"amount"`
	Status         string    `json:"status"`
	AdjustmentPOID *int      `json:"adjustment_po_id"`
	SpentAt        time.Time `json:"spent_at"`
}
