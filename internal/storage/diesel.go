package storage

import "time"

// DieselTransaction — carga o salida de diesel del almacén.
// ExceptionName se usa cuando la carga no quedó ligada a un equipo del registro.
type DieselTransaction struct {
	ID            int       `json:"id"`
	AssetID       *int      `json:"asset_id"`
	ExceptionName *string   `json:"exception_name"`
	PlantID       int       `json:"plant_id"`
	Type          string    `json:"type"`
	Liters        float64   `json:"liters"`
	UnitCost      float64   `json:"unit_cost"`
	ProductID     *int      `json:"product_id"`
	PrevHorometer *float64  `json:"prev_horometer"`
	Horometer     *float64  `json:"horometer"`
	TransactionAt time.Time `json:"transaction_at"`
}

// ProductPrice — precio vigente por producto (diesel), usado como último
// recurso cuando la transacción no trae costo unitario.
type ProductPrice struct {
	ProductID int     `json:"product_id"`
	Price     float64 `json:"price"`
}
