package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"flotilla-golang/internal/storage"
)

// GetDieselTransactions regresa las salidas de diesel dentro de la ventana
// [from, to). El horómetro viene en par (anterior, lectura) cuando el
// almacenista lo capturó.
func (s *Storage) GetDieselTransactions(ctx context.Context, from, to time.Time) ([]*storage.DieselTransaction, error) {
	const op = "storage.diesel.GetDieselTransactions.sql"

	stmt := `
		SELECT t.id, t.asset_id, t.exception_name, t.plant_id, t.type,
		       t.quantity_liters, t.unit_cost, t.product_id,
		       t.previous_horometer, t.horometer_reading, t.transaction_at
		FROM diesel_transactions t
		WHERE t.type = 'salida'
		  AND t.transaction_at >= ?
		  AND t.transaction_at < ?
		ORDER BY t.transaction_at
	`

	rows, err := s.db.QueryContext(ctx, stmt, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: error consultando bitácora de diesel %w", op, err)
	}
	defer rows.Close()

	var txs []*storage.DieselTransaction
	for rows.Next() {
		var tx storage.DieselTransaction
		var assetID, productID sql.NullInt64
		var exceptionName sql.NullString
		var prev, reading sql.NullFloat64

		err := rows.Scan(&tx.ID, &assetID, &exceptionName, &tx.PlantID, &tx.Type,
			&tx.Liters, &tx.UnitCost, &productID, &prev, &reading, &tx.TransactionAt)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if assetID.Valid {
			v := int(assetID.Int64)
			tx.AssetID = &v
		}
		if exceptionName.Valid {
			v := exceptionName.String
			tx.ExceptionName = &v
		}
		if productID.Valid {
			v := int(productID.Int64)
			tx.ProductID = &v
		}
		if prev.Valid {
			v := prev.Float64
			tx.PrevHorometer = &v
		}
		if reading.Valid {
			v := reading.Float64
			tx.Horometer = &v
		}

		txs = append(txs, &tx)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: error escaneando transacciones %w", op, err)
	}

	return txs, nil
}

// GetProductPrices — precio default por producto, fallback de costeo.
func (s *Storage) GetProductPrices(ctx context.Context) ([]*storage.ProductPrice, error) {
	const op = "storage.diesel.GetProductPrices.sql"

	stmt := `
		SELECT id, default_price
		FROM products
		WHERE category = 'combustible'
	`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: error consultando precios de producto %w", op, err)
	}
	defer rows.Close()

	var prices []*storage.ProductPrice
	for rows.Next() {
		var p storage.ProductPrice
		if err := rows.Scan(&p.ProductID, &p.Price); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		prices = append(prices, &p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return prices, nil
}
