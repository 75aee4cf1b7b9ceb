package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"flotilla-golang/internal/storage"
)

// GetPurchaseOrders regresa órdenes de compra de mantenimiento con su orden
// de trabajo ligada. El filtro de fecha en SQL es un superconjunto: la fecha
// efectiva real se decide en el servicio con la cascada de precedencia, aquí
// solo descartamos lo que no puede caer en la ventana por ninguna fecha.
func (s *Storage) GetPurchaseOrders(ctx context.Context, from, to time.Time) ([]*storage.PurchaseOrder, error) {
	const op = "storage.maintenance.GetPurchaseOrders.sql"

	stmt := `
		SELECT po.id, po.status, po.total_amount, po.actual_amount,
		       po.purchase_date, po.created_at,
		       wo.id, wo.asset_id, wo.type, wo.completed_at, wo.planned_date, wo.created_at
		FROM purchase_orders po
		LEFT JOIN work_orders wo ON wo.id = po.work_order_id
		WHERE po.status <> 'pending_approval'
		  AND (
		       (po.purchase_date >= ? AND po.purchase_date < ?)
		    OR (wo.completed_at >= ? AND wo.completed_at < ?)
		    OR (wo.planned_date >= ? AND wo.planned_date < ?)
		    OR (wo.created_at >= ? AND wo.created_at < ?)
		    OR (po.created_at >= ? AND po.created_at < ?)
		  )
	`
	args := []interface{}{from, to, from, to, from, to, from, to, from, to}

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: error consultando órdenes de compra %w", op, err)
	}
	defer rows.Close()

	var orders []*storage.PurchaseOrder
	for rows.Next() {
		var po storage.PurchaseOrder
		var actual sql.NullFloat64
		var purchaseDate sql.NullTime
		var woID, woAssetID sql.NullInt64
		var woType sql.NullString
		var woCompleted, woPlanned, woCreated sql.NullTime

		err := rows.Scan(&po.ID, &po.Status, &po.TotalAmount, &actual,
			&purchaseDate, &po.CreatedAt,
			&woID, &woAssetID, &woType, &woCompleted, &woPlanned, &woCreated)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if actual.Valid {
			v := actual.Float64
			po.ActualAmount = &v
		}
		if purchaseDate.Valid {
			v := purchaseDate.Time
			po.PurchaseDate = &v
		}

		if woID.Valid && woAssetID.Valid {
			wo := storage.WorkOrder{
				ID:      int(woID.Int64),
				AssetID: int(woAssetID.Int64),
			}
			if woType.Valid {
				wo.Type = woType.String
			}
			if woCompleted.Valid {
				v := woCompleted.Time
				wo.CompletedAt = &v
			}
			if woPlanned.Valid {
				v := woPlanned.Time
				wo.PlannedDate = &v
			}
			if woCreated.Valid {
				wo.CreatedAt = woCreated.Time
			}
			po.WorkOrder = &wo
		}

		orders = append(orders, &po)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: error escaneando órdenes %w", op, err)
	}

	return orders, nil
}

// GetAdHocExpenses — gastos directos en [from, to). Los convertidos a orden
// de compra (adjustment_po_id no nulo) se excluyen para no duplicar costo.
func (s *Storage) GetAdHocExpenses(ctx context.Context, from, to time.Time) ([]*storage.AdHocExpense, error) {
	const op = "storage.maintenance.GetAdHocExpenses.sql"

	stmt := `
		SELECT e.id, e.asset_id, e.amount, e.status, e.adjustment_po_id, e.spent_at
		FROM adhoc_expenses e
		WHERE e.adjustment_po_id IS NULL
		  AND e.status <> 'rejected'
		  AND e.spent_at >= ?
		  AND e.spent_at < ?
	`

	rows, err := s.db.QueryContext(ctx, stmt, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: error consultando gastos directos %w", op, err)
	}
	defer rows.Close()

	var expenses []*storage.AdHocExpense
	for rows.Next() {
		var e storage.AdHocExpense
		var adjPO sql.NullInt64

		if err := rows.Scan(&e.ID, &e.AssetID, &e.Amount, &e.Status, &adjPO, &e.SpentAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if adjPO.Valid {
			v := int(adjPO.Int64)
			e.AdjustmentPOID = &v
		}

		expenses = append(expenses, &e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return expenses, nil
}
