package report

import (
	"time"

	"flotilla-golang/internal/storage"
)

const (
	classificationPreventive = "preventive"
	classificationCorrective = "corrective"

	statusPendingApproval = "pending_approval"
	statusRejected        = "rejected"
)

// dieselTxCost — costo de una transacción: manda el servicio PEPS; sin
// entrada PEPS, litros × costo unitario de la transacción, y si ese viene en
// cero, el precio default del producto. Sin nada de eso el costo es cero,
// nunca error.
func dieselTxCost(tx *storage.DieselTransaction, fifoCosts map[int]float64, prices map[int]float64) float64 {
	if cost, ok := fifoCosts[tx.ID]; ok {
		return cost
	}

	unit := tx.UnitCost
	if unit == 0 && tx.ProductID != nil {
		unit = prices[*tx.ProductID]
	}
	return tx.Liters * unit
}

// poEffectiveDate — primera fecha no nula de la cascada: fecha de compra →
// OT terminada → OT planeada → OT creada → OC creada.
func poEffectiveDate(po *storage.PurchaseOrder) time.Time {
	if po.PurchaseDate != nil {
		return *po.PurchaseDate
	}
	if po.WorkOrder != nil {
		if po.WorkOrder.CompletedAt != nil {
			return *po.WorkOrder.CompletedAt
		}
		if po.WorkOrder.PlannedDate != nil {
			return *po.WorkOrder.PlannedDate
		}
		if !po.WorkOrder.CreatedAt.IsZero() {
			return po.WorkOrder.CreatedAt
		}
	}
	return po.CreatedAt
}

func poAmount(po *storage.PurchaseOrder) float64 {
	if po.ActualAmount != nil {
		return *po.ActualAmount
	}
	return po.TotalAmount
}

func poClassification(po *storage.PurchaseOrder) string {
	if po.WorkOrder != nil && po.WorkOrder.Type == classificationPreventive {
		return classificationPreventive
	}
	return classificationCorrective
}

// poInWindow decide si la OC entra al reporte: estatus distinto de pendiente,
// OT ligada (sin OT no hay equipo) y fecha efectiva dentro de [start, end).
func poInWindow(po *storage.PurchaseOrder, start, end time.Time) bool {
	if po.Status == statusPendingApproval {
		return false
	}
	if po.WorkOrder == nil {
		return false
	}
	d := poEffectiveDate(po)
	return !d.Before(start) && d.Before(end)
}
