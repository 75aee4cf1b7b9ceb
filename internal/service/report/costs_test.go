package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"flotilla-golang/internal/storage"
)

func TestDieselTxCost_FifoWins(t *testing.T) {
	productID := 3
	tx := &storage.DieselTransaction{ID: 1, Liters: 100, UnitCost: 25, ProductID: &productID}

	cost := dieselTxCost(tx, map[int]float64{1: 2380.50}, map[int]float64{3: 24})

	assert.Equal(t, 2380.50, cost)
}

func TestDieselTxCost_FallbackUnitCost(t *testing.T) {
	tx := &storage.DieselTransaction{ID: 1, Liters: 100, UnitCost: 25}

	cost := dieselTxCost(tx, map[int]float64{}, map[int]float64{})

	assert.Equal(t, 2500.0, cost)
}

func TestDieselTxCost_FallbackProductPrice(t *testing.T) {
	// costo unitario en cero: entra el precio default del producto
	productID := 3
	tx := &storage.DieselTransaction{ID: 1, Liters: 100, UnitCost: 0, ProductID: &productID}

	cost := dieselTxCost(tx, map[int]float64{}, map[int]float64{3: 24})

	assert.Equal(t, 2400.0, cost)
}

func TestDieselTxCost_NothingToFallOn(t *testing.T) {
	// sin PEPS, sin costo unitario y sin precio: cero, nunca panic
	tx := &storage.DieselTransaction{ID: 1, Liters: 100, UnitCost: 0}

	assert.Equal(t, 0.0, dieselTxCost(tx, map[int]float64{}, map[int]float64{}))
}

func TestPoEffectiveDate_Cascade(t *testing.T) {
	purchase := day(10, 0)
	completed := day(12, 0)
	planned := day(14, 0)
	woCreated := day(16, 0)
	poCreated := day(18, 0)

	wo := func() *storage.WorkOrder {
		return &storage.WorkOrder{CompletedAt: &completed, PlannedDate: &planned, CreatedAt: woCreated}
	}

	// fecha de compra manda
	po := &storage.PurchaseOrder{PurchaseDate: &purchase, CreatedAt: poCreated, WorkOrder: wo()}
	assert.Equal(t, purchase, poEffectiveDate(po))

	// sin fecha de compra: OT terminada
	po = &storage.PurchaseOrder{CreatedAt: poCreated, WorkOrder: wo()}
	assert.Equal(t, completed, poEffectiveDate(po))

	// sin terminada: OT planeada
	po.WorkOrder.CompletedAt = nil
	assert.Equal(t, planned, poEffectiveDate(po))

	// sin planeada: creación de la OT
	po.WorkOrder.PlannedDate = nil
	assert.Equal(t, woCreated, poEffectiveDate(po))

	// sin nada de la OT: creación de la OC
	po.WorkOrder.CreatedAt = time.Time{}
	assert.Equal(t, poCreated, poEffectiveDate(po))
}

func TestPoAmount(t *testing.T) {
	actual := 1450.0
	po := &storage.PurchaseOrder{TotalAmount: 1500, ActualAmount: &actual}
	assert.Equal(t, 1450.0, poAmount(po))

	po.ActualAmount = nil
	assert.Equal(t, 1500.0, poAmount(po))
}

func TestPoClassification(t *testing.T) {
	po := &storage.PurchaseOrder{WorkOrder: &storage.WorkOrder{Type: "preventive"}}
	assert.Equal(t, classificationPreventive, poClassification(po))

	po.WorkOrder.Type = "emergency"
	assert.Equal(t, classificationCorrective, poClassification(po))

	po.WorkOrder = nil
	assert.Equal(t, classificationCorrective, poClassification(po))
}

func TestPoInWindow(t *testing.T) {
	purchase := day(10, 0)
	wo := &storage.WorkOrder{AssetID: 1, CreatedAt: day(5, 0)}

	po := &storage.PurchaseOrder{Status: "approved", PurchaseDate: &purchase, WorkOrder: wo}
	assert.True(t, poInWindow(po, windowStart, windowEnd))

	// pendiente de aprobación no entra aunque la fecha caiga en la ventana
	po.Status = statusPendingApproval
	assert.False(t, poInWindow(po, windowStart, windowEnd))

	// sin orden de trabajo no hay a quién cargarle el costo
	po.Status = "approved"
	po.WorkOrder = nil
	assert.False(t, poInWindow(po, windowStart, windowEnd))

	// fecha efectiva fuera de la ventana
	outside := time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)
	po.WorkOrder = wo
	po.PurchaseDate = &outside
	assert.False(t, poInWindow(po, windowStart, windowEnd))
}
