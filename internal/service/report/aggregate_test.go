package report

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"flotilla-golang/internal/storage"
)

func TestRollup_RateRecomputedNotAveraged(t *testing.T) {
	// dos equipos con horas muy disparejas: el promedio de tasas daría 5.5,
	// la tasa real de la planta es Σlitros/Σhoras
	assets := []*AssetAggregate{
		{AssetID: 1, Code: "CR-01", PlantID: 1, PlantName: "Norte", BusinessUnitID: 1, BusinessUnitName: "Concreto", HoursWorked: 100, DieselLiters: 100},
		{AssetID: 2, Code: "CR-02", PlantID: 1, PlantName: "Norte", BusinessUnitID: 1, BusinessUnitName: "Concreto", HoursWorked: 1, DieselLiters: 10},
	}

	plants, units := rollup(assets, map[int]*storage.Plant{})

	assert.Len(t, plants, 1)
	assert.NotNil(t, plants[0].LitersPerHour)
	assert.InDelta(t, 110.0/101.0, *plants[0].LitersPerHour, 1e-9)
	assert.Greater(t, math.Abs(*plants[0].LitersPerHour-5.5), 1.0)

	assert.Len(t, units, 1)
	assert.InDelta(t, 110.0/101.0, *units[0].LitersPerHour, 1e-9)
}

func TestRollup_SumsConsistent(t *testing.T) {
	assets := []*AssetAggregate{
		{AssetID: 1, Code: "A", PlantID: 1, PlantName: "P1", BusinessUnitID: 1, BusinessUnitName: "BU", HoursWorked: 10, DieselLiters: 30, DieselCost: 700, MaintenanceCost: 100, PreventiveCost: 60, CorrectiveCost: 40, ConcreteM3: 50, TotalM3: 55, Sales: 9000, SalesWithVAT: 10440, Remisiones: 4},
		{AssetID: 2, Code: "B", PlantID: 1, PlantName: "P1", BusinessUnitID: 1, BusinessUnitName: "BU", HoursWorked: 5, DieselLiters: 20, DieselCost: 500, MaintenanceCost: 200, CorrectiveCost: 200, ConcreteM3: 10, TotalM3: 12, Sales: 2000, SalesWithVAT: 2320, Remisiones: 1},
		{AssetID: 3, Code: "C", PlantID: 2, PlantName: "P2", BusinessUnitID: 1, BusinessUnitName: "BU", HoursWorked: 8, DieselLiters: 25, DieselCost: 600, MaintenanceCost: 150, PreventiveCost: 150, ConcreteM3: 20, TotalM3: 21, Sales: 3000, SalesWithVAT: 3480, Remisiones: 2},
	}

	plants, units := rollup(assets, map[int]*storage.Plant{})

	assert.Len(t, plants, 2)
	var p1 *PlantAggregate
	for _, p := range plants {
		if p.PlantID == 1 {
			p1 = p
		}
	}
	assert.NotNil(t, p1)
	assert.Equal(t, 2, p1.AssetCount)
	assert.InDelta(t, 15.0, p1.HoursWorked, 1e-9)
	assert.InDelta(t, 50.0, p1.DieselLiters, 1e-9)
	assert.InDelta(t, 1200.0, p1.DieselCost, 1e-9)
	assert.InDelta(t, 300.0, p1.MaintenanceCost, 1e-9)
	assert.InDelta(t, 11000.0, p1.Sales, 1e-9)
	assert.Equal(t, 5, p1.Remisiones)

	// planta → unidad de negocio, misma consistencia
	assert.Len(t, units, 1)
	bu := units[0]
	assert.Equal(t, 3, bu.AssetCount)
	assert.InDelta(t, 23.0, bu.HoursWorked, 1e-9)
	assert.InDelta(t, 75.0, bu.DieselLiters, 1e-9)
	assert.InDelta(t, 1800.0, bu.DieselCost, 1e-9)
	assert.InDelta(t, 450.0, bu.MaintenanceCost, 1e-9)
	assert.InDelta(t, 210.0, bu.PreventiveCost, 1e-9)
	assert.InDelta(t, 240.0, bu.CorrectiveCost, 1e-9)
	assert.InDelta(t, 14000.0, bu.Sales, 1e-9)
	assert.Equal(t, 7, bu.Remisiones)
}

func TestVirtualBucketUniquePerNameAndPlant(t *testing.T) {
	aggs := newAggregates()
	plantA := newPlant(1, "P01")
	plantB := newPlant(2, "P02")

	first := aggs.forVirtual("XYZ-99", plantA)
	second := aggs.forVirtual("xyz-99 ", plantA)
	other := aggs.forVirtual("XYZ-99", plantB)

	// mismo nombre + misma planta = mismo bucket, sin importar mayúsculas
	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
	assert.Equal(t, "XYZ-99 (Sin mapear)", first.Name)
	assert.True(t, first.Virtual)
}

func TestAggregatesList_StableOrder(t *testing.T) {
	aggs := newAggregates()
	plant := newPlant(1, "P01")

	aggs.forVirtual("ZZ EXTERNA", plant)
	aggs.forAsset(newAsset(2, "CR-20", 1))
	aggs.forAsset(newAsset(1, "BP-01", 1))

	list := aggs.list()

	assert.Len(t, list, 3)
	assert.Equal(t, "BP-01", list[0].Code)
	assert.Equal(t, "CR-20", list[1].Code)
	// los virtuales siempre al final
	assert.True(t, list[2].Virtual)
}

func TestBuildSummary_CostRevenueRatio(t *testing.T) {
	assets := []*AssetAggregate{
		{DieselCost: 6000, MaintenanceCost: 1700, Sales: 11000},
		{Sales: 1000},
	}

	s := buildSummary(assets)

	assert.InDelta(t, (6000.0+1700.0)/12000.0*100.0, s.CostRevenueRatio, 1e-9)
}

func TestBuildSummary_RatioGuardedWhenNoSales(t *testing.T) {
	s := buildSummary([]*AssetAggregate{{DieselCost: 6000, MaintenanceCost: 1700}})

	assert.Equal(t, 0.0, s.CostRevenueRatio)
}

func TestRatePerHour_UndefinedWithoutHours(t *testing.T) {
	assert.Nil(t, ratePerHour(100, 0))
	assert.Nil(t, ratePerHour(0, 0))

	rate := ratePerHour(240, 80)
	assert.NotNil(t, rate)
	assert.InDelta(t, 3.0, *rate, 1e-9)
}
