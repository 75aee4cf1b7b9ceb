package report

import (
	"fmt"
	"sort"
	"strings"

	"flotilla-golang/internal/storage"
)

// Acumuladores del reporte. Viven solo durante la petición; las llaves son
// "a:<id>" para equipos del registro y "v:<nombre>|<planta>" para los buckets
// virtuales de ventas sin mapear.

type AssetAggregate struct {
	AssetID          int      `json:"assetId,omitempty"`
	Code             string   `json:"code"`
	Name             string   `json:"name"`
	PlantID          int      `json:"plantId,omitempty"`
	PlantName        string   `json:"plantName,omitempty"`
	BusinessUnitID   int      `json:"businessUnitId,omitempty"`
	BusinessUnitName string   `json:"businessUnitName,omitempty"`
	EquipmentType    string   `json:"equipmentType"`
	Virtual          bool     `json:"virtual,omitempty"`
	HoursWorked      float64  `json:"hoursWorked"`
	DieselLiters     float64  `json:"dieselLiters"`
	DieselCost       float64  `json:"dieselCost"`
	LitersPerHour    *float64 `json:"litersPerHour,omitempty"`
	MaintenanceCost  float64  `json:"maintenanceCost"`
	PreventiveCost   float64  `json:"preventiveCost"`
	CorrectiveCost   float64  `json:"correctiveCost"`
	ConcreteM3       float64  `json:"concreteM3"`
	TotalM3          float64  `json:"totalM3"`
	Sales            float64  `json:"sales"`
	SalesWithVAT     float64  `json:"salesWithVat"`
	Remisiones       int      `json:"remisiones"`
}

type PlantAggregate struct {
	PlantID          int      `json:"plantId"`
	Name             string   `json:"name"`
	Code             string   `json:"code"`
	BusinessUnitID   int      `json:"businessUnitId"`
	BusinessUnitName string   `json:"businessUnitName"`
	AssetCount       int      `json:"assetCount"`
	HoursWorked      float64  `json:"hoursWorked"`
	DieselLiters     float64  `json:"dieselLiters"`
	DieselCost       float64  `json:"dieselCost"`
	LitersPerHour    *float64 `json:"litersPerHour,omitempty"`
	MaintenanceCost  float64  `json:"maintenanceCost"`
	PreventiveCost   float64  `json:"preventiveCost"`
	CorrectiveCost   float64  `json:"correctiveCost"`
	ConcreteM3       float64  `json:"concreteM3"`
	TotalM3          float64  `json:"totalM3"`
	Sales            float64  `json:"sales"`
	SalesWithVAT     float64  `json:"salesWithVat"`
	Remisiones       int      `json:"remisiones"`
}

type BusinessUnitAggregate struct {
	BusinessUnitID  int      `json:"businessUnitId"`
	Name            string   `json:"name"`
	AssetCount      int      `json:"assetCount"`
	HoursWorked     float64  `json:"hoursWorked"`
	DieselLiters    float64  `json:"dieselLiters"`
	DieselCost      float64  `json:"dieselCost"`
	LitersPerHour   *float64 `json:"litersPerHour,omitempty"`
	MaintenanceCost float64  `json:"maintenanceCost"`
	PreventiveCost  float64  `json:"preventiveCost"`
	CorrectiveCost  float64  `json:"correctiveCost"`
	ConcreteM3      float64  `json:"concreteM3"`
	TotalM3         float64  `json:"totalM3"`
	Sales           float64  `json:"sales"`
	SalesWithVAT    float64  `json:"salesWithVat"`
	Remisiones      int      `json:"remisiones"`
}

type Summary struct {
	AssetCount       int      `json:"assetCount"`
	HoursWorked      float64  `json:"hoursWorked"`
	DieselLiters     float64  `json:"dieselLiters"`
	DieselCost       float64  `json:"dieselCost"`
	LitersPerHour    *float64 `json:"litersPerHour,omitempty"`
	MaintenanceCost  float64  `json:"maintenanceCost"`
	PreventiveCost   float64  `json:"preventiveCost"`
	CorrectiveCost   float64  `json:"correctiveCost"`
	ConcreteM3       float64  `json:"concreteM3"`
	TotalM3          float64  `json:"totalM3"`
	Sales            float64  `json:"sales"`
	SalesWithVAT     float64  `json:"salesWithVat"`
	Remisiones       int      `json:"remisiones"`
	CostRevenueRatio float64  `json:"costRevenueRatio"`
}

type aggregates struct {
	byKey map[string]*AssetAggregate
}

func newAggregates() *aggregates {
	return &aggregates{byKey: make(map[string]*AssetAggregate)}
}

func assetKey(id int) string {
	return fmt.Sprintf("a:%d", id)
}

// virtualKey — única por (nombre externo, planta resuelta): dos renglones con
// el mismo nombre sin mapear en la misma planta caen al mismo bucket.
func virtualKey(externalName string, plantID int) string {
	return fmt.Sprintf("v:%s|%d", strings.ToLower(strings.TrimSpace(externalName)), plantID)
}

func (ag *aggregates) forAsset(a *storage.Asset) *AssetAggregate {
	key := assetKey(a.ID)
	if agg, ok := ag.byKey[key]; ok {
		return agg
	}
	agg := &AssetAggregate{
		AssetID:          a.ID,
		Code:             a.Code,
		Name:             a.Name,
		PlantID:          a.PlantID,
		PlantName:        a.PlantName,
		BusinessUnitID:   a.BusinessUnitID,
		BusinessUnitName: a.BusinessUnitName,
		EquipmentType:    a.EquipmentType,
	}
	ag.byKey[key] = agg
	return agg
}

func (ag *aggregates) forVirtual(externalName string, plant *storage.Plant) *AssetAggregate {
	key := virtualKey(externalName, plant.ID)
	if agg, ok := ag.byKey[key]; ok {
		return agg
	}
	agg := &AssetAggregate{
		Code:             strings.TrimSpace(externalName),
		Name:             strings.TrimSpace(externalName) + " (Sin mapear)",
		PlantID:          plant.ID,
		PlantName:        plant.Name,
		BusinessUnitID:   plant.BusinessUnitID,
		BusinessUnitName: plant.BusinessUnitName,
		EquipmentType:    equipmentUncategorized,
		Virtual:          true,
	}
	ag.byKey[key] = agg
	return agg
}

func (ag *aggregates) lookup(key string) (*AssetAggregate, bool) {
	agg, ok := ag.byKey[key]
	return agg, ok
}

// list regresa los acumuladores en orden estable: equipos del registro por
// código y al final los virtuales, también por código.
func (ag *aggregates) list() []*AssetAggregate {
	out := make([]*AssetAggregate, 0, len(ag.byKey))
	for _, agg := range ag.byKey {
		out = append(out, agg)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Virtual != out[j].Virtual {
			return !out[i].Virtual
		}
		if out[i].Code != out[j].Code {
			return out[i].Code < out[j].Code
		}
		return out[i].PlantID < out[j].PlantID
	})
	return out
}

func ratePerHour(liters, hours float64) *float64 {
	if hours <= 0 {
		return nil
	}
	rate := liters / hours
	return &rate
}

// rollup sube los acumuladores de equipo a planta y unidad de negocio. Todo
// se suma menos litros por hora, que se recalcula en cada nivel como
// Σlitros/Σhoras; promediar las tasas de los hijos distorsiona el indicador
// cuando las horas son muy disparejas.
func rollup(assets []*AssetAggregate, plantsByID map[int]*storage.Plant) ([]*PlantAggregate, []*BusinessUnitAggregate) {
	plantAggs := make(map[int]*PlantAggregate)
	buAggs := make(map[int]*BusinessUnitAggregate)

	for _, a := range assets {
		pa, ok := plantAggs[a.PlantID]
		if !ok {
			pa = &PlantAggregate{
				PlantID:          a.PlantID,
				Name:             a.PlantName,
				BusinessUnitID:   a.BusinessUnitID,
				BusinessUnitName: a.BusinessUnitName,
			}
			if p, ok := plantsByID[a.PlantID]; ok {
				pa.Code = p.Code
			}
			plantAggs[a.PlantID] = pa
		}
		pa.AssetCount++
		pa.HoursWorked += a.HoursWorked
		pa.DieselLiters += a.DieselLiters
		pa.DieselCost += a.DieselCost
		pa.MaintenanceCost += a.MaintenanceCost
		pa.PreventiveCost += a.PreventiveCost
		pa.CorrectiveCost += a.CorrectiveCost
		pa.ConcreteM3 += a.ConcreteM3
		pa.TotalM3 += a.TotalM3
		pa.Sales += a.Sales
		pa.SalesWithVAT += a.SalesWithVAT
		pa.Remisiones += a.Remisiones

		ba, ok := buAggs[a.BusinessUnitID]
		if !ok {
			ba = &BusinessUnitAggregate{
				BusinessUnitID: a.BusinessUnitID,
				Name:           a.BusinessUnitName,
			}
			buAggs[a.BusinessUnitID] = ba
		}
		ba.AssetCount++
		ba.HoursWorked += a.HoursWorked
		ba.DieselLiters += a.DieselLiters
		ba.DieselCost += a.DieselCost
		ba.MaintenanceCost += a.MaintenanceCost
		ba.PreventiveCost += a.PreventiveCost
		ba.CorrectiveCost += a.CorrectiveCost
		ba.ConcreteM3 += a.ConcreteM3
		ba.TotalM3 += a.TotalM3
		ba.Sales += a.Sales
		ba.SalesWithVAT += a.SalesWithVAT
		ba.Remisiones += a.Remisiones
	}

	plants := make([]*PlantAggregate, 0, len(plantAggs))
	for _, pa := range plantAggs {
		pa.LitersPerHour = ratePerHour(pa.DieselLiters, pa.HoursWorked)
		plants = append(plants, pa)
	}
	sort.Slice(plants, func(i, j int) bool {
		if plants[i].Name != plants[j].Name {
			return plants[i].Name < plants[j].Name
		}
		return plants[i].PlantID < plants[j].PlantID
	})

	units := make([]*BusinessUnitAggregate, 0, len(buAggs))
	for _, ba := range buAggs {
		ba.LitersPerHour = ratePerHour(ba.DieselLiters, ba.HoursWorked)
		units = append(units, ba)
	}
	sort.Slice(units, func(i, j int) bool {
		if units[i].Name != units[j].Name {
			return units[i].Name < units[j].Name
		}
		return units[i].BusinessUnitID < units[j].BusinessUnitID
	})

	return plants, units
}

// buildSummary junta los totales del reporte. La razón costo/venta se calcula
// una sola vez aquí y se deja en cero cuando no hubo venta.
func buildSummary(assets []*AssetAggregate) Summary {
	var s Summary
	for _, a := range assets {
		s.AssetCount++
		s.HoursWorked += a.HoursWorked
		s.DieselLiters += a.DieselLiters
		s.DieselCost += a.DieselCost
		s.MaintenanceCost += a.MaintenanceCost
		s.PreventiveCost += a.PreventiveCost
		s.CorrectiveCost += a.CorrectiveCost
		s.ConcreteM3 += a.ConcreteM3
		s.TotalM3 += a.TotalM3
		s.Sales += a.Sales
		s.SalesWithVAT += a.SalesWithVAT
		s.Remisiones += a.Remisiones
	}

	s.LitersPerHour = ratePerHour(s.DieselLiters, s.HoursWorked)
	if s.Sales > 0 {
		s.CostRevenueRatio = (s.DieselCost + s.MaintenanceCost) / s.Sales * 100
	}
	return s
}
