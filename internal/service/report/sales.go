package report

import (
	"log/slog"
	"sort"
	"strings"

	"flotilla-golang/internal/clients/ventas"
	"flotilla-golang/internal/storage"
)

// UnmatchedAsset — grupo de renglones de venta que no se pudieron ligar a un
// equipo real, agrupados por nombre externo para que mantenimiento los revise.
type UnmatchedAsset struct {
	Name       string   `json:"name"`
	Plants     []string `json:"plants"`
	TotalM3    float64  `json:"totalM3"`
	Sales      float64  `json:"sales"`
	Remisiones int      `json:"remisiones"`
}

type Debug struct {
	SalesMatched      int              `json:"salesMatched"`
	SalesUnmatched    int              `json:"salesUnmatched"`
	PlantNotMapped    int              `json:"plantNotMapped"`
	SalesFeedDegraded bool             `json:"salesFeedDegraded,omitempty"`
	FifoDegraded      bool             `json:"fifoDegraded,omitempty"`
	UnmatchedAssets   []UnmatchedAsset `json:"unmatchedAssets"`
}

type unmatchedGroup struct {
	name       string
	plants     map[string]struct{}
	totalM3    float64
	sales      float64
	remisiones int
}

// reconcileSales liga cada renglón del feed a un equipo: primero la planta
// por código, luego el nombre de unidad por la cadena del matcher. Renglón
// sin planta mapeada solo cuenta en diagnóstico; renglón sin equipo cae a un
// bucket virtual. Nada se descarta.
func (s *Service) reconcileSales(log *slog.Logger, rows []ventas.SalesRow, snap *snapshot, aggs *aggregates, dbg *Debug, p Params) {
	groups := make(map[string]*unmatchedGroup)

	for _, row := range rows {
		plant := snap.plantsByCode[strings.ToLower(strings.TrimSpace(row.ExternalPlantID))]

		if plant == nil {
			dbg.PlantNotMapped++
			dbg.SalesUnmatched++
			addUnmatched(groups, row, "planta "+row.ExternalPlantID)
			continue
		}

		if !plantInScope(plant, p) {
			// fuera del filtro pedido, no es anomalía
			continue
		}

		res := snap.resolveAsset(row.AssetName, plant)
		if res == nil {
			dbg.SalesUnmatched++
			addUnmatched(groups, row, plant.Name)
			agg := aggs.forVirtual(row.AssetName, plant)
			accumulateSales(agg, row)
			continue
		}

		if res.method != matchExact && res.method != matchAlias {
			log.Info("venta ligada por match difuso",
				slog.String("external_name", row.AssetName),
				slog.String("matched_code", res.asset.Code),
				slog.String("method", res.method))
		}

		dbg.SalesMatched++
		accumulateSales(aggs.forAsset(res.asset), row)
	}

	dbg.UnmatchedAssets = unmatchedList(groups)
}

func accumulateSales(agg *AssetAggregate, row ventas.SalesRow) {
	agg.ConcreteM3 += row.ConcreteM3
	agg.TotalM3 += row.TotalM3
	agg.Sales += row.Subtotal
	agg.SalesWithVAT += row.TotalWithVAT
	agg.Remisiones += row.Remisiones
}

func addUnmatched(groups map[string]*unmatchedGroup, row ventas.SalesRow, plantLabel string) {
	key := strings.ToLower(strings.TrimSpace(row.AssetName))
	g, ok := groups[key]
	if !ok {
		g = &unmatchedGroup{
			name:   strings.TrimSpace(row.AssetName),
			plants: make(map[string]struct{}),
		}
		groups[key] = g
	}
	g.plants[plantLabel] = struct{}{}
	g.totalM3 += row.TotalM3
	g.sales += row.Subtotal
	g.remisiones += row.Remisiones
}

// unmatchedList aplana los grupos ordenados por venta descendente (empate por
// nombre, para que el reporte salga igual en cada corrida).
func unmatchedList(groups map[string]*unmatchedGroup) []UnmatchedAsset {
	out := make([]UnmatchedAsset, 0, len(groups))
	for _, g := range groups {
		plants := make([]string, 0, len(g.plants))
		for p := range g.plants {
			plants = append(plants, p)
		}
		sort.Strings(plants)

		out = append(out, UnmatchedAsset{
			Name:       g.name,
			Plants:     plants,
			TotalM3:    g.totalM3,
			Sales:      g.sales,
			Remisiones: g.remisiones,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Sales != out[j].Sales {
			return out[i].Sales > out[j].Sales
		}
		return out[i].Name < out[j].Name
	})

	return out
}

func plantInScope(plant *storage.Plant, p Params) bool {
	if p.PlantID != nil && plant.ID != *p.PlantID {
		return false
	}
	if p.BusinessUnitID != nil && plant.BusinessUnitID != *p.BusinessUnitID {
		return false
	}
	return true
}
