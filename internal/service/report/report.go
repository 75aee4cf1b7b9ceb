package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"flotilla-golang/internal/clients/ventas"
	"flotilla-golang/internal/observability/metrics"
	"flotilla-golang/internal/storage"
)

// Las lecturas de checklist se piden desde antes de la ventana: sin esa cola
// muchos equipos se quedan sin línea base y no se les pueden calcular horas.
const checklistLookbackDays = 30

type OrgStorage interface {
	GetBusinessUnits(ctx context.Context) ([]*storage.BusinessUnit, error)
	GetPlants(ctx context.Context, businessUnitID *int) ([]*storage.Plant, error)
	GetAssets(ctx context.Context, businessUnitID, plantID *int) ([]*storage.Asset, error)
}

type DieselStorage interface {
	GetDieselTransactions(ctx context.Context, from, to time.Time) ([]*storage.DieselTransaction, error)
	GetProductPrices(ctx context.Context) ([]*storage.ProductPrice, error)
}

type ChecklistStorage interface {
	GetChecklistReadings(ctx context.Context, from, to time.Time) ([]*storage.ChecklistReading, error)
}

type MaintenanceStorage interface {
	GetPurchaseOrders(ctx context.Context, from, to time.Time) ([]*storage.PurchaseOrder, error)
	GetAdHocExpenses(ctx context.Context, from, to time.Time) ([]*storage.AdHocExpense, error)
}

type AliasStorage interface {
	GetAssetAliases(ctx context.Context, sourceSystem string) ([]*storage.AssetAlias, error)
}

type SalesFeed interface {
	GetSales(ctx context.Context, from, to time.Time, plantCodes []string) ([]ventas.SalesRow, error)
}

type FifoCosting interface {
	GetTransactionCosts(ctx context.Context, from, to time.Time, plantCodes []string, pricesByProduct map[int]float64) (map[int]float64, error)
}

type Deps struct {
	Org          OrgStorage
	Diesel       DieselStorage
	Checklist    ChecklistStorage
	Maintenance  MaintenanceStorage
	Alias        AliasStorage
	SalesFeed    SalesFeed
	Fifo         FifoCosting
	SourceSystem string
}

type Service struct {
	deps Deps
	log  *slog.Logger
}

func NewService(log *slog.Logger, deps Deps) *Service {
	return &Service{deps: deps, log: log}
}

// Params — ventana ya normalizada: To es exclusivo (día siguiente a dateTo).
type Params struct {
	From             time.Time
	To               time.Time
	BusinessUnitID   *int
	PlantID          *int
	HideZeroActivity bool
}

type Filters struct {
	BusinessUnits []*storage.BusinessUnit `json:"businessUnits"`
	Plants        []*storage.Plant        `json:"plants"`
}

type Response struct {
	Summary       Summary                  `json:"summary"`
	BusinessUnits []*BusinessUnitAggregate `json:"businessUnits"`
	Plants        []*PlantAggregate        `json:"plants"`
	Assets        []*AssetAggregate        `json:"assets"`
	Filters       Filters                  `json:"filters"`
	Debug         Debug                    `json:"debug"`
}

// Generate arma el reporte completo en una sola pasada: lee todas las fuentes
// en paralelo, y ya con todo en memoria resuelve identificadores, reconstruye
// horas, atribuye costos, concilia ventas y sube los niveles. Falla de
// registro o bitácora es fatal; falla de feed de ventas o del servicio PEPS
// degrada y el reporte sale igual.
func (s *Service) Generate(ctx context.Context, p Params) (*Response, error) {
	const op = "service.report.Generate"

	started := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveReport(result, time.Since(started))
	}()

	// el id de corrida solo va a la bitácora: la respuesta tiene que ser
	// idéntica byte a byte para los mismos datos
	log := s.log.With(slog.String("run_id", uuid.NewString()))

	var (
		units    []*storage.BusinessUnit
		plants   []*storage.Plant
		assets   []*storage.Asset
		txs      []*storage.DieselTransaction
		readings []*storage.ChecklistReading
		pos      []*storage.PurchaseOrder
		adhoc    []*storage.AdHocExpense
		aliases  []*storage.AssetAlias
		prices   []*storage.ProductPrice

		salesRows     []ventas.SalesRow
		salesDegraded bool
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		units, err = s.deps.Org.GetBusinessUnits(gCtx)
		if err != nil {
			return fmt.Errorf("business units: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		plants, err = s.deps.Org.GetPlants(gCtx, nil)
		if err != nil {
			return fmt.Errorf("plants: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		assets, err = s.deps.Org.GetAssets(gCtx, p.BusinessUnitID, p.PlantID)
		if err != nil {
			return fmt.Errorf("assets: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		txs, err = s.deps.Diesel.GetDieselTransactions(gCtx, p.From, p.To)
		if err != nil {
			return fmt.Errorf("diesel: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		readings, err = s.deps.Checklist.GetChecklistReadings(gCtx, p.From.AddDate(0, 0, -checklistLookbackDays), p.To)
		if err != nil {
			return fmt.Errorf("checklist: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		pos, err = s.deps.Maintenance.GetPurchaseOrders(gCtx, p.From, p.To)
		if err != nil {
			return fmt.Errorf("purchase orders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		adhoc, err = s.deps.Maintenance.GetAdHocExpenses(gCtx, p.From, p.To)
		if err != nil {
			return fmt.Errorf("adhoc expenses: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		aliases, err = s.deps.Alias.GetAssetAliases(gCtx, s.deps.SourceSystem)
		if err != nil {
			return fmt.Errorf("aliases: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		prices, err = s.deps.Diesel.GetProductPrices(gCtx)
		if err != nil {
			return fmt.Errorf("product prices: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		// feed externo: si se cae, el reporte sale sin ventas
		rows, err := s.deps.SalesFeed.GetSales(gCtx, p.From, p.To, nil)
		if err != nil {
			log.Warn("feed de ventas no disponible, reporte degradado", slog.String("error", err.Error()))
			salesDegraded = true
			return nil
		}
		salesRows = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		result = metrics.ResultError
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	priceMap := make(map[int]float64, len(prices))
	for _, pr := range prices {
		priceMap[pr.ProductID] = pr.Price
	}

	var plantCodes []string
	for _, pl := range plants {
		if plantInScope(pl, p) {
			plantCodes = append(plantCodes, pl.Code)
		}
	}

	dbg := Debug{SalesFeedDegraded: salesDegraded}

	// segunda fase: costeo PEPS, necesita plantas y precios ya leídos
	fifoCosts, err := s.deps.Fifo.GetTransactionCosts(ctx, p.From, p.To, plantCodes, priceMap)
	if err != nil {
		log.Warn("servicio PEPS no disponible, costo por heurística", slog.String("error", err.Error()))
		fifoCosts = map[int]float64{}
		dbg.FifoDegraded = true
	}

	// a partir de aquí todo es una sola fase en memoria, sin más lecturas
	snap := buildSnapshot(assets, plants, aliases)
	aggs := newAggregates()
	for _, a := range snap.assets {
		aggs.forAsset(a)
	}

	s.attributeDiesel(log, txs, snap, aggs, fifoCosts, priceMap, p)

	timelines := buildTimelines(readings, txs)
	for id, events := range timelines {
		a, ok := snap.byID[id]
		if !ok {
			continue
		}
		if hrs, ok := hoursWorked(events, p.From, p.To); ok {
			aggs.forAsset(a).HoursWorked = hrs
		}
	}

	s.attributeMaintenance(pos, adhoc, snap, aggs, p)

	s.reconcileSales(log, salesRows, snap, aggs, &dbg, p)

	list := aggs.list()
	for _, a := range list {
		a.LitersPerHour = ratePerHour(a.DieselLiters, a.HoursWorked)
	}

	plantAggs, buAggs := rollup(list, snap.plantsByID)
	summary := buildSummary(list)

	assetsOut := list
	if p.HideZeroActivity {
		assetsOut = make([]*AssetAggregate, 0, len(list))
		for _, a := range list {
			if a.HoursWorked == 0 && a.DieselLiters == 0 {
				continue
			}
			assetsOut = append(assetsOut, a)
		}
	}

	metrics.AddUnmatchedSales(dbg.SalesUnmatched)

	log.Info("reporte generado",
		slog.Int("assets", len(list)),
		slog.Int("sales_matched", dbg.SalesMatched),
		slog.Int("sales_unmatched", dbg.SalesUnmatched),
		slog.Duration("took", time.Since(started)))

	return &Response{
		Summary:       summary,
		BusinessUnits: buAggs,
		Plants:        plantAggs,
		Assets:        assetsOut,
		Filters:       Filters{BusinessUnits: units, Plants: plants},
		Debug:         dbg,
	}, nil
}

// attributeDiesel suma litros y costo por transacción. Las cargas de
// excepción (sin equipo ligado) pasan por el matcher con la planta de la
// transacción; si tampoco así se resuelven, van a bucket virtual.
func (s *Service) attributeDiesel(log *slog.Logger, txs []*storage.DieselTransaction, snap *snapshot, aggs *aggregates, fifoCosts, priceMap map[int]float64, p Params) {
	for _, tx := range txs {
		cost := dieselTxCost(tx, fifoCosts, priceMap)

		var agg *AssetAggregate
		switch {
		case tx.AssetID != nil:
			a, ok := snap.byID[*tx.AssetID]
			if !ok {
				// equipo fuera del filtro pedido
				continue
			}
			agg = aggs.forAsset(a)
		case tx.ExceptionName != nil:
			plant := snap.plantsByID[tx.PlantID]
			if plant == nil || !plantInScope(plant, p) {
				continue
			}
			if res := snap.resolveAsset(*tx.ExceptionName, plant); res != nil {
				if res.method != matchExact && res.method != matchAlias {
					log.Info("carga de diesel ligada por match difuso",
						slog.String("external_name", *tx.ExceptionName),
						slog.String("matched_code", res.asset.Code),
						slog.String("method", res.method))
				}
				agg = aggs.forAsset(res.asset)
			} else {
				agg = aggs.forVirtual(*tx.ExceptionName, plant)
			}
		default:
			continue
		}

		agg.DieselLiters += tx.Liters
		agg.DieselCost += cost
	}
}

// attributeMaintenance aplica OCs (fecha efectiva por cascada) y gastos
// directos. La regla de inclusión vive aquí, no en el SQL: el repo entrega
// supersets y el servicio decide.
func (s *Service) attributeMaintenance(pos []*storage.PurchaseOrder, adhoc []*storage.AdHocExpense, snap *snapshot, aggs *aggregates, p Params) {
	for _, po := range pos {
		if !poInWindow(po, p.From, p.To) {
			continue
		}
		a, ok := snap.byID[po.WorkOrder.AssetID]
		if !ok {
			continue
		}
		agg := aggs.forAsset(a)

		amount := poAmount(po)
		agg.MaintenanceCost += amount
		if poClassification(po) == classificationPreventive {
			agg.PreventiveCost += amount
		} else {
			agg.CorrectiveCost += amount
		}
	}

	for _, e := range adhoc {
		if e.AdjustmentPOID != nil || e.Status == statusRejected {
			continue
		}
		a, ok := snap.byID[e.AssetID]
		if !ok {
			continue
		}
		agg := aggs.forAsset(a)
		// gasto directo siempre correctivo
		agg.MaintenanceCost += e.Amount
		agg.CorrectiveCost += e.Amount
	}
}
