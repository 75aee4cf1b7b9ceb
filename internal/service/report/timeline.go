package report

import (
	"sort"
	"time"

	"flotilla-golang/internal/storage"
)

// meterEvent — valor de horómetro en un instante, venga de checklist o del
// par anterior/lectura de una carga de diesel.
type meterEvent struct {
	at    time.Time
	value float64
}

// buildTimelines mezcla por equipo las lecturas de checklist y los pares de
// horómetro de diesel en una sola línea de tiempo ordenada. El evento
// "anterior" se coloca 1ms antes de la transacción para que quede siempre
// delante de la lectura cuando comparten instante.
func buildTimelines(readings []*storage.ChecklistReading, txs []*storage.DieselTransaction) map[int][]meterEvent {
	timelines := make(map[int][]meterEvent)

	for _, r := range readings {
		timelines[r.AssetID] = append(timelines[r.AssetID], meterEvent{at: r.ReadAt, value: r.HourReading})
	}

	for _, tx := range txs {
		if tx.AssetID == nil {
			continue
		}
		id := *tx.AssetID
		if tx.PrevHorometer != nil {
			timelines[id] = append(timelines[id], meterEvent{
				at:    tx.TransactionAt.Add(-time.Millisecond),
				value: *tx.PrevHorometer,
			})
		}
		if tx.Horometer != nil {
			timelines[id] = append(timelines[id], meterEvent{
				at:    tx.TransactionAt,
				value: *tx.Horometer,
			})
		}
	}

	for id := range timelines {
		events := timelines[id]
		sort.SliceStable(events, func(i, j int) bool { return events[i].at.Before(events[j].at) })
		timelines[id] = events
	}

	return timelines
}

// hoursWorked reconstruye horas trabajadas en [start, end).
// Línea base: el evento más temprano dentro de la ventana; si no hay ninguno
// adentro, el último evento estrictamente anterior al inicio. Corte: el último
// evento antes del fin. Sin línea base o sin corte no se puede calcular
// (ok=false, no es error). El delta negativo (reset de horómetro, dedazo del
// operador) se recorta a cero.
func hoursWorked(events []meterEvent, start, end time.Time) (float64, bool) {
	var baseline *meterEvent
	var endpoint *meterEvent

	for i := range events {
		e := &events[i]
		if !e.at.Before(start) && e.at.Before(end) {
			baseline = e
			break
		}
	}
	if baseline == nil {
		for i := len(events) - 1; i >= 0; i-- {
			if events[i].at.Before(start) {
				baseline = &events[i]
				break
			}
		}
	}
	if baseline == nil {
		return 0, false
	}

	for i := len(events) - 1; i >= 0; i-- {
		if events[i].at.Before(end) {
			endpoint = &events[i]
			break
		}
	}
	if endpoint == nil || endpoint.at.Before(baseline.at) {
		return 0, false
	}

	hours := endpoint.value - baseline.value
	if hours < 0 {
		hours = 0
	}
	return hours, true
}
