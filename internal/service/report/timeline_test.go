package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"flotilla-golang/internal/storage"
)

func day(d int, hour int) time.Time {
	return time.Date(2024, time.January, d, hour, 0, 0, 0, time.UTC)
}

var (
	windowStart = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	windowEnd   = time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
)

func TestHoursWorked_WindowScenario(t *testing.T) {
	// CR-17: 100h el 1 de enero 08:00, 180h el 30 de enero 17:00 → 80 horas
	events := []meterEvent{
		{at: day(1, 8), value: 100},
		{at: day(30, 17), value: 180},
	}

	hours, ok := hoursWorked(events, windowStart, windowEnd)

	assert.True(t, ok)
	assert.Equal(t, 80.0, hours)

	rate := ratePerHour(240, hours)
	assert.NotNil(t, rate)
	assert.InDelta(t, 3.0, *rate, 1e-9)
}

func TestHoursWorked_BaselinePrefersInWindow(t *testing.T) {
	// hay eventos adentro de la ventana: la línea base es el más temprano
	// adentro, no la lectura vieja de diciembre
	events := []meterEvent{
		{at: time.Date(2023, time.December, 20, 10, 0, 0, 0, time.UTC), value: 50},
		{at: day(10, 9), value: 70},
		{at: day(20, 9), value: 90},
	}

	hours, ok := hoursWorked(events, windowStart, windowEnd)

	assert.True(t, ok)
	assert.Equal(t, 20.0, hours)
}

func TestHoursWorked_FallbackBaselineBeforeWindow(t *testing.T) {
	// sin eventos adentro: cae al último evento anterior al inicio y el
	// corte es ese mismo evento, cero horas pero calculable
	events := []meterEvent{
		{at: time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC), value: 100},
		{at: time.Date(2023, time.December, 20, 0, 0, 0, 0, time.UTC), value: 150},
	}

	hours, ok := hoursWorked(events, windowStart, windowEnd)

	assert.True(t, ok)
	assert.Equal(t, 0.0, hours)
}

func TestHoursWorked_NoEvents(t *testing.T) {
	hours, ok := hoursWorked(nil, windowStart, windowEnd)

	assert.False(t, ok)
	assert.Equal(t, 0.0, hours)
}

func TestHoursWorked_OnlyEventsAfterWindow(t *testing.T) {
	events := []meterEvent{
		{at: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), value: 500},
	}

	_, ok := hoursWorked(events, windowStart, windowEnd)

	assert.False(t, ok)
}

func TestHoursWorked_ClampNegativeDelta(t *testing.T) {
	// reset de horómetro a medio mes: el delta negativo se recorta a cero
	events := []meterEvent{
		{at: day(2, 8), value: 900},
		{at: day(25, 8), value: 40},
	}

	hours, ok := hoursWorked(events, windowStart, windowEnd)

	assert.True(t, ok)
	assert.Equal(t, 0.0, hours)
}

func TestBuildTimelines_DieselPairOrdering(t *testing.T) {
	assetID := 7
	txAt := day(15, 12)
	prev := 120.0
	reading := 125.0

	txs := []*storage.DieselTransaction{{
		ID:            1,
		AssetID:       &assetID,
		Liters:        200,
		PrevHorometer: &prev,
		Horometer:     &reading,
		TransactionAt: txAt,
	}}
	readings := []*storage.ChecklistReading{
		{AssetID: assetID, HourReading: 100, ReadAt: day(2, 8)},
	}

	timelines := buildTimelines(readings, txs)

	events := timelines[assetID]
	assert.Len(t, events, 3)
	// el "anterior" queda 1ms antes de la lectura de la transacción
	assert.Equal(t, txAt.Add(-time.Millisecond), events[1].at)
	assert.Equal(t, prev, events[1].value)
	assert.Equal(t, txAt, events[2].at)
	assert.Equal(t, reading, events[2].value)
}

func TestBuildTimelines_IgnoresUnlinkedTransactions(t *testing.T) {
	name := "CR EXTERNA"
	h := 10.0
	txs := []*storage.DieselTransaction{{
		ID:            1,
		ExceptionName: &name,
		Horometer:     &h,
		TransactionAt: day(5, 10),
	}}

	timelines := buildTimelines(nil, txs)

	assert.Empty(t, timelines)
}
