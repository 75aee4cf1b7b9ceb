package excel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"flotilla-golang/internal/service/report"
)

type GenerateExcelHandler interface {
	GenerateExcel(ctx context.Context, p report.Params) ([]byte, error)
}

// GenerateReportExcel — GET /api/report/excel. Mismo cálculo que el endpoint
// JSON pero descarga un .xlsx; sin fechas toma el mes en curso.
func GenerateReportExcel(log *slog.Logger, gen GenerateExcelHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.GenerateReportExcel"

		fromStr := r.URL.Query().Get("dateFrom")
		toStr := r.URL.Query().Get("dateTo")

		now := time.Now()
		startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

		fDate, err := time.Parse("2006-01-02", fromStr)
		if err != nil && fromStr != "" {
			http.Error(w, "dateFrom inválido", http.StatusBadRequest)
			return
		}
		if fromStr == "" {
			fDate = startOfMonth
		}

		tDate, err := time.Parse("2006-01-02", toStr)
		if err != nil && toStr != "" {
			http.Error(w, "dateTo inválido", http.StatusBadRequest)
			return
		}
		if toStr == "" {
			tDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		}

		p := report.Params{
			From: fDate,
			To:   tDate.AddDate(0, 0, 1),
		}
		if v := r.URL.Query().Get("businessUnitId"); v != "" {
			id, err := strconv.Atoi(v)
			if err != nil {
				http.Error(w, "businessUnitId inválido", http.StatusBadRequest)
				return
			}
			p.BusinessUnitID = &id
		}
		if v := r.URL.Query().Get("plantId"); v != "" {
			id, err := strconv.Atoi(v)
			if err != nil {
				http.Error(w, "plantId inválido", http.StatusBadRequest)
				return
			}
			p.PlantID = &id
		}

		// el excel tarda más que el JSON, le damos margen
		ctx, cancel := context.WithTimeout(r.Context(), 90*time.Second)
		defer cancel()

		excelBytes, err := gen.GenerateExcel(ctx, p)
		if err != nil {
			log.Error("failed to generate excel", "op", op, "err", err)
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		fileName := fmt.Sprintf("Reporte_Flotilla_%s.xlsx", time.Now().Format("2006-01-02_150405"))

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		w.Write(excelBytes)
	}
}
