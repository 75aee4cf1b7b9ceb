package generate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"flotilla-golang/internal/service/report"
)

type Request struct {
	DateFrom         string `json:"dateFrom"`
	DateTo           string `json:"dateTo"`
	BusinessUnitID   *int   `json:"businessUnitId"`
	PlantID          *int   `json:"plantId"`
	HideZeroActivity bool   `json:"hideZeroActivity"`
}

type ErrResponse struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}

type ReportGenerator interface {
	Generate(ctx context.Context, p report.Params) (*report.Response, error)
}

// GenerateReport — POST /api/report. La ventana es [dateFrom, dateTo+1d);
// el día final del usuario queda adentro completo.
func GenerateReport(log *slog.Logger, gen ReportGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.GenerateReport"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrResponse{Error: "JSON inválido", Status: "error"})
			return
		}

		p, err := parseParams(req)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrResponse{Error: err.Error(), Status: "error"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
		defer cancel()

		rep, err := gen.Generate(ctx, p)
		if err != nil {
			log.Error("no se pudo generar el reporte", slog.String("op", op), slog.String("error", err.Error()))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, ErrResponse{Error: "error generando reporte", Status: "error"})
			return
		}

		render.JSON(w, r, rep)
	}
}

func parseParams(req Request) (report.Params, error) {
	from, err := time.Parse("2006-01-02", req.DateFrom)
	if err != nil {
		return report.Params{}, errBadDate("dateFrom")
	}
	to, err := time.Parse("2006-01-02", req.DateTo)
	if err != nil {
		return report.Params{}, errBadDate("dateTo")
	}
	if to.Before(from) {
		return report.Params{}, errWindow
	}

	return report.Params{
		From:             from,
		To:               to.AddDate(0, 0, 1),
		BusinessUnitID:   req.BusinessUnitID,
		PlantID:          req.PlantID,
		HideZeroActivity: req.HideZeroActivity,
	}, nil
}

type paramError string

func (e paramError) Error() string { return string(e) }

const errWindow = paramError("dateTo anterior a dateFrom")

func errBadDate(field string) error {
	return paramError("fecha inválida en " + field + ", se espera YYYY-MM-DD")
}
