package main

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	getalias "flotilla-golang/http-server/alias/get"
	savealias "flotilla-golang/http-server/alias/save"
	reportexcel "flotilla-golang/http-server/report/excel"
	reportgen "flotilla-golang/http-server/report/generate"
	"flotilla-golang/internal/config"
	"flotilla-golang/internal/middleware/auth"
	excelservice "flotilla-golang/internal/service/excel"
	"flotilla-golang/internal/service/report"
	"flotilla-golang/internal/storage/mysql"
)

func routes(cfg config.Config, log *slog.Logger, storage *mysql.Storage, reportService *report.Service, excelService *excelservice.GenerateExcelService) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8081", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// reporte gerencial consolidado
	router.Post("/api/report", reportgen.GenerateReport(log, reportService))
	router.Get("/api/report/excel", reportexcel.GenerateReportExcel(log, excelService))

	router.Handle("/metrics", promhttp.Handler())

	// tabla de alias: los overrides manuales del matcher
	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Get("/alias", getalias.GetAliasesAdmin(log, storage))
	adminRouter.Post("/alias", savealias.SaveAliasAdmin(log, storage))

	router.Mount("/api/admin", adminRouter)

	return router
}
