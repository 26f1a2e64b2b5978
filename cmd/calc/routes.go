package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	admget "poe-calc/http-server/admin/get"
	admreset "poe-calc/http-server/admin/reset"
	calcget "poe-calc/http-server/calculator/get"
	calcresults "poe-calc/http-server/calculator/results"
	calcupdate "poe-calc/http-server/calculator/update"
	generate_excel "poe-calc/http-server/generate-report/generate-excel"
	generate_request "poe-calc/http-server/generate-request"
	presetdelete "poe-calc/http-server/preset/delete"
	presetget "poe-calc/http-server/preset/get"
	presetsave "poe-calc/http-server/preset/save"
	presetload "poe-calc/http-server/preset/update"
	"poe-calc/internal/config"
	"poe-calc/internal/middleware/auth"
	"poe-calc/internal/service/calculator"
	excelsvc "poe-calc/internal/service/generate-excel"
)

func routes(cfg config.Config, log *slog.Logger, store *calculator.Store, priceSheet *excelsvc.PriceSheetService) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// Снимок состояния: пресет, результаты, сводка
	router.Get("/api/state", calcget.GetState(log, store))

	// Расчёт по внешним количествам (поля "продано")
	router.Post("/api/calculator/results", calcresults.ResultsWithQuantities(log, store))

	// Мутации строк калькулятора
	router.Post("/api/calculator/update", calcupdate.UpdateCalculator(log, store))
	router.Post("/api/calculator/add", calcupdate.AddCalculator(log, store))
	router.Post("/api/calculator/remove", calcupdate.RemoveCalculator(log, store))
	router.Post("/api/calculator/sold", calcupdate.MarkAsSold(log, store))
	router.Post("/api/calculator/reset-totals", calcupdate.ResetTotals(log, store))

	// Настройки пресета
	router.Post("/api/exchange-rate", calcupdate.UpdateExchangeRate(log, store))
	router.Post("/api/request-header", calcupdate.UpdateRequestHeader(log, store))
	router.Post("/api/request-footer", calcupdate.UpdateRequestFooter(log, store))

	// Жизненный цикл пресетов
	router.Get("/api/presets", presetget.GetPresets(log, store))
	router.Post("/api/presets/save", presetsave.SavePreset(log, store))
	router.Post("/api/presets/overwrite", presetsave.OverwritePreset(log, store))
	router.Post("/api/presets/load", presetload.LoadPreset(log, store))
	router.Delete("/api/presets/{name}", presetdelete.DeletePreset(log, store))
	router.Get("/api/presets/export", presetget.ExportPreset(log, store))
	router.Post("/api/presets/import", presetsave.ImportPreset(log, store))

	// Текст запроса на продажу
	router.Post("/api/request/generate", generate_request.GenerateTradeRequest(log, store))

	// Выгрузка прайс-листа
	router.Get("/api/report/excel", generate_excel.GeneratePriceSheetExcel(log, priceSheet))

	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Get("/state", admget.GetRawState(log, store))
	adminRouter.Post("/reset", admreset.ResetToDefaults(log, store))

	router.Mount("/api/admin", adminRouter)

	// Статика: собранный фронтенд калькулятора
	frontendDir := cfg.FrontendDir
	if _, err := os.Stat(frontendDir); os.IsNotExist(err) {
		log.Warn("frontend dir not found, serving API only", slog.String("path", frontendDir))
		return router
	}

	fileServer := http.StripPrefix("/", http.FileServer(http.Dir(frontendDir)))

	router.Handle("/assets/*", fileServer)
	router.Handle("/js/*", fileServer)
	router.Handle("/css/*", fileServer)
	router.Handle("/img/*", fileServer)

	// SPA fallback: любой другой путь → index.html
	router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(frontendDir, r.URL.Path)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, filepath.Join(frontendDir, "index.html"))
	})

	return router
}
