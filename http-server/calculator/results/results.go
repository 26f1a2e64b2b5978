package results

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"poe-calc/internal/storage"
)

type ResultsProvider interface {
	ResultsWithQuantities(quantities map[int]float64) ([]storage.CalculatorResult, storage.Summary, error)
}

type Resp struct {
	Results []storage.CalculatorResult `json:"results"`
	Summary storage.Summary            `json:"summary"`
}

// ResultsWithQuantities считает результаты и сводку по переданным
// количествам (поля "продано" в UI), не меняя состояние.
func ResultsWithQuantities(log *slog.Logger, provider ResultsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculator.ResultsWithQuantities"

		var req struct {
			Quantities map[int]float64 `json:"quantities"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		results, summary, err := provider.ResultsWithQuantities(req.Quantities)
		if err != nil {
			log.Error("failed to compute results", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Resp{Results: results, Summary: summary})
	}
}
