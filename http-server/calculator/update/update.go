package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"poe-calc/internal/service/calculator"
	"poe-calc/internal/storage"
)

type CalculatorStore interface {
	UpdateCalculator(ctx context.Context, id int, upd calculator.CalculatorUpdate) error
	AddCalculator(ctx context.Context) error
	RemoveCalculator(ctx context.Context, id int) error
	MarkAsSold(ctx context.Context, id int, amount float64) error
	ResetAllTotals(ctx context.Context) error
	UpdateExchangeRate(ctx context.Context, rate float64) error
	UpdateRequestHeader(ctx context.Context, header string) error
	UpdateRequestFooter(ctx context.Context, footer string) error
}

// UpdateCalculator применяет частичное обновление одной строки.
// Отсутствующие в JSON поля не трогаются.
func UpdateCalculator(log *slog.Logger, store CalculatorStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculator.UpdateCalculator"

		var req struct {
			ID            *int     `json:"id"`
			Label         *string  `json:"label"`
			TotalQuantity *float64 `json:"totalQuantity"`
			Price         *float64 `json:"price"`
			CurrencyType  *string  `json:"currencyType"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		if req.ID == nil {
			http.Error(w, "missing calculator id", http.StatusBadRequest)
			return
		}

		upd := calculator.CalculatorUpdate{
			Label:         req.Label,
			TotalQuantity: req.TotalQuantity,
			Price:         req.Price,
		}
		if req.CurrencyType != nil {
			currency := storage.CurrencyType(*req.CurrencyType)
			upd.CurrencyType = &currency
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.UpdateCalculator(ctx, *req.ID, upd); err != nil {
			writeStoreError(log, w, op, err)
			return
		}

		render.JSON(w, r, map[string]string{"status": "ok"})
	}
}

func AddCalculator(log *slog.Logger, store CalculatorStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculator.AddCalculator"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.AddCalculator(ctx); err != nil {
			writeStoreError(log, w, op, err)
			return
		}

		render.JSON(w, r, map[string]string{"status": "ok"})
	}
}

func RemoveCalculator(log *slog.Logger, store CalculatorStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculator.RemoveCalculator"

		var req struct {
			ID *int `json:"id"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.RemoveCalculator(ctx, *req.ID); err != nil {
			writeStoreError(log, w, op, err)
			return
		}

		render.JSON(w, r, map[string]string{"status": "ok"})
	}
}

// MarkAsSold списывает проданное количество со строки.
func MarkAsSold(log *slog.Logger, store CalculatorStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculator.MarkAsSold"

		var req struct {
			ID     *int    `json:"id"`
			Amount float64 `json:"amount"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.MarkAsSold(ctx, *req.ID, req.Amount); err != nil {
			writeStoreError(log, w, op, err)
			return
		}

		render.JSON(w, r, map[string]string{"status": "ok"})
	}
}

func ResetTotals(log *slog.Logger, store CalculatorStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculator.ResetTotals"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.ResetAllTotals(ctx); err != nil {
			writeStoreError(log, w, op, err)
			return
		}

		render.JSON(w, r, map[string]string{"status": "ok"})
	}
}

func UpdateExchangeRate(log *slog.Logger, store CalculatorStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculator.UpdateExchangeRate"

		var req struct {
			ExchangeRate *float64 `json:"exchangeRate"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ExchangeRate == nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.UpdateExchangeRate(ctx, *req.ExchangeRate); err != nil {
			writeStoreError(log, w, op, err)
			return
		}

		render.JSON(w, r, map[string]string{"status": "ok"})
	}
}

func UpdateRequestHeader(log *slog.Logger, store CalculatorStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculator.UpdateRequestHeader"

		var req struct {
			RequestHeader string `json:"requestHeader"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.UpdateRequestHeader(ctx, req.RequestHeader); err != nil {
			writeStoreError(log, w, op, err)
			return
		}

		render.JSON(w, r, map[string]string{"status": "ok"})
	}
}

func UpdateRequestFooter(log *slog.Logger, store CalculatorStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculator.UpdateRequestFooter"

		var req struct {
			RequestFooter string `json:"requestFooter"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.UpdateRequestFooter(ctx, req.RequestFooter); err != nil {
			writeStoreError(log, w, op, err)
			return
		}

		render.JSON(w, r, map[string]string{"status": "ok"})
	}
}

// writeStoreError мапит ошибки стора на HTTP-статусы.
func writeStoreError(log *slog.Logger, w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, calculator.ErrCalculatorLimit),
		errors.Is(err, calculator.ErrLastCalculator):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, calculator.ErrInvalidRate),
		errors.Is(err, calculator.ErrInvalidCurrency):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Error("store mutation failed", slog.String("op", op), slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
