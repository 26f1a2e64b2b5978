package get

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"poe-calc/internal/service/calculator"
)

type StateProvider interface {
	Snapshot() calculator.Snapshot
}

// GetRawState — сырой дамп стора для отладки из админки.
func GetRawState(log *slog.Logger, store StateProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, store.Snapshot())
	}
}
