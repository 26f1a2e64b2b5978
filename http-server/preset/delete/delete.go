package delete

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"poe-calc/internal/service/calculator"
)

type PresetDeleter interface {
	DeletePreset(ctx context.Context, name string) error
}

// DeletePreset удаляет именованный пресет. "Main" удалить нельзя.
// Рабочий пресет остаётся как есть — фронтенд сам решает, грузить ли "Main".
func DeletePreset(log *slog.Logger, store PresetDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.preset.DeletePreset"

		name := chi.URLParam(r, "name")
		if name == "" {
			http.Error(w, "missing preset name", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.DeletePreset(ctx, name); err != nil {
			if errors.Is(err, calculator.ErrMainProtected) {
				http.Error(w, "the main preset cannot be deleted", http.StatusConflict)
				return
			}
			log.Error("failed to delete preset", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]string{"status": "deleted", "name": name})
	}
}
