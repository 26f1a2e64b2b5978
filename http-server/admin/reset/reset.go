package reset

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
)

type Resetter interface {
	ResetToDefaults(ctx context.Context) error
}

// ResetToDefaults сбрасывает состояние к заводскому: хранилище очищается,
// остаются пресеты по умолчанию. Несохранённые данные пропадают.
func ResetToDefaults(log *slog.Logger, store Resetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.ResetToDefaults"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.ResetToDefaults(ctx); err != nil {
			log.Error("failed to reset state", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]string{"status": "reset"})
	}
}
