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
)

type PresetLoader interface {
	LoadPreset(ctx context.Context, name string) error
}

// LoadPreset делает копию сохранённого пресета рабочим.
func LoadPreset(log *slog.Logger, store PresetLoader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.preset.LoadPreset"

		var req struct {
			Name string `json:"name"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.LoadPreset(ctx, req.Name); err != nil {
			if errors.Is(err, calculator.ErrPresetNotFound) {
				http.Error(w, "preset not found", http.StatusNotFound)
				return
			}
			log.Error("failed to load preset", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]string{"status": "loaded", "name": req.Name})
	}
}
