package save

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"

	"poe-calc/internal/service/calculator"
)

type PresetSaver interface {
	SavePreset(ctx context.Context, name string) error
	OverwriteCurrentPreset(ctx context.Context) error
	ImportPreset(ctx context.Context, blob string) error
}

// SavePreset сохраняет рабочий пресет под новым именем. Занятое имя —
// конфликт, кроме пересохранения "Main".
func SavePreset(log *slog.Logger, store PresetSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.preset.SavePreset"

		var req struct {
			Name string `json:"name"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			http.Error(w, "preset name is required", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.SavePreset(ctx, name); err != nil {
			if errors.Is(err, calculator.ErrNameTaken) {
				http.Error(w, "a preset with this name already exists", http.StatusConflict)
				return
			}
			log.Error("failed to save preset", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]string{"status": "saved", "name": name})
	}
}

// OverwritePreset перезаписывает сохранённый пресет с именем рабочего.
func OverwritePreset(log *slog.Logger, store PresetSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.preset.OverwritePreset"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.OverwriteCurrentPreset(ctx); err != nil {
			if errors.Is(err, calculator.ErrPresetNotFound) {
				http.Error(w, "preset not found", http.StatusNotFound)
				return
			}
			log.Error("failed to overwrite preset", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]string{"status": "overwritten"})
	}
}

// ImportPreset принимает транспортный код и добавляет пресет в список.
// Невалидный код — 400, состояние не меняется.
func ImportPreset(log *slog.Logger, store PresetSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.preset.ImportPreset"

		var req struct {
			Data string `json:"data"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		data := strings.TrimSpace(req.Data)
		if data == "" {
			http.Error(w, "import data is required", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.ImportPreset(ctx, data); err != nil {
			if errors.Is(err, calculator.ErrInvalidPreset) {
				log.Warn("rejected import", slog.String("op", op), slog.String("error", err.Error()))
				http.Error(w, "invalid import data", http.StatusBadRequest)
				return
			}
			log.Error("failed to import preset", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]string{"status": "imported"})
	}
}
