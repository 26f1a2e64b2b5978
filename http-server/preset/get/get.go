package get

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"poe-calc/internal/service/calculator"
	"poe-calc/internal/storage"
)

type PresetProvider interface {
	Snapshot() calculator.Snapshot
	ExportPreset() (string, error)
}

type PresetListResp struct {
	Presets []storage.Preset `json:"presets"`
	Current string           `json:"current"`
}

// GetPresets отдаёт все сохранённые пресеты и имя рабочего.
func GetPresets(log *slog.Logger, store PresetProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := store.Snapshot()

		render.JSON(w, r, PresetListResp{
			Presets: snap.Presets,
			Current: snap.Preset.Name,
		})
	}
}

// ExportPreset отдаёт рабочий пресет транспортным кодом для обмена.
func ExportPreset(log *slog.Logger, store PresetProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.preset.ExportPreset"

		blob, err := store.ExportPreset()
		if err != nil {
			log.Error("failed to export preset", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]string{"data": blob})
	}
}
