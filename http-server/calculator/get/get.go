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

// GetState отдаёт полный снимок: рабочий пресет, список пресетов,
// результаты и сводку. Фронтенд перерисовывается из этого одного ответа.
func GetState(log *slog.Logger, store StateProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, store.Snapshot())
	}
}
