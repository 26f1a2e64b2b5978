package generate_request

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"poe-calc/internal/service/calculator"
)

type RequestGenerator interface {
	GenerateRequest() calculator.RequestText
}

// GenerateTradeRequest формирует текст запроса на продажу по рабочему
// пресету: строки по позициям с количеством > 0 плюс шапка и подпись.
func GenerateTradeRequest(log *slog.Logger, store RequestGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, store.GenerateRequest())
	}
}
