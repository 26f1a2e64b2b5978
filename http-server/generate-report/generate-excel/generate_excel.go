package generate_excel

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

type PriceSheetGenerator interface {
	GeneratePriceSheet() ([]byte, error)
}

// GeneratePriceSheetExcel отдаёт xlsx-файл с прайс-листом рабочего пресета.
func GeneratePriceSheetExcel(log *slog.Logger, gen PriceSheetGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.GeneratePriceSheetExcel"

		data, err := gen.GeneratePriceSheet()
		if err != nil {
			log.Error("failed to generate price sheet", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		filename := fmt.Sprintf("price-list-%s.xlsx", time.Now().Format("2006-01-02"))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		w.Write(data)
	}
}
