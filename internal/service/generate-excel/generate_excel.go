package generate_excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"poe-calc/internal/service/calculator"
	"poe-calc/internal/storage"
)

type SnapshotProvider interface {
	Snapshot() calculator.Snapshot
}

type PriceSheetService struct {
	store SnapshotProvider
}

func NewPriceSheetService(store SnapshotProvider) *PriceSheetService {
	return &PriceSheetService{store: store}
}

// GeneratePriceSheet renders the current preset as an xlsx price list: one
// row per calculator plus a summary block.
func (g *PriceSheetService) GeneratePriceSheet() ([]byte, error) {
	const op = "generate_excel.GeneratePriceSheet"

	snap := g.store.Snapshot()

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Price List"
	f.SetSheetName("Sheet1", sheet)

	// Жирная шапка с заливкой
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})

	headers := []string{"ID", "Item", "Quantity", "Price", "Currency", "Total"}
	for i, name := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, name)
	}

	lastCol, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheet, "A1", lastCol, headerStyle)

	// Результаты идут в порядке калькуляторов, индекс общий
	row := 2
	for i, calc := range snap.Preset.Calculators {
		f.SetCellValue(sheet, cellName(1, row), calc.ID)
		f.SetCellValue(sheet, cellName(2, row), calculator.DisplayName(calc))
		f.SetCellValue(sheet, cellName(3, row), calc.TotalQuantity)
		f.SetCellValue(sheet, cellName(4, row), calc.Price)
		f.SetCellValue(sheet, cellName(5, row), currencyLabel(calc.CurrencyType))
		f.SetCellValue(sheet, cellName(6, row), snap.Results[i].Result)
		row++
	}

	boldStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	row++
	summaryRows := []struct {
		label string
		value interface{}
	}{
		{"Total (divine)", snap.Summary.TotalPrimary},
		{"Total (chaos)", snap.Summary.TotalSecondary},
		{"Grand total in chaos", snap.Summary.TotalInSecondary},
		{"Whole divine part", snap.Summary.TotalInPrimary.WholePrimaryPart},
		{"Remainder in chaos", snap.Summary.TotalInPrimary.RemainderSecondary},
		{"Exchange rate", snap.Preset.ExchangeRate},
	}
	for _, sr := range summaryRows {
		f.SetCellValue(sheet, cellName(1, row), sr.label)
		f.SetCellStyle(sheet, cellName(1, row), cellName(1, row), boldStyle)
		f.SetCellValue(sheet, cellName(2, row), sr.value)
		row++
	}

	f.SetColWidth(sheet, "B", "B", 28)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}

func currencyLabel(c storage.CurrencyType) string {
	if c == storage.CurrencyPrimary {
		return "divine"
	}
	return "chaos"
}
