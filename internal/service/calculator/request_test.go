package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"poe-calc/internal/storage"
)

func TestGenerateRequest_FullText(t *testing.T) {
	preset := storage.Preset{
		Name:          "Beasts",
		ExchangeRate:  160,
		RequestHeader: "WTS Softcore ",
		RequestFooter: " IGN: @Trader",
		Calculators: []storage.Calculator{
			{ID: 1, Label: "Vivid Watcher", TotalQuantity: 3, Price: 1.4, CurrencyType: storage.CurrencyPrimary},
			{ID: 2, Label: "", TotalQuantity: 2, Price: 10, CurrencyType: storage.CurrencySecondary},
			{ID: 3, Label: "Skipped", TotalQuantity: 0, Price: 5, CurrencyType: storage.CurrencyPrimary},
		},
	}

	text := GenerateRequest(preset)

	assert.Equal(t, "x3 Vivid Watcher - 1.4:divine:/ea\nx2 Calculator_2 - 10:chaos:/ea", text.Body)
	assert.Equal(t, "WTS Softcore\n\nx3 Vivid Watcher - 1.4:divine:/ea\nx2 Calculator_2 - 10:chaos:/ea\n\nIGN: @Trader", text.Full)
}

func TestGenerateRequest_NoItems(t *testing.T) {
	preset := storage.Preset{
		Name:         "Empty",
		ExchangeRate: 160,
		Calculators: []storage.Calculator{
			{ID: 1, Label: "Nothing", TotalQuantity: 0, Price: 5, CurrencyType: storage.CurrencyPrimary},
		},
	}

	text := GenerateRequest(preset)

	assert.Equal(t, NoItemsBody, text.Body)
	// Пустые шапка и подпись не попадают в итоговый текст
	assert.Equal(t, NoItemsBody, text.Full)
}

func TestDisplayName_BlankLabelFallsBack(t *testing.T) {
	assert.Equal(t, "Vivid Vulture", DisplayName(storage.Calculator{ID: 2, Label: " Vivid Vulture "}))
	assert.Equal(t, "Calculator_4", DisplayName(storage.Calculator{ID: 4, Label: "   "}))
}
