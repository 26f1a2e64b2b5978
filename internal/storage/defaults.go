package storage

// DefaultPreset builds the bootstrap "Main" preset: eight empty rows,
// exchange rate 160.
func DefaultPreset() Preset {
	calculators := make([]Calculator, 0, 8)
	for id := 1; id <= 8; id++ {
		calculators = append(calculators, Calculator{
			ID:           id,
			CurrencyType: CurrencyPrimary,
		})
	}

	return Preset{
		Name:         MainPresetName,
		ExchangeRate: 160,
		Calculators:  calculators,
	}
}

// BeastPreset — предзаполненный пресет со зверями под Bestiary-трейд.
func BeastPreset() Preset {
	return Preset{
		Name:          "POE BEAST",
		ExchangeRate:  160,
		RequestHeader: "WTS Softcore",
		RequestFooter: " IGN: @YOUNICKNAME",
		Calculators: []Calculator{
			{ID: 1, Label: "Vivid Watcher", Price: 1.4, CurrencyType: CurrencyPrimary},
			{ID: 2, Label: "Vivid Vulture", Price: 0.7, CurrencyType: CurrencyPrimary},
			{ID: 3, Label: "Wild Bristle Matron", Price: 0.7, CurrencyType: CurrencyPrimary},
			{ID: 4, Label: "Wild Brambleback", Price: 0.2, CurrencyType: CurrencyPrimary},
			{ID: 5, Label: "Wild Hellion Alpha", Price: 0.4, CurrencyType: CurrencyPrimary},
			{ID: 6, Label: "Fenumal Plagued Arachnid", Price: 0.1, CurrencyType: CurrencyPrimary},
			{ID: 7, Label: "Craicic chimeral", Price: 0.7, CurrencyType: CurrencyPrimary},
			{ID: 8, Label: "Black Morrigan", Price: 1, CurrencyType: CurrencyPrimary},
		},
	}
}

// DefaultPresets — стартовый набор доступных пресетов.
func DefaultPresets() []Preset {
	return []Preset{DefaultPreset(), BeastPreset()}
}
