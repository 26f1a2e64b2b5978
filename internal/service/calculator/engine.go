package calculator

import (
	"fmt"
	"math"

	"poe-calc/internal/storage"
)

// ComputeResults derives one result per calculator, preserving order:
// result = totalQuantity * price, tagged with the calculator's currency.
func ComputeResults(calculators []storage.Calculator) []storage.CalculatorResult {
	results := make([]storage.CalculatorResult, 0, len(calculators))
	for _, calc := range calculators {
		results = append(results, storage.CalculatorResult{
			ID:           calc.ID,
			Result:       calc.TotalQuantity * calc.Price,
			CurrencyType: calc.CurrencyType,
		})
	}
	return results
}

// ComputeResultsWithQuantities is ComputeResults with the quantities taken
// from the supplied map instead of the calculators themselves. A calculator
// without an entry counts as quantity 0.
func ComputeResultsWithQuantities(calculators []storage.Calculator, quantities map[int]float64) []storage.CalculatorResult {
	results := make([]storage.CalculatorResult, 0, len(calculators))
	for _, calc := range calculators {
		results = append(results, storage.CalculatorResult{
			ID:           calc.ID,
			Result:       quantities[calc.ID] * calc.Price,
			CurrencyType: calc.CurrencyType,
		})
	}
	return results
}

// ComputeSummary sums results per currency and converts the grand total into
// secondary-currency terms, then back into whole-primary plus remainder:
//
//	totalInSecondary = totalSecondary + totalPrimary*rate
//	whole            = floor(totalInSecondary / rate)
//	remainder        = totalInSecondary - whole*rate
//
// Для rate <= 0 деление не определено — возвращаем ошибку, вызывающий
// обязан не допускать такой курс.
func ComputeSummary(results []storage.CalculatorResult, exchangeRate float64) (storage.Summary, error) {
	const op = "calculator.ComputeSummary"

	if exchangeRate <= 0 {
		return storage.Summary{}, fmt.Errorf("%s: %w", op, ErrInvalidRate)
	}

	var totalPrimary, totalSecondary float64
	for _, res := range results {
		if res.CurrencyType == storage.CurrencyPrimary {
			totalPrimary += res.Result
		} else {
			totalSecondary += res.Result
		}
	}

	totalInSecondary := totalSecondary + totalPrimary*exchangeRate
	whole := math.Floor(totalInSecondary / exchangeRate)

	return storage.Summary{
		TotalPrimary:     totalPrimary,
		TotalSecondary:   totalSecondary,
		TotalInSecondary: totalInSecondary,
		TotalInPrimary: storage.Remainder{
			WholePrimaryPart:   int(whole),
			RemainderSecondary: totalInSecondary - whole*exchangeRate,
		},
	}, nil
}
