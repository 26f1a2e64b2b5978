package calculator

import "errors"

// Ошибки уровня бизнес-логики. Хендлеры мапят их на HTTP-статусы,
// внутри сервиса они никогда не приводят к панике.
var (
	ErrNameTaken       = errors.New("preset name already exists")
	ErrPresetNotFound  = errors.New("preset not found")
	ErrMainProtected   = errors.New("main preset cannot be deleted")
	ErrCalculatorLimit = errors.New("calculator limit reached")
	ErrLastCalculator  = errors.New("cannot remove the last calculator")
	ErrInvalidPreset   = errors.New("invalid preset")
	ErrInvalidRate     = errors.New("exchange rate must be positive")
	ErrInvalidCurrency = errors.New("unknown currency type")
)
