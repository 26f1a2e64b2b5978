package calculator

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"poe-calc/internal/storage"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// presetPayload — сырой пресет из импорта или старого сохранения.
// Указатели отличают отсутствующее поле от нулевого: header/footer в старых
// форматах не было вовсе.
type presetPayload struct {
	Name          *string             `json:"name" validate:"required"`
	ExchangeRate  *float64            `json:"exchangeRate" validate:"required"`
	RequestHeader *string             `json:"requestHeader"`
	RequestFooter *string             `json:"requestFooter"`
	Calculators   []calculatorPayload `json:"calculators" validate:"required,min=1,max=20,dive"`
}

type calculatorPayload struct {
	ID            *int     `json:"id" validate:"required"`
	Label         *string  `json:"label" validate:"required"`
	TotalQuantity *float64 `json:"totalQuantity" validate:"required"`
	Price         *float64 `json:"price" validate:"required"`
	CurrencyType  *string  `json:"currencyType" validate:"required,oneof=д с"`
}

// ParsePreset decodes raw JSON into a preset: migrate first (missing
// header/footer default to "", legacy default-preset name becomes "Main"),
// then validate the whole shape. Невалидный вход отбрасывается целиком —
// частично заполненный пресет наружу не выходит.
func ParsePreset(data []byte) (storage.Preset, error) {
	var payload presetPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return storage.Preset{}, fmt.Errorf("%w: json: %v", ErrInvalidPreset, err)
	}

	if err := validate.Struct(payload); err != nil {
		return storage.Preset{}, fmt.Errorf("%w: %v", ErrInvalidPreset, err)
	}

	preset := storage.Preset{
		Name:         migrateName(*payload.Name),
		ExchangeRate: *payload.ExchangeRate,
		Calculators:  make([]storage.Calculator, 0, len(payload.Calculators)),
	}
	if payload.RequestHeader != nil {
		preset.RequestHeader = *payload.RequestHeader
	}
	if payload.RequestFooter != nil {
		preset.RequestFooter = *payload.RequestFooter
	}

	seen := make(map[int]bool, len(payload.Calculators))
	for _, calc := range payload.Calculators {
		if seen[*calc.ID] {
			return storage.Preset{}, fmt.Errorf("%w: duplicate calculator id %d", ErrInvalidPreset, *calc.ID)
		}
		seen[*calc.ID] = true

		preset.Calculators = append(preset.Calculators, storage.Calculator{
			ID:            *calc.ID,
			Label:         *calc.Label,
			TotalQuantity: *calc.TotalQuantity,
			Price:         *calc.Price,
			CurrencyType:  storage.CurrencyType(*calc.CurrencyType),
		})
	}

	return preset, nil
}

// MigratePreset приводит уже разобранный пресет к текущей форме.
func MigratePreset(p storage.Preset) storage.Preset {
	p.Name = migrateName(p.Name)
	return p
}

// ValidatePreset checks an already-decoded preset against the same shape
// rules as ParsePreset. Used for presets read back from storage.
func ValidatePreset(p storage.Preset) error {
	if p.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidPreset)
	}
	if len(p.Calculators) == 0 {
		return fmt.Errorf("%w: no calculators", ErrInvalidPreset)
	}
	if len(p.Calculators) > storage.MaxCalculators {
		return fmt.Errorf("%w: too many calculators", ErrInvalidPreset)
	}

	seen := make(map[int]bool, len(p.Calculators))
	for _, calc := range p.Calculators {
		if !calc.CurrencyType.Valid() {
			return fmt.Errorf("%w: %v", ErrInvalidPreset, ErrInvalidCurrency)
		}
		if seen[calc.ID] {
			return fmt.Errorf("%w: duplicate calculator id %d", ErrInvalidPreset, calc.ID)
		}
		seen[calc.ID] = true
	}

	return nil
}

func migrateName(name string) string {
	if name == storage.LegacyMainPresetName {
		return storage.MainPresetName
	}
	return name
}
