package storage

// CurrencyType — одна из двух валют расчёта. Значения на проводе те же,
// что исторически писал фронтенд, чтобы старые экспортные коды импортировались.
type CurrencyType string

const (
	CurrencyPrimary   CurrencyType = "д" // divine
	CurrencySecondary CurrencyType = "с" // chaos
)

// Valid reports whether the value is one of the two known currencies.
func (c CurrencyType) Valid() bool {
	return c == CurrencyPrimary || c == CurrencySecondary
}

// Icon — маркер валюты в тексте запроса на продажу.
func (c CurrencyType) Icon() string {
	if c == CurrencyPrimary {
		return ":divine:"
	}
	return ":chaos:"
}

// Calculator is one price/quantity line item within a preset.
type Calculator struct {
	ID            int          `json:"id"`
	Label         string       `json:"label"`
	TotalQuantity float64      `json:"totalQuantity"`
	Price         float64      `json:"price"`
	CurrencyType  CurrencyType `json:"currencyType"`
}

// CalculatorResult is the derived monetary result of a single calculator.
// Never persisted, always recomputed.
type CalculatorResult struct {
	ID           int          `json:"id"`
	Result       float64      `json:"result"`
	CurrencyType CurrencyType `json:"currencyType"`
}

// Preset is a complete named configuration of calculators, exchange rate
// and request template text.
type Preset struct {
	Name          string       `json:"name"`
	ExchangeRate  float64      `json:"exchangeRate"`
	RequestHeader string       `json:"requestHeader"`
	RequestFooter string       `json:"requestFooter"`
	Calculators   []Calculator `json:"calculators"`
}

// Clone returns a deep copy of the preset. Mutations always work on a copy,
// so snapshots handed out earlier stay untouched.
func (p Preset) Clone() Preset {
	cp := p
	cp.Calculators = make([]Calculator, len(p.Calculators))
	copy(cp.Calculators, p.Calculators)
	return cp
}

// Remainder — целая часть в основной валюте плюс остаток во второй.
type Remainder struct {
	WholePrimaryPart   int     `json:"wholePrimaryPart"`
	RemainderSecondary float64 `json:"remainderSecondary"`
}

// Summary is the aggregate over all calculator results, converted through
// the exchange rate. Derived only.
type Summary struct {
	TotalPrimary     float64   `json:"totalPrimary"`
	TotalSecondary   float64   `json:"totalSecondary"`
	TotalInSecondary float64   `json:"totalInSecondary"`
	TotalInPrimary   Remainder `json:"totalInPrimaryWithRemainder"`
}

// MaxCalculators — верхний предел строк в пресете.
const MaxCalculators = 20

// MainPresetName is the protected fallback preset. It always exists in the
// available list and cannot be deleted.
const MainPresetName = "Main"

// LegacyMainPresetName — старое имя основного пресета, переименовывается
// при загрузке и импорте.
const LegacyMainPresetName = "Основний"
