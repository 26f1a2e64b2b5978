package calculator

import (
	"strconv"
	"strings"

	"poe-calc/internal/storage"
)

// NoItemsBody — тело запроса, когда продавать нечего.
const NoItemsBody = "No items for sale (all quantities = 0)"

// RequestText is the generated trade-request snippet.
type RequestText struct {
	Header string `json:"header"`
	Body   string `json:"body"`
	Footer string `json:"footer"`
	Full   string `json:"full"`
}

// GenerateRequest renders the trade-request text for a preset: one line per
// calculator with a positive quantity, wrapped by the trimmed header and
// footer. Empty header/footer are omitted from the full text.
func GenerateRequest(preset storage.Preset) RequestText {
	var lines []string
	for _, calc := range preset.Calculators {
		if calc.TotalQuantity <= 0 {
			continue
		}
		var b strings.Builder
		b.WriteString("x")
		b.WriteString(formatNumber(calc.TotalQuantity))
		b.WriteString(" ")
		b.WriteString(DisplayName(calc))
		b.WriteString(" - ")
		b.WriteString(formatNumber(calc.Price))
		b.WriteString(calc.CurrencyType.Icon())
		b.WriteString("/ea")
		lines = append(lines, b.String())
	}

	body := NoItemsBody
	if len(lines) > 0 {
		body = strings.Join(lines, "\n")
	}

	parts := make([]string, 0, 3)
	if header := strings.TrimSpace(preset.RequestHeader); header != "" {
		parts = append(parts, header)
	}
	parts = append(parts, body)
	if footer := strings.TrimSpace(preset.RequestFooter); footer != "" {
		parts = append(parts, footer)
	}

	return RequestText{
		Header: preset.RequestHeader,
		Body:   body,
		Footer: preset.RequestFooter,
		Full:   strings.Join(parts, "\n\n"),
	}
}

// GenerateRequest renders the request text for the current working preset.
func (s *Store) GenerateRequest() RequestText {
	s.mu.Lock()
	preset := s.current.Clone()
	s.mu.Unlock()

	return GenerateRequest(preset)
}

// DisplayName — подпись строки; для пустого label подставляется
// Calculator_{id}.
func DisplayName(calc storage.Calculator) string {
	if label := strings.TrimSpace(calc.Label); label != "" {
		return label
	}
	return "Calculator_" + strconv.Itoa(calc.ID)
}

// formatNumber renders a float the way the frontend shows it: shortest
// form, no trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
