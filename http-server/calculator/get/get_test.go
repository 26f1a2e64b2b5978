package get

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"poe-calc/internal/service/calculator"
	"poe-calc/internal/storage"
)

type stubStateProvider struct {
	snap calculator.Snapshot
}

func (s *stubStateProvider) Snapshot() calculator.Snapshot {
	return s.snap
}

func TestGetState(t *testing.T) {
	preset := storage.DefaultPreset()
	results := calculator.ComputeResults(preset.Calculators)
	summary, err := calculator.ComputeSummary(results, preset.ExchangeRate)
	assert.NoError(t, err)

	provider := &stubStateProvider{snap: calculator.Snapshot{
		Preset:  preset,
		Presets: storage.DefaultPresets(),
		Results: results,
		Summary: summary,
	}}

	handler := GetState(slog.Default(), provider)

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp calculator.Snapshot
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, storage.MainPresetName, resp.Preset.Name)
	assert.Equal(t, 2, len(resp.Presets))
	assert.Equal(t, len(preset.Calculators), len(resp.Results))
}
