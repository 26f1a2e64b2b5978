package calculator

import (
	"context"
	"encoding/base64"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"poe-calc/internal/storage"
)

// encodeBlob кодирует JSON так же, как старый фронтенд:
// btoa(encodeURIComponent(json))
func encodeBlob(rawJSON string) string {
	return base64.StdEncoding.EncodeToString([]byte(url.QueryEscape(rawJSON)))
}

func presetNames(presets []storage.Preset) []string {
	names := make([]string, 0, len(presets))
	for _, p := range presets {
		names = append(names, p.Name)
	}
	return names
}

func TestSavePreset_NameCollision(t *testing.T) {
	store := newTestStore()

	assert.NoError(t, store.SavePreset(context.Background(), "Beasts"))
	lenBefore := len(store.Snapshot().Presets)

	// Повторное сохранение под тем же именем — отказ, список не меняется
	err := store.SavePreset(context.Background(), "Beasts")
	assert.ErrorIs(t, err, ErrNameTaken)
	assert.Equal(t, lenBefore, len(store.Snapshot().Presets))

	assert.NoError(t, store.SavePreset(context.Background(), "Beasts2"))
	assert.Equal(t, lenBefore+1, len(store.Snapshot().Presets))
}

func TestSavePreset_MainAlwaysSucceeds(t *testing.T) {
	store := newTestStore()

	assert.NoError(t, store.UpdateExchangeRate(context.Background(), 250))
	assert.NoError(t, store.SavePreset(context.Background(), storage.MainPresetName))
	assert.NoError(t, store.SavePreset(context.Background(), storage.MainPresetName))

	// "Main" в списке остаётся один и несёт свежий курс
	count := 0
	for _, p := range store.Snapshot().Presets {
		if p.Name == storage.MainPresetName {
			count++
			assert.Equal(t, 250.0, p.ExchangeRate)
		}
	}
	assert.Equal(t, 1, count)
}

func TestDeletePreset_MainProtected(t *testing.T) {
	store := newTestStore()

	err := store.DeletePreset(context.Background(), storage.MainPresetName)

	assert.ErrorIs(t, err, ErrMainProtected)
	assert.Contains(t, presetNames(store.Snapshot().Presets), storage.MainPresetName)
}

func TestDeletePreset_RemovesNamed(t *testing.T) {
	store := newTestStore()
	assert.NoError(t, store.SavePreset(context.Background(), "Doomed"))

	assert.NoError(t, store.DeletePreset(context.Background(), "Doomed"))

	assert.NotContains(t, presetNames(store.Snapshot().Presets), "Doomed")
	// Рабочий пресет не перегружается автоматически
	assert.Equal(t, storage.MainPresetName, store.Snapshot().Preset.Name)
}

func TestOverwriteCurrentPreset_ReplacesEntry(t *testing.T) {
	store := newTestStore()
	assert.NoError(t, store.SavePreset(context.Background(), "Work"))
	assert.NoError(t, store.LoadPreset(context.Background(), "Work"))
	assert.NoError(t, store.UpdateExchangeRate(context.Background(), 300))

	assert.NoError(t, store.OverwriteCurrentPreset(context.Background()))

	for _, p := range store.Snapshot().Presets {
		if p.Name == "Work" {
			assert.Equal(t, 300.0, p.ExchangeRate)
		}
	}
}

func TestOverwriteCurrentPreset_FailsWhenAbsent(t *testing.T) {
	store := newTestStore()
	assert.NoError(t, store.SavePreset(context.Background(), "Temp"))
	assert.NoError(t, store.LoadPreset(context.Background(), "Temp"))
	assert.NoError(t, store.DeletePreset(context.Background(), "Temp"))

	err := store.OverwriteCurrentPreset(context.Background())

	assert.ErrorIs(t, err, ErrPresetNotFound)
}

func TestLoadPreset_UnknownFails(t *testing.T) {
	store := newTestStore()

	err := store.LoadPreset(context.Background(), "No Such Preset")

	assert.ErrorIs(t, err, ErrPresetNotFound)
	assert.Equal(t, storage.MainPresetName, store.Snapshot().Preset.Name)
}

func TestLoadPreset_WorksOnACopy(t *testing.T) {
	store := newTestStore()
	assert.NoError(t, store.LoadPreset(context.Background(), "POE BEAST"))

	// Правка рабочей копии не трогает сохранённый пресет
	assert.NoError(t, store.UpdateCalculator(context.Background(), 1, CalculatorUpdate{
		Label: stringPtr("hacked"),
	}))

	for _, p := range store.Snapshot().Presets {
		if p.Name == "POE BEAST" {
			assert.Equal(t, "Vivid Watcher", p.Calculators[0].Label)
		}
	}
}

func TestExportImport_Roundtrip(t *testing.T) {
	store := newTestStore()

	assert.NoError(t, store.UpdateCalculator(context.Background(), 1, CalculatorUpdate{
		Label:         stringPtr("Зверь ёж"),
		TotalQuantity: floatPtr(5),
		Price:         floatPtr(1.4),
	}))
	assert.NoError(t, store.UpdateRequestHeader(context.Background(), "WTS Привет"))

	blob, err := store.ExportPreset()
	assert.NoError(t, err)

	assert.NoError(t, store.ImportPreset(context.Background(), blob))

	snap := store.Snapshot()
	// Имя "Main" занято — импорт получает суффикс
	imported := snap.Presets[len(snap.Presets)-1]
	assert.Equal(t, "Main (1)", imported.Name)
	assert.Equal(t, "WTS Привет", imported.RequestHeader)
	assert.Equal(t, snap.Preset.Calculators, imported.Calculators)
	assert.Equal(t, snap.Preset.ExchangeRate, imported.ExchangeRate)
}

func TestImportPreset_SuffixCounterGrows(t *testing.T) {
	store := newTestStore()

	blob, err := store.ExportPreset()
	assert.NoError(t, err)

	assert.NoError(t, store.ImportPreset(context.Background(), blob))
	assert.NoError(t, store.ImportPreset(context.Background(), blob))

	names := presetNames(store.Snapshot().Presets)
	assert.Contains(t, names, "Main (1)")
	assert.Contains(t, names, "Main (2)")
}

func TestImportPreset_MalformedBase64(t *testing.T) {
	store := newTestStore()
	before := presetNames(store.Snapshot().Presets)

	err := store.ImportPreset(context.Background(), "&&&not-base64&&&")

	assert.ErrorIs(t, err, ErrInvalidPreset)
	assert.Equal(t, before, presetNames(store.Snapshot().Presets))
}

func TestImportPreset_InvalidShapeLeavesStateUnchanged(t *testing.T) {
	store := newTestStore()
	before := presetNames(store.Snapshot().Presets)

	// exchangeRate-строка — форма не та, отклоняем целиком
	blob := encodeBlob(`{"name":"Bad","exchangeRate":"160","calculators":[{"id":1,"label":"","totalQuantity":0,"price":0,"currencyType":"д"}]}`)
	err := store.ImportPreset(context.Background(), blob)

	assert.ErrorIs(t, err, ErrInvalidPreset)
	assert.Equal(t, before, presetNames(store.Snapshot().Presets))
}

func TestImportPreset_MigratesLegacyShape(t *testing.T) {
	store := newTestStore()

	// Старый формат: нет header/footer, имя ещё до переименования
	blob := encodeBlob(`{"name":"Основний","exchangeRate":120,"calculators":[{"id":1,"label":"Orb","totalQuantity":2,"price":0.5,"currencyType":"с"}]}`)

	assert.NoError(t, store.ImportPreset(context.Background(), blob))

	snap := store.Snapshot()
	imported := snap.Presets[len(snap.Presets)-1]
	assert.Equal(t, "Main (1)", imported.Name)
	assert.Equal(t, "", imported.RequestHeader)
	assert.Equal(t, "", imported.RequestFooter)
	assert.Equal(t, 120.0, imported.ExchangeRate)
}

func TestImportPreset_DoesNotReplaceCurrent(t *testing.T) {
	store := newTestStore()
	currentBefore := store.Snapshot().Preset

	blob := encodeBlob(`{"name":"Incoming","exchangeRate":90,"calculators":[{"id":1,"label":"x","totalQuantity":1,"price":1,"currencyType":"д"}]}`)
	assert.NoError(t, store.ImportPreset(context.Background(), blob))

	assert.Equal(t, currentBefore, store.Snapshot().Preset)
}

func TestResetToDefaults(t *testing.T) {
	store := newTestStore()
	assert.NoError(t, store.SavePreset(context.Background(), "Extra"))
	assert.NoError(t, store.UpdateExchangeRate(context.Background(), 999))

	assert.NoError(t, store.ResetToDefaults(context.Background()))

	snap := store.Snapshot()
	assert.Equal(t, storage.MainPresetName, snap.Preset.Name)
	assert.Equal(t, 160.0, snap.Preset.ExchangeRate)
	assert.Equal(t, []string{storage.MainPresetName, "POE BEAST"}, presetNames(snap.Presets))
}
