package calculator

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"poe-calc/internal/storage"
)

// SavePreset stores a copy of the working preset under the given name.
// Любое имя, кроме "Main", должно быть свободно; пересохранение "Main"
// всегда разрешено и заменяет существующую запись.
func (s *Store) SavePreset(ctx context.Context, name string) error {
	const op = "calculator.Store.SavePreset"

	s.mu.Lock()
	defer s.mu.Unlock()

	if name != storage.MainPresetName && hasPresetName(s.available, name) {
		return fmt.Errorf("%s: %w", op, ErrNameTaken)
	}

	saved := s.current.Clone()
	saved.Name = name

	kept := s.available[:0:0]
	for _, p := range s.available {
		if p.Name != name {
			kept = append(kept, p)
		}
	}
	s.available = append(kept, saved)

	s.persistListLocked(ctx, op)
	s.notifyLocked()
	return nil
}

// OverwriteCurrentPreset replaces the saved preset bearing the working
// preset's name with the working copy. Fails when no saved preset has that
// name: исходник в этом случае молча "успевал", не записав ничего.
func (s *Store) OverwriteCurrentPreset(ctx context.Context) error {
	const op = "calculator.Store.OverwriteCurrentPreset"

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.available {
		if p.Name == s.current.Name {
			s.available[i] = s.current.Clone()
			s.persistListLocked(ctx, op)
			s.notifyLocked()
			return nil
		}
	}

	return fmt.Errorf("%s: %w", op, ErrPresetNotFound)
}

// LoadPreset makes a copy of the named saved preset the working preset.
func (s *Store) LoadPreset(ctx context.Context, name string) error {
	const op = "calculator.Store.LoadPreset"

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.available {
		if p.Name == name {
			s.current = p.Clone()
			s.persistCurrentLocked(ctx, op)
			s.notifyLocked()
			return nil
		}
	}

	return fmt.Errorf("%s: %w", op, ErrPresetNotFound)
}

// DeletePreset removes the named preset from the available list. "Main"
// is protected. Рабочий пресет не трогаем — перезагрузка на "Main" лежит
// на вызывающем.
func (s *Store) DeletePreset(ctx context.Context, name string) error {
	const op = "calculator.Store.DeletePreset"

	if name == storage.MainPresetName {
		return fmt.Errorf("%s: %w", op, ErrMainProtected)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.available[:0:0]
	for _, p := range s.available {
		if p.Name != name {
			kept = append(kept, p)
		}
	}
	s.available = kept

	s.persistListLocked(ctx, op)
	s.notifyLocked()
	return nil
}

// ExportPreset serializes the working preset into a transport-safe blob:
// JSON -> percent-escaping -> base64. Раскладка повторяет
// btoa(encodeURIComponent(JSON.stringify(p))) старого фронтенда, так что
// коды совместимы в обе стороны.
func (s *Store) ExportPreset() (string, error) {
	const op = "calculator.Store.ExportPreset"

	s.mu.Lock()
	preset := s.current.Clone()
	s.mu.Unlock()

	data, err := json.Marshal(preset)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	// QueryEscape кодирует пробел как '+', encodeURIComponent — как %20.
	// Приводим к %20, иначе старый фронтенд прочитает '+' буквально.
	escaped := strings.ReplaceAll(url.QueryEscape(string(data)), "+", "%20")
	return base64.StdEncoding.EncodeToString([]byte(escaped)), nil
}

// ImportPreset decodes a blob produced by ExportPreset, migrates older
// shapes, validates wholesale and appends the preset to the available list
// under a collision-free name ("name (1)", "name (2)", ...). The working
// preset is never replaced.
func (s *Store) ImportPreset(ctx context.Context, blob string) error {
	const op = "calculator.Store.ImportPreset"

	preset, err := decodePreset(blob)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	preset.Name = dedupeName(s.available, preset.Name)
	s.available = append(s.available, preset)

	s.persistListLocked(ctx, op)
	s.notifyLocked()
	return nil
}

// ResetToDefaults wipes the persisted slots and restores the bootstrap
// state: default "Main" plus the bundled beast preset.
func (s *Store) ResetToDefaults(ctx context.Context) error {
	const op = "calculator.Store.ResetToDefaults"

	s.mu.Lock()
	defer s.mu.Unlock()

	if clearer, ok := s.storage.(interface {
		ClearState(ctx context.Context) error
	}); ok {
		if err := clearer.ClearState(ctx); err != nil {
			s.log.Warn("failed to clear stored state",
				slog.String("op", op),
				slog.String("error", err.Error()),
			)
		}
	}

	s.current = storage.DefaultPreset()
	s.available = storage.DefaultPresets()

	s.persistCurrentLocked(ctx, op)
	s.persistListLocked(ctx, op)
	s.notifyLocked()
	return nil
}

func decodePreset(blob string) (storage.Preset, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return storage.Preset{}, fmt.Errorf("%w: base64: %v", ErrInvalidPreset, err)
	}

	unescaped, err := url.QueryUnescape(string(raw))
	if err != nil {
		return storage.Preset{}, fmt.Errorf("%w: escaping: %v", ErrInvalidPreset, err)
	}

	return ParsePreset([]byte(unescaped))
}

func hasPresetName(presets []storage.Preset, name string) bool {
	for _, p := range presets {
		if p.Name == name {
			return true
		}
	}
	return false
}

func dedupeName(presets []storage.Preset, name string) string {
	candidate := name
	for counter := 1; hasPresetName(presets, candidate); counter++ {
		candidate = fmt.Sprintf("%s (%d)", name, counter)
	}
	return candidate
}
