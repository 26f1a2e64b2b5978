package calculator

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"poe-calc/internal/storage"
)

// LoadFromStorage восстанавливает оба слота из хранилища. Любая проблема —
// недоступная база, битый JSON, невалидный пресет — не фатальна: слот
// остаётся на значениях по умолчанию, проблема уходит в лог.
func (s *Store) LoadFromStorage(ctx context.Context) {
	const op = "calculator.Store.LoadFromStorage"

	if s.storage == nil {
		return
	}

	var (
		presets []storage.Preset
		current *storage.Preset
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		presets, err = s.storage.LoadPresetList(gCtx)
		if err != nil {
			return fmt.Errorf("preset list: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		current, err = s.storage.LoadCurrentPreset(gCtx)
		if err != nil {
			return fmt.Errorf("current preset: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.log.Warn("failed to load stored state",
			slog.String("op", op),
			slog.String("error", err.Error()),
		)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(presets) > 0 {
		if migrated, ok := migrateList(presets); ok {
			s.available = migrated
		} else {
			s.log.Warn("stored preset list is invalid, keeping defaults", slog.String("op", op))
		}
	}

	if current != nil {
		migrated := MigratePreset(*current)
		if err := ValidatePreset(migrated); err != nil {
			s.log.Warn("stored current preset is invalid, keeping default",
				slog.String("op", op),
				slog.String("error", err.Error()),
			)
		} else {
			s.current = migrated
		}
	}

	// "Main" должен существовать всегда, что бы ни лежало в базе.
	if !hasPresetName(s.available, storage.MainPresetName) {
		s.available = append([]storage.Preset{storage.DefaultPreset()}, s.available...)
	}

	s.notifyLocked()
}

// migrateList мигрирует каждый пресет; список принимается только целиком.
func migrateList(presets []storage.Preset) ([]storage.Preset, bool) {
	migrated := make([]storage.Preset, 0, len(presets))
	for _, p := range presets {
		m := MigratePreset(p)
		if err := ValidatePreset(m); err != nil {
			return nil, false
		}
		migrated = append(migrated, m)
	}
	return migrated, true
}
