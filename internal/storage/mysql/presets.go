package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"poe-calc/internal/storage"
)

const (
	slotPresetList    = "presets"
	slotCurrentPreset = "current_preset"
)

// LoadPresetList возвращает сохранённый список пресетов. Если слот ещё
// не записан — (nil, nil), это не ошибка.
func (s *Storage) LoadPresetList(ctx context.Context) ([]storage.Preset, error) {
	const op = "storage.mysql.LoadPresetList"

	payload, err := s.loadSlot(ctx, slotPresetList)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if payload == "" {
		return nil, nil
	}

	var presets []storage.Preset
	if err := json.Unmarshal([]byte(payload), &presets); err != nil {
		return nil, fmt.Errorf("%s: ошибка парсинга JSON пресетов: %w", op, err)
	}

	return presets, nil
}

func (s *Storage) SavePresetList(ctx context.Context, presets []storage.Preset) error {
	const op = "storage.mysql.SavePresetList"

	payload, err := json.Marshal(presets)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.saveSlot(ctx, slotPresetList, string(payload)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// LoadCurrentPreset возвращает рабочий пресет или (nil, nil), если слот пуст.
func (s *Storage) LoadCurrentPreset(ctx context.Context) (*storage.Preset, error) {
	const op = "storage.mysql.LoadCurrentPreset"

	payload, err := s.loadSlot(ctx, slotCurrentPreset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if payload == "" {
		return nil, nil
	}

	preset := &storage.Preset{}
	if err := json.Unmarshal([]byte(payload), preset); err != nil {
		return nil, fmt.Errorf("%s: ошибка парсинга JSON текущего пресета: %w", op, err)
	}

	return preset, nil
}

func (s *Storage) SaveCurrentPreset(ctx context.Context, preset storage.Preset) error {
	const op = "storage.mysql.SaveCurrentPreset"

	payload, err := json.Marshal(preset)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.saveSlot(ctx, slotCurrentPreset, string(payload)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ClearState удаляет оба слота. Используется админским сбросом к заводским.
func (s *Storage) ClearState(ctx context.Context) error {
	const op = "storage.mysql.ClearState"

	stmt := `DELETE FROM calc_state WHERE slot IN (?, ?)`

	if _, err := s.db.ExecContext(ctx, stmt, slotPresetList, slotCurrentPreset); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) loadSlot(ctx context.Context, slot string) (string, error) {
	query := `SELECT payload FROM calc_state WHERE slot = ?`

	var payload string
	err := s.db.QueryRowContext(ctx, query, slot).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}

	return payload, nil
}

func (s *Storage) saveSlot(ctx context.Context, slot, payload string) error {
	stmt := `
		INSERT INTO calc_state (slot, payload) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE payload = VALUES(payload)
	`

	_, err := s.db.ExecContext(ctx, stmt, slot, payload)
	return err
}
