package calculator

import (
	"context"
	"log/slog"
	"sync"

	"poe-calc/internal/storage"
)

// PresetStorage — контракт внешнего хранилища (серверный аналог
// localStorage). Любой вызов может упасть: ошибки логируются и не влияют
// на состояние в памяти.
type PresetStorage interface {
	LoadPresetList(ctx context.Context) ([]storage.Preset, error)
	SavePresetList(ctx context.Context, presets []storage.Preset) error
	LoadCurrentPreset(ctx context.Context) (*storage.Preset, error)
	SaveCurrentPreset(ctx context.Context, preset storage.Preset) error
}

// Snapshot is an immutable view of the store: the working preset, the named
// preset collection and the derived results/summary for the working preset.
type Snapshot struct {
	Preset  storage.Preset             `json:"preset"`
	Presets []storage.Preset           `json:"presets"`
	Results []storage.CalculatorResult `json:"results"`
	Summary storage.Summary            `json:"summary"`
}

type subscriber struct {
	id int
	fn func(Snapshot)
}

// Store owns the current preset and the available presets. Every mutation
// builds a new Preset value, persists it best-effort and synchronously
// pushes a fresh snapshot to subscribers, in subscription order.
type Store struct {
	log     *slog.Logger
	storage PresetStorage

	mu          sync.Mutex
	current     storage.Preset
	available   []storage.Preset
	subscribers []subscriber
	nextSubID   int
}

func NewStore(log *slog.Logger, presetStorage PresetStorage) *Store {
	return &Store{
		log:       log,
		storage:   presetStorage,
		current:   storage.DefaultPreset(),
		available: storage.DefaultPresets(),
	}
}

// Snapshot returns the current state. Безопасно для конкурентного чтения:
// все срезы — копии.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers a callback invoked synchronously after every state
// change. Returns an unsubscribe func.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// ResultsWithQuantities derives results and a summary for the current
// calculators with externally supplied quantities (the "sold" inputs of the
// UI). Pure with respect to store state.
func (s *Store) ResultsWithQuantities(quantities map[int]float64) ([]storage.CalculatorResult, storage.Summary, error) {
	s.mu.Lock()
	preset := s.current.Clone()
	s.mu.Unlock()

	results := ComputeResultsWithQuantities(preset.Calculators, quantities)
	summary, err := ComputeSummary(results, preset.ExchangeRate)
	if err != nil {
		return nil, storage.Summary{}, err
	}
	return results, summary, nil
}

// CalculatorUpdate — частичное обновление строки; nil-поля не трогаются.
type CalculatorUpdate struct {
	Label         *string
	TotalQuantity *float64
	Price         *float64
	CurrencyType  *storage.CurrencyType
}

// UpdateCalculator replaces the named fields of one calculator. Unknown id
// is a no-op. Negative quantity or price is clamped to 0.
func (s *Store) UpdateCalculator(ctx context.Context, id int, upd CalculatorUpdate) error {
	const op = "calculator.Store.UpdateCalculator"

	if upd.CurrencyType != nil && !upd.CurrencyType.Valid() {
		return ErrInvalidCurrency
	}

	return s.mutateCurrent(ctx, op, func(p *storage.Preset) error {
		for i := range p.Calculators {
			if p.Calculators[i].ID != id {
				continue
			}
			if upd.Label != nil {
				p.Calculators[i].Label = *upd.Label
			}
			if upd.TotalQuantity != nil {
				p.Calculators[i].TotalQuantity = clampNonNegative(*upd.TotalQuantity)
			}
			if upd.Price != nil {
				p.Calculators[i].Price = clampNonNegative(*upd.Price)
			}
			if upd.CurrencyType != nil {
				p.Calculators[i].CurrencyType = *upd.CurrencyType
			}
			return nil
		}
		return nil
	})
}

// AddCalculator appends a zero-valued calculator with a fresh unique id.
// Fails once the preset holds MaxCalculators rows.
func (s *Store) AddCalculator(ctx context.Context) error {
	const op = "calculator.Store.AddCalculator"

	return s.mutateCurrent(ctx, op, func(p *storage.Preset) error {
		if len(p.Calculators) >= storage.MaxCalculators {
			return ErrCalculatorLimit
		}

		p.Calculators = append(p.Calculators, storage.Calculator{
			ID:           nextCalculatorID(p.Calculators),
			CurrencyType: storage.CurrencyPrimary,
		})
		return nil
	})
}

// RemoveCalculator removes a row by id. Refuses to remove the last row;
// unknown id is a no-op.
func (s *Store) RemoveCalculator(ctx context.Context, id int) error {
	const op = "calculator.Store.RemoveCalculator"

	return s.mutateCurrent(ctx, op, func(p *storage.Preset) error {
		if len(p.Calculators) <= 1 {
			return ErrLastCalculator
		}

		kept := p.Calculators[:0:0]
		for _, calc := range p.Calculators {
			if calc.ID != id {
				kept = append(kept, calc)
			}
		}
		p.Calculators = kept
		return nil
	})
}

func (s *Store) UpdateExchangeRate(ctx context.Context, rate float64) error {
	const op = "calculator.Store.UpdateExchangeRate"

	if rate <= 0 {
		return ErrInvalidRate
	}

	return s.mutateCurrent(ctx, op, func(p *storage.Preset) error {
		p.ExchangeRate = rate
		return nil
	})
}

func (s *Store) UpdateRequestHeader(ctx context.Context, header string) error {
	const op = "calculator.Store.UpdateRequestHeader"

	return s.mutateCurrent(ctx, op, func(p *storage.Preset) error {
		p.RequestHeader = header
		return nil
	})
}

func (s *Store) UpdateRequestFooter(ctx context.Context, footer string) error {
	const op = "calculator.Store.UpdateRequestFooter"

	return s.mutateCurrent(ctx, op, func(p *storage.Preset) error {
		p.RequestFooter = footer
		return nil
	})
}

// MarkAsSold decrements a calculator's total quantity, clamped at zero.
// Amount <= 0 and unknown id are no-ops.
func (s *Store) MarkAsSold(ctx context.Context, id int, amount float64) error {
	const op = "calculator.Store.MarkAsSold"

	if amount <= 0 {
		return nil
	}

	return s.mutateCurrent(ctx, op, func(p *storage.Preset) error {
		for i := range p.Calculators {
			if p.Calculators[i].ID != id {
				continue
			}
			p.Calculators[i].TotalQuantity = clampNonNegative(p.Calculators[i].TotalQuantity - amount)
			return nil
		}
		return nil
	})
}

// ResetAllTotals zeroes every calculator's total quantity.
func (s *Store) ResetAllTotals(ctx context.Context) error {
	const op = "calculator.Store.ResetAllTotals"

	return s.mutateCurrent(ctx, op, func(p *storage.Preset) error {
		for i := range p.Calculators {
			p.Calculators[i].TotalQuantity = 0
		}
		return nil
	})
}

// mutateCurrent применяет мутацию к копии текущего пресета. Если мутация
// вернула ошибку, состояние не меняется. После успешной мутации — запись
// в хранилище (best-effort) и синхронное уведомление подписчиков.
func (s *Store) mutateCurrent(ctx context.Context, op string, mutate func(p *storage.Preset) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current.Clone()
	if err := mutate(&next); err != nil {
		return err
	}

	s.current = next
	s.persistCurrentLocked(ctx, op)
	s.notifyLocked()
	return nil
}

func (s *Store) persistCurrentLocked(ctx context.Context, op string) {
	if s.storage == nil {
		return
	}
	if err := s.storage.SaveCurrentPreset(ctx, s.current.Clone()); err != nil {
		s.log.Warn("failed to save current preset",
			slog.String("op", op),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Store) persistListLocked(ctx context.Context, op string) {
	if s.storage == nil {
		return
	}
	if err := s.storage.SavePresetList(ctx, clonePresets(s.available)); err != nil {
		s.log.Warn("failed to save preset list",
			slog.String("op", op),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Store) notifyLocked() {
	if len(s.subscribers) == 0 {
		return
	}
	snap := s.snapshotLocked()
	for _, sub := range s.subscribers {
		sub.fn(snap)
	}
}

func (s *Store) snapshotLocked() Snapshot {
	preset := s.current.Clone()
	results := ComputeResults(preset.Calculators)

	summary, err := ComputeSummary(results, preset.ExchangeRate)
	if err != nil {
		// Курс <= 0 может приехать только из старых сохранённых данных.
		s.log.Warn("cannot compute summary", slog.String("error", err.Error()))
	}

	return Snapshot{
		Preset:  preset,
		Presets: clonePresets(s.available),
		Results: results,
		Summary: summary,
	}
}

func clonePresets(presets []storage.Preset) []storage.Preset {
	cloned := make([]storage.Preset, 0, len(presets))
	for _, p := range presets {
		cloned = append(cloned, p.Clone())
	}
	return cloned
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// nextCalculatorID — max(id)+1 с явной проверкой уникальности: после серии
// добавлений и удалений арифметике на максимуме доверять нельзя.
func nextCalculatorID(calculators []storage.Calculator) int {
	next := 1
	for _, calc := range calculators {
		if calc.ID >= next {
			next = calc.ID + 1
		}
	}
	for hasCalculatorID(calculators, next) {
		next++
	}
	return next
}

func hasCalculatorID(calculators []storage.Calculator, id int) bool {
	for _, calc := range calculators {
		if calc.ID == id {
			return true
		}
	}
	return false
}
