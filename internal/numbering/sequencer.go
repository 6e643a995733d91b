package numbering

import (
	"context"
	"errors"
	"sync"
	"time"

	"invoice-desk/internal/logger"
	"invoice-desk/internal/metrics"

	"go.uber.org/zap"
)

// DefaultMaxAttempts bounds how often Next re-reads storage after losing a race.
const DefaultMaxAttempts = 5

// Store returns the greatest number already issued for a period prefix,
// or nil when the period has none.
type Store interface {
	LatestForPeriod(ctx context.Context, prefix string) (*Number, error)
}

// PersistFunc writes a record under the allocated number. It must return an
// error wrapping ErrDuplicateNumber when the number is already taken.
type PersistFunc func(ctx context.Context, n Number) error

// Sequencer is the single allocation authority inside a process. The mutex
// covers the read-compute-write sequence; the unique index on the invoice
// number catches races with other processes, which are retried.
type Sequencer struct {
	mu          sync.Mutex
	store       Store
	now         func() time.Time
	maxAttempts int

	allocated metrics.Counter
	retried   metrics.Counter
}

// Stats counts allocations since the sequencer was created.
type Stats struct {
	Allocated uint64 `json:"allocated"`
	Retried   uint64 `json:"retried"`
}

type Option func(*Sequencer)

func WithClock(now func() time.Time) Option {
	return func(s *Sequencer) { s.now = now }
}

func WithMaxAttempts(n int) Option {
	return func(s *Sequencer) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

func NewSequencer(store Store, opts ...Option) *Sequencer {
	s := &Sequencer{
		store:       store,
		now:         time.Now,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Peek returns the number the next allocation would produce. Nothing is reserved.
func (s *Sequencer) Peek(ctx context.Context) (Number, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.compute(ctx)
}

// Next allocates a number and hands it to persist.
func (s *Sequencer) Next(ctx context.Context, persist PersistFunc) (Number, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "numbering"),
		zap.String("method", "Next"),
	)

	timer := metrics.StartTimer()

	s.mu.Lock()
	defer s.mu.Unlock()

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		n, err := s.compute(ctx)
		if err != nil {
			return Number{}, err
		}

		err = persist(ctx, n)
		if err == nil {
			s.allocated.Inc()
			log.Info("invoice number allocated",
				zap.String("invoice_number", n.String()),
				zap.Int("attempt", attempt),
				zap.Duration("duration", timer.Duration()),
			)
			return n, nil
		}

		if !errors.Is(err, ErrDuplicateNumber) {
			return Number{}, err
		}

		s.retried.Inc()
		log.Warn("invoice number taken, retrying",
			zap.String("invoice_number", n.String()),
			zap.Int("attempt", attempt),
		)

		if err := ctx.Err(); err != nil {
			return Number{}, err
		}
	}

	return Number{}, ErrAllocationConflict
}

func (s *Sequencer) Stats() Stats {
	return Stats{
		Allocated: s.allocated.Load(),
		Retried:   s.retried.Load(),
	}
}

func (s *Sequencer) compute(ctx context.Context) (Number, error) {
	now := s.now()

	prior, err := s.store.LatestForPeriod(ctx, Prefix(now))
	if err != nil {
		return Number{}, err
	}

	return Allocate(now, prior)
}
