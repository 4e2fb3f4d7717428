package memory

import (
	"context"
	"time"

	"github.com/Astemirdum/lending-service/lending/internal/errs"
	"github.com/Astemirdum/lending-service/lending/internal/model"
)

func (s *Store) NextSequence(ctx context.Context, name string, year int, defaultFormat string) (model.SequenceCounter, error) {
	if err := ctx.Err(); err != nil {
		return model.SequenceCounter{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.counters[name]
	if !ok {
		c = model.SequenceCounter{Name: name, Format: defaultFormat}
	}
	c.LastNumber, c.LastYear = c.Next(year)
	c.UpdatedAt = time.Now().UTC()
	s.counters[name] = c
	return c, nil
}

func (s *Store) GetSequence(_ context.Context, name string) (model.SequenceCounter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.counters[name]
	if !ok {
		return model.SequenceCounter{}, errs.ErrNotFound
	}
	return c, nil
}

func (s *Store) SetSequenceFormat(_ context.Context, name, format string) (model.SequenceCounter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.counters[name]
	if !ok {
		c = model.SequenceCounter{Name: name}
	}
	c.Format = format
	c.UpdatedAt = time.Now().UTC()
	s.counters[name] = c
	return c, nil
}
