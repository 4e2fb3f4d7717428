package service

import (
	"context"
	"strings"
	"time"

	"github.com/Astemirdum/lending-service/lending/internal/errs"
	"github.com/Astemirdum/lending-service/lending/internal/model"
	"github.com/Astemirdum/lending-service/lending/internal/repository"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// SequenceAllocator issues year-scoped human readable identifiers.
type SequenceAllocator struct {
	repo repository.SequenceRepository
	log  *zap.Logger
	now  func() time.Time
	opts options
}

func NewSequenceAllocator(repo repository.SequenceRepository, log *zap.Logger, opts ...Option) *SequenceAllocator {
	o := newOptions(opts)
	return &SequenceAllocator{
		repo: repo,
		log:  log.Named("sequence"),
		now:  o.now,
		opts: o,
	}
}

// Allocate reserves the next number of the named sequence and returns the formatted
// identifier. The reservation is durable before Allocate returns and is never handed
// out again, even if the caller's own work fails afterwards.
func (a *SequenceAllocator) Allocate(ctx context.Context, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", errs.New(errs.KindValidation, "sequence name is empty")
	}
	year := model.SequenceYear(a.now().UTC())
	c, err := a.repo.NextSequence(ctx, name, year, a.opts.formatFor(name))
	if err != nil {
		a.log.Error("allocate", zap.String("sequence", name), zap.Error(err))
		return "", errs.Wrap(errs.KindAllocationFailure, err, "reserve "+name)
	}
	return model.FormatSequence(c.Format, c.LastNumber, c.LastYear), nil
}

// Preview reports the identifier the next Allocate would return, without consuming it.
func (a *SequenceAllocator) Preview(ctx context.Context, name string) (model.SequencePreview, error) {
	c, err := a.Counter(ctx, name)
	if err != nil {
		return model.SequencePreview{}, err
	}
	number, year := c.Next(model.SequenceYear(a.now().UTC()))
	return model.SequencePreview{
		Name:          name,
		NextID:        model.FormatSequence(c.Format, number, year),
		CurrentNumber: c.LastNumber,
		CurrentYear:   c.LastYear,
	}, nil
}

// Counter returns the stored counter, or the zero state a first allocation would start from.
func (a *SequenceAllocator) Counter(ctx context.Context, name string) (model.SequenceCounter, error) {
	c, err := a.repo.GetSequence(ctx, name)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return model.SequenceCounter{Name: name, Format: a.opts.formatFor(name)}, nil
	case err != nil:
		return model.SequenceCounter{}, err
	}
	return c, nil
}

func (a *SequenceAllocator) Configure(ctx context.Context, name, format string) (model.SequenceCounter, error) {
	format = strings.TrimSpace(format)
	if strings.TrimSpace(name) == "" {
		return model.SequenceCounter{}, errs.New(errs.KindValidation, "sequence name is empty")
	}
	if !strings.Contains(format, "{number}") {
		return model.SequenceCounter{}, errs.New(errs.KindValidation, "format %q has no {number} placeholder", format)
	}
	c, err := a.repo.SetSequenceFormat(ctx, name, format)
	if err != nil {
		return model.SequenceCounter{}, err
	}
	a.log.Info("sequence format changed", zap.String("sequence", name), zap.String("format", format))
	return c, nil
}
