package service

import (
	"time"

	"github.com/Astemirdum/lending-service/lending/internal/model"
)

const DefaultLoanDays = 14

type options struct {
	now             func() time.Time
	auditor         Auditor
	publisher       Publisher
	defaultLoanDays int
	formats         map[string]string
}

type Option func(*options)

func newOptions(opts []Option) options {
	o := options{
		now:             time.Now,
		auditor:         NopAuditor{},
		publisher:       NopPublisher{},
		defaultLoanDays: DefaultLoanDays,
		formats:         make(map[string]string),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithAuditor sets where lifecycle operations record their audit entries.
// Without it mutations are not audited.
func WithAuditor(a Auditor) Option {
	return func(o *options) {
		if a != nil {
			o.auditor = a
		}
	}
}

func WithPublisher(p Publisher) Option {
	return func(o *options) {
		if p != nil {
			o.publisher = p
		}
	}
}

func WithDefaultLoanDays(days int) Option {
	return func(o *options) {
		if days > 0 {
			o.defaultLoanDays = days
		}
	}
}

// WithSequenceFormat sets the template a sequence starts with when its counter row
// does not exist yet.
func WithSequenceFormat(name, format string) Option {
	return func(o *options) {
		if format != "" {
			o.formats[name] = format
		}
	}
}

func (o options) formatFor(name string) string {
	if f, ok := o.formats[name]; ok {
		return f
	}
	return model.DefaultSequenceFormat
}
