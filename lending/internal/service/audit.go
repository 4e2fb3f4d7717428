package service

import (
	"context"
	"strings"
	"time"

	"github.com/Astemirdum/lending-service/lending/internal/errs"
	"github.com/Astemirdum/lending-service/lending/internal/model"
	"github.com/Astemirdum/lending-service/lending/internal/repository"
	"github.com/Astemirdum/lending-service/pkg/actor"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Auditor persists one audit entry per lifecycle mutation.
type Auditor interface {
	Record(ctx context.Context, rec model.AuditRecord) (model.AuditLogEntry, error)
}

type NopAuditor struct{}

func (NopAuditor) Record(context.Context, model.AuditRecord) (model.AuditLogEntry, error) {
	return model.AuditLogEntry{}, nil
}

type AuditRecorder struct {
	repo repository.AuditRepository
	pub  Publisher
	log  *zap.Logger
	now  func() time.Time
}

var _ Auditor = (*AuditRecorder)(nil)

func NewAuditRecorder(repo repository.AuditRepository, log *zap.Logger, opts ...Option) *AuditRecorder {
	o := newOptions(opts)
	return &AuditRecorder{
		repo: repo,
		pub:  o.publisher,
		log:  log.Named("audit"),
		now:  o.now,
	}
}

// Record writes the entry with its own id, timestamp and, when the record names none,
// the actor carried by ctx. Written entries are then published; publish errors are only logged.
func (r *AuditRecorder) Record(ctx context.Context, rec model.AuditRecord) (model.AuditLogEntry, error) {
	if _, err := model.ParseAction(string(rec.Action)); err != nil {
		return model.AuditLogEntry{}, errs.Wrap(errs.KindAuditWriteFailure, err, "audit action")
	}
	who := strings.TrimSpace(rec.Actor)
	if who == "" {
		who = actor.Name(ctx)
	}
	e := model.AuditLogEntry{
		ID:            uuid.New(),
		LoanID:        rec.LoanID,
		LoanNumber:    rec.LoanNumber,
		PatronID:      rec.PatronID,
		CatalogItemID: rec.CatalogItemID,
		Action:        rec.Action,
		Description:   rec.Description,
		Changes:       rec.Changes,
		Actor:         who,
		Timestamp:     r.now().UTC(),
	}
	if err := r.repo.InsertAudit(ctx, e); err != nil {
		return model.AuditLogEntry{}, errs.Wrap(errs.KindAuditWriteFailure, err, "insert audit entry")
	}

	if err := r.pub.Publish(ctx, model.NewAuditEvent(e)); err != nil {
		r.log.Warn("publish audit event", zap.Stringer("entry", e.ID), zap.String("action", string(e.Action)), zap.Error(err))
	}
	return e, nil
}

// List returns entries newest first.
func (r *AuditRecorder) List(ctx context.Context, f model.AuditFilter) ([]model.AuditLogEntry, error) {
	if err := validatePage(f.Limit, f.Offset); err != nil {
		return nil, err
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, errs.New(errs.KindValidation, "date range ends before it starts")
	}
	return r.repo.ListAudit(ctx, f)
}

func (r *AuditRecorder) Statistics(ctx context.Context) (model.AuditStatistics, error) {
	now := r.now().UTC()
	total, err := r.repo.CountAudit(ctx, "", time.Time{})
	if err != nil {
		return model.AuditStatistics{}, err
	}
	stats := model.AuditStatistics{
		TotalEntries: total,
		ActionCounts: make(map[model.Action]int, len(model.Actions)),
	}
	for _, a := range model.Actions {
		n, err := r.repo.CountAudit(ctx, a, time.Time{})
		if err != nil {
			return model.AuditStatistics{}, err
		}
		stats.ActionCounts[a] = n
	}
	if stats.RecentActivity7d, err = r.repo.CountAudit(ctx, "", now.AddDate(0, 0, -7)); err != nil {
		return model.AuditStatistics{}, err
	}
	if stats.MostActiveDay30d, err = r.repo.BusiestDay(ctx, now.AddDate(0, 0, -30)); err != nil {
		return model.AuditStatistics{}, err
	}
	return stats, nil
}

// Prune deletes entries older than keepDays. Lifecycle operations never call it.
func (r *AuditRecorder) Prune(ctx context.Context, keepDays int) (int64, error) {
	if keepDays <= 0 {
		return 0, errs.New(errs.KindValidation, "retention must be at least one day, got %d", keepDays)
	}
	before := r.now().UTC().AddDate(0, 0, -keepDays)
	n, err := r.repo.PruneAudit(ctx, before)
	if err != nil {
		return 0, err
	}
	r.log.Info("audit pruned", zap.Int64("deleted", n), zap.Time("before", before))
	return n, nil
}
