package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Astemirdum/lending-service/lending/internal/model"
	"github.com/Astemirdum/lending-service/lending/internal/repository/memory"
	"github.com/Astemirdum/lending-service/lending/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock(t time.Time) *fakeClock { return &fakeClock{t: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

type fixture struct {
	store  *memory.Store
	clock  *fakeClock
	seq    *service.SequenceAllocator
	audit  *service.AuditRecorder
	loans  *service.LoanService
	item   model.CatalogItem
	patron model.Patron
}

func newFixture(t *testing.T, opts ...service.Option) *fixture {
	t.Helper()
	f := &fixture{
		store: memory.New(),
		clock: newClock(day(2024, time.January, 1)),
	}
	log := zap.NewNop()
	opts = append([]service.Option{service.WithClock(f.clock.Now)}, opts...)
	f.seq = service.NewSequenceAllocator(f.store, log, opts...)
	f.audit = service.NewAuditRecorder(f.store, log, opts...)
	f.loans = service.NewLoanService(f.store, f.seq, log, append([]service.Option{service.WithAuditor(f.audit)}, opts...)...)
	f.item = f.addItem("1/24", model.ItemAvailable)
	f.patron = f.addPatron("M-0001", model.PatronActive)
	return f
}

func (f *fixture) addItem(catalogID string, status model.ItemStatus) model.CatalogItem {
	item := model.CatalogItem{
		ID:        uuid.New(),
		CatalogID: catalogID,
		Title:     "The Go Programming Language",
		Author:    "Donovan, Kernighan",
		Type:      "book",
		Status:    status,
	}
	f.store.PutCatalogItem(item)
	return item
}

func (f *fixture) addPatron(membershipID string, status model.PatronStatus) model.Patron {
	p := model.Patron{
		ID:           uuid.New(),
		MembershipID: membershipID,
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.org",
		Status:       status,
	}
	f.store.PutPatron(p)
	return p
}

func (f *fixture) checkout(t *testing.T, ctx context.Context, days int) model.Loan {
	t.Helper()
	loan, err := f.loans.Checkout(ctx, model.CheckoutRequest{
		CatalogItemID: f.item.ID,
		PatronID:      f.patron.ID,
		DurationDays:  days,
	})
	require.NoError(t, err)
	return loan
}

func (f *fixture) itemStatus(t *testing.T, id uuid.UUID) model.ItemStatus {
	t.Helper()
	item, err := f.store.GetCatalogItem(context.Background(), id)
	require.NoError(t, err)
	return item.Status
}

func (f *fixture) auditEntries(t *testing.T, filter model.AuditFilter) []model.AuditLogEntry {
	t.Helper()
	entries, err := f.audit.List(context.Background(), filter)
	require.NoError(t, err)
	return entries
}
