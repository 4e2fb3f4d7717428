// Package memory is a process-local store with the same transactional contract as the
// Postgres repository. Transactions run against a copy of the loan and item tables and
// are published only on commit, one at a time.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Astemirdum/lending-service/lending/internal/errs"
	"github.com/Astemirdum/lending-service/lending/internal/model"
	"github.com/Astemirdum/lending-service/lending/internal/repository"
	"github.com/google/uuid"
)

type Store struct {
	mu       sync.RWMutex
	loans    map[uuid.UUID]model.Loan
	items    map[uuid.UUID]model.CatalogItem
	patrons  map[uuid.UUID]model.Patron
	audit    []auditRow
	counters map[string]model.SequenceCounter
}

var _ repository.Repository = (*Store)(nil)

func New() *Store {
	return &Store{
		loans:    make(map[uuid.UUID]model.Loan),
		items:    make(map[uuid.UUID]model.CatalogItem),
		patrons:  make(map[uuid.UUID]model.Patron),
		counters: make(map[string]model.SequenceCounter),
	}
}

func (s *Store) PutCatalogItem(item model.CatalogItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
}

func (s *Store) PutPatron(p model.Patron) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patrons[p.ID] = p
}

func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &tx{
		store: s,
		loans: make(map[uuid.UUID]model.Loan, len(s.loans)),
		items: make(map[uuid.UUID]model.CatalogItem, len(s.items)),
	}
	for k, v := range s.loans {
		t.loans[k] = v
	}
	for k, v := range s.items {
		t.items[k] = v
	}
	if err := fn(ctx, t); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.loans = t.loans
	s.items = t.items
	return nil
}

type tx struct {
	store *Store
	loans map[uuid.UUID]model.Loan
	items map[uuid.UUID]model.CatalogItem
}

func (t *tx) Loan(_ context.Context, id uuid.UUID) (model.Loan, error) {
	l, ok := t.loans[id]
	if !ok {
		return model.Loan{}, errs.ErrNotFound
	}
	return l, nil
}

func (t *tx) ActiveLoanForItem(_ context.Context, itemID uuid.UUID) (model.Loan, error) {
	for _, l := range t.loans {
		if l.CatalogItemID == itemID && l.Status == model.LoanActive {
			return l, nil
		}
	}
	return model.Loan{}, errs.ErrNotFound
}

func (t *tx) CatalogItem(_ context.Context, id uuid.UUID) (model.CatalogItem, error) {
	item, ok := t.items[id]
	if !ok {
		return model.CatalogItem{}, errs.ErrNotFound
	}
	return item, nil
}

func (t *tx) Patron(_ context.Context, id uuid.UUID) (model.Patron, error) {
	p, ok := t.store.patrons[id]
	if !ok {
		return model.Patron{}, errs.ErrNotFound
	}
	return p, nil
}

func (t *tx) CreateLoan(_ context.Context, loan model.Loan) (model.Loan, error) {
	if !loan.Status.Persisted() {
		return model.Loan{}, errs.New(errs.KindValidation, "loan status %q cannot be stored", loan.Status)
	}
	if _, ok := t.items[loan.CatalogItemID]; !ok {
		return model.Loan{}, errs.New(errs.KindNotFound, "catalog item %s does not exist", loan.CatalogItemID)
	}
	if _, ok := t.store.patrons[loan.PatronID]; !ok {
		return model.Loan{}, errs.New(errs.KindNotFound, "patron %s does not exist", loan.PatronID)
	}
	for _, l := range t.loans {
		if l.LoanNumber == loan.LoanNumber {
			return model.Loan{}, errs.New(errs.KindValidation, "loan number %s already used", loan.LoanNumber)
		}
		if loan.Status == model.LoanActive && l.Status == model.LoanActive && l.CatalogItemID == loan.CatalogItemID {
			return model.Loan{}, errs.New(errs.KindItemNotAvailable, "item already has an active loan")
		}
	}
	t.loans[loan.ID] = loan
	return loan, nil
}

func (t *tx) UpdateLoan(_ context.Context, loan model.Loan) (model.Loan, error) {
	cur, ok := t.loans[loan.ID]
	if !ok {
		return model.Loan{}, errs.ErrNotFound
	}
	if !loan.Status.Persisted() {
		return model.Loan{}, errs.New(errs.KindValidation, "loan status %q cannot be stored", loan.Status)
	}
	if loan.ReturnDate != nil && loan.ReturnDate.Before(cur.CheckoutDate) {
		return model.Loan{}, errs.New(errs.KindValidation, "return date precedes checkout date")
	}
	cur.DueDate = loan.DueDate
	cur.ReturnDate = loan.ReturnDate
	cur.Status = loan.Status
	cur.Notes = loan.Notes
	cur.UpdatedAt = loan.UpdatedAt
	t.loans[loan.ID] = cur
	return cur, nil
}

func (t *tx) DeleteLoan(_ context.Context, id uuid.UUID) error {
	if _, ok := t.loans[id]; !ok {
		return errs.ErrNotFound
	}
	delete(t.loans, id)
	return nil
}

func (t *tx) SetItemStatus(_ context.Context, id uuid.UUID, status model.ItemStatus) error {
	item, ok := t.items[id]
	if !ok {
		return errs.ErrNotFound
	}
	if _, err := model.ParseItemStatus(string(status)); err != nil {
		return errs.Wrap(errs.KindValidation, err, "item status")
	}
	item.Status = status
	t.items[id] = item
	return nil
}

func (s *Store) details(l model.Loan) model.LoanDetails {
	d := model.LoanDetails{Loan: l}
	if p, ok := s.patrons[l.PatronID]; ok {
		d.MembershipID = p.MembershipID
		d.PatronFirst = p.FirstName
		d.PatronLast = p.LastName
	}
	if item, ok := s.items[l.CatalogItemID]; ok {
		d.CatalogID = item.CatalogID
		d.ItemTitle = item.Title
		d.ItemAuthor = item.Author
	}
	return d
}

func (s *Store) GetLoan(_ context.Context, id uuid.UUID) (model.LoanDetails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.loans[id]
	if !ok {
		return model.LoanDetails{}, errs.ErrNotFound
	}
	return s.details(l), nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func (s *Store) ListLoans(_ context.Context, f model.LoanFilter) ([]model.LoanDetails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	search := strings.TrimSpace(f.Search)
	var out []model.LoanDetails
	for _, l := range s.loans {
		if f.Status != "" && l.Status != f.Status {
			continue
		}
		if f.PatronID != nil && l.PatronID != *f.PatronID {
			continue
		}
		if f.ItemID != nil && l.CatalogItemID != *f.ItemID {
			continue
		}
		d := s.details(l)
		if search != "" && !containsFold(d.LoanNumber, search) && !containsFold(d.PatronFirst, search) &&
			!containsFold(d.PatronLast, search) && !containsFold(d.MembershipID, search) &&
			!containsFold(d.ItemTitle, search) && !containsFold(d.CatalogID, search) {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CheckoutDate.Equal(out[j].CheckoutDate) {
			return out[i].CheckoutDate.After(out[j].CheckoutDate)
		}
		return out[i].LoanNumber > out[j].LoanNumber
	})
	return page(out, f.Limit, f.Offset), nil
}

func page[T any](items []T, limit, offset int) []T {
	if limit <= 0 {
		return items
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func (s *Store) ListOverdue(_ context.Context, now time.Time) ([]model.LoanDetails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.LoanDetails
	for _, l := range s.loans {
		if l.IsOverdue(now) {
			out = append(out, s.details(l))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

func (s *Store) CountLoans(_ context.Context, status model.LoanStatus) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if status == "" {
		return len(s.loans), nil
	}
	n := 0
	for _, l := range s.loans {
		if l.Status == status {
			n++
		}
	}
	return n, nil
}

func (s *Store) CountOverdue(_ context.Context, now time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, l := range s.loans {
		if l.IsOverdue(now) {
			n++
		}
	}
	return n, nil
}

func (s *Store) HasActiveLoan(_ context.Context, itemID uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.loans {
		if l.CatalogItemID == itemID && l.Status == model.LoanActive {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) PatronLoanCounts(_ context.Context, patronID uuid.UUID) (model.PatronLoanCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var c model.PatronLoanCounts
	for _, l := range s.loans {
		if l.PatronID != patronID {
			continue
		}
		c.Total++
		switch l.Status {
		case model.LoanActive:
			c.Active++
		case model.LoanReturned:
			c.Returned++
		case model.LoanLost, model.LoanOverdue:
		}
	}
	return c, nil
}

func (s *Store) TopPatrons(_ context.Context, limit int) ([]model.RankedPatron, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[uuid.UUID]int)
	for _, l := range s.loans {
		counts[l.PatronID]++
	}
	out := make([]model.RankedPatron, 0, len(counts))
	for id, n := range counts {
		p := s.patrons[id]
		out = append(out, model.RankedPatron{
			PatronID:     id,
			MembershipID: p.MembershipID,
			Name:         strings.TrimSpace(p.FirstName + " " + p.LastName),
			LoanCount:    n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LoanCount != out[j].LoanCount {
			return out[i].LoanCount > out[j].LoanCount
		}
		return out[i].MembershipID < out[j].MembershipID
	})
	return page(out, limit, 0), nil
}

func (s *Store) TopItems(_ context.Context, limit int) ([]model.RankedItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[uuid.UUID]int)
	for _, l := range s.loans {
		counts[l.CatalogItemID]++
	}
	out := make([]model.RankedItem, 0, len(counts))
	for id, n := range counts {
		item := s.items[id]
		out = append(out, model.RankedItem{ItemID: id, CatalogID: item.CatalogID, Title: item.Title, LoanCount: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LoanCount != out[j].LoanCount {
			return out[i].LoanCount > out[j].LoanCount
		}
		return out[i].CatalogID < out[j].CatalogID
	})
	return page(out, limit, 0), nil
}

func (s *Store) GetCatalogItem(_ context.Context, id uuid.UUID) (model.CatalogItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return model.CatalogItem{}, errs.ErrNotFound
	}
	return item, nil
}

func (s *Store) GetPatron(_ context.Context, id uuid.UUID) (model.Patron, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.patrons[id]
	if !ok {
		return model.Patron{}, errs.ErrNotFound
	}
	return p, nil
}
