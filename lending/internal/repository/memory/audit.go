package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/Astemirdum/lending-service/lending/internal/model"
	"github.com/Astemirdum/lending-service/lending/internal/repository"
	"github.com/pkg/errors"
)

// auditRow keeps the diff in its stored document form so reads go through the same codec
// as the Postgres driver.
type auditRow struct {
	entry  model.AuditLogEntry
	oldDoc []byte
	newDoc []byte
}

func (s *Store) InsertAudit(_ context.Context, e model.AuditLogEntry) error {
	if _, err := model.ParseAction(string(e.Action)); err != nil {
		return err
	}
	oldDoc, newDoc, err := repository.EncodeDiff(e.Changes)
	if err != nil {
		return err
	}
	e.Changes = nil
	e.Timestamp = e.Timestamp.UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.audit {
		if row.entry.ID == e.ID {
			return errors.Errorf("audit entry %s already exists", e.ID)
		}
	}
	s.audit = append(s.audit, auditRow{entry: e, oldDoc: oldDoc, newDoc: newDoc})
	return nil
}

func (s *Store) decorate(row auditRow) (model.AuditLogEntry, error) {
	e := row.entry
	changes, err := repository.DecodeDiff(row.oldDoc, row.newDoc)
	if err != nil {
		return model.AuditLogEntry{}, errors.Wrapf(err, "audit entry %s", e.ID)
	}
	e.Changes = changes
	if e.PatronID != nil {
		if p, ok := s.patrons[*e.PatronID]; ok {
			e.PatronName = strings.TrimSpace(p.FirstName + " " + p.LastName)
		}
	}
	if e.CatalogItemID != nil {
		if item, ok := s.items[*e.CatalogItemID]; ok {
			e.ItemTitle = item.Title
			e.CatalogID = item.CatalogID
		}
	}
	return e, nil
}

func matchAudit(e model.AuditLogEntry, f model.AuditFilter) bool {
	switch {
	case f.LoanID != nil && (e.LoanID == nil || *e.LoanID != *f.LoanID):
		return false
	case f.PatronID != nil && (e.PatronID == nil || *e.PatronID != *f.PatronID):
		return false
	case f.CatalogItemID != nil && (e.CatalogItemID == nil || *e.CatalogItemID != *f.CatalogItemID):
		return false
	case f.Action != "" && e.Action != f.Action:
		return false
	case f.From != nil && e.Timestamp.Before(*f.From):
		return false
	case f.To != nil && e.Timestamp.After(*f.To):
		return false
	}
	search := strings.TrimSpace(f.Search)
	if search == "" {
		return true
	}
	for _, field := range []string{e.Description, e.LoanNumber, e.PatronName, e.ItemTitle, e.CatalogID} {
		if containsFold(field, search) {
			return true
		}
	}
	return false
}

func (s *Store) ListAudit(_ context.Context, f model.AuditFilter) ([]model.AuditLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.AuditLogEntry, 0, len(s.audit))
	for _, row := range s.audit {
		e, err := s.decorate(row)
		if err != nil {
			return nil, err
		}
		if matchAudit(e, f) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	return page(out, f.Limit, f.Offset), nil
}

func (s *Store) CountAudit(_ context.Context, action model.Action, since time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, row := range s.audit {
		if action != "" && row.entry.Action != action {
			continue
		}
		if !since.IsZero() && row.entry.Timestamp.Before(since) {
			continue
		}
		n++
	}
	return n, nil
}

func (s *Store) BusiestDay(_ context.Context, since time.Time) (*model.DayActivity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	days := make(map[time.Time]int)
	for _, row := range s.audit {
		ts := row.entry.Timestamp
		if ts.Before(since) {
			continue
		}
		days[time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)]++
	}
	var best *model.DayActivity
	for day, n := range days {
		if best == nil || n > best.Count || (n == best.Count && day.After(best.Date)) {
			best = &model.DayActivity{Date: day, Count: n}
		}
	}
	return best, nil
}

func (s *Store) PruneAudit(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.audit[:0:0]
	for _, row := range s.audit {
		if row.entry.Timestamp.Before(before) {
			continue
		}
		kept = append(kept, row)
	}
	removed := int64(len(s.audit) - len(kept))
	s.audit = kept
	return removed, nil
}
