package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Astemirdum/lending-service/lending/internal/errs"
	"github.com/Astemirdum/lending-service/lending/internal/model"
	"github.com/Astemirdum/lending-service/lending/internal/repository"
	"github.com/Astemirdum/lending-service/pkg/actor"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const topRankLimit = 5

// LoanService owns the loan state machine:
//
//	active --return--> returned
//	active --extend--> active
//	active|returned|lost --delete--> (removed)
//
// Checkout and return are the only operations that move a catalog item between
// available and borrowed, and they do it in the same transaction as the loan change.
type LoanService struct {
	repo    repository.Repository
	seq     *SequenceAllocator
	auditor Auditor
	log     *zap.Logger
	now     func() time.Time

	defaultLoanDays int
}

func NewLoanService(repo repository.Repository, seq *SequenceAllocator, log *zap.Logger, opts ...Option) *LoanService {
	o := newOptions(opts)
	return &LoanService{
		repo:            repo,
		seq:             seq,
		auditor:         o.auditor,
		log:             log.Named("loans"),
		now:             o.now,
		defaultLoanDays: o.defaultLoanDays,
	}
}

func notFound(err error, what string, id uuid.UUID) error {
	if errors.Is(err, errs.ErrNotFound) {
		return errs.New(errs.KindNotFound, "%s %s not found", what, id)
	}
	return err
}

func checkItem(item model.CatalogItem) error {
	switch item.Status {
	case model.ItemAvailable:
		return nil
	case model.ItemBorrowed, model.ItemReserved, model.ItemDamaged, model.ItemLost:
		return errs.New(errs.KindItemNotAvailable, "catalog item %s is %s", item.CatalogID, item.Status)
	default:
		return errs.New(errs.KindItemNotAvailable, "catalog item %s has unknown status %q", item.CatalogID, item.Status)
	}
}

func checkPatron(p model.Patron) error {
	switch p.Status {
	case model.PatronActive:
		return nil
	case model.PatronInactive, model.PatronSuspended:
		return errs.New(errs.KindPatronNotEligible, "patron %s is %s", p.MembershipID, p.Status)
	default:
		return errs.New(errs.KindPatronNotEligible, "patron %s has unknown status %q", p.MembershipID, p.Status)
	}
}

// Checkout lends an available item to an active patron. A zero duration means the default
// loan period.
func (s *LoanService) Checkout(ctx context.Context, req model.CheckoutRequest) (model.Loan, error) {
	days := req.DurationDays
	switch {
	case days < 0:
		return model.Loan{}, errs.New(errs.KindValidation, "loan duration must not be negative, got %d", days)
	case days == 0:
		days = s.defaultLoanDays
	}
	now := s.now().UTC()
	checkoutDate := now
	if req.CheckoutDate != nil {
		checkoutDate = req.CheckoutDate.UTC()
	}

	// Preconditions are checked before a loan number is reserved, and again under lock.
	item, err := s.repo.GetCatalogItem(ctx, req.CatalogItemID)
	if err != nil {
		return model.Loan{}, notFound(err, "catalog item", req.CatalogItemID)
	}
	if err := checkItem(item); err != nil {
		return model.Loan{}, err
	}
	patron, err := s.repo.GetPatron(ctx, req.PatronID)
	if err != nil {
		return model.Loan{}, notFound(err, "patron", req.PatronID)
	}
	if err := checkPatron(patron); err != nil {
		return model.Loan{}, err
	}

	number, err := s.seq.Allocate(ctx, model.SequenceLoan)
	if err != nil {
		return model.Loan{}, err
	}

	loan := model.Loan{
		ID:            uuid.New(),
		LoanNumber:    number,
		CatalogItemID: req.CatalogItemID,
		PatronID:      req.PatronID,
		CheckoutDate:  checkoutDate,
		DueDate:       checkoutDate.AddDate(0, 0, days),
		Status:        model.LoanActive,
		Notes:         strings.TrimSpace(req.Notes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	var created model.Loan
	err = s.repo.RunInTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		item, err := tx.CatalogItem(ctx, loan.CatalogItemID)
		if err != nil {
			return notFound(err, "catalog item", loan.CatalogItemID)
		}
		if err := checkItem(item); err != nil {
			return err
		}
		patron, err := tx.Patron(ctx, loan.PatronID)
		if err != nil {
			return notFound(err, "patron", loan.PatronID)
		}
		if err := checkPatron(patron); err != nil {
			return err
		}
		switch _, err := tx.ActiveLoanForItem(ctx, loan.CatalogItemID); {
		case err == nil:
			return errs.New(errs.KindItemNotAvailable, "catalog item %s already has an active loan", item.CatalogID)
		case !errors.Is(err, errs.ErrNotFound):
			return err
		}
		if created, err = tx.CreateLoan(ctx, loan); err != nil {
			return err
		}
		return tx.SetItemStatus(ctx, loan.CatalogItemID, model.ItemBorrowed)
	})
	if err != nil {
		s.log.Info("checkout rejected", zap.String("loan", number), zap.Error(err))
		return model.Loan{}, err
	}

	s.record(ctx, model.ActionCheckout, created, model.Diff{
		model.Created("checkoutDate", model.Time(created.CheckoutDate)),
		model.Created("dueDate", model.Time(created.DueDate)),
		model.Created("status", model.Status(created.Status)),
	}, func(d subject) string {
		return fmt.Sprintf("Item '%s' (%s) checked out to '%s'", d.title, d.catalogID, d.patron)
	})
	return created, nil
}

// Return closes the loan with the given id.
func (s *LoanService) Return(ctx context.Context, loanID uuid.UUID, req model.ReturnRequest) (model.Loan, error) {
	return s.returnLoan(ctx, req, func(ctx context.Context, tx repository.Tx) (model.Loan, error) {
		l, err := tx.Loan(ctx, loanID)
		return l, notFound(err, "loan", loanID)
	})
}

// ReturnByItem closes the active loan of a catalog item.
func (s *LoanService) ReturnByItem(ctx context.Context, itemID uuid.UUID, req model.ReturnRequest) (model.Loan, error) {
	return s.returnLoan(ctx, req, func(ctx context.Context, tx repository.Tx) (model.Loan, error) {
		l, err := tx.ActiveLoanForItem(ctx, itemID)
		if errors.Is(err, errs.ErrNotFound) {
			return model.Loan{}, errs.New(errs.KindNotFound, "no active loan for catalog item %s", itemID)
		}
		return l, err
	})
}

func (s *LoanService) returnLoan(
	ctx context.Context,
	req model.ReturnRequest,
	find func(ctx context.Context, tx repository.Tx) (model.Loan, error),
) (model.Loan, error) {
	now := s.now().UTC()
	returnDate := now
	if req.ReturnDate != nil {
		returnDate = req.ReturnDate.UTC()
	}

	var before, after model.Loan
	err := s.repo.RunInTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		loan, err := find(ctx, tx)
		if err != nil {
			return err
		}
		switch loan.Status {
		case model.LoanActive:
		case model.LoanReturned:
			return errs.New(errs.KindAlreadyReturned, "loan %s has already been returned", loan.LoanNumber)
		case model.LoanLost, model.LoanOverdue:
			return errs.New(errs.KindInvalidState, "loan %s is %s and cannot be returned", loan.LoanNumber, loan.Status)
		default:
			return errs.New(errs.KindInvalidState, "loan %s has unknown status %q", loan.LoanNumber, loan.Status)
		}
		if returnDate.Before(loan.CheckoutDate) {
			return errs.New(errs.KindInvalidDate, "return date %s precedes checkout date %s",
				returnDate.Format(time.DateOnly), loan.CheckoutDate.Format(time.DateOnly))
		}

		next := loan
		rd := returnDate
		next.ReturnDate = &rd
		next.Status = model.LoanReturned
		next.Notes = appendReturnNote(loan.Notes, req.Notes)
		next.UpdatedAt = now
		updated, err := tx.UpdateLoan(ctx, next)
		if err != nil {
			return err
		}

		item, err := tx.CatalogItem(ctx, loan.CatalogItemID)
		if err != nil {
			return notFound(err, "catalog item", loan.CatalogItemID)
		}
		if item.Status == model.ItemBorrowed {
			if err := tx.SetItemStatus(ctx, item.ID, model.ItemAvailable); err != nil {
				return err
			}
		} else {
			s.log.Warn("returned item was not marked borrowed",
				zap.String("loan", loan.LoanNumber), zap.String("item", item.CatalogID), zap.String("status", string(item.Status)))
		}
		before, after = loan, updated
		return nil
	})
	if err != nil {
		return model.Loan{}, err
	}

	s.record(ctx, model.ActionReturn, after, model.Diff{
		model.Updated("returnDate", model.OptTime(before.ReturnDate), model.OptTime(after.ReturnDate)),
		model.Updated("status", model.Status(before.Status), model.Status(after.Status)),
	}, func(d subject) string {
		return fmt.Sprintf("Item '%s' (%s) returned by '%s'", d.title, d.catalogID, d.patron)
	})
	return after, nil
}

func appendReturnNote(existing, note string) string {
	note = strings.TrimSpace(note)
	if note == "" {
		return existing
	}
	return strings.TrimSpace(existing + "\nReturn note: " + note)
}

// Extend moves the due date of an active loan by days.
func (s *LoanService) Extend(ctx context.Context, loanID uuid.UUID, days int) (model.Loan, error) {
	now := s.now().UTC()
	var before, after model.Loan
	err := s.repo.RunInTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		loan, err := tx.Loan(ctx, loanID)
		if err != nil {
			return notFound(err, "loan", loanID)
		}
		switch loan.Status {
		case model.LoanActive:
		case model.LoanReturned, model.LoanLost, model.LoanOverdue:
			return errs.New(errs.KindInvalidState, "loan %s is %s and cannot be extended", loan.LoanNumber, loan.Status)
		default:
			return errs.New(errs.KindInvalidState, "loan %s has unknown status %q", loan.LoanNumber, loan.Status)
		}
		next := loan
		next.DueDate = loan.DueDate.AddDate(0, 0, days)
		next.UpdatedAt = now
		updated, err := tx.UpdateLoan(ctx, next)
		if err != nil {
			return err
		}
		before, after = loan, updated
		return nil
	})
	if err != nil {
		return model.Loan{}, err
	}

	s.record(ctx, model.ActionExtend, after, model.Diff{
		model.Updated("dueDate", model.Time(before.DueDate), model.Time(after.DueDate)),
		model.Created("extensionDays", model.Int(days)),
	}, func(d subject) string {
		return fmt.Sprintf("Loan of item '%s' (%s) extended by %d days", d.title, d.catalogID, days)
	})
	return after, nil
}

// Delete removes a loan whatever its status. The item status is left as it is.
func (s *LoanService) Delete(ctx context.Context, loanID uuid.UUID) (bool, error) {
	var removed model.Loan
	err := s.repo.RunInTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		loan, err := tx.Loan(ctx, loanID)
		if err != nil {
			return notFound(err, "loan", loanID)
		}
		if err := tx.DeleteLoan(ctx, loanID); err != nil {
			return notFound(err, "loan", loanID)
		}
		removed = loan
		return nil
	})
	if err != nil {
		return false, err
	}
	if removed.Status == model.LoanActive {
		s.log.Warn("active loan deleted", zap.String("loan", removed.LoanNumber), zap.Stringer("item", removed.CatalogItemID))
	}

	s.record(ctx, model.ActionDelete, removed, snapshot(removed), func(d subject) string {
		return fmt.Sprintf("Loan of item '%s' (%s) deleted", d.title, d.catalogID)
	})
	return true, nil
}

func snapshot(l model.Loan) model.Diff {
	return model.Diff{
		model.Removed("catalogItemId", model.Text(l.CatalogItemID.String())),
		model.Removed("checkoutDate", model.Time(l.CheckoutDate)),
		model.Removed("dueDate", model.Time(l.DueDate)),
		model.Removed("loanId", model.Text(l.LoanNumber)),
		model.Removed("notes", model.Text(l.Notes)),
		model.Removed("patronId", model.Text(l.PatronID.String())),
		model.Removed("returnDate", model.OptTime(l.ReturnDate)),
		model.Removed("status", model.Status(l.Status)),
	}
}

// subject names what an audit entry is about.
type subject struct {
	title, catalogID, patron string
}

func (s *LoanService) subject(ctx context.Context, l model.Loan) subject {
	d := subject{title: "unknown", catalogID: "n/a", patron: "unknown"}
	if item, err := s.repo.GetCatalogItem(ctx, l.CatalogItemID); err == nil {
		d.title, d.catalogID = item.Title, item.CatalogID
	}
	if p, err := s.repo.GetPatron(ctx, l.PatronID); err == nil {
		d.patron = strings.TrimSpace(p.FirstName + " " + p.LastName)
	}
	return d
}

// record is the single place lifecycle operations hand entries to the auditor. The
// mutation has already committed, so failures here are logged and never returned.
func (s *LoanService) record(ctx context.Context, action model.Action, l model.Loan, changes model.Diff, describe func(subject) string) {
	ctx = context.WithoutCancel(ctx)
	defer func() {
		if p := recover(); p != nil {
			s.log.Error("audit panic", zap.Stringer("kind", errs.KindAuditWriteFailure),
				zap.String("action", string(action)), zap.String("loan", l.LoanNumber), zap.Any("panic", p))
		}
	}()

	loanID, patronID, itemID := l.ID, l.PatronID, l.CatalogItemID
	rec := model.AuditRecord{
		Action:        action,
		LoanID:        &loanID,
		LoanNumber:    l.LoanNumber,
		PatronID:      &patronID,
		CatalogItemID: &itemID,
		Description:   describe(s.subject(ctx, l)),
		Changes:       changes,
		Actor:         actor.Name(ctx),
	}
	if _, err := s.auditor.Record(ctx, rec); err != nil {
		s.log.Error("audit write failed", zap.Stringer("kind", errs.KindAuditWriteFailure),
			zap.String("action", string(action)), zap.String("loan", l.LoanNumber), zap.Error(err))
	}
}

func (s *LoanService) withStatus(d model.LoanDetails, now time.Time) model.LoanDetails {
	d.ComputedStatus = d.StatusAt(now)
	return d
}

func (s *LoanService) GetLoan(ctx context.Context, id uuid.UUID) (model.LoanDetails, error) {
	d, err := s.repo.GetLoan(ctx, id)
	if err != nil {
		return model.LoanDetails{}, notFound(err, "loan", id)
	}
	return s.withStatus(d, s.now()), nil
}

// ListLoans applies f and newest-checkout-first ordering. Filtering by overdue selects
// active loans whose due date has passed.
func (s *LoanService) ListLoans(ctx context.Context, f model.LoanFilter) ([]model.LoanDetails, error) {
	if err := validatePage(f.Limit, f.Offset); err != nil {
		return nil, err
	}
	now := s.now()
	if f.Status == model.LoanOverdue {
		all := f
		all.Status, all.Limit, all.Offset = model.LoanActive, 0, 0
		loans, err := s.repo.ListLoans(ctx, all)
		if err != nil {
			return nil, err
		}
		overdue := loans[:0]
		for _, l := range loans {
			if l.IsOverdue(now) {
				overdue = append(overdue, s.withStatus(l, now))
			}
		}
		return paginate(overdue, f.Limit, f.Offset), nil
	}

	loans, err := s.repo.ListLoans(ctx, f)
	if err != nil {
		return nil, err
	}
	for i := range loans {
		loans[i] = s.withStatus(loans[i], now)
	}
	return loans, nil
}

func validatePage(limit, offset int) error {
	if limit < 0 || offset < 0 {
		return errs.New(errs.KindValidation, "limit and offset must not be negative")
	}
	return nil
}

func paginate(loans []model.LoanDetails, limit, offset int) []model.LoanDetails {
	if offset < 0 {
		offset = 0
	}
	if offset > len(loans) {
		offset = len(loans)
	}
	loans = loans[offset:]
	if limit > 0 && limit < len(loans) {
		loans = loans[:limit]
	}
	return loans
}

func (s *LoanService) ListActive(ctx context.Context) ([]model.LoanDetails, error) {
	return s.ListLoans(ctx, model.LoanFilter{Status: model.LoanActive})
}

// ListOverdue returns overdue loans, earliest due date first.
func (s *LoanService) ListOverdue(ctx context.Context) ([]model.LoanDetails, error) {
	now := s.now()
	loans, err := s.repo.ListOverdue(ctx, now)
	if err != nil {
		return nil, err
	}
	for i := range loans {
		loans[i] = s.withStatus(loans[i], now)
	}
	return loans, nil
}

func (s *LoanService) PatronLoans(ctx context.Context, patronID uuid.UUID) ([]model.LoanDetails, error) {
	return s.ListLoans(ctx, model.LoanFilter{PatronID: &patronID})
}

func (s *LoanService) ItemLoans(ctx context.Context, itemID uuid.UUID) ([]model.LoanDetails, error) {
	return s.ListLoans(ctx, model.LoanFilter{ItemID: &itemID})
}

// History is the full loan history, newest first. A non-positive limit returns everything.
func (s *LoanService) History(ctx context.Context, limit int) ([]model.LoanDetails, error) {
	return s.ListLoans(ctx, model.LoanFilter{Limit: limit})
}

// Search matches loan numbers, patron names and membership ids, item titles and catalog ids.
func (s *LoanService) Search(ctx context.Context, query string) ([]model.LoanDetails, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errs.New(errs.KindValidation, "search query is empty")
	}
	return s.ListLoans(ctx, model.LoanFilter{Search: query})
}

func (s *LoanService) CountLoans(ctx context.Context, status model.LoanStatus) (int, error) {
	if status == model.LoanOverdue {
		return s.repo.CountOverdue(ctx, s.now())
	}
	return s.repo.CountLoans(ctx, status)
}

func (s *LoanService) Statistics(ctx context.Context) (model.LoanStatistics, error) {
	var (
		st  model.LoanStatistics
		err error
	)
	if st.Total, err = s.repo.CountLoans(ctx, ""); err != nil {
		return st, err
	}
	if st.Active, err = s.repo.CountLoans(ctx, model.LoanActive); err != nil {
		return st, err
	}
	if st.Returned, err = s.repo.CountLoans(ctx, model.LoanReturned); err != nil {
		return st, err
	}
	if st.Overdue, err = s.repo.CountOverdue(ctx, s.now()); err != nil {
		return st, err
	}
	if st.MostActivePatrons, err = s.repo.TopPatrons(ctx, topRankLimit); err != nil {
		return st, err
	}
	if st.MostBorrowedItems, err = s.repo.TopItems(ctx, topRankLimit); err != nil {
		return st, err
	}
	return st, nil
}

func (s *LoanService) PatronLoanCounts(ctx context.Context, patronID uuid.UUID) (model.PatronLoanCounts, error) {
	if _, err := s.repo.GetPatron(ctx, patronID); err != nil {
		return model.PatronLoanCounts{}, notFound(err, "patron", patronID)
	}
	return s.repo.PatronLoanCounts(ctx, patronID)
}

// IsItemAvailable reports whether no active loan references the item.
func (s *LoanService) IsItemAvailable(ctx context.Context, itemID uuid.UUID) (bool, error) {
	if _, err := s.repo.GetCatalogItem(ctx, itemID); err != nil {
		return false, notFound(err, "catalog item", itemID)
	}
	has, err := s.repo.HasActiveLoan(ctx, itemID)
	if err != nil {
		return false, err
	}
	return !has, nil
}
