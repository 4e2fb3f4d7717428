package repository

import (
	"context"

	"github.com/Astemirdum/lending-service/lending/internal/errs"
	"github.com/Astemirdum/lending-service/lending/internal/model"
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var loanColumns = []string{
	"id", "loan_number", "catalog_item_id", "patron_id", "checkout_date",
	"due_date", "return_date", "status", "notes", "created_at", "updated_at",
}

type tx struct {
	tx  *sqlx.Tx
	log *zap.Logger
}

func (t *tx) Loan(ctx context.Context, id uuid.UUID) (model.Loan, error) {
	return t.getLoan(ctx, sq.Eq{"id": id})
}

func (t *tx) ActiveLoanForItem(ctx context.Context, itemID uuid.UUID) (model.Loan, error) {
	return t.getLoan(ctx, sq.Eq{"catalog_item_id": itemID, "status": model.LoanActive})
}

func (t *tx) getLoan(ctx context.Context, where sq.Eq) (model.Loan, error) {
	q, args, err := qb.Select(loanColumns...).
		From(loansTableName).
		Where(where).
		Suffix("for update").
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}
	var loan model.Loan
	if err := t.tx.GetContext(ctx, &loan, q, args...); err != nil {
		return model.Loan{}, mapError(err)
	}
	return normalizeLoan(loan), nil
}

func (t *tx) CatalogItem(ctx context.Context, id uuid.UUID) (model.CatalogItem, error) {
	q, args, err := qb.Select("id", "catalog_id", "title", "author", "type", "status").
		From(itemsTableName).
		Where(sq.Eq{"id": id}).
		Suffix("for update").
		ToSql()
	if err != nil {
		return model.CatalogItem{}, err
	}
	var item model.CatalogItem
	if err := t.tx.GetContext(ctx, &item, q, args...); err != nil {
		return model.CatalogItem{}, mapError(err)
	}
	return item, nil
}

func (t *tx) Patron(ctx context.Context, id uuid.UUID) (model.Patron, error) {
	q, args, err := qb.Select("id", "membership_id", "first_name", "last_name", "email", "status").
		From(patronsTableName).
		Where(sq.Eq{"id": id}).
		Suffix("for share").
		ToSql()
	if err != nil {
		return model.Patron{}, err
	}
	var p model.Patron
	if err := t.tx.GetContext(ctx, &p, q, args...); err != nil {
		return model.Patron{}, mapError(err)
	}
	return p, nil
}

func (t *tx) CreateLoan(ctx context.Context, loan model.Loan) (model.Loan, error) {
	q, args, err := qb.Insert(loansTableName).
		Columns(loanColumns...).
		Values(loan.ID, loan.LoanNumber, loan.CatalogItemID, loan.PatronID, loan.CheckoutDate,
			loan.DueDate, loan.ReturnDate, loan.Status, loan.Notes, loan.CreatedAt, loan.UpdatedAt).
		Suffix("returning " + joinColumns(loanColumns)).
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}
	var created model.Loan
	if err := t.tx.GetContext(ctx, &created, q, args...); err != nil {
		t.log.Error("CreateLoan", zap.String("q", q), zap.Error(err))
		return model.Loan{}, mapError(err)
	}
	return normalizeLoan(created), nil
}

func (t *tx) UpdateLoan(ctx context.Context, loan model.Loan) (model.Loan, error) {
	q, args, err := qb.Update(loansTableName).
		Set("due_date", loan.DueDate).
		Set("return_date", loan.ReturnDate).
		Set("status", loan.Status).
		Set("notes", loan.Notes).
		Set("updated_at", loan.UpdatedAt).
		Where(sq.Eq{"id": loan.ID}).
		Suffix("returning " + joinColumns(loanColumns)).
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}
	var updated model.Loan
	if err := t.tx.GetContext(ctx, &updated, q, args...); err != nil {
		return model.Loan{}, mapError(err)
	}
	return normalizeLoan(updated), nil
}

func (t *tx) DeleteLoan(ctx context.Context, id uuid.UUID) error {
	q, args, err := qb.Delete(loansTableName).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	res, err := t.tx.ExecContext(ctx, q, args...)
	if err != nil {
		return mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (t *tx) SetItemStatus(ctx context.Context, id uuid.UUID, status model.ItemStatus) error {
	q, args, err := qb.Update(itemsTableName).
		Set("status", status).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := t.tx.ExecContext(ctx, q, args...)
	if err != nil {
		return mapError(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errs.ErrNotFound
	}
	return nil
}
