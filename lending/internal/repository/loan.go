package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Astemirdum/lending-service/lending/internal/model"
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}

func prefixed(prefix string, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = prefix + "." + c
	}
	return out
}

func normalizeLoan(l model.Loan) model.Loan {
	l.CheckoutDate = l.CheckoutDate.UTC()
	l.DueDate = l.DueDate.UTC()
	l.CreatedAt = l.CreatedAt.UTC()
	l.UpdatedAt = l.UpdatedAt.UTC()
	if l.ReturnDate != nil {
		rd := l.ReturnDate.UTC()
		l.ReturnDate = &rd
	}
	return l
}

func (r *repository) detailsQuery() sq.SelectBuilder {
	cols := append(prefixed("l", loanColumns),
		"p.membership_id", "p.first_name", "p.last_name",
		"ci.catalog_id", "ci.title", "ci.author")
	return qb.Select(cols...).
		From(loansTableName + " l").
		Join(fmt.Sprintf("%s p on p.id = l.patron_id", patronsTableName)).
		Join(fmt.Sprintf("%s ci on ci.id = l.catalog_item_id", itemsTableName))
}

func (r *repository) selectDetails(ctx context.Context, b sq.SelectBuilder) ([]model.LoanDetails, error) {
	q, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	r.log.Debug("selectDetails", zap.String("query", q), zap.Any("args", args))

	var items []model.LoanDetails
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, mapError(err)
	}
	for i := range items {
		items[i].Loan = normalizeLoan(items[i].Loan)
	}
	return items, nil
}

func (r *repository) GetLoan(ctx context.Context, id uuid.UUID) (model.LoanDetails, error) {
	q, args, err := r.detailsQuery().Where(sq.Eq{"l.id": id}).Limit(1).ToSql()
	if err != nil {
		return model.LoanDetails{}, err
	}
	var d model.LoanDetails
	if err := r.db.GetContext(ctx, &d, q, args...); err != nil {
		return model.LoanDetails{}, mapError(err)
	}
	d.Loan = normalizeLoan(d.Loan)
	return d, nil
}

func (r *repository) ListLoans(ctx context.Context, f model.LoanFilter) ([]model.LoanDetails, error) {
	b := r.detailsQuery()
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		b = b.Where(sq.Or{
			sq.ILike{"l.loan_number": like},
			sq.ILike{"p.first_name": like},
			sq.ILike{"p.last_name": like},
			sq.ILike{"p.membership_id": like},
			sq.ILike{"ci.title": like},
			sq.ILike{"ci.catalog_id": like},
		})
	}
	if f.Status != "" {
		b = b.Where(sq.Eq{"l.status": string(f.Status)})
	}
	if f.PatronID != nil {
		b = b.Where(sq.Eq{"l.patron_id": *f.PatronID})
	}
	if f.ItemID != nil {
		b = b.Where(sq.Eq{"l.catalog_item_id": *f.ItemID})
	}
	b = b.OrderBy("l.checkout_date desc", "l.loan_number desc")
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
		if f.Offset > 0 {
			b = b.Offset(uint64(f.Offset))
		}
	}
	return r.selectDetails(ctx, b)
}

func (r *repository) ListOverdue(ctx context.Context, now time.Time) ([]model.LoanDetails, error) {
	b := r.detailsQuery().
		Where(sq.Eq{"l.status": string(model.LoanActive)}).
		Where(sq.Lt{"l.due_date": now}).
		OrderBy("l.due_date asc")
	return r.selectDetails(ctx, b)
}

func (r *repository) count(ctx context.Context, b sq.SelectBuilder) (int, error) {
	q, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err := r.db.GetContext(ctx, &n, q, args...); err != nil {
		return 0, mapError(err)
	}
	return n, nil
}

func (r *repository) CountLoans(ctx context.Context, status model.LoanStatus) (int, error) {
	b := qb.Select("count(*)").From(loansTableName)
	if status != "" {
		b = b.Where(sq.Eq{"status": string(status)})
	}
	return r.count(ctx, b)
}

func (r *repository) CountOverdue(ctx context.Context, now time.Time) (int, error) {
	return r.count(ctx, qb.Select("count(*)").
		From(loansTableName).
		Where(sq.Eq{"status": string(model.LoanActive)}).
		Where(sq.Lt{"due_date": now}))
}

func (r *repository) HasActiveLoan(ctx context.Context, itemID uuid.UUID) (bool, error) {
	n, err := r.count(ctx, qb.Select("count(*)").
		From(loansTableName).
		Where(sq.Eq{"catalog_item_id": itemID, "status": string(model.LoanActive)}))
	return n > 0, err
}

func (r *repository) PatronLoanCounts(ctx context.Context, patronID uuid.UUID) (model.PatronLoanCounts, error) {
	q := fmt.Sprintf(`
	select count(*) as total,
	       count(*) filter (where status = 'active') as active,
	       count(*) filter (where status = 'returned') as returned
	from %s
	where patron_id = $1`, loansTableName)
	var c model.PatronLoanCounts
	if err := r.db.GetContext(ctx, &c, q, patronID); err != nil {
		return model.PatronLoanCounts{}, mapError(err)
	}
	return c, nil
}

func (r *repository) TopPatrons(ctx context.Context, limit int) ([]model.RankedPatron, error) {
	q, args, err := qb.Select("p.id", "p.membership_id", "p.first_name || ' ' || p.last_name as name", "count(l.id) as loan_count").
		From(patronsTableName+" p").
		Join(fmt.Sprintf("%s l on l.patron_id = p.id", loansTableName)).
		GroupBy("p.id", "p.membership_id", "p.first_name", "p.last_name").
		OrderBy("loan_count desc", "p.membership_id").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}
	var out []model.RankedPatron
	if err := r.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

func (r *repository) TopItems(ctx context.Context, limit int) ([]model.RankedItem, error) {
	q, args, err := qb.Select("ci.id", "ci.catalog_id", "ci.title", "count(l.id) as loan_count").
		From(itemsTableName+" ci").
		Join(fmt.Sprintf("%s l on l.catalog_item_id = ci.id", loansTableName)).
		GroupBy("ci.id", "ci.catalog_id", "ci.title").
		OrderBy("loan_count desc", "ci.catalog_id").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}
	var out []model.RankedItem
	if err := r.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

func (r *repository) GetCatalogItem(ctx context.Context, id uuid.UUID) (model.CatalogItem, error) {
	q, args, err := qb.Select("id", "catalog_id", "title", "author", "type", "status").
		From(itemsTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.CatalogItem{}, err
	}
	var item model.CatalogItem
	if err := r.db.GetContext(ctx, &item, q, args...); err != nil {
		return model.CatalogItem{}, mapError(err)
	}
	return item, nil
}

func (r *repository) GetPatron(ctx context.Context, id uuid.UUID) (model.Patron, error) {
	q, args, err := qb.Select("id", "membership_id", "first_name", "last_name", "email", "status").
		From(patronsTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Patron{}, err
	}
	var p model.Patron
	if err := r.db.GetContext(ctx, &p, q, args...); err != nil {
		return model.Patron{}, mapError(err)
	}
	return p, nil
}
