package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Astemirdum/lending-service/lending/internal/model"
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type auditRow struct {
	ID            uuid.UUID     `db:"id"`
	LoanID        uuid.NullUUID `db:"loan_id"`
	LoanNumber    string        `db:"loan_number"`
	PatronID      uuid.NullUUID `db:"patron_id"`
	CatalogItemID uuid.NullUUID `db:"catalog_item_id"`
	Action        string        `db:"action"`
	Description   string        `db:"description"`
	OldValues     []byte        `db:"old_values"`
	NewValues     []byte        `db:"new_values"`
	Actor         string        `db:"actor"`
	Timestamp     time.Time     `db:"recorded_at"`
	PatronName    string        `db:"patron_name"`
	ItemTitle     string        `db:"item_title"`
	CatalogID     string        `db:"catalog_id"`
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func uuidPtr(n uuid.NullUUID) *uuid.UUID {
	if !n.Valid {
		return nil
	}
	id := n.UUID
	return &id
}

func (row auditRow) toModel() (model.AuditLogEntry, error) {
	action, err := model.ParseAction(row.Action)
	if err != nil {
		return model.AuditLogEntry{}, err
	}
	changes, err := DecodeDiff(row.OldValues, row.NewValues)
	if err != nil {
		return model.AuditLogEntry{}, err
	}
	return model.AuditLogEntry{
		ID:            row.ID,
		LoanID:        uuidPtr(row.LoanID),
		LoanNumber:    row.LoanNumber,
		PatronID:      uuidPtr(row.PatronID),
		CatalogItemID: uuidPtr(row.CatalogItemID),
		Action:        action,
		Description:   row.Description,
		Changes:       changes,
		Actor:         row.Actor,
		Timestamp:     row.Timestamp.UTC(),
		PatronName:    strings.TrimSpace(row.PatronName),
		ItemTitle:     row.ItemTitle,
		CatalogID:     row.CatalogID,
	}, nil
}

func (r *repository) InsertAudit(ctx context.Context, e model.AuditLogEntry) error {
	oldDoc, newDoc, err := EncodeDiff(e.Changes)
	if err != nil {
		return err
	}
	q, args, err := qb.Insert(auditTableName).
		Columns("id", "loan_id", "loan_number", "patron_id", "catalog_item_id", "action",
			"description", "old_values", "new_values", "actor", "recorded_at").
		Values(e.ID, nullUUID(e.LoanID), e.LoanNumber, nullUUID(e.PatronID), nullUUID(e.CatalogItemID),
			string(e.Action), e.Description, string(oldDoc), string(newDoc), e.Actor, e.Timestamp).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		r.log.Error("InsertAudit", zap.String("q", q), zap.Error(err))
		return errors.Wrap(mapError(err), "insert audit")
	}
	return nil
}

func (r *repository) ListAudit(ctx context.Context, f model.AuditFilter) ([]model.AuditLogEntry, error) {
	b := qb.Select("a.id", "a.loan_id", "a.loan_number", "a.patron_id", "a.catalog_item_id", "a.action",
		"a.description", "a.old_values", "a.new_values", "a.actor", "a.recorded_at",
		"coalesce(p.first_name || ' ' || p.last_name, '') as patron_name",
		"coalesce(ci.title, '') as item_title",
		"coalesce(ci.catalog_id, '') as catalog_id").
		From(auditTableName + " a").
		LeftJoin(fmt.Sprintf("%s p on p.id = a.patron_id", patronsTableName)).
		LeftJoin(fmt.Sprintf("%s ci on ci.id = a.catalog_item_id", itemsTableName))

	if f.LoanID != nil {
		b = b.Where(sq.Eq{"a.loan_id": *f.LoanID})
	}
	if f.PatronID != nil {
		b = b.Where(sq.Eq{"a.patron_id": *f.PatronID})
	}
	if f.CatalogItemID != nil {
		b = b.Where(sq.Eq{"a.catalog_item_id": *f.CatalogItemID})
	}
	if f.Action != "" {
		b = b.Where(sq.Eq{"a.action": string(f.Action)})
	}
	if f.From != nil {
		b = b.Where(sq.GtOrEq{"a.recorded_at": *f.From})
	}
	if f.To != nil {
		b = b.Where(sq.LtOrEq{"a.recorded_at": *f.To})
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		b = b.Where(sq.Or{
			sq.ILike{"a.description": like},
			sq.ILike{"a.loan_number": like},
			sq.ILike{"p.first_name": like},
			sq.ILike{"p.last_name": like},
			sq.ILike{"ci.title": like},
			sq.ILike{"ci.catalog_id": like},
		})
	}
	b = b.OrderBy("a.recorded_at desc", "a.id desc")
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
		if f.Offset > 0 {
			b = b.Offset(uint64(f.Offset))
		}
	}

	q, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	var rows []auditRow
	if err := r.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, mapError(err)
	}
	out := make([]model.AuditLogEntry, 0, len(rows))
	for _, row := range rows {
		e, err := row.toModel()
		if err != nil {
			return nil, errors.Wrapf(err, "audit entry %s", row.ID)
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *repository) CountAudit(ctx context.Context, action model.Action, since time.Time) (int, error) {
	b := qb.Select("count(*)").From(auditTableName)
	if action != "" {
		b = b.Where(sq.Eq{"action": string(action)})
	}
	if !since.IsZero() {
		b = b.Where(sq.GtOrEq{"recorded_at": since})
	}
	return r.count(ctx, b)
}

func (r *repository) BusiestDay(ctx context.Context, since time.Time) (*model.DayActivity, error) {
	q := fmt.Sprintf(`
	select date_trunc('day', recorded_at at time zone 'UTC') as day, count(*) as cnt
	from %s
	where recorded_at >= $1
	group by 1
	order by cnt desc, day desc
	limit 1`, auditTableName)

	var rows []struct {
		Day time.Time `db:"day"`
		Cnt int       `db:"cnt"`
	}
	if err := r.db.SelectContext(ctx, &rows, q, since); err != nil {
		return nil, mapError(err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	d := rows[0].Day
	return &model.DayActivity{
		Date:  time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
		Count: rows[0].Cnt,
	}, nil
}

func (r *repository) PruneAudit(ctx context.Context, before time.Time) (int64, error) {
	q, args, err := qb.Delete(auditTableName).Where(sq.Lt{"recorded_at": before}).ToSql()
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, mapError(err)
	}
	return res.RowsAffected()
}
