package repository

import (
	"context"
	"fmt"

	"github.com/Astemirdum/lending-service/lending/internal/model"
	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
)

var sequenceColumns = []string{"name", "last_number", "last_year", "format", "updated_at"}

// NextSequence runs outside any business transaction: the upsert commits on its own, and
// the row lock taken by ON CONFLICT DO UPDATE serializes concurrent callers, so each
// caller reads back the number it wrote.
func (r *repository) NextSequence(ctx context.Context, name string, year int, defaultFormat string) (model.SequenceCounter, error) {
	q := fmt.Sprintf(`
	insert into %[1]s as sc (name, last_number, last_year, format, updated_at)
	values ($1, 1, $2, $3, now())
	on conflict (name) do update
	set last_number = case when excluded.last_year > sc.last_year then 1 else sc.last_number + 1 end,
	    last_year   = greatest(sc.last_year, excluded.last_year),
	    updated_at  = now()
	returning %[2]s`, sequenceTableName, joinColumns(sequenceColumns))

	var c model.SequenceCounter
	if err := r.db.GetContext(ctx, &c, q, name, year, defaultFormat); err != nil {
		return model.SequenceCounter{}, errors.Wrapf(err, "advance sequence %q", name)
	}
	c.UpdatedAt = c.UpdatedAt.UTC()
	return c, nil
}

func (r *repository) GetSequence(ctx context.Context, name string) (model.SequenceCounter, error) {
	q, args, err := qb.Select(sequenceColumns...).
		From(sequenceTableName).
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return model.SequenceCounter{}, err
	}
	var c model.SequenceCounter
	if err := r.db.GetContext(ctx, &c, q, args...); err != nil {
		return model.SequenceCounter{}, mapError(err)
	}
	c.UpdatedAt = c.UpdatedAt.UTC()
	return c, nil
}

// SetSequenceFormat changes the template only. Counter values are never rewound.
func (r *repository) SetSequenceFormat(ctx context.Context, name, format string) (model.SequenceCounter, error) {
	q := fmt.Sprintf(`
	insert into %[1]s (name, last_number, last_year, format, updated_at)
	values ($1, 0, 0, $2, now())
	on conflict (name) do update
	set format = excluded.format, updated_at = now()
	returning %[2]s`, sequenceTableName, joinColumns(sequenceColumns))

	var c model.SequenceCounter
	if err := r.db.GetContext(ctx, &c, q, name, format); err != nil {
		return model.SequenceCounter{}, errors.Wrapf(err, "set sequence format %q", name)
	}
	c.UpdatedAt = c.UpdatedAt.UTC()
	return c, nil
}
