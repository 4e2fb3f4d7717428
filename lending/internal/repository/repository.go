package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Astemirdum/lending-service/lending/internal/errs"
	"github.com/Astemirdum/lending-service/lending/internal/model"
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Repository interface {
	LoanRepository
	AuditRepository
	SequenceRepository
	// RunInTx runs fn in one transaction, committed only when fn returns nil.
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx is the write side of a lending transaction. Reads through Tx lock the rows they return.
type Tx interface {
	Loan(ctx context.Context, id uuid.UUID) (model.Loan, error)
	ActiveLoanForItem(ctx context.Context, itemID uuid.UUID) (model.Loan, error)
	CatalogItem(ctx context.Context, id uuid.UUID) (model.CatalogItem, error)
	Patron(ctx context.Context, id uuid.UUID) (model.Patron, error)
	CreateLoan(ctx context.Context, loan model.Loan) (model.Loan, error)
	UpdateLoan(ctx context.Context, loan model.Loan) (model.Loan, error)
	DeleteLoan(ctx context.Context, id uuid.UUID) error
	SetItemStatus(ctx context.Context, id uuid.UUID, status model.ItemStatus) error
}

type LoanRepository interface {
	GetLoan(ctx context.Context, id uuid.UUID) (model.LoanDetails, error)
	ListLoans(ctx context.Context, f model.LoanFilter) ([]model.LoanDetails, error)
	ListOverdue(ctx context.Context, now time.Time) ([]model.LoanDetails, error)
	CountLoans(ctx context.Context, status model.LoanStatus) (int, error)
	CountOverdue(ctx context.Context, now time.Time) (int, error)
	PatronLoanCounts(ctx context.Context, patronID uuid.UUID) (model.PatronLoanCounts, error)
	TopPatrons(ctx context.Context, limit int) ([]model.RankedPatron, error)
	TopItems(ctx context.Context, limit int) ([]model.RankedItem, error)
	HasActiveLoan(ctx context.Context, itemID uuid.UUID) (bool, error)
	GetCatalogItem(ctx context.Context, id uuid.UUID) (model.CatalogItem, error)
	GetPatron(ctx context.Context, id uuid.UUID) (model.Patron, error)
}

type AuditRepository interface {
	InsertAudit(ctx context.Context, e model.AuditLogEntry) error
	ListAudit(ctx context.Context, f model.AuditFilter) ([]model.AuditLogEntry, error)
	// CountAudit counts entries of action (all actions when empty) written at or after since (all time when zero).
	CountAudit(ctx context.Context, action model.Action, since time.Time) (int, error)
	BusiestDay(ctx context.Context, since time.Time) (*model.DayActivity, error)
	PruneAudit(ctx context.Context, before time.Time) (int64, error)
}

type SequenceRepository interface {
	// NextSequence atomically advances the named counter for year and commits before returning.
	NextSequence(ctx context.Context, name string, year int, defaultFormat string) (model.SequenceCounter, error)
	GetSequence(ctx context.Context, name string) (model.SequenceCounter, error)
	SetSequenceFormat(ctx context.Context, name, format string) (model.SequenceCounter, error)
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	loansTableName    = `loans`
	itemsTableName    = `catalog_items`
	patronsTableName  = `patrons`
	auditTableName    = `audit_log`
	sequenceTableName = `sequence_counters`

	activeLoanIndex = `loans_one_active_per_item`

	maxTxAttempts = 3
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *repository) RunInTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = r.runOnce(ctx, fn)
		if !isRetryable(err) {
			return err
		}
		r.log.Warn("retrying transaction", zap.Int("attempt", attempt), zap.Error(err))
	}
	return err
}

func (r *repository) runOnce(ctx context.Context, fn func(ctx context.Context, tx Tx) error) (err error) {
	sqlTx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := sqlTx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				r.log.Error("rollback", zap.Error(rbErr))
			}
		}
	}()

	if err = fn(ctx, &tx{tx: sqlTx, log: r.log}); err != nil {
		return err
	}
	if err = sqlTx.Commit(); err != nil {
		return mapError(errors.Wrap(err, "commit"))
	}
	return nil
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgerrcode.SerializationFailure || pgErr.Code == pgerrcode.DeadlockDetected
}

// mapError turns constraint violations into domain errors and leaves everything else as is.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return errs.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		if pgErr.ConstraintName == activeLoanIndex {
			return errs.Wrap(errs.KindItemNotAvailable, err, "item already has an active loan")
		}
	case pgerrcode.ForeignKeyViolation:
		return errs.Wrap(errs.KindNotFound, err, "referenced row does not exist")
	case pgerrcode.CheckViolation:
		return errs.Wrap(errs.KindValidation, err, "constraint "+pgErr.ConstraintName)
	}
	return err
}
