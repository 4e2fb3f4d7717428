package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Astemirdum/lending-service/lending/internal/errs"
	"github.com/Astemirdum/lending-service/lending/internal/model"
	"github.com/Astemirdum/lending-service/lending/internal/repository"
	"github.com/Astemirdum/lending-service/lending/migrations"
	"github.com/Astemirdum/lending-service/pkg/postgres"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// connect opens the database named by LENDING_TEST_DSN and skips the test when it is unset.
func connect(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := os.Getenv("LENDING_TEST_DSN")
	if dsn == "" {
		t.Skip("LENDING_TEST_DSN is not set")
	}
	db, err := postgres.Connect(context.Background(), dsn, 10)
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db, migrations.MigrationFiles))
	t.Cleanup(func() { db.Close() })
	return db
}

type rows struct {
	item   model.CatalogItem
	patron model.Patron
}

func insertRows(t *testing.T, db *sqlx.DB) rows {
	t.Helper()
	suffix := uuid.NewString()[:8]
	r := rows{
		item:   model.CatalogItem{ID: uuid.New(), CatalogID: "it-" + suffix, Title: "Dune", Author: "Herbert", Type: "book", Status: model.ItemAvailable},
		patron: model.Patron{ID: uuid.New(), MembershipID: "M-" + suffix, FirstName: "Ada", LastName: "Lovelace", Status: model.PatronActive},
	}
	_, err := db.NamedExec(`insert into catalog_items (id, catalog_id, title, author, type, status)
		values (:id, :catalog_id, :title, :author, :type, :status)`, r.item)
	require.NoError(t, err)
	_, err = db.NamedExec(`insert into patrons (id, membership_id, first_name, last_name, email, status)
		values (:id, :membership_id, :first_name, :last_name, :email, :status)`, r.patron)
	require.NoError(t, err)
	return r
}

func TestRepository_Postgres(t *testing.T) {
	db := connect(t)
	repo, err := repository.NewRepository(db, zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()
	r := insertRows(t, db)

	checkout := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	loan := model.Loan{
		ID:            uuid.New(),
		LoanNumber:    "pg-" + uuid.NewString(),
		CatalogItemID: r.item.ID,
		PatronID:      r.patron.ID,
		CheckoutDate:  checkout,
		DueDate:       checkout.AddDate(0, 0, 14),
		Status:        model.LoanActive,
		CreatedAt:     checkout,
		UpdatedAt:     checkout,
	}

	t.Run("create", func(t *testing.T) {
		err := repo.RunInTx(ctx, func(ctx context.Context, tx repository.Tx) error {
			if _, err := tx.CreateLoan(ctx, loan); err != nil {
				return err
			}
			return tx.SetItemStatus(ctx, r.item.ID, model.ItemBorrowed)
		})
		require.NoError(t, err)

		got, err := repo.GetLoan(ctx, loan.ID)
		require.NoError(t, err)
		require.Equal(t, loan.LoanNumber, got.LoanNumber)
		require.Equal(t, "Dune", got.ItemTitle)
		require.True(t, got.CheckoutDate.Equal(checkout))

		active, err := repo.HasActiveLoan(ctx, r.item.ID)
		require.NoError(t, err)
		require.True(t, active)
	})

	t.Run("second active loan", func(t *testing.T) {
		dup := loan
		dup.ID = uuid.New()
		dup.LoanNumber = "pg-" + uuid.NewString()
		err := repo.RunInTx(ctx, func(ctx context.Context, tx repository.Tx) error {
			_, err := tx.CreateLoan(ctx, dup)
			return err
		})
		require.Equal(t, errs.KindItemNotAvailable, errs.KindOf(err))
	})

	t.Run("rollback", func(t *testing.T) {
		err := repo.RunInTx(ctx, func(ctx context.Context, tx repository.Tx) error {
			if err := tx.SetItemStatus(ctx, r.item.ID, model.ItemDamaged); err != nil {
				return err
			}
			return errs.ErrInvalidState
		})
		require.ErrorIs(t, err, errs.ErrInvalidState)
		item, err := repo.GetCatalogItem(ctx, r.item.ID)
		require.NoError(t, err)
		require.Equal(t, model.ItemBorrowed, item.Status)
	})

	t.Run("return", func(t *testing.T) {
		returned := checkout.AddDate(0, 0, 3)
		err := repo.RunInTx(ctx, func(ctx context.Context, tx repository.Tx) error {
			l, err := tx.Loan(ctx, loan.ID)
			if err != nil {
				return err
			}
			l.Status = model.LoanReturned
			l.ReturnDate = &returned
			_, err = tx.UpdateLoan(ctx, l)
			return err
		})
		require.NoError(t, err)

		counts, err := repo.PatronLoanCounts(ctx, r.patron.ID)
		require.NoError(t, err)
		require.Equal(t, model.PatronLoanCounts{Total: 1, Returned: 1}, counts)
	})

	t.Run("audit", func(t *testing.T) {
		e := model.AuditLogEntry{
			ID:            uuid.New(),
			LoanID:        &loan.ID,
			LoanNumber:    loan.LoanNumber,
			PatronID:      &r.patron.ID,
			CatalogItemID: &r.item.ID,
			Action:        model.ActionExtend,
			Description:   "Loan extended by 7 days",
			Changes: model.Diff{
				model.Updated("dueDate", model.Time(loan.DueDate), model.Time(loan.DueDate.AddDate(0, 0, 7))),
				model.Created("extensionDays", model.Int(7)),
			},
			Actor:     "alice",
			Timestamp: time.Now().UTC(),
		}
		require.NoError(t, repo.InsertAudit(ctx, e))

		got, err := repo.ListAudit(ctx, model.AuditFilter{LoanID: &loan.ID})
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "alice", got[0].Actor)
		require.Equal(t, "Dune", got[0].ItemTitle)
		ext, ok := got[0].Changes.Field("extensionDays")
		require.True(t, ok)
		require.Nil(t, ext.Old)
		require.Equal(t, "7", ext.New.Text)

		_, err = db.ExecContext(ctx, `update audit_log set description = 'x' where id = $1`, e.ID)
		require.Error(t, err)
	})
}

func TestRepository_NextSequenceConcurrent(t *testing.T) {
	db := connect(t)
	repo, err := repository.NewRepository(db, zap.NewNop())
	require.NoError(t, err)
	name := "test-" + uuid.NewString()

	const n = 100
	numbers := make([]int, n)
	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			c, err := repo.NextSequence(context.Background(), name, 2024, model.DefaultSequenceFormat)
			numbers[i] = c.LastNumber
			return err
		})
	}
	require.NoError(t, g.Wait())

	seen := make(map[int]bool, n)
	for _, num := range numbers {
		require.False(t, seen[num], "number %d issued twice", num)
		seen[num] = true
	}
	require.Len(t, seen, n)

	c, err := repo.NextSequence(context.Background(), name, 2025, model.DefaultSequenceFormat)
	require.NoError(t, err)
	require.Equal(t, 1, c.LastNumber)
	c, err = repo.NextSequence(context.Background(), name, 2024, model.DefaultSequenceFormat)
	require.NoError(t, err)
	require.Equal(t, 2, c.LastNumber)
	require.Equal(t, 2025, c.LastYear)
}
