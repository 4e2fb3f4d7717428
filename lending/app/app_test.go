package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Astemirdum/lending-service/lending/app"
	"github.com/Astemirdum/lending-service/lending/config"
	"github.com/Astemirdum/lending-service/lending/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewServices_Memory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	itemID, patronID := uuid.New(), uuid.New()
	seed := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(seed, []byte(`{
		"items": [{"id": "`+itemID.String()+`", "catalogId": "1/24", "title": "Dune"}],
		"patrons": [{"id": "`+patronID.String()+`", "membershipId": "M-0001", "firstName": "Ada", "lastName": "Lovelace"}]
	}`), 0o600))

	cfg := &config.Config{
		Lending: config.Lending{
			Storage:         config.StorageMemory,
			SeedFile:        seed,
			DefaultLoanDays: 21,
			LoanFormat:      "L-{number}/{year}",
		},
	}
	svc, err := app.NewServices(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close(zap.NewNop()) })

	loan, err := svc.Loans.Checkout(ctx, model.CheckoutRequest{CatalogItemID: itemID, PatronID: patronID})
	require.NoError(t, err)
	require.Regexp(t, `^L-1/\d{2}$`, loan.LoanNumber)
	require.Equal(t, 21*24, int(loan.DueDate.Sub(loan.CheckoutDate).Hours()))

	entries, err := svc.Audit.List(ctx, model.AuditFilter{LoanID: &loan.ID})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, model.ActionCheckout, entries[0].Action)
	require.Equal(t, "Dune", entries[0].ItemTitle)
}

func TestNewServices_MissingSeed(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{
		Lending: config.Lending{
			Storage:  config.StorageMemory,
			SeedFile: filepath.Join(t.TempDir(), "absent.json"),
		},
	}
	_, err := app.NewServices(context.Background(), cfg, zap.NewNop())
	require.Error(t, err)
}

func TestTailAudit_RequiresBrokers(t *testing.T) {
	t.Parallel()
	err := app.TailAudit(context.Background(), &config.Config{}, zap.NewNop(),
		func(context.Context, model.AuditEvent) error { return nil })
	require.Error(t, err)
}
