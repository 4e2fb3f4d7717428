package handler

import (
	"context"

	"github.com/Astemirdum/lending-service/lending/internal/model"
	"github.com/Astemirdum/lending-service/lending/internal/service"
	"github.com/google/uuid"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type LoanService interface {
	Checkout(ctx context.Context, req model.CheckoutRequest) (model.Loan, error)
	Return(ctx context.Context, loanID uuid.UUID, req model.ReturnRequest) (model.Loan, error)
	ReturnByItem(ctx context.Context, itemID uuid.UUID, req model.ReturnRequest) (model.Loan, error)
	Extend(ctx context.Context, loanID uuid.UUID, days int) (model.Loan, error)
	Delete(ctx context.Context, loanID uuid.UUID) (bool, error)
	GetLoan(ctx context.Context, id uuid.UUID) (model.LoanDetails, error)
	ListLoans(ctx context.Context, f model.LoanFilter) ([]model.LoanDetails, error)
	ListOverdue(ctx context.Context) ([]model.LoanDetails, error)
	CountLoans(ctx context.Context, status model.LoanStatus) (int, error)
	Statistics(ctx context.Context) (model.LoanStatistics, error)
	PatronLoanCounts(ctx context.Context, patronID uuid.UUID) (model.PatronLoanCounts, error)
	IsItemAvailable(ctx context.Context, itemID uuid.UUID) (bool, error)
}

type AuditService interface {
	List(ctx context.Context, f model.AuditFilter) ([]model.AuditLogEntry, error)
	Statistics(ctx context.Context) (model.AuditStatistics, error)
}

type SequenceService interface {
	Counter(ctx context.Context, name string) (model.SequenceCounter, error)
	Preview(ctx context.Context, name string) (model.SequencePreview, error)
	Configure(ctx context.Context, name, format string) (model.SequenceCounter, error)
}

var (
	_ LoanService     = (*service.LoanService)(nil)
	_ AuditService    = (*service.AuditRecorder)(nil)
	_ SequenceService = (*service.SequenceAllocator)(nil)
)
