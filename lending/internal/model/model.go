package model

import (
	"time"

	"github.com/google/uuid"
)

type Loan struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	LoanNumber    string     `json:"loanId" db:"loan_number"`
	CatalogItemID uuid.UUID  `json:"catalogItemId" db:"catalog_item_id"`
	PatronID      uuid.UUID  `json:"patronId" db:"patron_id"`
	CheckoutDate  time.Time  `json:"checkoutDate" db:"checkout_date"`
	DueDate       time.Time  `json:"dueDate" db:"due_date"`
	ReturnDate    *time.Time `json:"returnDate,omitempty" db:"return_date"`
	Status        LoanStatus `json:"status" db:"status"`
	Notes         string     `json:"notes" db:"notes"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`
}

// StatusAt classifies the loan at instant now, reporting active loans past due as overdue.
func (l Loan) StatusAt(now time.Time) LoanStatus {
	switch l.Status {
	case LoanActive:
		if l.DueDate.Before(now) {
			return LoanOverdue
		}
		return LoanActive
	case LoanReturned, LoanLost, LoanOverdue:
		return l.Status
	default:
		return l.Status
	}
}

func (l Loan) IsOverdue(now time.Time) bool {
	return l.StatusAt(now) == LoanOverdue
}

// LoanDetails is a loan joined with the summaries of its patron and catalog item.
type LoanDetails struct {
	Loan
	MembershipID   string     `json:"membershipId" db:"membership_id"`
	PatronFirst    string     `json:"patronFirstName" db:"first_name"`
	PatronLast     string     `json:"patronLastName" db:"last_name"`
	CatalogID      string     `json:"catalogId" db:"catalog_id"`
	ItemTitle      string     `json:"title" db:"title"`
	ItemAuthor     string     `json:"author" db:"author"`
	ComputedStatus LoanStatus `json:"computedStatus" db:"-"`
}

func (d LoanDetails) PatronName() string {
	switch {
	case d.PatronFirst == "":
		return d.PatronLast
	case d.PatronLast == "":
		return d.PatronFirst
	}
	return d.PatronFirst + " " + d.PatronLast
}

type CatalogItem struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	CatalogID string     `json:"catalogId" db:"catalog_id"`
	Title     string     `json:"title" db:"title"`
	Author    string     `json:"author" db:"author"`
	Type      string     `json:"type" db:"type"`
	Status    ItemStatus `json:"status" db:"status"`
}

type Patron struct {
	ID           uuid.UUID    `json:"id" db:"id"`
	MembershipID string       `json:"membershipId" db:"membership_id"`
	FirstName    string       `json:"firstName" db:"first_name"`
	LastName     string       `json:"lastName" db:"last_name"`
	Email        string       `json:"email" db:"email"`
	Status       PatronStatus `json:"status" db:"status"`
}

type LoanFilter struct {
	Search   string
	Status   LoanStatus
	PatronID *uuid.UUID
	ItemID   *uuid.UUID
	Limit    int
	Offset   int
}

type CheckoutRequest struct {
	CatalogItemID uuid.UUID  `json:"catalogItemId" validate:"required"`
	PatronID      uuid.UUID  `json:"patronId" validate:"required"`
	DurationDays  int        `json:"dueDays" validate:"gte=0"`
	CheckoutDate  *time.Time `json:"checkoutDate,omitempty"`
	Notes         string     `json:"notes"`
}

type ReturnRequest struct {
	ReturnDate *time.Time `json:"returnDate,omitempty"`
	Notes      string     `json:"notes"`
}

type ExtendRequest struct {
	AdditionalDays int `json:"additionalDays"`
}

type PatronLoanCounts struct {
	Total    int `json:"totalLoans" db:"total"`
	Active   int `json:"activeLoans" db:"active"`
	Returned int `json:"returnedLoans" db:"returned"`
}

type RankedPatron struct {
	PatronID     uuid.UUID `json:"patronId" db:"id"`
	MembershipID string    `json:"membershipId" db:"membership_id"`
	Name         string    `json:"name" db:"name"`
	LoanCount    int       `json:"loanCount" db:"loan_count"`
}

type RankedItem struct {
	ItemID    uuid.UUID `json:"catalogItemId" db:"id"`
	CatalogID string    `json:"catalogId" db:"catalog_id"`
	Title     string    `json:"title" db:"title"`
	LoanCount int       `json:"loanCount" db:"loan_count"`
}

type LoanStatistics struct {
	Total             int            `json:"totalLoans"`
	Active            int            `json:"activeLoans"`
	Returned          int            `json:"returnedLoans"`
	Overdue           int            `json:"overdueLoans"`
	MostActivePatrons []RankedPatron `json:"mostActivePatrons"`
	MostBorrowedItems []RankedItem   `json:"mostBorrowedItems"`
}
