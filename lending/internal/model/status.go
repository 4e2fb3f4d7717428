package model

import (
	"database/sql/driver"
	"fmt"
)

type LoanStatus string

const (
	LoanActive   LoanStatus = "active"
	LoanReturned LoanStatus = "returned"
	LoanLost     LoanStatus = "lost"
	// LoanOverdue is never stored: it is how an active loan past its due date reads.
	LoanOverdue LoanStatus = "overdue"
)

func ParseLoanStatus(s string) (LoanStatus, error) {
	switch st := LoanStatus(s); st {
	case LoanActive, LoanReturned, LoanLost, LoanOverdue:
		return st, nil
	default:
		return "", fmt.Errorf("unknown loan status %q", s)
	}
}

// Persisted reports whether the status may be written to storage.
func (s LoanStatus) Persisted() bool {
	switch s {
	case LoanActive, LoanReturned, LoanLost:
		return true
	case LoanOverdue:
		return false
	default:
		return false
	}
}

func (s *LoanStatus) Scan(src any) error {
	v, err := scanString(src)
	if err != nil {
		return err
	}
	st, err := ParseLoanStatus(v)
	if err != nil {
		return err
	}
	if !st.Persisted() {
		return fmt.Errorf("loan status %q cannot be stored", v)
	}
	*s = st
	return nil
}

func (s LoanStatus) Value() (driver.Value, error) {
	if !s.Persisted() {
		return nil, fmt.Errorf("loan status %q cannot be stored", string(s))
	}
	return string(s), nil
}

type ItemStatus string

const (
	ItemAvailable ItemStatus = "available"
	ItemBorrowed  ItemStatus = "borrowed"
	ItemReserved  ItemStatus = "reserved"
	ItemDamaged   ItemStatus = "damaged"
	ItemLost      ItemStatus = "lost"
)

func ParseItemStatus(s string) (ItemStatus, error) {
	switch st := ItemStatus(s); st {
	case ItemAvailable, ItemBorrowed, ItemReserved, ItemDamaged, ItemLost:
		return st, nil
	default:
		return "", fmt.Errorf("unknown item status %q", s)
	}
}

func (s *ItemStatus) Scan(src any) error {
	v, err := scanString(src)
	if err != nil {
		return err
	}
	st, err := ParseItemStatus(v)
	if err != nil {
		return err
	}
	*s = st
	return nil
}

func (s ItemStatus) Value() (driver.Value, error) {
	if _, err := ParseItemStatus(string(s)); err != nil {
		return nil, err
	}
	return string(s), nil
}

type PatronStatus string

const (
	PatronActive    PatronStatus = "active"
	PatronInactive  PatronStatus = "inactive"
	PatronSuspended PatronStatus = "suspended"
)

func ParsePatronStatus(s string) (PatronStatus, error) {
	switch st := PatronStatus(s); st {
	case PatronActive, PatronInactive, PatronSuspended:
		return st, nil
	default:
		return "", fmt.Errorf("unknown patron status %q", s)
	}
}

func (s *PatronStatus) Scan(src any) error {
	v, err := scanString(src)
	if err != nil {
		return err
	}
	st, err := ParsePatronStatus(v)
	if err != nil {
		return err
	}
	*s = st
	return nil
}

func (s PatronStatus) Value() (driver.Value, error) {
	if _, err := ParsePatronStatus(string(s)); err != nil {
		return nil, err
	}
	return string(s), nil
}

func scanString(src any) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("cannot scan %T into status", src)
	}
}
