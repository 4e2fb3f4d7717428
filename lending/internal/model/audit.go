package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionCheckout Action = "checkout"
	ActionReturn   Action = "return"
	ActionExtend   Action = "extend"
	ActionDelete   Action = "delete"
)

var Actions = [...]Action{ActionCheckout, ActionReturn, ActionExtend, ActionDelete}

func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionCheckout, ActionReturn, ActionExtend, ActionDelete:
		return a, nil
	default:
		return "", fmt.Errorf("unknown audit action %q", s)
	}
}

// FieldValue is the serialized form of one field. Null marks an explicitly empty value.
type FieldValue struct {
	Text string
	Null bool
}

func Text(s string) *FieldValue { return &FieldValue{Text: s} }

func Int(n int) *FieldValue { return &FieldValue{Text: strconv.Itoa(n)} }

func Time(t time.Time) *FieldValue { return &FieldValue{Text: t.UTC().Format(time.RFC3339)} }

func OptTime(t *time.Time) *FieldValue {
	if t == nil {
		return &FieldValue{Null: true}
	}
	return Time(*t)
}

func Status(s LoanStatus) *FieldValue { return &FieldValue{Text: string(s)} }

func (v FieldValue) MarshalJSON() ([]byte, error) {
	if v.Null {
		return []byte("null"), nil
	}
	return json.Marshal(v.Text)
}

func (v *FieldValue) String() string {
	switch {
	case v == nil:
		return "<absent>"
	case v.Null:
		return "null"
	default:
		return v.Text
	}
}

// FieldChange is one field of a mutation. A nil side means the field is not part of that side.
type FieldChange struct {
	Field string      `json:"field"`
	Old   *FieldValue `json:"old,omitempty"`
	New   *FieldValue `json:"new,omitempty"`
}

func Created(field string, v *FieldValue) FieldChange {
	return FieldChange{Field: field, New: v}
}

func Updated(field string, before, after *FieldValue) FieldChange {
	return FieldChange{Field: field, Old: before, New: after}
}

func Removed(field string, old *FieldValue) FieldChange {
	return FieldChange{Field: field, Old: old}
}

type Diff []FieldChange

func (d Diff) OldValues() map[string]*FieldValue {
	return d.side(func(c FieldChange) *FieldValue { return c.Old })
}

func (d Diff) NewValues() map[string]*FieldValue {
	return d.side(func(c FieldChange) *FieldValue { return c.New })
}

func (d Diff) side(pick func(FieldChange) *FieldValue) map[string]*FieldValue {
	m := make(map[string]*FieldValue, len(d))
	for _, c := range d {
		if v := pick(c); v != nil {
			m[c.Field] = v
		}
	}
	return m
}

// Field returns the change recorded for name.
func (d Diff) Field(name string) (FieldChange, bool) {
	for _, c := range d {
		if c.Field == name {
			return c, true
		}
	}
	return FieldChange{}, false
}

// MergeDiff builds a Diff from separately stored old and new value maps.
func MergeDiff(before, after map[string]*FieldValue) Diff {
	d := make(Diff, 0, len(before)+len(after))
	idx := make(map[string]int, len(before)+len(after))
	for _, m := range []map[string]*FieldValue{before, after} {
		for field := range m {
			if _, ok := idx[field]; !ok {
				idx[field] = len(d)
				d = append(d, FieldChange{Field: field})
			}
		}
	}
	for field, v := range before {
		d[idx[field]].Old = v
	}
	for field, v := range after {
		d[idx[field]].New = v
	}
	sortChanges(d)
	return d
}

func sortChanges(d Diff) {
	sort.Slice(d, func(i, j int) bool { return d[i].Field < d[j].Field })
}

// AuditRecord is what a lifecycle operation asks to be written.
type AuditRecord struct {
	Action        Action
	LoanID        *uuid.UUID
	LoanNumber    string
	PatronID      *uuid.UUID
	CatalogItemID *uuid.UUID
	Description   string
	Changes       Diff
	Actor         string
}

type AuditLogEntry struct {
	ID            uuid.UUID  `json:"id"`
	LoanID        *uuid.UUID `json:"loanId,omitempty"`
	LoanNumber    string     `json:"loanNumber,omitempty"`
	PatronID      *uuid.UUID `json:"patronId,omitempty"`
	CatalogItemID *uuid.UUID `json:"catalogItemId,omitempty"`
	Action        Action     `json:"action"`
	Description   string     `json:"description"`
	Changes       Diff       `json:"changes"`
	Actor         string     `json:"actor"`
	Timestamp     time.Time  `json:"timestamp"`

	PatronName string `json:"patronName,omitempty"`
	ItemTitle  string `json:"itemTitle,omitempty"`
	CatalogID  string `json:"catalogId,omitempty"`
}

type AuditFilter struct {
	LoanID        *uuid.UUID
	PatronID      *uuid.UUID
	CatalogItemID *uuid.UUID
	Action        Action
	Search        string
	From          *time.Time
	To            *time.Time
	Limit         int
	Offset        int
}

type DayActivity struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

type AuditStatistics struct {
	TotalEntries     int            `json:"totalEntries"`
	ActionCounts     map[Action]int `json:"actionCounts"`
	RecentActivity7d int            `json:"recentActivity7Days"`
	MostActiveDay30d *DayActivity   `json:"mostActiveDay30Days,omitempty"`
}

// AuditEvent is the message published for every written audit entry.
type AuditEvent struct {
	EntryID   uuid.UUID          `json:"entryId"`
	Action    Action             `json:"action"`
	LoanID    *uuid.UUID         `json:"loanId,omitempty"`
	Actor     string             `json:"actor"`
	Timestamp time.Time          `json:"timestamp"`
	Old       map[string]*string `json:"old,omitempty"`
	New       map[string]*string `json:"new,omitempty"`
}

func NewAuditEvent(e AuditLogEntry) AuditEvent {
	return AuditEvent{
		EntryID:   e.ID,
		Action:    e.Action,
		LoanID:    e.LoanID,
		Actor:     e.Actor,
		Timestamp: e.Timestamp,
		Old:       flatten(e.Changes.OldValues()),
		New:       flatten(e.Changes.NewValues()),
	}
}

func flatten(m map[string]*FieldValue) map[string]*string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]*string, len(m))
	for k, v := range m {
		if v.Null {
			out[k] = nil
			continue
		}
		s := v.Text
		out[k] = &s
	}
	return out
}
