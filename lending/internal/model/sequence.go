package model

import (
	"strconv"
	"strings"
	"time"
)

const (
	SequenceLoan       = "loan_id"
	SequenceCatalog    = "catalog_id"
	SequenceMembership = "membership_id"

	DefaultSequenceFormat = "{number}/{year}"
)

type SequenceCounter struct {
	Name       string    `json:"name" db:"name"`
	LastNumber int       `json:"lastNumber" db:"last_number"`
	LastYear   int       `json:"lastYear" db:"last_year"`
	Format     string    `json:"format" db:"format"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// SequenceYear is the calendar year that scopes sequence numbers. The full year is
// stored so the reset comparison holds across a century boundary.
func SequenceYear(t time.Time) int {
	return t.Year()
}

// Next returns the number and year issued when the current year is year.
// Numbering restarts at 1 when the year moves forward. A year behind the stored one
// keeps counting in the stored year, so a lagging clock cannot repeat a number.
func (c SequenceCounter) Next(year int) (number, issuedYear int) {
	if year > c.LastYear {
		return 1, year
	}
	return c.LastNumber + 1, c.LastYear
}

func FormatSequence(format string, number, year int) string {
	if format == "" {
		format = DefaultSequenceFormat
	}
	r := strings.NewReplacer(
		"{number}", strconv.Itoa(number),
		"{year}", padYear(year),
	)
	return r.Replace(format)
}

// padYear renders the last two digits of year.
func padYear(year int) string {
	year %= 100
	if year < 0 {
		year = -year
	}
	if year < 10 {
		return "0" + strconv.Itoa(year)
	}
	return strconv.Itoa(year)
}

type SequencePreview struct {
	Name          string `json:"name"`
	NextID        string `json:"nextId"`
	CurrentNumber int    `json:"currentNumber"`
	CurrentYear   int    `json:"currentYear"`
}
