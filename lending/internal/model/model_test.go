package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Astemirdum/lending-service/lending/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoan_StatusAt(t *testing.T) {
	t.Parallel()
	due := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		status model.LoanStatus
		now    time.Time
		want   model.LoanStatus
	}{
		{name: "active before due", status: model.LoanActive, now: due.Add(-time.Hour), want: model.LoanActive},
		{name: "active at due", status: model.LoanActive, now: due, want: model.LoanActive},
		{name: "active past due", status: model.LoanActive, now: due.Add(time.Second), want: model.LoanOverdue},
		{name: "returned past due", status: model.LoanReturned, now: due.AddDate(0, 1, 0), want: model.LoanReturned},
		{name: "lost", status: model.LoanLost, now: due.AddDate(0, 1, 0), want: model.LoanLost},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l := model.Loan{Status: tt.status, DueDate: due}
			assert.Equal(t, tt.want, l.StatusAt(tt.now))
		})
	}
}

func TestLoanStatus_Scan(t *testing.T) {
	t.Parallel()
	var s model.LoanStatus
	require.NoError(t, s.Scan("returned"))
	require.Equal(t, model.LoanReturned, s)
	require.NoError(t, s.Scan([]byte("lost")))
	require.Equal(t, model.LoanLost, s)

	require.Error(t, s.Scan("borrowed"))
	require.Error(t, s.Scan("overdue"))
	require.Error(t, s.Scan(42))

	_, err := model.LoanOverdue.Value()
	require.Error(t, err)
}

func TestItemStatus_Parse(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"available", "borrowed", "reserved", "damaged", "lost"} {
		_, err := model.ParseItemStatus(s)
		require.NoError(t, err, s)
	}
	_, err := model.ParseItemStatus("missing")
	require.Error(t, err)
}

func TestSequenceCounter_Next(t *testing.T) {
	t.Parallel()
	c := model.SequenceCounter{LastNumber: 41, LastYear: 2024}

	n, y := c.Next(2024)
	assert.Equal(t, 42, n)
	assert.Equal(t, 2024, y)

	n, y = c.Next(2025)
	assert.Equal(t, 1, n)
	assert.Equal(t, 2025, y)

	n, y = c.Next(2023)
	assert.Equal(t, 42, n)
	assert.Equal(t, 2024, y)

	n, y = model.SequenceCounter{}.Next(2024)
	assert.Equal(t, 1, n)
	assert.Equal(t, 2024, y)

	// 2099 -> 2100 wraps the rendered year to 00 but still resets
	n, y = model.SequenceCounter{LastNumber: 3, LastYear: 2099}.Next(2100)
	assert.Equal(t, 1, n)
	assert.Equal(t, 2100, y)
	assert.Equal(t, "1/00", model.FormatSequence("", n, y))
}

func TestSequenceYear(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 2100, model.SequenceYear(time.Date(2100, time.January, 1, 0, 0, 0, 0, time.UTC)))
}

func TestFormatSequence(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "7/24", model.FormatSequence("{number}/{year}", 7, 2024))
	assert.Equal(t, "LN-05-12", model.FormatSequence("LN-{year}-{number}", 12, 2005))
	assert.Equal(t, "3/26", model.FormatSequence("", 3, 2026))
	assert.Equal(t, "9/00", model.FormatSequence("", 9, 2100))
	assert.Equal(t, "fixed", model.FormatSequence("fixed", 3, 2026))
}

func TestMergeDiff(t *testing.T) {
	t.Parallel()
	d := model.MergeDiff(
		map[string]*model.FieldValue{"status": model.Text("active"), "returnDate": {Null: true}},
		map[string]*model.FieldValue{"status": model.Text("returned"), "returnDate": model.Text("2024-01-20T00:00:00Z")},
	)
	require.Len(t, d, 2)
	require.Equal(t, "returnDate", d[0].Field)
	require.True(t, d[0].Old.Null)
	require.Equal(t, "2024-01-20T00:00:00Z", d[0].New.Text)

	st, ok := d.Field("status")
	require.True(t, ok)
	require.Equal(t, "active", st.Old.Text)
	require.Equal(t, "returned", st.New.Text)
	require.Len(t, d.OldValues(), 2)
}

func TestFieldChange_JSON(t *testing.T) {
	t.Parallel()
	b, err := json.Marshal(model.Diff{
		model.Created("dueDate", model.Text("2024-01-15T00:00:00Z")),
		model.Updated("returnDate", model.OptTime(nil), model.Text("x")),
	})
	require.NoError(t, err)
	require.JSONEq(t, `[{"field":"dueDate","new":"2024-01-15T00:00:00Z"},{"field":"returnDate","old":null,"new":"x"}]`, string(b))
}
