package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Astemirdum/lending-service/lending/internal/errs"
	"github.com/Astemirdum/lending-service/lending/internal/handler"
	"github.com/Astemirdum/lending-service/lending/internal/model"
	"github.com/Astemirdum/lending-service/pkg/actor"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	service_mocks "github.com/Astemirdum/lending-service/lending/internal/handler/mocks"
)

type mocks struct {
	loans    *service_mocks.MockLoanService
	audit    *service_mocks.MockAuditService
	sequence *service_mocks.MockSequenceService
}

func newRouter(t *testing.T) (*echo.Echo, mocks) {
	t.Helper()
	c := gomock.NewController(t)
	m := mocks{
		loans:    service_mocks.NewMockLoanService(c),
		audit:    service_mocks.NewMockAuditService(c),
		sequence: service_mocks.NewMockSequenceService(c),
	}
	h := handler.New(m.loans, m.audit, m.sequence, zap.NewExample().Named("test"))
	return h.NewRouter(), m
}

func do(e *echo.Echo, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, http.NoBody)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for i := 0; i+1 < len(headers); i += 2 {
		r.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)
	return w
}

func body(w *httptest.ResponseRecorder) string {
	return strings.Trim(w.Body.String(), "\n")
}

var (
	itemID   = uuid.MustParse("83575e12-7ce0-48ee-9931-51919ff3c9ee")
	patronID = uuid.MustParse("f7cdc58f-2caf-4b15-9727-f89dcc629b27")
	loanID   = uuid.MustParse("0b1c7a52-5d7b-4b8e-9b0a-0f6f3f1a2c11")
)

func TestHandler_Checkout(t *testing.T) {
	t.Parallel()
	due := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	req := model.CheckoutRequest{CatalogItemID: itemID, PatronID: patronID, DurationDays: 14}
	okBody := fmt.Sprintf(`{"catalogItemId":%q,"patronId":%q,"dueDays":14}`, itemID, patronID)

	type response struct {
		expectedCode int
		expectedBody string
	}
	var tests = []struct {
		name         string
		body         string
		mockBehavior func(m mocks)
		response     response
	}{
		{
			name: "ok",
			body: okBody,
			mockBehavior: func(m mocks) {
				m.loans.EXPECT().Checkout(gomock.Any(), req).
					Return(model.Loan{ID: loanID, LoanNumber: "1/24", DueDate: due, Status: model.LoanActive}, nil)
			},
			response: response{expectedCode: http.StatusCreated},
		},
		{
			name:         "err. patron required",
			body:         fmt.Sprintf(`{"catalogItemId":%q}`, itemID),
			mockBehavior: func(m mocks) {},
			response:     response{expectedCode: http.StatusBadRequest},
		},
		{
			name:         "err. negative duration",
			body:         fmt.Sprintf(`{"catalogItemId":%q,"patronId":%q,"dueDays":-3}`, itemID, patronID),
			mockBehavior: func(m mocks) {},
			response:     response{expectedCode: http.StatusBadRequest},
		},
		{
			name: "err. item not available",
			body: okBody,
			mockBehavior: func(m mocks) {
				m.loans.EXPECT().Checkout(gomock.Any(), req).
					Return(model.Loan{}, errs.New(errs.KindItemNotAvailable, "catalog item 1/24 is borrowed"))
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"catalog item 1/24 is borrowed"}`,
			},
		},
		{
			name: "err. patron not eligible",
			body: okBody,
			mockBehavior: func(m mocks) {
				m.loans.EXPECT().Checkout(gomock.Any(), req).
					Return(model.Loan{}, errs.New(errs.KindPatronNotEligible, "patron M-1 is suspended"))
			},
			response: response{
				expectedCode: http.StatusUnprocessableEntity,
				expectedBody: `{"message":"patron M-1 is suspended"}`,
			},
		},
		{
			name: "err. allocation",
			body: okBody,
			mockBehavior: func(m mocks) {
				m.loans.EXPECT().Checkout(gomock.Any(), req).
					Return(model.Loan{}, errs.Wrap(errs.KindAllocationFailure, errors.New("timeout"), "reserve loan_id"))
			},
			response: response{
				expectedCode: http.StatusServiceUnavailable,
				expectedBody: `{"message":"reserve loan_id: timeout"}`,
			},
		},
		{
			name: "err. internal",
			body: okBody,
			mockBehavior: func(m mocks) {
				m.loans.EXPECT().Checkout(gomock.Any(), req).Return(model.Loan{}, errors.New("db internal"))
			},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"message":"db internal"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, m := newRouter(t)
			tt.mockBehavior(m)

			w := do(e, http.MethodPost, "/api/v1/loans/checkout", tt.body)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, body(w))
			}
		})
	}
}

func TestHandler_CheckoutResponse(t *testing.T) {
	t.Parallel()
	e, m := newRouter(t)
	due := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	m.loans.EXPECT().Checkout(gomock.Any(), gomock.Any()).
		Return(model.Loan{ID: loanID, LoanNumber: "1/24", CatalogItemID: itemID, PatronID: patronID, DueDate: due, Status: model.LoanActive}, nil)

	w := do(e, http.MethodPost, "/api/v1/loans/checkout",
		fmt.Sprintf(`{"catalogItemId":%q,"patronId":%q}`, itemID, patronID))
	require.Equal(t, http.StatusCreated, w.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, "1/24", got["loanId"])
	require.Equal(t, "active", got["status"])
	require.Equal(t, "2024-01-15T00:00:00Z", got["dueDate"])
	require.NotContains(t, got, "returnDate")
}

func TestHandler_Return(t *testing.T) {
	t.Parallel()
	returned := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name         string
		target       string
		body         string
		mockBehavior func(m mocks)
		expectedCode int
	}{
		{
			name:   "ok",
			target: "/api/v1/loans/" + loanID.String() + "/return",
			body:   `{"returnDate":"2024-01-20T00:00:00Z","notes":"ok"}`,
			mockBehavior: func(m mocks) {
				m.loans.EXPECT().Return(gomock.Any(), loanID, model.ReturnRequest{ReturnDate: &returned, Notes: "ok"}).
					Return(model.Loan{ID: loanID, Status: model.LoanReturned, ReturnDate: &returned}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:   "ok. empty body",
			target: "/api/v1/loans/" + loanID.String() + "/return",
			mockBehavior: func(m mocks) {
				m.loans.EXPECT().Return(gomock.Any(), loanID, model.ReturnRequest{}).
					Return(model.Loan{ID: loanID, Status: model.LoanReturned}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "err. bad id",
			target:       "/api/v1/loans/42/return",
			mockBehavior: func(m mocks) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "err. already returned",
			target: "/api/v1/loans/" + loanID.String() + "/return",
			mockBehavior: func(m mocks) {
				m.loans.EXPECT().Return(gomock.Any(), loanID, model.ReturnRequest{}).
					Return(model.Loan{}, errs.New(errs.KindAlreadyReturned, "loan 1/24 has already been returned"))
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:   "err. invalid date",
			target: "/api/v1/loans/" + loanID.String() + "/return",
			mockBehavior: func(m mocks) {
				m.loans.EXPECT().Return(gomock.Any(), loanID, model.ReturnRequest{}).
					Return(model.Loan{}, errs.New(errs.KindInvalidDate, "return date precedes checkout date"))
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name:   "err. not found",
			target: "/api/v1/loans/" + loanID.String() + "/return",
			mockBehavior: func(m mocks) {
				m.loans.EXPECT().Return(gomock.Any(), loanID, model.ReturnRequest{}).
					Return(model.Loan{}, errs.New(errs.KindNotFound, "loan not found"))
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:   "ok. by item",
			target: "/api/v1/items/" + itemID.String() + "/return",
			mockBehavior: func(m mocks) {
				m.loans.EXPECT().ReturnByItem(gomock.Any(), itemID, model.ReturnRequest{}).
					Return(model.Loan{ID: loanID, Status: model.LoanReturned}, nil)
			},
			expectedCode: http.StatusOK,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, m := newRouter(t)
			tt.mockBehavior(m)
			w := do(e, http.MethodPost, tt.target, tt.body)
			require.Equal(t, tt.expectedCode, w.Code, body(w))
		})
	}
}

func TestHandler_ExtendAndDelete(t *testing.T) {
	t.Parallel()
	e, m := newRouter(t)
	target := "/api/v1/loans/" + loanID.String()

	m.loans.EXPECT().Extend(gomock.Any(), loanID, 7).Return(model.Loan{ID: loanID, Status: model.LoanActive}, nil)
	w := do(e, http.MethodPost, target+"/extend", `{"additionalDays":7}`)
	require.Equal(t, http.StatusOK, w.Code)

	m.loans.EXPECT().Extend(gomock.Any(), loanID, 7).Return(model.Loan{}, errs.New(errs.KindInvalidState, "loan 1/24 is returned and cannot be extended"))
	w = do(e, http.MethodPost, target+"/extend", `{"additionalDays":7}`)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, `{"message":"loan 1/24 is returned and cannot be extended"}`, body(w))

	m.loans.EXPECT().Delete(gomock.Any(), loanID).Return(true, nil)
	w = do(e, http.MethodDelete, target, "")
	require.Equal(t, http.StatusNoContent, w.Code)

	m.loans.EXPECT().Delete(gomock.Any(), loanID).Return(false, errs.New(errs.KindNotFound, "loan not found"))
	w = do(e, http.MethodDelete, target, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_ListLoans(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		query        string
		mockBehavior func(m mocks)
		expectedCode int
	}{
		{
			name:  "ok. filters",
			query: "?status=overdue&patronId=" + patronID.String() + "&search=ada&limit=10&offset=20",
			mockBehavior: func(m mocks) {
				pid := patronID
				m.loans.EXPECT().ListLoans(gomock.Any(), model.LoanFilter{
					Search:   "ada",
					Status:   model.LoanOverdue,
					PatronID: &pid,
					Limit:    10,
					Offset:   20,
				}).Return([]model.LoanDetails{}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "err. status",
			query:        "?status=borrowed",
			mockBehavior: func(m mocks) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "err. limit",
			query:        "?limit=ten",
			mockBehavior: func(m mocks) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "err. item id",
			query:        "?itemId=abc",
			mockBehavior: func(m mocks) {},
			expectedCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, m := newRouter(t)
			tt.mockBehavior(m)
			w := do(e, http.MethodGet, "/api/v1/loans"+tt.query, "")
			require.Equal(t, tt.expectedCode, w.Code, body(w))
		})
	}
}

func TestHandler_LoanReads(t *testing.T) {
	t.Parallel()
	e, m := newRouter(t)

	m.loans.EXPECT().ListOverdue(gomock.Any()).Return(nil, nil)
	w := do(e, http.MethodGet, "/api/v1/loans/overdue", "")
	require.Equal(t, http.StatusOK, w.Code)

	m.loans.EXPECT().CountLoans(gomock.Any(), model.LoanActive).Return(3, nil)
	w = do(e, http.MethodGet, "/api/v1/loans/count?status=active", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `{"count":3}`, body(w))

	m.loans.EXPECT().Statistics(gomock.Any()).Return(model.LoanStatistics{Total: 2}, nil)
	w = do(e, http.MethodGet, "/api/v1/loans/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	m.loans.EXPECT().GetLoan(gomock.Any(), loanID).Return(model.LoanDetails{}, errs.New(errs.KindNotFound, "loan not found"))
	w = do(e, http.MethodGet, "/api/v1/loans/"+loanID.String(), "")
	require.Equal(t, http.StatusNotFound, w.Code)

	m.loans.EXPECT().IsItemAvailable(gomock.Any(), itemID).Return(true, nil)
	w = do(e, http.MethodGet, "/api/v1/items/"+itemID.String()+"/availability", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `{"available":true}`, body(w))

	m.loans.EXPECT().PatronLoanCounts(gomock.Any(), patronID).Return(model.PatronLoanCounts{Total: 2, Active: 1, Returned: 1}, nil)
	w = do(e, http.MethodGet, "/api/v1/patrons/"+patronID.String()+"/loan-counts", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `{"totalLoans":2,"activeLoans":1,"returnedLoans":1}`, body(w))
}

func TestHandler_ListAudit(t *testing.T) {
	t.Parallel()
	e, m := newRouter(t)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)
	lid := loanID
	m.audit.EXPECT().List(gomock.Any(), model.AuditFilter{
		LoanID: &lid,
		Action: model.ActionReturn,
		Search: "go",
		From:   &from,
		To:     &to,
		Limit:  5,
	}).Return([]model.AuditLogEntry{}, nil)

	w := do(e, http.MethodGet, "/api/v1/audit?loanId="+loanID.String()+"&action=return&search=go&from=2024-01-01&to=2024-01-31&limit=5", "")
	require.Equal(t, http.StatusOK, w.Code, body(w))

	w = do(e, http.MethodGet, "/api/v1/audit?action=renew", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	w = do(e, http.MethodGet, "/api/v1/audit?from=yesterday", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	m.audit.EXPECT().Statistics(gomock.Any()).Return(model.AuditStatistics{TotalEntries: 1}, nil)
	w = do(e, http.MethodGet, "/api/v1/audit/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_Sequences(t *testing.T) {
	t.Parallel()
	e, m := newRouter(t)

	m.sequence.EXPECT().Preview(gomock.Any(), "loan_id").
		Return(model.SequencePreview{Name: "loan_id", NextID: "8/24", CurrentNumber: 7, CurrentYear: 2024}, nil)
	w := do(e, http.MethodGet, "/api/v1/sequences/loan_id/preview", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `{"name":"loan_id","nextId":"8/24","currentNumber":7,"currentYear":2024}`, body(w))

	w = do(e, http.MethodPut, "/api/v1/sequences/loan_id", `{"format":""}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	m.sequence.EXPECT().Configure(gomock.Any(), "loan_id", "L{year}-{number}").
		Return(model.SequenceCounter{Name: "loan_id", Format: "L{year}-{number}"}, nil)
	w = do(e, http.MethodPut, "/api/v1/sequences/loan_id", `{"format":"L{year}-{number}"}`)
	require.Equal(t, http.StatusOK, w.Code)

	m.sequence.EXPECT().Configure(gomock.Any(), "loan_id", "L{year}").
		Return(model.SequenceCounter{}, errs.New(errs.KindValidation, `format "L{year}" has no {number} placeholder`))
	w = do(e, http.MethodPut, "/api/v1/sequences/loan_id", `{"format":"L{year}"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	m.sequence.EXPECT().Counter(gomock.Any(), "catalog_id").Return(model.SequenceCounter{Name: "catalog_id"}, nil)
	w = do(e, http.MethodGet, "/api/v1/sequences/catalog_id", "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_ActorHeader(t *testing.T) {
	t.Parallel()
	e, m := newRouter(t)

	var who []string
	m.loans.EXPECT().Delete(gomock.Any(), loanID).Times(2).
		DoAndReturn(func(ctx context.Context, _ uuid.UUID) (bool, error) {
			who = append(who, actor.Name(ctx))
			return true, nil
		})

	do(e, http.MethodDelete, "/api/v1/loans/"+loanID.String(), "", "X-User-Name", "librarian.kim")
	do(e, http.MethodDelete, "/api/v1/loans/"+loanID.String(), "")
	require.Equal(t, []string{"librarian.kim", actor.System}, who)
}

func TestHandler_Health(t *testing.T) {
	t.Parallel()
	e, _ := newRouter(t)
	w := do(e, http.MethodGet, "/manage/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "OK", w.Body.String())
}

func TestHandler_Swagger(t *testing.T) {
	t.Parallel()
	e, _ := newRouter(t)
	w := do(e, http.MethodGet, "/swagger/doc.json", "")
	require.Equal(t, http.StatusOK, w.Code)

	var doc struct {
		BasePath string                     `json:"basePath"`
		Paths    map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	require.Equal(t, "/api/v1", doc.BasePath)
	require.Contains(t, doc.Paths, "/loans/checkout")
	require.Contains(t, doc.Paths, "/audit")
}
