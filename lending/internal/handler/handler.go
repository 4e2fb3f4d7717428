package handler

import (
	"net/http"
	"time"

	"github.com/Astemirdum/lending-service/lending/internal/errs"
	"github.com/Astemirdum/lending-service/lending/internal/model"
	_ "github.com/Astemirdum/lending-service/lending/swagger"
	mw "github.com/Astemirdum/lending-service/pkg/middleware"
	"github.com/Astemirdum/lending-service/pkg/validate"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

//go:generate swag init -g handler.go -d ./,../model -o ../../swagger --outputTypes go

type Handler struct {
	loanSvc     LoanService
	auditSvc    AuditService
	sequenceSvc SequenceService
	log         *zap.Logger
}

func New(loanSvc LoanService, auditSvc AuditService, sequenceSvc SequenceService, log *zap.Logger) *Handler {
	return &Handler{
		loanSvc:     loanSvc,
		auditSvc:    auditSvc,
		sequenceSvc: sequenceSvc,
		log:         log.Named("handler"),
	}
}

// NewRouter builds the HTTP API.
//
// @title Lending API
// @version 1.0
// @description Loan lifecycle and audit trail.
// @BasePath /api/v1
func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.HideBanner = true
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, mw.XUserNameHeader},
	}))

	base := e.Group("", mw.NewRateLimiter(rate.Limit(baseRPS)))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestID(),
		mw.ActorContext,
		middleware.RequestLoggerWithConfig(mw.RequestLoggerConfig(h.log)),
		mw.NewRateLimiter(rate.Limit(apiRPS)),
	)

	loans := api.Group("/loans")
	loans.POST("/checkout", h.Checkout)
	loans.GET("", h.ListLoans)
	loans.GET("/overdue", h.ListOverdue)
	loans.GET("/count", h.CountLoans)
	loans.GET("/stats", h.LoanStatistics)
	loans.GET("/:id", h.GetLoan)
	loans.POST("/:id/return", h.Return)
	loans.POST("/:id/extend", h.Extend)
	loans.DELETE("/:id", h.Delete)

	api.POST("/items/:itemId/return", h.ReturnByItem)
	api.GET("/items/:itemId/availability", h.ItemAvailability)
	api.GET("/patrons/:patronId/loan-counts", h.PatronLoanCounts)

	api.GET("/audit", h.ListAudit)
	api.GET("/audit/stats", h.AuditStatistics)

	api.GET("/sequences/:name", h.GetSequence)
	api.GET("/sequences/:name/preview", h.PreviewSequence)
	api.PUT("/sequences/:name", h.ConfigureSequence)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// httpError maps a domain error kind onto a response status.
func (h *Handler) httpError(err error) *echo.HTTPError {
	code := http.StatusInternalServerError
	switch errs.KindOf(err) {
	case errs.KindNotFound:
		code = http.StatusNotFound
	case errs.KindInvalidState, errs.KindAlreadyReturned, errs.KindItemNotAvailable:
		code = http.StatusConflict
	case errs.KindPatronNotEligible, errs.KindInvalidDate:
		code = http.StatusUnprocessableEntity
	case errs.KindValidation:
		code = http.StatusBadRequest
	case errs.KindAllocationFailure:
		code = http.StatusServiceUnavailable
	case errs.KindInternal, errs.KindAuditWriteFailure:
		h.log.Error("request failed", zap.Error(err))
	}
	return echo.NewHTTPError(code, err.Error())
}

func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

func queryUUID(c echo.Context, name string) (*uuid.UUID, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return &id, nil
}

// queryTime accepts RFC 3339 or a plain date. A plain date used as an upper bound
// covers the whole day.
func queryTime(c echo.Context, name string, endOfDay bool) (*time.Time, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Second)
	}
	return &t, nil
}

func queryStatus(c echo.Context) (model.LoanStatus, error) {
	v := c.QueryParam("status")
	if v == "" {
		return "", nil
	}
	st, err := model.ParseLoanStatus(v)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return st, nil
}

// Checkout godoc
// @Summary Check an item out to a patron
// @Tags loans
// @Accept json
// @Produce json
// @Param X-User-Name header string false "actor"
// @Param request body model.CheckoutRequest true "checkout"
// @Success 201 {object} model.Loan
// @Failure 400,404,409,422,503 {object} echo.HTTPError
// @Router /loans/checkout [post]
func (h *Handler) Checkout(c echo.Context) error {
	var req model.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	loan, err := h.loanSvc.Checkout(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, loan)
}

// Return godoc
// @Summary Return a loan
// @Tags loans
// @Accept json
// @Produce json
// @Param id path string true "loan id"
// @Param request body model.ReturnRequest false "return"
// @Success 200 {object} model.Loan
// @Failure 400,404,409,422 {object} echo.HTTPError
// @Router /loans/{id}/return [post]
func (h *Handler) Return(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req model.ReturnRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	loan, err := h.loanSvc.Return(c.Request().Context(), id, req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, loan)
}

// ReturnByItem godoc
// @Summary Return the active loan of an item
// @Tags items
// @Accept json
// @Produce json
// @Param itemId path string true "catalog item id"
// @Param request body model.ReturnRequest false "return"
// @Success 200 {object} model.Loan
// @Failure 400,404,422 {object} echo.HTTPError
// @Router /items/{itemId}/return [post]
func (h *Handler) ReturnByItem(c echo.Context) error {
	itemID, err := pathUUID(c, "itemId")
	if err != nil {
		return err
	}
	var req model.ReturnRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	loan, err := h.loanSvc.ReturnByItem(c.Request().Context(), itemID, req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, loan)
}

// Extend godoc
// @Summary Move the due date of an active loan
// @Tags loans
// @Accept json
// @Produce json
// @Param id path string true "loan id"
// @Param request body model.ExtendRequest true "extension"
// @Success 200 {object} model.Loan
// @Failure 400,404,409 {object} echo.HTTPError
// @Router /loans/{id}/extend [post]
func (h *Handler) Extend(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req model.ExtendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	loan, err := h.loanSvc.Extend(c.Request().Context(), id, req.AdditionalDays)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, loan)
}

// Delete godoc
// @Summary Delete a loan record
// @Tags loans
// @Param id path string true "loan id"
// @Success 204
// @Failure 400,404 {object} echo.HTTPError
// @Router /loans/{id} [delete]
func (h *Handler) Delete(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.loanSvc.Delete(c.Request().Context(), id); err != nil {
		return h.httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetLoan godoc
// @Summary Get a loan
// @Tags loans
// @Produce json
// @Param id path string true "loan id"
// @Success 200 {object} model.LoanDetails
// @Failure 400,404 {object} echo.HTTPError
// @Router /loans/{id} [get]
func (h *Handler) GetLoan(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	loan, err := h.loanSvc.GetLoan(c.Request().Context(), id)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, loan)
}

// ListLoans godoc
// @Summary List loans, newest checkout first
// @Tags loans
// @Produce json
// @Param search query string false "loan number, patron or item text"
// @Param status query string false "active|returned|lost|overdue"
// @Param patronId query string false "patron id"
// @Param itemId query string false "catalog item id"
// @Param limit query int false "page size"
// @Param offset query int false "page offset"
// @Success 200 {array} model.LoanDetails
// @Failure 400 {object} echo.HTTPError
// @Router /loans [get]
func (h *Handler) ListLoans(c echo.Context) error {
	f := model.LoanFilter{Search: c.QueryParam("search")}
	err := echo.QueryParamsBinder(c).
		Int("limit", &f.Limit).
		Int("offset", &f.Offset).
		BindError()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if f.Status, err = queryStatus(c); err != nil {
		return err
	}
	if f.PatronID, err = queryUUID(c, "patronId"); err != nil {
		return err
	}
	if f.ItemID, err = queryUUID(c, "itemId"); err != nil {
		return err
	}
	loans, err := h.loanSvc.ListLoans(c.Request().Context(), f)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, loans)
}

// ListOverdue godoc
// @Summary List overdue loans, earliest due first
// @Tags loans
// @Produce json
// @Success 200 {array} model.LoanDetails
// @Router /loans/overdue [get]
func (h *Handler) ListOverdue(c echo.Context) error {
	loans, err := h.loanSvc.ListOverdue(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, loans)
}

// CountLoans godoc
// @Summary Count loans
// @Tags loans
// @Produce json
// @Param status query string false "active|returned|lost|overdue"
// @Success 200 {object} map[string]int
// @Router /loans/count [get]
func (h *Handler) CountLoans(c echo.Context) error {
	status, err := queryStatus(c)
	if err != nil {
		return err
	}
	n, err := h.loanSvc.CountLoans(c.Request().Context(), status)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]int{"count": n})
}

// LoanStatistics godoc
// @Summary Loan statistics
// @Tags loans
// @Produce json
// @Success 200 {object} model.LoanStatistics
// @Router /loans/stats [get]
func (h *Handler) LoanStatistics(c echo.Context) error {
	st, err := h.loanSvc.Statistics(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, st)
}

// PatronLoanCounts godoc
// @Summary Loan counts of a patron
// @Tags patrons
// @Produce json
// @Param patronId path string true "patron id"
// @Success 200 {object} model.PatronLoanCounts
// @Failure 400,404 {object} echo.HTTPError
// @Router /patrons/{patronId}/loan-counts [get]
func (h *Handler) PatronLoanCounts(c echo.Context) error {
	patronID, err := pathUUID(c, "patronId")
	if err != nil {
		return err
	}
	counts, err := h.loanSvc.PatronLoanCounts(c.Request().Context(), patronID)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, counts)
}

// ItemAvailability godoc
// @Summary Whether an item has no active loan
// @Tags items
// @Produce json
// @Param itemId path string true "catalog item id"
// @Success 200 {object} map[string]bool
// @Failure 400,404 {object} echo.HTTPError
// @Router /items/{itemId}/availability [get]
func (h *Handler) ItemAvailability(c echo.Context) error {
	itemID, err := pathUUID(c, "itemId")
	if err != nil {
		return err
	}
	ok, err := h.loanSvc.IsItemAvailable(c.Request().Context(), itemID)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"available": ok})
}

// ListAudit godoc
// @Summary Query the audit trail, newest first
// @Tags audit
// @Produce json
// @Param loanId query string false "loan id"
// @Param patronId query string false "patron id"
// @Param itemId query string false "catalog item id"
// @Param action query string false "checkout|return|extend|delete"
// @Param search query string false "free text"
// @Param from query string false "RFC 3339 or YYYY-MM-DD"
// @Param to query string false "RFC 3339 or YYYY-MM-DD"
// @Param limit query int false "page size"
// @Param offset query int false "page offset"
// @Success 200 {array} model.AuditLogEntry
// @Failure 400 {object} echo.HTTPError
// @Router /audit [get]
func (h *Handler) ListAudit(c echo.Context) error {
	f := model.AuditFilter{Search: c.QueryParam("search")}
	err := echo.QueryParamsBinder(c).
		Int("limit", &f.Limit).
		Int("offset", &f.Offset).
		BindError()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if a := c.QueryParam("action"); a != "" {
		if f.Action, err = model.ParseAction(a); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	if f.LoanID, err = queryUUID(c, "loanId"); err != nil {
		return err
	}
	if f.PatronID, err = queryUUID(c, "patronId"); err != nil {
		return err
	}
	if f.CatalogItemID, err = queryUUID(c, "itemId"); err != nil {
		return err
	}
	if f.From, err = queryTime(c, "from", false); err != nil {
		return err
	}
	if f.To, err = queryTime(c, "to", true); err != nil {
		return err
	}
	entries, err := h.auditSvc.List(c.Request().Context(), f)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, entries)
}

// AuditStatistics godoc
// @Summary Audit trail statistics
// @Tags audit
// @Produce json
// @Success 200 {object} model.AuditStatistics
// @Router /audit/stats [get]
func (h *Handler) AuditStatistics(c echo.Context) error {
	st, err := h.auditSvc.Statistics(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, st)
}

// GetSequence godoc
// @Summary Get a sequence counter
// @Tags sequences
// @Produce json
// @Param name path string true "sequence name"
// @Success 200 {object} model.SequenceCounter
// @Router /sequences/{name} [get]
func (h *Handler) GetSequence(c echo.Context) error {
	counter, err := h.sequenceSvc.Counter(c.Request().Context(), c.Param("name"))
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, counter)
}

// PreviewSequence godoc
// @Summary Preview the next id of a sequence
// @Tags sequences
// @Produce json
// @Param name path string true "sequence name"
// @Success 200 {object} model.SequencePreview
// @Router /sequences/{name}/preview [get]
func (h *Handler) PreviewSequence(c echo.Context) error {
	p, err := h.sequenceSvc.Preview(c.Request().Context(), c.Param("name"))
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, p)
}

// ConfigureSequence godoc
// @Summary Set the id template of a sequence
// @Tags sequences
// @Accept json
// @Produce json
// @Param name path string true "sequence name"
// @Success 200 {object} model.SequenceCounter
// @Failure 400 {object} echo.HTTPError
// @Router /sequences/{name} [put]
func (h *Handler) ConfigureSequence(c echo.Context) error {
	var req struct {
		Format string `json:"format" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	counter, err := h.sequenceSvc.Configure(c.Request().Context(), c.Param("name"), req.Format)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, counter)
}
