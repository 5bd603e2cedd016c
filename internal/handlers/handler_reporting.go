package handlers

import (
	"net/http"
	"time"

	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
	portssvc "github.com/atosolution/cash_treasury_backend/internal/core/ports/services"
	"github.com/atosolution/cash_treasury_backend/internal/dto"
	"github.com/atosolution/cash_treasury_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles the treasury report endpoints.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers reporting routes nested under a company.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/cash-book", h.cashBook)
		reports.GET("/transaction-analysis", h.transactionAnalysis)
	}
}

// parseReportDate parses an optional YYYY-MM-DD query value.
func parseReportDate(c *gin.Context, value *string, name string) (*time.Time, bool) {
	if value == nil {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", *value)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + name + ", expected YYYY-MM-DD"})
		return nil, false
	}
	return &t, true
}

// cashBook godoc
// @Summary Cash book report
// @Description Retrieves cash/bank movements with a running balance, restricted to the user's granted journals.
// @Tags reports
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   journalID query string false "Filter by journal"
// @Param   fromDate query string false "Entry date lower bound (YYYY-MM-DD)"
// @Param   toDate query string false "Entry date upper bound (YYYY-MM-DD)"
// @Success 200 {object} dto.CashBookResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/reports/cash-book [get]
func (h *reportingHandler) cashBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.CashBookParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	filter := domain.CashBookFilter{
		CompanyID: companyID,
		JournalID: params.JournalID,
	}
	var okDate bool
	if filter.FromDate, okDate = parseReportDate(c, params.FromDate, "fromDate"); !okDate {
		return
	}
	if filter.ToDate, okDate = parseReportDate(c, params.ToDate, "toDate"); !okDate {
		return
	}

	rows, err := h.reportingService.CashBook(c.Request.Context(), filter, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate cash book")
		return
	}

	c.JSON(http.StatusOK, dto.ToCashBookResponse(rows))
}

// transactionAnalysis godoc
// @Summary Transaction analysis report
// @Description Retrieves the counter lines of posted treasury entries with a running cash balance.
// @Tags reports
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   journalID query string false "Filter by journal"
// @Param   direction query string false "INBOUND or OUTBOUND"
// @Param   fromDate query string false "Entry date lower bound (YYYY-MM-DD)"
// @Param   toDate query string false "Entry date upper bound (YYYY-MM-DD)"
// @Success 200 {object} dto.TransactionAnalysisResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/reports/transaction-analysis [get]
func (h *reportingHandler) transactionAnalysis(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.TransactionAnalysisParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	filter := domain.TransactionAnalysisFilter{
		CompanyID: companyID,
		JournalID: params.JournalID,
	}
	if params.Direction != nil {
		direction := domain.PaymentDirection(*params.Direction)
		if direction != domain.Inbound && direction != domain.Outbound {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "direction must be INBOUND or OUTBOUND"})
			return
		}
		filter.Direction = &direction
	}
	var okDate bool
	if filter.FromDate, okDate = parseReportDate(c, params.FromDate, "fromDate"); !okDate {
		return
	}
	if filter.ToDate, okDate = parseReportDate(c, params.ToDate, "toDate"); !okDate {
		return
	}

	rows, err := h.reportingService.TransactionAnalysis(c.Request.Context(), filter, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate transaction analysis")
		return
	}

	if rows == nil {
		rows = []domain.TransactionAnalysisRow{}
	}
	c.JSON(http.StatusOK, dto.TransactionAnalysisResponse{Rows: rows})
}
