package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
	portsrepo "github.com/atosolution/cash_treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/atosolution/cash_treasury_backend/internal/core/ports/services"
	"github.com/atosolution/cash_treasury_backend/internal/dto"
	"github.com/atosolution/cash_treasury_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// cashDocumentHandler handles HTTP requests for one payment direction. The
// same handler serves both cash-in and cash-out; the direction only changes
// the route names and which workflow actions are exposed.
type cashDocumentHandler struct {
	docService portssvc.CashDocumentSvcFacade
	direction  domain.PaymentDirection
}

// newCashDocumentHandler creates a new cashDocumentHandler.
func newCashDocumentHandler(ds portssvc.CashDocumentSvcFacade, direction domain.PaymentDirection) *cashDocumentHandler {
	return &cashDocumentHandler{
		docService: ds,
		direction:  direction,
	}
}

// registerCashDocumentRoutes registers document routes nested under a
// company for one direction, e.g. /companies/:companyID/cash-in.
func registerCashDocumentRoutes(rg *gin.RouterGroup, segment string, direction domain.PaymentDirection, docService portssvc.CashDocumentSvcFacade) {
	h := newCashDocumentHandler(docService, direction)

	docs := rg.Group("/" + segment)
	{
		docs.GET("", h.listDocuments)
		docs.POST("", h.createDocument)
		docs.GET("/:documentID", h.getDocument)
		docs.PUT("/:documentID", h.updateDocument)
		docs.DELETE("/:documentID", h.deleteDocument)
		docs.GET("/:documentID/history", h.listHistory)

		docs.POST("/:documentID/clear-allocations", h.clearAllocations)
		docs.POST("/:documentID/approve", h.approve)
		docs.POST("/:documentID/back-to-draft", h.backToDraft)
		docs.POST("/:documentID/settlement-date", h.recordSettlementDate)
		docs.POST("/:documentID/cancel-to-draft", h.resetToDraft)

		if direction == domain.Inbound {
			docs.POST("/:documentID/load-invoices", h.loadAllocations)
			docs.POST("/:documentID/post", h.post)
		} else {
			docs.POST("/:documentID/load-bills", h.loadAllocations)
			docs.POST("/:documentID/review", h.submitForReview)
			docs.POST("/:documentID/pay", h.post)
		}
	}
}

// parseListFilter turns the query parameters into a repository filter.
func (h *cashDocumentHandler) parseListFilter(c *gin.Context, params dto.ListCashDocumentsParams) (portsrepo.DocumentListFilter, bool) {
	filter := portsrepo.DocumentListFilter{
		CompanyID: c.Param("companyID"),
		Direction: h.direction,
		PartnerID: params.PartnerID,
	}
	if params.State != nil {
		state := domain.DocumentState(*params.State)
		filter.State = &state
	}
	if params.JournalID != nil {
		filter.JournalIDs = []string{*params.JournalID}
	}
	if params.FromDate != nil {
		from, err := time.Parse("2006-01-02", *params.FromDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid fromDate, expected YYYY-MM-DD"})
			return filter, false
		}
		filter.FromDate = &from
	}
	if params.ToDate != nil {
		to, err := time.Parse("2006-01-02", *params.ToDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid toDate, expected YYYY-MM-DD"})
			return filter, false
		}
		filter.ToDate = &to
	}
	return filter, true
}

// listDocuments godoc
// @Summary List cash documents
// @Description Retrieves a paginated list of documents in the user's granted journals.
// @Tags cash-documents
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   limit query int false "Page size (default 20)"
// @Param   nextToken query string false "Pagination token"
// @Param   state query string false "Filter by state"
// @Param   partnerID query string false "Filter by partner"
// @Param   journalID query string false "Filter by journal"
// @Param   fromDate query string false "Document date lower bound (YYYY-MM-DD)"
// @Param   toDate query string false "Document date upper bound (YYYY-MM-DD)"
// @Success 200 {object} dto.ListCashDocumentsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/cash-in [get]
func (h *cashDocumentHandler) listDocuments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListCashDocumentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	filter, ok := h.parseListFilter(c, params)
	if !ok {
		return
	}

	documents, nextToken, err := h.docService.ListDocuments(c.Request.Context(), filter, params.Limit, params.NextToken, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list documents")
		return
	}

	c.JSON(http.StatusOK, dto.ToListCashDocumentsResponse(documents, nextToken))
}

// createDocument godoc
// @Summary Create a draft document
// @Description Creates a new draft cash document in one of the user's granted journals.
// @Tags cash-documents
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   document body dto.CreateCashDocumentRequest true "Document details"
// @Success 201 {object} dto.CashDocumentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/cash-in [post]
func (h *cashDocumentHandler) createDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateCashDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	doc, err := h.docService.CreateDocument(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create document")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCashDocumentResponse(doc))
}

// getDocument godoc
// @Summary Get a document
// @Description Retrieves a cash document with its lines.
// @Tags cash-documents
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   documentID path string true "Document ID"
// @Success 200 {object} dto.CashDocumentResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/cash-in/{documentID} [get]
func (h *cashDocumentHandler) getDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	documentID := c.Param("documentID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	doc, err := h.docService.GetDocumentByID(c.Request.Context(), companyID, documentID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve document")
		return
	}

	c.JSON(http.StatusOK, dto.ToCashDocumentResponse(doc))
}

// updateDocument godoc
// @Summary Update a document
// @Description Applies a field update. Which fields are accepted depends on the document state and the caller's role.
// @Tags cash-documents
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   documentID path string true "Document ID"
// @Param   document body dto.UpdateCashDocumentRequest true "Fields to update"
// @Success 200 {object} dto.CashDocumentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Document is not editable in its current state"
// @Security BearerAuth
// @Router /companies/{companyID}/cash-in/{documentID} [put]
func (h *cashDocumentHandler) updateDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	documentID := c.Param("documentID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateCashDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	doc, warnings, err := h.docService.UpdateDocument(c.Request.Context(), companyID, documentID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update document")
		return
	}

	resp := dto.ToCashDocumentResponse(doc)
	resp.Warnings = warnings
	c.JSON(http.StatusOK, resp)
}

// deleteDocument godoc
// @Summary Delete a draft document
// @Description Removes a draft document and its lines.
// @Tags cash-documents
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   documentID path string true "Document ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Only drafts can be deleted"
// @Security BearerAuth
// @Router /companies/{companyID}/cash-in/{documentID} [delete]
func (h *cashDocumentHandler) deleteDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	documentID := c.Param("documentID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.docService.DeleteDocument(c.Request.Context(), companyID, documentID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete document")
		return
	}

	c.Status(http.StatusNoContent)
}

// listHistory godoc
// @Summary Get a document's history
// @Description Retrieves the history entries of a document, oldest first.
// @Tags cash-documents
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   documentID path string true "Document ID"
// @Success 200 {array} dto.DocumentNoteResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/cash-in/{documentID}/history [get]
func (h *cashDocumentHandler) listHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	documentID := c.Param("documentID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	notes, err := h.docService.ListDocumentHistory(c.Request.Context(), companyID, documentID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve document history")
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentNoteResponses(notes))
}

// loadAllocations godoc
// @Summary Load open invoices into a draft
// @Description Replaces the document's allocation lines with the partner's open invoices or bills.
// @Tags cash-documents
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   documentID path string true "Document ID"
// @Success 200 {object} dto.CashDocumentResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/cash-in/{documentID}/load-invoices [post]
func (h *cashDocumentHandler) loadAllocations(c *gin.Context) {
	h.workflowAction(c, h.docService.LoadAllocations, "Failed to load allocations")
}

// clearAllocations godoc
// @Summary Clear loaded allocations
// @Description Drops the loaded allocation lines, reverting to manual amount entry.
// @Tags cash-documents
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   documentID path string true "Document ID"
// @Success 200 {object} dto.CashDocumentResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/cash-in/{documentID}/clear-allocations [post]
func (h *cashDocumentHandler) clearAllocations(c *gin.Context) {
	h.workflowAction(c, h.docService.ClearAllocations, "Failed to clear allocations")
}

// submitForReview godoc
// @Summary Submit for review
// @Description Moves an outbound draft to the reviewed state.
// @Tags cash-documents
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   documentID path string true "Document ID"
// @Success 200 {object} dto.CashDocumentResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/cash-out/{documentID}/review [post]
func (h *cashDocumentHandler) submitForReview(c *gin.Context) {
	h.workflowAction(c, h.docService.SubmitForReview, "Failed to submit document for review")
}

// approve godoc
// @Summary Approve a document
// @Description Moves a document to the approved state and clears its settlement date.
// @Tags cash-documents
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   documentID path string true "Document ID"
// @Success 200 {object} dto.CashDocumentResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/cash-in/{documentID}/approve [post]
func (h *cashDocumentHandler) approve(c *gin.Context) {
	h.workflowAction(c, h.docService.Approve, "Failed to approve document")
}

// backToDraft godoc
// @Summary Send back to draft
// @Description Undoes the last workflow step, returning the document to draft.
// @Tags cash-documents
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   documentID path string true "Document ID"
// @Success 200 {object} dto.CashDocumentResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/cash-in/{documentID}/back-to-draft [post]
func (h *cashDocumentHandler) backToDraft(c *gin.Context) {
	h.workflowAction(c, h.docService.BackToDraft, "Failed to send document back to draft")
}

// recordSettlementDate godoc
// @Summary Record the settlement date
// @Description Sets the actual collection/payment date on an approved document.
// @Tags cash-documents
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   documentID path string true "Document ID"
// @Param   settlement body dto.RecordSettlementDateRequest true "Settlement date"
// @Success 200 {object} dto.CashDocumentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/cash-in/{documentID}/settlement-date [post]
func (h *cashDocumentHandler) recordSettlementDate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	documentID := c.Param("documentID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.RecordSettlementDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	doc, err := h.docService.RecordSettlementDate(c.Request.Context(), companyID, documentID, req.SettlementDate, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record settlement date")
		return
	}

	c.JSON(http.StatusOK, dto.ToCashDocumentResponse(doc))
}

// post godoc
// @Summary Post a document
// @Description Runs the posting engine: document number, balanced ledger entry, reconciliation and the move to the terminal state.
// @Tags cash-documents
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   documentID path string true "Document ID"
// @Success 200 {object} dto.CashDocumentResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/cash-in/{documentID}/post [post]
func (h *cashDocumentHandler) post(c *gin.Context) {
	h.workflowAction(c, h.docService.Post, "Failed to post document")
}

// resetToDraft godoc
// @Summary Cancel a posted document back to draft
// @Description Reverses the posted entry and returns the document to draft. Super approver only.
// @Tags cash-documents
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   documentID path string true "Document ID"
// @Success 200 {object} dto.CashDocumentResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/cash-in/{documentID}/cancel-to-draft [post]
func (h *cashDocumentHandler) resetToDraft(c *gin.Context) {
	h.workflowAction(c, h.docService.ResetToDraft, "Failed to cancel document to draft")
}

// workflowAction runs a bodyless document action and renders the result.
func (h *cashDocumentHandler) workflowAction(
	c *gin.Context,
	action func(ctx context.Context, companyID, documentID, userID string) (*domain.CashDocument, error),
	fallback string,
) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	documentID := c.Param("documentID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	doc, err := action(c.Request.Context(), companyID, documentID, userID)
	if err != nil {
		respondServiceError(c, logger, err, fallback)
		return
	}

	c.JSON(http.StatusOK, dto.ToCashDocumentResponse(doc))
}
