package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kicho-app/kicho_backend/internal/core/domain"
	portssvc "github.com/kicho-app/kicho_backend/internal/core/ports/services"
	"github.com/kicho-app/kicho_backend/internal/dto"
	"github.com/kicho-app/kicho_backend/internal/middleware"
)

// journalHandler handles HTTP requests related to journals.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: journalService,
	}
}

// RegisterJournalRoutes registers journal endpoints under the given group.
func RegisterJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)
	journals := rg.Group("/journals")
	{
		journals.POST("", h.createJournal)
		journals.GET("", h.listJournals)
		journals.GET("/next-number", h.previewNextNumber)
		journals.GET("/sequence-integrity", h.checkSequenceIntegrity)
		journals.GET("/:journalNumber", h.getJournal)
		journals.PUT("/:journalNumber", h.updateJournal)
		journals.DELETE("/:journalNumber", h.deleteJournal)
	}
}

// createJournal godoc
// @Summary Create a journal entry with its detail lines
// @Description Validates, allocates the next journal number for the date, and persists header and lines atomically
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journal body dto.CreateJournalRequest true "Journal and detail lines"
// @Success 201 {object} dto.JournalResponse "The created journal"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Journal does not balance"
// @Failure 500 {object} map[string]string "Failed to create journal"
// @Router /journals [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateJournalRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Warn("Failed to bind JSON for createJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	journal, err := h.journalService.CreateJournal(c.Request.Context(), createReq, creatorUserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// getJournal godoc
// @Summary Get a journal entry and its detail lines
// @Tags journals
// @Produce  json
// @Param   journalNumber path string true "15-digit journal number"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal"
// @Router /journals/{journalNumber} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	journalNumber := c.Param("journalNumber")

	journal, err := h.journalService.GetJournalByNumber(c.Request.Context(), journalNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// listJournals godoc
// @Summary List journal entries
// @Description Returns one page of journal headers, newest first, with a cursor for the next page
// @Tags journals
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list journals"
// @Router /journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.journalService.ListJournals(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// updateJournal godoc
// @Summary Update a journal entry
// @Description Patches header fields and fully replaces the detail line set. The journal number never changes.
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journalNumber path string true "15-digit journal number"
// @Param   journal body dto.UpdateJournalRequest true "Header patch and replacement lines"
// @Success 200 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 409 {object} map[string]string "Journal does not balance"
// @Failure 500 {object} map[string]string "Failed to update journal"
// @Router /journals/{journalNumber} [put]
func (h *journalHandler) updateJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalNumber := c.Param("journalNumber")

	updateReq := dto.UpdateJournalRequest{}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		logger.Warn("Failed to bind JSON for updateJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	journal, err := h.journalService.UpdateJournal(c.Request.Context(), journalNumber, updateReq, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// deleteJournal godoc
// @Summary Delete a journal entry
// @Description Removes the journal and all its detail lines atomically
// @Tags journals
// @Produce  json
// @Param   journalNumber path string true "15-digit journal number"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 500 {object} map[string]string "Failed to delete journal"
// @Router /journals/{journalNumber} [delete]
func (h *journalHandler) deleteJournal(c *gin.Context) {
	journalNumber := c.Param("journalNumber")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.journalService.DeleteJournal(c.Request.Context(), journalNumber, userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// previewNextNumber godoc
// @Summary Preview the next journal number for a date
// @Description Returns the number the next creation would most likely receive. Advisory only, never a reservation.
// @Tags journals
// @Produce  json
// @Param   date query string true "Journal date (YYYY-MM-DD)"
// @Success 200 {object} dto.NextNumberResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 500 {object} map[string]string "Failed to preview next number"
// @Router /journals/next-number [get]
func (h *journalHandler) previewNextNumber(c *gin.Context) {
	dateStr := c.Query("date")
	date, err := time.Parse(dto.JournalDateLayout, dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	number, err := h.journalService.PreviewNextNumber(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NextNumberResponse{JournalNumber: number})
}

// checkSequenceIntegrity godoc
// @Summary Audit journal numbers for gaps and duplicates
// @Description Read-only audit of committed numbers per date. Reports, never repairs.
// @Tags journals
// @Produce  json
// @Param   date query string false "Restrict the audit to one journal date (YYYY-MM-DD)"
// @Success 200 {object} dto.SequenceIntegrityResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 500 {object} map[string]string "Failed to audit sequences"
// @Router /journals/sequence-integrity [get]
func (h *journalHandler) checkSequenceIntegrity(c *gin.Context) {
	var date *time.Time
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse(dto.JournalDateLayout, dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		date = &parsed
	}

	anomalies, err := h.journalService.CheckSequenceIntegrity(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}

	if anomalies == nil {
		anomalies = []domain.SequenceAnomaly{}
	}
	c.JSON(http.StatusOK, dto.SequenceIntegrityResponse{Anomalies: anomalies})
}
