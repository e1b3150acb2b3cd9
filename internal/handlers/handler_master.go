package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kicho-app/kicho_backend/internal/core/domain"
	portssvc "github.com/kicho-app/kicho_backend/internal/core/ports/services"
	"github.com/kicho-app/kicho_backend/internal/dto"
	"github.com/kicho-app/kicho_backend/internal/middleware"
)

// masterHandler handles the master-data endpoints owned by the posting engine.
type masterHandler struct {
	masterService portssvc.MasterSvcFacade
}

func newMasterHandler(masterService portssvc.MasterSvcFacade) *masterHandler {
	return &masterHandler{
		masterService: masterService,
	}
}

// RegisterMasterRoutes registers master-data endpoints under the given group.
func RegisterMasterRoutes(rg *gin.RouterGroup, masterService portssvc.MasterSvcFacade) {
	h := newMasterHandler(masterService)
	masters := rg.Group("/masters")
	{
		masters.GET("/accounts", h.listAccounts)
		masters.GET("/:kind/:code/deletable", h.checkDeletable)
		masters.DELETE("/:kind/:code", h.deleteMaster)
		masters.PUT("/accounts/:code", h.updateAccount)
		masters.PUT("/:kind/:code/parent", h.reparentMaster)
	}
}

// parseMasterKind validates the :kind path segment.
func parseMasterKind(kindStr string) (domain.MasterKind, bool) {
	switch kind := domain.MasterKind(kindStr); kind {
	case domain.MasterAccount, domain.MasterPartner, domain.MasterDepartment, domain.MasterAnalysisCode:
		return kind, true
	default:
		return "", false
	}
}

// listAccounts godoc
// @Summary List active accounts
// @Description Returns every active account ordered by code, for line entry and default tax resolution
// @Tags masters
// @Produce  json
// @Success 200 {array} dto.AccountResponse
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Router /masters/accounts [get]
func (h *masterHandler) listAccounts(c *gin.Context) {
	accounts, err := h.masterService.ListActiveAccounts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.AccountResponse, len(accounts))
	for i := range accounts {
		resp[i] = dto.ToAccountResponse(&accounts[i])
	}
	c.JSON(http.StatusOK, resp)
}

// checkDeletable godoc
// @Summary Check whether a master record can be deleted
// @Description Reports whether any persisted journal detail line still references the code. Advisory: the delete re-checks under a lock.
// @Tags masters
// @Produce  json
// @Param   kind path string true "Master kind" Enums(accounts, partners, departments, analysis_codes)
// @Param   code path string true "Master code"
// @Success 200 {object} domain.DeleteCheck
// @Failure 400 {object} map[string]string "Unknown master kind"
// @Failure 500 {object} map[string]string "Failed to check references"
// @Router /masters/{kind}/{code}/deletable [get]
func (h *masterHandler) checkDeletable(c *gin.Context) {
	kind, ok := parseMasterKind(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown master kind"})
		return
	}

	check, err := h.masterService.CanDeleteMaster(c.Request.Context(), kind, c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, check)
}

// deleteMaster godoc
// @Summary Delete a master record
// @Description Deletes a master row. Blocked with a conflict while journal detail lines still reference it.
// @Tags masters
// @Produce  json
// @Param   kind path string true "Master kind" Enums(accounts, partners, departments, analysis_codes)
// @Param   code path string true "Master code"
// @Success 204 "Deleted"
// @Failure 400 {object} map[string]string "Unknown master kind"
// @Failure 404 {object} map[string]string "Master not found"
// @Failure 409 {object} map[string]string "Master is still referenced"
// @Failure 500 {object} map[string]string "Failed to delete master"
// @Router /masters/{kind}/{code} [delete]
func (h *masterHandler) deleteMaster(c *gin.Context) {
	kind, ok := parseMasterKind(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown master kind"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.masterService.DeleteMaster(c.Request.Context(), kind, c.Param("code"), userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// updateAccount godoc
// @Summary Update an account
// @Description Versioned partial update. A stale version is rejected with a conflict and the caller re-reads before retrying.
// @Tags masters
// @Accept  json
// @Produce  json
// @Param   code path string true "Account code"
// @Param   account body dto.UpdateAccountRequest true "Fields to update plus the expected version"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Version conflict"
// @Failure 500 {object} map[string]string "Failed to update account"
// @Router /masters/accounts/{code} [put]
func (h *masterHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	updateReq := dto.UpdateAccountRequest{}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		logger.Warn("Failed to bind JSON for updateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.masterService.UpdateAccount(c.Request.Context(), c.Param("code"), updateReq, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// reparentMaster godoc
// @Summary Move a node in a master hierarchy
// @Description Re-parents an account or analysis code. Moves that would create a cycle are rejected.
// @Tags masters
// @Accept  json
// @Produce  json
// @Param   kind path string true "Master kind" Enums(accounts, analysis_codes)
// @Param   code path string true "Master code"
// @Param   parent body dto.ReparentMasterRequest true "New parent, or null for root"
// @Success 204 "Re-parented"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Master not found"
// @Failure 409 {object} map[string]string "Move would create a cycle"
// @Failure 500 {object} map[string]string "Failed to re-parent master"
// @Router /masters/{kind}/{code}/parent [put]
func (h *masterHandler) reparentMaster(c *gin.Context) {
	kind, ok := parseMasterKind(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown master kind"})
		return
	}

	reparentReq := dto.ReparentMasterRequest{}
	if err := c.ShouldBindJSON(&reparentReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.masterService.ReparentMaster(c.Request.Context(), kind, c.Param("code"), reparentReq.ParentCode, userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
