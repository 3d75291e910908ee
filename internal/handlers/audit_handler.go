package handlers

import (
	"net/http"
	"strconv"

	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/models"
	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/services"
	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// @Summary List Audit Logs
// @Description Paginated audit trail of logins and receipt changes
// @Tags Audit
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(50)
// @Param entity query string false "Receipt or User"
// @Param entity_id query int false "Entity ID"
// @Param action query string false "LOGIN, CREATE, UPDATE, VOID, RESTORE, EMAIL"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /audits [get]
func (h *AuditHandler) Index(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "50"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 50
	}
	entityID, _ := strconv.ParseUint(c.Query("entity_id"), 10, 32)

	logs, total, err := h.auditService.List(c.Request.Context(), services.AuditQuery{
		Entity:   c.Query("entity"),
		EntityID: uint(entityID),
		Action:   c.Query("action"),
		Limit:    perPage,
		Offset:   (page - 1) * perPage,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"audits": logs, "pagination": models.NewPagination(page, perPage, total)})
}
