// internal/handlers/admin.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/superettejemai/backoffice/internal/services"
	"github.com/superettejemai/backoffice/internal/utils"
)

type AdminHandler struct {
	auditService  *services.AuditService
	backupService *services.BackupService
}

func NewAdminHandler(auditService *services.AuditService, backupService *services.BackupService) *AdminHandler {
	return &AdminHandler{
		auditService:  auditService,
		backupService: backupService,
	}
}

// GET /audit-logs
func (h *AdminHandler) GetAuditLogs(c *gin.Context) {
	params := services.AuditQueryParams{
		PaginationParams: utils.GetPaginationParams(c),
		Action:           c.Query("action"),
	}

	if actorIDStr := c.Query("actor_id"); actorIDStr != "" {
		if actorID, err := strconv.ParseUint(actorIDStr, 10, 64); err == nil {
			id := uint(actorID)
			params.ActorID = &id
		}
	}

	entries, total, err := h.auditService.List(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(entries, total, params.PaginationParams)
	utils.PaginatedResponse(c, result)
}

// POST /admin/backup
func (h *AdminHandler) CreateBackup(c *gin.Context) {
	actor, exists := utils.GetActorFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	backup, err := h.backupService.Export()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	upload, _ := strconv.ParseBool(c.DefaultQuery("upload", "false"))
	if upload {
		key, err := h.backupService.Upload(backup)
		if err != nil {
			utils.InternalErrorResponse(c, err.Error())
			return
		}
		h.auditService.Record(actor, "backup.upload", "backup uploaded to "+key)
		utils.SuccessResponse(c, gin.H{
			"message": "Backup uploaded",
			"key":     key,
		})
		return
	}

	h.auditService.Record(actor, "backup.export", "backup exported")
	utils.SuccessResponse(c, gin.H{
		"backup": backup,
	})
}
