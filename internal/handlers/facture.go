// internal/handlers/facture.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/superettejemai/backoffice/internal/models"
	"github.com/superettejemai/backoffice/internal/services"
	"github.com/superettejemai/backoffice/internal/utils"
)

type FactureHandler struct {
	factureService *services.FactureService
}

func NewFactureHandler(factureService *services.FactureService) *FactureHandler {
	return &FactureHandler{factureService: factureService}
}

// POST /factures
func (h *FactureHandler) CreateFacture(c *gin.Context) {
	actor, exists := utils.GetActorFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateFactureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	facture, err := h.factureService.CreateFacture(actor, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"facture": facture,
	})
}

// PUT /factures/:id
func (h *FactureHandler) UpdateFacture(c *gin.Context) {
	actor, exists := utils.GetActorFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid facture ID", nil)
		return
	}

	var req services.UpdateFactureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	facture, err := h.factureService.UpdateFacture(actor, uint(id), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Facture updated",
		"facture": facture,
	})
}

// POST /factures/:id/confirm
func (h *FactureHandler) ConfirmFacture(c *gin.Context) {
	actor, exists := utils.GetActorFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid facture ID", nil)
		return
	}

	facture, err := h.factureService.ConfirmFacture(actor, uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Facture confirmed, stock updated",
		"facture": facture,
	})
}

// POST /factures/:id/cancel
func (h *FactureHandler) CancelFacture(c *gin.Context) {
	actor, exists := utils.GetActorFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid facture ID", nil)
		return
	}

	facture, err := h.factureService.CancelFacture(actor, uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Facture cancelled",
		"facture": facture,
	})
}

// GET /factures
func (h *FactureHandler) ListFactures(c *gin.Context) {
	params := services.FactureListParams{
		PaginationParams: utils.GetPaginationParams(c),
	}

	if status := c.Query("status"); status != "" {
		factureStatus := models.FactureStatus(status)
		params.Status = &factureStatus
	}

	factures, total, err := h.factureService.ListFactures(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(factures, total, params.PaginationParams)
	utils.PaginatedResponse(c, result)
}

// GET /factures/:id
func (h *FactureHandler) GetFacture(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid facture ID", nil)
		return
	}

	facture, err := h.factureService.GetFacture(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"facture": facture,
	})
}
