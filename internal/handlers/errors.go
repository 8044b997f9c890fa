// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/superettejemai/backoffice/internal/services"
	"github.com/superettejemai/backoffice/internal/utils"
)

// respondServiceError maps the domain error taxonomy onto HTTP. Anything
// unrecognized is an internal failure.
func respondServiceError(c *gin.Context, err error) {
	var productNotFound *services.ProductNotFoundError
	var stockInsufficient *services.StockInsufficientError
	var invalidTransition *services.InvalidTransitionError

	switch {
	case errors.Is(err, services.ErrEmptyOrder),
		errors.Is(err, services.ErrEmptyFactureItems),
		errors.Is(err, services.ErrNegativeUnitCost):
		utils.BadRequestResponse(c, err.Error(), nil)
	case errors.As(err, &productNotFound):
		utils.NotFoundResponse(c, err.Error())
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrFactureNotFound),
		errors.Is(err, services.ErrUserNotFound):
		utils.NotFoundResponse(c, err.Error())
	case errors.As(err, &stockInsufficient):
		utils.ErrorResponse(c, http.StatusBadRequest, "STOCK_INSUFFICIENT", err.Error(), gin.H{
			"product_id": stockInsufficient.ProductID,
			"requested":  stockInsufficient.Requested,
			"available":  stockInsufficient.Available,
		})
	case errors.As(err, &invalidTransition):
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_TRANSITION", err.Error(), gin.H{
			"facture_id": invalidTransition.FactureID,
			"status":     invalidTransition.Status,
			"operation":  invalidTransition.Operation,
		})
	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}
