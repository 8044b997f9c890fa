// internal/services/errors.go
package services

import (
	"errors"
	"fmt"

	"github.com/superettejemai/backoffice/internal/models"
)

var (
	ErrEmptyOrder        = errors.New("order must contain at least one item")
	ErrEmptyFactureItems = errors.New("facture must contain at least one item")
	ErrNegativeUnitCost  = errors.New("unit cost cannot be negative")
	ErrOrderNotFound     = errors.New("order not found")
	ErrFactureNotFound   = errors.New("facture not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrBadCredentials    = errors.New("invalid username or password")
	ErrUserSuspended     = errors.New("user account is suspended")
)

// ProductNotFoundError aborts the enclosing transaction when a line
// references a product that does not exist (or was soft-deleted).
type ProductNotFoundError struct {
	ProductID uint
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

// StockInsufficientError carries both sides of the failed comparison so the
// caller can show the shortfall. Requested quantities are never clamped.
type StockInsufficientError struct {
	ProductID uint
	Requested int
	Available int
}

func (e *StockInsufficientError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// InvalidTransitionError is returned when a facture operation requires the
// draft state but the document is already terminal. The document is left
// unchanged.
type InvalidTransitionError struct {
	FactureID uint
	Status    models.FactureStatus
	Operation string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("facture %d is %s, cannot %s", e.FactureID, e.Status, e.Operation)
}
