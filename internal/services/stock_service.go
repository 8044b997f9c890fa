// internal/services/stock_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/superettejemai/backoffice/internal/models"
)

// StockService is the single gateway to the per-product stock counter.
// Both operations must be called inside the caller's transaction: they
// re-read the current stock under a row lock rather than trusting any
// previously fetched snapshot, so concurrent sales of the same product
// cannot both pass the availability check.
type StockService struct{}

func NewStockService() *StockService {
	return &StockService{}
}

// Reserve decrements the product's stock by quantity, or fails with
// StockInsufficientError without touching the row. It never partially
// fulfills a request.
func (s *StockService) Reserve(tx *gorm.DB, productID uint, quantity int) error {
	product, err := s.lockProduct(tx, productID)
	if err != nil {
		return err
	}

	if product.Stock < quantity {
		return &StockInsufficientError{
			ProductID: productID,
			Requested: quantity,
			Available: product.Stock,
		}
	}

	if err := tx.Model(&models.Product{}).Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity)).Error; err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	return nil
}

// Release increments the product's stock by quantity.
func (s *StockService) Release(tx *gorm.DB, productID uint, quantity int) error {
	if _, err := s.lockProduct(tx, productID); err != nil {
		return err
	}

	if err := tx.Model(&models.Product{}).Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity)).Error; err != nil {
		return fmt.Errorf("failed to increment stock: %w", err)
	}

	return nil
}

func (s *StockService) lockProduct(tx *gorm.DB, productID uint) (*models.Product, error) {
	var product models.Product
	if err := lockForUpdate(tx).First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ProductNotFoundError{ProductID: productID}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

// lockForUpdate adds SELECT ... FOR UPDATE on postgres. SQLite (used in
// tests) rejects the clause and serializes writers at BEGIN instead.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
