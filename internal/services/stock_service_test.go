// internal/services/stock_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestReserveExactStock(t *testing.T) {
	db := setupTestDB(t)
	stockService := NewStockService()
	product := createTestProduct(t, db, "Lait", "1.200", 5)

	err := db.Transaction(func(tx *gorm.DB) error {
		return stockService.Reserve(tx, product.ID, 5)
	})
	require.NoError(t, err)

	assert.Equal(t, 0, productStock(t, db, product.ID))
}

func TestReserveMoreThanAvailable(t *testing.T) {
	db := setupTestDB(t)
	stockService := NewStockService()
	product := createTestProduct(t, db, "Lait", "1.200", 5)

	err := db.Transaction(func(tx *gorm.DB) error {
		return stockService.Reserve(tx, product.ID, 6)
	})

	var stockErr *StockInsufficientError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, product.ID, stockErr.ProductID)
	assert.Equal(t, 6, stockErr.Requested)
	assert.Equal(t, 5, stockErr.Available)

	assert.Equal(t, 5, productStock(t, db, product.ID), "failed reserve must not touch stock")
}

func TestReserveUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	stockService := NewStockService()

	err := db.Transaction(func(tx *gorm.DB) error {
		return stockService.Reserve(tx, 999, 1)
	})

	var notFound *ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, uint(999), notFound.ProductID)
}

func TestReleaseAddsStock(t *testing.T) {
	db := setupTestDB(t)
	stockService := NewStockService()
	product := createTestProduct(t, db, "Lait", "1.200", 2)

	err := db.Transaction(func(tx *gorm.DB) error {
		return stockService.Release(tx, product.ID, 10)
	})
	require.NoError(t, err)

	assert.Equal(t, 12, productStock(t, db, product.ID))
}

func TestReleaseUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	stockService := NewStockService()

	err := db.Transaction(func(tx *gorm.DB) error {
		return stockService.Release(tx, 999, 1)
	})

	var notFound *ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestReserveThenReleaseRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	stockService := NewStockService()
	product := createTestProduct(t, db, "Lait", "1.200", 8)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := stockService.Reserve(tx, product.ID, 3); err != nil {
			return err
		}
		return stockService.Release(tx, product.ID, 3)
	})
	require.NoError(t, err)

	assert.Equal(t, 8, productStock(t, db, product.ID))
}
