// internal/services/service_test.go
package services

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/superettejemai/backoffice/internal/models"
	"github.com/superettejemai/backoffice/internal/utils"
)

// setupTestDB opens a throwaway sqlite database. _txlock=immediate makes
// concurrent transactions queue at BEGIN, which stands in for the row-level
// locking the postgres dialect uses in production.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?_busy_timeout=10000&_txlock=immediate",
		filepath.Join(t.TempDir(), "test.db"))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Facture{},
		&models.FactureItem{},
		&models.AuditLog{},
	))

	return db
}

func testActor() models.Actor {
	return models.Actor{ID: 1, Role: models.UserRoleCashier, Name: "caissier"}
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, price string, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:     name,
		Category: "grocery",
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func productStock(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()

	var product models.Product
	require.NoError(t, db.First(&product, id).Error)
	return product.Stock
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	return decimal.RequireFromString(s)
}

func defaultPagination() utils.PaginationParams {
	return utils.PaginationParams{Page: 1, Limit: 20}
}

func searchPagination(term string) utils.PaginationParams {
	params := defaultPagination()
	params.Search = term
	return params
}
