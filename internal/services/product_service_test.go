// internal/services/product_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/superettejemai/backoffice/internal/models"
)

func newProductService(db *gorm.DB) *ProductService {
	return NewProductService(db, NewAuditService(db))
}

func TestCreateProduct(t *testing.T) {
	db := setupTestDB(t)
	productService := newProductService(db)

	product, err := productService.CreateProduct(testActor(), &CreateProductRequest{
		Name:      "Yaourt nature",
		Barcode:   "6194000001234",
		Category:  "dairy",
		Price:     dec(t, "0.850"),
		CostPrice: dec(t, "0.600"),
		Stock:     24,
	})
	require.NoError(t, err)
	assert.NotZero(t, product.ID)
	assert.True(t, product.Price.Equal(dec(t, "0.850")))
	assert.Equal(t, 24, product.Stock)
}

func TestCreateProductNegativePrice(t *testing.T) {
	db := setupTestDB(t)
	productService := newProductService(db)

	_, err := productService.CreateProduct(testActor(), &CreateProductRequest{
		Name:  "Yaourt nature",
		Price: dec(t, "-1"),
	})
	require.Error(t, err)
}

func TestUpdateProductPatchesOnlyGivenFields(t *testing.T) {
	db := setupTestDB(t)
	productService := newProductService(db)
	product := createTestProduct(t, db, "Huile 1L", "4.500", 10)

	newPrice := dec(t, "4.900")
	updated, err := productService.UpdateProduct(testActor(), product.ID, &UpdateProductRequest{
		Price: &newPrice,
	})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(newPrice))
	assert.Equal(t, "Huile 1L", updated.Name)
	assert.Equal(t, 10, productStock(t, db, product.ID), "stock is not editable through the catalog")
}

func TestUpdateProductNotFound(t *testing.T) {
	db := setupTestDB(t)
	productService := newProductService(db)

	_, err := productService.UpdateProduct(testActor(), 999, &UpdateProductRequest{})
	var notFound *ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestDeleteProductIsSoft(t *testing.T) {
	db := setupTestDB(t)
	productService := newProductService(db)
	product := createTestProduct(t, db, "Huile 1L", "4.500", 10)

	require.NoError(t, productService.DeleteProduct(testActor(), product.ID))

	_, err := productService.GetProduct(product.ID)
	var notFound *ProductNotFoundError
	require.ErrorAs(t, err, &notFound)

	var kept models.Product
	require.NoError(t, db.Unscoped().First(&kept, product.ID).Error)
	assert.True(t, kept.DeletedAt.Valid)
}

func TestSearchProducts(t *testing.T) {
	db := setupTestDB(t)
	productService := newProductService(db)

	createTestProduct(t, db, "Lait demi-ecreme", "1.350", 12)
	createTestProduct(t, db, "Lait entier", "1.450", 0)
	sugar := createTestProduct(t, db, "Sucre 1kg", "2.100", 30)
	sugar.Category = "pantry"
	require.NoError(t, db.Save(sugar).Error)

	products, total, err := productService.SearchProducts(ProductSearchParams{
		PaginationParams: defaultPagination(),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, products, 3)

	products, total, err = productService.SearchProducts(ProductSearchParams{
		PaginationParams: searchPagination("lait"),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	inStock := true
	products, total, err = productService.SearchProducts(ProductSearchParams{
		PaginationParams: searchPagination("lait"),
		InStock:          &inStock,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, products, 1)
	assert.Equal(t, "Lait demi-ecreme", products[0].Name)

	products, total, err = productService.SearchProducts(ProductSearchParams{
		PaginationParams: defaultPagination(),
		Category:         "pantry",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}
