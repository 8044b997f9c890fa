// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/superettejemai/backoffice/internal/models"
	"github.com/superettejemai/backoffice/internal/utils"
)

// ProductService owns the catalog. It never touches the stock counter
// directly: sales and deliveries go through StockService inside their own
// transactions.
type ProductService struct {
	db           *gorm.DB
	auditService *AuditService
}

type CreateProductRequest struct {
	Name      string          `json:"name" validate:"required,min=2,max=255"`
	Barcode   string          `json:"barcode,omitempty" validate:"omitempty,max=64"`
	Category  string          `json:"category,omitempty" validate:"omitempty,max=100"`
	Price     decimal.Decimal `json:"price" validate:"required"`
	CostPrice decimal.Decimal `json:"cost_price,omitempty"`
	Stock     int             `json:"stock,omitempty" validate:"min=0"`
}

type UpdateProductRequest struct {
	Name      string           `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Barcode   *string          `json:"barcode,omitempty"`
	Category  *string          `json:"category,omitempty"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	CostPrice *decimal.Decimal `json:"cost_price,omitempty"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	Category string
	InStock  *bool
}

func NewProductService(db *gorm.DB, auditService *AuditService) *ProductService {
	return &ProductService{db: db, auditService: auditService}
}

func (s *ProductService) CreateProduct(actor models.Actor, req *CreateProductRequest) (*models.Product, error) {
	if req.Price.IsNegative() || req.CostPrice.IsNegative() {
		return nil, errors.New("price and cost price cannot be negative")
	}

	product := &models.Product{
		Name:      req.Name,
		Barcode:   req.Barcode,
		Category:  req.Category,
		Price:     req.Price,
		CostPrice: req.CostPrice,
		Stock:     req.Stock,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.auditService.Record(actor, "product.create", fmt.Sprintf("product #%d %q", product.ID, product.Name))

	return product, nil
}

func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ProductNotFoundError{ProductID: id}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

// UpdateProduct edits catalog fields only. Stock is deliberately absent from
// the request: it moves through orders and confirmed factures.
func (s *ProductService) UpdateProduct(actor models.Actor, id uint, req *UpdateProductRequest) (*models.Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Barcode != nil {
		updates["barcode"] = *req.Barcode
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, errors.New("price cannot be negative")
		}
		updates["price"] = *req.Price
	}
	if req.CostPrice != nil {
		if req.CostPrice.IsNegative() {
			return nil, errors.New("cost price cannot be negative")
		}
		updates["cost_price"] = *req.CostPrice
	}

	if len(updates) > 0 {
		if err := s.db.Model(product).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	s.auditService.Record(actor, "product.update", fmt.Sprintf("product #%d edited", id))

	return product, nil
}

// DeleteProduct removes the product from the catalog. The delete is soft:
// historical order and facture lines keep pointing at the row.
func (s *ProductService) DeleteProduct(actor models.Actor, id uint) error {
	product, err := s.GetProduct(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.auditService.Record(actor, "product.delete", fmt.Sprintf("product #%d %q removed from catalog", id, product.Name))

	return nil
}

func (s *ProductService) SearchProducts(params ProductSearchParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{})

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR barcode = ?", searchTerm, params.Search)
	}
	if params.InStock != nil && *params.InStock {
		query = query.Where("stock > 0")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "name", "price", "stock", "category"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}
