// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/superettejemai/backoffice/internal/database"
	"github.com/superettejemai/backoffice/internal/models"
)

// OrderService converts a cart into an immutable sale record. Stock
// decrements, the order row and its item snapshots commit together or not
// at all; a failure on any line leaves no partial state behind.
type OrderService struct {
	db           *gorm.DB
	stockService *StockService
	auditService *AuditService
}

type OrderLineRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,min=1"`
}

type CreateOrderRequest struct {
	Items         []OrderLineRequest   `json:"items" validate:"required,min=1,dive"`
	PaidAmount    *decimal.Decimal     `json:"paid_amount,omitempty"`
	PaymentMethod models.PaymentMethod `json:"payment_method,omitempty" validate:"omitempty,oneof=cash card credit"`
	Note          string               `json:"note,omitempty"`
}

// OrderItemDetail is an order line joined with the current product catalog
// row. The name and unit price come from the frozen snapshot; only the
// category is looked up live.
type OrderItemDetail struct {
	models.OrderItem
	Category string `json:"category"`
}

func NewOrderService(db *gorm.DB, stockService *StockService, auditService *AuditService) *OrderService {
	return &OrderService{
		db:           db,
		stockService: stockService,
		auditService: auditService,
	}
}

func (s *OrderService) CreateOrder(actor models.Actor, req *CreateOrderRequest) (*models.Order, *Receipt, error) {
	// Rejected before any transaction begins
	if len(req.Items) == 0 {
		return nil, nil, ErrEmptyOrder
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentMethodCash
	}

	var order *models.Order

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		runningTotal := decimal.Zero
		items := make([]models.OrderItem, 0, len(req.Items))

		// Lines are processed, and product rows locked, in input order.
		for _, line := range req.Items {
			var product models.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &ProductNotFoundError{ProductID: line.ProductID}
				}
				return fmt.Errorf("database error: %w", err)
			}

			if err := s.stockService.Reserve(tx, product.ID, line.Quantity); err != nil {
				return err
			}

			lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			items = append(items, models.OrderItem{
				ProductID: product.ID,
				Name:      product.Name,
				UnitPrice: product.Price,
				Quantity:  line.Quantity,
				Total:     lineTotal,
			})
			runningTotal = runningTotal.Add(lineTotal)
		}

		paidAmount := runningTotal
		if req.PaidAmount != nil {
			paidAmount = *req.PaidAmount
		}
		changeAmount := paidAmount.Sub(runningTotal)
		if changeAmount.IsNegative() {
			changeAmount = decimal.Zero
		}

		order = &models.Order{
			Total:         runningTotal,
			PaidAmount:    paidAmount,
			ChangeAmount:  changeAmount,
			PaymentMethod: paymentMethod,
			Note:          req.Note,
			CreatedBy:     actor.ID,
			Items:         items,
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, nil, err
	}

	// Best-effort side effects, after commit
	s.auditService.Record(actor, "order.create",
		fmt.Sprintf("order #%d, %d lines, total %s", order.ID, len(order.Items), order.Total))

	return order, BuildReceipt(order, actor.Name), nil
}

// ListOrders returns the most recent 200 orders, newest first.
func (s *OrderService) ListOrders() ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Order("created_at DESC, id DESC").Limit(200).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}

// GetOrderItems returns the frozen line snapshots of one order with the
// current product category joined in. Soft-deleted products still appear:
// the join deliberately bypasses the catalog's delete filter.
func (s *OrderService) GetOrderItems(orderID uint) ([]OrderItemDetail, error) {
	var items []OrderItemDetail
	err := s.db.Table("order_items").
		Select("order_items.*, products.category AS category").
		Joins("LEFT JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ?", orderID).
		Order("order_items.id").
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order items: %w", err)
	}

	if len(items) == 0 {
		return nil, ErrOrderNotFound
	}

	return items, nil
}
