// internal/models/order.go
package models

import (
	"github.com/shopspring/decimal"
)

// Order is immutable once created: there is no update or delete path.
type Order struct {
	BaseModel
	Total         decimal.Decimal `json:"total" gorm:"type:decimal(12,3);not null"`
	PaidAmount    decimal.Decimal `json:"paid_amount" gorm:"type:decimal(12,3);not null"`
	ChangeAmount  decimal.Decimal `json:"change_amount" gorm:"type:decimal(12,3);not null"`
	PaymentMethod PaymentMethod   `json:"payment_method" gorm:"type:varchar(20);default:'cash'"`
	Note          string          `json:"note,omitempty" gorm:"type:text"`
	CreatedBy     uint            `json:"created_by" gorm:"not null;index"`

	// Relationships
	Items   []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	Cashier *User       `json:"cashier,omitempty" gorm:"foreignKey:CreatedBy"`
}

// OrderItem freezes the product name and unit price at the time of sale so
// later catalog edits do not rewrite sales history.
type OrderItem struct {
	BaseModel
	OrderID   uint            `json:"order_id" gorm:"not null;index"`
	ProductID uint            `json:"product_id" gorm:"not null;index"`
	Name      string          `json:"name" gorm:"size:255;not null"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(12,3);not null"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	Total     decimal.Decimal `json:"total" gorm:"type:decimal(12,3);not null"`
}
