// internal/models/product.go
package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	BaseModel
	Name      string          `json:"name" gorm:"size:255;not null"`
	Barcode   string          `json:"barcode" gorm:"size:64;index"`
	Category  string          `json:"category" gorm:"size:100;index"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(12,3);not null"`
	CostPrice decimal.Decimal `json:"cost_price" gorm:"type:decimal(12,3)"`
	// Stock is mutated only through StockService.Reserve and Release,
	// always inside a transaction holding the row lock.
	Stock     int            `json:"stock" gorm:"not null;default:0;check:stock >= 0"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
