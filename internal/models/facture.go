// internal/models/facture.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Facture is a supplier invoice: a delivery of stock into inventory. Only a
// draft facture may be edited; confirmed and cancelled are terminal states.
type Facture struct {
	BaseModel
	FactureNumber string          `json:"facture_number" gorm:"uniqueIndex;size:64;not null"`
	SupplierName  string          `json:"supplier_name" gorm:"size:255;not null"`
	SupplierInfo  JSONB           `json:"supplier_info,omitempty" gorm:"type:jsonb"`
	FactureDate   time.Time       `json:"facture_date"`
	Comment       string          `json:"comment,omitempty" gorm:"type:text"`
	TotalAmount   decimal.Decimal `json:"total_amount" gorm:"type:decimal(12,3);not null"`
	Status        FactureStatus   `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	ConfirmedAt   *time.Time      `json:"confirmed_at,omitempty"`
	CancelledAt   *time.Time      `json:"cancelled_at,omitempty"`
	CreatedBy     uint            `json:"created_by" gorm:"not null;index"`

	// Relationships
	Items   []FactureItem `json:"items,omitempty" gorm:"foreignKey:FactureID"`
	Creator *User         `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
}

type FactureItem struct {
	BaseModel
	FactureID uint            `json:"facture_id" gorm:"not null;index"`
	ProductID uint            `json:"product_id" gorm:"not null;index"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	UnitCost  decimal.Decimal `json:"unit_cost" gorm:"type:decimal(12,3);not null"`
	TotalCost decimal.Decimal `json:"total_cost" gorm:"type:decimal(12,3);not null"`
}

func (f *Facture) IsDraft() bool {
	return f.Status == FactureStatusDraft
}
