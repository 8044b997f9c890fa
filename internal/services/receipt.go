// internal/services/receipt.go
package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/superettejemai/backoffice/internal/models"
)

// Receipt is the printable projection of a committed order, handed to the
// printing collaborator. Building it has no side effects.
type Receipt struct {
	OrderID       uint                 `json:"order_id"`
	Number        string               `json:"number"`
	IssuedAt      time.Time            `json:"issued_at"`
	Cashier       string               `json:"cashier"`
	Lines         []ReceiptLine        `json:"lines"`
	Total         decimal.Decimal      `json:"total"`
	Paid          decimal.Decimal      `json:"paid"`
	Change        decimal.Decimal      `json:"change"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
}

type ReceiptLine struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

func BuildReceipt(order *models.Order, cashier string) *Receipt {
	lines := make([]ReceiptLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, ReceiptLine{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.Total,
		})
	}

	return &Receipt{
		OrderID:       order.ID,
		Number:        fmt.Sprintf("ORD-%06d", order.ID),
		IssuedAt:      order.CreatedAt,
		Cashier:       cashier,
		Lines:         lines,
		Total:         order.Total,
		Paid:          order.PaidAmount,
		Change:        order.ChangeAmount,
		PaymentMethod: order.PaymentMethod,
	}
}
