// internal/services/facture_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/superettejemai/backoffice/internal/database"
	"github.com/superettejemai/backoffice/internal/models"
	"github.com/superettejemai/backoffice/internal/utils"
)

// FactureService drives the supplier invoice lifecycle:
//
//	draft --edit--> draft
//	draft --confirm--> confirmed   (stock incremented, exactly once)
//	draft --cancel--> cancelled    (no stock effect)
//
// confirmed and cancelled are terminal; any further edit, confirm or cancel
// fails with InvalidTransitionError and leaves the document unchanged.
type FactureService struct {
	db           *gorm.DB
	stockService *StockService
	auditService *AuditService
}

type FactureLineRequest struct {
	ProductID uint            `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

type CreateFactureRequest struct {
	SupplierName string               `json:"supplier_name" validate:"required,min=2,max=255"`
	SupplierInfo models.JSONB         `json:"supplier_info,omitempty"`
	FactureDate  *time.Time           `json:"facture_date,omitempty"`
	Comment      string               `json:"comment,omitempty"`
	Items        []FactureLineRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateFactureRequest patches a draft. A nil Items slice keeps the current
// lines; a non-nil one replaces the full set.
type UpdateFactureRequest struct {
	SupplierName *string              `json:"supplier_name,omitempty" validate:"omitempty,min=2,max=255"`
	SupplierInfo models.JSONB         `json:"supplier_info,omitempty"`
	FactureDate  *time.Time           `json:"facture_date,omitempty"`
	Comment      *string              `json:"comment,omitempty"`
	Items        []FactureLineRequest `json:"items,omitempty" validate:"omitempty,min=1,dive"`
}

type FactureListParams struct {
	utils.PaginationParams
	Status *models.FactureStatus
}

func NewFactureService(db *gorm.DB, stockService *StockService, auditService *AuditService) *FactureService {
	return &FactureService{
		db:           db,
		stockService: stockService,
		auditService: auditService,
	}
}

func (s *FactureService) CreateFacture(actor models.Actor, req *CreateFactureRequest) (*models.Facture, error) {
	factureDate := time.Now()
	if req.FactureDate != nil {
		factureDate = *req.FactureDate
	}

	var facture *models.Facture

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		items, total, err := s.buildItems(tx, req.Items)
		if err != nil {
			return err
		}

		facture = &models.Facture{
			FactureNumber: generateFactureNumber(),
			SupplierName:  req.SupplierName,
			SupplierInfo:  req.SupplierInfo,
			FactureDate:   factureDate,
			Comment:       req.Comment,
			TotalAmount:   total,
			Status:        models.FactureStatusDraft,
			CreatedBy:     actor.ID,
			Items:         items,
		}

		if err := tx.Create(facture).Error; err != nil {
			return fmt.Errorf("failed to create facture: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	s.auditService.Record(actor, "facture.create",
		fmt.Sprintf("facture %s from %s, total %s", facture.FactureNumber, facture.SupplierName, facture.TotalAmount))

	return facture, nil
}

func (s *FactureService) UpdateFacture(actor models.Actor, id uint, req *UpdateFactureRequest) (*models.Facture, error) {
	// A non-nil empty item list is rejected before any transaction begins:
	// replacing the set with nothing would leave a facture without lines.
	if req.Items != nil && len(req.Items) == 0 {
		return nil, ErrEmptyFactureItems
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		facture, err := s.lockFacture(tx, id)
		if err != nil {
			return err
		}
		if !facture.IsDraft() {
			return &InvalidTransitionError{FactureID: id, Status: facture.Status, Operation: "update"}
		}

		updates := map[string]interface{}{}
		if req.SupplierName != nil {
			updates["supplier_name"] = *req.SupplierName
		}
		if req.SupplierInfo != nil {
			updates["supplier_info"] = req.SupplierInfo
		}
		if req.FactureDate != nil {
			updates["facture_date"] = *req.FactureDate
		}
		if req.Comment != nil {
			updates["comment"] = *req.Comment
		}

		if req.Items != nil {
			// Full replace, not a diff: drop the old set and recreate
			if err := tx.Where("facture_id = ?", id).Delete(&models.FactureItem{}).Error; err != nil {
				return fmt.Errorf("failed to delete facture items: %w", err)
			}

			items, total, err := s.buildItems(tx, req.Items)
			if err != nil {
				return err
			}
			for i := range items {
				items[i].FactureID = id
			}
			if err := tx.Create(&items).Error; err != nil {
				return fmt.Errorf("failed to recreate facture items: %w", err)
			}
			updates["total_amount"] = total
		}

		if len(updates) > 0 {
			if err := tx.Model(facture).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update facture: %w", err)
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	s.auditService.Record(actor, "facture.update", fmt.Sprintf("facture #%d edited", id))

	return s.GetFacture(id)
}

// ConfirmFacture applies the facture's stock effect. The increments and the
// status flip commit together; a missing product on any line rolls back
// everything.
func (s *FactureService) ConfirmFacture(actor models.Actor, id uint) (*models.Facture, error) {
	var factureNumber string

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		facture, err := s.lockFacture(tx, id)
		if err != nil {
			return err
		}
		if !facture.IsDraft() {
			return &InvalidTransitionError{FactureID: id, Status: facture.Status, Operation: "confirm"}
		}
		factureNumber = facture.FactureNumber

		var items []models.FactureItem
		if err := tx.Where("facture_id = ?", id).Find(&items).Error; err != nil {
			return fmt.Errorf("failed to fetch facture items: %w", err)
		}

		for _, item := range items {
			if err := s.stockService.Release(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		now := time.Now()
		if err := tx.Model(facture).Updates(map[string]interface{}{
			"status":       models.FactureStatusConfirmed,
			"confirmed_at": now,
		}).Error; err != nil {
			return fmt.Errorf("failed to confirm facture: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	s.auditService.Record(actor, "facture.confirm", fmt.Sprintf("facture %s confirmed", factureNumber))

	return s.GetFacture(id)
}

func (s *FactureService) CancelFacture(actor models.Actor, id uint) (*models.Facture, error) {
	var factureNumber string

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		facture, err := s.lockFacture(tx, id)
		if err != nil {
			return err
		}
		if !facture.IsDraft() {
			return &InvalidTransitionError{FactureID: id, Status: facture.Status, Operation: "cancel"}
		}
		factureNumber = facture.FactureNumber

		// No ledger interaction: a cancelled draft never touched stock
		now := time.Now()
		if err := tx.Model(facture).Updates(map[string]interface{}{
			"status":       models.FactureStatusCancelled,
			"cancelled_at": now,
		}).Error; err != nil {
			return fmt.Errorf("failed to cancel facture: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	s.auditService.Record(actor, "facture.cancel", fmt.Sprintf("facture %s cancelled", factureNumber))

	return s.GetFacture(id)
}

func (s *FactureService) GetFacture(id uint) (*models.Facture, error) {
	var facture models.Facture
	if err := s.db.Preload("Items").First(&facture, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFactureNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &facture, nil
}

func (s *FactureService) ListFactures(params FactureListParams) ([]models.Facture, int64, error) {
	query := s.db.Model(&models.Facture{})

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(supplier_name) LIKE ? OR LOWER(facture_number) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count factures: %w", err)
	}

	allowedSortFields := []string{"created_at", "facture_date", "total_amount", "supplier_name", "status"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var factures []models.Facture
	if err := query.Find(&factures).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch factures: %w", err)
	}

	return factures, total, nil
}

// buildItems validates every referenced product and recomputes line and
// document totals from quantities and unit costs; client totals are never
// trusted.
func (s *FactureService) buildItems(tx *gorm.DB, lines []FactureLineRequest) ([]models.FactureItem, decimal.Decimal, error) {
	items := make([]models.FactureItem, 0, len(lines))
	total := decimal.Zero

	for _, line := range lines {
		if line.UnitCost.IsNegative() {
			return nil, decimal.Zero, ErrNegativeUnitCost
		}

		var product models.Product
		if err := tx.First(&product, line.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, decimal.Zero, &ProductNotFoundError{ProductID: line.ProductID}
			}
			return nil, decimal.Zero, fmt.Errorf("database error: %w", err)
		}

		lineTotal := line.UnitCost.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, models.FactureItem{
			ProductID: product.ID,
			Quantity:  line.Quantity,
			UnitCost:  line.UnitCost,
			TotalCost: lineTotal,
		})
		total = total.Add(lineTotal)
	}

	return items, total, nil
}

func (s *FactureService) lockFacture(tx *gorm.DB, id uint) (*models.Facture, error) {
	var facture models.Facture
	if err := lockForUpdate(tx).First(&facture, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFactureNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &facture, nil
}

// generateFactureNumber builds a timestamped number with a random suffix.
// Uniqueness is additionally enforced by the unique index on the column.
func generateFactureNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("FAC-%s-%s", time.Now().Format("20060102150405"), suffix)
}
