// internal/services/backup_service.go
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"gorm.io/gorm"

	"github.com/superettejemai/backoffice/internal/config"
	"github.com/superettejemai/backoffice/internal/models"
)

// EntityKind enumerates the backed-up tables. The registry below replaces
// any string-keyed, reflection-driven table iteration: every entity is
// exported through a typed query.
type EntityKind string

const (
	EntityUsers        EntityKind = "users"
	EntityProducts     EntityKind = "products"
	EntityOrders       EntityKind = "orders"
	EntityOrderItems   EntityKind = "order_items"
	EntityFactures     EntityKind = "factures"
	EntityFactureItems EntityKind = "facture_items"
	EntityAuditLogs    EntityKind = "audit_logs"
)

type entityExporter struct {
	Kind   EntityKind
	Export func(db *gorm.DB) (interface{}, error)
}

func exportAll[T any](db *gorm.DB) (interface{}, error) {
	var rows []T
	// Unscoped keeps soft-deleted products and users in the archive
	if err := db.Unscoped().Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

var backupRegistry = []entityExporter{
	{EntityUsers, exportAll[models.User]},
	{EntityProducts, exportAll[models.Product]},
	{EntityOrders, exportAll[models.Order]},
	{EntityOrderItems, exportAll[models.OrderItem]},
	{EntityFactures, exportAll[models.Facture]},
	{EntityFactureItems, exportAll[models.FactureItem]},
	{EntityAuditLogs, exportAll[models.AuditLog]},
}

type Backup struct {
	CreatedAt time.Time                  `json:"created_at"`
	Entities  map[EntityKind]interface{} `json:"entities"`
}

type BackupService struct {
	db       *gorm.DB
	s3Client *s3.S3
	cfg      *config.Config
}

func NewBackupService(db *gorm.DB, cfg *config.Config) (*BackupService, error) {
	svc := &BackupService{db: db, cfg: cfg}

	if cfg.AWS.AccessKeyID == "" {
		// Local development: export works, upload is unavailable
		return svc, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	svc.s3Client = s3.New(sess)
	return svc, nil
}

// Export produces a full JSON snapshot of every registered entity.
func (s *BackupService) Export() (*Backup, error) {
	backup := &Backup{
		CreatedAt: time.Now(),
		Entities:  make(map[EntityKind]interface{}, len(backupRegistry)),
	}

	for _, exporter := range backupRegistry {
		rows, err := exporter.Export(s.db)
		if err != nil {
			return nil, fmt.Errorf("failed to export %s: %w", exporter.Kind, err)
		}
		backup.Entities[exporter.Kind] = rows
	}

	return backup, nil
}

// Upload writes the snapshot to the configured S3 bucket and returns the
// object key.
func (s *BackupService) Upload(backup *Backup) (string, error) {
	if s.s3Client == nil {
		return "", fmt.Errorf("S3 upload is not configured")
	}

	payload, err := json.Marshal(backup)
	if err != nil {
		return "", fmt.Errorf("failed to marshal backup: %w", err)
	}

	key := fmt.Sprintf("%s/backup-%s.json", s.cfg.AWS.S3BackupPrefix, backup.CreatedAt.Format("20060102-150405"))

	_, err = s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.AWS.S3Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload backup: %w", err)
	}

	return key, nil
}
