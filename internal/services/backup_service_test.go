// internal/services/backup_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superettejemai/backoffice/internal/config"
	"github.com/superettejemai/backoffice/internal/models"
)

func TestBackupExportCoversAllEntities(t *testing.T) {
	db := setupTestDB(t)
	backupService, err := NewBackupService(db, &config.Config{})
	require.NoError(t, err)

	createTestProduct(t, db, "Pates 500g", "1.100", 40)
	deleted := createTestProduct(t, db, "Ancien article", "0.500", 0)
	require.NoError(t, db.Delete(deleted).Error)

	backup, err := backupService.Export()
	require.NoError(t, err)
	require.Len(t, backup.Entities, 7)

	for _, kind := range []EntityKind{
		EntityUsers, EntityProducts, EntityOrders, EntityOrderItems,
		EntityFactures, EntityFactureItems, EntityAuditLogs,
	} {
		_, ok := backup.Entities[kind]
		assert.True(t, ok, "missing entity %s", kind)
	}

	products, ok := backup.Entities[EntityProducts].([]models.Product)
	require.True(t, ok)
	assert.Len(t, products, 2, "soft-deleted products stay in the archive")
}

func TestBackupUploadUnavailableWithoutS3(t *testing.T) {
	db := setupTestDB(t)
	backupService, err := NewBackupService(db, &config.Config{})
	require.NoError(t, err)

	backup, err := backupService.Export()
	require.NoError(t, err)

	_, err = backupService.Upload(backup)
	require.Error(t, err)
}
