// internal/models/audit.go
package models

// AuditLog is append-only: entries are written once and queried, never
// updated. Writes are best-effort and must not affect the operation that
// triggered them.
type AuditLog struct {
	BaseModel
	ActorID   uint     `json:"actor_id" gorm:"index"`
	ActorRole UserRole `json:"actor_role" gorm:"type:varchar(20)"`
	Action    string   `json:"action" gorm:"size:100;not null;index"`
	Detail    string   `json:"detail" gorm:"type:text"`
}
