package types

import (
	"time"

	"github.com/google/uuid"
)

// AuditRecord is an append-only fact. It references other aggregates by id
// inside Details only and is never updated after creation.
type AuditRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Action    string    `gorm:"not null;column:action;index" json:"action"`
	Details   string    `gorm:"column:details" json:"details"`
	Timestamp time.Time `gorm:"not null;column:timestamp" json:"timestamp"`
}

func (AuditRecord) TableName() string { return "audit_record" }
