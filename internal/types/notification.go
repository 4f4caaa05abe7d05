package types

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypePackage     NotificationType = "PACKAGE"
	NotificationTypeSecurity    NotificationType = "SECURITY"
	NotificationTypeSystem      NotificationType = "SYSTEM"
	NotificationTypeMaintenance NotificationType = "MAINTENANCE"
)

// Notification is a message queued for a specific user. After creation only
// MarkRead mutates it (Read=true, ReadAt stamped once).
type Notification struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string           `gorm:"not null;column:title" json:"title"`
	Message   string           `gorm:"not null;column:message" json:"message"`
	Type      NotificationType `gorm:"not null;column:type" json:"type"`
	Read      bool             `gorm:"not null;column:read" json:"read"`
	ReadAt    *time.Time       `gorm:"column:read_at" json:"read_at,omitempty"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User            `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CreatedAt time.Time        `gorm:"not null" json:"created_at"`
}

func (Notification) TableName() string { return "notification" }
