package types

import (
	"time"

	"github.com/google/uuid"
)

// Package is a parcel tracked from receipt until pickup confirmation.
// PickupConfirmed flips false to true at most once; PickedUpAt is stamped
// exactly when that happens and never cleared.
type Package struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	TrackingCode    string     `gorm:"uniqueIndex;not null;column:tracking_code" json:"tracking_code"`
	Description     string     `gorm:"not null;column:description" json:"description"`
	Sender          string     `gorm:"not null;column:sender" json:"sender"`
	ReceivedAt      time.Time  `gorm:"not null;column:received_at" json:"received_at"`
	PickedUpAt      *time.Time `gorm:"column:picked_up_at" json:"picked_up_at,omitempty"`
	PickupConfirmed bool       `gorm:"not null;column:pickup_confirmed" json:"pickup_confirmed"`
	LockerID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"locker_id"`
	Locker          *Locker    `gorm:"foreignKey:LockerID;references:ID" json:"locker,omitempty"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User            *User      `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	CreatedAt       time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null" json:"updated_at"`
}

func (Package) TableName() string { return "package" }
