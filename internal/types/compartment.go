package types

import (
	"time"

	"github.com/google/uuid"
)

// Compartment is an individually addressable slot inside a locker, a
// single-package unit with its own occupancy status.
type Compartment struct {
	ID               uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Number           string       `gorm:"not null;column:number" json:"number"`
	Size             float64      `gorm:"not null;column:size" json:"size"`
	Status           LockerStatus `gorm:"not null;column:status" json:"status"`
	LockerID         uuid.UUID    `gorm:"type:uuid;not null;index" json:"locker_id"`
	Locker           *Locker      `gorm:"constraint:OnDelete:CASCADE;foreignKey:LockerID;references:ID" json:"locker,omitempty"`
	CurrentPackageID *uuid.UUID   `gorm:"type:uuid;column:current_package_id" json:"current_package_id,omitempty"`
	CreatedAt        time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time    `gorm:"not null" json:"updated_at"`
}

func (Compartment) TableName() string { return "compartment" }

func (c *Compartment) IsOccupied() bool {
	return c.Status == LockerStatusOccupied
}
