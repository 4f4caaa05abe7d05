package types

import (
	"time"

	"github.com/google/uuid"
)

// LockerStatus is shared by lockers and compartments.
type LockerStatus string

const (
	LockerStatusAvailable   LockerStatus = "AVAILABLE"
	LockerStatusOccupied    LockerStatus = "OCCUPIED"
	LockerStatusMaintenance LockerStatus = "MAINTENANCE"
)

func (s LockerStatus) Valid() bool {
	switch s {
	case LockerStatusAvailable, LockerStatusOccupied, LockerStatusMaintenance:
		return true
	}
	return false
}

// Locker is a physical unit identified by a unique number. CurrentPackageID
// is a non-owning pointer: the package lifetime is managed elsewhere.
type Locker struct {
	ID               uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Number           string       `gorm:"uniqueIndex;not null;column:number" json:"number"`
	Status           LockerStatus `gorm:"not null;column:status;index" json:"status"`
	Location         string       `gorm:"not null;column:location;index" json:"location"`
	Observations     string       `gorm:"column:observations" json:"observations,omitempty"`
	CurrentPackageID *uuid.UUID   `gorm:"type:uuid;column:current_package_id" json:"current_package_id,omitempty"`
	CreatedAt        time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time    `gorm:"not null" json:"updated_at"`
}

func (Locker) TableName() string {
	return "locker"
}

// IsOccupied derives occupancy from the status, the single source of truth.
func (l *Locker) IsOccupied() bool {
	return l.Status == LockerStatusOccupied
}
