package types

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleAdmin    UserRole = "ADMIN"
	UserRoleDoorman  UserRole = "DOORMAN"
	UserRoleResident UserRole = "RESIDENT"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleDoorman, UserRoleResident:
		return true
	}
	return false
}

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null;column:name" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password  string    `gorm:"not null;column:password" json:"-"`
	Phone     string    `gorm:"column:phone" json:"phone"`
	Role      UserRole  `gorm:"not null;column:role;index" json:"role"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
	return "user"
}
