package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Permissions checked by admin routes.
const (
	PermissionGamesManage     = "games:manage"
	PermissionBetsSettle      = "bets:settle"
	PermissionLedgerAdjust    = "ledger:adjust"
	PermissionUsersAssignRole = "users:assign_role"
)

// Role groups permissions and is granted to users.
type Role struct {
	ID          uuid.UUID    `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name        string       `gorm:"type:varchar(50);not null;unique" json:"name"`
	Description string       `gorm:"type:text" json:"description"`
	Permissions []Permission `gorm:"many2many:role_permissions;" json:"permissions,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// BeforeCreate sets a UUID for the role before creation.
func (r *Role) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Grants reports whether the role carries the named permission.
func (r *Role) Grants(permission string) bool {
	for _, p := range r.Permissions {
		if p.Name == permission {
			return true
		}
	}
	return false
}

// Permission represents an action that can be performed
type Permission struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name        string    `gorm:"type:varchar(50);not null;unique" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate sets a UUID for the permission before creation.
func (p *Permission) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
