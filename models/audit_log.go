package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Audit actions recorded for administrative and corrective operations.
const (
	AuditActionBonusGranted     = "bonus_granted"
	AuditActionBalanceReconcile = "balance_reconciled"
	AuditActionGameCreated      = "game_created"
	AuditActionOddsUpdated      = "game_odds_updated"
	AuditActionGameStarted      = "game_started"
	AuditActionGameResult       = "game_result_recorded"
	AuditActionGameCancelled    = "game_cancelled"
	AuditActionBetSettled       = "bet_settled"
	AuditActionRoleAssigned     = "role_assigned"
)

// Audit resource types.
const (
	AuditResourceUser = "user"
	AuditResourceGame = "game"
	AuditResourceBet  = "bet"
)

// AuditLog represents an audit trail entry. ActorID is nil for system actions such as
// the bet expiry sweeper.
type AuditLog struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ActorID      *uuid.UUID        `gorm:"type:uuid;index:idx_audit_logs_actor" json:"actor_id"`
	Action       string            `gorm:"type:varchar(50);not null" json:"action"`
	ResourceType string            `gorm:"type:varchar(50);not null" json:"resource_type"`
	ResourceID   *uuid.UUID        `gorm:"type:uuid" json:"resource_id"`
	OldValues    datatypes.JSONMap `gorm:"type:jsonb" json:"old_values"`
	NewValues    datatypes.JSONMap `gorm:"type:jsonb" json:"new_values"`
	CreatedAt    time.Time         `gorm:"autoCreateTime;index:idx_audit_logs_created_at" json:"created_at"`
}

// TableName specifies the table name for AuditLog model
func (*AuditLog) TableName() string {
	return "audit_logs"
}

// BeforeCreate sets up the model before creation
func (al *AuditLog) BeforeCreate(_ *gorm.DB) error {
	if al.ID == uuid.Nil {
		al.ID = uuid.New()
	}
	return nil
}

// IsSystemAction checks if this audit log has no human actor
func (al *AuditLog) IsSystemAction() bool {
	return al.ActorID == nil
}

// ChangedFields returns the keys whose value differs between old and new values.
func (al *AuditLog) ChangedFields() []string {
	changed := []string{}
	for field, newVal := range al.NewValues {
		oldVal, ok := al.OldValues[field]
		if !ok || fmt.Sprint(oldVal) != fmt.Sprint(newVal) {
			changed = append(changed, field)
		}
	}
	return changed
}

// Validate performs validation on the audit log model
func (al *AuditLog) Validate() error {
	if al.Action == "" {
		return ErrInvalidAuditAction
	}
	if al.ResourceType == "" {
		return ErrInvalidResourceType
	}
	return nil
}

// NewAuditLog builds an entry; actorID may be nil.
func NewAuditLog(actorID *uuid.UUID, action, resourceType string, resourceID uuid.UUID, oldValues, newValues map[string]interface{}) *AuditLog {
	return &AuditLog{
		ActorID:      actorID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   &resourceID,
		OldValues:    datatypes.JSONMap(oldValues),
		NewValues:    datatypes.JSONMap(newValues),
	}
}
