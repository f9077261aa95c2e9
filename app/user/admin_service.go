package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/joefazee/betpoints/internal/logger"
	"github.com/joefazee/betpoints/models"
)

type AdminService interface {
	AssignRole(ctx context.Context, actorID, userID uuid.UUID, roleName string) (*RoleAssignmentResponse, error)
}

type adminService struct {
	db     *gorm.DB
	repo   Repository
	auth   AuthService
	logger logger.Logger
}

func NewAdminService(db *gorm.DB, repo Repository, auth AuthService, log logger.Logger) AdminService {
	return &adminService{db: db, repo: repo, auth: auth, logger: log}
}

// AssignRole grants the named role and records who did it. The user's cached
// permissions are dropped so the grant applies on their next request.
func (s *adminService) AssignRole(ctx context.Context, actorID, userID uuid.UUID, roleName string) (*RoleAssignmentResponse, error) {
	var role *models.Role
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repoTx := s.repo.WithTx(tx)

		if _, err := repoTx.GetByID(ctx, userID); err != nil {
			return notFound(err, "get user")
		}

		var err error
		role, err = repoTx.GetRoleByName(ctx, roleName)
		if err != nil {
			return notFound(err, "get role")
		}

		if err := repoTx.AssignRole(ctx, userID, role.ID); err != nil {
			return fmt.Errorf("assign role: %w", err)
		}
		return repoTx.CreateAuditLog(ctx, models.NewAuditLog(&actorID, models.AuditActionRoleAssigned,
			models.AuditResourceUser, userID, nil, map[string]interface{}{"role": role.Name}))
	})
	if err != nil {
		return nil, err
	}

	if err := s.auth.InvalidatePermissions(ctx, userID); err != nil {
		s.logger.Warn("permission cache not invalidated", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
	}

	s.logger.Info("role assigned", map[string]interface{}{
		"user_id":  userID,
		"role":     role.Name,
		"actor_id": actorID,
	})
	return &RoleAssignmentResponse{UserID: userID, Role: role.Name}, nil
}
