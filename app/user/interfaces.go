package user

import (
	"context"
	"io"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/joefazee/betpoints/internal/security"
	"github.com/joefazee/betpoints/models"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateAvatar(ctx context.Context, userID uuid.UUID, url string) error
	GetByIDWithPermissions(ctx context.Context, userID uuid.UUID) (*models.User, error)

	GetRoleByName(ctx context.Context, name string) (*models.Role, error)
	AssignRole(ctx context.Context, userID, roleID uuid.UUID) error
	CreateAuditLog(ctx context.Context, entry *models.AuditLog) error

	RevokeToken(ctx context.Context, entry *models.TokenBlacklist) error
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
	PurgeRevokedTokens(ctx context.Context) (int64, error)
}

type Service interface {
	Register(ctx context.Context, req *RegisterUserRequest) (*Response, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, token *security.Payload) error
	Me(ctx context.Context, userID uuid.UUID) (*Response, error)
	GetByEmail(ctx context.Context, email string) (*PublicProfile, error)
	UpdateAvatar(ctx context.Context, userID uuid.UUID, r io.Reader) (*Response, error)
}
