package user

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/joefazee/betpoints/internal/cache"
)

// AuthService answers the questions the auth middleware asks on every request.
type AuthService interface {
	GetUserPermissions(ctx context.Context, userID uuid.UUID) ([]string, error)
	InvalidatePermissions(ctx context.Context, userID uuid.UUID) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type authService struct {
	repo  Repository
	cache cache.Cache[string]
	ttl   time.Duration
}

func NewAuthService(repo Repository, cache cache.Cache[string], ttl time.Duration) AuthService {
	return &authService{repo: repo, cache: cache, ttl: ttl}
}

func permissionsKey(userID uuid.UUID) string {
	return fmt.Sprintf("user:%s:permissions", userID)
}

func revokedKey(tokenID string) string {
	return "token:revoked:" + tokenID
}

func (s *authService) GetUserPermissions(ctx context.Context, userID uuid.UUID) ([]string, error) {
	cacheKey := permissionsKey(userID)

	cachedPermissions, err := s.cache.Get(ctx, cacheKey)
	if err == nil && cachedPermissions != "" {
		var permissions []string
		if err := json.Unmarshal([]byte(cachedPermissions), &permissions); err == nil {
			return permissions, nil
		}
	}

	user, err := s.repo.GetByIDWithPermissions(ctx, userID)
	if err != nil {
		return nil, notFound(err, "load permissions")
	}

	permissions := user.PermissionNames()
	sort.Strings(permissions)

	if permissionsJSON, err := json.Marshal(permissions); err == nil {
		// a cache failure only costs the next request a query
		_ = s.cache.Set(ctx, cacheKey, string(permissionsJSON), s.ttl)
	}

	return permissions, nil
}

func (s *authService) InvalidatePermissions(ctx context.Context, userID uuid.UUID) error {
	return s.cache.Delete(ctx, permissionsKey(userID))
}

// IsRevoked checks the cache first. A miss or a cache error falls back to the
// blacklist table.
func (s *authService) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if v, err := s.cache.Get(ctx, revokedKey(tokenID)); err == nil && v != "" {
		return true, nil
	}
	return s.repo.IsTokenRevoked(ctx, tokenID)
}
