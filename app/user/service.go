package user

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/joefazee/betpoints/app/database"
	"github.com/joefazee/betpoints/app/ledger"
	"github.com/joefazee/betpoints/app/media"
	"github.com/joefazee/betpoints/internal/cache"
	"github.com/joefazee/betpoints/internal/formatter"
	"github.com/joefazee/betpoints/internal/logger"
	"github.com/joefazee/betpoints/internal/sanitizer"
	"github.com/joefazee/betpoints/internal/security"
	"github.com/joefazee/betpoints/models"
)

type service struct {
	db         *gorm.DB
	repo       Repository
	writer     ledger.Writer
	tokenMaker security.Maker
	uploader   media.Uploader
	cache      cache.Cache[string]
	sanitizer  sanitizer.HTMLStripperer
	config     *Config
	logger     logger.Logger
}

// NewService creates a new user service. uploader may be nil when object storage is
// disabled.
func NewService(db *gorm.DB, repo Repository, writer ledger.Writer, tokenMaker security.Maker,
	uploader media.Uploader, c cache.Cache[string], s sanitizer.HTMLStripperer, config *Config, log logger.Logger) Service {
	return &service{
		db:         db,
		repo:       repo,
		writer:     writer,
		tokenMaker: tokenMaker,
		uploader:   uploader,
		cache:      c,
		sanitizer:  s,
		config:     config,
		logger:     log,
	}
}

// Register creates the account and grants the starting balance in one transaction, so
// a user never exists without the initial_balance entry backing their balance.
func (s *service) Register(ctx context.Context, req *RegisterUserRequest) (*Response, error) {
	user := &models.User{
		ID:          uuid.New(),
		DisplayName: s.clean(req.DisplayName),
		Email:       formatter.NormalizeEmail(req.Email),
	}

	if req.PhoneNumber != "" {
		phone, err := formatter.FormatPhone(req.PhoneNumber, req.CountryCode)
		if err != nil {
			return nil, models.ErrInvalidPhone
		}
		user.Phone = phone
	}

	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, user); err != nil {
			if database.IsUniqueViolation(err) {
				return models.ErrDuplicateEmail
			}
			return fmt.Errorf("create user: %w", err)
		}

		if s.config.InitialBalance == 0 {
			return nil
		}
		txn, err := s.writer.WithTx(tx).Credit(ctx, user.ID, s.config.InitialBalance,
			models.TransactionTypeInitialBalance, nil, "Starting balance")
		if err != nil {
			return fmt.Errorf("grant starting balance: %w", err)
		}
		user.Balance = txn.BalanceAfter
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", map[string]interface{}{
		"user_id": user.ID,
		"balance": user.Balance,
	})

	resp := ToResponse(user)
	return &resp, nil
}

func (s *service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	user, err := s.repo.GetByEmail(ctx, formatter.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrInvalidLogin
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !user.CheckPassword(req.Password) {
		return nil, models.ErrInvalidLogin
	}
	if !user.Active() {
		return nil, models.ErrInactiveAccount
	}

	accessToken, payload, err := s.tokenMaker.CreateToken(user.ID, s.config.AccessTokenTTL, security.TokenScopeAccess)
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}

	return &LoginResponse{
		AccessToken: accessToken,
		ExpiresAt:   payload.ExpiredAt,
		User:        ToResponse(user),
	}, nil
}

// Logout revokes the token until it would have expired anyway.
func (s *service) Logout(ctx context.Context, token *security.Payload) error {
	entry := &models.TokenBlacklist{
		TokenJTI:  token.ID.String(),
		UserID:    token.UserID,
		ExpiresAt: token.ExpiredAt,
	}
	if err := entry.Validate(); err != nil {
		if errors.Is(err, models.ErrTokenAlreadyExpired) {
			return nil
		}
		return err
	}

	if err := s.repo.RevokeToken(ctx, entry); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}

	if err := s.cache.Set(ctx, revokedKey(entry.TokenJTI), "1", time.Until(entry.ExpiresAt)); err != nil {
		s.logger.Warn("revocation not cached", map[string]interface{}{"user_id": token.UserID, "error": err.Error()})
	}
	return nil
}

func (s *service) Me(ctx context.Context, userID uuid.UUID) (*Response, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "get user")
	}
	resp := ToResponse(user)
	return &resp, nil
}

func (s *service) GetByEmail(ctx context.Context, email string) (*PublicProfile, error) {
	user, err := s.repo.GetByEmail(ctx, formatter.NormalizeEmail(email))
	if err != nil {
		return nil, notFound(err, "get user by email")
	}
	profile := ToPublicProfile(user)
	return &profile, nil
}

func (s *service) UpdateAvatar(ctx context.Context, userID uuid.UUID, r io.Reader) (*Response, error) {
	if s.uploader == nil {
		return nil, models.ErrStorageDisabled
	}

	img, err := media.ReadImage(r, s.config.AvatarMaxBytes)
	if err != nil {
		return nil, err
	}

	url, err := s.uploader.Upload(ctx, media.AvatarKey(userID, img.Ext), img.Reader(), img.Size(), img.ContentType)
	if err != nil {
		return nil, fmt.Errorf("upload avatar: %w", err)
	}

	if err := s.repo.UpdateAvatar(ctx, userID, url); err != nil {
		return nil, notFound(err, "update avatar")
	}

	s.logger.Info("avatar updated", map[string]interface{}{"user_id": userID, "url": url})
	return s.Me(ctx, userID)
}

func (s *service) clean(name string) string {
	if s.sanitizer != nil {
		name = s.sanitizer.StripHTML(name)
	}
	return strings.TrimSpace(name)
}

func notFound(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrRecordNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
