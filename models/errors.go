package models

import "errors"

var (
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrInvalidUserID    = errors.New("invalid user ID")
	ErrInvalidName      = errors.New("invalid display name")
	ErrDuplicateEmail   = errors.New("email is already registered")
	ErrInvalidPhone     = errors.New("invalid phone number")
	ErrInvalidLogin     = errors.New("invalid email or password")
	ErrInactiveAccount  = errors.New("account is deactivated")
	ErrNegativeBalance  = errors.New("balance cannot be negative")

	ErrInvalidBetAmount       = errors.New("bet amount must be greater than zero")
	ErrInvalidOdds            = errors.New("odds must be a nonzero american odds value")
	ErrInvalidSelection       = errors.New("selection must be home or away")
	ErrInvalidBetMode         = errors.New("bet mode must be house or p2p")
	ErrInvalidBetStatus       = errors.New("invalid bet status")
	ErrInvalidOutcome         = errors.New("outcome must be home or away")
	ErrInsufficientBalance    = errors.New("insufficient balance")
	ErrBetUnavailable         = errors.New("bet is not available to join")
	ErrBetNotSettleable       = errors.New("bet is not in a settleable state")
	ErrBetNotCancellable      = errors.New("bet can no longer be cancelled")
	ErrInvalidBetTransition   = errors.New("illegal bet status transition")
	ErrSettlementInconsistent = errors.New("outcome matches neither bettor selection")

	ErrInvalidTransactionType   = errors.New("invalid transaction type")
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	ErrInvalidGameTeams      = errors.New("home and away teams are required")
	ErrInvalidGameStatus     = errors.New("invalid game status")
	ErrGameNotOpen           = errors.New("game is not accepting bets")
	ErrInvalidGameTransition = errors.New("illegal game status transition")

	ErrInvalidItemType = errors.New("item type must be post or comment")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrEmptyContent    = errors.New("content cannot be empty")

	ErrInvalidAuditAction  = errors.New("invalid audit action")
	ErrInvalidResourceType = errors.New("invalid resource type")

	ErrInvalidTokenJTI     = errors.New("invalid token JTI")
	ErrTokenAlreadyExpired = errors.New("token already expired")

	ErrDatabaseCredentialNotConfigured = errors.New("database credentials not configured")
	ErrInvalidBetTimeout               = errors.New("invalid bet timeout")
	ErrInvalidSweepInterval            = errors.New("invalid sweep interval")
	ErrInvalidInitialBalance           = errors.New("initial balance cannot be negative")
	ErrInvalidLeaderboardSize          = errors.New("leaderboard size must be between 1 and 500")
	ErrInvalidCacheTTL                 = errors.New("cache ttl cannot be negative")
	ErrStorageNotConfigured            = errors.New("object storage endpoint, bucket and credentials are required")
	ErrInvalidUploadLimit              = errors.New("upload size limit must be positive")
	ErrInvalidTokenTTL                 = errors.New("access token ttl must be positive")
	ErrInvalidSymmetricKey             = errors.New("symmetric key must be exactly 32 characters")

	ErrUnsupportedImage = errors.New("image must be jpeg, png, gif or webp")
	ErrImageTooLarge    = errors.New("image is too large")
	ErrStorageDisabled  = errors.New("object storage is not configured")

	ErrInvalidUUID    = errors.New("invalid UUID")
	ErrRecordNotFound = errors.New("record not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
)
