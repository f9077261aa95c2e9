package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// StartingBalance is granted to every new account as an initial_balance ledger entry.
const StartingBalance int64 = 1000

// User represents a player account. Balance is a cached running total of the user's
// points transactions and is only mutated through the ledger writer.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	DisplayName  string    `gorm:"type:varchar(100);not null" json:"display_name"`
	Email        string    `gorm:"type:varchar(255);not null;unique;index" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Phone        string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	AvatarURL    string    `gorm:"type:text" json:"avatar_url"`
	Balance      int64     `gorm:"type:bigint;not null;default:0" json:"balance"`
	IsActive     *bool     `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Roles []Role `gorm:"many2many:user_roles;" json:"-"`
}

// TableName specifies the table name for User model
func (*User) TableName() string {
	return "users"
}

// BeforeCreate sets up the model before creation
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// SetPassword hashes and sets the user password
func (u *User) SetPassword(password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

// CheckPassword verifies the provided password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.PasswordHash)
}

// Active treats a missing flag as active.
func (u *User) Active() bool {
	return u.IsActive == nil || *u.IsActive
}

// Validate performs validation on the user model
func (u *User) Validate() error {
	if strings.TrimSpace(u.DisplayName) == "" {
		return ErrInvalidName
	}
	if !IsEmail(u.Email) {
		return ErrInvalidEmail
	}
	if u.PasswordHash == "" {
		return ErrInvalidPassword
	}
	if u.Balance < 0 {
		return ErrNegativeBalance
	}
	return nil
}

// PermissionNames flattens the permissions granted through the user's roles.
func (u *User) PermissionNames() []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, role := range u.Roles {
		for _, p := range role.Permissions {
			if _, ok := seen[p.Name]; ok {
				continue
			}
			seen[p.Name] = struct{}{}
			names = append(names, p.Name)
		}
	}
	return names
}

func IsEmail(identity string) bool {
	return identity != "" && strings.Contains(identity, "@") && strings.Contains(identity, ".")
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
