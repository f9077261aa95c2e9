package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/joefazee/betpoints/internal/validator"
	"github.com/joefazee/betpoints/models"
)

// RegisterUserRequest represents the request to create a user.
type RegisterUserRequest struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
	CountryCode string `json:"country_code"`
}

func (r *RegisterUserRequest) Validate(v *validator.Validator) bool {
	v.Check(validator.NotBlank(r.DisplayName), "display_name", "must be provided")
	v.Check(validator.MinRunes(r.DisplayName, 2) && validator.MaxRunes(r.DisplayName, 100), "display_name", "must be between 2 and 100 characters")
	v.Check(validator.IsEmail(r.Email), "email", "must be a valid email address")
	v.Check(validator.MinRunes(r.Password, 8), "password", "must be at least 8 characters")
	v.Check(len(r.Password) <= 72, "password", "must not be more than 72 bytes")
	if r.PhoneNumber != "" {
		v.Check(len(r.CountryCode) == 2, "country_code", "must be a two letter country code when a phone number is given")
	}
	return v.Valid()
}

// LoginRequest represents the request to log in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Response is the caller's own account.
type Response struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	AvatarURL   string    `json:"avatar_url"`
	Balance     int64     `json:"balance"`
	CreatedAt   time.Time `json:"created_at"`
}

// PublicProfile is what other players can see.
type PublicProfile struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        Response  `json:"user"`
}

func ToResponse(u *models.User) Response {
	return Response{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Phone:       u.Phone,
		AvatarURL:   u.AvatarURL,
		Balance:     u.Balance,
		CreatedAt:   u.CreatedAt,
	}
}

func ToPublicProfile(u *models.User) PublicProfile {
	return PublicProfile{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
	}
}
