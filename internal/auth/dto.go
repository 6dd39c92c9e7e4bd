package auth

import (
	"time"

	"github.com/google/uuid"
)

// SendOTPRequest asks for a one-time code for the given phone number.
type SendOTPRequest struct {
	ContactNumber string `json:"contactNumber" validate:"required"`
}

// VerifyOTPRequest submits the code received over SMS.
type VerifyOTPRequest struct {
	ContactNumber string `json:"contactNumber" validate:"required"`
	OTP           string `json:"otp" validate:"required,len=6,numeric"`
}

// CompleteSignupRequest finishes registration for a phone number that passed
// OTP verification but has no user yet.
type CompleteSignupRequest struct {
	ContactNumber string `json:"contactNumber" validate:"required"`
	Name          string `json:"name" validate:"required,min=2"`
	Email         string `json:"email" validate:"required,email"`
}

// UserProfile is the sanitized user payload returned after login.
type UserProfile struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	ContactNumber    string     `json:"contactNumber"`
	RoleID           *string    `json:"roleId,omitempty"`
	Roles            []string   `json:"roles,omitempty"`
	FunctionalRoleID *uuid.UUID `json:"functionalRoleId,omitempty"`
	IsActive         bool       `json:"isActive"`
	LastLogin        *time.Time `json:"lastLogin,omitempty"`
}

// VerifyOTPResponse reports either a logged-in user or a pending signup.
type VerifyOTPResponse struct {
	IsNewUser bool         `json:"isNewUser"`
	Token     string       `json:"token,omitempty"`
	User      *UserProfile `json:"user,omitempty"`
}

// CompleteSignupResponse returns the freshly created user and their token.
type CompleteSignupResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}
