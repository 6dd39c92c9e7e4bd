package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/rahulmehta/fieldcrm-backend/pkg/auth"
	"github.com/rahulmehta/fieldcrm-backend/pkg/config"
	"github.com/rahulmehta/fieldcrm-backend/pkg/db"
	"github.com/rahulmehta/fieldcrm-backend/pkg/db/models"
	pkgerrors "github.com/rahulmehta/fieldcrm-backend/pkg/errors"
	"github.com/rahulmehta/fieldcrm-backend/pkg/otp"
)

const (
	defaultSignupRole = "Telecaller"
	telecallerRoleID  = "telecaller"
)

// Service defines the behavior needed by the auth controller.
type Service interface {
	SendOTP(ctx context.Context, req SendOTPRequest) error
	VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*VerifyOTPResponse, error)
	CompleteSignup(ctx context.Context, req CompleteSignupRequest) (*CompleteSignupResponse, error)
	Profile(ctx context.Context, userID uuid.UUID) (*UserProfile, error)
}

type userRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByContactNumber(ctx context.Context, contactNumber string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type roleRepository interface {
	FindFunctionalRoleByName(ctx context.Context, name string) (*models.FunctionalRole, error)
}

type otpStore interface {
	Issue(ctx context.Context, contactNumber string) (string, error)
	CanResend(ctx context.Context, contactNumber string) (bool, time.Duration, error)
	Verify(ctx context.Context, contactNumber, code string) error
	MarkVerified(ctx context.Context, contactNumber string) error
	IsVerified(ctx context.Context, contactNumber string) (bool, error)
	ClearVerified(ctx context.Context, contactNumber string) error
}

type smsSender interface {
	SendOTP(ctx context.Context, contactNumber, code string) error
}

type service struct {
	users  userRepository
	roles  roleRepository
	otp    otpStore
	sms    smsSender
	jwtCfg config.JWTConfig
	now    func() time.Time
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo  userRepository
	RoleRepo  roleRepository
	OTPStore  otpStore
	SMSSender smsSender
	JWTConfig config.JWTConfig
}

// NewService constructs the OTP auth service.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.OTPStore == nil {
		return nil, fmt.Errorf("otp store is required")
	}
	if params.SMSSender == nil {
		return nil, fmt.Errorf("sms sender is required")
	}
	return &service{
		users:  params.UserRepo,
		roles:  params.RoleRepo,
		otp:    params.OTPStore,
		sms:    params.SMSSender,
		jwtCfg: params.JWTConfig,
		now:    time.Now,
	}, nil
}

func (s *service) SendOTP(ctx context.Context, req SendOTPRequest) error {
	phone := CleanContactNumber(req.ContactNumber)
	if phone == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "Contact number is required")
	}

	ok, wait, err := s.otp.CanResend(ctx, phone)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check otp resend window")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeRateLimit,
			fmt.Sprintf("OTP already sent. Please retry after %d seconds.", int(wait.Seconds())))
	}

	code, err := s.otp.Issue(ctx, phone)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "issue otp")
	}

	if err := s.sms.SendOTP(ctx, phone, code); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send otp sms")
	}
	return nil
}

func (s *service) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*VerifyOTPResponse, error) {
	phone := CleanContactNumber(req.ContactNumber)
	if phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Contact number is required")
	}

	if err := s.otp.Verify(ctx, phone, req.OTP); err != nil {
		switch {
		case errors.Is(err, otp.ErrNotFound):
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "OTP expired or not requested")
		case errors.Is(err, otp.ErrMismatch):
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid OTP")
		default:
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "verify otp")
		}
	}

	user, err := s.users.FindByContactNumber(ctx, phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No user yet: remember the verification so signup can complete it.
			if err := s.otp.MarkVerified(ctx, phone); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark phone verified")
			}
			return &VerifyOTPResponse{IsNewUser: true}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}

	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Account is deactivated")
	}

	now := s.now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record login")
	}
	user.LastLogin = &now

	token, err := s.mintToken(user, now)
	if err != nil {
		return nil, err
	}

	profile := profileOf(user)
	return &VerifyOTPResponse{
		IsNewUser: false,
		Token:     token,
		User:      &profile,
	}, nil
}

func (s *service) CompleteSignup(ctx context.Context, req CompleteSignupRequest) (*CompleteSignupResponse, error) {
	phone := CleanContactNumber(req.ContactNumber)
	if phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Contact number is required")
	}

	verified, err := s.otp.IsVerified(ctx, phone)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check verification marker")
	}
	if !verified {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Phone number not verified. Request an OTP first.")
	}

	if _, err := s.users.FindByContactNumber(ctx, phone); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "An account with this contact number already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check contact number")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "An account with this email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check email")
	}

	roleID := telecallerRoleID
	now := s.now().UTC()
	user := &models.User{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(req.Name),
		Email:         email,
		ContactNumber: phone,
		RoleID:        &roleID,
		IsActive:      true,
		LastLogin:     &now,
	}
	if s.roles != nil {
		if role, err := s.roles.FindFunctionalRoleByName(ctx, defaultSignupRole); err == nil {
			user.FunctionalRoleID = &role.ID
			user.DepartmentID = role.DepartmentID
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load default role")
		}
	}

	if err := s.users.Create(ctx, user); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "An account with this email or contact number already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}

	if err := s.otp.ClearVerified(ctx, phone); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear verification marker")
	}

	token, err := s.mintToken(user, now)
	if err != nil {
		return nil, err
	}

	return &CompleteSignupResponse{
		Token: token,
		User:  profileOf(user),
	}, nil
}

func (s *service) Profile(ctx context.Context, userID uuid.UUID) (*UserProfile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "User not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	profile := profileOf(user)
	return &profile, nil
}

func (s *service) mintToken(user *models.User, now time.Time) (string, error) {
	role := telecallerRoleID
	if user.RoleID != nil && *user.RoleID != "" {
		role = *user.RoleID
	}
	token, err := pkgAuth.MintAccessToken(s.jwtCfg, now, pkgAuth.AccessTokenPayload{
		UserID:           user.ID,
		Role:             role,
		Roles:            user.Roles,
		FunctionalRoleID: user.FunctionalRoleID,
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	return token, nil
}

func profileOf(user *models.User) UserProfile {
	return UserProfile{
		ID:               user.ID,
		Name:             user.Name,
		Email:            user.Email,
		ContactNumber:    user.ContactNumber,
		RoleID:           user.RoleID,
		Roles:            user.Roles,
		FunctionalRoleID: user.FunctionalRoleID,
		IsActive:         user.IsActive,
		LastLogin:        user.LastLogin,
	}
}
