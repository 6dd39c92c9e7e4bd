package otp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rahulmehta/fieldcrm-backend/pkg/config"
	redisclient "github.com/rahulmehta/fieldcrm-backend/pkg/redis"
	"github.com/rahulmehta/fieldcrm-backend/pkg/security"
	redislib "github.com/redis/go-redis/v9"
)

const codeLength = 6

var (
	// ErrNotFound signals that no active code exists for the phone number.
	ErrNotFound = errors.New("otp not found or expired")
	// ErrMismatch signals that the provided code does not match the stored one.
	ErrMismatch = errors.New("otp does not match")
)

type otpStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
	Del(ctx context.Context, keys ...string) error
}

type otpKeyer interface {
	OTPKey(contactNumber string) string
	OTPVerifiedKey(contactNumber string) string
}

// Store keeps hashed one-time codes in Redis so they survive process restarts
// and are shared across replicas.
type Store struct {
	store otpStore
	keyer otpKeyer
	cfg   config.OTPConfig
}

// NewStore constructs a Redis-backed OTP store.
func NewStore(client *redisclient.Client, cfg config.OTPConfig) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("otp ttl must be positive")
	}
	return &Store{store: client, keyer: client, cfg: cfg}, nil
}

// Issue generates a fresh code for the phone number, stores its hash with the
// configured TTL, and returns the plain code for delivery.
func (s *Store) Issue(ctx context.Context, contactNumber string) (string, error) {
	if strings.TrimSpace(contactNumber) == "" {
		return "", fmt.Errorf("contact number is required")
	}
	code, err := security.GenerateOTP(codeLength)
	if err != nil {
		return "", err
	}
	hash, err := security.HashOTP(code, s.cfg)
	if err != nil {
		return "", err
	}
	if err := s.store.Set(ctx, s.keyer.OTPKey(contactNumber), hash, s.cfg.TTL); err != nil {
		return "", fmt.Errorf("storing otp: %w", err)
	}
	return code, nil
}

// CanResend reports whether enough time has passed since the last issue to
// send a new code. A fresh code's remaining TTL tells us how long ago it was
// issued.
func (s *Store) CanResend(ctx context.Context, contactNumber string) (bool, time.Duration, error) {
	remaining, err := s.store.TTL(ctx, s.keyer.OTPKey(contactNumber))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return true, 0, nil
		}
		return false, 0, err
	}
	if remaining <= 0 {
		return true, 0, nil
	}
	elapsed := s.cfg.TTL - remaining
	if elapsed >= s.cfg.ResendAfter {
		return true, 0, nil
	}
	return false, s.cfg.ResendAfter - elapsed, nil
}

// Verify checks the provided code against the stored hash. On success the
// code is consumed and cannot be replayed.
func (s *Store) Verify(ctx context.Context, contactNumber, code string) error {
	key := s.keyer.OTPKey(contactNumber)
	hash, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return ErrNotFound
		}
		return err
	}
	ok, err := security.VerifyOTP(code, hash)
	if err != nil {
		return err
	}
	if !ok {
		return ErrMismatch
	}
	return s.store.Del(ctx, key)
}

// MarkVerified records that the phone number passed OTP verification, so the
// signup completion step can trust it without a second code.
func (s *Store) MarkVerified(ctx context.Context, contactNumber string) error {
	return s.store.Set(ctx, s.keyer.OTPVerifiedKey(contactNumber), "1", s.cfg.VerifiedTTL)
}

// IsVerified reports whether the phone number holds an unexpired verification marker.
func (s *Store) IsVerified(ctx context.Context, contactNumber string) (bool, error) {
	_, err := s.store.Get(ctx, s.keyer.OTPVerifiedKey(contactNumber))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ClearVerified removes the verification marker once signup completes.
func (s *Store) ClearVerified(ctx context.Context, contactNumber string) error {
	return s.store.Del(ctx, s.keyer.OTPVerifiedKey(contactNumber))
}
