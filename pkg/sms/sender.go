package sms

import (
	"context"
	"fmt"
	"strings"

	"github.com/rahulmehta/fieldcrm-backend/pkg/config"
	"github.com/rahulmehta/fieldcrm-backend/pkg/logger"
	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Sender delivers one-time codes to a phone number.
type Sender interface {
	SendOTP(ctx context.Context, contactNumber, code string) error
}

// New returns the configured sender. With UseMock set (the default) codes are
// logged instead of sent, which keeps local development free of Twilio
// credentials.
func New(cfg config.SMSConfig, logg *logger.Logger) (Sender, error) {
	if cfg.UseMock {
		return &mockSender{logg: logg}, nil
	}
	if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.FromNumber == "" {
		return nil, fmt.Errorf("twilio credentials are required when sms mock is disabled")
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &twilioSender{client: client, cfg: cfg, logg: logg}, nil
}

type twilioSender struct {
	client *twilio.RestClient
	cfg    config.SMSConfig
	logg   *logger.Logger
}

func (s *twilioSender) SendOTP(ctx context.Context, contactNumber, code string) error {
	params := &twilioapi.CreateMessageParams{}
	params.SetTo(normalizeRecipient(contactNumber, s.cfg.CountryCode))
	params.SetFrom(s.cfg.FromNumber)
	params.SetBody(otpMessage(code))

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("sending otp sms: %w", err)
	}
	if s.logg != nil && resp.Sid != nil {
		s.logg.Info(s.logg.WithField(ctx, "message_sid", *resp.Sid), "otp sms dispatched")
	}
	return nil
}

type mockSender struct {
	logg *logger.Logger
}

func (s *mockSender) SendOTP(ctx context.Context, contactNumber, code string) error {
	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"contact_number": contactNumber,
			"code":           code,
		})
		s.logg.Info(ctx, "mock otp sms")
	}
	return nil
}

func otpMessage(code string) string {
	return fmt.Sprintf("Your CRM login OTP is %s. It expires in 5 minutes.", code)
}

func normalizeRecipient(contactNumber, countryCode string) string {
	if strings.HasPrefix(contactNumber, "+") {
		return contactNumber
	}
	return countryCode + contactNumber
}
