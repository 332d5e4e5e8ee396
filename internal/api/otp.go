package api

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	cache "github.com/patrickmn/go-cache"

	"github.com/raphaelgruber/gemchat/internal/models"
	"github.com/raphaelgruber/gemchat/internal/storage"
)

// ErrInvalidOTP is returned when the submitted code does not match the most
// recently issued one.
var ErrInvalidOTP = errors.New("invalid OTP")

// Cache keys for the issued-code bookkeeping. Verification always checks the
// code of the most recently requested phone number.
const (
	lastPhoneKey = "last-phone"
	codePrefix   = "code:"
)

// OTPChallenge is the result of requesting a code. The code is included so
// the host UI can surface it; a real backend would deliver it out of band.
type OTPChallenge struct {
	Phone   string `json:"phone"`
	Code    string `json:"code"`
	Message string `json:"-"`
}

// SendOTP issues a 6-digit code for the given number. It always succeeds.
// The code is kept in memory, mirrored in cleartext to durable storage, and
// written to the log - this is a mock, not an authentication scheme.
func (s *Service) SendOTP(ctx context.Context, phoneNumber, countryCode string) (*OTPChallenge, error) {
	if err := s.wait(ctx, sendOTPLatency); err != nil {
		return nil, err
	}

	phone := countryCode + phoneNumber
	code := fmt.Sprintf("%06d", 100000+rand.IntN(900000))

	s.codes.Set(codePrefix+phone, code, cache.NoExpiration)
	s.codes.Set(lastPhoneKey, phone, cache.NoExpiration)

	challenge := &OTPChallenge{Phone: phone, Code: code, Message: "OTP sent successfully"}
	if err := s.repo.Save(storage.KeyOTP, challenge); err != nil {
		s.logger.Warn("failed to mirror OTP to storage", "error", err)
	}

	s.logger.Info("OTP sent", "phone", phone, "code", code)
	return challenge, nil
}

// VerifyOTP compares the submitted code against the one issued for the most
// recently requested phone number. On success it fabricates a user record
// and clears the stored code, making each code single-use.
func (s *Service) VerifyOTP(ctx context.Context, code string) (*models.User, error) {
	if err := s.wait(ctx, verifyOTPLatency); err != nil {
		return nil, err
	}

	lastRaw, ok := s.codes.Get(lastPhoneKey)
	if !ok {
		return nil, ErrInvalidOTP
	}
	phone := lastRaw.(string)

	storedRaw, ok := s.codes.Get(codePrefix + phone)
	if !ok || storedRaw.(string) != code {
		return nil, ErrInvalidOTP
	}

	s.codes.Delete(codePrefix + phone)
	s.codes.Delete(lastPhoneKey)
	if err := s.repo.Delete(storage.KeyOTP); err != nil {
		s.logger.Warn("failed to clear OTP mirror", "error", err)
	}

	last4 := phone
	if len(last4) > 4 {
		last4 = last4[len(last4)-4:]
	}
	user := &models.User{
		ID:    models.NewID(),
		Phone: phone,
		Name:  "User " + last4,
	}

	s.logger.Info("OTP verified", "phone", phone, "user_id", user.ID)
	return user, nil
}
