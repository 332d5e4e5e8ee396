// Package store holds the client's application state.
//
// Both stores are confined to the UI event loop: every mutation runs
// synchronously on a single logical thread, so no locking happens here.
// Each mutation of persisted fields rewrites the store's snapshot through
// the repository; persistence failures are logged and otherwise ignored.
package store

import (
	"log/slog"

	"github.com/raphaelgruber/gemchat/internal/models"
	"github.com/raphaelgruber/gemchat/internal/storage"
)

// Session holds authentication state plus the draft fields collected during
// the phone/OTP flow. Only {isAuthenticated, user} survive a restart; the
// draft fields are session-only.
type Session struct {
	repo   storage.Repository
	logger *slog.Logger

	defaultCountryCode string

	isAuthenticated bool
	user            *models.User
	phoneNumber     string
	countryCode     string
	otpSent         bool
	otpVerified     bool
}

// sessionSnapshot is the persisted subset of the session state.
type sessionSnapshot struct {
	IsAuthenticated bool         `json:"isAuthenticated"`
	User            *models.User `json:"user"`
}

// NewSession rehydrates the session from the repository.
func NewSession(repo storage.Repository, logger *slog.Logger, defaultCountryCode string) *Session {
	s := &Session{
		repo:               repo,
		logger:             logger,
		defaultCountryCode: defaultCountryCode,
		countryCode:        defaultCountryCode,
	}

	var snap sessionSnapshot
	found, err := repo.Load(storage.KeyAuth, &snap)
	if err != nil {
		logger.Warn("failed to load session snapshot", "error", err)
	}
	if found {
		s.isAuthenticated = snap.IsAuthenticated
		s.user = snap.User
	}
	return s
}

// SetPhoneNumber overwrites the phone draft. No validation happens here;
// the presentation layer validates before calling the mock service.
func (s *Session) SetPhoneNumber(v string) { s.phoneNumber = v }

// SetCountryCode overwrites the country-code draft.
func (s *Session) SetCountryCode(v string) { s.countryCode = v }

// SetOTPSent toggles the OTP-sent flag.
func (s *Session) SetOTPSent(v bool) { s.otpSent = v }

// SetOTPVerified toggles the OTP-verified flag.
func (s *Session) SetOTPVerified(v bool) { s.otpVerified = v }

// Login marks the session authenticated and stores the user. The OTP flags
// are cleared; the persisted snapshot updates.
func (s *Session) Login(user models.User) {
	s.isAuthenticated = true
	s.user = &user
	s.otpSent = false
	s.otpVerified = false
	s.persist()
}

// Logout resets the whole session to its initial unauthenticated state.
// Chat data is owned elsewhere and untouched.
func (s *Session) Logout() {
	s.isAuthenticated = false
	s.user = nil
	s.phoneNumber = ""
	s.countryCode = s.defaultCountryCode
	s.otpSent = false
	s.otpVerified = false
	s.persist()
}

// ResetAuth clears only the OTP/draft-phase fields, used when backing out of
// OTP entry to phone entry. Authentication state is untouched.
func (s *Session) ResetAuth() {
	s.otpSent = false
	s.otpVerified = false
	s.phoneNumber = ""
	s.countryCode = s.defaultCountryCode
}

// IsAuthenticated reports whether a user is logged in.
func (s *Session) IsAuthenticated() bool { return s.isAuthenticated }

// User returns the current user, or nil when logged out.
func (s *Session) User() *models.User { return s.user }

// PhoneNumber returns the phone draft.
func (s *Session) PhoneNumber() string { return s.phoneNumber }

// CountryCode returns the country-code draft.
func (s *Session) CountryCode() string { return s.countryCode }

// OTPSent reports whether a code has been requested this session.
func (s *Session) OTPSent() bool { return s.otpSent }

// OTPVerified reports whether the code was accepted this session.
func (s *Session) OTPVerified() bool { return s.otpVerified }

func (s *Session) persist() {
	snap := sessionSnapshot{
		IsAuthenticated: s.isAuthenticated,
		User:            s.user,
	}
	if err := s.repo.Save(storage.KeyAuth, snap); err != nil {
		s.logger.Warn("failed to persist session snapshot", "error", err)
	}
}
