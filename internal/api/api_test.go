package api

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/gemchat/internal/models"
	"github.com/raphaelgruber/gemchat/internal/storage"
)

func newService(repo *storage.MemoryRepository) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(repo, logger, WithoutLatency())
}

func TestCountries(t *testing.T) {
	s := newService(storage.NewMemoryRepository())

	countries, err := s.Countries(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, countries)

	byCode := make(map[string]models.Country, len(countries))
	for _, c := range countries {
		assert.NotEmpty(t, c.Name)
		assert.Regexp(t, `^\+\d{1,4}$`, c.DialCode)
		assert.Len(t, c.Code, 2)
		byCode[c.Code] = c
	}
	assert.Equal(t, "+44", byCode["GB"].DialCode)
	assert.Equal(t, "United States", byCode["US"].Name)
}

func TestSendOTP(t *testing.T) {
	repo := storage.NewMemoryRepository()
	s := newService(repo)

	challenge, err := s.SendOTP(context.Background(), "5551234", "+1")
	require.NoError(t, err)
	assert.Equal(t, "+15551234", challenge.Phone)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), challenge.Code)

	// The cleartext side-channel lands in durable storage.
	var mirrored OTPChallenge
	found, err := repo.Load(storage.KeyOTP, &mirrored)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, challenge.Code, mirrored.Code)
}

func TestVerifyOTP_WrongThenRight(t *testing.T) {
	repo := storage.NewMemoryRepository()
	s := newService(repo)
	ctx := context.Background()

	challenge, err := s.SendOTP(ctx, "5551234", "+1")
	require.NoError(t, err)

	wrong := "000000"
	if wrong == challenge.Code {
		wrong = "000001"
	}
	_, err = s.VerifyOTP(ctx, wrong)
	assert.ErrorIs(t, err, ErrInvalidOTP)

	user, err := s.VerifyOTP(ctx, challenge.Code)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "+15551234", user.Phone)
	assert.Equal(t, "User 1234", user.Name)
	assert.NotEmpty(t, user.ID)

	// Codes are single-use.
	_, err = s.VerifyOTP(ctx, challenge.Code)
	assert.ErrorIs(t, err, ErrInvalidOTP)
	assert.False(t, repo.Has(storage.KeyOTP), "side-channel cleared on success")
}

func TestVerifyOTP_ChecksMostRecentPhone(t *testing.T) {
	s := newService(storage.NewMemoryRepository())
	ctx := context.Background()

	first, err := s.SendOTP(ctx, "1111111111", "+1")
	require.NoError(t, err)
	second, err := s.SendOTP(ctx, "2222222222", "+44")
	require.NoError(t, err)

	if first.Code != second.Code {
		_, err = s.VerifyOTP(ctx, first.Code)
		assert.ErrorIs(t, err, ErrInvalidOTP, "older challenge is superseded")
	}

	user, err := s.VerifyOTP(ctx, second.Code)
	require.NoError(t, err)
	assert.Equal(t, "+442222222222", user.Phone)
}

func TestVerifyOTP_WithoutChallenge(t *testing.T) {
	s := newService(storage.NewMemoryRepository())

	_, err := s.VerifyOTP(context.Background(), "123456")
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestMockHistory(t *testing.T) {
	s := newService(storage.NewMemoryRepository())

	batch := s.MockHistory(15)
	require.Len(t, batch, 15)

	for i, msg := range batch {
		assert.Equal(t, models.KindText, msg.Type)
		if i%2 == 0 {
			assert.Equal(t, models.SenderUser, msg.Sender)
		} else {
			assert.Equal(t, models.SenderAI, msg.Sender)
		}
		if i > 0 {
			assert.True(t, msg.Timestamp.After(batch[i-1].Timestamp), "oldest first")
		}
	}
}

func TestWaitHonorsCancellation(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := New(storage.NewMemoryRepository(), logger) // latency on

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Countries(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
