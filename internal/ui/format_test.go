package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRelative(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ts   time.Time
		want string
	}{
		{name: "minutes", ts: now.Add(-25 * time.Minute), want: "25m ago"},
		{name: "just now", ts: now, want: "0m ago"},
		{name: "hours", ts: now.Add(-3 * time.Hour), want: "3h ago"},
		{name: "days", ts: now.Add(-50 * time.Hour), want: "2d ago"},
		{name: "older than a week", ts: now.Add(-8 * 24 * time.Hour), want: "6/7/2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatRelative(tt.ts, now))
		})
	}
}

func TestFormatDay(t *testing.T) {
	now := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, "Today", formatDay(now.Add(-time.Hour), now))
	assert.Equal(t, "Yesterday", formatDay(now.AddDate(0, 0, -1), now))
	assert.Equal(t, "6/1/2025", formatDay(time.Date(2025, 6, 1, 23, 0, 0, 0, time.UTC), now))
}

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: "U"},
		{name: "single word", in: "alice", want: "A"},
		{name: "two words", in: "User 1234", want: "U1"},
		{name: "many words capped at two", in: "a b c d", want: "AB"},
		{name: "whitespace only", in: "   ", want: "U"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, initials(tt.in))
		})
	}
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 B", formatSize(512))
	assert.Equal(t, "2.0 KB", formatSize(2048))
	assert.Equal(t, "1.50 MB", formatSize(3<<20/2))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exact", truncate("exact", 5))
	assert.Equal(t, "long…", truncate("longer text", 5))
	assert.Equal(t, "…", truncate("ab", 1))
}
