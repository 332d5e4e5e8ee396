package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestThrottle_CollapsesBursts(t *testing.T) {
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	th := NewThrottle(time.Second)
	th.now = func() time.Time { return clock }

	assert.True(t, th.Allow(), "first call passes")
	assert.False(t, th.Allow(), "burst is dropped")

	clock = clock.Add(500 * time.Millisecond)
	assert.False(t, th.Allow(), "still inside the window")

	clock = clock.Add(500 * time.Millisecond)
	assert.True(t, th.Allow(), "window elapsed")
	assert.False(t, th.Allow())
}

func TestDebouncer_OnlyLatestTickIsLive(t *testing.T) {
	var d Debouncer

	first := d.Touch()
	second := d.Touch()
	third := d.Touch()

	assert.False(t, d.Live(first))
	assert.False(t, d.Live(second))
	assert.True(t, d.Live(third))

	fourth := d.Touch()
	assert.False(t, d.Live(third))
	assert.True(t, d.Live(fourth))
}
