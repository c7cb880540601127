package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsStaleBoundary(t *testing.T) {
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		last *time.Time
		want bool
	}{
		{"never seen", nil, true},
		{"just now", ptr(now), false},
		{"exactly at threshold", ptr(now.Add(-120 * time.Second)), false},
		{"one second past threshold", ptr(now.Add(-121 * time.Second)), true},
		{"one nanosecond past threshold", ptr(now.Add(-120*time.Second - time.Nanosecond)), true},
		{"hours old", ptr(now.Add(-3 * time.Hour)), true},
		{"timestamp in the future", ptr(now.Add(30 * time.Second)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStale(tt.last, now))
		})
	}
}

func TestRelativeAge(t *testing.T) {
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		last *time.Time
		want string
	}{
		{"never seen", nil, "—"},
		{"seconds", ptr(now.Add(-45 * time.Second)), "45s ago"},
		{"minute boundary", ptr(now.Add(-60 * time.Second)), "1m ago"},
		{"minutes", ptr(now.Add(-90 * time.Second)), "1m ago"},
		{"just under an hour", ptr(now.Add(-59*time.Minute - 59*time.Second)), "59m ago"},
		{"hour boundary", ptr(now.Add(-time.Hour)), "1h ago"},
		{"hours", ptr(now.Add(-2*time.Hour - 30*time.Minute)), "2h ago"},
		{"future clamps to zero", ptr(now.Add(time.Minute)), "0s ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeAge(tt.last, now))
		})
	}
}

func ptr(t time.Time) *time.Time { return &t }
