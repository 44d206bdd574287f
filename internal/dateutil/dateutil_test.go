package dateutil

import (
	"testing"
	"time"
)

func TestFormatLong(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"single digit day zero padded", time.Date(2024, time.March, 3, 10, 0, 0, 0, time.UTC), "March 03, 2024"},
		{"double digit day", time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), "December 31, 2025"},
		{"first of january", time.Date(2026, time.January, 1, 23, 59, 0, 0, time.UTC), "January 01, 2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatLong(tt.in); got != tt.want {
				t.Errorf("FormatLong() = %q, want %q", got, tt.want)
			}
		})
	}
}
