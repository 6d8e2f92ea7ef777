package trips

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextTripID(t *testing.T) {
	tests := []struct {
		name   string
		lastID string
		want   string
	}{
		{"first trip", "", "TRP-0001"},
		{"increments", "TRP-0001", "TRP-0002"},
		{"zero padded", "TRP-0009", "TRP-0010"},
		{"grows past padding", "TRP-9999", "TRP-10000"},
		{"unparseable falls back", "TRP-ABCD", "TRP-0001"},
		{"foreign prefix falls back", "JOB-0042", "TRP-0001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextTripID(tt.lastID))
		})
	}
}

func TestNextTripIDMonotonic(t *testing.T) {
	last := ""
	for i := 1; i <= 10; i++ {
		last = NextTripID(last)
		assert.Equal(t, fmt.Sprintf("TRP-%04d", i), last)
	}
}
