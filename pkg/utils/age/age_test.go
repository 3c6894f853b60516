package age

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	want := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
	}{
		{"rfc3339", "2024-05-01T09:30:00Z"},
		{"rfc1123z", "Wed, 01 May 2024 09:30:00 +0000"},
		{"single digit day", "Wed, 1 May 2024 09:30:00 +0000"},
		{"space separated", "2024-05-01 09:30:00"},
		{"padded", "  2024-05-01T09:30:00Z\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, want.Equal(Parse(tt.input)), "got %v", Parse(tt.input))
		})
	}

	assert.True(t, Parse("").IsZero())
	assert.True(t, Parse("last tuesday").IsZero())
	assert.Equal(t, "2024-05-01", Parse("2024-05-01").Format("2006-01-02"))
}

func TestParseOr(t *testing.T) {
	fallback := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, fallback, ParseOr("garbage", fallback))
	assert.Equal(t, 2024, ParseOr("2024-05-01", fallback).Year())
}

func TestLabel(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		ago  time.Duration
		want string
	}{
		{0, "0m •"},
		{-time.Hour, "0m •"},
		{45 * time.Minute, "45m •"},
		{3 * time.Hour, "3h •"},
		{23*time.Hour + 59*time.Minute, "23h •"},
		{2 * day, "2d •"},
		{8 * day, "1w •"},
		{29 * day, "4w •"},
		{65 * day, "2mo •"},
		{800 * day, "2y •"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Label(now.Add(-tt.ago), now))
		})
	}
}
