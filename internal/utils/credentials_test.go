package utils_test

import (
	"strings"
	"testing"
	"time"

	"github.com/sgoap/sgoap-backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePassword_Format(t *testing.T) {
	hireDate := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	// Run repeatedly since the last two characters are random.
	for i := 0; i < 50; i++ {
		pw := utils.GeneratePassword("John Smith", hireDate)
		require.Len(t, pw, 8)
		assert.Equal(t, "JS2024", pw[:6])
		assert.Contains(t, "!@#$%^&*", string(pw[6]))
		assert.GreaterOrEqual(t, pw[7], byte('0'))
		assert.LessOrEqual(t, pw[7], byte('9'))
	}
}

func TestGeneratePassword_Initials(t *testing.T) {
	hireDate := time.Date(2021, time.June, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		fullName string
		want     string
	}{
		{"first and last token", "John Smith", "JS"},
		{"middle names ignored", "Maria del Carmen Ortega", "MO"},
		{"single token uses first two letters", "Cher", "CH"},
		{"lowercase input is uppercased", "jane doe", "JD"},
		{"empty name falls back", "", "US"},
		{"whitespace-only name falls back", "   ", "US"},
		{"single letter token falls back", "X", "US"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pw := utils.GeneratePassword(tt.fullName, hireDate)
			require.Len(t, pw, 8)
			assert.Equal(t, tt.want, pw[:2])
			assert.Equal(t, "2021", pw[2:6])
		})
	}
}

func TestGeneratePassword_ZeroHireDateUsesCurrentYear(t *testing.T) {
	pw := utils.GeneratePassword("John Smith", time.Time{})
	require.Len(t, pw, 8)
	year := time.Now().Format("2006")
	assert.True(t, strings.HasPrefix(pw, "JS"+year), "got %q, want prefix JS%s", pw, year)
}
