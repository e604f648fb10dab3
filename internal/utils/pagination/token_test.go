package pagination_test

import (
	"testing"
	"time"

	"github.com/sgoap/sgoap-backend/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken_RoundTrip(t *testing.T) {
	createdAt := time.Date(2025, time.November, 3, 14, 30, 15, 123456789, time.UTC)
	id := "pr-42"

	token := pagination.EncodeToken(createdAt, id)
	require.NotEmpty(t, token)

	gotTime, gotID, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(gotTime))
	assert.Equal(t, id, gotID)
}

func TestDecodeToken_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"not base64", "!!not-base64!!"},
		{"missing separator", "bm8tc2VwYXJhdG9y"}, // "no-separator"
		{"bad timestamp", "bm90LWEtdGltZXxpZA=="}, // "not-a-time|id"
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := pagination.DecodeToken(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestDateBasedToken_RoundTrip(t *testing.T) {
	date := time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC)

	token := pagination.EncodeDateBasedToken(date)
	got, err := pagination.DecodeDateBasedToken(token)
	require.NoError(t, err)
	assert.True(t, date.Equal(got))
}
