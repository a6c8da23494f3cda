package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWipeByteArray(t *testing.T) {
	secret := []byte("correct horse")
	WipeByteArray(secret)
	assert.Equal(t, make([]byte, len("correct horse")), secret)

	require.NotPanics(t, func() { WipeByteArray(nil) })
}

func TestGenerateRandByteArray(t *testing.T) {
	a := GenerateRandByteArray(32)
	b := GenerateRandByteArray(32)
	require.Len(t, a, 32)
	require.Len(t, b, 32)
	// 256 random bits colliding means the source is broken
	assert.NotEqual(t, a, b)

	assert.Empty(t, GenerateRandByteArray(0))
}

func TestSentinelErrors(t *testing.T) {
	all := []error{
		ErrAlreadyExists, ErrInvalidCredentials, ErrTooManyAttempts, ErrNoActiveAccount, ErrInvalidAccount,
		ErrCorruptRecord, ErrInvalidToken, ErrTokenExpired, ErrUnknownActivity,
		ErrInvalidQuantity, ErrInvalidOffset, ErrBusy, ErrUnsupportedPaymentMethod,
	}
	seen := make(map[string]bool, len(all))
	for _, e := range all {
		require.False(t, seen[e.Error()], "duplicate message %q", e.Error())
		seen[e.Error()] = true

		wrapped := fmt.Errorf("failed to get record[%s]: %w", "k", e)
		assert.True(t, errors.Is(wrapped, e))
	}
}
