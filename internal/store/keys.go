package store

import "strings"

// Record families of the local record store.
const (
	KeyAccounts = "accounts"
	KeySession  = "session"

	statePrefix = "state:"
)

// StateKey is the key of the per-account state for accountID.
func StateKey(accountID string) string {
	return statePrefix + accountID
}

// IsStateKey reports whether key belongs to the per-account state family.
func IsStateKey(key string) bool {
	return strings.HasPrefix(key, statePrefix)
}
