// Package idx generates lexicographically sortable identifiers (ULIDs) for
// carbon offsets and investment receipts, so that they sort by creation time.
package idx

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// NewAt returns a new ULID string stamped with t. IDs generated within the
// same millisecond are strictly increasing.
func NewAt(t time.Time) string {
	mu.Lock()
	defer mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}
