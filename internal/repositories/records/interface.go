// Package records implements the raw key/value surface of the local record
// store on top of SQL databases. Values are opaque bytes; encoding and
// validation belong to the store package.
package records

import "context"

// Repository is a durable key/value table.
//
// Get returns (nil, nil) for an absent key. Set overwrites unconditionally.
// Delete of an absent key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
}
