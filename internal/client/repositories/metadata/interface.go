package metadata

import (
	"context"
)

// Repository is a durable key/value store for client-local state such as the
// session token. Get returns common.ErrNotFound for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
