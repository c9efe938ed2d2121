package domain

import "context"

// BlobSource yields the raw eatery documents the catalog is built from.
type BlobSource interface {
	// List enumerates blob names in whatever order the source yields them.
	// An error here is fatal for loading.
	List(ctx context.Context) ([]string, error)
	// Read returns one blob's full contents. Errors drop only that blob.
	Read(ctx context.Context, name string) ([]byte, error)
	String() string
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Response envelope for list and search, matching the public JSON shape.
type EateryList struct {
	Restaurants []EateryBasic `json:"restaurants"`
}
