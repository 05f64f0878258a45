// Package persistence defines the key/value store used to save tier lists.
package persistence

import (
	"context"
	"errors"
	"regexp"
	"strings"
)

// KeyPrefix namespaces every saved tier list.
const KeyPrefix = "tierMaker_"

// ErrNotFound is returned when no blob is stored under a key.
var ErrNotFound = errors.New("saved list not found")

// Gateway stores opaque blobs by key.
type Gateway interface {
	Put(ctx context.Context, key string, blob []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Keys(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, key string) error
	Close() error
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Sanitize replaces each run of whitespace in title with a single underscore.
func Sanitize(title string) string {
	return whitespaceRun.ReplaceAllString(title, "_")
}

// Key returns the storage key for a board title.
func Key(title string) string {
	return KeyPrefix + Sanitize(title)
}

// Name strips KeyPrefix from a storage key.
func Name(key string) string {
	return strings.TrimPrefix(key, KeyPrefix)
}
