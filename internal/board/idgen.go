package board

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces identifiers that never repeat within a process.
type Generator func() ID

// UUIDv7 returns a Generator backed by time-ordered RFC 9562 UUIDs.
func UUIDv7() Generator {
	return func() ID {
		return ID(uuid.Must(uuid.NewV7()).String())
	}
}

// Sequential returns a Generator yielding prefix1, prefix2, ...
// Useful where readable IDs matter more than global uniqueness (tests, demos).
func Sequential(prefix string) Generator {
	var n atomic.Int64
	return func() ID {
		return ID(prefix + strconv.FormatInt(n.Add(1), 10))
	}
}
