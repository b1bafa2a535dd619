package storage

import "errors"

// Sentinel errors shared by every store driver. The postgres driver maps
// sql.ErrNoRows and pq error codes onto these; the memory driver raises them
// directly. Resolvers match on them with errors.Is and translate them into
// user-facing messages.
var (
	// ErrNotFound is returned by updates and deletes that target a record
	// that does not exist. Single-record lookups do NOT return it: a missing
	// record on read is (nil, nil).
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when an insert violates a uniqueness
	// constraint, e.g. a second profile for the same user or a repeated
	// (subscriber, author) pair.
	ErrDuplicate = errors.New("record already exists")

	// ErrForeignKey is returned when a write references a missing parent
	// record, e.g. createPost with an unknown authorId.
	ErrForeignKey = errors.New("related record not found")
)
