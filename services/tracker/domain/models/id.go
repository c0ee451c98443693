package models

import (
	"fmt"

	"github.com/google/uuid"
)

// ID identifies an aggregate of type T. The type parameter keeps a board id
// from being passed where a work item id is expected.
type ID[T any] struct {
	value uuid.UUID
}

// NewID generates a fresh random identifier.
func NewID[T any]() ID[T] {
	return ID[T]{value: uuid.New()}
}

// IDFrom wraps an existing UUID.
func IDFrom[T any](u uuid.UUID) ID[T] {
	return ID[T]{value: u}
}

// ParseID parses the canonical string form of a UUID.
func ParseID[T any](s string) (ID[T], error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ID[T]{}, fmt.Errorf("parse id: %w", err)
	}
	return ID[T]{value: u}, nil
}

// UUID returns the underlying UUID.
func (id ID[T]) UUID() uuid.UUID { return id.value }

// String returns the canonical string form.
func (id ID[T]) String() string { return id.value.String() }

// IsZero reports whether the id is unset.
func (id ID[T]) IsZero() bool { return id.value == uuid.Nil }

// MarshalText implements encoding.TextMarshaler.
func (id ID[T]) MarshalText() ([]byte, error) {
	return id.value.MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID[T]) UnmarshalText(b []byte) error {
	return id.value.UnmarshalText(b)
}

// UUIDs converts ids to their raw UUIDs.
func UUIDs[T any](ids []ID[T]) []uuid.UUID {
	out := make([]uuid.UUID, len(ids))
	for i, id := range ids {
		out[i] = id.value
	}
	return out
}

// IDsFrom converts raw UUIDs to typed ids.
func IDsFrom[T any](us []uuid.UUID) []ID[T] {
	out := make([]ID[T], len(us))
	for i, u := range us {
		out[i] = ID[T]{value: u}
	}
	return out
}
