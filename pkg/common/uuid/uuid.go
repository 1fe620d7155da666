package uuid

import (
	gofrs "github.com/gofrs/uuid/v5"
)

// UUID is the project-wide identifier type. Alias keeps gorm/gin tag
// handling identical to the underlying gofrs type.
type UUID = gofrs.UUID

var Nil = gofrs.Nil

// New returns a time-ordered V7 UUID.
func New() UUID {
	return gofrs.Must(gofrs.NewV7())
}

func FromString(s string) (UUID, error) {
	return gofrs.FromString(s)
}

func MustFromString(s string) UUID {
	return gofrs.Must(gofrs.FromString(s))
}
