package store

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// UnknownEntityError reports a team or stadium name that the alias table
// cannot resolve. Inserting a nonsense record would poison the historical
// table, so the lookup fails loudly instead.
type UnknownEntityError struct {
	Kind string
	Name string
}

func (e *UnknownEntityError) Error() string {
	return fmt.Sprintf("unknown %s: %q", e.Kind, e.Name)
}

// IsUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation, the signal that a game or entity was inserted twice.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
