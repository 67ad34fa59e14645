package service

import (
	"errors"

	"github.com/ecolearners/platform-api/internal/models"
)

// ErrForbidden indicates the authenticated principal lacks the role or
// ownership required by the operation.
var ErrForbidden = errors.New("forbidden")

// Principal is the authenticated (user, role) pair supplied by the auth
// middleware. Business logic trusts it completely and never re-derives it.
type Principal struct {
	ID   uint
	Role string
}

// IsTeacher reports whether the principal holds the teacher role.
func (p Principal) IsTeacher() bool {
	return p.Role == models.RoleTeacher
}
