// Package user holds the account records the workflow touches: the requester
// who gets a manager role on approval, the investigator whose staff flag
// gates review transitions, and the restriction flag set by a rejection with
// prejudice.
package user

import (
	"context"
	"time"

	id "registrar/pkg/domain"
)

// User is an account known to the registrar.
type User struct {
	ID         id.UserID `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	IsStaff    bool      `json:"is_staff"`
	Restricted bool      `json:"restricted"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Role names a user's relationship to a domain.
type Role string

// RoleManager lets a user manage a provisioned domain.
const RoleManager Role = "manager"

// DomainRole links a user to a domain with a role. Granting is get-or-create;
// approving the same name twice never duplicates the link.
type DomainRole struct {
	UserID    id.UserID   `json:"user_id"`
	DomainID  id.DomainID `json:"domain_id"`
	Role      Role        `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// Store is the persistence surface for accounts and domain roles.
type Store interface {
	FindByID(ctx context.Context, userID id.UserID) (*User, error)
	Save(ctx context.Context, u *User) error
	// Restrict marks the account so it can no longer create or submit
	// requests. Set by rejection with prejudice and never unset here.
	Restrict(ctx context.Context, userID id.UserID) error
	// GrantManager gives the user the manager role on a domain, creating the
	// link only when it does not already exist.
	GrantManager(ctx context.Context, userID id.UserID, domainID id.DomainID) error
}
