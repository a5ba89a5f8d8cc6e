// Package domain defines the typed identifiers shared across the registrar.
//
// Every aggregate gets its own UUID-backed type so that a RequestID can never
// be passed where a DomainID is expected. Conversions to and from uuid.UUID
// are explicit.
package domain

import "github.com/google/uuid"

type (
	// RequestID identifies a domain request.
	RequestID uuid.UUID
	// DomainID identifies a registered (or locally provisioned) domain.
	DomainID uuid.UUID
	// UserID identifies a registrant or analyst account.
	UserID uuid.UUID
	// ContactID identifies a contact record attached to a request.
	ContactID uuid.UUID
)

func (id RequestID) String() string { return uuid.UUID(id).String() }
func (id DomainID) String() string  { return uuid.UUID(id).String() }
func (id UserID) String() string    { return uuid.UUID(id).String() }
func (id ContactID) String() string { return uuid.UUID(id).String() }

func (id RequestID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }
func (id DomainID) IsZero() bool  { return uuid.UUID(id) == uuid.Nil }
func (id UserID) IsZero() bool    { return uuid.UUID(id) == uuid.Nil }
func (id ContactID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// The defined types do not inherit uuid.UUID's text marshaling, so each one
// implements it explicitly. Without this, IDs would serialize as byte arrays.

func (id RequestID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id DomainID) MarshalText() ([]byte, error)  { return []byte(id.String()), nil }
func (id UserID) MarshalText() ([]byte, error)    { return []byte(id.String()), nil }
func (id ContactID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *RequestID) UnmarshalText(text []byte) error {
	u, err := uuid.ParseBytes(text)
	*id = RequestID(u)
	return err
}

func (id *DomainID) UnmarshalText(text []byte) error {
	u, err := uuid.ParseBytes(text)
	*id = DomainID(u)
	return err
}

func (id *UserID) UnmarshalText(text []byte) error {
	u, err := uuid.ParseBytes(text)
	*id = UserID(u)
	return err
}

func (id *ContactID) UnmarshalText(text []byte) error {
	u, err := uuid.ParseBytes(text)
	*id = ContactID(u)
	return err
}

// ParseRequestID parses the canonical string form of a RequestID.
func ParseRequestID(s string) (RequestID, error) {
	u, err := uuid.Parse(s)
	return RequestID(u), err
}

// ParseUserID parses the canonical string form of a UserID.
func ParseUserID(s string) (UserID, error) {
	u, err := uuid.Parse(s)
	return UserID(u), err
}

// ParseContactID parses the canonical string form of a ContactID.
func ParseContactID(s string) (ContactID, error) {
	u, err := uuid.Parse(s)
	return ContactID(u), err
}
