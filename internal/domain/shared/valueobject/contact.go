// Package valueobject holds small immutable values shared by several aggregates.
package valueobject

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/kioskcrm/backend/internal/domain/shared"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	// Japanese numbers are written with ASCII digits, hyphens and an optional leading +.
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\-]{6,19}$`)
)

// Contact is a person reachable by email and/or phone.
type Contact struct {
	name  string
	email string
	phone string
}

// NewContact validates and builds a Contact. All fields are optional but
// present values must be well formed.
func NewContact(name, email, phone string) (Contact, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)

	if utf8.RuneCountInString(name) > 100 {
		return Contact{}, shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot exceed 100 characters")
	}
	if email != "" && !emailPattern.MatchString(email) {
		return Contact{}, shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	if phone != "" && !phonePattern.MatchString(phone) {
		return Contact{}, shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return Contact{name: name, email: strings.ToLower(email), phone: phone}, nil
}

func (c Contact) Name() string  { return c.name }
func (c Contact) Email() string { return c.email }
func (c Contact) Phone() string { return c.phone }

// IsEmpty reports whether no field is set.
func (c Contact) IsEmpty() bool {
	return c.name == "" && c.email == "" && c.phone == ""
}
