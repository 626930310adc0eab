// Package organization models the franchise hierarchy: FC, Corporation and
// Branch.
package organization

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/kioskcrm/backend/internal/domain/shared"
)

// Status is shared by every level of the hierarchy.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

var codePattern = regexp.MustCompile(`^[A-Z0-9_-]{1,20}$`)

func normalizeCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !codePattern.MatchString(code) {
		return "", shared.NewDomainError("INVALID_CODE", "Code must be 1-20 letters, digits, hyphens or underscores")
	}
	return code, nil
}

func normalizeName(name string, max int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if utf8.RuneCountInString(name) > max {
		return "", shared.NewDomainError("INVALID_NAME", "Name is too long")
	}
	return name, nil
}

func parseStatus(s Status) error {
	if !s.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Status must be active or inactive")
	}
	return nil
}
