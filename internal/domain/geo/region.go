package geo

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/shared"
)

const AggregateTypeRegion = "Region"

var codePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,20}$`)

// Region is a group of prefectures served by one administrative office.
type Region struct {
	shared.TenantAggregateRoot
	Code         string
	Name         string
	Prefectures  []string
	OfficeName   string
	OfficeEmail  string
	SlackChannel string
	SortOrder    int
}

// NewRegion creates a region covering the given prefectures.
func NewRegion(tenantID uuid.UUID, code, name string, prefectures []string) (*Region, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	prefs, err := normalizePrefectures(prefectures)
	if err != nil {
		return nil, err
	}

	r := &Region{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		Name:                strings.TrimSpace(name),
		Prefectures:         prefs,
	}
	return r, nil
}

// Update replaces the name and prefecture list.
func (r *Region) Update(name string, prefectures []string) error {
	if err := validateName(name); err != nil {
		return err
	}
	prefs, err := normalizePrefectures(prefectures)
	if err != nil {
		return err
	}
	r.Name = strings.TrimSpace(name)
	r.Prefectures = prefs
	r.MarkModified()
	return nil
}

// SetOffice sets the office that handles this region's notifications.
func (r *Region) SetOffice(name, email, slackChannel string) {
	r.OfficeName = strings.TrimSpace(name)
	r.OfficeEmail = strings.TrimSpace(email)
	r.SlackChannel = strings.TrimSpace(slackChannel)
	r.MarkModified()
}

// SetSortOrder sets the position of the region in match order.
func (r *Region) SetSortOrder(order int) {
	r.SortOrder = order
	r.MarkModified()
}

// HasPrefecture reports whether the region lists prefecture.
func (r *Region) HasPrefecture(prefecture string) bool {
	for _, p := range r.Prefectures {
		if p == prefecture {
			return true
		}
	}
	return false
}

func normalizePrefectures(prefectures []string) ([]string, error) {
	seen := make(map[string]struct{}, len(prefectures))
	out := make([]string, 0, len(prefectures))
	for _, p := range prefectures {
		p = strings.TrimSpace(p)
		if !IsPrefecture(p) {
			return nil, shared.NewDomainError("INVALID_PREFECTURE", "Unknown prefecture: "+p)
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out, nil
}

func validateCode(code string) error {
	if !codePattern.MatchString(code) {
		return shared.NewDomainError("INVALID_CODE", "Code must be 1-20 letters, digits, hyphens or underscores")
	}
	return nil
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}
	return nil
}
