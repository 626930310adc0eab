package geo

import (
	"strings"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/shared"
)

const AggregateTypeArea = "Area"

// Area is a sub-division of a region recognised by address keywords, for
// example ward or city names.
type Area struct {
	shared.TenantAggregateRoot
	RegionID  uuid.UUID
	Code      string
	Name      string
	Keywords  []string
	SortOrder int
}

// NewArea creates an area inside region.
func NewArea(tenantID, regionID uuid.UUID, code, name string, keywords []string) (*Area, error) {
	if regionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REGION", "Area must belong to a region")
	}
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	kws, err := normalizeKeywords(keywords)
	if err != nil {
		return nil, err
	}

	return &Area{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		RegionID:            regionID,
		Code:                strings.ToUpper(code),
		Name:                strings.TrimSpace(name),
		Keywords:            kws,
	}, nil
}

// Update replaces name, region and keywords.
func (a *Area) Update(regionID uuid.UUID, name string, keywords []string) error {
	if regionID == uuid.Nil {
		return shared.NewDomainError("INVALID_REGION", "Area must belong to a region")
	}
	if err := validateName(name); err != nil {
		return err
	}
	kws, err := normalizeKeywords(keywords)
	if err != nil {
		return err
	}
	a.RegionID = regionID
	a.Name = strings.TrimSpace(name)
	a.Keywords = kws
	a.MarkModified()
	return nil
}

// SetSortOrder sets the position of the area in match order.
func (a *Area) SetSortOrder(order int) {
	a.SortOrder = order
	a.MarkModified()
}

// MatchesAddress reports whether any keyword occurs in the normalized address.
func (a *Area) MatchesAddress(address string) (string, bool) {
	for _, kw := range a.Keywords {
		if strings.Contains(address, kw) {
			return kw, true
		}
	}
	return "", false
}

func normalizeKeywords(keywords []string) ([]string, error) {
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = NormalizeAddress(kw)
		if kw == "" {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	if len(out) == 0 {
		return nil, shared.NewDomainError("INVALID_KEYWORDS", "Area needs at least one keyword")
	}
	return out, nil
}
