package geo

import (
	"sort"

	"github.com/google/uuid"
)

// MatchMethod records which rule produced a Match.
type MatchMethod string

const (
	MatchByKeyword    MatchMethod = "keyword"
	MatchByPrefecture MatchMethod = "prefecture"
	MatchNone         MatchMethod = "none"
)

// Match is the result of resolving an address against a Catalog.
type Match struct {
	Address    string
	Prefecture string
	City       string
	Region     *Region
	Area       *Area
	Keyword    string
	Method     MatchMethod
}

// Matched reports whether a region was resolved.
func (m Match) Matched() bool {
	return m.Region != nil
}

// RegionID returns the matched region ID or nil.
func (m Match) RegionID() *uuid.UUID {
	if m.Region == nil {
		return nil
	}
	id := m.Region.ID
	return &id
}

// AreaID returns the matched area ID or nil.
func (m Match) AreaID() *uuid.UUID {
	if m.Area == nil {
		return nil
	}
	id := m.Area.ID
	return &id
}

// Catalog is a tenant's ordered set of regions and areas.
type Catalog struct {
	regions    []Region
	areas      []Area
	regionByID map[uuid.UUID]*Region
}

// NewCatalog orders regions and areas by SortOrder then Code. Matching is
// first-hit in that order.
func NewCatalog(regions []Region, areas []Area) *Catalog {
	c := &Catalog{
		regions:    append([]Region(nil), regions...),
		areas:      append([]Area(nil), areas...),
		regionByID: make(map[uuid.UUID]*Region, len(regions)),
	}
	sort.SliceStable(c.regions, func(i, j int) bool {
		if c.regions[i].SortOrder != c.regions[j].SortOrder {
			return c.regions[i].SortOrder < c.regions[j].SortOrder
		}
		return c.regions[i].Code < c.regions[j].Code
	})
	sort.SliceStable(c.areas, func(i, j int) bool {
		if c.areas[i].SortOrder != c.areas[j].SortOrder {
			return c.areas[i].SortOrder < c.areas[j].SortOrder
		}
		return c.areas[i].Code < c.areas[j].Code
	})
	for i := range c.regions {
		c.regionByID[c.regions[i].ID] = &c.regions[i]
	}
	return c
}

// Regions returns the regions in match order.
func (c *Catalog) Regions() []Region { return c.regions }

// Areas returns the areas in match order.
func (c *Catalog) Areas() []Area { return c.areas }

// Region looks up a region by ID.
func (c *Catalog) Region(id uuid.UUID) (*Region, bool) {
	r, ok := c.regionByID[id]
	return r, ok
}

// Empty reports whether the catalog has no regions.
func (c *Catalog) Empty() bool {
	return len(c.regions) == 0
}

// MatchRegionArea resolves an address. Area keywords are tried first, in
// catalog order; an area whose region is missing from the catalog is
// skipped. Otherwise the extracted prefecture is looked up in each region's
// prefecture list. The first hit wins.
func (c *Catalog) MatchRegionArea(address string) Match {
	addr := NormalizeAddress(address)
	m := Match{Address: addr, Method: MatchNone}

	if pref, ok := ExtractPrefecture(addr); ok {
		m.Prefecture = pref
		if city, ok := ExtractCity(addr, pref); ok {
			m.City = city
		}
	}

	for i := range c.areas {
		a := &c.areas[i]
		kw, ok := a.MatchesAddress(addr)
		if !ok {
			continue
		}
		region, ok := c.regionByID[a.RegionID]
		if !ok {
			continue
		}
		m.Area = a
		m.Region = region
		m.Keyword = kw
		m.Method = MatchByKeyword
		return m
	}

	if m.Prefecture == "" {
		return m
	}
	for i := range c.regions {
		if c.regions[i].HasPrefecture(m.Prefecture) {
			m.Region = &c.regions[i]
			m.Method = MatchByPrefecture
			return m
		}
	}
	return m
}
