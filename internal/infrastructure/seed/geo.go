// Package seed provides the default reference data loaded into a new
// tenant.
package seed

import (
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/geo"
	"gopkg.in/yaml.v3"
)

//go:embed geo_catalog.yaml
var defaultGeoCatalog []byte

// GeoCatalogFile is the YAML layout of a region/area catalog.
type GeoCatalogFile struct {
	Regions []RegionSeed `yaml:"regions"`
}

// RegionSeed is one region with its areas.
type RegionSeed struct {
	Code         string     `yaml:"code"`
	Name         string     `yaml:"name"`
	OfficeName   string     `yaml:"office_name"`
	OfficeEmail  string     `yaml:"office_email"`
	SlackChannel string     `yaml:"slack_channel"`
	Prefectures  []string   `yaml:"prefectures"`
	Areas        []AreaSeed `yaml:"areas"`
}

// AreaSeed is one keyword-matched area.
type AreaSeed struct {
	Code     string   `yaml:"code"`
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// DefaultGeoCatalog parses the embedded default catalog.
func DefaultGeoCatalog() (*GeoCatalogFile, error) {
	return ParseGeoCatalog(defaultGeoCatalog)
}

// ParseGeoCatalog decodes a catalog document, rejecting unknown keys.
func ParseGeoCatalog(data []byte) (*GeoCatalogFile, error) {
	var file GeoCatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse geo catalog: %w", err)
	}
	if len(file.Regions) == 0 {
		return nil, fmt.Errorf("parse geo catalog: no regions")
	}
	return &file, nil
}

// Build creates tenant-owned regions and areas from the catalog. Sort
// order follows document order.
func (f *GeoCatalogFile) Build(tenantID uuid.UUID) ([]*geo.Region, []*geo.Area, error) {
	var (
		regions []*geo.Region
		areas   []*geo.Area
	)
	for i, rs := range f.Regions {
		region, err := geo.NewRegion(tenantID, rs.Code, rs.Name, rs.Prefectures)
		if err != nil {
			return nil, nil, fmt.Errorf("region %s: %w", rs.Code, err)
		}
		region.SetOffice(rs.OfficeName, rs.OfficeEmail, rs.SlackChannel)
		region.SetSortOrder(i + 1)
		regions = append(regions, region)

		for j, as := range rs.Areas {
			area, err := geo.NewArea(tenantID, region.ID, as.Code, as.Name, as.Keywords)
			if err != nil {
				return nil, nil, fmt.Errorf("area %s: %w", as.Code, err)
			}
			area.SetSortOrder((i+1)*100 + j + 1)
			areas = append(areas, area)
		}
	}
	return regions, areas, nil
}
