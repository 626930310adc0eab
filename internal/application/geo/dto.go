package geo

import (
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/geo"
)

// CreateRegionRequest represents a request to create a region
type CreateRegionRequest struct {
	Code         string   `json:"code" binding:"required,min=1,max=20"`
	Name         string   `json:"name" binding:"required,min=1,max=100"`
	Prefectures  []string `json:"prefectures" binding:"required,min=1,dive,required"`
	OfficeName   string   `json:"office_name" binding:"max=200"`
	OfficeEmail  string   `json:"office_email" binding:"omitempty,email,max=200"`
	SlackChannel string   `json:"slack_channel" binding:"max=100"`
	SortOrder    *int     `json:"sort_order"`
}

// UpdateRegionRequest represents a request to update a region
type UpdateRegionRequest struct {
	Name         *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Prefectures  []string `json:"prefectures" binding:"omitempty,min=1,dive,required"`
	OfficeName   *string  `json:"office_name" binding:"omitempty,max=200"`
	OfficeEmail  *string  `json:"office_email" binding:"omitempty,email,max=200"`
	SlackChannel *string  `json:"slack_channel" binding:"omitempty,max=100"`
	SortOrder    *int     `json:"sort_order"`
}

// RegionResponse represents a region in API responses
type RegionResponse struct {
	ID           uuid.UUID `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Prefectures  []string  `json:"prefectures"`
	OfficeName   string    `json:"office_name"`
	OfficeEmail  string    `json:"office_email"`
	SlackChannel string    `json:"slack_channel"`
	SortOrder    int       `json:"sort_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Version      int       `json:"version"`
}

// ToRegionResponse converts a domain Region to RegionResponse
func ToRegionResponse(r *geo.Region) RegionResponse {
	prefs := r.Prefectures
	if prefs == nil {
		prefs = []string{}
	}
	return RegionResponse{
		ID:           r.ID,
		Code:         r.Code,
		Name:         r.Name,
		Prefectures:  prefs,
		OfficeName:   r.OfficeName,
		OfficeEmail:  r.OfficeEmail,
		SlackChannel: r.SlackChannel,
		SortOrder:    r.SortOrder,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		Version:      r.Version,
	}
}

// CreateAreaRequest represents a request to create an area
type CreateAreaRequest struct {
	RegionID  uuid.UUID `json:"region_id" binding:"required"`
	Code      string    `json:"code" binding:"required,min=1,max=20"`
	Name      string    `json:"name" binding:"required,min=1,max=100"`
	Keywords  []string  `json:"keywords" binding:"required,min=1"`
	SortOrder *int      `json:"sort_order"`
}

// UpdateAreaRequest represents a request to update an area
type UpdateAreaRequest struct {
	RegionID  *uuid.UUID `json:"region_id"`
	Name      *string    `json:"name" binding:"omitempty,min=1,max=100"`
	Keywords  []string   `json:"keywords" binding:"omitempty,min=1"`
	SortOrder *int       `json:"sort_order"`
}

// AreaResponse represents an area in API responses
type AreaResponse struct {
	ID        uuid.UUID `json:"id"`
	RegionID  uuid.UUID `json:"region_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Keywords  []string  `json:"keywords"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// ToAreaResponse converts a domain Area to AreaResponse
func ToAreaResponse(a *geo.Area) AreaResponse {
	kws := a.Keywords
	if kws == nil {
		kws = []string{}
	}
	return AreaResponse{
		ID:        a.ID,
		RegionID:  a.RegionID,
		Code:      a.Code,
		Name:      a.Name,
		Keywords:  kws,
		SortOrder: a.SortOrder,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
		Version:   a.Version,
	}
}

// MatchRequest asks for the region and area of an address
type MatchRequest struct {
	Address string `json:"address" binding:"required,max=500"`
}

// MatchRef is the id, code and name of a matched region or area
type MatchRef struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
	Name string    `json:"name"`
}

// MatchResponse is the resolved placement of an address
type MatchResponse struct {
	Address    string    `json:"address"`
	Prefecture string    `json:"prefecture"`
	City       string    `json:"city"`
	Region     *MatchRef `json:"region"`
	Area       *MatchRef `json:"area"`
	Keyword    string    `json:"keyword,omitempty"`
	Method     string    `json:"method"`
}

// ToMatchResponse converts a geo.Match
func ToMatchResponse(m geo.Match) MatchResponse {
	resp := MatchResponse{
		Address:    m.Address,
		Prefecture: m.Prefecture,
		City:       m.City,
		Keyword:    m.Keyword,
		Method:     string(m.Method),
	}
	if m.Region != nil {
		resp.Region = &MatchRef{ID: m.Region.ID, Code: m.Region.Code, Name: m.Region.Name}
	}
	if m.Area != nil {
		resp.Area = &MatchRef{ID: m.Area.ID, Code: m.Area.Code, Name: m.Area.Name}
	}
	return resp
}

// CatalogRegion is a region with its areas, in match order
type CatalogRegion struct {
	RegionResponse
	Areas []AreaResponse `json:"areas"`
}

// CatalogResponse is the tenant's full region/area catalog
type CatalogResponse struct {
	Regions     []CatalogRegion `json:"regions"`
	Prefectures []string        `json:"prefectures"`
}

// SeedResponse reports how much of the default catalog was created
type SeedResponse struct {
	Regions int `json:"regions"`
	Areas   int `json:"areas"`
}
