package asset

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/application/common"
	"github.com/kioskcrm/backend/internal/application/event"
	geoapp "github.com/kioskcrm/backend/internal/application/geo"
	"github.com/kioskcrm/backend/internal/domain/asset"
	"github.com/kioskcrm/backend/internal/domain/geo"
	"github.com/kioskcrm/backend/internal/domain/organization"
	"github.com/kioskcrm/backend/internal/domain/partner"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/kioskcrm/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
)

// CatalogReader exposes the tenant's region/area catalog
type CatalogReader interface {
	Catalog(ctx context.Context, tenantID uuid.UUID) (*geo.Catalog, error)
}

// GeoResolver is the part of the geo service the kiosk service uses
type GeoResolver interface {
	geoapp.Locator
	CatalogReader
}

// KioskService handles kiosk registration, placement and contracts
type KioskService struct {
	kioskRepo    asset.KioskRepository
	contractRepo asset.ContractRepository
	branchRepo   organization.BranchRepository
	partnerRepo  partner.PartnerRepository
	geo          GeoResolver
	txScope      TransactionScope
	events       *event.Dispatcher
	metrics      *telemetry.BusinessMetrics
	location     *time.Location
	now          func() time.Time
}

// KioskServiceDeps groups the collaborators of KioskService
type KioskServiceDeps struct {
	KioskRepo    asset.KioskRepository
	ContractRepo asset.ContractRepository
	BranchRepo   organization.BranchRepository
	PartnerRepo  partner.PartnerRepository
	Geo          GeoResolver
	// TxScope defaults to a NoOpTransactionScope over the repositories
	TxScope  TransactionScope
	Events   *event.Dispatcher
	Metrics  *telemetry.BusinessMetrics
	Location *time.Location
}

// NewKioskService creates a new KioskService
func NewKioskService(deps KioskServiceDeps) *KioskService {
	txScope := deps.TxScope
	if txScope == nil {
		txScope = NewNoOpTransactionScope(deps.KioskRepo, deps.ContractRepo)
	}
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	return &KioskService{
		kioskRepo:    deps.KioskRepo,
		contractRepo: deps.ContractRepo,
		branchRepo:   deps.BranchRepo,
		partnerRepo:  deps.PartnerRepo,
		geo:          deps.Geo,
		txScope:      txScope,
		events:       deps.Events,
		metrics:      deps.Metrics,
		location:     loc,
		now:          time.Now,
	}
}

// Create registers a kiosk. A kiosk with an install address is installed
// at InstalledAt (today when empty).
func (s *KioskService) Create(ctx context.Context, tenantID uuid.UUID, req CreateKioskRequest) (*KioskResponse, error) {
	serial := strings.ToUpper(strings.TrimSpace(req.SerialNumber))
	exists, err := s.kioskRepo.ExistsBySerial(ctx, tenantID, serial)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Kiosk with this serial number already exists")
	}

	kiosk, err := asset.NewKiosk(tenantID, serial, req.ModelName)
	if err != nil {
		return nil, err
	}

	if req.ListPrice != nil || req.MonthlyFee != nil {
		if err := kiosk.SetPricing(decimalOr(req.ListPrice, kiosk.ListPrice), decimalOr(req.MonthlyFee, kiosk.MonthlyFee)); err != nil {
			return nil, err
		}
	}
	if req.BranchID != nil || req.PartnerID != nil {
		if err := s.checkAssignees(ctx, tenantID, req.BranchID, req.PartnerID); err != nil {
			return nil, err
		}
		kiosk.Assign(req.BranchID, req.PartnerID)
	}
	if req.InstallAddress != "" || req.RegionID != nil || req.AreaID != nil {
		placement, err := s.locate(ctx, tenantID, req.InstallAddress, req.RegionID, req.AreaID)
		if err != nil {
			return nil, err
		}
		at := s.today()
		if req.InstalledAt != "" {
			if at, err = common.ParseDate(req.InstalledAt, s.location); err != nil {
				return nil, err
			}
		}
		kiosk.Install(placement, at)
	}
	if req.Status != "" {
		if err := kiosk.SetStatus(asset.Status(req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		kiosk.SetNotes(req.Notes)
	}

	if err := s.kioskRepo.Save(ctx, kiosk); err != nil {
		return nil, err
	}
	s.events.Dispatch(ctx, kiosk)
	s.metrics.KioskRegistered(ctx, tenantID.String())

	response := ToKioskResponse(kiosk)
	return &response, nil
}

// GetByID retrieves a kiosk by ID
func (s *KioskService) GetByID(ctx context.Context, tenantID, kioskID uuid.UUID) (*KioskResponse, error) {
	kiosk, err := s.kioskRepo.FindByIDForTenant(ctx, tenantID, kioskID)
	if err != nil {
		return nil, err
	}
	response := ToKioskResponse(kiosk)
	return &response, nil
}

// List retrieves a page of kiosks
func (s *KioskService) List(ctx context.Context, tenantID uuid.UUID, filter KioskListFilter) ([]KioskResponse, int64, error) {
	domainFilter := filter.Filter("serial_number", "asc")
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.BranchID != "" {
		domainFilter.Filters["branch_id"] = filter.BranchID
	}
	if filter.PartnerID != "" {
		domainFilter.Filters["partner_id"] = filter.PartnerID
	}
	if filter.RegionID != "" {
		domainFilter.Filters["region_id"] = filter.RegionID
	}
	if filter.AreaID != "" {
		domainFilter.Filters["area_id"] = filter.AreaID
	}

	kiosks, err := s.kioskRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.kioskRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToKioskResponses(kiosks), total, nil
}

// Update updates a kiosk. A new install address re-derives the location.
func (s *KioskService) Update(ctx context.Context, tenantID, kioskID uuid.UUID, req UpdateKioskRequest) (*KioskResponse, error) {
	kiosk, err := s.kioskRepo.FindByIDForTenant(ctx, tenantID, kioskID)
	if err != nil {
		return nil, err
	}

	if req.ModelName != nil {
		if err := kiosk.SetModel(*req.ModelName); err != nil {
			return nil, err
		}
	}
	if req.ListPrice != nil || req.MonthlyFee != nil {
		if err := kiosk.SetPricing(decimalOr(req.ListPrice, kiosk.ListPrice), decimalOr(req.MonthlyFee, kiosk.MonthlyFee)); err != nil {
			return nil, err
		}
	}
	if req.BranchID != nil || req.PartnerID != nil || req.ClearBranch || req.ClearPartner {
		branchID, partnerID := kiosk.BranchID, kiosk.PartnerID
		if req.BranchID != nil {
			branchID = req.BranchID
		}
		if req.PartnerID != nil {
			partnerID = req.PartnerID
		}
		if req.ClearBranch {
			branchID = nil
		}
		if req.ClearPartner {
			partnerID = nil
		}
		if err := s.checkAssignees(ctx, tenantID, req.BranchID, req.PartnerID); err != nil {
			return nil, err
		}
		kiosk.Assign(branchID, partnerID)
	}
	if req.InstallAddress != nil || req.RegionID != nil || req.AreaID != nil || req.InstalledAt != nil {
		placement := asset.Placement{
			Address:    kiosk.InstallAddress,
			Prefecture: kiosk.Prefecture,
			City:       kiosk.City,
			RegionID:   kiosk.RegionID,
			AreaID:     kiosk.AreaID,
		}
		if req.InstallAddress != nil || req.RegionID != nil || req.AreaID != nil {
			placement, err = s.locate(ctx, tenantID, common.StringOr(req.InstallAddress, kiosk.InstallAddress), req.RegionID, req.AreaID)
			if err != nil {
				return nil, err
			}
		}
		if req.InstalledAt != nil {
			at, err := common.ParseDate(*req.InstalledAt, s.location)
			if err != nil {
				return nil, err
			}
			kiosk.Install(placement, at)
		} else {
			kiosk.Place(placement)
		}
	}
	if req.Status != nil {
		if err := kiosk.SetStatus(asset.Status(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		kiosk.SetNotes(*req.Notes)
	}

	if err := s.kioskRepo.Save(ctx, kiosk); err != nil {
		return nil, err
	}
	s.events.Dispatch(ctx, kiosk)

	response := ToKioskResponse(kiosk)
	return &response, nil
}

// Delete deletes a kiosk
func (s *KioskService) Delete(ctx context.Context, tenantID, kioskID uuid.UUID) error {
	if _, err := s.kioskRepo.FindByIDForTenant(ctx, tenantID, kioskID); err != nil {
		return err
	}
	return s.kioskRepo.DeleteForTenant(ctx, tenantID, kioskID)
}

// Lease opens a lease contract and marks the kiosk leased
func (s *KioskService) Lease(ctx context.Context, tenantID, kioskID uuid.UUID, req ContractRequest) (*ContractActionResponse, error) {
	return s.openContract(ctx, tenantID, kioskID, req,
		func(repos TransactionalRepositories, k *asset.Kiosk, in asset.ContractInput) (*asset.Contract, error) {
			history, err := repos.ContractRepo().FindByKiosk(ctx, tenantID, k.ID)
			if err != nil {
				return nil, err
			}
			return k.Lease(in, history)
		})
}

// Sell records a sale and marks the kiosk sold
func (s *KioskService) Sell(ctx context.Context, tenantID, kioskID uuid.UUID, req ContractRequest) (*ContractActionResponse, error) {
	return s.openContract(ctx, tenantID, kioskID, req,
		func(_ TransactionalRepositories, k *asset.Kiosk, in asset.ContractInput) (*asset.Contract, error) {
			return k.Sell(in)
		})
}

func (s *KioskService) openContract(
	ctx context.Context,
	tenantID, kioskID uuid.UUID,
	req ContractRequest,
	open func(TransactionalRepositories, *asset.Kiosk, asset.ContractInput) (*asset.Contract, error),
) (*ContractActionResponse, error) {
	in, err := s.contractInput(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}

	var (
		kiosk    *asset.Kiosk
		contract *asset.Contract
	)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		kiosk, err = repos.KioskRepo().FindByIDForTenant(ctx, tenantID, kioskID)
		if err != nil {
			return err
		}
		contract, err = open(repos, kiosk, in)
		if err != nil {
			return err
		}
		if err := repos.ContractRepo().Save(ctx, contract); err != nil {
			return err
		}
		return repos.KioskRepo().Save(ctx, kiosk)
	})
	if err != nil {
		return nil, err
	}
	s.events.Dispatch(ctx, kiosk)

	return &ContractActionResponse{
		Kiosk:    ToKioskResponse(kiosk),
		Contract: ToContractResponse(contract),
	}, nil
}

// EndContract closes a lease. A leased kiosk returns to stock once no other
// lease is open.
func (s *KioskService) EndContract(ctx context.Context, tenantID, kioskID, contractID uuid.UUID, req EndContractRequest) (*ContractActionResponse, error) {
	end := s.today()
	if req.EndDate != "" {
		var err error
		if end, err = common.ParseDate(req.EndDate, s.location); err != nil {
			return nil, err
		}
	}

	var (
		kiosk    *asset.Kiosk
		contract *asset.Contract
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		kiosk, err = repos.KioskRepo().FindByIDForTenant(ctx, tenantID, kioskID)
		if err != nil {
			return err
		}
		contract, err = repos.ContractRepo().FindByIDForTenant(ctx, tenantID, contractID)
		if err != nil {
			return err
		}
		if !contract.IsOpen() {
			return shared.NewDomainError("INVALID_STATE", "Contract has already ended")
		}
		history, err := repos.ContractRepo().FindByKiosk(ctx, tenantID, kioskID)
		if err != nil {
			return err
		}
		if err := kiosk.EndContract(contract, end, history); err != nil {
			return err
		}
		if err := repos.ContractRepo().Save(ctx, contract); err != nil {
			return err
		}
		return repos.KioskRepo().Save(ctx, kiosk)
	})
	if err != nil {
		return nil, err
	}
	s.events.Dispatch(ctx, kiosk)

	return &ContractActionResponse{
		Kiosk:    ToKioskResponse(kiosk),
		Contract: ToContractResponse(contract),
	}, nil
}

// Contracts returns the lease/sale history of a kiosk
func (s *KioskService) Contracts(ctx context.Context, tenantID, kioskID uuid.UUID) ([]ContractResponse, error) {
	if _, err := s.kioskRepo.FindByIDForTenant(ctx, tenantID, kioskID); err != nil {
		return nil, err
	}
	contracts, err := s.contractRepo.FindByKiosk(ctx, tenantID, kioskID)
	if err != nil {
		return nil, err
	}
	out := make([]ContractResponse, len(contracts))
	for i := range contracts {
		out[i] = ToContractResponse(&contracts[i])
	}
	return out, nil
}

// Summary counts kiosks by status and by region
func (s *KioskService) Summary(ctx context.Context, tenantID uuid.UUID) (*KioskSummaryResponse, error) {
	statusCounts, err := s.kioskRepo.CountByStatus(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	regionCounts, err := s.kioskRepo.CountByRegion(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	catalog, err := s.geo.Catalog(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	byStatus := make(map[asset.Status]int64, len(statusCounts))
	for _, sc := range statusCounts {
		byStatus[sc.Status] += sc.Count
	}

	resp := &KioskSummaryResponse{
		ByStatus: make([]StatusBucket, 0, len(asset.AllStatuses)),
		ByRegion: make([]RegionBucket, 0, len(regionCounts)),
	}
	parts := make([]string, 0, len(asset.AllStatuses))
	for _, st := range asset.AllStatuses {
		n := byStatus[st]
		resp.Total += n
		resp.ByStatus = append(resp.ByStatus, StatusBucket{
			Status: string(st),
			Count:  n,
			Label:  fmt.Sprintf("%s: %d台", statusLabel(st), n),
		})
		parts = append(parts, fmt.Sprintf("%s %d", statusLabel(st), n))
	}

	// catalog order first, unmatched last
	countByRegion := make(map[uuid.UUID]int64, len(regionCounts))
	var unmatched int64
	for _, rc := range regionCounts {
		if rc.RegionID == nil {
			unmatched += rc.Count
			continue
		}
		countByRegion[*rc.RegionID] += rc.Count
	}
	for i := range catalog.Regions() {
		r := &catalog.Regions()[i]
		n, ok := countByRegion[r.ID]
		if !ok {
			continue
		}
		delete(countByRegion, r.ID)
		id := r.ID
		resp.ByRegion = append(resp.ByRegion, RegionBucket{
			RegionID:   &id,
			RegionCode: r.Code,
			RegionName: r.Name,
			Count:      n,
			Label:      fmt.Sprintf("%s: %d台", r.Name, n),
		})
	}
	// regions deleted since the kiosk was placed
	for _, n := range countByRegion {
		unmatched += n
	}
	if unmatched > 0 {
		resp.ByRegion = append(resp.ByRegion, RegionBucket{
			RegionName: unassignedRegionLabel,
			Count:      unmatched,
			Label:      fmt.Sprintf("%s: %d台", unassignedRegionLabel, unmatched),
		})
	}

	resp.Summary = fmt.Sprintf("合計 %d台 (%s)", resp.Total, strings.Join(parts, " / "))
	return resp, nil
}

const unassignedRegionLabel = "未分類"

func statusLabel(s asset.Status) string {
	switch s {
	case asset.StatusInStock:
		return "在庫"
	case asset.StatusInstalled:
		return "設置済"
	case asset.StatusLeased:
		return "リース中"
	case asset.StatusSold:
		return "売却済"
	case asset.StatusMaintenance:
		return "保守中"
	case asset.StatusRetired:
		return "廃棄"
	}
	return string(s)
}

func (s *KioskService) contractInput(ctx context.Context, tenantID uuid.UUID, req ContractRequest) (asset.ContractInput, error) {
	start, err := common.ParseDate(req.StartDate, s.location)
	if err != nil {
		return asset.ContractInput{}, err
	}
	end, err := common.ParseOptionalDate(req.EndDate, s.location)
	if err != nil {
		return asset.ContractInput{}, err
	}
	if req.PartnerID != nil {
		if err := s.checkAssignees(ctx, tenantID, nil, req.PartnerID); err != nil {
			return asset.ContractInput{}, err
		}
	}
	return asset.ContractInput{
		PartnerID:    req.PartnerID,
		CustomerName: req.CustomerName,
		StartDate:    start,
		EndDate:      end,
		Amount:       req.Amount,
		MonthlyFee:   req.MonthlyFee,
		Notes:        req.Notes,
	}, nil
}

func (s *KioskService) checkAssignees(ctx context.Context, tenantID uuid.UUID, branchID, partnerID *uuid.UUID) error {
	if branchID != nil {
		if _, err := s.branchRepo.FindByIDForTenant(ctx, tenantID, *branchID); err != nil {
			if shared.IsNotFound(err) {
				return shared.NewDomainError("INVALID_BRANCH", "Branch does not exist")
			}
			return err
		}
	}
	if partnerID != nil {
		if _, err := s.partnerRepo.FindByIDForTenant(ctx, tenantID, *partnerID); err != nil {
			if shared.IsNotFound(err) {
				return shared.NewDomainError("INVALID_PARTNER", "Partner does not exist")
			}
			return err
		}
	}
	return nil
}

func (s *KioskService) locate(ctx context.Context, tenantID uuid.UUID, address string, regionID, areaID *uuid.UUID) (asset.Placement, error) {
	p, err := s.geo.Locate(ctx, tenantID, geoapp.LocateInput{Address: address, RegionID: regionID, AreaID: areaID})
	if err != nil {
		return asset.Placement{}, err
	}
	return asset.Placement{
		Address:    p.Address,
		Prefecture: p.Prefecture,
		City:       p.City,
		RegionID:   p.RegionID,
		AreaID:     p.AreaID,
	}, nil
}

func (s *KioskService) today() time.Time {
	now := s.now().In(s.location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)
}

func decimalOr(p *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if p != nil {
		return *p
	}
	return fallback
}
