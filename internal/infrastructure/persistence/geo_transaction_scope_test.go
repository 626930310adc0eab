package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	appgeo "github.com/kioskcrm/backend/internal/application/geo"
	"github.com/kioskcrm/backend/internal/domain/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errAreaWrite = errors.New("db down")

// brokenAreaScope runs the GORM scope but fails every area write while
// broken is set.
type brokenAreaScope struct {
	inner  *GormGeoTransactionScope
	broken bool
}

func (s *brokenAreaScope) Execute(ctx context.Context, fn func(repos appgeo.TransactionalRepositories) error) error {
	return s.inner.Execute(ctx, func(repos appgeo.TransactionalRepositories) error {
		if s.broken {
			repos = brokenAreaRepos{repos}
		}
		return fn(repos)
	})
}

type brokenAreaRepos struct {
	appgeo.TransactionalRepositories
}

func (r brokenAreaRepos) AreaRepo() geo.AreaRepository {
	return brokenAreaRepo{r.TransactionalRepositories.AreaRepo()}
}

type brokenAreaRepo struct {
	geo.AreaRepository
}

func (brokenAreaRepo) Save(context.Context, *geo.Area) error { return errAreaWrite }

func TestGormGeoTransactionScope_SeedIsAtomic(t *testing.T) {
	db := setupSQLiteDB(t)
	ctx := context.Background()
	tenantID := uuid.New()
	regions := NewGormRegionRepository(db)
	areas := NewGormAreaRepository(db)

	scope := &brokenAreaScope{inner: NewGormGeoTransactionScope(db), broken: true}
	svc := appgeo.NewGeoService(regions, areas, appgeo.WithTransactionScope(scope))

	_, err := svc.Seed(ctx, tenantID)
	require.ErrorIs(t, err, errAreaWrite)

	count, err := regions.CountForTenant(ctx, tenantID)
	require.NoError(t, err)
	assert.Zero(t, count, "regions are rolled back with the failed areas")

	scope.broken = false
	resp, err := svc.Seed(ctx, tenantID)
	require.NoError(t, err, "a failed seed can be retried")
	assert.Equal(t, 8, resp.Regions)

	saved, err := areas.FindAllForTenant(ctx, tenantID)
	require.NoError(t, err)
	assert.Len(t, saved, resp.Areas)
}
