package persistence

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/organization"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFC(t *testing.T, tenantID uuid.UUID, code, name string) *organization.FC {
	t.Helper()
	fc, err := organization.NewFC(tenantID, code, name)
	require.NoError(t, err)
	return fc
}

func TestGormFCRepository_SaveAndFind(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewGormFCRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	fc := newTestFC(t, tenantID, "FC001", "東京本部")
	require.NoError(t, repo.Save(ctx, fc))

	t.Run("finds within tenant", func(t *testing.T) {
		found, err := repo.FindByIDForTenant(ctx, tenantID, fc.ID)
		require.NoError(t, err)
		assert.Equal(t, "FC001", found.Code)
		assert.Equal(t, "東京本部", found.Name)
		assert.Equal(t, tenantID, found.TenantID)
	})

	t.Run("other tenant gets not found", func(t *testing.T) {
		found, err := repo.FindByIDForTenant(ctx, uuid.New(), fc.ID)
		assert.Nil(t, found)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("save updates an existing row", func(t *testing.T) {
		require.NoError(t, fc.Rename("大阪本部"))
		require.NoError(t, repo.Save(ctx, fc))

		found, err := repo.FindByIDForTenant(ctx, tenantID, fc.ID)
		require.NoError(t, err)
		assert.Equal(t, "大阪本部", found.Name)

		count, err := repo.CountForTenant(ctx, tenantID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestGormFCRepository_FindAllForTenant(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewGormFCRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	for _, c := range []struct{ code, name string }{
		{"FC001", "Alpha Holdings"},
		{"FC002", "Beta Works"},
		{"FC003", "alpha trading"},
	} {
		require.NoError(t, repo.Save(ctx, newTestFC(t, tenantID, c.code, c.name)))
	}
	require.NoError(t, repo.Save(ctx, newTestFC(t, uuid.New(), "FC001", "Alpha Elsewhere")))

	t.Run("search is case-insensitive and tenant scoped", func(t *testing.T) {
		filter := shared.Filter{Search: "ALPHA", OrderBy: "code", OrderDir: "asc"}
		items, err := repo.FindAllForTenant(ctx, tenantID, filter)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "FC001", items[0].Code)
		assert.Equal(t, "FC003", items[1].Code)

		total, err := repo.CountForTenant(ctx, tenantID, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("pages results", func(t *testing.T) {
		items, err := repo.FindAllForTenant(ctx, tenantID, shared.Filter{Page: 2, PageSize: 2, OrderBy: "code", OrderDir: "asc"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "FC003", items[0].Code)
	})

	t.Run("unknown sort field falls back to code", func(t *testing.T) {
		items, err := repo.FindAllForTenant(ctx, tenantID, shared.Filter{OrderBy: "name; DROP TABLE fcs", OrderDir: "desc"})
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, "FC003", items[0].Code)
	})
}

func TestGormFCRepository_ListCodes(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewGormFCRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	require.NoError(t, repo.Save(ctx, newTestFC(t, tenantID, "FC001", "one")))
	require.NoError(t, repo.Save(ctx, newTestFC(t, tenantID, "FC003", "three")))
	require.NoError(t, repo.Save(ctx, newTestFC(t, tenantID, "FX001", "other prefix")))
	require.NoError(t, repo.Save(ctx, newTestFC(t, uuid.New(), "FC009", "other tenant")))

	codes, err := repo.ListCodes(ctx, tenantID, "FC")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"FC001", "FC003"}, codes)

	next := shared.NextCode("FC", 3, codes)
	assert.Equal(t, "FC004", next)

	codes, err = repo.ListCodes(ctx, tenantID, "F_")
	require.NoError(t, err)
	assert.Empty(t, codes)

	exists, err := repo.ExistsByCode(ctx, tenantID, "FX001")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGormFCRepository_DeleteForTenant(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewGormFCRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	fc := newTestFC(t, tenantID, "FC001", "one")
	require.NoError(t, repo.Save(ctx, fc))

	assert.ErrorIs(t, repo.DeleteForTenant(ctx, uuid.New(), fc.ID), shared.ErrNotFound)
	require.NoError(t, repo.DeleteForTenant(ctx, tenantID, fc.ID))
	assert.ErrorIs(t, repo.DeleteForTenant(ctx, tenantID, fc.ID), shared.ErrNotFound)
}

func TestGormCorporationAndBranchRepository(t *testing.T) {
	db := setupSQLiteDB(t)
	fcs := NewGormFCRepository(db)
	corps := NewGormCorporationRepository(db)
	branches := NewGormBranchRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	fc := newTestFC(t, tenantID, "FC001", "本部")
	require.NoError(t, fcs.Save(ctx, fc))

	corpA, err := organization.NewCorporation(tenantID, fc.ID, "CP001", "株式会社A")
	require.NoError(t, err)
	corpB, err := organization.NewCorporation(tenantID, fc.ID, "CP002", "株式会社B")
	require.NoError(t, err)
	require.NoError(t, corps.Save(ctx, corpA))
	require.NoError(t, corps.Save(ctx, corpB))

	count, err := corps.CountByFC(ctx, tenantID, fc.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	list, err := corps.FindByFC(ctx, tenantID, fc.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	b1, err := organization.NewBranch(tenantID, corpA.ID, "BR001", "新宿店")
	require.NoError(t, err)
	b2, err := organization.NewBranch(tenantID, corpB.ID, "BR002", "梅田店")
	require.NoError(t, err)
	require.NoError(t, branches.Save(ctx, b1))
	require.NoError(t, branches.Save(ctx, b2))

	found, err := branches.FindByCorporations(ctx, tenantID, []uuid.UUID{corpA.ID})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "BR001", found[0].Code)

	n, err := branches.CountByCorporation(ctx, tenantID, corpB.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	filtered, err := branches.FindAllForTenant(ctx, tenantID, shared.Filter{
		Filters: map[string]any{"corporation_id": corpB.ID.String()},
	})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "BR002", filtered[0].Code)
}

func TestGormFCRepository_MockedErrors(t *testing.T) {
	t.Run("translates record not found", func(t *testing.T) {
		gormDB, mock, _ := newMockGorm(t)
		repo := NewGormFCRepository(gormDB)
		tenantID, id := uuid.New(), uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "fcs" WHERE tenant_id = $1 AND id = $2`)).
			WithArgs(tenantID, id, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		fc, err := repo.FindByIDForTenant(context.Background(), tenantID, id)
		assert.Nil(t, fc)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("passes through database errors", func(t *testing.T) {
		gormDB, mock, _ := newMockGorm(t)
		repo := NewGormFCRepository(gormDB)
		tenantID := uuid.New()
		dbErr := errors.New("connection reset")

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "fcs" WHERE tenant_id = $1`)).
			WithArgs(tenantID).
			WillReturnError(dbErr)

		_, err := repo.CountForTenant(context.Background(), tenantID, shared.Filter{})
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
