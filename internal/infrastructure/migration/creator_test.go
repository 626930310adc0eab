package migration

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/kioskcrm/backend/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add kiosks table", "add_kiosks_table"},
		{"Add-Kiosk-Contracts", "add_kiosk_contracts"},
		{"ADD_LEADS_INDEX", "add_leads_index"},
		{"add__region__sort", "add_region_sort"},
		{"Pricing 2", "pricing_2"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"地域 areas", "areas"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "add kiosk notes", "Add notes column to kiosks")
	require.NoError(t, err)
	assert.Equal(t, "000001", mf.Version)
	assert.Equal(t, filepath.Join(dir, "000001_add_kiosk_notes.up.sql"), mf.UpPath)
	assert.Equal(t, filepath.Join(dir, "000001_add_kiosk_notes.down.sql"), mf.DownPath)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "add kiosk notes")
	assert.Contains(t, string(up), "Add notes column to kiosks")
	assert.Contains(t, string(up), "Write your UP migration SQL here")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "Rollback")
	assert.Contains(t, string(down), "Write your DOWN migration SQL here")
}

func TestCreateMigration_NextSequentialVersion(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{"000001_init.up.sql", "000001_init.down.sql", "000007_leads.up.sql", "000007_leads.down.sql"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("-- test"), 0o644))
	}

	mf, err := CreateMigration(dir, "campaign budget", "")
	require.NoError(t, err)
	assert.Equal(t, "000008", mf.Version)
}

func TestCreateMigration_CreatesDirectory(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "nested", "migrations")

	_, err := CreateMigration(nested, "test", "test migration")
	require.NoError(t, err)

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"000002_add_leads.up.sql",
		"000002_add_leads.down.sql",
		"000001_init.up.sql",
		"000001_init.down.sql",
		"README.md",
		".gitkeep",
	}
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("-- test"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir.up.sql"), 0o755))

	got, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_init", "000002_add_leads"}, got)
}

func TestListMigrations_NonexistentDirectory(t *testing.T) {
	got, err := ListMigrations("/nonexistent/path/to/migrations")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEmbeddedMigrations_ArePaired(t *testing.T) {
	ups, err := fs.Glob(migrations.FS, "*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, ups)

	for _, up := range ups {
		down := up[:len(up)-len(".up.sql")] + ".down.sql"
		_, err := migrations.FS.ReadFile(down)
		assert.NoError(t, err, "missing rollback for %s", up)
	}

	initSQL, err := migrations.FS.ReadFile("000001_init.up.sql")
	require.NoError(t, err)
	for _, constraint := range []string{
		"uq_regions_tenant_code", "uq_areas_tenant_code", "uq_fcs_tenant_code",
		"uq_corporations_tenant_code", "uq_branches_tenant_code", "uq_partners_tenant_code",
		"uq_kiosks_tenant_serial", "uq_orders_tenant_number", "uq_users_username",
	} {
		assert.Contains(t, string(initSQL), constraint)
	}
}
