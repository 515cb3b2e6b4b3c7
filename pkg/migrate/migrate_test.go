package migrate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShippedMigrationsValidate(t *testing.T) {
	require.NoError(t, ValidateDir("migrations"))
}

func TestMigrationsCreateStorefrontSchema(t *testing.T) {
	var content strings.Builder
	matches, err := filepath.Glob(filepath.Join("migrations", "*.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, matches)
	for _, path := range matches {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		content.Write(data)
	}

	checks := []string{
		"CREATE TABLE IF NOT EXISTS users",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email",
		"CREATE TABLE IF NOT EXISTS products",
		"CHECK (count_in_stock >= 0)",
		"CREATE TABLE IF NOT EXISTS cart_items",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_cart_items_user_product",
		"CREATE TABLE IF NOT EXISTS orders",
		"'Pending', 'Shipped', 'Completed', 'Cancelled'",
	}
	for _, sub := range checks {
		assert.Contains(t, content.String(), sub)
	}
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "Add Product Ratings!")
	require.NoError(t, err)
	assert.Regexp(t, `\d{14}_add_product_ratings\.sql$`, filepath.Base(path))
	require.NoError(t, ValidateDir(dir))

	_, err = CreateSQLMigration(dir, "!!!")
	assert.Error(t, err)
}

func TestMigrationSlug(t *testing.T) {
	assert.Equal(t, "add_order_tracking", migrationSlug("  Add order--tracking "))
	assert.Equal(t, "v2_products", migrationSlug("v2/Products"))
	assert.Empty(t, migrationSlug("__"))
}

func TestValidateDirRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, ValidateDir(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "init.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644))
	assert.Error(t, ValidateDir(dir))

	require.NoError(t, os.Remove(filepath.Join(dir, "init.sql")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20250101000000_init.sql"), []byte("-- +goose Up\nSELECT 1;\n"), 0o644))
	assert.Error(t, ValidateDir(dir))
}

func TestRunRequiresDB(t *testing.T) {
	assert.Error(t, Run(context.Background(), nil, "migrations", "up"))
	assert.Error(t, MigrateToVersion(context.Background(), nil, "migrations", ""))
}
