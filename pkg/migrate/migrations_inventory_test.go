package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStockMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_inventory_stock_and_movements.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no inventory stock migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS inventory_stock",
		"CHECK (quantity >= 0)",
		"UNIQUE (part_id, inventory_location_id)",
		"CREATE TABLE IF NOT EXISTS inventory_movements",
		"DROP TABLE IF EXISTS inventory_movements",
		"DROP TABLE IF EXISTS inventory_stock",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestRolesMigrationSeedsRoleSet(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_users_and_roles.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no users/roles migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	for _, role := range []string{"'Manager'", "'Mechanic'", "'Driver'", "'PartsClerk'"} {
		if !strings.Contains(content, role) {
			t.Errorf("missing seeded role %s", role)
		}
	}
}
