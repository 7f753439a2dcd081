package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hospinv/hospinv-backend/pkg/migrate"
)

func TestSchemaMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_inventory_schema.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no inventory schema migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE SEQUENCE IF NOT EXISTS inventory_item_code_seq",
		"CREATE TABLE IF NOT EXISTS inventory_items",
		"serial VARCHAR(50) NOT NULL UNIQUE",
		"CHECK (status IN ('Available', 'Assigned', 'UnderMaintenance', 'Damaged'))",
		"registered_at DATE NOT NULL DEFAULT CURRENT_DATE",
		"CREATE TABLE IF NOT EXISTS maintenance_reports",
		"REFERENCES inventory_items (id)",
		"DROP TABLE IF EXISTS maintenance_reports",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationsDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir failed validation: %v", err)
	}
}
