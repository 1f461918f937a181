package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production database schema.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Currency catalog
		CREATE TABLE IF NOT EXISTS currency (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			code VARCHAR(5) NOT NULL UNIQUE,
			name VARCHAR(100) NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE
		);

		-- Organization table
		CREATE TABLE IF NOT EXISTS organization (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			country_code VARCHAR(2),
			base_currency VARCHAR(5) NOT NULL,
			provider VARCHAR(20),
			interval_unit VARCHAR(10) NOT NULL DEFAULT 'manually',
			next_execution_date DATE
		);

		-- Historical exchange rates, one record per currency/organization/date
		CREATE TABLE IF NOT EXISTS currency_rate (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			currency_id VARCHAR(36) NOT NULL,
			organization_id VARCHAR(36) NOT NULL,
			date DATE NOT NULL,
			rate FLOAT NOT NULL,
			FOREIGN KEY(currency_id) REFERENCES currency(id) ON DELETE CASCADE,
			FOREIGN KEY(organization_id) REFERENCES organization(id) ON DELETE CASCADE,
			CONSTRAINT unique_currency_org_date UNIQUE (currency_id, organization_id, date)
		);

		-- Runtime provider settings (tokens, endpoint overrides)
		CREATE TABLE IF NOT EXISTS provider_config (
			key VARCHAR(50) NOT NULL PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := db.Exec(schema)
	return err
}
