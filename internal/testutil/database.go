package testutil

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/database"
)

// SetupTestDB opens a private in-memory database with the production schema
// applied. It is closed when the test completes.
//
//	db := testutil.SetupTestDB(t)
//	user := testutil.NewUser().Build(t, db)
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(database.MemoryPath)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if _, err := database.Migrate(context.Background(), db); err != nil {
		db.Close()
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// CountRows returns the number of rows in table. Table names are quoted, so
// "user" and "transaction" work as written.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	//nolint:gosec // table names come from test code
	if err := db.QueryRow(`SELECT COUNT(*) FROM "` + strings.Trim(table, `"`) + `"`).Scan(&count); err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}
	return count
}

// AssertRowCount fails the test unless table holds exactly expected rows.
//
//	testutil.AssertRowCount(t, db, "portfolio", 0)
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	if actual := CountRows(t, db, table); actual != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, actual)
	}
}
