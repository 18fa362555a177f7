package service_test

import (
	"context"
	"testing"

	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/testutil"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/version"
)

func TestSystemService(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestSystemService(t, db)

	if err := svc.CheckHealth(ctx); err != nil {
		t.Errorf("CheckHealth() returned unexpected error: %v", err)
	}

	info, err := svc.CheckVersion(ctx)
	if err != nil {
		t.Fatalf("CheckVersion() returned unexpected error: %v", err)
	}
	if info.AppVersion != version.Version {
		t.Errorf("Expected app version %s, got %s", version.Version, info.AppVersion)
	}
	if info.MigrationNeeded || info.MigrationMessage != nil {
		t.Errorf("Expected no pending migrations on a migrated database, got %+v", info)
	}
	if info.DbVersion != "1" {
		t.Errorf("Expected db version 1, got %s", info.DbVersion)
	}

	db.Close()
	if err := svc.CheckHealth(ctx); err == nil {
		t.Error("Expected CheckHealth() to fail on a closed database")
	}
}
