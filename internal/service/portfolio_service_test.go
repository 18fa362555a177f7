package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/testutil"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/validation"
)

// TestPortfolioService_GetPortfolios tests portfolio listing.
//
// WHY: Portfolio retrieval is a fundamental operation. This ensures the service
// returns every portfolio, honours the owner and active filters, and returns an
// empty slice rather than nil for an empty database.
func TestPortfolioService_GetPortfolios(t *testing.T) {
	ctx := context.Background()

	t.Run("returns empty slice when no portfolios exist", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		portfolios, err := svc.GetPortfolios(ctx, model.PortfolioFilter{})
		if err != nil {
			t.Fatalf("GetPortfolios() returned unexpected error: %v", err)
		}
		if portfolios == nil || len(portfolios) != 0 {
			t.Errorf("Expected empty slice, got %v", portfolios)
		}
	})

	t.Run("returns all portfolios including inactive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		user := testutil.NewUser().Build(t, db)
		active := testutil.NewPortfolio(user.ID).WithName("Active Portfolio").Build(t, db)
		inactive := testutil.NewPortfolio(user.ID).WithName("Inactive Portfolio").Inactive().Build(t, db)

		portfolios, err := svc.GetPortfolios(ctx, model.PortfolioFilter{})
		if err != nil {
			t.Fatalf("GetPortfolios() returned unexpected error: %v", err)
		}
		if len(portfolios) != 2 {
			t.Fatalf("Expected 2 portfolios, got %d", len(portfolios))
		}

		found := map[string]bool{}
		for _, p := range portfolios {
			found[p.ID] = true
		}
		if !found[active.ID] || !found[inactive.ID] {
			t.Errorf("Expected both portfolios, got %+v", portfolios)
		}
	})

	t.Run("active filter excludes inactive portfolios", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		user := testutil.NewUser().Build(t, db)
		active := testutil.NewPortfolio(user.ID).Build(t, db)
		testutil.NewPortfolio(user.ID).Inactive().Build(t, db)

		portfolios, err := svc.GetPortfolios(ctx, model.PortfolioFilter{ActiveOnly: true})
		if err != nil {
			t.Fatalf("GetPortfolios() returned unexpected error: %v", err)
		}
		if len(portfolios) != 1 || portfolios[0].ID != active.ID {
			t.Errorf("Expected only the active portfolio, got %+v", portfolios)
		}
	})

	t.Run("user filter returns only that user's portfolios", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		alice := testutil.NewUser().Build(t, db)
		bob := testutil.NewUser().Build(t, db)
		mine := testutil.NewPortfolio(alice.ID).Build(t, db)
		testutil.NewPortfolio(bob.ID).Build(t, db)

		portfolios, err := svc.GetPortfoliosForUser(ctx, alice.ID, false)
		if err != nil {
			t.Fatalf("GetPortfoliosForUser() returned unexpected error: %v", err)
		}
		if len(portfolios) != 1 || portfolios[0].ID != mine.ID {
			t.Errorf("Expected only alice's portfolio, got %+v", portfolios)
		}
	})

	t.Run("unknown user returns ErrUserNotFound", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		_, err := svc.GetPortfoliosForUser(ctx, testutil.MakeID(), false)
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			t.Errorf("Expected ErrUserNotFound, got %v", err)
		}
	})
}

// TestPortfolioService_CreatePortfolio tests portfolio creation.
//
// WHY: A portfolio must belong to an existing user and gets sensible defaults.
func TestPortfolioService_CreatePortfolio(t *testing.T) {
	ctx := context.Background()

	t.Run("applies defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)
		user := testutil.NewUser().Build(t, db)

		created, err := svc.CreatePortfolio(ctx, request.CreatePortfolioRequest{
			UserID: user.ID,
			Name:   "Retirement",
		})
		if err != nil {
			t.Fatalf("CreatePortfolio() returned unexpected error: %v", err)
		}
		if !created.TotalValue.IsZero() {
			t.Errorf("Expected zero total value, got %s", created.TotalValue)
		}
		if !created.IsActive {
			t.Error("Expected new portfolio to be active")
		}

		fetched, err := svc.GetPortfolio(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetPortfolio() returned unexpected error: %v", err)
		}
		if fetched.Name != "Retirement" || fetched.UserID != user.ID {
			t.Errorf("Unexpected stored portfolio: %+v", fetched)
		}
	})

	t.Run("unknown user returns ErrUserNotFound", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		_, err := svc.CreatePortfolio(ctx, request.CreatePortfolioRequest{
			UserID: testutil.MakeID(),
			Name:   "Orphan",
		})
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			t.Errorf("Expected ErrUserNotFound, got %v", err)
		}
		testutil.AssertRowCount(t, db, "portfolio", 0)
	})

	t.Run("rejects missing name and negative value", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)
		user := testutil.NewUser().Build(t, db)

		negative := decimal.NewFromInt(-1)
		_, err := svc.CreatePortfolio(ctx, request.CreatePortfolioRequest{
			UserID:     user.ID,
			TotalValue: &negative,
		})

		var verr *validation.Error
		if !errors.As(err, &verr) {
			t.Fatalf("Expected *validation.Error, got %v", err)
		}
		if _, ok := verr.Fields["name"]; !ok {
			t.Error("Expected validation failure for name")
		}
		if _, ok := verr.Fields["totalValue"]; !ok {
			t.Error("Expected validation failure for totalValue")
		}
	})
}

// TestPortfolioService_UpdatePortfolio tests partial updates.
//
// WHY: Only provided fields may change; omitted ones keep their values.
func TestPortfolioService_UpdatePortfolio(t *testing.T) {
	ctx := context.Background()

	t.Run("updates only provided fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		user := testutil.NewUser().Build(t, db)
		p := testutil.NewPortfolio(user.ID).WithName("Original").WithDescription("keep me").Build(t, db)

		value := decimal.RequireFromString("1234.56")
		updated, err := svc.UpdatePortfolio(ctx, p.ID, request.UpdatePortfolioRequest{
			TotalValue: &value,
			IsActive:   testutil.Ptr(false),
		})
		if err != nil {
			t.Fatalf("UpdatePortfolio() returned unexpected error: %v", err)
		}
		if updated.Name != "Original" || updated.Description != "keep me" {
			t.Errorf("Expected name and description unchanged, got %+v", updated)
		}
		if !updated.TotalValue.Equal(value) {
			t.Errorf("Expected total value %s, got %s", value, updated.TotalValue)
		}
		if updated.IsActive {
			t.Error("Expected portfolio to be inactive")
		}

		fetched, err := svc.GetPortfolio(ctx, p.ID)
		if err != nil {
			t.Fatalf("GetPortfolio() returned unexpected error: %v", err)
		}
		if !fetched.TotalValue.Equal(value) || fetched.IsActive {
			t.Errorf("Update was not persisted: %+v", fetched)
		}
	})

	t.Run("unknown portfolio returns ErrPortfolioNotFound", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		_, err := svc.UpdatePortfolio(ctx, testutil.MakeID(), request.UpdatePortfolioRequest{Name: testutil.Ptr("x")})
		if !errors.Is(err, apperrors.ErrPortfolioNotFound) {
			t.Errorf("Expected ErrPortfolioNotFound, got %v", err)
		}
	})
}

func TestPortfolioService_DeletePortfolio(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestPortfolioService(t, db)

	p := testutil.CreatePortfolio(t, db, "Doomed")
	inv := testutil.NewInvestment(p.ID).Build(t, db)
	testutil.NewTransaction(p.ID).WithInvestment(inv.ID).Build(t, db)
	testutil.NewPerformance(p.ID).Build(t, db)

	if err := svc.DeletePortfolio(ctx, p.ID); err != nil {
		t.Fatalf("DeletePortfolio() returned unexpected error: %v", err)
	}

	if _, err := svc.GetPortfolio(ctx, p.ID); !errors.Is(err, apperrors.ErrPortfolioNotFound) {
		t.Errorf("Expected ErrPortfolioNotFound, got %v", err)
	}
	testutil.AssertRowCount(t, db, "investment", 0)
	testutil.AssertRowCount(t, db, "transaction", 0)
	testutil.AssertRowCount(t, db, "performance", 0)
	testutil.AssertRowCount(t, db, "user", 1)

	if err := svc.DeletePortfolio(ctx, p.ID); err != nil {
		t.Errorf("Deleting twice should succeed, got %v", err)
	}
}
