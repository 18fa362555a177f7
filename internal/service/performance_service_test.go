package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/testutil"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/validation"
)

func day(s string) time.Time {
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

// TestPerformanceService_RecordSnapshots tests the daily snapshot run.
//
// WHY: The scheduler calls this once a day. Each active portfolio must get one
// snapshot with its change against the previous one, and re-running the same
// day must not duplicate anything.
func TestPerformanceService_RecordSnapshots(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestPerformanceService(t, db)

	user := testutil.NewUser().Build(t, db)
	growing := testutil.NewPortfolio(user.ID).WithTotalValue("1100").Build(t, db)
	fresh := testutil.NewPortfolio(user.ID).WithTotalValue("50").Build(t, db)
	testutil.NewPortfolio(user.ID).WithTotalValue("75").Inactive().Build(t, db)
	done := testutil.NewPortfolio(user.ID).WithTotalValue("10").Build(t, db)

	testutil.NewPerformance(growing.ID).WithDate(day("2024-03-09")).WithTotalValue("1000").Build(t, db)
	testutil.NewPerformance(done.ID).WithDate(day("2024-03-10")).WithTotalValue("9").Build(t, db)

	result, err := svc.RecordSnapshots(ctx, day("2024-03-10"))
	if err != nil {
		t.Fatalf("RecordSnapshots() returned unexpected error: %v", err)
	}

	if result.Date != "2024-03-10" {
		t.Errorf("Expected date 2024-03-10, got %s", result.Date)
	}
	if len(result.Recorded) != 2 {
		t.Fatalf("Expected 2 recorded snapshots, got %d", len(result.Recorded))
	}
	if result.Skipped != 1 {
		t.Errorf("Expected 1 skipped portfolio, got %d", result.Skipped)
	}

	byPortfolio := map[string]model.PerformanceView{}
	for _, s := range result.Recorded {
		byPortfolio[s.PortfolioID] = s
	}

	g, ok := byPortfolio[growing.ID]
	if !ok {
		t.Fatal("Expected a snapshot for the growing portfolio")
	}
	if !g.TotalValue.Equal(decimal.NewFromInt(1100)) {
		t.Errorf("Expected total value 1100, got %s", g.TotalValue)
	}
	if !g.DailyChange.Valid || !g.DailyChange.Decimal.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected daily change 100, got %v", g.DailyChange)
	}
	if !g.PercentageChange.Valid || !g.PercentageChange.Decimal.Equal(decimal.NewFromInt(10)) {
		t.Errorf("Expected percentage change 10, got %v", g.PercentageChange)
	}

	f, ok := byPortfolio[fresh.ID]
	if !ok {
		t.Fatal("Expected a snapshot for the fresh portfolio")
	}
	if f.DailyChange.Valid || f.PercentageChange.Valid {
		t.Errorf("Expected null changes without a previous snapshot, got %+v", f)
	}

	testutil.AssertRowCount(t, db, "performance", 4)

	t.Run("second run for the same date records nothing", func(t *testing.T) {
		again, err := svc.RecordSnapshots(ctx, day("2024-03-10"))
		if err != nil {
			t.Fatalf("RecordSnapshots() returned unexpected error: %v", err)
		}
		if len(again.Recorded) != 0 || again.Skipped != 3 {
			t.Errorf("Expected 0 recorded and 3 skipped, got %d and %d", len(again.Recorded), again.Skipped)
		}
		testutil.AssertRowCount(t, db, "performance", 4)
	})
}

func TestPerformanceService_RecordSnapshots_ZeroPrevious(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestPerformanceService(t, db)

	p := testutil.CreatePortfolio(t, db, "Empty start")
	testutil.NewPerformance(p.ID).WithDate(day("2024-01-01")).WithTotalValue("0").Build(t, db)
	if _, err := testutil.NewTestPortfolioService(t, db).UpdatePortfolio(ctx, p.ID, request.UpdatePortfolioRequest{
		TotalValue: testutil.Ptr(decimal.NewFromInt(20)),
	}); err != nil {
		t.Fatalf("UpdatePortfolio() returned unexpected error: %v", err)
	}

	result, err := svc.RecordSnapshots(ctx, day("2024-01-02"))
	if err != nil {
		t.Fatalf("RecordSnapshots() returned unexpected error: %v", err)
	}
	if len(result.Recorded) != 1 {
		t.Fatalf("Expected 1 recorded snapshot, got %d", len(result.Recorded))
	}

	s := result.Recorded[0]
	if !s.DailyChange.Valid || !s.DailyChange.Decimal.Equal(decimal.NewFromInt(20)) {
		t.Errorf("Expected daily change 20, got %v", s.DailyChange)
	}
	if s.PercentageChange.Valid {
		t.Errorf("Expected null percentage change from a zero base, got %v", s.PercentageChange)
	}
}

// TestPerformanceService_RecordPerformance tests manual snapshot entry.
//
// WHY: There is at most one snapshot per portfolio and date.
func TestPerformanceService_RecordPerformance(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestPerformanceService(t, db)
	p := testutil.CreatePortfolio(t, db, "Manual")

	req := request.CreatePerformanceRequest{
		PortfolioID: p.ID,
		Date:        "2024-02-29",
		TotalValue:  testutil.Ptr(decimal.RequireFromString("123.45")),
		DailyChange: testutil.Ptr(decimal.RequireFromString("-1.5")),
	}

	created, err := svc.RecordPerformance(ctx, req)
	if err != nil {
		t.Fatalf("RecordPerformance() returned unexpected error: %v", err)
	}
	if created.Date != "2024-02-29" || created.PercentageChange.Valid {
		t.Errorf("Unexpected snapshot: %+v", created)
	}

	if _, err := svc.RecordPerformance(ctx, req); !errors.Is(err, apperrors.ErrPerformanceExists) {
		t.Errorf("Expected ErrPerformanceExists, got %v", err)
	}

	onDate, err := svc.GetPerformanceOnDate(ctx, p.ID, day("2024-02-29"))
	if err != nil {
		t.Fatalf("GetPerformanceOnDate() returned unexpected error: %v", err)
	}
	if onDate.ID != created.ID {
		t.Errorf("Expected snapshot %s, got %s", created.ID, onDate.ID)
	}

	if _, err := svc.GetPerformanceOnDate(ctx, p.ID, day("2024-03-01")); !errors.Is(err, apperrors.ErrPerformanceNotFound) {
		t.Errorf("Expected ErrPerformanceNotFound, got %v", err)
	}

	_, err = svc.RecordPerformance(ctx, request.CreatePerformanceRequest{PortfolioID: p.ID, Date: "2024-03-01"})
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Errorf("Expected *validation.Error for missing totalValue, got %v", err)
	}
}

func TestPerformanceService_History(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestPerformanceService(t, db)
	p := testutil.CreatePortfolio(t, db, "History")

	for _, d := range []string{"2024-01-03", "2024-01-01", "2024-01-02", "2024-01-05"} {
		testutil.NewPerformance(p.ID).WithDate(day(d)).Build(t, db)
	}

	history, err := svc.GetPerformanceHistory(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetPerformanceHistory() returned unexpected error: %v", err)
	}
	if len(history) != 4 || history[0].Date != "2024-01-01" || history[3].Date != "2024-01-05" {
		t.Errorf("Expected ascending history, got %+v", history)
	}

	between, err := svc.GetPerformanceBetween(ctx, p.ID, day("2024-01-02"), day("2024-01-03"))
	if err != nil {
		t.Fatalf("GetPerformanceBetween() returned unexpected error: %v", err)
	}
	if len(between) != 2 || between[0].Date != "2024-01-02" || between[1].Date != "2024-01-03" {
		t.Errorf("Expected inclusive range of 2 snapshots, got %+v", between)
	}

	_, err = svc.GetPerformanceBetween(ctx, p.ID, day("2024-01-05"), day("2024-01-01"))
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Errorf("Expected *validation.Error for inverted range, got %v", err)
	}

	if _, err := svc.GetPerformanceHistory(ctx, testutil.MakeID()); !errors.Is(err, apperrors.ErrPortfolioNotFound) {
		t.Errorf("Expected ErrPortfolioNotFound, got %v", err)
	}
}

func TestPerformanceService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestPerformanceService(t, db)
	p := testutil.CreatePortfolio(t, db, "Edits")
	snap := testutil.NewPerformance(p.ID).WithTotalValue("10").WithDailyChange("1").Build(t, db)

	updated, err := svc.UpdatePerformance(ctx, snap.ID, request.UpdatePerformanceRequest{
		PercentageChange: testutil.Ptr(decimal.RequireFromString("11.1111")),
	})
	if err != nil {
		t.Fatalf("UpdatePerformance() returned unexpected error: %v", err)
	}
	if !updated.TotalValue.Equal(decimal.NewFromInt(10)) || !updated.DailyChange.Decimal.Equal(decimal.NewFromInt(1)) {
		t.Errorf("Expected unchanged total and daily change, got %+v", updated)
	}
	if !updated.PercentageChange.Valid {
		t.Error("Expected percentage change to be set")
	}

	if err := svc.DeletePerformance(ctx, snap.ID); err != nil {
		t.Fatalf("DeletePerformance() returned unexpected error: %v", err)
	}
	if _, err := svc.GetPerformance(ctx, snap.ID); !errors.Is(err, apperrors.ErrPerformanceNotFound) {
		t.Errorf("Expected ErrPerformanceNotFound, got %v", err)
	}
}
