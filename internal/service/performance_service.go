package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/database"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/validation"
)

// PerformanceService handles the daily value snapshots of portfolios.
type PerformanceService struct {
	db              *sql.DB
	performanceRepo *repository.PerformanceRepository
	portfolioRepo   *repository.PortfolioRepository
	workers         int
	log             zerolog.Logger
}

// NewPerformanceService creates a new PerformanceService. workers bounds how
// many portfolios RecordSnapshots processes at once.
func NewPerformanceService(
	db *sql.DB,
	performanceRepo *repository.PerformanceRepository,
	portfolioRepo *repository.PortfolioRepository,
	workers int,
	log zerolog.Logger,
) *PerformanceService {
	if workers < 1 {
		workers = 1
	}
	return &PerformanceService{
		db:              db,
		performanceRepo: performanceRepo,
		portfolioRepo:   portfolioRepo,
		workers:         workers,
		log:             log.With().Str("component", "performance_service").Logger(),
	}
}

// GetPerformanceHistory retrieves all snapshots of a portfolio in ascending date order.
func (s *PerformanceService) GetPerformanceHistory(ctx context.Context, portfolioID string) ([]model.PerformanceView, error) {
	if _, err := s.portfolioRepo.GetPortfolio(ctx, portfolioID); err != nil {
		return nil, err
	}
	snapshots, err := s.performanceRepo.GetPerformance(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	return model.PerformanceViews(snapshots), nil
}

// GetPerformanceBetween retrieves the snapshots of a portfolio between
// startDate and endDate inclusive, in ascending date order.
func (s *PerformanceService) GetPerformanceBetween(ctx context.Context, portfolioID string, startDate, endDate time.Time) ([]model.PerformanceView, error) {
	if startDate.After(endDate) {
		return nil, validation.NewError("startDate", "startDate must not be after endDate")
	}
	if _, err := s.portfolioRepo.GetPortfolio(ctx, portfolioID); err != nil {
		return nil, err
	}
	snapshots, err := s.performanceRepo.GetPerformanceBetween(ctx, portfolioID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	return model.PerformanceViews(snapshots), nil
}

// GetPerformanceOnDate retrieves the snapshot of a portfolio on an exact date.
func (s *PerformanceService) GetPerformanceOnDate(ctx context.Context, portfolioID string, date time.Time) (model.PerformanceView, error) {
	if _, err := s.portfolioRepo.GetPortfolio(ctx, portfolioID); err != nil {
		return model.PerformanceView{}, err
	}
	p, err := s.performanceRepo.GetPerformanceOnDate(ctx, portfolioID, date)
	if err != nil {
		return model.PerformanceView{}, err
	}
	return p.View(), nil
}

// GetPerformance retrieves a single snapshot by its ID.
func (s *PerformanceService) GetPerformance(ctx context.Context, performanceID string) (model.PerformanceView, error) {
	p, err := s.performanceRepo.GetPerformanceByID(ctx, performanceID)
	if err != nil {
		return model.PerformanceView{}, err
	}
	return p.View(), nil
}

// RecordPerformance stores a snapshot with explicitly supplied values.
// Returns ErrPerformanceExists if the portfolio already has one on that date.
func (s *PerformanceService) RecordPerformance(ctx context.Context, req request.CreatePerformanceRequest) (*model.PerformanceView, error) {
	if err := validation.ValidateCreatePerformance(req); err != nil {
		return nil, err
	}

	date, err := request.ParseDate(req.Date)
	if err != nil {
		return nil, validation.NewError("date", err.Error())
	}

	snapshot := model.NewPerformance(
		req.PortfolioID,
		date,
		*req.TotalValue,
		nullDecimal(req.DailyChange),
		nullDecimal(req.PercentageChange),
	)

	err = database.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := s.portfolioRepo.WithTx(tx).GetPortfolio(ctx, req.PortfolioID); err != nil {
			return err
		}
		return s.performanceRepo.WithTx(tx).InsertPerformance(ctx, snapshot)
	})
	if err != nil {
		return nil, err
	}

	view := snapshot.View()
	return &view, nil
}

// UpdatePerformance corrects the values of a snapshot. Only provided fields change.
func (s *PerformanceService) UpdatePerformance(ctx context.Context, performanceID string, req request.UpdatePerformanceRequest) (*model.PerformanceView, error) {
	if err := validation.ValidateUpdatePerformance(req); err != nil {
		return nil, err
	}

	var snapshot model.Performance
	err := database.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		performanceRepo := s.performanceRepo.WithTx(tx)

		var err error
		snapshot, err = performanceRepo.GetPerformanceByID(ctx, performanceID)
		if err != nil {
			return err
		}

		if req.TotalValue != nil {
			snapshot.TotalValue = *req.TotalValue
		}
		if req.DailyChange != nil {
			snapshot.DailyChange = decimal.NewNullDecimal(*req.DailyChange)
		}
		if req.PercentageChange != nil {
			snapshot.PercentageChange = decimal.NewNullDecimal(*req.PercentageChange)
		}

		return performanceRepo.UpdatePerformance(ctx, &snapshot)
	})
	if err != nil {
		return nil, err
	}

	view := snapshot.View()
	return &view, nil
}

// DeletePerformance removes a snapshot. Deleting an unknown id succeeds.
func (s *PerformanceService) DeletePerformance(ctx context.Context, performanceID string) error {
	return database.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		return s.performanceRepo.WithTx(tx).DeletePerformance(ctx, performanceID)
	})
}

// RecordSnapshots records the current totalValue of every active portfolio as
// its snapshot for date. Portfolios that already have a snapshot on date are
// skipped, so running it twice for the same date is harmless.
//
// The daily change is measured against the latest earlier snapshot. Each
// portfolio is handled in its own database transaction, at most s.workers at a
// time; the first failure cancels the remaining work.
func (s *PerformanceService) RecordSnapshots(ctx context.Context, date time.Time) (model.SnapshotResult, error) {
	date = model.DateOf(date)
	result := model.SnapshotResult{
		Date:     date.Format(model.DateLayout),
		Recorded: []model.PerformanceView{},
	}

	portfolios, err := s.portfolioRepo.GetPortfolios(ctx, model.PortfolioFilter{ActiveOnly: true})
	if err != nil {
		return result, fmt.Errorf("%w: %w", apperrors.ErrFailedToRecordSnapshots, err)
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, p := range portfolios {
		portfolioID := p.ID
		g.Go(func() error {
			snapshot, err := s.recordSnapshot(gctx, portfolioID, date)
			if err != nil {
				return fmt.Errorf("portfolio %s: %w", portfolioID, err)
			}

			mu.Lock()
			defer mu.Unlock()
			if snapshot == nil {
				result.Skipped++
				return nil
			}
			result.Recorded = append(result.Recorded, snapshot.View())
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.log.Error().Err(err).Str("date", result.Date).Msg("snapshot run failed")
		return result, fmt.Errorf("%w: %w", apperrors.ErrFailedToRecordSnapshots, err)
	}

	sort.Slice(result.Recorded, func(i, j int) bool {
		return result.Recorded[i].PortfolioID < result.Recorded[j].PortfolioID
	})

	s.log.Info().
		Str("date", result.Date).
		Int("recorded", len(result.Recorded)).
		Int("skipped", result.Skipped).
		Msg("performance snapshots recorded")

	return result, nil
}

// recordSnapshot records one portfolio's snapshot for date. It returns nil
// without error when a snapshot already exists or the portfolio disappeared.
func (s *PerformanceService) recordSnapshot(ctx context.Context, portfolioID string, date time.Time) (*model.Performance, error) {
	var snapshot *model.Performance

	err := database.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		performanceRepo := s.performanceRepo.WithTx(tx)

		portfolio, err := s.portfolioRepo.WithTx(tx).GetPortfolio(ctx, portfolioID)
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		_, err = performanceRepo.GetPerformanceOnDate(ctx, portfolioID, date)
		if err == nil {
			return nil
		}
		if !errors.Is(err, apperrors.ErrPerformanceNotFound) {
			return err
		}

		var previous *model.Performance
		prev, err := performanceRepo.GetLatestBefore(ctx, portfolioID, date)
		switch {
		case err == nil:
			previous = &prev
		case !errors.Is(err, apperrors.ErrPerformanceNotFound):
			return err
		}

		next := model.NewSnapshot(portfolioID, date, portfolio.TotalValue, previous)
		if err := performanceRepo.InsertPerformance(ctx, next); err != nil {
			return err
		}
		snapshot = next
		return nil
	})
	if errors.Is(err, apperrors.ErrPerformanceExists) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if snapshot != nil {
		s.log.Debug().Str("portfolio_id", portfolioID).Str("total_value", snapshot.TotalValue.String()).Msg("snapshot recorded")
	}
	return snapshot, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}
