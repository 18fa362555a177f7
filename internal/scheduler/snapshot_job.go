package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/model"
)

// SnapshotRecorder records the performance snapshots of all active portfolios for a date.
type SnapshotRecorder interface {
	RecordSnapshots(ctx context.Context, date time.Time) (model.SnapshotResult, error)
}

// SnapshotJob records today's performance snapshot of every active portfolio.
type SnapshotJob struct {
	recorder SnapshotRecorder
	log      zerolog.Logger
	now      func() time.Time
}

// NewSnapshotJob creates a new snapshot job
func NewSnapshotJob(recorder SnapshotRecorder, log zerolog.Logger) *SnapshotJob {
	return &SnapshotJob{
		recorder: recorder,
		log:      log.With().Str("job", "performance_snapshot").Logger(),
		now:      time.Now,
	}
}

// Name returns the job name
func (j *SnapshotJob) Name() string {
	return "performance_snapshot"
}

// Run records snapshots dated today in UTC.
func (j *SnapshotJob) Run(ctx context.Context) error {
	result, err := j.recorder.RecordSnapshots(ctx, model.DateOf(j.now()))
	if err != nil {
		return err
	}

	j.log.Info().
		Str("date", result.Date).
		Int("recorded", len(result.Recorded)).
		Int("skipped", result.Skipped).
		Msg("Snapshot job finished")

	return nil
}
