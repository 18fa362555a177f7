package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/google/subcommands"

	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/model"
)

type snapshotCmd struct {
	out  io.Writer
	date string
}

func (*snapshotCmd) Name() string     { return "snapshot" }
func (*snapshotCmd) Synopsis() string { return "record performance snapshots of active portfolios" }
func (*snapshotCmd) Usage() string {
	return `ptadmin snapshot [-date YYYY-MM-DD]

  Records a snapshot of every active portfolio that has none for the date.
`
}

func (c *snapshotCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "date", "", "Snapshot date (defaults to today, UTC).")
}

func (c *snapshotCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	date := model.Today()
	if c.date != "" {
		d, err := request.ParseDate(c.date)
		if err != nil {
			return fail(err)
		}
		date = d
	}

	a, err := openApp(ctx, true)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	result, err := a.performanceService().RecordSnapshots(ctx, date)
	if err != nil {
		return fail(err)
	}

	for _, p := range result.Recorded {
		fmt.Fprintf(c.out, "%s\t%s\t%s\n", p.PortfolioID, p.Date, p.TotalValue.StringFixed(2))
	}
	fmt.Fprintf(c.out, "recorded %d, skipped %d\n", len(result.Recorded), result.Skipped)
	return subcommands.ExitSuccess
}
