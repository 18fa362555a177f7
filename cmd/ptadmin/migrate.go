package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/google/subcommands"

	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/database"
)

type migrateCmd struct {
	out    io.Writer
	status bool
}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "apply pending schema migrations" }
func (*migrateCmd) Usage() string {
	return `ptadmin migrate [-status]

  Applies every pending migration. With -status, only prints the current
  and latest schema versions.
`
}

func (c *migrateCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.status, "status", false, "Print the schema version without migrating.")
}

func (c *migrateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx, false)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	if c.status {
		status, err := database.Status(ctx, a.db)
		if err != nil {
			return fail(err)
		}
		fmt.Fprintf(c.out, "current\t%d\nlatest\t%d\npending\t%t\n", status.Current, status.Latest, status.Pending())
		return subcommands.ExitSuccess
	}

	applied, err := database.Migrate(ctx, a.db)
	if err != nil {
		return fail(err)
	}
	fmt.Fprintf(c.out, "applied %d migration(s)\n", applied)
	return subcommands.ExitSuccess
}
