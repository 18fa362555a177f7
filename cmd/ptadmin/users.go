package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/google/subcommands"

	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/api/request"
)

type userAddCmd struct {
	out      io.Writer
	username string
	password string
	name     string
	email    string
}

func (*userAddCmd) Name() string     { return "useradd" }
func (*userAddCmd) Synopsis() string { return "create a user" }
func (*userAddCmd) Usage() string {
	return `ptadmin useradd -username <name> -password <password> [-name <full name>] [-email <address>]

  Creates a user and prints its id.
`
}

func (c *userAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "username", "", "Login name (required).")
	f.StringVar(&c.password, "password", "", "Initial password (required).")
	f.StringVar(&c.name, "name", "", "Display name.")
	f.StringVar(&c.email, "email", "", "Email address.")
}

func (c *userAddCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx, true)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	req := request.CreateUserRequest{Username: c.username, Password: c.password}
	if c.name != "" {
		req.Name = &c.name
	}
	if c.email != "" {
		req.Email = &c.email
	}

	user, err := a.userService().CreateUser(ctx, req)
	if err != nil {
		return fail(err)
	}

	fmt.Fprintln(c.out, user.ID)
	return subcommands.ExitSuccess
}

type usersCmd struct {
	out io.Writer
}

func (*usersCmd) Name() string     { return "users" }
func (*usersCmd) Synopsis() string { return "list users" }
func (*usersCmd) Usage() string {
	return `ptadmin users

  Prints id, username and email of every user, tab separated.
`
}

func (*usersCmd) SetFlags(*flag.FlagSet) {}

func (c *usersCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx, true)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	users, err := a.userService().GetAllUsers(ctx)
	if err != nil {
		return fail(err)
	}

	for _, u := range users {
		email := ""
		if u.Email != nil {
			email = *u.Email
		}
		fmt.Fprintf(c.out, "%s\t%s\t%s\n", u.ID, u.Username, email)
	}
	return subcommands.ExitSuccess
}

type checkPasswordCmd struct {
	out      io.Writer
	username string
	password string
}

func (*checkPasswordCmd) Name() string     { return "checkpw" }
func (*checkPasswordCmd) Synopsis() string { return "check a user's password" }
func (*checkPasswordCmd) Usage() string {
	return `ptadmin checkpw -username <name> -password <password>

  Prints "ok" and exits 0 when the password matches, "mismatch" and exits 1 otherwise.
`
}

func (c *checkPasswordCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "username", "", "Login name.")
	f.StringVar(&c.password, "password", "", "Password to check.")
}

func (c *checkPasswordCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx, true)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	ok, err := a.userService().VerifyPassword(ctx, c.username, c.password)
	if err != nil {
		return fail(err)
	}
	if !ok {
		fmt.Fprintln(c.out, "mismatch")
		return subcommands.ExitFailure
	}
	fmt.Fprintln(c.out, "ok")
	return subcommands.ExitSuccess
}
