package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/jhoicas/stock-ledger/pkg/jwt"
)

type tokenCmd struct {
	email   string
	minutes int
}

func (*tokenCmd) Name() string     { return "token" }
func (*tokenCmd) Synopsis() string { return "mint a bearer token for a directory user" }
func (*tokenCmd) Usage() string {
	return `ledgerctl token -email <email> [-exp <minutes>]

  Signs a token with JWT_SECRET carrying the user's ID and role. Operator
  tooling for local use and smoke tests; the user must exist in the directory.
`
}

func (c *tokenCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "Email of an existing directory user.")
	f.IntVar(&c.minutes, "exp", 0, "Token lifetime in minutes (defaults to JWT_EXPIRATION_MINUTES).")
}

func (c *tokenCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.email == "" {
		return fail(errors.New("-email es obligatorio"))
	}
	e, err := openEnv(ctx)
	if err != nil {
		return fail(err)
	}
	defer e.Close()

	user, err := e.svc.Users.GetByEmail(ctx, c.email)
	if err != nil {
		return fail(fmt.Errorf("usuario %s: %w", c.email, err))
	}

	minutes := c.minutes
	if minutes <= 0 {
		minutes = e.cfg.JWT.Expiration
	}
	tok, err := jwt.Generate(e.cfg.JWT.Secret, user.ID, user.Role, e.cfg.JWT.Issuer, minutes)
	if err != nil {
		return fail(err)
	}
	fmt.Fprintln(e.out, tok)
	return subcommands.ExitSuccess
}
