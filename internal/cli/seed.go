package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

type seedAdminCmd struct {
	email string
	name  string
}

func (*seedAdminCmd) Name() string     { return "seed-admin" }
func (*seedAdminCmd) Synopsis() string { return "create the initial admin directory entry" }
func (*seedAdminCmd) Usage() string {
	return `ledgerctl seed-admin [-email <email>] [-name <name>]

  Creates the admin user if it does not exist yet. Safe to run repeatedly.
`
}

func (c *seedAdminCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "admin@inventory.com", "Admin email.")
	f.StringVar(&c.name, "name", "Admin User", "Admin display name.")
}

func (c *seedAdminCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := openEnv(ctx)
	if err != nil {
		return fail(err)
	}
	defer e.Close()

	user, err := e.svc.Users.Create(ctx, dto.CreateUserRequest{Email: c.email, Name: c.name, Role: entity.RoleAdmin})
	if errors.Is(err, domain.ErrEmailAlreadyExists) {
		fmt.Fprintf(e.out, "admin %s ya existe\n", c.email)
		return subcommands.ExitSuccess
	}
	if err != nil {
		return fail(err)
	}
	fmt.Fprintf(e.out, "admin creado: %s (%s)\n", user.ID, user.Email)
	return subcommands.ExitSuccess
}
