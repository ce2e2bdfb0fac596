// Package cli implementa los subcomandos de ledgerctl, la herramienta de operación del libro de inventario.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Rhymond/go-money"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/bootstrap"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// Commands subcomandos registrados por ledgerctl.
var Commands = []subcommands.Command{
	&reconcileCmd{},
	&reportCmd{},
	&tokenCmd{},
	&seedAdminCmd{},
}

// env recursos abiertos por un subcomando.
type env struct {
	cfg     *config.Config
	svc     *bootstrap.Services
	backend *bootstrap.Backend
	out     io.Writer
}

func (e *env) Close() { e.backend.Close() }

// openEnv carga configuración y abre el backend. ledgerctl no usa el caché de snapshots:
// siempre lee del almacenamiento.
func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: "development", Level: "warn", Out: os.Stderr})
	backend, err := bootstrap.OpenBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &env{
		cfg:     cfg,
		svc:     bootstrap.NewServices(backend, nil, log),
		backend: backend,
		out:     os.Stdout,
	}, nil
}

// formatMoney representa un monto exacto en la moneda indicada (ISO 4217).
func formatMoney(amount decimal.Decimal, code string) string {
	// money.New garantiza una moneda no nula incluso para códigos desconocidos
	cur := *money.New(0, code).Currency()
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, err)
	return subcommands.ExitFailure
}
