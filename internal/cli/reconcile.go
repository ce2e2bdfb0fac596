package cli

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/google/subcommands"
)

type reconcileCmd struct{}

func (*reconcileCmd) Name() string     { return "reconcile" }
func (*reconcileCmd) Synopsis() string { return "compare catalog quantities against the stock journal" }
func (*reconcileCmd) Usage() string {
	return `ledgerctl reconcile

  Checks that every product's quantity equals the sum of its journal movements
  and that every sale is paired with its stock movement. Only reports; never
  fixes anything. Exits non-zero when a discrepancy is found.
`
}

func (*reconcileCmd) SetFlags(*flag.FlagSet) {}

func (*reconcileCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := openEnv(ctx)
	if err != nil {
		return fail(err)
	}
	defer e.Close()

	report, err := e.svc.Reconciler.Run(ctx)
	if err != nil {
		return fail(err)
	}

	fmt.Fprintf(e.out, "checked %d products, %d sales\n", report.CheckedProducts, report.CheckedSales)
	if report.Consistent() {
		fmt.Fprintln(e.out, "ledger is consistent")
		return subcommands.ExitSuccess
	}

	w := tabwriter.NewWriter(e.out, 0, 0, 2, ' ', 0)
	if len(report.Discrepancies) > 0 {
		fmt.Fprintln(w, "PRODUCT\tSKU\tRECORDED\tJOURNAL")
		for _, d := range report.Discrepancies {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", d.ProductID, d.SKU, d.Recorded, d.Journal)
		}
	}
	if len(report.UnpairedSales) > 0 {
		fmt.Fprintln(w, "SALE\tIN LEDGER\tBALANCE\t")
		for _, s := range report.UnpairedSales {
			fmt.Fprintf(w, "%s\t%t\t%d\t\n", s.SaleID, s.InLedger, s.Balance)
		}
	}
	_ = w.Flush()
	return subcommands.ExitFailure
}
