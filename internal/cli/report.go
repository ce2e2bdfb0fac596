package cli

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/google/subcommands"
)

type reportCmd struct {
	currency string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "print the financial report" }
func (*reportCmd) Usage() string {
	return `ledgerctl report [-currency <ISO code>]

  Prints revenue, expenses, profit, inventory value, sales by product,
  expenses by category and low stock products. Amounts are formatted in
  LEDGER_CURRENCY unless -currency is given.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "currency", "", "ISO 4217 currency used to format amounts (defaults to LEDGER_CURRENCY).")
}

func (c *reportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := openEnv(ctx)
	if err != nil {
		return fail(err)
	}
	defer e.Close()

	cur := c.currency
	if cur == "" {
		cur = e.cfg.Ledger.Currency
	}

	r, err := e.svc.Snapshots.GetReportSnapshot(ctx)
	if err != nil {
		return fail(err)
	}

	w := tabwriter.NewWriter(e.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Revenue\t%s\n", formatMoney(r.Revenue, cur))
	fmt.Fprintf(w, "Expenses\t%s\n", formatMoney(r.Expenses, cur))
	fmt.Fprintf(w, "Profit\t%s\n", formatMoney(r.Profit, cur))
	fmt.Fprintf(w, "Profit margin\t%s%%\n", r.ProfitMargin.StringFixed(2))
	fmt.Fprintf(w, "Inventory value\t%s\n", formatMoney(r.InventoryValue, cur))
	fmt.Fprintf(w, "Average product price\t%s\n", formatMoney(r.AverageProductPrice, cur))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "PRODUCT\tSALES\tUNITS\tREVENUE")
	for _, p := range r.SalesByProduct {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", p.Name, p.Sales, p.Units, formatMoney(p.Revenue, cur))
	}
	fmt.Fprintln(w)

	if len(r.ExpensesByCategory) > 0 {
		fmt.Fprintln(w, "CATEGORY\tAMOUNT")
		for _, ct := range r.ExpensesByCategory {
			fmt.Fprintf(w, "%s\t%s\n", ct.Category, formatMoney(ct.Amount, cur))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Low stock\t%d (adequate %d)\n", r.StockHealth.LowCount, r.StockHealth.AdequateCount)
	for _, p := range r.StockHealth.LowStock {
		fmt.Fprintf(w, "  %s\t%d / reorder %d\n", p.Name, p.Quantity, p.ReorderLevel)
	}
	if err := w.Flush(); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
