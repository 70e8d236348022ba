package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"

	"github.com/shravyakp25082007-tech/stockmate/internal/app"
	"github.com/shravyakp25082007-tech/stockmate/internal/config"
	"github.com/shravyakp25082007-tech/stockmate/internal/logger"
	"github.com/shravyakp25082007-tech/stockmate/internal/model"
	"github.com/shravyakp25082007-tech/stockmate/internal/service"
	"github.com/shravyakp25082007-tech/stockmate/pkg/currency"
)

var commands = []subcommands.Command{
	&dashboardCmd{},
	&transactionsCmd{},
	&resetCmd{},
}

func openApp() (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return app.Open(cfg, service.NopNotifier, logger.New("warn", true))
}

// dashboardCmd prints the overview.
type dashboardCmd struct{}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "print stock value, plan counts and stock alerts" }
func (*dashboardCmd) Usage() string {
	return `stockctl dashboard

  Prints the dashboard computed from the configured store.
`
}
func (*dashboardCmd) SetFlags(*flag.FlagSet) {}

func (*dashboardCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	printDashboard(os.Stdout, a.Dashboard.GetDashboardStats())
	return subcommands.ExitSuccess
}

func printDashboard(w io.Writer, s model.DashboardStats) {
	fmt.Fprintf(w, "Total stock value: %s (%d items)\n", currency.Display(s.TotalStockValue), s.ItemCount)
	fmt.Fprintf(w, "To buy today: %d   To sell today: %d   Low stock: %d\n", s.BuyTodayCount, s.SellTodayCount, s.LowStockCount)
	fmt.Fprintf(w, "In stock %d (%.0f%%)  Low %d (%.0f%%)  Out %d (%.0f%%)\n",
		s.Buckets.InStock, s.Proportions.InStock*100,
		s.Buckets.LowStock, s.Proportions.LowStock*100,
		s.Buckets.OutOfStock, s.Proportions.OutOfStock*100)

	if len(s.Alerts) == 0 {
		fmt.Fprintln(w, "No alerts. Everything looks good!")
		return
	}
	fmt.Fprintln(w, "Alerts:")
	for _, a := range s.Alerts {
		fmt.Fprintf(w, "  [%s] %s: %s (%d units)\n", a.Severity, a.Title, a.ProductName, a.CurrentQuantity)
	}
}

// transactionsCmd lists the most recent transactions.
type transactionsCmd struct {
	limit int
}

func (*transactionsCmd) Name() string     { return "transactions" }
func (*transactionsCmd) Synopsis() string { return "list the most recent purchases and sales" }
func (*transactionsCmd) Usage() string {
	return `stockctl transactions [-n <limit>]

  Lists transactions newest first.
`
}

func (c *transactionsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", service.DefaultHistoryLimit, "Maximum number of transactions to list.")
}

func (c *transactionsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	printTransactions(os.Stdout, a.Ledger, c.limit)
	return subcommands.ExitSuccess
}

func printTransactions(w io.Writer, ledger service.LedgerService, limit int) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tTYPE\tPRODUCT\tQTY\tUNIT\tTOTAL\tPARTY")
	n := 0
	for tx := range ledger.Recent(limit) {
		kind := "Purchase"
		if tx.Type == model.TxSale {
			kind = "Sale"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			tx.Timestamp, kind, tx.ProductName, tx.Quantity,
			currency.Display(tx.Price), currency.Display(tx.Total), tx.Counterparty())
		n++
	}
	tw.Flush()
	if n == 0 {
		fmt.Fprintln(w, "No transactions yet")
	}
}

// resetCmd restores the defaults of a fresh install.
type resetCmd struct {
	yes bool
}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "replace catalog, plan and history with the defaults" }
func (*resetCmd) Usage() string {
	return `stockctl reset -yes

  Overwrites the stored catalog with the sample products, empties today's
  plan and deletes the transaction history. This cannot be undone.
`
}

func (c *resetCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "yes", false, "Confirm the reset.")
}

func (c *resetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.yes {
		fmt.Fprintln(os.Stderr, "Refusing to reset without -yes")
		f.Usage()
		return subcommands.ExitUsageError
	}
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if err := a.Reset(time.Now()); err != nil {
		fmt.Fprintf(os.Stderr, "Error resetting data: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println("Data reset to defaults")
	return subcommands.ExitSuccess
}
