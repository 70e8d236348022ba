package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/shravyakp25082007-tech/stockmate/internal/app"
	"github.com/shravyakp25082007-tech/stockmate/internal/repository"
	"github.com/shravyakp25082007-tech/stockmate/internal/service"
)

func newApp(t *testing.T) *app.App {
	t.Helper()
	now := func() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) }
	a, err := app.New(repository.NewMemoryStore(), service.NopNotifier, now, zerolog.Nop())
	require.NoError(t, err)
	return a
}

func TestPrintDashboard(t *testing.T) {
	t.Parallel()
	a := newApp(t)

	var buf bytes.Buffer
	printDashboard(&buf, a.Dashboard.GetDashboardStats())
	out := buf.String()
	require.Contains(t, out, "20,610.00")
	require.Contains(t, out, "(8 items)")
	require.Contains(t, out, "In stock 6 (75%)")
	require.Contains(t, out, "[warning] Low Stock: Sugar (2kg) (2 units)")
	require.Contains(t, out, "[danger] Out of Stock: Cooking Oil (5L) (0 units)")
}

func TestPrintTransactions(t *testing.T) {
	t.Parallel()
	a := newApp(t)

	var buf bytes.Buffer
	printTransactions(&buf, a.Ledger, 10)
	require.Contains(t, buf.String(), "No transactions yet")

	_, err := a.Ledger.RecordBuy(7, 5, decimal.NewFromInt(100), "Sharma Traders")
	require.NoError(t, err)
	_, err = a.Ledger.RecordSale(2, 1, decimal.NewFromInt(500), "Asha")
	require.NoError(t, err)

	buf.Reset()
	printTransactions(&buf, a.Ledger, 10)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[1], "Sale")
	require.Contains(t, lines[1], "Asha")
	require.Contains(t, lines[2], "Purchase")
	require.Contains(t, lines[2], "2026-03-14T09:30:00Z")
	require.Contains(t, lines[2], "500.00")

	buf.Reset()
	printTransactions(&buf, a.Ledger, 1)
	require.Len(t, strings.Split(strings.TrimSpace(buf.String()), "\n"), 2)
}
