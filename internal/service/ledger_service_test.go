package service

import (
	"iter"
	"math"
	"slices"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/shravyakp25082007-tech/stockmate/internal/model"
)

func TestRecordBuy(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	// LED Bulb starts at 12
	tx, err := f.ledger.RecordBuy(7, 5, decimal.NewFromInt(100), " Sharma Traders ")
	require.NoError(t, err)
	require.Equal(t, model.TxBuy, tx.Type)
	require.Equal(t, "Sharma Traders", tx.Supplier)
	require.Empty(t, tx.BuyerName)
	require.True(t, tx.Total.Equal(decimal.NewFromInt(500)))
	require.True(t, tx.Timestamp.Equal(fixedNow))
	require.Equal(t, 17, f.product(t, 7).Quantity)

	products, _, txs := f.stored(t)
	require.Equal(t, 17, products[6].Quantity)
	require.Len(t, txs, 1)
	require.Equal(t, tx.ID, txs[0].ID)
	require.Equal(t, []string{"transaction_created"}, f.notifier.actions())
}

func TestRecordBuyAddsToStock(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.inventory.UpdateProduct(1, fields("Wheat Flour (10kg)", 10, 5, 450, 550))
	require.NoError(t, err)
	_, err = f.ledger.RecordBuy(1, 5, decimal.NewFromInt(100), "")
	require.NoError(t, err)

	p := f.product(t, 1)
	require.Equal(t, 15, p.Quantity)
	tx, err := f.ledger.GetTransaction(first(f.ledger.Recent(1)).ID)
	require.NoError(t, err)
	require.True(t, tx.Total.Equal(decimal.NewFromInt(500)))
}

func TestRecordSale(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	tx, err := f.ledger.RecordSale(2, 8, decimal.RequireFromString("499.50"), "Asha")
	require.NoError(t, err)
	require.Equal(t, "Asha", tx.BuyerName)
	require.Equal(t, "3996", tx.Total.String())

	p := f.product(t, 2)
	require.Zero(t, p.Quantity)
	require.Equal(t, model.StatusOutOfStock, p.Status())
}

func TestRecordSaleInsufficientStock(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	// Sugar has 2 in stock
	_, err := f.ledger.RecordSale(3, 5, decimal.NewFromInt(280), "")
	var serr *model.InsufficientStockError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, 2, serr.Available)
	require.Equal(t, 5, serr.Requested)

	require.Equal(t, 2, f.product(t, 3).Quantity)
	require.Empty(t, slices.Collect(f.ledger.Recent(0)))
	require.Empty(t, f.notifier.actions())

	_, _, txs := f.stored(t)
	require.Empty(t, txs)
}

func TestRecordRejectsBadInput(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	var verr *model.ValidationError
	_, err := f.ledger.RecordBuy(1, 0, decimal.NewFromInt(10), "")
	require.ErrorAs(t, err, &verr)
	_, err = f.ledger.RecordSale(1, 1, decimal.Zero, "")
	require.ErrorAs(t, err, &verr)

	var nf *model.NotFoundError
	_, err = f.ledger.RecordBuy(404, 1, decimal.NewFromInt(10), "")
	require.ErrorAs(t, err, &nf)

	require.Equal(t, 15, f.product(t, 1).Quantity)
}

func TestRecordBuyRejectsStockOverflow(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.ledger.RecordBuy(1, math.MaxInt, decimal.NewFromInt(1), "")
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "quantity", verr.Fields[0].Field)

	p := f.product(t, 1)
	require.Equal(t, 15, p.Quantity)
	require.Equal(t, model.StatusInStock, p.Status())
	require.Empty(t, slices.Collect(f.ledger.Recent(0)))

	// the largest quantity that still fits is accepted
	_, err = f.ledger.RecordBuy(1, math.MaxInt-15, decimal.NewFromInt(1), "")
	require.NoError(t, err)
	require.Equal(t, math.MaxInt, f.product(t, 1).Quantity)
}

func TestRecordKeepsChangeWhenSaveFails(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.store.setFailing(true)

	tx, err := f.ledger.RecordBuy(4, 5, decimal.NewFromInt(50), "")
	var perr *model.PersistenceError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, 30, f.product(t, 4).Quantity)

	got, err := f.ledger.GetTransaction(tx.ID)
	require.NoError(t, err)
	require.Equal(t, tx.ID, got.ID)
	require.Contains(t, f.notifier.events[0].Message, "kept in memory only")
}

func TestRecentNewestFirst(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	for i := range 60 {
		_, err := f.ledger.RecordBuy(6, i+1, decimal.NewFromInt(40), "")
		require.NoError(t, err)
	}

	all := slices.Collect(f.ledger.Recent(0))
	require.Len(t, all, DefaultHistoryLimit)
	require.Equal(t, 60, all[0].Quantity)
	require.Equal(t, 11, all[DefaultHistoryLimit-1].Quantity)

	three := slices.Collect(f.ledger.Recent(3))
	require.Equal(t, []int{60, 59, 58}, []int{three[0].Quantity, three[1].Quantity, three[2].Quantity})

	_, err := f.ledger.GetTransaction(uuid.New())
	var nf *model.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestConcurrentSalesNeverOversell(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	// Aspirin has 5 in stock
	var wg sync.WaitGroup
	var mu sync.Mutex
	sold := 0
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.ledger.RecordSale(8, 1, decimal.NewFromInt(200), ""); err == nil {
				mu.Lock()
				sold++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 5, sold)
	require.Zero(t, f.product(t, 8).Quantity)
	require.Len(t, slices.Collect(f.ledger.Recent(0)), 5)
}

func first(seq iter.Seq[model.Transaction]) model.Transaction {
	for tx := range seq {
		return tx
	}
	return model.Transaction{}
}
