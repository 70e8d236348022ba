package service

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/shravyakp25082007-tech/stockmate/internal/model"
	"github.com/shravyakp25082007-tech/stockmate/internal/repository"
	"github.com/shravyakp25082007-tech/stockmate/internal/ws"
)

// DefaultHistoryLimit bounds how many transactions are listed.
const DefaultHistoryLimit = 50

// LedgerService records purchases and sales and adjusts stock accordingly.
type LedgerService interface {
	RecordBuy(productID int64, quantity int, unitPrice decimal.Decimal, supplier string) (model.Transaction, error)
	RecordSale(productID int64, quantity int, unitPrice decimal.Decimal, buyer string) (model.Transaction, error)
	// Recent yields up to limit transactions, newest first. A limit <= 0
	// means DefaultHistoryLimit.
	Recent(limit int) iter.Seq[model.Transaction]
	GetTransaction(id uuid.UUID) (model.Transaction, error)
}

type ledgerService struct {
	state       *model.State
	productRepo repository.ProductRepository
	txRepo      repository.TransactionRepository
	notifier    Notifier
	now         Clock
	log         zerolog.Logger
}

func NewLedgerService(state *model.State, pRepo repository.ProductRepository, tRepo repository.TransactionRepository, notifier Notifier, now Clock, log zerolog.Logger) LedgerService {
	return &ledgerService{
		state:       state,
		productRepo: pRepo,
		txRepo:      tRepo,
		notifier:    notifier,
		now:         now,
		log:         log.With().Str("component", "ledger").Logger(),
	}
}

func (s *ledgerService) RecordBuy(productID int64, quantity int, unitPrice decimal.Decimal, supplier string) (model.Transaction, error) {
	return s.record(model.TxBuy, model.TradeRequest{
		ProductID:    productID,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		Counterparty: supplier,
	})
}

func (s *ledgerService) RecordSale(productID int64, quantity int, unitPrice decimal.Decimal, buyer string) (model.Transaction, error) {
	return s.record(model.TxSale, model.TradeRequest{
		ProductID:    productID,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		Counterparty: buyer,
	})
}

func (s *ledgerService) record(txType model.TransactionType, req model.TradeRequest) (model.Transaction, error) {
	// 1. Validate input
	if err := validateStruct(req); err != nil {
		return model.Transaction{}, err
	}

	s.state.Lock()
	defer s.state.Unlock()

	idx := s.state.ProductIndex(req.ProductID)
	if idx < 0 {
		return model.Transaction{}, productNotFound(req.ProductID)
	}
	product := &s.state.Products[idx]

	// 2. Stock logic; nothing is mutated before this check passes
	newStock := product.Quantity
	switch txType {
	case model.TxBuy:
		if req.Quantity > math.MaxInt-product.Quantity {
			return model.Transaction{}, model.NewValidationError("quantity", "is too large for the current stock")
		}
		newStock += req.Quantity
	case model.TxSale:
		if product.Quantity < req.Quantity {
			return model.Transaction{}, &model.InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   req.Quantity,
				Available:   product.Quantity,
			}
		}
		newStock -= req.Quantity
	}

	tx := model.Transaction{
		ID:          uuid.New(),
		Type:        txType,
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    req.Quantity,
		Price:       req.UnitPrice,
		Total:       req.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity))),
		Timestamp:   model.NewTimestamp(s.now()),
	}
	counterparty := strings.TrimSpace(req.Counterparty)
	if txType == model.TxBuy {
		tx.Supplier = counterparty
	} else {
		tx.BuyerName = counterparty
	}

	// 3. Apply both writes
	product.Quantity = newStock
	s.state.Transactions = slices.Insert(s.state.Transactions, 0, tx)

	// 4. Persist
	var errs []error
	if err := s.productRepo.SaveAll(s.state.Products); err != nil {
		errs = append(errs, err)
	}
	if err := s.txRepo.SaveAll(s.state.Transactions); err != nil {
		errs = append(errs, err)
	}
	err := errors.Join(errs...)
	if err != nil {
		s.log.Error().Err(err).Str("tx_id", tx.ID.String()).Msg("save after transaction")
	}

	s.log.Info().
		Str("type", string(txType)).
		Int64("product_id", tx.ProductID).
		Int("quantity", tx.Quantity).
		Int("new_stock", newStock).
		Msg("transaction recorded")

	verb := "Purchase"
	if txType == model.TxSale {
		verb = "Sale"
	}
	s.notifier.Publish(ws.Event{
		Type:    eventStockUpdate,
		Action:  "transaction_created",
		Message: eventMessage(fmt.Sprintf("%s recorded: %d × %s", verb, tx.Quantity, tx.ProductName), err),
		Data: map[string]interface{}{
			"transaction": tx,
			"new_stock":   newStock,
		},
	})
	return tx, err
}

func (s *ledgerService) Recent(limit int) iter.Seq[model.Transaction] {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return func(yield func(model.Transaction) bool) {
		s.state.Lock()
		n := min(limit, len(s.state.Transactions))
		page := slices.Clone(s.state.Transactions[:n])
		s.state.Unlock()

		for _, tx := range page {
			if !yield(tx) {
				return
			}
		}
	}
}

func (s *ledgerService) GetTransaction(id uuid.UUID) (model.Transaction, error) {
	s.state.Lock()
	defer s.state.Unlock()

	for _, tx := range s.state.Transactions {
		if tx.ID == id {
			return tx, nil
		}
	}
	return model.Transaction{}, &model.NotFoundError{Entity: "transaction", Key: id.String()}
}
