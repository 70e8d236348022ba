package repository

import (
	"github.com/shravyakp25082007-tech/stockmate/internal/model"
)

type TransactionRepository interface {
	// FindAll returns the log newest first.
	FindAll() (transactions []model.Transaction, found bool, err error)
	SaveAll(transactions []model.Transaction) error
}

type transactionRepo struct {
	store Store
}

func NewTransactionRepo(store Store) TransactionRepository {
	return &transactionRepo{store}
}

func (r *transactionRepo) FindAll() ([]model.Transaction, bool, error) {
	var transactions []model.Transaction
	found, err := loadJSON(r.store, KeyTransactions, &transactions)
	if err != nil || !found {
		return nil, false, err
	}
	if transactions == nil {
		transactions = []model.Transaction{}
	}
	return transactions, true, nil
}

func (r *transactionRepo) SaveAll(transactions []model.Transaction) error {
	if transactions == nil {
		transactions = []model.Transaction{}
	}
	return saveJSON(r.store, KeyTransactions, transactions)
}
