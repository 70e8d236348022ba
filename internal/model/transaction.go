package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TxBuy  TransactionType = "buy"
	TxSale TransactionType = "sale"
)

// Transaction is a completed purchase or sale. It is never edited once
// recorded, and keeps its product snapshot after the product is deleted.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	Type        TransactionType `json:"type"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"` // unit price
	Supplier    string          `json:"supplier,omitempty"`
	BuyerName   string          `json:"buyerName,omitempty"`
	Total       decimal.Decimal `json:"total"`
	Timestamp   Timestamp       `json:"timestamp"`
}

// Counterparty is the supplier of a buy or the buyer of a sale.
func (t Transaction) Counterparty() string {
	if t.Type == TxSale {
		return t.BuyerName
	}
	return t.Supplier
}

// UnmarshalJSON accepts records whose id is not a uuid, such as the
// numeric ids of the browser version. Those decode with a nil id.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	type plain Transaction
	aux := struct {
		ID json.RawMessage `json:"id"`
		*plain
	}{plain: (*plain)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t.ID = uuid.Nil
	var s string
	if json.Unmarshal(aux.ID, &s) == nil {
		if id, err := uuid.Parse(s); err == nil {
			t.ID = id
		}
	}
	return nil
}

// TradeRequest is the validated input of a buy or a sale.
type TradeRequest struct {
	ProductID    int64           `json:"productId"`
	Quantity     int             `json:"quantity" validate:"gte=1"`
	UnitPrice    decimal.Decimal `json:"price" validate:"gt=0"`
	Counterparty string          `json:"counterparty"`
}

// Timestamp is a transaction instant. Records written by older clients hold
// a locale formatted string; those are parsed when the layout is known and
// otherwise kept verbatim in Raw.
type Timestamp struct {
	time.Time
	Raw string
}

var legacyTimestampLayouts = []string{
	"1/2/2006, 3:04:05 PM",
	"2/1/2006, 3:04:05 pm",
	"1/2/2006, 15:04:05",
	"2/1/2006, 15:04:05",
	"2006-01-02 15:04:05",
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (ts Timestamp) String() string {
	if ts.Time.IsZero() {
		return ts.Raw
	}
	return ts.Time.Format(time.RFC3339)
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.String())
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*ts = Timestamp{}
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		ts.Time = t
		return nil
	}
	for _, layout := range legacyTimestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			ts.Time = t
			return nil
		}
	}
	ts.Raw = s
	return nil
}
