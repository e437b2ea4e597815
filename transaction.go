package folio

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Side is a typed string identifying the direction of a transaction.
type Side string

// Transaction sides.
const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// ParseSide parses a string into a Side.
func ParseSide(s string) (Side, error) {
	switch Side(strings.ToLower(strings.TrimSpace(s))) {
	case Buy:
		return Buy, nil
	case Sell:
		return Sell, nil
	default:
		return "", fmt.Errorf("unknown transaction side: %q", s)
	}
}

// ValidationError reports a malformed transaction. It is raised before any
// ledger state is touched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid transaction: %s %s", e.Field, e.Reason)
}

// Transaction is one buy or sell order, immutable once created.
type Transaction struct {
	Side     Side      `json:"side"`
	Symbol   string    `json:"symbol"`
	Quantity int64     `json:"quantity"`
	Price    Money     `json:"price"` // price per share
	Time     time.Time `json:"time"`
}

// NewBuy creates a buy transaction with its symbol normalized.
func NewBuy(symbol string, quantity int64, price Money, at time.Time) Transaction {
	return Transaction{Side: Buy, Symbol: NormalizeSymbol(symbol), Quantity: quantity, Price: price, Time: at}
}

// NewSell creates a sell transaction with its symbol normalized.
func NewSell(symbol string, quantity int64, price Money, at time.Time) Transaction {
	return Transaction{Side: Sell, Symbol: NormalizeSymbol(symbol), Quantity: quantity, Price: price, Time: at}
}

// NormalizeSymbol trims whitespace and uppercases a ticker symbol. Two
// transactions differing only in case or surrounding whitespace must resolve
// to the same holding.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Amount returns the gross value of the transaction: quantity times price.
func (t Transaction) Amount() Money { return t.Price.MulQty(t.Quantity) }

func (t Transaction) Equal(o Transaction) bool {
	return t.Side == o.Side &&
		t.Symbol == o.Symbol &&
		t.Quantity == o.Quantity &&
		t.Price.Equal(o.Price) &&
		t.Time.Equal(o.Time)
}

// Validate checks the transaction's fields and returns a normalized copy.
// A zero time is quick-fixed to now, everything else is rejected.
func (t Transaction) Validate() (Transaction, error) {
	t.Symbol = NormalizeSymbol(t.Symbol)
	if t.Symbol == "" {
		return t, &ValidationError{Field: "symbol", Reason: "is empty"}
	}
	if t.Side != Buy && t.Side != Sell {
		return t, &ValidationError{Field: "side", Reason: fmt.Sprintf("must be %q or %q, got %q", Buy, Sell, t.Side)}
	}
	if t.Quantity <= 0 {
		return t, &ValidationError{Field: "quantity", Reason: fmt.Sprintf("must be positive, got %d", t.Quantity)}
	}
	if t.Price.IsNegative() {
		return t, &ValidationError{Field: "price", Reason: fmt.Sprintf("must not be negative, got %s", t.Price)}
	}
	if t.Time.IsZero() {
		t.Time = time.Now()
	}
	return t, nil
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s %d %s @ %s", t.Side, t.Quantity, t.Symbol, t.Price)
}

// MarshalJSON implements the json.Marshaler interface for Transaction, with a
// stable key order.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("side", t.Side)
	w.Append("symbol", t.Symbol)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price)
	w.Append("time", t.Time.UTC().Format(time.RFC3339))
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Transaction.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var temp struct {
		Side     Side   `json:"side"`
		Symbol   string `json:"symbol"`
		Quantity int64  `json:"quantity"`
		Price    Money  `json:"price"`
		Time     string `json:"time"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.Side = temp.Side
	t.Symbol = temp.Symbol
	t.Quantity = temp.Quantity
	t.Price = temp.Price
	if temp.Time != "" {
		at, err := time.Parse(time.RFC3339, temp.Time)
		if err != nil {
			return fmt.Errorf("invalid transaction time %q: %w", temp.Time, err)
		}
		t.Time = at
	}
	return nil
}
