package folio

import (
	"errors"
	"testing"
	"time"
)

var testDay = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func TestHoldingApplyBuy(t *testing.T) {
	tests := []struct {
		name    string
		start   Holding
		tx      Transaction
		want    Holding
	}{
		{
			name:  "first buy",
			start: Holding{},
			tx:    NewBuy("AAPL", 10, M(100), testDay),
			want:  Holding{Quantity: 10, AverageCost: M(100)},
		},
		{
			name:  "average cost is weighted",
			start: Holding{Quantity: 10, AverageCost: M(100)},
			tx:    NewBuy("AAPL", 10, M(200), testDay),
			want:  Holding{Quantity: 20, AverageCost: M(150)},
		},
		{
			name:  "uneven weights",
			start: Holding{Quantity: 1, AverageCost: M(100)},
			tx:    NewBuy("AAPL", 3, M(200), testDay),
			want:  Holding{Quantity: 4, AverageCost: M(175)},
		},
		{
			name:  "free shares",
			start: Holding{Quantity: 4, AverageCost: M(175)},
			tx:    NewBuy("AAPL", 4, M(0), testDay),
			want:  Holding{Quantity: 8, AverageCost: M(87.5)},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := tc.start
			if err := h.Apply(tc.tx); err != nil {
				t.Fatalf("Apply() = %v", err)
			}
			if !h.Equal(tc.want) {
				t.Errorf("Apply() = %+v, want %+v", h, tc.want)
			}
		})
	}
}

func TestHoldingApplySell(t *testing.T) {
	h := Holding{Quantity: 10, AverageCost: M(100)}
	if err := h.Apply(NewSell("AAPL", 4, M(150), testDay)); err != nil {
		t.Fatalf("Apply() = %v", err)
	}
	// Selling must not move the average cost of the remaining shares.
	want := Holding{Quantity: 6, AverageCost: M(100)}
	if !h.Equal(want) {
		t.Errorf("Apply() = %+v, want %+v", h, want)
	}
}

func TestHoldingOversell(t *testing.T) {
	h := Holding{Quantity: 5, AverageCost: M(20)}
	err := h.Apply(NewSell("AAPL", 6, M(20), testDay))
	if !errors.Is(err, ErrInsufficientQuantity) {
		t.Fatalf("Apply() = %v, want ErrInsufficientQuantity", err)
	}
	if !h.Equal(Holding{Quantity: 5, AverageCost: M(20)}) {
		t.Errorf("holding changed after failed sell: %+v", h)
	}
}
