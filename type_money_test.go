package folio

import (
	"encoding/json"
	"testing"
)

func TestMoneyString(t *testing.T) {
	tests := []struct {
		in   Money
		want string
	}{
		{M(0), "$0.00"},
		{M(1), "$1.00"},
		{M(187.15), "$187.15"},
		{M(1234.5), "$1,234.50"},
		{M(-42.5), "-$42.50"},
	}
	for _, tc := range tests {
		if got := tc.in.String(); got != tc.want {
			t.Errorf("String(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMoneySignedString(t *testing.T) {
	tests := []struct {
		in   Money
		want string
	}{
		{M(0), "-"},
		{M(50), "+$50.00"},
		{M(-50), "-$50.00"},
	}
	for _, tc := range tests {
		if got := tc.in.SignedString(); got != tc.want {
			t.Errorf("SignedString(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	if got := M(100).MulQty(3); !got.Equal(M(300)) {
		t.Errorf("MulQty = %s, want %s", got, M(300))
	}
	if got := M(350).DivQty(4); !got.Equal(M(87.5)) {
		t.Errorf("DivQty = %s, want %s", got, M(87.5))
	}
	if got := M(100).Add(M(0.1)).Sub(M(0.1)); !got.Equal(M(100)) {
		t.Errorf("Add/Sub = %s, want %s", got, M(100))
	}
	// No float drift: 0.1 added ten times is exactly 1.
	var sum Money
	for range 10 {
		sum = sum.Add(M(0.1))
	}
	if !sum.Equal(M(1)) {
		t.Errorf("10 x 0.1 = %s, want %s", sum, M(1))
	}
}

func TestMoneyJSON(t *testing.T) {
	data, err := json.Marshal(M(187.15))
	if err != nil {
		t.Fatal(err)
	}
	if want := "187.15"; string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var back Money
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if !back.Equal(M(187.15)) {
		t.Errorf("round trip = %s, want %s", back, M(187.15))
	}
}
