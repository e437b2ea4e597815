package folio

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncodeLedger(t *testing.T) {
	l := NewLedger()
	apply(t, l,
		NewBuy("MSFT", 1, M(300.50), testDay),
		NewBuy("AAPL", 10, M(100), testDay),
	)

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, l); err != nil {
		t.Fatal(err)
	}
	want := `{"totalAssets":1300.5,"realizedPnL":0,"holdings":{"AAPL":{"quantity":10,"averageCost":100},"MSFT":{"quantity":1,"averageCost":300.5}}}` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("EncodeLedger() = %s, want %s", got, want)
	}
}

func TestEncodeLedgerEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeLedger(&buf, NewLedger()); err != nil {
		t.Fatal(err)
	}
	want := `{"totalAssets":0,"realizedPnL":0,"holdings":{}}` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("EncodeLedger() = %s, want %s", got, want)
	}
}

func TestEncodeLedgerDeterministic(t *testing.T) {
	l := NewLedger()
	apply(t, l,
		NewBuy("GOOG", 3, M(120), testDay),
		NewBuy("AAPL", 10, M(100), testDay),
		NewBuy("MSFT", 5, M(300), testDay),
	)

	var first bytes.Buffer
	if err := EncodeLedger(&first, l); err != nil {
		t.Fatal(err)
	}
	for range 10 {
		var again bytes.Buffer
		if err := EncodeLedger(&again, l); err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(first.Bytes(), again.Bytes()) {
			t.Fatalf("encoding is not deterministic: %s vs %s", first.String(), again.String())
		}
	}
}

func TestDecodeLedgerRoundTrip(t *testing.T) {
	l := NewLedger()
	apply(t, l,
		NewBuy("AAPL", 10, M(100), testDay),
		NewBuy("MSFT", 4, M(250.25), testDay),
		NewSell("AAPL", 5, M(150), testDay),
	)

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, l); err != nil {
		t.Fatal(err)
	}
	back, err := DecodeLedger(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !l.Equal(back) {
		t.Errorf("round trip mismatch:\n  encoded %+v\n  decoded %+v", l, back)
	}
}

func TestDecodeLedgerErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"garbage", "not json at all"},
		{"truncated", `{"totalAssets":100,"realized`},
		{"zero quantity holding", `{"totalAssets":0,"realizedPnL":0,"holdings":{"AAPL":{"quantity":0,"averageCost":10}}}`},
		{"negative quantity holding", `{"totalAssets":0,"realizedPnL":0,"holdings":{"AAPL":{"quantity":-5,"averageCost":10}}}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeLedger(strings.NewReader(tc.in)); err == nil {
				t.Error("DecodeLedger() = nil, want error")
			}
		})
	}
}

func TestDecodeLedgerNormalizesSymbols(t *testing.T) {
	in := `{"totalAssets":1000,"realizedPnL":0,"holdings":{"aapl":{"quantity":10,"averageCost":100}}}`
	l, err := DecodeLedger(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if got := l.Position("AAPL"); got != 10 {
		t.Errorf("Position(AAPL) = %d, want 10", got)
	}
}
