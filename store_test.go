package folio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreSaveLoad(t *testing.T) {
	store := NewLedgerStore(filepath.Join(t.TempDir(), "ledger.json"))

	l := NewLedger()
	apply(t, l,
		NewBuy("AAPL", 10, M(100), testDay),
		NewSell("AAPL", 4, M(150), testDay),
	)
	if err := store.Save(l); err != nil {
		t.Fatal(err)
	}

	back, status := store.Load()
	if status != StatusLoaded {
		t.Fatalf("Load() status = %s, want %s", status, StatusLoaded)
	}
	if !l.Equal(back) {
		t.Errorf("Load() = %+v, want %+v", back, l)
	}
}

func TestStoreLoadMissingFile(t *testing.T) {
	store := NewLedgerStore(filepath.Join(t.TempDir(), "ledger.json"))

	l, status := store.Load()
	if status != StatusNew {
		t.Fatalf("Load() status = %s, want %s", status, StatusNew)
	}
	if !l.Equal(NewLedger()) {
		t.Errorf("Load() = %+v, want empty ledger", l)
	}
}

func TestStoreLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	if err := os.WriteFile(path, []byte("{malformed"), 0o644); err != nil {
		t.Fatal(err)
	}
	store := NewLedgerStore(path)

	l, status := store.Load()
	if status != StatusRecovered {
		t.Fatalf("Load() status = %s, want %s", status, StatusRecovered)
	}
	if !l.Equal(NewLedger()) {
		t.Errorf("Load() = %+v, want empty ledger", l)
	}
}

func TestStoreSaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "ledger.json")
	store := NewLedgerStore(path)

	if err := store.Save(NewLedger()); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("ledger file missing after Save: %v", err)
	}
}

func TestStoreSaveOverwrites(t *testing.T) {
	store := NewLedgerStore(filepath.Join(t.TempDir(), "ledger.json"))

	l := NewLedger()
	apply(t, l, NewBuy("AAPL", 10, M(100), testDay))
	if err := store.Save(l); err != nil {
		t.Fatal(err)
	}
	l.Reset()
	if err := store.Save(l); err != nil {
		t.Fatal(err)
	}

	back, status := store.Load()
	if status != StatusLoaded {
		t.Fatalf("Load() status = %s, want %s", status, StatusLoaded)
	}
	if !back.Equal(NewLedger()) {
		t.Errorf("Load() = %+v, want empty ledger", back)
	}
}
