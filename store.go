package folio

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// LoadStatus tells apart a ledger that never had data from one whose record
// was lost. Both load as an empty ledger; only the status differs.
type LoadStatus int

const (
	// StatusNew means no record existed, this is a fresh ledger.
	StatusNew LoadStatus = iota
	// StatusLoaded means the record existed and deserialized cleanly.
	StatusLoaded
	// StatusRecovered means the record existed but was unreadable; an empty
	// ledger was substituted.
	StatusRecovered
)

func (s LoadStatus) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusLoaded:
		return "loaded"
	case StatusRecovered:
		return "recovered"
	default:
		return "unknown"
	}
}

// LedgerStore persists the full ledger state to a single file. It has
// read-only access to the ledger at save time and hands ownership of the
// loaded ledger to the caller; it never mutates live state.
type LedgerStore struct {
	// Path of the ledger record file.
	Path string
}

// NewLedgerStore creates a store persisting to path.
func NewLedgerStore(path string) *LedgerStore {
	return &LedgerStore{Path: path}
}

// Save writes the full ledger state to the store's file, overwriting any
// previous content and creating the containing directory if absent.
func (s *LedgerStore) Save(ledger *Ledger) error {
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("could not create directory for ledger %q: %w", s.Path, err)
		}
	}

	file, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("error opening ledger file %q for writing: %w", s.Path, err)
	}
	defer file.Close()

	return EncodeLedger(file, ledger)
}

// Load reads the persisted ledger. An absent record yields a fresh empty
// ledger (StatusNew). An unreadable record also yields a fresh empty ledger
// (StatusRecovered): availability wins over strictness here, but the recovery
// is logged so that lost data never passes silently for never-had-data.
func (s *LedgerStore) Load() (*Ledger, LoadStatus) {
	f, err := os.Open(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewLedger(), StatusNew
	}
	if err != nil {
		log.Printf("could not open ledger file %q, starting empty: %v", s.Path, err)
		return NewLedger(), StatusRecovered
	}
	defer f.Close()

	ledger, err := DecodeLedger(f)
	if err != nil {
		log.Printf("ledger file %q is corrupt, starting empty: %v", s.Path, err)
		return NewLedger(), StatusRecovered
	}
	return ledger, StatusLoaded
}
