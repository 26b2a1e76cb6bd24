// Package ledger holds the in-memory transaction list for one session.
package ledger

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"fjacquet/smart-finance/internal/dateutils"
	"fjacquet/smart-finance/internal/logging"
	"fjacquet/smart-finance/internal/models"
	"fjacquet/smart-finance/internal/parsererror"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned for IDs not present in the ledger.
var ErrNotFound = errors.New("transaction not found")

// ImportMode selects how an import combines with the existing records.
type ImportMode string

const (
	// ImportReplace discards the current records.
	ImportReplace ImportMode = "replace"
	// ImportAppend keeps the current records and adds the new ones after them.
	ImportAppend ImportMode = "append"
)

// ParseImportMode parses an import mode name.
func ParseImportMode(s string) (ImportMode, error) {
	switch ImportMode(strings.ToLower(strings.TrimSpace(s))) {
	case ImportReplace:
		return ImportReplace, nil
	case ImportAppend:
		return ImportAppend, nil
	}
	return "", fmt.Errorf("unknown import mode %q (want replace or append)", s)
}

// Draft is a manual entry before validation. Empty Type means expense and
// empty Date means today.
type Draft struct {
	Date        string
	Description string
	Amount      decimal.Decimal
	Category    string
	Type        string
}

// Store is the session ledger. All methods are safe for concurrent use;
// readers get copies.
type Store struct {
	mu      sync.RWMutex
	records []models.Transaction
	lastID  int
	version uint64
	logger  logging.Logger
	now     func() time.Time
}

// NewStore creates a ledger holding initial, with the ID counter starting
// at the largest initial ID.
func NewStore(initial []models.Transaction, logger logging.Logger, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	s := &Store{
		records: models.CloneTransactions(initial),
		logger:  logging.OrDefault(logger),
		now:     now,
	}
	for _, tx := range s.records {
		if tx.ID > s.lastID {
			s.lastID = tx.ID
		}
	}
	return s
}

// All returns a copy of the records in insertion order.
func (s *Store) All() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := models.CloneTransactions(s.records)
	if out == nil {
		out = []models.Transaction{}
	}
	return out
}

// Snapshot returns a copy of the records together with the version they
// belong to.
func (s *Store) Snapshot() ([]models.Transaction, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := models.CloneTransactions(s.records)
	if out == nil {
		out = []models.Transaction{}
	}
	return out, s.version
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Version increases on every mutation.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Get returns the record with the given ID.
func (s *Store) Get(id int) (models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.records[i], nil
	}
	return models.Transaction{}, fmt.Errorf("transaction %d: %w", id, ErrNotFound)
}

// Add validates d and appends it with a fresh ID.
func (s *Store) Add(d Draft) (models.Transaction, error) {
	tx, err := s.fromDraft(d)
	if err != nil {
		return models.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	tx.ID = s.lastID
	s.records = append(s.records, tx)
	s.version++

	s.logger.Info("Transaction added",
		logging.Field{Key: logging.FieldTransactionID, Value: tx.ID},
		logging.Field{Key: logging.FieldCategory, Value: tx.Category})
	return tx, nil
}

// Update replaces every field of the record with the given ID. The ID and
// the record's position are kept.
func (s *Store) Update(id int, d Draft) (models.Transaction, error) {
	tx, err := s.fromDraft(d)
	if err != nil {
		return models.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.Transaction{}, fmt.Errorf("transaction %d: %w", id, ErrNotFound)
	}
	tx.ID = id
	s.records[i] = tx
	s.version++

	s.logger.Info("Transaction updated", logging.Field{Key: logging.FieldTransactionID, Value: id})
	return tx, nil
}

// Delete removes the record with the given ID. IDs are never reused.
func (s *Store) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("transaction %d: %w", id, ErrNotFound)
	}
	s.records = append(s.records[:i], s.records[i+1:]...)
	s.version++

	s.logger.Info("Transaction deleted", logging.Field{Key: logging.FieldTransactionID, Value: id})
	return nil
}

// Import stores normalized records, assigning each a fresh ID from the
// counter, and returns them as stored.
func (s *Store) Import(records []models.Transaction, mode ImportMode) []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	imported := models.CloneTransactions(records)
	for i := range imported {
		s.lastID++
		imported[i].ID = s.lastID
	}

	if mode == ImportAppend {
		s.records = append(s.records, imported...)
	} else {
		s.records = models.CloneTransactions(imported)
	}
	s.version++

	s.logger.Info("Transactions imported",
		logging.Field{Key: logging.FieldCount, Value: len(imported)},
		logging.Field{Key: logging.FieldMode, Value: string(mode)})
	return models.CloneTransactions(imported)
}

func (s *Store) indexOf(id int) int {
	for i, tx := range s.records {
		if tx.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) fromDraft(d Draft) (models.Transaction, error) {
	description := strings.TrimSpace(d.Description)
	if description == "" {
		return models.Transaction{}, &parsererror.EntryError{Field: "description", Reason: "is required"}
	}
	if strings.TrimSpace(d.Category) == "" {
		return models.Transaction{}, &parsererror.EntryError{Field: "category", Reason: "is required"}
	}
	category, ok := models.CanonicalCategory(d.Category)
	if !ok {
		return models.Transaction{}, &parsererror.EntryError{Field: "category", Reason: fmt.Sprintf("%q is not a known category", d.Category)}
	}
	if !d.Amount.IsPositive() {
		return models.Transaction{}, &parsererror.EntryError{Field: "amount", Reason: "must be greater than zero"}
	}

	txType := models.TypeExpense
	if strings.TrimSpace(d.Type) != "" {
		parsed, err := models.ParseTransactionType(d.Type)
		if err != nil {
			return models.Transaction{}, &parsererror.EntryError{Field: "type", Reason: err.Error()}
		}
		txType = parsed
	}

	date := strings.TrimSpace(d.Date)
	if date == "" {
		date = dateutils.ToISODate(s.now())
	} else if !dateutils.IsISODate(date) {
		return models.Transaction{}, &parsererror.EntryError{Field: "date", Reason: fmt.Sprintf("%q is not a YYYY-MM-DD date", d.Date)}
	}

	return models.Transaction{
		Date:        date,
		Description: description,
		Amount:      d.Amount,
		Category:    category,
		Type:        txType,
	}, nil
}
