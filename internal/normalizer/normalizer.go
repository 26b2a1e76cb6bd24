// Package normalizer turns loosely typed imported rows into canonical
// transactions.
package normalizer

import (
	"strconv"
	"strings"
	"time"

	"fjacquet/smart-finance/internal/currencyutils"
	"fjacquet/smart-finance/internal/dateutils"
	"fjacquet/smart-finance/internal/logging"
	"fjacquet/smart-finance/internal/models"
	"fjacquet/smart-finance/internal/parsererror"
)

// RawTable is a parsed CSV file: the header in file order and one map per
// data row keyed by header name.
type RawTable struct {
	Columns []string
	Rows    []map[string]string
}

// Classifier assigns categories.
type Classifier interface {
	Classify(description, supplied string) string
}

// Field names of the canonical record.
const (
	FieldDate        = "date"
	FieldDescription = "description"
	FieldAmount      = "amount"
	FieldCategory    = "category"
	FieldType        = "type"
)

// RequiredFields must each resolve to a header for a file to be accepted.
var RequiredFields = []string{FieldDate, FieldDescription, FieldAmount}

// Aliases lists the accepted header spellings per field, in priority order.
// Headers are compared after canonicalization, so "Transaction_Date" matches
// "transaction date".
var Aliases = map[string][]string{
	FieldDate:        {"date", "transaction date", "trans date", "posting date", "booking date"},
	FieldDescription: {"description", "desc", "transaction", "memo", "details", "narrative"},
	FieldAmount:      {"amount", "value", "sum", "total", "price"},
	FieldCategory:    {"category", "cat"},
	FieldType:        {"type", "transaction type", "trans type"},
}

var incomeTypeHints = []string{"income", "credit", "deposit"}

var incomeDescriptionHints = []string{"salary", "income", "refund", "payment received"}

// Normalizer converts RawTable rows into transactions.
type Normalizer struct {
	classifier Classifier
	logger     logging.Logger
	now        func() time.Time
}

// NewNormalizer creates a Normalizer. now supplies the fallback date for
// unparseable dates; nil means time.Now.
func NewNormalizer(classifier Classifier, logger logging.Logger, now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{
		classifier: classifier,
		logger:     logging.OrDefault(logger),
		now:        now,
	}
}

// Normalize validates the file as a whole, then maps each row. File-level
// problems yield a *parsererror.ImportError and no records; row-level
// problems never fail: rows without a positive amount are dropped, bad
// dates become today and unknown categories become Other.
func (n *Normalizer) Normalize(table RawTable) ([]models.Transaction, error) {
	if len(table.Rows) == 0 {
		return nil, &parsererror.ImportError{
			Messages: []string{"File is empty or contains no data"},
			Err:      parsererror.ErrEmptyFile,
		}
	}

	columns := ResolveColumns(table.Columns)
	if err := validate(table, columns); err != nil {
		return nil, err
	}

	today := n.now()
	_, hasType := columns[FieldType]
	records := make([]models.Transaction, 0, len(table.Rows))
	dropped := 0

	for i, row := range table.Rows {
		tx, ok := n.normalizeRow(i+1, row, columns, hasType, today)
		if !ok {
			dropped++
			continue
		}
		records = append(records, tx)
	}

	if dropped > 0 {
		n.logger.Debug("Dropped rows without a positive amount",
			logging.Field{Key: logging.FieldDropped, Value: dropped})
	}

	if len(records) == 0 {
		return nil, &parsererror.ImportError{
			Messages: []string{"No valid transactions found in the file"},
			Err:      parsererror.ErrNoValidRecords,
		}
	}

	n.logger.Info("Normalized imported rows",
		logging.Field{Key: logging.FieldCount, Value: len(records)},
		logging.Field{Key: logging.FieldDropped, Value: dropped})
	return records, nil
}

func (n *Normalizer) normalizeRow(index int, row map[string]string, columns map[string][]string, hasType bool, today time.Time) (models.Transaction, bool) {
	rawAmount := lookup(row, columns[FieldAmount])
	amount, ok := currencyutils.ParseMagnitude(rawAmount)
	if !ok {
		return models.Transaction{}, false
	}

	description := lookup(row, columns[FieldDescription])
	if description == "" {
		description = "Transaction " + strconv.Itoa(index)
	}

	txType := models.TypeExpense
	if hasType {
		switch typeValue := strings.ToLower(strings.TrimSpace(lookup(row, columns[FieldType]))); {
		case containsAny(typeValue, incomeTypeHints):
			txType = models.TypeIncome
		case typeValue == string(models.TypeSavings):
			txType = models.TypeSavings
		}
	} else if signed, err := currencyutils.ParseAmount(rawAmount); err == nil && signed.IsPositive() &&
		containsAny(strings.ToLower(description), incomeDescriptionHints) {
		txType = models.TypeIncome
	}

	category := models.CategoryOther
	if n.classifier != nil {
		category = n.classifier.Classify(description, lookup(row, columns[FieldCategory]))
	}

	return models.Transaction{
		ID:          index,
		Date:        dateutils.NormalizeDate(lookup(row, columns[FieldDate]), today),
		Description: description,
		Amount:      amount,
		Category:    category,
		Type:        txType,
	}, true
}

// validate runs the file-level checks and collects every message before
// failing, so a file missing columns also reports when it has no usable rows.
func validate(table RawTable, columns map[string][]string) error {
	var messages []string
	var cause error

	var missing []string
	for _, field := range RequiredFields {
		if len(columns[field]) == 0 {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		mc := &parsererror.MissingColumnsError{Missing: missing, Available: table.Columns}
		messages = append(messages, mc.Lines()...)
		cause = mc
	}

	usable := 0
	for _, row := range table.Rows {
		if lookup(row, columns[FieldDescription]) != "" && lookup(row, columns[FieldAmount]) != "" {
			usable++
		}
	}
	if usable == 0 {
		messages = append(messages, "No valid transaction data found. Please check that your CSV contains transaction information.")
		if cause == nil {
			cause = parsererror.ErrNoValidRows
		}
	}

	if len(messages) == 0 {
		return nil
	}
	return &parsererror.ImportError{Messages: messages, Err: cause}
}

// ResolveColumns maps each field to the headers matching its aliases, in
// alias priority order.
func ResolveColumns(headers []string) map[string][]string {
	byKey := make(map[string][]string, len(headers))
	for _, h := range headers {
		key := canonical(h)
		byKey[key] = append(byKey[key], h)
	}

	resolved := make(map[string][]string)
	for field, aliases := range Aliases {
		for _, alias := range aliases {
			if hs, ok := byKey[canonical(alias)]; ok {
				resolved[field] = append(resolved[field], hs...)
			}
		}
	}
	return resolved
}

// lookup returns the first non-blank value among the candidate columns.
func lookup(row map[string]string, candidates []string) string {
	for _, c := range candidates {
		if v := strings.TrimSpace(row[c]); v != "" {
			return v
		}
	}
	return ""
}

var canonicalReplacer = strings.NewReplacer(" ", "", "_", "", "-", "", ".", "", "/", "")

func canonical(header string) string {
	return canonicalReplacer.Replace(strings.ToLower(strings.TrimSpace(header)))
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
