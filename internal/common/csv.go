// Package common provides CSV reading and writing shared by the import and
// export paths.
package common

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fjacquet/smart-finance/internal/logging"
	"fjacquet/smart-finance/internal/models"
	"fjacquet/smart-finance/internal/normalizer"

	"github.com/gocarina/gocsv"
)

// ExportHeader is the column order of exported files.
var ExportHeader = []string{"Date", "Description", "Amount", "Category", "Type"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVIO reads and writes CSV with a configurable delimiter.
type CSVIO struct {
	Delimiter rune
	logger    logging.Logger
}

// NewCSVIO creates a CSVIO; a zero delimiter means a comma.
func NewCSVIO(delimiter rune, logger logging.Logger) *CSVIO {
	if delimiter == 0 {
		delimiter = ','
	}
	return &CSVIO{Delimiter: delimiter, logger: logging.OrDefault(logger)}
}

// ReadCSV parses CSV text with a header row into a RawTable. Header order is
// kept, rows may be ragged (missing cells read as empty), and rows whose
// cells are all blank are skipped.
func (c *CSVIO) ReadCSV(r io.Reader) (normalizer.RawTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return normalizer.RawTable{}, fmt.Errorf("error reading CSV data: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	csvReader := csv.NewReader(bytes.NewReader(data))
	csvReader.Comma = c.Delimiter
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true
	csvReader.TrimLeadingSpace = true

	records, err := gocsv.NewSimpleDecoderFromCSVReader(csvReader).GetCSVRows()
	if err != nil {
		return normalizer.RawTable{}, fmt.Errorf("error parsing CSV data: %w", err)
	}
	if len(records) == 0 {
		return normalizer.RawTable{}, nil
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}

	table := normalizer.RawTable{Columns: header}
	for _, record := range records[1:] {
		if isBlank(record) {
			continue
		}
		row := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(record) {
				row[h] = record[i]
			} else {
				row[h] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	c.logger.Debug("Read CSV data",
		logging.Field{Key: logging.FieldCount, Value: len(table.Rows)},
		logging.Field{Key: logging.FieldDelimiter, Value: string(c.Delimiter)})
	return table, nil
}

// ReadCSVFile opens path and parses it with ReadCSV.
func (c *CSVIO) ReadCSVFile(path string) (normalizer.RawTable, error) {
	c.logger.Info("Reading CSV file", logging.Field{Key: logging.FieldFile, Value: path})

	file, err := os.Open(path)
	if err != nil {
		return normalizer.RawTable{}, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			c.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	return c.ReadCSV(file)
}

// WriteExport writes the header and one row per transaction. Fields holding
// the delimiter, a quote or a newline are quoted with quotes doubled.
func (c *CSVIO) WriteExport(w io.Writer, transactions []models.Transaction) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = c.Delimiter

	rows := transactions
	if rows == nil {
		rows = []models.Transaction{}
	}
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteExportFile writes an export to path, creating parent directories.
func (c *CSVIO) WriteExportFile(path string, transactions []models.Transaction) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("error creating directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			c.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := c.WriteExport(file, transactions); err != nil {
		return err
	}

	c.logger.Info("Exported transactions",
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	return nil
}

// ExportFileName returns the default export name for the given day,
// transactions-YYYY-MM-DD.csv.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("transactions-%s.csv", now.Format("2006-01-02"))
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
