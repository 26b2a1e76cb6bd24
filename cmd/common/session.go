// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"fjacquet/smart-finance/internal/aggregate"
	csvio "fjacquet/smart-finance/internal/common"
	"fjacquet/smart-finance/internal/container"
	"fjacquet/smart-finance/internal/logging"
	"fjacquet/smart-finance/internal/models"
	"fjacquet/smart-finance/internal/normalizer"
	"fjacquet/smart-finance/internal/pagination"
)

// Session is the view state of one CLI run: the selected period, the
// secondary filters and the current page. The one-shot commands use a fresh
// session; the shell keeps one for its lifetime.
type Session struct {
	c      *container.Container
	Period models.Period
	Filter models.FilterSpec
	Page   int
}

// NewSession starts a session on the configured default period.
func NewSession(c *container.Container) *Session {
	return &Session{
		c:      c,
		Period: c.GetConfig().Period(),
		Page:   1,
	}
}

// Container returns the dependencies the session runs on.
func (s *Session) Container() *container.Container {
	return s.c
}

// SetPeriod selects a period and returns to the first page.
func (s *Session) SetPeriod(p models.Period) {
	s.Period = p
	s.Page = 1
}

// SetFilter replaces the secondary filters and returns to the first page.
func (s *Session) SetFilter(spec models.FilterSpec) {
	s.Filter = spec
	s.Page = 1
}

// ClearFilter removes every secondary filter.
func (s *Session) ClearFilter() {
	s.SetFilter(models.FilterSpec{})
}

// View computes the dashboard view for the current period and filters.
func (s *Session) View() aggregate.View {
	return s.c.ComputeView(s.Period, s.Filter)
}

// CurrentPage paginates the filtered list at the configured page size. A page
// past the end after an edit or filter change falls back to the first one.
func (s *Session) CurrentPage(view aggregate.View) pagination.Page[models.Transaction] {
	page := pagination.Paginate(view.Filtered, s.c.GetConfig().Dashboard.PageSize, s.Page)
	s.Page = page.CurrentPage
	return page
}

// Render computes the view and renders the whole dashboard.
func (s *Session) Render() string {
	view := s.View()
	return s.c.GetRenderer().Render(view, s.CurrentPage(view), s.Period)
}

// ImportFile reads a CSV file, normalizes it and stores the records using
// the configured import mode. It returns the number of records imported.
// On error the ledger is left unchanged.
func (s *Session) ImportFile(path string) (int, error) {
	table, err := s.c.GetCSV().ReadCSVFile(path)
	if err != nil {
		return 0, err
	}
	n, err := s.store(table)
	if err != nil {
		return 0, err
	}
	s.c.GetLogger().Info("Import completed",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: n})
	return n, nil
}

// Import normalizes CSV text from r and stores the records.
func (s *Session) Import(r io.Reader) (int, error) {
	table, err := s.c.GetCSV().ReadCSV(r)
	if err != nil {
		return 0, err
	}
	return s.store(table)
}

func (s *Session) store(table normalizer.RawTable) (int, error) {
	records, err := s.c.GetNormalizer().Normalize(table)
	if err != nil {
		return 0, err
	}
	imported := s.c.GetLedger().Import(records, s.c.GetConfig().ImportMode())
	s.Page = 1
	return len(imported), nil
}

// Export writes every transaction of the current view, not just the
// current page.
func (s *Session) Export(w io.Writer) (int, error) {
	view := s.View()
	if err := s.c.GetCSV().WriteExport(w, view.Filtered); err != nil {
		return 0, err
	}
	return len(view.Filtered), nil
}

// ExportFile writes the current view to path. A directory, or an empty path
// meaning the working directory, receives a dated transactions file. It
// returns the path written.
func (s *Session) ExportFile(path string) (string, error) {
	if path == "" {
		path = "."
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, csvio.ExportFileName(s.c.Now()))
	}

	view := s.View()
	if err := s.c.GetCSV().WriteExportFile(path, view.Filtered); err != nil {
		return "", err
	}
	return path, nil
}

// Ask answers a question over a snapshot of the whole ledger. It never
// fails; hosted errors fall back to the local analysis.
func (s *Session) Ask(ctx context.Context, question string) string {
	snapshot := s.c.GetLedger().All()
	return s.c.GetAssistant().Ask(ctx, question, snapshot, s.c.Now()).Answer
}
