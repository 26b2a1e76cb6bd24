package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fjacquet/smart-finance/cmd/common"
	"fjacquet/smart-finance/internal/config"
	"fjacquet/smart-finance/internal/container"
	"fjacquet/smart-finance/internal/logging"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) *common.Session {
	t.Helper()
	cfg := config.Default()
	cfg.Categorization.KeywordsFile = filepath.Join(t.TempDir(), "missing.yaml")
	c, err := container.NewContainer(context.Background(), cfg,
		container.WithLogger(logging.NewMockLogger()),
		container.WithClock(func() time.Time { return time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC) }))
	require.NoError(t, err)
	return common.NewSession(c)
}

func TestExportCommand_Metadata(t *testing.T) {
	assert.Equal(t, "export", Cmd.Use)
	assert.Contains(t, Cmd.Short, "CSV")

	outputFlag := Cmd.Flags().Lookup("output")
	require.NotNil(t, outputFlag)
	assert.Equal(t, "o", outputFlag.Shorthand)
	assert.NotNil(t, Cmd.Flags().Lookup("stdout"))
}

func TestRun_ToFile(t *testing.T) {
	s := newSession(t)
	out := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(out)
	path := filepath.Join(t.TempDir(), "bills.csv")

	require.NoError(t, Run(cmd, s, "category=Bills & Utilities", path, false))
	assert.Equal(t, "Exported 2 transactions to "+path+"\n", out.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, []string{
		"Date,Description,Amount,Category,Type",
		"2025-09-05,Electricity Bill,125.4,Bills & Utilities,expense",
		"2025-09-03,Internet Bill,85,Bills & Utilities,expense",
	}, lines)
}

func TestRun_ToStdout(t *testing.T) {
	s := newSession(t)
	out := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(out)

	require.NoError(t, Run(cmd, s, "type=income", "", true))
	assert.Contains(t, out.String(), "2025-09-07,Freelance Project Payment,800,Income,income")
	assert.Contains(t, out.String(), "2025-09-01,Monthly Salary,5000,Income,income")
}
