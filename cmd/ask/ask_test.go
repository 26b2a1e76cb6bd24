package ask

import (
	"bytes"
	"context"
	"path/filepath"
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

func TestAskCommand_Metadata(t *testing.T) {
	assert.Equal(t, "ask <question>", Cmd.Use)
	assert.Contains(t, Cmd.Long, "GEMINI_API_KEY")
	assert.Error(t, Cmd.Args(Cmd, nil))
}

func TestRun(t *testing.T) {
	cfg := config.Default()
	cfg.Categorization.KeywordsFile = filepath.Join(t.TempDir(), "missing.yaml")
	c, err := container.NewContainer(context.Background(), cfg,
		container.WithLogger(logging.NewMockLogger()),
		container.WithClock(func() time.Time { return time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC) }))
	require.NoError(t, err)
	s := common.NewSession(c)

	out := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(out)

	require.NoError(t, Run(context.Background(), cmd, s, "What is my total income?"))
	assert.Equal(t, "Your total income is ₱5,800\n", out.String())

	assert.Error(t, Run(context.Background(), cmd, s, "  "))
}
