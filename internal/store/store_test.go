package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/smart-finance/internal/logging"
	"fjacquet/smart-finance/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	err := os.WriteFile(path, []byte(content), 0600)
	require.NoError(t, err)
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	testFile := filepath.Join(dir, "keywords.yaml")
	writeFile(t, testFile, "rules: []")

	s := NewKeywordStore("", logging.NewMockLogger())

	file, err := s.FindConfigFile(testFile)
	assert.NoError(t, err)
	assert.Equal(t, testFile, file)

	_, err = s.FindConfigFile(filepath.Join(dir, "nonexistent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadKeywordRules(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []models.KeywordRule
		wantErr bool
	}{
		{
			name: "flat rules keep file order",
			content: `rules:
  - keyword: boba
    category: Food & Dining
  - keyword: Tuition
    category: Education
`,
			want: []models.KeywordRule{
				{Keyword: "boba", Category: "Food & Dining"},
				{Keyword: "tuition", Category: "Education"},
			},
		},
		{
			name: "grouped categories",
			content: `categories:
  - name: Transportation
    keywords: [jeepney, tricycle]
`,
			want: []models.KeywordRule{
				{Keyword: "jeepney", Category: "Transportation"},
				{Keyword: "tricycle", Category: "Transportation"},
			},
		},
		{name: "malformed yaml", content: "rules: [unterminated", wantErr: true},
		{name: "no rules", content: "rules: []\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "keywords.yaml")
			writeFile(t, path, tt.content)

			rules, err := NewKeywordStore(path, logging.NewMockLogger()).LoadKeywordRules()
			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, errors.Is(err, os.ErrNotExist))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, rules)
		})
	}
}

func TestLoadKeywordRules_MissingFile(t *testing.T) {
	s := NewKeywordStore(filepath.Join(t.TempDir(), "absent.yaml"), logging.NewMockLogger())
	_, err := s.LoadKeywordRules()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveKeywordRules_RoundTrip(t *testing.T) {
	logger := logging.NewMockLogger()
	path := filepath.Join(t.TempDir(), "nested", "keywords.yaml")
	rules := []models.KeywordRule{
		{Keyword: "coffee", Category: "Food & Dining"},
		{Keyword: "uber", Category: "Transportation"},
	}

	s := NewKeywordStore(path, logger)
	require.NoError(t, s.SaveKeywordRules(path, rules))

	loaded, err := s.LoadKeywordRules()
	require.NoError(t, err)
	assert.Equal(t, rules, loaded)
	assert.True(t, logger.HasEntry("INFO", "Saved keyword rules"))
}

func TestSaveKeywordRules_NoPath(t *testing.T) {
	assert.Error(t, NewKeywordStore("", nil).SaveKeywordRules("", nil))
}
