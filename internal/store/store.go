// Package store loads and saves the keyword table override file.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/smart-finance/internal/logging"
	"fjacquet/smart-finance/internal/models"

	"gopkg.in/yaml.v3"
)

// DefaultKeywordsFile is looked up when no explicit file is configured.
const DefaultKeywordsFile = "keywords.yaml"

// KeywordStore reads keyword rules from a YAML file.
type KeywordStore struct {
	KeywordsFile string
	logger       logging.Logger
}

// NewKeywordStore creates a store for the given file. An empty name means
// DefaultKeywordsFile in the standard locations.
func NewKeywordStore(keywordsFile string, logger logging.Logger) *KeywordStore {
	return &KeywordStore{
		KeywordsFile: keywordsFile,
		logger:       logging.OrDefault(logger),
	}
}

// FindConfigFile looks for a file in the standard locations: the path as
// given, ./config, and $HOME/.smart-finance.
func (s *KeywordStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".smart-finance", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadKeywordRules reads the rule table in file order. A missing file is
// reported as os.ErrNotExist so callers can fall back to the built-in table.
func (s *KeywordStore) LoadKeywordRules() ([]models.KeywordRule, error) {
	filename := s.KeywordsFile
	if filename == "" {
		filename = DefaultKeywordsFile
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		return nil, fmt.Errorf("keywords file %s: %w", filename, err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading keywords file: %w", err)
	}

	var cfg models.KeywordsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing keywords file %s: %w", filePath, err)
	}

	rules := cfg.Flatten()
	if len(rules) == 0 {
		return nil, fmt.Errorf("keywords file %s defines no rules", filePath)
	}

	s.logger.Debug("Loaded keyword rules",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(rules)})
	return rules, nil
}

// SaveKeywordRules writes rules as a flat rule list to path, creating parent
// directories as needed.
func (s *KeywordStore) SaveKeywordRules(path string, rules []models.KeywordRule) error {
	if path == "" {
		return errors.New("no output path given")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("error creating directory for keywords file: %w", err)
		}
	}

	data, err := yaml.Marshal(models.KeywordsConfig{Rules: rules})
	if err != nil {
		return fmt.Errorf("error marshaling keyword rules: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("error writing keywords file: %w", err)
	}

	s.logger.Info("Saved keyword rules",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(rules)})
	return nil
}
