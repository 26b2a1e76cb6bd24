package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedAdapter(level logrus.Level) (Logger, *bytes.Buffer) {
	logrusLogger := logrus.New()
	var buf bytes.Buffer
	logrusLogger.SetOutput(&buf)
	logrusLogger.SetLevel(level)
	logrusLogger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return NewLogrusAdapterFromLogger(logrusLogger), &buf
}

func TestNewLogrusAdapter(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		format      string
		expectLevel logrus.Level
	}{
		{"debug level with text format", "debug", "text", logrus.DebugLevel},
		{"info level with json format", "info", "json", logrus.InfoLevel},
		{"upper-case level", "WARN", "text", logrus.WarnLevel},
		{"invalid level defaults to info", "chatty", "text", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogrusAdapter(tt.level, tt.format)
			adapter, ok := logger.(*LogrusAdapter)
			require.True(t, ok, "logger should be a LogrusAdapter")
			assert.Equal(t, tt.expectLevel, adapter.logger.Level)

			if tt.format == "json" {
				_, ok := adapter.logger.Formatter.(*logrus.JSONFormatter)
				assert.True(t, ok, "formatter should be JSONFormatter")
			} else {
				_, ok := adapter.logger.Formatter.(*logrus.TextFormatter)
				assert.True(t, ok, "formatter should be TextFormatter")
			}
		})
	}
}

func TestNewLogrusAdapterFromLogger_Nil(t *testing.T) {
	logger := NewLogrusAdapterFromLogger(nil)
	adapter, ok := logger.(*LogrusAdapter)
	require.True(t, ok)
	assert.NotNil(t, adapter.logger)
}

func TestLogrusAdapter_LevelsAndFields(t *testing.T) {
	logger, buf := newBufferedAdapter(logrus.DebugLevel)

	logger.Debug("classified", Field{Key: FieldKeyword, Value: "coffee"})
	logger.Info("imported", Field{Key: FieldCount, Value: 3})
	logger.Warn("fallback used")
	logger.Error("export failed")

	output := buf.String()
	assert.Contains(t, output, "classified")
	assert.Contains(t, output, "keyword=coffee")
	assert.Contains(t, output, "count=3")
	assert.Contains(t, output, "fallback used")
	assert.Contains(t, output, "export failed")
}

func TestLogrusAdapter_LevelFiltering(t *testing.T) {
	logger, buf := newBufferedAdapter(logrus.WarnLevel)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestLogrusAdapter_ChainedCalls(t *testing.T) {
	logger, buf := newBufferedAdapter(logrus.InfoLevel)

	logger.
		WithField(FieldTransactionID, 7).
		WithFields(Field{Key: FieldOperation, Value: "delete"}).
		WithError(errors.New("not found")).
		Error("ledger mutation failed")

	output := buf.String()
	assert.Contains(t, output, "ledger mutation failed")
	assert.Contains(t, output, "transaction_id=7")
	assert.Contains(t, output, "operation=delete")
	assert.Contains(t, output, "not found")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, ParseLevel(" debug "))
	assert.Equal(t, logrus.InfoLevel, ParseLevel(""))
}

func TestDefaultLogger(t *testing.T) {
	original := GetLogger()
	defer SetLogger(original)

	mock := &MockLogger{}
	SetLogger(mock)
	assert.Same(t, mock, GetLogger())

	SetLogger(nil)
	assert.Same(t, mock, GetLogger(), "nil must not replace the default")

	assert.Same(t, mock, OrDefault(nil))
	other := &MockLogger{}
	assert.Same(t, other, OrDefault(other))
}

func TestConvertFields(t *testing.T) {
	logrusFields := convertFields([]Field{
		{Key: "key1", Value: "value1"},
		{Key: "key2", Value: 42},
	})

	assert.Len(t, logrusFields, 2)
	assert.Equal(t, "value1", logrusFields["key1"])
	assert.Equal(t, 42, logrusFields["key2"])
	assert.Len(t, convertFields(nil), 0)
}

func TestLogrusAdapter_ImplementsInterface(t *testing.T) {
	var _ Logger = (*LogrusAdapter)(nil)
	var _ Logger = (*MockLogger)(nil)
}
