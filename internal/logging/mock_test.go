package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_DerivedLoggersShareEntries(t *testing.T) {
	mock := &MockLogger{}

	mock.Info("root")
	mock.WithField(FieldCount, 2).Warn("child")
	mock.WithError(errors.New("boom")).Error("failed")

	entries := mock.GetEntries()
	require.Len(t, entries, 3)
	assert.Equal(t, "INFO", entries[0].Level)
	assert.Equal(t, []Field{{Key: FieldCount, Value: 2}}, entries[1].Fields)
	assert.EqualError(t, entries[2].Error, "boom")
	assert.True(t, mock.HasEntry("WARN", "child"))
	assert.Len(t, mock.GetEntriesByLevel("ERROR"), 1)

	mock.Clear()
	assert.Empty(t, mock.GetEntries())
}
