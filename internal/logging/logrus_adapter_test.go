package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogrusAdapter_InvalidLevelFallsBack(t *testing.T) {
	logger := NewLogrusAdapter("bogus", "text")
	require.NotNil(t, logger)

	adapter, ok := logger.(*LogrusAdapter)
	require.True(t, ok)
	assert.Equal(t, logrus.InfoLevel, adapter.logger.GetLevel())
}

func TestLogrusAdapter_FieldsReachOutput(t *testing.T) {
	underlying := logrus.New()
	var buf bytes.Buffer
	underlying.SetOutput(&buf)
	underlying.SetFormatter(&logrus.JSONFormatter{})

	logger := NewLogrusAdapterFromLogger(underlying)
	logger.WithField(FieldCount, 3).Info("parsed records",
		Field{Key: FieldFile, Value: "sample.log"})

	out := buf.String()
	assert.Contains(t, out, `"count":3`)
	assert.Contains(t, out, `"file_path":"sample.log"`)
	assert.Contains(t, out, "parsed records")
}

func TestMockLogger_SharedBuffer(t *testing.T) {
	mock := NewMockLogger()
	mock.WithField("k", "v").Warn("careful")
	mock.Info("plain")

	require.Len(t, mock.Entries(), 2)
	assert.True(t, mock.HasMessage("careful"))
	assert.Equal(t, "WARN", mock.Entries()[0].Level)
	require.Len(t, mock.Entries()[0].Fields, 1)
	assert.Equal(t, "k", mock.Entries()[0].Fields[0].Key)
}
