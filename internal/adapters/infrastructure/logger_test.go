package infrastructure

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"weatherview.app/internal/mocks"
	"weatherview.app/internal/ports"
)

func TestSlogLoggerAdapter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLoggerAdapter(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	logger.Warn("Favourites could not be loaded", ports.F("key", "favourites"), ports.F("attempt", 1))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "Favourites could not be loaded", entry["msg"])
	assert.Equal(t, "favourites", entry["key"])
	assert.Equal(t, float64(1), entry["attempt"])
}

func TestMultiLogger(t *testing.T) {
	first := mocks.NewLogger(t)
	second := mocks.NewLogger(t)
	first.On("Info", "hello", mock.Anything).Once()
	second.On("Info", "hello", mock.Anything).Once()

	MultiLogger{first, second}.Info("hello", ports.F("k", "v"))
}
