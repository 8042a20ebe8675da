package logging_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankit-chaubey/formula-metrics/core/logging"
)

func TestSetLogger(t *testing.T) {
	old := logging.Logger()
	defer logging.SetLogger(old)

	var buf bytes.Buffer
	logging.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	logging.Logger().Debug("measured", slog.String("source", "png"))
	assert.Contains(t, buf.String(), "measured")
	assert.Contains(t, buf.String(), "source=png")
}

func TestSetLogger_Nil(t *testing.T) {
	old := logging.Logger()
	defer logging.SetLogger(old)

	logging.SetLogger(nil)
	l := logging.Logger()
	require.NotNil(t, l)
	assert.Equal(t, slog.DiscardHandler, l.Handler())
}

func TestLogger_SameInstance(t *testing.T) {
	assert.Same(t, logging.Logger(), logging.Logger())
}
