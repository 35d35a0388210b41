package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/guestpost-report/internal/logger"
)

func TestNewWriterText(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWriter(&buf, "web", "warn", "")

	log.Info("hidden")
	log.Warn("upload rejected", "file", "march.xlsx")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "level=WARN")
	require.Contains(t, out, "service=web")
	require.Contains(t, out, "file=march.xlsx")
}

func TestNewWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWriter(&buf, "report", "debug", "JSON")

	log.Debug("loaded", "rows", 3)
	require.Contains(t, buf.String(), `"service":"report"`)
	require.Contains(t, buf.String(), `"rows":3`)
}
