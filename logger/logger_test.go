package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The shared loggers are reached from handlers and models in packages that
// never call InitLoggers (tests included), so they must be ready as soon as
// the package loads.
func TestLoggersUsableWithoutInit(t *testing.T) {
	require.NotNil(t, InfoLogger)
	require.NotNil(t, WarnLogger)
	require.NotNil(t, ErrorLogger)

	var buf bytes.Buffer
	out := InfoLogger.Out
	InfoLogger.SetOutput(&buf)
	defer InfoLogger.SetOutput(out)

	InfoLogger.Info("log line before any setup")
	assert.Contains(t, buf.String(), "log line before any setup")
}

func TestInitLoggersKeepsInstances(t *testing.T) {
	before := InfoLogger
	InitLoggers()

	// InitLoggers swaps outputs, not the logger instances, so references
	// captured by other packages stay valid.
	assert.Same(t, before, InfoLogger)
	assert.NotNil(t, InfoLogger.Out)
}
