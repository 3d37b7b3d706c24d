package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	specs := []struct {
		verbose  bool
		expDebug bool
	}{
		{false, false},
		{true, true},
	}

	for specIndex, spec := range specs {
		logger, err := New(spec.verbose)
		require.NoError(t, err, "[spec %d]", specIndex)

		require.Equal(t, spec.expDebug, logger.Core().Enabled(zapcore.DebugLevel), "[spec %d]", specIndex)
		require.True(t, logger.Core().Enabled(zapcore.InfoLevel), "[spec %d]", specIndex)
	}
}
