package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNopBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		Infof("not initialised %d", 1)
		Warnf("still fine")
	})
}

func TestInitLevels(t *testing.T) {
	tests := []struct {
		level, format string
		want          zapcore.Level
	}{
		{"debug", "console", zapcore.DebugLevel},
		{"error", "json", zapcore.ErrorLevel},
		{"nonsense", "console", zapcore.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			require.NoError(t, Init(tt.level, tt.format))
			assert.True(t, Logger().Desugar().Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, Logger().Desugar().Core().Enabled(tt.want-1))
			}
		})
	}
}
