package watch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dusk/internal/infrastructure/environ"
)

func TestDetectOnce_Darwin(t *testing.T) {
	tests := []struct {
		name string
		line string
		dark bool
	}{
		{"dark reply", "Dark", true},
		{"light key missing", "", false},
		{"explicit light", "Light", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			executor := &scriptedExecutor{responses: []string{tt.line}}

			isDark, err := DetectOnce(context.Background(), environ.Darwin, executor, "")
			require.NoError(t, err)
			assert.Equal(t, tt.dark, isDark)
			assert.Equal(t, 1, executor.callCount())
		})
	}
}

func TestDetectOnce_RemoteFile(t *testing.T) {
	executor := &scriptedExecutor{responses: []string{"1"}}

	isDark, err := DetectOnce(context.Background(), environ.RemoteLinuxFile, executor, "/tmp/theme-preference")
	require.NoError(t, err)
	assert.True(t, isDark)
}

func TestDetectOnce_UnsupportedEnvironment(t *testing.T) {
	executor := &scriptedExecutor{responses: []string{"1"}}

	_, err := DetectOnce(context.Background(), environ.Unsupported, executor, "")
	require.Error(t, err)
	assert.Zero(t, executor.callCount())
}

func TestDetectOnce_ContextCancellation(t *testing.T) {
	// An executor that never delivers a line: DetectOnce must honor the
	// context instead of blocking forever.
	silent := &silentExecutor{}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := DetectOnce(ctx, environ.Darwin, silent, "")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

type silentExecutor struct{}

func (silentExecutor) Run(context.Context, string, func(string)) {}
