package probe

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func runAndWait(t *testing.T, ctx context.Context, command string) string {
	t.Helper()

	lines := make(chan string, 1)
	NewShellExecutor().Run(ctx, command, func(line string) { lines <- line })

	select {
	case line := <-lines:
		return line
	case <-time.After(5 * time.Second):
		t.Fatal("probe callback never delivered")
		return ""
	}
}

func TestShellExecutor_DeliversFirstLine(t *testing.T) {
	line := runAndWait(t, context.Background(), "printf 'one\\ntwo\\n'")
	assert.Equal(t, "one", line)
}

func TestShellExecutor_TrimsCarriageReturn(t *testing.T) {
	line := runAndWait(t, context.Background(), "printf 'uint32 1\\r\\n'")
	assert.Equal(t, "uint32 1", line)
}

func TestShellExecutor_FailureDeliversEmptyLine(t *testing.T) {
	line := runAndWait(t, context.Background(), "exit 3")
	assert.Equal(t, "", line)
}

func TestShellExecutor_InFlightProbeSurvivesCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	lines := make(chan string, 1)
	NewShellExecutor().Run(ctx, "sleep 0.3; echo 1", func(line string) { lines <- line })

	// Cancel while the command is still running: the real output must land,
	// not an empty line from a killed process.
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case line := <-lines:
		assert.Equal(t, "1", line)
	case <-time.After(5 * time.Second):
		t.Fatal("probe callback never delivered")
	}
}
