package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Leopold1975/feedback_board/internal/pkg/config"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToConfiguredOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "app.log")

	lg, err := New(config.Logger{Level: "info", Output: []string{out}})
	require.NoError(t, err)

	lg.Infof("hello %s", "feedback")
	lg.Debugf("hidden %s", "debug")

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(b), "hello feedback")
	require.NotContains(t, string(b), "hidden debug")
}

func TestNewBadLevel(t *testing.T) {
	_, err := New(config.Logger{Level: "loud"})
	require.Error(t, err)
}
