package app

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/mathlab/internal/handlers"
	"github.com/vk/mathlab/internal/testutil"
)

// SetupAppTest writes files into a fresh content root and creates an app
// serving it on a random local port. A nil handler table selects the
// built-in activities.
func SetupAppTest(t *testing.T, files map[string]string, h *handlers.Handlers) (*App, *testutil.SafeBuffer) {
	t.Helper()

	root := testutil.WriteFiles(t, files)
	cfg, err := NewConfig(Config{
		ContentRoot: root,
		Listen:      "127.0.0.1:0",
		LogLevel:    "debug",
		LogFormat:   "text",
	})
	require.NoError(t, err)

	logBuffer := &testutil.SafeBuffer{}
	testApp, err := NewApp(logBuffer, cfg, h)
	t.Cleanup(func() {
		if os.Getenv("MATHLAB_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})
	require.NoError(t, err, "app setup failed:\n%s", logBuffer.String())

	return testApp, logBuffer
}
