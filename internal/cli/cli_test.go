package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/mathlab/internal/app"
)

func TestGlobalFlags_Config(t *testing.T) {
	dir := t.TempDir()
	withSite := filepath.Join(dir, "with")
	require.NoError(t, os.MkdirAll(withSite, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(withSite, SiteFile), []byte("version: 1\n"), 0o644))

	testCases := []struct {
		name     string
		flags    globalFlags
		wantSite string
		wantCode int
	}{
		{name: "detects site file", flags: globalFlags{content: withSite, logLevel: "info", logFormat: "text"}, wantSite: filepath.Join(withSite, SiteFile)},
		{name: "no site file", flags: globalFlags{content: dir, logLevel: "info", logFormat: "text"}},
		{name: "explicit site file wins", flags: globalFlags{content: withSite, configPath: "other.yaml", logLevel: "DEBUG", logFormat: "JSON"}, wantSite: "other.yaml"},
		{name: "bad log format", flags: globalFlags{content: dir, logLevel: "info", logFormat: "xml"}, wantCode: 2},
		{name: "bad log level", flags: globalFlags{content: dir, logLevel: "loud", logFormat: "text"}, wantCode: 2},
		{name: "empty content root", flags: globalFlags{logLevel: "info", logFormat: "text"}, wantCode: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := tc.flags.config(app.Config{})
			if tc.wantCode != 0 {
				var exitErr *ExitError
				require.ErrorAs(t, err, &exitErr)
				assert.Equal(t, tc.wantCode, exitErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantSite, cfg.SitePath)
			assert.Contains(t, []string{"text", "json"}, cfg.LogFormat)
		})
	}
}
