package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
search:
  query: "sponsored welder"
crawl:
  max_pages: 3
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "sponsored welder", cfg.Search.Query)
	require.Equal(t, 3, cfg.Crawl.MaxPages)
	// untouched sections keep defaults
	require.Equal(t, 120, cfg.Crawl.TaskTimeoutSeconds)
	require.Equal(t, "job_lists.csv", cfg.Output.Path)
	require.True(t, cfg.Sources.Jora.Enabled)
	require.True(t, cfg.Sources.Seek.Enabled)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}

func TestValidateDefaultsPass(t *testing.T) {
	require.NoError(t, Validate(Default()))
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := Default()
	cfg.Search.Query = " "
	cfg.Crawl.MaxPages = 0
	cfg.Sources.Jora.Enabled = false
	cfg.Sources.Seek.Enabled = false

	err := Validate(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "search.query is required")
	require.Contains(t, err.Error(), "crawl.max_pages must be >= 1")
	require.Contains(t, err.Error(), "at least one source must be enabled")
}

func TestValidateArchiveNeedsPath(t *testing.T) {
	cfg := Default()
	cfg.Archive.Enabled = true
	cfg.Archive.Path = ""

	err := Validate(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "archive.path is required")
}

func TestEnsureUserConfigWritesBuiltinDefaults(t *testing.T) {
	dir := t.TempDir()

	path, err := EnsureUserConfig(dir, filepath.Join(dir, "no-shipped-default.yml"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "config.yml"), path)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))
}

func TestEnsureUserConfigCopiesShippedDefault(t *testing.T) {
	dir := t.TempDir()
	shipped := filepath.Join(dir, "default.yml")
	require.NoError(t, os.WriteFile(shipped, []byte("search:\n  query: shipped\n"), 0o644))

	path, err := EnsureUserConfig(dir, shipped)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "shipped", cfg.Search.Query)
}

func TestEnsureUserConfigKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(existing, []byte("search:\n  query: mine\n"), 0o644))

	path, err := EnsureUserConfig(dir, filepath.Join(dir, "default.yml"))
	require.NoError(t, err)
	require.Equal(t, existing, path)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "mine", cfg.Search.Query)
}
