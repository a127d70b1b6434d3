package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/mimewrap/internal/config"
	"github.com/zostay/mimewrap/message/header"
	"github.com/zostay/mimewrap/message/header/field"
)

var envVars = []string{
	"MIMEWRAP_OUTPUT_EXTENSION",
	"MIMEWRAP_LINE_BREAK",
	"MIMEWRAP_FOLD_LENGTH",
	"MIMEWRAP_HEADER_CHARSET",
	"MIMEWRAP_SIDECAR_EXTENSION",
	"MIMEWRAP_NORMALIZE_DATE",
	"MIMEWRAP_NORMALIZE_ADDRESSES",
	"MIMEWRAP_LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range envVars {
		t.Setenv(env, "")
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ".eml", cfg.Output.Extension)
	assert.Equal(t, config.BreakCRLF, cfg.Output.LineBreak)
	assert.Equal(t, 78, cfg.Output.FoldLength)
	assert.Equal(t, "utf-8", cfg.Output.HeaderCharset)
	assert.Equal(t, ".headers", cfg.Sidecar.Extension)
	assert.False(t, cfg.Normalize.Date)
	assert.False(t, cfg.Normalize.Addresses)
	assert.Equal(t, "info", cfg.Logging.Level)

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, header.CRLF, cfg.Break())

	vf, err := cfg.FoldEncoding()
	require.NoError(t, err)
	assert.Equal(t, field.DefaultFoldEncoding, vf)

	lvl, err := cfg.LogLevel()
	assert.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}

func TestLoad_EnvVarOverrides(t *testing.T) {
	t.Setenv("MIMEWRAP_OUTPUT_EXTENSION", ".mime")
	t.Setenv("MIMEWRAP_LINE_BREAK", "LF")
	t.Setenv("MIMEWRAP_FOLD_LENGTH", "100")
	t.Setenv("MIMEWRAP_HEADER_CHARSET", "iso-8859-1")
	t.Setenv("MIMEWRAP_SIDECAR_EXTENSION", ".hdr")
	t.Setenv("MIMEWRAP_NORMALIZE_DATE", "true")
	t.Setenv("MIMEWRAP_NORMALIZE_ADDRESSES", "1")
	t.Setenv("MIMEWRAP_LOG_LEVEL", "DEBUG")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ".mime", cfg.Output.Extension)
	assert.Equal(t, config.BreakLF, cfg.Output.LineBreak)
	assert.Equal(t, 100, cfg.Output.FoldLength)
	assert.Equal(t, "iso-8859-1", cfg.Output.HeaderCharset)
	assert.Equal(t, ".hdr", cfg.Sidecar.Extension)
	assert.True(t, cfg.Normalize.Date)
	assert.True(t, cfg.Normalize.Addresses)
	assert.Equal(t, "debug", cfg.Logging.Level)

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, header.LF, cfg.Break())

	lvl, err := cfg.LogLevel()
	assert.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoad_BadEnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("MIMEWRAP_FOLD_LENGTH", "lots")

	_, err := config.Load()
	assert.ErrorContains(t, err, "MIMEWRAP_FOLD_LENGTH")

	clearEnv(t)
	t.Setenv("MIMEWRAP_NORMALIZE_DATE", "sometimes")

	_, err = config.Load()
	assert.ErrorContains(t, err, "MIMEWRAP_NORMALIZE_DATE")
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("MIMEWRAP_LOG_LEVEL", "warn")

	path := filepath.Join(t.TempDir(), "mimewrap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
output:
  line_break: lf
  fold_length: 72
sidecar:
  extension: .meta
normalize:
  date: true
logging:
  level: error
`), 0o644))

	cfg, err := config.LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, ".eml", cfg.Output.Extension, "defaults survive")
	assert.Equal(t, config.BreakLF, cfg.Output.LineBreak)
	assert.Equal(t, 72, cfg.Output.FoldLength)
	assert.Equal(t, ".meta", cfg.Sidecar.Extension)
	assert.True(t, cfg.Normalize.Date)
	assert.False(t, cfg.Normalize.Addresses)
	assert.Equal(t, "warn", cfg.Logging.Level, "environment wins over the file")
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile_Errors(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()

	_, err := config.LoadFromFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("output: [nope"), 0o644))
	_, err = config.LoadFromFile(bad)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestValidate(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	cfg.Output.Extension = "eml"
	cfg.Sidecar.Extension = ""
	cfg.Output.LineBreak = "cr"
	cfg.Output.FoldLength = 2
	cfg.Output.HeaderCharset = ""
	cfg.Logging.Level = "loud"

	err = cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "output.extension")
	assert.ErrorContains(t, err, "sidecar.extension")
	assert.ErrorContains(t, err, "output.line_break")
	assert.ErrorContains(t, err, "output.fold_length")
	assert.ErrorContains(t, err, "output.header_charset")
	assert.ErrorContains(t, err, "logging.level")
	assert.ErrorIs(t, err, field.ErrFoldLengthTooShort)
}
