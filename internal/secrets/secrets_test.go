package secrets

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rnoeerrors "github.com/readnoevil/rnoe/internal/errors"
)

func TestEnvVar(t *testing.T) {
	assert.Equal(t, "RNOE_ACCOUNT_DEFAULT_PASSWORD", EnvVar("default"))
	assert.Equal(t, "RNOE_ACCOUNT_WORK_MAIL_PASSWORD", EnvVar("work-mail"))
}

func TestEnvFilePath(t *testing.T) {
	assert.Equal(t, filepath.Join("/etc", "rnoe", ".env"),
		EnvFilePath(filepath.Join("/etc", "rnoe", "config.yaml")))
}

func TestLookupPasswordFromEnvironment(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(EnvVar("default"), "hunter2")

	got, err := LookupPassword(configPath, "default")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got)
}

func TestLookupPasswordFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	envFile := "# comment\n\n" +
		EnvVar("default") + "=from-file\n" +
		EnvVar("work") + `="quoted value"` + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(envFile), 0o600))

	got, err := LookupPassword(configPath, "default")
	require.NoError(t, err)
	assert.Equal(t, "from-file", got)

	quoted, err := LookupPassword(configPath, "work")
	require.NoError(t, err)
	assert.Equal(t, "quoted value", quoted)
}

func TestLookupPasswordEnvironmentWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte(EnvVar("default")+"=from-file\n"), 0o600))
	t.Setenv(EnvVar("default"), "from-env")

	got, err := LookupPassword(configPath, "default")
	require.NoError(t, err)
	assert.Equal(t, "from-env", got)
}

func TestLookupPasswordPlaceholderCountsAsMissing(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte(EnvVar("default")+"="+Placeholder+"\n"), 0o600))

	_, err := LookupPassword(configPath, "default")
	require.Error(t, err)
	assert.True(t, rnoeerrors.IsValidation(err))
	// The error tells the operator which variable to set.
	assert.Contains(t, err.Error(), EnvVar("default"))
}

func TestLookupPasswordMissing(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	_, err := LookupPassword(configPath, "nobody")
	require.Error(t, err)
	assert.True(t, rnoeerrors.IsValidation(err))
}

func TestWriteEnvFileCreatesPlaceholders(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	require.NoError(t, WriteEnvFile(configPath, []string{"default", "work"}))

	data, err := os.ReadFile(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "#"), "header comment expected")
	assert.Contains(t, text, EnvVar("default")+"="+Placeholder)
	assert.Contains(t, text, EnvVar("work")+"="+Placeholder)
}

func TestWriteEnvFilePreservesExistingValues(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte(EnvVar("default")+"=real-secret\n"), 0o600))

	require.NoError(t, WriteEnvFile(configPath, []string{"default", "work"}))

	data, err := os.ReadFile(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Contains(t, string(data), EnvVar("default")+"=real-secret")
	assert.Contains(t, string(data), EnvVar("work")+"="+Placeholder)
}

func TestWriteEnvFileOwnerOnlyPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	require.NoError(t, WriteEnvFile(configPath, []string{"default"}))

	info, err := os.Stat(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
