package version

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withBuildVars(t *testing.T, version, commit, buildTime string) {
	t.Helper()
	origVersion, origCommit, origTime := Version, GitCommit, BuildTime
	Version, GitCommit, BuildTime = version, commit, buildTime
	t.Cleanup(func() {
		Version, GitCommit, BuildTime = origVersion, origCommit, origTime
	})
}

func TestGetVersionFromLdflags(t *testing.T) {
	withBuildVars(t, "1.2.3", "abcdef1234567890", "2026-08-30T12:00:00Z")
	assert.Equal(t, "1.2.3", GetVersion())
	assert.Equal(t, "abcdef1234567890", GetGitCommit())
}

func TestGetShortVersion(t *testing.T) {
	withBuildVars(t, "1.2.3", "abcdef1234567890", "unknown")
	assert.Equal(t, "1.2.3 (abcdef1)", GetShortVersion())

	withBuildVars(t, "dev", "abcdef1234567890", "unknown")
	assert.Equal(t, "dev-abcdef1", GetShortVersion())
}

func TestIsRelease(t *testing.T) {
	withBuildVars(t, "1.2.3", "unknown", "unknown")
	assert.True(t, IsRelease())

	withBuildVars(t, "dev", "unknown", "unknown")
	assert.False(t, IsRelease())
}

func TestGetBuildInfo(t *testing.T) {
	withBuildVars(t, "1.2.3", "abcdef1234567890", "2026-08-30T12:00:00Z")

	info := GetBuildInfo()
	require.NotNil(t, info)
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC), info.BuildTime)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}

func TestParseISOTime(t *testing.T) {
	assert.True(t, parseISOTime("unknown").IsZero())
	assert.True(t, parseISOTime("").IsZero())
	assert.True(t, parseISOTime("not a time").IsZero())

	parsed := parseISOTime("2026-08-30T12:00:00")
	assert.Equal(t, 2026, parsed.Year())
}
