// ABOUTME: End-to-end tests for the brewmatch CLI against a temp-dir SQLite store.
// ABOUTME: Seeds the catalog, saves a profile, and checks recommendation output.
package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
}

func TestCLIRecommendFlow(t *testing.T) {
	isolate(t)

	out, err := execute(t, "catalog", "seed", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "10 created")

	out, err = execute(t, "catalog", "list", "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, 10, strings.Count(out, "\n"), "expected 10 coffees:\n%s", out)

	out, err = execute(t, "profile", "set", "--log-level", "error",
		"--email", "Ana@Example.com",
		"--chocolate", "white", "--fruit", "citrus", "--drink", "wine_light",
		"--texture", "tea_like", "--adventure", "wild", "--method", "v60")
	require.NoError(t, err)
	assert.Contains(t, out, "Profile saved for ana@example.com")

	out, err = execute(t, "recommend", "--log-level", "error", "--email", "ana@example.com")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "1. Ethiopian Yirgacheffe (light)"), out)
	assert.Contains(t, out, "3. Kenya AA")
	assert.NotContains(t, out, "4. ", "expected exactly three recommendations")

	out, err = execute(t, "matches", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "=== ana@example.com (v60, wild")
	assert.Contains(t, out, "similarity")

	out, err = execute(t, "profile", "target", "--log-level", "error", "--email", "ana@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "acidity     0.90")
	assert.Contains(t, out, "floral      0.70")
}

func TestCLIRecommendUnknownUser(t *testing.T) {
	isolate(t)

	_, err := execute(t, "recommend", "--log-level", "error", "--email", "ghost@example.com")
	assert.Error(t, err, "user without a profile")
}

func TestCLIInvalidCoffeeID(t *testing.T) {
	isolate(t)

	_, err := execute(t, "catalog", "show", "--log-level", "error", "not-a-uuid")
	assert.ErrorContains(t, err, "invalid coffee id")
}

func TestCLICompatRejectsUnknownMethod(t *testing.T) {
	isolate(t)

	_, err := execute(t, "catalog", "compat", "--log-level", "error",
		"6f1c2f1e-0000-4000-8000-000000000000", "--method", "cold_brew")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown method "cold_brew"`)
	assert.Contains(t, err.Error(), "french_press")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Ethiopi...", truncate("Ethiopian Yirgacheffe", 10))
}
