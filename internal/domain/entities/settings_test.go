//go:build unit

package entities_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bugswarm/check-upstream/internal/domain/entities"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".check-upstream.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewSettings(t *testing.T) {
	t.Parallel()

	t.Run("should return defaults for an empty path", func(t *testing.T) {
		t.Parallel()

		// when
		settings, err := entities.NewSettings("")

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.DefaultSettings(), settings)
		assert.Equal(t, "bugswarm/", settings.Tags.BasePrefix)
		assert.Equal(t, "ubuntu22/", settings.Tags.ReleasePrefix)
		assert.Equal(t, "get_toolset_value", settings.LookupFunction)
	})

	t.Run("should override only the fields present in the file", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, `
tags:
  release_prefix: ubuntu24/
templates:
  - images/ubuntu/templates/ubuntu-24.04.pkr.hcl
strict_merge_base: true
`)

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "bugswarm/", settings.Tags.BasePrefix)
		assert.Equal(t, "ubuntu24/", settings.Tags.ReleasePrefix)
		assert.Equal(t, []string{"images/ubuntu/templates/ubuntu-24.04.pkr.hcl"}, settings.Templates)
		assert.True(t, settings.StrictMergeBase)
		assert.Equal(t, "upstream", settings.Upstream.Remote)
	})

	t.Run("should return error for malformed YAML", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, "tags: [unclosed")

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.Error(t, err)
		assert.Nil(t, settings)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})

	t.Run("should return error for a missing file", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "absent.yaml")

		// when
		_, err := entities.NewSettings(path)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("should reject an empty tag prefix", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, "tags:\n  base_prefix: \"\"\n")

		// when
		_, err := entities.NewSettings(path)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "tags.base_prefix")
	})

	t.Run("should reject an empty template entry", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, "templates:\n  - images/a.pkr.hcl\n  - \"\"\n")

		// when
		_, err := entities.NewSettings(path)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "templates[1] is empty")
	})
}

//nolint:tparallel // some subtests use t.Setenv which is incompatible with t.Parallel on parent
func TestResolveToken(t *testing.T) {
	t.Run("should return inline token unchanged", func(t *testing.T) {
		t.Parallel()

		// when
		result := entities.ResolveToken("ghp_abc123xyz")

		// then
		assert.Equal(t, "ghp_abc123xyz", result)
	})

	t.Run("should expand environment variable reference", func(t *testing.T) {
		// NOTE: cannot use t.Parallel() with t.Setenv()

		// given
		t.Setenv("CHECK_UPSTREAM_TEST_TOKEN", "my-secret-token")

		// when
		result := entities.ResolveToken("${CHECK_UPSTREAM_TEST_TOKEN}")

		// then
		assert.Equal(t, "my-secret-token", result)
	})

	t.Run("should read the token from a file", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "token")
		require.NoError(t, os.WriteFile(path, []byte("file-token\n"), 0o600))

		// when
		result := entities.ResolveToken(path)

		// then
		assert.Equal(t, "file-token", result)
	})
}

//nolint:tparallel // t.Setenv is incompatible with t.Parallel
func TestExpandEnv(t *testing.T) {
	t.Run("should expand the upstream URL from the environment", func(t *testing.T) {
		// given
		t.Setenv("CHECK_UPSTREAM_TEST_URL", "https://example.com/runner-images.git")

		// when
		result := entities.ExpandEnv("${CHECK_UPSTREAM_TEST_URL}")

		// then
		assert.Equal(t, "https://example.com/runner-images.git", result)
	})

	t.Run("should replace an unset variable with an empty string", func(t *testing.T) {
		// when
		result := entities.ExpandEnv("prefix-${CHECK_UPSTREAM_TEST_UNSET_VAR}")

		// then
		assert.Equal(t, "prefix-", result)
	})
}
