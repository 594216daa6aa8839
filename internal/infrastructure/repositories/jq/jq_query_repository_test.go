//go:build unit

package jq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bugswarm/check-upstream/internal/domain/entities"
	"github.com/bugswarm/check-upstream/internal/domain/repositories"
	"github.com/bugswarm/check-upstream/internal/infrastructure/repositories/jq"
)

const toolset = `{
  "toolcache": [
    {"name": "Python", "versions": ["3.10.*", "3.11.*"]},
    {"name": "node", "versions": ["18.*"]}
  ],
  "java": {"default": "11", "versions": ["8", "11", "17"]},
  "docker": {"components": null}
}`

func TestQueryRepositoryEvaluate(t *testing.T) {
	t.Parallel()

	repo := jq.NewQueryRepository()
	document, err := repo.ParseDocument(toolset)
	require.NoError(t, err)

	tests := []struct {
		name     string
		query    string
		expected []any
	}{
		{name: "a scalar path", query: ".java.default", expected: []any{"11"}},
		{name: "an iterated list", query: ".java.versions[]", expected: []any{"8", "11", "17"}},
		{
			name:     "a select filter",
			query:    `.toolcache[] | select(.name == "Python") | .versions[]`,
			expected: []any{"3.10.*", "3.11.*"},
		},
		{name: "a missing key", query: ".ruby.version", expected: []any{nil}},
		{name: "an empty stream", query: ".java.versions[] | select(. == \"21\")", expected: []any{}},
		{name: "a halted stream", query: "1, halt, 2", expected: []any{1}},
	}

	for _, tt := range tests {
		t.Run("should evaluate "+tt.name, func(t *testing.T) {
			t.Parallel()

			// when
			values, evalErr := repo.Evaluate(tt.query, document)

			// then
			require.NoError(t, evalErr)
			assert.Equal(t, tt.expected, values)
		})
	}

	t.Run("should wrap ErrQueryCompile for a syntax error", func(t *testing.T) {
		t.Parallel()

		// when
		_, evalErr := repo.Evaluate(".java[", document)

		// then
		require.Error(t, evalErr)
		assert.ErrorIs(t, evalErr, repositories.ErrQueryCompile)
	})

	t.Run("should wrap ErrQueryCompile for an undefined function", func(t *testing.T) {
		t.Parallel()

		// when
		_, evalErr := repo.Evaluate(".java | no_such_function", document)

		// then
		assert.ErrorIs(t, evalErr, repositories.ErrQueryCompile)
	})

	t.Run("should return runtime errors unwrapped", func(t *testing.T) {
		t.Parallel()

		// when
		_, evalErr := repo.Evaluate(".java.default[]", document)

		// then
		require.Error(t, evalErr)
		assert.NotErrorIs(t, evalErr, repositories.ErrQueryCompile)
	})
}

func TestQueryRepositoryParseDocument(t *testing.T) {
	t.Parallel()

	t.Run("should wrap ErrConfigParse for invalid JSON", func(t *testing.T) {
		t.Parallel()

		// given
		repo := jq.NewQueryRepository()

		// when
		_, err := repo.ParseDocument(`{"java": `)

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrConfigParse)
	})
}
