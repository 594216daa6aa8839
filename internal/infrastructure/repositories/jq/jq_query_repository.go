package jq

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/itchyny/gojq"

	"github.com/bugswarm/check-upstream/internal/domain/entities"
	"github.com/bugswarm/check-upstream/internal/domain/repositories"
)

// QueryRepository implements repositories.QueryRepository with gojq, so toolset
// lookups are evaluated with the same jq semantics the build scripts rely on.
type QueryRepository struct{}

// NewQueryRepository creates a jq evaluator.
func NewQueryRepository() repositories.QueryRepository {
	return &QueryRepository{}
}

// ParseDocument decodes JSON into the generic shape gojq operates on.
func (it *QueryRepository) ParseDocument(content string) (any, error) {
	var document any
	if err := json.Unmarshal([]byte(content), &document); err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrConfigParse, err)
	}
	return document, nil
}

// Evaluate runs the query and collects every emitted value, like `jq -c`.
func (it *QueryRepository) Evaluate(query string, document any) ([]any, error) {
	parsed, err := gojq.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", repositories.ErrQueryCompile, query, err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", repositories.ErrQueryCompile, query, err)
	}

	results := []any{}
	iter := code.Run(document)
	for {
		value, ok := iter.Next()
		if !ok {
			break
		}
		if runErr, isErr := value.(error); isErr {
			var haltErr *gojq.HaltError
			if errors.As(runErr, &haltErr) && haltErr.Value() == nil {
				break // `halt` ends the stream without an error
			}
			return nil, runErr
		}
		results = append(results, value)
	}
	return results, nil
}
