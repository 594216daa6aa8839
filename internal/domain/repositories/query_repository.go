package repositories

import "errors"

// ErrQueryCompile marks a query expression the evaluator cannot compile.
var ErrQueryCompile = errors.New("query does not compile")

// QueryRepository evaluates toolset lookup expressions against parsed JSON documents.
type QueryRepository interface {
	// ParseDocument decodes a JSON document into the value shape Evaluate expects.
	ParseDocument(content string) (any, error)

	// Evaluate runs query against document and returns every emitted value.
	// Compile failures wrap ErrQueryCompile; any other error is a runtime failure.
	Evaluate(query string, document any) ([]any, error)
}
