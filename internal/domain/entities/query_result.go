package entities

import (
	"github.com/itchyny/gojq"
)

// QueryResult holds every value a toolset query produced against one document.
// Err is set instead of Values when evaluation failed at runtime.
type QueryResult struct {
	Values []any
	Err    string
}

// Equal compares two results as ordered sequences under jq value equality.
// An errored result only equals another result with the same error.
func (r QueryResult) Equal(other QueryResult) bool {
	if r.Err != "" || other.Err != "" {
		return r.Err == other.Err
	}
	return gojq.Compare(r.normalized(), other.normalized()) == 0
}

// String renders the result list as compact JSON, e.g. ["3.11"].
func (r QueryResult) String() string {
	if r.Err != "" {
		return "error: " + r.Err
	}
	out, err := gojq.Marshal(r.normalized())
	if err != nil {
		return "error: " + err.Error()
	}
	return string(out)
}

func (r QueryResult) normalized() []any {
	if r.Values == nil {
		return []any{}
	}
	return r.Values
}

// Difference records a query whose result changed between two revisions.
type Difference struct {
	Query string
	Old   QueryResult
	New   QueryResult
}
