package entities

import "errors"

var (
	// ErrNotFound is returned when no tag matches an expected naming prefix.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguousMergeBase is returned when a strict run finds several merge-bases.
	ErrAmbiguousMergeBase = errors.New("ambiguous merge-base")
	// ErrNoCommonAncestor is returned when two commits share no history.
	ErrNoCommonAncestor = errors.New("no common ancestor")
	// ErrTemplateParse is returned for malformed build templates.
	ErrTemplateParse = errors.New("template parse error")
	// ErrMissingFile is returned when an expected file is absent at a commit.
	ErrMissingFile = errors.New("missing file")
	// ErrConfigParse is returned when a toolset file is not valid JSON.
	ErrConfigParse = errors.New("config parse error")
	// ErrFetch is returned when the upstream remote cannot be fetched.
	ErrFetch = errors.New("fetch failed")
)
