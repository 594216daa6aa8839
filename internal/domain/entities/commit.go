package entities

import "time"

// Commit is an opaque identifier into the version-control data source (a commit hash).
type Commit string

// String returns the commit hash.
func (c Commit) String() string { return string(c) }

// Short returns the abbreviated hash used in log lines.
func (c Commit) Short() string {
	const shortLen = 7
	if len(c) <= shortLen {
		return string(c)
	}
	return string(c[:shortLen])
}

// Tag is a named reference resolved to the commit it points to.
type Tag struct {
	Name   string
	Commit Commit
	Date   time.Time // author date of the tagged commit
}
