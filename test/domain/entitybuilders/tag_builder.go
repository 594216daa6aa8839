//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"time"

	"github.com/bugswarm/check-upstream/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// TagBuilder helps create test tags with a fluent interface.
type TagBuilder struct {
	*testkit.BaseBuilder
	name   string
	commit entities.Commit
	date   time.Time
}

// NewTagBuilder creates a new tag builder with sensible defaults.
func NewTagBuilder() *TagBuilder {
	return &TagBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "ubuntu22/20240101.1",
		commit:      "c0ffee",
		date:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// WithName sets the tag name.
func (b *TagBuilder) WithName(name string) *TagBuilder {
	b.name = name
	return b
}

// WithCommit sets the tagged commit.
func (b *TagBuilder) WithCommit(commit entities.Commit) *TagBuilder {
	b.commit = commit
	return b
}

// WithDate sets the author date of the tagged commit.
func (b *TagBuilder) WithDate(date time.Time) *TagBuilder {
	b.date = date
	return b
}

// Build creates the tag (satisfies testkit.Builder interface).
func (b *TagBuilder) Build() interface{} {
	return b.BuildTag()
}

// BuildTag creates the tag with a concrete return type.
func (b *TagBuilder) BuildTag() entities.Tag {
	return entities.Tag{Name: b.name, Commit: b.commit, Date: b.date}
}

// Reset clears the builder state, allowing it to be reused.
func (b *TagBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "ubuntu22/20240101.1"
	b.commit = "c0ffee"
	b.date = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return b
}

// Clone creates a deep copy of the TagBuilder.
func (b *TagBuilder) Clone() testkit.Builder {
	return &TagBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:        b.name,
		commit:      b.commit,
		date:        b.date,
	}
}
