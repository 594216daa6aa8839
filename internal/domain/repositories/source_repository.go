package repositories

import (
	"context"

	"github.com/bugswarm/check-upstream/internal/domain/entities"
)

// SourceRepository abstracts the version-control data source: the local checkout
// of the fork with the upstream remote's refs fetched into it.
type SourceRepository interface {
	// Fetch updates the upstream remote's refs and tags, creating the remote if needed.
	Fetch(ctx context.Context) error

	// ListTags returns every tag resolved to its commit, sorted by author date ascending.
	ListTags(ctx context.Context) ([]entities.Tag, error)

	// MergeBases returns every best common ancestor of the two commits.
	MergeBases(ctx context.Context, first, second entities.Commit) ([]entities.Commit, error)

	// ChangedFiles returns the repository-relative paths that differ between the commits.
	ChangedFiles(ctx context.Context, from, to entities.Commit) ([]string, error)

	// ReadFile returns the content of path at commit, or an error wrapping
	// entities.ErrMissingFile when the path does not exist there.
	ReadFile(ctx context.Context, commit entities.Commit, path string) (string, error)

	// ListFiles returns every file (recursively) under dir at commit.
	ListFiles(ctx context.Context, commit entities.Commit, dir string) ([]string, error)
}
