//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bugswarm/check-upstream/internal/domain/entities"
	"github.com/bugswarm/check-upstream/internal/domain/repositories"
)

// StubSourceRepository implements repositories.SourceRepository over in-memory
// commits. Configure the response fields your test exercises.
type StubSourceRepository struct {
	// --- Fetch ---
	FetchErr   error
	FetchCalls int

	// --- ListTags ---
	Tags        []entities.Tag
	ListTagsErr error

	// --- MergeBases ---
	Bases         []entities.Commit
	MergeBasesErr error

	// --- ChangedFiles ---
	Changed         []string
	ChangedFilesErr error
	ChangedCalls    [][2]entities.Commit

	// --- ReadFile / ListFiles ---
	Files     map[entities.Commit]map[string]string // commit -> path -> content
	ReadPaths []string
}

var _ repositories.SourceRepository = (*StubSourceRepository)(nil)

// WithFile stores content for path at commit and returns the stub for chaining.
func (s *StubSourceRepository) WithFile(commit entities.Commit, path, content string) *StubSourceRepository {
	if s.Files == nil {
		s.Files = make(map[entities.Commit]map[string]string)
	}
	if s.Files[commit] == nil {
		s.Files[commit] = make(map[string]string)
	}
	s.Files[commit][path] = content
	return s
}

func (s *StubSourceRepository) Fetch(_ context.Context) error {
	s.FetchCalls++
	return s.FetchErr
}

func (s *StubSourceRepository) ListTags(_ context.Context) ([]entities.Tag, error) {
	return s.Tags, s.ListTagsErr
}

func (s *StubSourceRepository) MergeBases(
	_ context.Context, _, _ entities.Commit,
) ([]entities.Commit, error) {
	return s.Bases, s.MergeBasesErr
}

func (s *StubSourceRepository) ChangedFiles(
	_ context.Context, from, to entities.Commit,
) ([]string, error) {
	s.ChangedCalls = append(s.ChangedCalls, [2]entities.Commit{from, to})
	return s.Changed, s.ChangedFilesErr
}

func (s *StubSourceRepository) ReadFile(
	_ context.Context, commit entities.Commit, path string,
) (string, error) {
	s.ReadPaths = append(s.ReadPaths, path)
	if content, ok := s.Files[commit][path]; ok {
		return content, nil
	}
	return "", fmt.Errorf("%w: %s at %s", entities.ErrMissingFile, path, commit)
}

func (s *StubSourceRepository) ListFiles(
	_ context.Context, commit entities.Commit, dir string,
) ([]string, error) {
	prefix := strings.TrimSuffix(dir, "/") + "/"
	var files []string
	for path := range s.Files[commit] {
		if strings.HasPrefix(path, prefix) {
			files = append(files, path)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: directory %s at %s", entities.ErrMissingFile, dir, commit)
	}
	sort.Strings(files)
	return files, nil
}
