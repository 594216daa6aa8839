//go:build integration

package git_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bugswarm/check-upstream/internal/domain/entities"
	gitRepo "github.com/bugswarm/check-upstream/internal/infrastructure/repositories/git"
)

const (
	toolsetPath = "images/ubuntu/toolsets/toolset-2204.json"
	helpersDir  = "images/ubuntu/scripts/helpers"
	newScript   = "images/ubuntu/scripts/build/install-rust.sh"
)

// history is a checkout whose fork branch diverged from upstream at mergeBase.
type history struct {
	dir       string
	repo      *gogit.Repository
	mergeBase plumbing.Hash
	release   plumbing.Hash
	fork      plumbing.Hash
}

func signature(day int) *object.Signature {
	return &object.Signature{
		Name:  "Image Builder",
		Email: "builder@example.com",
		When:  time.Date(2024, 1, day, 12, 0, 0, 0, time.UTC),
	}
}

func commitFiles(t *testing.T, h *history, day int, files map[string]string, removed ...string) plumbing.Hash {
	t.Helper()
	wt, err := h.repo.Worktree()
	require.NoError(t, err)

	for name, content := range files {
		full := filepath.Join(h.dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o600))
		_, err = wt.Add(name)
		require.NoError(t, err)
	}
	for _, name := range removed {
		_, err = wt.Remove(name)
		require.NoError(t, err)
	}

	//nolint:exhaustruct // only the author matters for ordering
	hash, err := wt.Commit(fmt.Sprintf("release of 2024-01-%02d", day), &gogit.CommitOptions{Author: signature(day)})
	require.NoError(t, err)
	return hash
}

// newHistory builds:
//
//	day 1: merge-base (toolset, helpers, README)
//	day 3: upstream release, tagged ubuntu22/20240103.1 (lightweight)
//	day 2: fork release on a branch from the merge-base, tagged bugswarm/1 (annotated)
func newHistory(t *testing.T) *history {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	h := &history{dir: dir, repo: repo}

	h.mergeBase = commitFiles(t, h, 1, map[string]string{
		toolsetPath:                        `{"python":{"version":"3.11"}}`,
		helpersDir + "/install.sh":         "#!/bin/bash\n",
		helpersDir + "/nested/os.sh":       "#!/bin/bash\n",
		"README.md":                        "# runner-images\n",
		"images/ubuntu/scripts/build/a.sh": "#!/bin/bash\n",
	})

	h.release = commitFiles(t, h, 3, map[string]string{
		toolsetPath: `{"python":{"version":"3.12"}}`,
		newScript:   "#!/bin/bash\n",
	}, "README.md")
	_, err = repo.CreateTag("ubuntu22/20240103.1", h.release, nil)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)
	//nolint:exhaustruct // branch creation only
	require.NoError(t, wt.Checkout(&gogit.CheckoutOptions{
		Hash:   h.mergeBase,
		Branch: plumbing.NewBranchReferenceName("fork"),
		Create: true,
	}))
	h.fork = commitFiles(t, h, 2, map[string]string{
		"images/ubuntu/scripts/build/a.sh": "#!/bin/bash\necho fork\n",
	})
	_, err = repo.CreateTag("bugswarm/1", h.fork, &gogit.CreateTagOptions{
		Tagger:  signature(2),
		Message: "fork release",
	})
	require.NoError(t, err)
	return h
}

func commitOf(hash plumbing.Hash) entities.Commit {
	return entities.Commit(hash.String())
}

//nolint:tparallel // subtests share one go-git repository handle
func TestSourceRepository(t *testing.T) {
	t.Parallel()

	h := newHistory(t)
	source, err := gitRepo.NewSourceRepository(filepath.Join(h.dir, "images"), entities.UpstreamConfig{})
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("should list tags by author date with annotated tags peeled", func(t *testing.T) {
		// when
		tags, listErr := source.ListTags(ctx)

		// then
		require.NoError(t, listErr)
		require.Len(t, tags, 2)
		assert.Equal(t, "bugswarm/1", tags[0].Name)
		assert.Equal(t, commitOf(h.fork), tags[0].Commit)
		assert.Equal(t, "ubuntu22/20240103.1", tags[1].Name)
		assert.Equal(t, commitOf(h.release), tags[1].Commit)
	})

	t.Run("should find the commit where the fork diverged", func(t *testing.T) {
		// when
		bases, mbErr := source.MergeBases(ctx, commitOf(h.fork), commitOf(h.release))

		// then
		require.NoError(t, mbErr)
		assert.Equal(t, []entities.Commit{commitOf(h.mergeBase)}, bases)
	})

	t.Run("should list modified, added and removed paths", func(t *testing.T) {
		// when
		changed, diffErr := source.ChangedFiles(ctx, commitOf(h.mergeBase), commitOf(h.release))

		// then
		require.NoError(t, diffErr)
		assert.ElementsMatch(t, []string{toolsetPath, newScript, "README.md"}, changed)
	})

	t.Run("should read a file as of a commit", func(t *testing.T) {
		// when
		oldContent, oldErr := source.ReadFile(ctx, commitOf(h.mergeBase), toolsetPath)
		newContent, newErr := source.ReadFile(ctx, commitOf(h.release), toolsetPath)

		// then
		require.NoError(t, oldErr)
		require.NoError(t, newErr)
		assert.JSONEq(t, `{"python":{"version":"3.11"}}`, oldContent)
		assert.JSONEq(t, `{"python":{"version":"3.12"}}`, newContent)
	})

	t.Run("should return ErrMissingFile for a path absent at the commit", func(t *testing.T) {
		// when
		_, readErr := source.ReadFile(ctx, commitOf(h.mergeBase), newScript)

		// then
		assert.ErrorIs(t, readErr, entities.ErrMissingFile)
	})

	t.Run("should list helper files recursively", func(t *testing.T) {
		// when
		files, listErr := source.ListFiles(ctx, commitOf(h.fork), helpersDir)

		// then
		require.NoError(t, listErr)
		assert.ElementsMatch(t, []string{helpersDir + "/install.sh", helpersDir + "/nested/os.sh"}, files)
	})

	t.Run("should return ErrMissingFile for a missing directory", func(t *testing.T) {
		// when
		_, listErr := source.ListFiles(ctx, commitOf(h.fork), "images/windows/scripts/helpers")

		// then
		assert.ErrorIs(t, listErr, entities.ErrMissingFile)
	})
}

func TestSourceRepositoryFetch(t *testing.T) {
	t.Parallel()

	t.Run("should add the upstream remote and wrap fetch failures", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHistory(t)
		upstream := entities.UpstreamConfig{
			Remote: "upstream",
			URL:    filepath.Join(t.TempDir(), "missing.git"),
		}
		source := gitRepo.NewSourceRepositoryFrom(h.repo, upstream)

		// when
		err := source.Fetch(context.Background())

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrFetch)
		remote, remoteErr := h.repo.Remote("upstream")
		require.NoError(t, remoteErr)
		assert.Equal(t, []string{upstream.URL}, remote.Config().URLs)
	})

	t.Run("should fail to open a directory outside any repository", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := gitRepo.NewSourceRepository(t.TempDir(), entities.UpstreamConfig{})

		// then
		require.Error(t, err)
	})
}
