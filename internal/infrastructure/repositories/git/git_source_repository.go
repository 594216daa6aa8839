package git

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	logger "github.com/sirupsen/logrus"

	"github.com/bugswarm/check-upstream/internal/domain/entities"
	"github.com/bugswarm/check-upstream/internal/domain/repositories"
)

// tokenUsername is accepted by GitHub for token-based HTTPS auth.
const tokenUsername = "x-access-token"

// SourceRepository implements repositories.SourceRepository on a local checkout
// using go-git. It never writes to the worktree; Fetch only updates refs.
type SourceRepository struct {
	repo     *gogit.Repository
	upstream entities.UpstreamConfig
}

// NewSourceRepository opens the repository containing repoDir.
func NewSourceRepository(
	repoDir string,
	upstream entities.UpstreamConfig,
) (repositories.SourceRepository, error) {
	//nolint:exhaustruct // only DetectDotGit is relevant here
	repo, err := gogit.PlainOpenWithOptions(repoDir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %q: %w", repoDir, err)
	}
	return NewSourceRepositoryFrom(repo, upstream), nil
}

// NewSourceRepositoryFrom wraps an already opened go-git repository.
func NewSourceRepositoryFrom(
	repo *gogit.Repository,
	upstream entities.UpstreamConfig,
) *SourceRepository {
	return &SourceRepository{repo: repo, upstream: upstream}
}

// Fetch creates the upstream remote if it is missing and fetches all of its tags.
func (it *SourceRepository) Fetch(ctx context.Context) error {
	remote, err := it.repo.Remote(it.upstream.Remote)
	if errors.Is(err, gogit.ErrRemoteNotFound) {
		logger.Infof("Adding remote %q -> %s", it.upstream.Remote, it.upstream.URL)
		//nolint:exhaustruct // Fetch refspecs default to the standard layout
		remote, err = it.repo.CreateRemote(&config.RemoteConfig{
			Name: it.upstream.Remote,
			URLs: []string{it.upstream.URL},
		})
	}
	if err != nil {
		return fmt.Errorf("%w: remote %q: %w", entities.ErrFetch, it.upstream.Remote, err)
	}

	//nolint:exhaustruct // Minimal FetchOptions initialization with required fields only
	opts := &gogit.FetchOptions{
		RemoteName: it.upstream.Remote,
		Tags:       gogit.AllTags,
	}
	if it.upstream.Token != "" {
		opts.Auth = &http.BasicAuth{Username: tokenUsername, Password: it.upstream.Token}
	}

	fetchErr := remote.FetchContext(ctx, opts)
	if fetchErr != nil && !errors.Is(fetchErr, gogit.NoErrAlreadyUpToDate) {
		return fmt.Errorf("%w: %s: %w", entities.ErrFetch, it.upstream.URL, fetchErr)
	}
	if errors.Is(fetchErr, gogit.NoErrAlreadyUpToDate) {
		logger.Debugf("Remote %q already up to date", it.upstream.Remote)
	}
	return nil
}

// ListTags resolves every tag to its commit, sorted by the commit's author date.
// Ties keep name order so the result is deterministic.
func (it *SourceRepository) ListTags(_ context.Context) ([]entities.Tag, error) {
	refs, err := it.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	var tags []entities.Tag
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		commit, resolveErr := it.peelTag(ref.Hash())
		if resolveErr != nil {
			logger.Debugf("Skipping tag %q: %v", ref.Name().Short(), resolveErr)
			return nil
		}
		tags = append(tags, entities.Tag{
			Name:   ref.Name().Short(),
			Commit: entities.Commit(commit.Hash.String()),
			Date:   commit.Author.When,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tags: %w", err)
	}

	sort.SliceStable(tags, func(i, j int) bool {
		if tags[i].Date.Equal(tags[j].Date) {
			return tags[i].Name < tags[j].Name
		}
		return tags[i].Date.Before(tags[j].Date)
	})
	return tags, nil
}

// MergeBases returns the best common ancestors of both commits.
func (it *SourceRepository) MergeBases(
	_ context.Context,
	first, second entities.Commit,
) ([]entities.Commit, error) {
	a, err := it.commit(first)
	if err != nil {
		return nil, err
	}
	b, err := it.commit(second)
	if err != nil {
		return nil, err
	}

	bases, err := a.MergeBase(b)
	if err != nil {
		return nil, fmt.Errorf("failed to compute merge-base of %s and %s: %w", first.Short(), second.Short(), err)
	}

	result := make([]entities.Commit, 0, len(bases))
	for _, base := range bases {
		result = append(result, entities.Commit(base.Hash.String()))
	}
	return result, nil
}

// ChangedFiles returns the paths touched between both commits (name-only diff).
func (it *SourceRepository) ChangedFiles(
	_ context.Context,
	from, to entities.Commit,
) ([]string, error) {
	fromTree, err := it.tree(from)
	if err != nil {
		return nil, err
	}
	toTree, err := it.tree(to)
	if err != nil {
		return nil, err
	}

	changes, err := object.DiffTree(fromTree, toTree)
	if err != nil {
		return nil, fmt.Errorf("failed to diff %s..%s: %w", from.Short(), to.Short(), err)
	}

	seen := make(map[string]bool, len(changes))
	var paths []string
	for _, change := range changes {
		for _, name := range []string{change.From.Name, change.To.Name} {
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			paths = append(paths, name)
		}
	}
	return paths, nil
}

// ReadFile returns the content of filePath at commit.
func (it *SourceRepository) ReadFile(
	_ context.Context,
	commit entities.Commit,
	filePath string,
) (string, error) {
	tree, err := it.tree(commit)
	if err != nil {
		return "", err
	}

	file, err := tree.File(filePath)
	if errors.Is(err, object.ErrFileNotFound) {
		return "", fmt.Errorf("%w: %s at %s", entities.ErrMissingFile, filePath, commit.Short())
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s at %s: %w", filePath, commit.Short(), err)
	}

	contents, err := file.Contents()
	if err != nil {
		return "", fmt.Errorf("failed to read %s at %s: %w", filePath, commit.Short(), err)
	}
	return contents, nil
}

// ListFiles returns every file under dir at commit, recursively, as repository paths.
func (it *SourceRepository) ListFiles(
	_ context.Context,
	commit entities.Commit,
	dir string,
) ([]string, error) {
	tree, err := it.tree(commit)
	if err != nil {
		return nil, err
	}

	subtree, err := tree.Tree(dir)
	if errors.Is(err, object.ErrDirectoryNotFound) {
		return nil, fmt.Errorf("%w: directory %s at %s", entities.ErrMissingFile, dir, commit.Short())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s at %s: %w", dir, commit.Short(), err)
	}

	var files []string
	err = subtree.Files().ForEach(func(f *object.File) error {
		files = append(files, path.Join(dir, f.Name))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s at %s: %w", dir, commit.Short(), err)
	}
	return files, nil
}

// peelTag follows annotated tags down to the commit they point at.
func (it *SourceRepository) peelTag(hash plumbing.Hash) (*object.Commit, error) {
	tagObject, err := it.repo.TagObject(hash)
	switch {
	case err == nil:
		return tagObject.Commit()
	case errors.Is(err, plumbing.ErrObjectNotFound):
		return it.repo.CommitObject(hash) // lightweight tag
	default:
		return nil, err
	}
}

func (it *SourceRepository) commit(commit entities.Commit) (*object.Commit, error) {
	c, err := it.repo.CommitObject(plumbing.NewHash(commit.String()))
	if err != nil {
		return nil, fmt.Errorf("failed to load commit %s: %w", commit.Short(), err)
	}
	return c, nil
}

func (it *SourceRepository) tree(commit entities.Commit) (*object.Tree, error) {
	c, err := it.commit(commit)
	if err != nil {
		return nil, err
	}
	tree, err := c.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to load tree of %s: %w", commit.Short(), err)
	}
	return tree, nil
}
