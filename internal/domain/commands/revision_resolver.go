package commands

import (
	"context"
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/bugswarm/check-upstream/internal/domain/entities"
	"github.com/bugswarm/check-upstream/internal/domain/repositories"
)

// RevisionResolver picks the fork base and upstream release tags and the commit
// the fork diverged from.
type RevisionResolver struct {
	source          repositories.SourceRepository
	strictMergeBase bool
}

// NewRevisionResolver creates a resolver over the given source. With strictMergeBase
// set, criss-cross histories with several merge-bases are rejected.
func NewRevisionResolver(source repositories.SourceRepository, strictMergeBase bool) *RevisionResolver {
	return &RevisionResolver{source: source, strictMergeBase: strictMergeBase}
}

// Resolve lists the tags, selects the newest base and release tags, and computes
// their merge-base.
func (it *RevisionResolver) Resolve(
	ctx context.Context,
	basePrefix, releasePrefix string,
) (entities.Revisions, error) {
	tags, err := it.source.ListTags(ctx)
	if err != nil {
		return entities.Revisions{}, err
	}

	base, release, err := ResolveTags(tags, basePrefix, releasePrefix)
	if err != nil {
		return entities.Revisions{}, err
	}
	logger.Infof("Fork base tag: %s (%s)", base.Name, base.Commit.Short())
	logger.Infof("Upstream release tag: %s (%s)", release.Name, release.Commit.Short())

	mergeBase, err := it.MergeBase(ctx, base.Commit, release.Commit)
	if err != nil {
		return entities.Revisions{}, err
	}
	logger.Infof("Merge-base: %s", mergeBase.Short())

	return entities.Revisions{Base: base, Release: release, MergeBase: mergeBase}, nil
}

// MergeBase returns the common ancestor of both commits. When several candidates
// exist the first is taken (git's own `merge-base` behaviour) unless the resolver
// is strict.
func (it *RevisionResolver) MergeBase(
	ctx context.Context,
	first, second entities.Commit,
) (entities.Commit, error) {
	bases, err := it.source.MergeBases(ctx, first, second)
	if err != nil {
		return "", err
	}

	switch {
	case len(bases) == 0:
		return "", fmt.Errorf("%w: %s and %s", entities.ErrNoCommonAncestor, first.Short(), second.Short())
	case len(bases) > 1 && it.strictMergeBase:
		return "", fmt.Errorf("%w: %s and %s have %d merge-bases",
			entities.ErrAmbiguousMergeBase, first.Short(), second.Short(), len(bases))
	case len(bases) > 1:
		logger.Warnf("%s and %s have %d merge-bases, using %s",
			first.Short(), second.Short(), len(bases), bases[0].Short())
	}
	return bases[0], nil
}

// ResolveTags picks the most recent tag for each prefix from tags sorted by
// author date ascending.
func ResolveTags(
	tags []entities.Tag,
	basePrefix, releasePrefix string,
) (entities.Tag, entities.Tag, error) {
	base, err := LatestTag(tags, basePrefix)
	if err != nil {
		return entities.Tag{}, entities.Tag{}, err
	}
	release, err := LatestTag(tags, releasePrefix)
	if err != nil {
		return entities.Tag{}, entities.Tag{}, err
	}
	return base, release, nil
}

// LatestTag scans tags newest-first and returns the first whose name has prefix.
func LatestTag(tags []entities.Tag, prefix string) (entities.Tag, error) {
	for i := len(tags) - 1; i >= 0; i-- {
		if strings.HasPrefix(tags[i].Name, prefix) {
			return tags[i], nil
		}
	}
	return entities.Tag{}, fmt.Errorf("%w: no tag matching prefix %q", entities.ErrNotFound, prefix)
}
