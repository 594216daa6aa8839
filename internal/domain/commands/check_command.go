package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/bugswarm/check-upstream/internal/domain/entities"
	"github.com/bugswarm/check-upstream/internal/domain/repositories"
	infraRepos "github.com/bugswarm/check-upstream/internal/infrastructure/repositories"
)

// Check is the interface for the check command (the tool's default action).
type Check interface {
	Execute(ctx context.Context, settings *entities.Settings, opts CheckOptions) (*entities.Report, error)
}

// CheckOptions holds runtime options for a single check.
type CheckOptions struct {
	RepoDir   string
	SkipFetch bool // use the refs already present locally
	Verbose   bool
}

// CheckCommand runs the full pipeline: fetch upstream -> resolve tags ->
// changed files -> dependency set -> toolset queries -> classification.
type CheckCommand struct {
	sourceFactory infraRepos.SourceFactory
	templates     repositories.TemplateRepository
	evaluator     repositories.QueryRepository
}

// NewCheckCommand creates a new CheckCommand.
func NewCheckCommand(
	sourceFactory infraRepos.SourceFactory,
	templates repositories.TemplateRepository,
	evaluator repositories.QueryRepository,
) *CheckCommand {
	return &CheckCommand{
		sourceFactory: sourceFactory,
		templates:     templates,
		evaluator:     evaluator,
	}
}

// Execute checks the repository at opts.RepoDir. The returned report may be
// non-nil together with an error when only a toolset failed to parse.
func (it *CheckCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts CheckOptions,
) (*entities.Report, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	source, err := it.sourceFactory(opts.RepoDir, settings.Upstream)
	if err != nil {
		return nil, err
	}

	if opts.SkipFetch {
		logger.Info("Skipping upstream fetch, using local refs")
	} else {
		logger.Info("Fetching upstream changes...")
		if fetchErr := source.Fetch(ctx); fetchErr != nil {
			return nil, fetchErr
		}
	}

	revisions, err := NewRevisionResolver(source, settings.StrictMergeBase).
		Resolve(ctx, settings.Tags.BasePrefix, settings.Tags.ReleasePrefix)
	if err != nil {
		return nil, err
	}

	// Three-dot diff: upstream changes since the fork diverged.
	changedFiles, err := source.ChangedFiles(ctx, revisions.MergeBase, revisions.Release.Commit)
	if err != nil {
		return nil, fmt.Errorf("failed to list changed files: %w", err)
	}
	logger.Infof("%d files changed upstream since %s", len(changedFiles), revisions.MergeBase.Short())

	deps, err := NewDependencyExtractor(source, it.templates, settings.TemplateRoot).
		Extract(ctx, revisions.Base.Commit, settings.Templates, settings.HelpersDir)
	if err != nil {
		return nil, err
	}

	queries, err := NewQueryExtractor(source, settings.LookupFunction).
		ExtractQueries(ctx, revisions.Base.Commit, deps.Sorted())
	if err != nil {
		return nil, err
	}

	return NewChangeClassifier(source, it.evaluator).Classify(ctx, ClassifyInput{
		Revisions:    revisions,
		ChangedFiles: changedFiles,
		Dependencies: deps,
		Templates:    settings.Templates,
		Toolsets:     settings.Toolsets,
		Queries:      queries,
	})
}
