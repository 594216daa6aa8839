package commands

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/bugswarm/check-upstream/internal/domain/entities"
	"github.com/bugswarm/check-upstream/internal/domain/repositories"
	infraRepos "github.com/bugswarm/check-upstream/internal/infrastructure/repositories"
)

// Deps is the interface for the deps command.
type Deps interface {
	Execute(ctx context.Context, settings *entities.Settings, opts DepsOptions) (*DepsResult, error)
}

// DepsOptions holds runtime options for listing build dependencies.
type DepsOptions struct {
	RepoDir string
	Verbose bool
}

// DepsResult is what the classifier would watch at the fork base tag.
type DepsResult struct {
	Tag          entities.Tag
	Dependencies []string // sorted
	Queries      []string // scan order, duplicates removed
}

// DepsCommand lists the build dependencies and toolset queries of the fork base.
// It reads local refs only and never fetches.
type DepsCommand struct {
	sourceFactory infraRepos.SourceFactory
	templates     repositories.TemplateRepository
}

// NewDepsCommand creates a new DepsCommand.
func NewDepsCommand(
	sourceFactory infraRepos.SourceFactory,
	templates repositories.TemplateRepository,
) *DepsCommand {
	return &DepsCommand{sourceFactory: sourceFactory, templates: templates}
}

// Execute resolves the newest fork base tag and extracts its dependencies.
func (it *DepsCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts DepsOptions,
) (*DepsResult, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	source, err := it.sourceFactory(opts.RepoDir, settings.Upstream)
	if err != nil {
		return nil, err
	}

	tags, err := source.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	base, err := LatestTag(tags, settings.Tags.BasePrefix)
	if err != nil {
		return nil, err
	}
	logger.Infof("Fork base tag: %s (%s)", base.Name, base.Commit.Short())

	deps, err := NewDependencyExtractor(source, it.templates, settings.TemplateRoot).
		Extract(ctx, base.Commit, settings.Templates, settings.HelpersDir)
	if err != nil {
		return nil, err
	}

	sorted := deps.Sorted()
	queries, err := NewQueryExtractor(source, settings.LookupFunction).
		ExtractQueries(ctx, base.Commit, sorted)
	if err != nil {
		return nil, err
	}

	return &DepsResult{Tag: base, Dependencies: sorted, Queries: distinct(queries)}, nil
}
