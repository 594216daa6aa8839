package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/bugswarm/check-upstream/internal/domain/entities"
	"github.com/bugswarm/check-upstream/internal/domain/repositories"
)

// DependencyExtractor collects the files an image build depends on: every script
// run by a template's shell provisioners, plus every helper script.
type DependencyExtractor struct {
	source    repositories.SourceRepository
	templates repositories.TemplateRepository
	root      entities.TemplateRootConfig
}

// NewDependencyExtractor creates an extractor. root maps the template placeholder
// token onto the repository-relative prefix.
func NewDependencyExtractor(
	source repositories.SourceRepository,
	templates repositories.TemplateRepository,
	root entities.TemplateRootConfig,
) *DependencyExtractor {
	return &DependencyExtractor{source: source, templates: templates, root: root}
}

// Extract returns the union of every template's scripts and the helper scripts.
func (it *DependencyExtractor) Extract(
	ctx context.Context,
	commit entities.Commit,
	templatePaths []string,
	helperDir string,
) (entities.DependencySet, error) {
	deps := entities.NewDependencySet()
	for _, templatePath := range templatePaths {
		scripts, err := it.ExtractTemplateDependencies(ctx, commit, templatePath)
		if err != nil {
			return nil, err
		}
		deps = deps.Union(scripts)
	}

	if helperDir != "" {
		helpers, err := it.ExtractHelperScripts(ctx, commit, helperDir)
		if err != nil {
			return nil, err
		}
		deps = deps.Union(helpers)
	}

	logger.Infof("Found %d build dependencies at %s", deps.Len(), commit.Short())
	return deps, nil
}

// ExtractTemplateDependencies returns the scripts referenced by the template's
// shell provisioners, rewritten to repository-relative paths.
func (it *DependencyExtractor) ExtractTemplateDependencies(
	ctx context.Context,
	commit entities.Commit,
	templatePath string,
) (entities.DependencySet, error) {
	content, err := it.source.ReadFile(ctx, commit, templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}

	steps, err := it.templates.ParseProvisioners(templatePath, content)
	if err != nil {
		return nil, err
	}

	deps := entities.NewDependencySet()
	for _, step := range steps {
		if !step.IsShell() {
			continue
		}
		for _, script := range step.ScriptPaths() {
			deps.Add(entities.RewriteTemplatePath(script, it.root.Token, it.root.Prefix))
		}
	}

	logger.Debugf("%s references %d scripts", templatePath, deps.Len())
	return deps, nil
}

// ExtractHelperScripts returns every file under helperDir. Helpers are always
// dependencies since other scripts may source them indirectly.
func (it *DependencyExtractor) ExtractHelperScripts(
	ctx context.Context,
	commit entities.Commit,
	helperDir string,
) (entities.DependencySet, error) {
	files, err := it.source.ListFiles(ctx, commit, helperDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list helper scripts: %w", err)
	}
	return entities.NewDependencySet(files...), nil
}
