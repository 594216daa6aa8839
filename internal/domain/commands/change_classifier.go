package commands

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/bugswarm/check-upstream/internal/domain/entities"
	"github.com/bugswarm/check-upstream/internal/domain/repositories"
)

// ClassifyInput is everything the classifier needs about one comparison.
type ClassifyInput struct {
	Revisions    entities.Revisions
	ChangedFiles []string
	Dependencies entities.DependencySet
	Templates    []string
	Toolsets     []string
	Queries      []string
}

// ChangeClassifier decides how relevant upstream changes are to the fork's build.
type ChangeClassifier struct {
	source    repositories.SourceRepository
	evaluator repositories.QueryRepository
}

// NewChangeClassifier creates a classifier reading toolsets from source.
func NewChangeClassifier(
	source repositories.SourceRepository,
	evaluator repositories.QueryRepository,
) *ChangeClassifier {
	return &ChangeClassifier{source: source, evaluator: evaluator}
}

// Classify runs the script, template and toolset checks and returns the report.
// A toolset that fails to parse does not stop the other checks: the report is
// returned together with the parse errors.
func (it *ChangeClassifier) Classify(ctx context.Context, input ClassifyInput) (*entities.Report, error) {
	report := &entities.Report{Revisions: input.Revisions}

	report.ChangedScripts = ChangedDependencies(input.Dependencies, input.ChangedFiles)
	if len(report.ChangedScripts) > 0 {
		report.Recommendation = report.Recommendation.Escalate(entities.RecommendationReview)
	}

	report.ChangedTemplates = ChangedTemplates(input.Templates, input.ChangedFiles)
	if len(report.ChangedTemplates) > 0 {
		report.Recommendation = report.Recommendation.Escalate(entities.RecommendationReview)
	}

	var parseErrs []error
	for _, toolset := range ChangedToolsets(input.Toolsets, input.ChangedFiles) {
		diffs, err := it.CompareToolset(ctx, input.Revisions.MergeBase, input.Revisions.Release.Commit,
			toolset, input.Queries)
		if errors.Is(err, entities.ErrConfigParse) {
			logger.Errorf("Skipping %s: %v", toolset, err)
			parseErrs = append(parseErrs, err)
			continue
		}
		if err != nil {
			return nil, err
		}
		if len(diffs) == 0 {
			logger.Infof("%s changed, but no queried value did", toolset)
			continue
		}
		report.ToolsetDiffs = append(report.ToolsetDiffs, entities.ToolsetDiff{Path: toolset, Differences: diffs})
		report.Recommendation = report.Recommendation.Escalate(entities.RecommendationRebuild)
	}

	return report, errors.Join(parseErrs...)
}

// CompareToolset evaluates every distinct query against the toolset at both commits.
func (it *ChangeClassifier) CompareToolset(
	ctx context.Context,
	oldCommit, newCommit entities.Commit,
	toolsetPath string,
	queries []string,
) ([]entities.Difference, error) {
	oldDoc, err := it.readDocument(ctx, oldCommit, toolsetPath)
	if err != nil {
		return nil, err
	}
	newDoc, err := it.readDocument(ctx, newCommit, toolsetPath)
	if err != nil {
		return nil, err
	}
	return CompareDocuments(it.evaluator, oldDoc, newDoc, queries), nil
}

func (it *ChangeClassifier) readDocument(
	ctx context.Context,
	commit entities.Commit,
	toolsetPath string,
) (any, error) {
	content, err := it.source.ReadFile(ctx, commit, toolsetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read toolset: %w", err)
	}
	doc, err := it.evaluator.ParseDocument(content)
	if err != nil {
		return nil, fmt.Errorf("%s at %s: %w", toolsetPath, commit.Short(), err)
	}
	return doc, nil
}

// CompareDocuments returns a Difference for every distinct query whose results
// differ between the two documents. Queries that do not compile are skipped.
func CompareDocuments(
	evaluator repositories.QueryRepository,
	oldDoc, newDoc any,
	queries []string,
) []entities.Difference {
	var diffs []entities.Difference
	for _, query := range distinct(queries) {
		oldResult, oldErr := evaluate(evaluator, query, oldDoc)
		newResult, newErr := evaluate(evaluator, query, newDoc)
		if oldErr != nil || newErr != nil {
			logger.Warnf("Skipping query %q: %v", query, errors.Join(oldErr, newErr))
			continue
		}
		if oldResult.Equal(newResult) {
			continue
		}
		diffs = append(diffs, entities.Difference{Query: query, Old: oldResult, New: newResult})
	}
	return diffs
}

// evaluate turns runtime failures into errored results; only compile failures
// are returned as errors.
func evaluate(evaluator repositories.QueryRepository, query string, doc any) (entities.QueryResult, error) {
	values, err := evaluator.Evaluate(query, doc)
	if errors.Is(err, repositories.ErrQueryCompile) {
		return entities.QueryResult{}, err
	}
	if err != nil {
		return entities.QueryResult{Err: err.Error()}, nil
	}
	return entities.QueryResult{Values: values}, nil
}

// ChangedDependencies returns the dependencies present in the changed-file list, sorted.
func ChangedDependencies(deps entities.DependencySet, changedFiles []string) []string {
	return deps.Intersect(changedFiles).Sorted()
}

// ChangedTemplates returns the templates present in the changed-file list, sorted.
func ChangedTemplates(templates, changedFiles []string) []string {
	return entities.NewDependencySet(templates...).Intersect(changedFiles).Sorted()
}

// ChangedToolsets returns the recognized toolset files present in the changed-file list, sorted.
func ChangedToolsets(toolsets, changedFiles []string) []string {
	return entities.NewDependencySet(toolsets...).Intersect(changedFiles).Sorted()
}

// distinct drops repeated queries, keeping first-seen order.
func distinct(queries []string) []string {
	seen := make(map[string]bool, len(queries))
	result := make([]string, 0, len(queries))
	for _, q := range queries {
		if seen[q] {
			continue
		}
		seen[q] = true
		result = append(result, q)
	}
	return result
}
