package commands

import (
	"context"
	"fmt"
	"regexp"

	logger "github.com/sirupsen/logrus"

	"github.com/bugswarm/check-upstream/internal/domain/entities"
	"github.com/bugswarm/check-upstream/internal/domain/repositories"
)

// QueryExtractor collects the toolset queries build scripts pass to the lookup helper.
type QueryExtractor struct {
	source  repositories.SourceRepository
	pattern *regexp.Regexp
}

// NewQueryExtractor creates an extractor for calls to the given lookup function.
func NewQueryExtractor(source repositories.SourceRepository, lookupFunction string) *QueryExtractor {
	return &QueryExtractor{source: source, pattern: LookupPattern(lookupFunction)}
}

// ExtractQueries scans every script in order and returns the queries it finds.
// Duplicates are kept; the comparison step deduplicates.
func (it *QueryExtractor) ExtractQueries(
	ctx context.Context,
	commit entities.Commit,
	scriptPaths []string,
) ([]string, error) {
	var queries []string
	for _, script := range scriptPaths {
		content, err := it.source.ReadFile(ctx, commit, script)
		if err != nil {
			return nil, fmt.Errorf("failed to read script: %w", err)
		}

		found := ScanQueries(content, it.pattern)
		if len(found) > 0 {
			logger.Debugf("%s: %d toolset queries", script, len(found))
		}
		queries = append(queries, found...)
	}

	logger.Infof("Found %d toolset queries in %d scripts", len(queries), len(scriptPaths))
	return queries, nil
}

// LookupPattern matches `$(<function> <arg>)` and captures the argument, which may
// be single-quoted, double-quoted or bare.
//
// This is a regex approximation of shell parsing. It assumes scripts escape with
// quotes rather than backslashes, and that the `$(...)` is not itself wrapped in
// double quotes; otherwise extraction is wrong but never fails.
func LookupPattern(function string) *regexp.Regexp {
	return regexp.MustCompile(`\$\(` + regexp.QuoteMeta(function) + ` (?:'(.*)'|"(.*)"|(.*?))\)`)
}

// ScanQueries returns the argument of every lookup call in content, in order.
// Matches whose argument is empty are skipped.
func ScanQueries(content string, pattern *regexp.Regexp) []string {
	var queries []string
	for _, match := range pattern.FindAllStringSubmatchIndex(content, -1) {
		// match[0:2] is the whole call; each following pair is one quoting form.
		for group := 2; group+1 < len(match); group += 2 {
			start, end := match[group], match[group+1]
			if start < 0 || start == end {
				continue
			}
			queries = append(queries, content[start:end])
			break
		}
	}
	return queries
}
