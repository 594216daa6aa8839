package reporters

import (
	"fmt"
	"io"
	"strings"

	"github.com/bugswarm/check-upstream/internal/domain/commands"
	"github.com/bugswarm/check-upstream/internal/domain/entities"
)

const (
	resultsHeading = "=== RESULTS ==="
	reviewHint     = "Check their diffs to see whether the changes warrant a rebuild."
	indent         = "    "
)

// TextReporter renders check results as the plain-text console report.
type TextReporter struct {
	out io.Writer
}

// NewTextReporter creates a reporter writing to out.
func NewTextReporter(out io.Writer) *TextReporter {
	return &TextReporter{out: out}
}

// Render writes the report sections followed by the results block.
func (it *TextReporter) Render(report *entities.Report) error {
	var b strings.Builder

	if len(report.ChangedScripts) > 0 {
		writeList(&b, "⚠️ The following SCRIPTS were changed upstream:", report.ChangedScripts)
		b.WriteString(reviewHint + "\n")
	}

	if len(report.ChangedTemplates) > 0 {
		writeList(&b, "⚠️ The following TEMPLATES were changed upstream:", report.ChangedTemplates)
		b.WriteString(reviewHint + "\n")
	}

	for _, toolset := range report.ToolsetDiffs {
		fmt.Fprintf(&b, "\n⛔ The following values were changed in %s:\n", toolset.Path)
		for _, diff := range toolset.Differences {
			fmt.Fprintf(&b, "%s%s\n", indent, diff.Query)
			fmt.Fprintf(&b, "%s%s- %s\n", indent, indent, diff.Old)
			fmt.Fprintf(&b, "%s%s+ %s\n", indent, indent, diff.New)
		}
	}

	b.WriteString("\n" + resultsHeading + "\n")
	b.WriteString(resultMessage(report))

	_, err := io.WriteString(it.out, b.String())
	return err
}

// RenderDeps writes the dependency listing of the deps command.
func (it *TextReporter) RenderDeps(result *commands.DepsResult) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Build dependencies at %s:\n", result.Tag.Name)
	for _, dep := range result.Dependencies {
		b.WriteString(indent + dep + "\n")
	}

	fmt.Fprintf(&b, "\nToolset queries at %s:\n", result.Tag.Name)
	for _, query := range result.Queries {
		b.WriteString(indent + query + "\n")
	}

	_, err := io.WriteString(it.out, b.String())
	return err
}

func writeList(b *strings.Builder, heading string, paths []string) {
	b.WriteString("\n" + heading + "\n")
	for _, p := range paths {
		b.WriteString(indent + p + "\n")
	}
}

// resultMessage maps each recommendation to its fixed message.
func resultMessage(report *entities.Report) string {
	switch report.Recommendation {
	case entities.RecommendationReview:
		return "There are some changes upstream that could be significant.\n" +
			"Check the diffs from upstream before deciding whether to rebuild the images:\n" +
			fmt.Sprintf("  git diff %s...%s -- <paths>\n",
				report.Revisions.Base.Name, report.Revisions.Release.Name)
	case entities.RecommendationRebuild:
		return "There are significant changes upstream.\n" +
			"It's probably a good idea to rebuild the images.\n"
	default:
		return "No noteworthy changes upstream.\n" +
			"There is no reason to rebuild the images.\n"
	}
}
