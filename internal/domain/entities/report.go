package entities

// ToolsetDiff groups the differences found in one toolset file.
type ToolsetDiff struct {
	Path        string
	Differences []Difference
}

// Revisions identifies the two tags under comparison and their merge-base.
type Revisions struct {
	Base      Tag
	Release   Tag
	MergeBase Commit
}

// Report is the outcome of classifying upstream changes.
type Report struct {
	Revisions        Revisions
	ChangedScripts   []string // sorted
	ChangedTemplates []string // sorted
	ToolsetDiffs     []ToolsetDiff
	Recommendation   Recommendation
}
