//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/bugswarm/check-upstream/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// SettingsBuilder helps create test settings with a fluent interface.
// Defaults describe a small fork with one template, one toolset and a helper dir.
type SettingsBuilder struct {
	*testkit.BaseBuilder
	basePrefix      string
	releasePrefix   string
	templates       []string
	toolsets        []string
	helpersDir      string
	strictMergeBase bool
}

// NewSettingsBuilder creates a new settings builder with sensible defaults.
func NewSettingsBuilder() *SettingsBuilder {
	b := &SettingsBuilder{BaseBuilder: testkit.NewBaseBuilder()}
	b.defaults()
	return b
}

func (b *SettingsBuilder) defaults() {
	b.basePrefix = "bugswarm/"
	b.releasePrefix = "ubuntu22/"
	b.templates = []string{"images/ubuntu/templates/ubuntu-22.04.pkr.hcl"}
	b.toolsets = []string{"images/ubuntu/toolsets/toolset-2204.json"}
	b.helpersDir = "images/ubuntu/scripts/helpers"
	b.strictMergeBase = false
}

// WithPrefixes sets the fork base and upstream release tag prefixes.
func (b *SettingsBuilder) WithPrefixes(base, release string) *SettingsBuilder {
	b.basePrefix = base
	b.releasePrefix = release
	return b
}

// WithTemplates sets the template paths.
func (b *SettingsBuilder) WithTemplates(templates ...string) *SettingsBuilder {
	b.templates = templates
	return b
}

// WithToolsets sets the toolset paths.
func (b *SettingsBuilder) WithToolsets(toolsets ...string) *SettingsBuilder {
	b.toolsets = toolsets
	return b
}

// WithHelpersDir sets the helper-script directory.
func (b *SettingsBuilder) WithHelpersDir(dir string) *SettingsBuilder {
	b.helpersDir = dir
	return b
}

// WithStrictMergeBase makes ambiguous merge-bases fatal.
func (b *SettingsBuilder) WithStrictMergeBase() *SettingsBuilder {
	b.strictMergeBase = true
	return b
}

// Build creates the settings (satisfies testkit.Builder interface).
func (b *SettingsBuilder) Build() interface{} {
	return b.BuildSettings()
}

// BuildSettings creates the settings with a concrete return type.
func (b *SettingsBuilder) BuildSettings() *entities.Settings {
	settings := entities.DefaultSettings()
	settings.Tags.BasePrefix = b.basePrefix
	settings.Tags.ReleasePrefix = b.releasePrefix
	settings.Templates = append([]string(nil), b.templates...)
	settings.Toolsets = append([]string(nil), b.toolsets...)
	settings.HelpersDir = b.helpersDir
	settings.StrictMergeBase = b.strictMergeBase
	return settings
}

// Reset clears the builder state, allowing it to be reused.
func (b *SettingsBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.defaults()
	return b
}

// Clone creates a deep copy of the SettingsBuilder.
func (b *SettingsBuilder) Clone() testkit.Builder {
	return &SettingsBuilder{
		BaseBuilder:     b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		basePrefix:      b.basePrefix,
		releasePrefix:   b.releasePrefix,
		templates:       append([]string(nil), b.templates...),
		toolsets:        append([]string(nil), b.toolsets...),
		helpersDir:      b.helpersDir,
		strictMergeBase: b.strictMergeBase,
	}
}
