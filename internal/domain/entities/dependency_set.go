package entities

import (
	"sort"
	"strings"
)

// DependencySet is a set of repository-relative file paths the image build depends on.
type DependencySet map[string]struct{}

// NewDependencySet creates a set holding the given paths.
func NewDependencySet(paths ...string) DependencySet {
	set := make(DependencySet, len(paths))
	for _, p := range paths {
		set.Add(p)
	}
	return set
}

// Add inserts a path into the set.
func (s DependencySet) Add(path string) {
	s[path] = struct{}{}
}

// Contains reports whether the path is part of the set.
func (s DependencySet) Contains(path string) bool {
	_, ok := s[path]
	return ok
}

// Len returns the number of paths in the set.
func (s DependencySet) Len() int { return len(s) }

// Union returns a new set with the paths of both sets.
func (s DependencySet) Union(other DependencySet) DependencySet {
	result := make(DependencySet, len(s)+len(other))
	for p := range s {
		result.Add(p)
	}
	for p := range other {
		result.Add(p)
	}
	return result
}

// Intersect returns the paths of the set that also appear in the given list.
func (s DependencySet) Intersect(paths []string) DependencySet {
	result := make(DependencySet)
	for _, p := range paths {
		if s.Contains(p) {
			result.Add(p)
		}
	}
	return result
}

// Sorted returns the paths in lexicographic order.
func (s DependencySet) Sorted() []string {
	paths := make([]string, 0, len(s))
	for p := range s {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// RewriteTemplatePath replaces the template-relative placeholder token with the
// repository-relative prefix, so template script paths line up with diff output.
// Paths without the token are returned unchanged, and rewriting twice is a no-op.
func RewriteTemplatePath(path, token, prefix string) string {
	if token == "" {
		return path
	}
	return strings.ReplaceAll(path, token, prefix)
}
