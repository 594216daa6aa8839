//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/bugswarm/check-upstream/internal/domain/entities"
	"github.com/bugswarm/check-upstream/internal/domain/repositories"
)

// StubTemplateRepository implements repositories.TemplateRepository with canned steps.
type StubTemplateRepository struct {
	Steps    map[string][]entities.ProvisioningStep // template path -> steps
	ParseErr error
	// spy: paths that were parsed
	ParsedPaths []string
}

var _ repositories.TemplateRepository = (*StubTemplateRepository)(nil)

func (s *StubTemplateRepository) ParseProvisioners(
	path, _ string,
) ([]entities.ProvisioningStep, error) {
	s.ParsedPaths = append(s.ParsedPaths, path)
	if s.ParseErr != nil {
		return nil, s.ParseErr
	}
	return s.Steps[path], nil
}
