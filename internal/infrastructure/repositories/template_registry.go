package repositories

import (
	"fmt"
	"path"
	"strings"

	"github.com/bugswarm/check-upstream/internal/domain/entities"
	domainRepos "github.com/bugswarm/check-upstream/internal/domain/repositories"
)

// TemplateRegistry dispatches template parsing by file suffix (e.g. ".pkr.hcl").
// It is itself a TemplateRepository, so commands stay unaware of template syntaxes.
type TemplateRegistry struct {
	parsers map[string]domainRepos.TemplateRepository
}

// NewTemplateRegistry creates an empty template registry.
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		parsers: make(map[string]domainRepos.TemplateRepository),
	}
}

// Register adds a parser for templates whose name ends with suffix.
func (r *TemplateRegistry) Register(suffix string, parser domainRepos.TemplateRepository) {
	r.parsers[suffix] = parser
}

// Get returns the parser registered for the template path, or an error.
// The longest matching suffix wins, so ".pkr.json" beats ".json".
func (r *TemplateRegistry) Get(templatePath string) (domainRepos.TemplateRepository, error) {
	base := path.Base(templatePath)
	var (
		best    domainRepos.TemplateRepository
		bestLen int
	)
	for suffix, parser := range r.parsers {
		if strings.HasSuffix(base, suffix) && len(suffix) > bestLen {
			best, bestLen = parser, len(suffix)
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w: %s: unsupported template format", entities.ErrTemplateParse, templatePath)
	}
	return best, nil
}

// ParseProvisioners parses the template with the parser matching its suffix.
func (r *TemplateRegistry) ParseProvisioners(
	templatePath, content string,
) ([]entities.ProvisioningStep, error) {
	parser, err := r.Get(templatePath)
	if err != nil {
		return nil, err
	}
	return parser.ParseProvisioners(templatePath, content)
}
