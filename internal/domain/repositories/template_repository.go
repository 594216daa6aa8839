package repositories

import (
	"github.com/bugswarm/check-upstream/internal/domain/entities"
)

// TemplateRepository parses declarative build templates into provisioning steps.
type TemplateRepository interface {
	// ParseProvisioners returns the provisioners of the template's first build block.
	// Malformed templates, or templates without build/provisioner structure, yield an
	// error wrapping entities.ErrTemplateParse.
	ParseProvisioners(path, content string) ([]entities.ProvisioningStep, error)
}
