package repositories

import (
	domainRepos "github.com/bugswarm/check-upstream/internal/domain/repositories"
	gitRepo "github.com/bugswarm/check-upstream/internal/infrastructure/repositories/git"
	jqRepo "github.com/bugswarm/check-upstream/internal/infrastructure/repositories/jq"
	packerRepo "github.com/bugswarm/check-upstream/internal/infrastructure/repositories/packer"
	"go.uber.org/dig"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register the go-git backed source factory
	if err := container.Provide(func() SourceFactory {
		return gitRepo.NewSourceRepository
	}); err != nil {
		return err
	}

	// Register template registry with all template syntaxes
	if err := container.Provide(func() *TemplateRegistry {
		reg := NewTemplateRegistry()
		reg.Register(".hcl", packerRepo.NewHCLTemplateRepository())
		reg.Register(".json", packerRepo.NewJSONTemplateRepository())
		return reg
	}); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *TemplateRegistry) domainRepos.TemplateRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(jqRepo.NewQueryRepository); err != nil {
		return err
	}

	return nil
}
