package internal

import (
	"github.com/bugswarm/check-upstream/internal/domain/commands"
	"github.com/bugswarm/check-upstream/internal/domain/entities"
	"github.com/bugswarm/check-upstream/internal/infrastructure/controllers"
	"github.com/bugswarm/check-upstream/internal/infrastructure/reporters"
	"github.com/bugswarm/check-upstream/internal/infrastructure/repositories"
	"go.uber.org/dig"
)

// RegisterProviders registers all internal providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register all layers (bottom-up: infrastructure repos -> domain entities -> domain commands -> presentation)
	if err := repositories.RegisterProviders(container); err != nil {
		return err
	}
	if err := entities.RegisterProviders(container); err != nil {
		return err
	}
	if err := commands.RegisterProviders(container); err != nil {
		return err
	}
	if err := reporters.RegisterProviders(container); err != nil {
		return err
	}
	if err := controllers.RegisterProviders(container); err != nil {
		return err
	}

	// Register the main app internal
	if err := container.Provide(NewAppInternal); err != nil {
		return err
	}

	return nil
}
