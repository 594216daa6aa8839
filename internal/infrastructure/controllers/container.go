package controllers

import (
	"github.com/bugswarm/check-upstream/internal/domain/entities"
	"go.uber.org/dig"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewCheckController); err != nil {
		return err
	}
	if err := container.Provide(NewDepsController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates the subcommand controllers into a slice for the AppInternal.
// The check controller is bound to the root command instead.
func NewControllers(
	depsController *DepsController,
) *[]entities.Controller {
	return &[]entities.Controller{
		depsController,
	}
}
