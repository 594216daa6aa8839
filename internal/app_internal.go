package internal

import (
	"github.com/bugswarm/check-upstream/internal/domain/entities"
	"github.com/bugswarm/check-upstream/internal/infrastructure/controllers"
)

// AppInternal holds the controllers the CLI is assembled from.
type AppInternal struct {
	check       *controllers.CheckController
	controllers []entities.Controller
}

// NewAppInternal creates the application context.
func NewAppInternal(
	check *controllers.CheckController,
	subcommands *[]entities.Controller,
) *AppInternal {
	return &AppInternal{check: check, controllers: *subcommands}
}

// GetCheckController returns the controller bound to the root command.
func (it *AppInternal) GetCheckController() *controllers.CheckController {
	return it.check
}

// GetControllers returns the controllers bound to subcommands.
func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}
