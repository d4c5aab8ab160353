package internal

import (
	"github.com/rios0rios0/cachesweep/internal/domain/entities"
	"github.com/rios0rios0/cachesweep/internal/infrastructure/controllers"
)

// AppInternal holds the controllers the CLI is built from.
type AppInternal struct {
	controllers     []entities.Controller
	sweepController *controllers.SweepController
}

// NewAppInternal creates the application context.
func NewAppInternal(
	all *[]entities.Controller,
	sweepController *controllers.SweepController,
) *AppInternal {
	return &AppInternal{
		controllers:     *all,
		sweepController: sweepController,
	}
}

// GetControllers returns every controller to be mounted as a subcommand.
func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}

// GetDefaultController returns the controller run by the bare root command.
func (it *AppInternal) GetDefaultController() entities.Controller {
	return it.sweepController
}
