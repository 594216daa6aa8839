package controllers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bugswarm/check-upstream/internal/domain/commands"
	"github.com/bugswarm/check-upstream/internal/domain/entities"
	"github.com/bugswarm/check-upstream/internal/infrastructure/reporters"
)

// DepsController handles the "deps" subcommand.
type DepsController struct {
	command  commands.Deps
	reporter *reporters.TextReporter
}

// NewDepsController creates a new DepsController.
func NewDepsController(command commands.Deps, reporter *reporters.TextReporter) *DepsController {
	return &DepsController{command: command, reporter: reporter}
}

// GetBind returns the Cobra command metadata for the deps controller.
func (it *DepsController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "deps",
		Short: "List the build dependencies and toolset queries of the fork base",
		Long: `List every file the image build depends on at the newest fork release tag,
and every toolset query its scripts perform. These are exactly the inputs
the check watches for upstream changes. Only local refs are read.`,
	}
}

// Execute lists the dependencies of the fork base tag.
func (it *DepsController) Execute(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	verbose, _ := cmd.Flags().GetBool("verbose")
	repoDir, _ := cmd.Flags().GetString("repo")

	settings, err := loadSettings(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	result, err := it.command.Execute(ctx, settings, commands.DepsOptions{
		RepoDir: repoDir,
		Verbose: verbose,
	})
	if err != nil {
		return err
	}
	return it.reporter.RenderDeps(result)
}
