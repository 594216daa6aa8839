package controllers

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bugswarm/check-upstream/internal/domain/commands"
	"github.com/bugswarm/check-upstream/internal/domain/entities"
	"github.com/bugswarm/check-upstream/internal/infrastructure/reporters"
)

// CheckController handles the root command: check the repository in the working directory.
type CheckController struct {
	command  commands.Check
	reporter *reporters.TextReporter
}

// NewCheckController creates a new CheckController.
func NewCheckController(command commands.Check, reporter *reporters.TextReporter) *CheckController {
	return &CheckController{command: command, reporter: reporter}
}

// GetBind returns the Cobra command metadata for the check controller.
func (it *CheckController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "check-upstream",
		Short: "Check whether upstream changes warrant rebuilding the images",
		Long: `Compare the newest fork release tag with the newest upstream release tag and
report whether upstream changed anything the fork's image build depends on:

  - scripts run by the Packer templates, and every helper script
  - the Packer templates themselves
  - toolset values the scripts read through their lookup helper

The result is one of: no action needed, review the diffs, or rebuild.`,
	}
}

// Execute runs the check and prints the report. A report is printed even when a
// toolset failed to parse; the error is still returned so the process exits non-zero.
func (it *CheckController) Execute(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	verbose, _ := cmd.Flags().GetBool("verbose")
	skipFetch, _ := cmd.Flags().GetBool("skip-fetch")
	repoDir, _ := cmd.Flags().GetString("repo")

	settings, err := loadSettings(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	report, runErr := it.command.Execute(ctx, settings, commands.CheckOptions{
		RepoDir:   repoDir,
		SkipFetch: skipFetch,
		Verbose:   verbose,
	})
	if report == nil {
		return runErr
	}
	if runErr != nil {
		logger.Warn("Report is incomplete: some toolsets could not be compared")
	}
	if renderErr := it.reporter.Render(report); renderErr != nil {
		return errors.Join(runErr, renderErr)
	}
	return runErr
}

// AddFlags adds the check-specific flags to the given Cobra command.
func (it *CheckController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("skip-fetch", false, "Do not fetch the upstream remote; use local refs")
}
