package main

import (
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bugswarm/check-upstream/internal"
	"github.com/bugswarm/check-upstream/internal/infrastructure/controllers"
)

func buildRootCommand(checkController *controllers.CheckController) *cobra.Command {
	bind := checkController.GetBind()
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:           bind.Use,
		Short:         bind.Short,
		Long:          bind.Long,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          checkController.Execute,
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect, else built-in defaults)")
	cmd.PersistentFlags().String("repo", ".",
		"Path to the fork's local checkout")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	checkController.AddFlags(cmd)
	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Args:  cobra.NoArgs,
			RunE:  controller.Execute,
		}
		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	// Inject controllers via DIG
	appContext := injectAppContext()
	cobraRoot := buildRootCommand(appContext.GetCheckController())
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'check-upstream': %s", err)
	}
}
