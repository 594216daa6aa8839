package entities

import "github.com/spf13/cobra"

// ControllerBind carries the Cobra metadata a controller exposes.
type ControllerBind struct {
	Use   string
	Short string
	Long  string
}

// Controller is a CLI entrypoint bound to a Cobra command.
type Controller interface {
	GetBind() ControllerBind
	Execute(cmd *cobra.Command, args []string) error
}
