package controllers

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bugswarm/check-upstream/internal/domain/entities"
)

// loadSettings reads --config, falling back to auto-detection and then to the
// built-in defaults.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		found, err := entities.FindConfigFile()
		if err != nil {
			logger.Debugf("No config file found, using defaults: %v", err)
			return entities.DefaultSettings(), nil
		}
		cfgPath = found
	}

	logger.Infof("Using config file: %s", cfgPath)
	return entities.NewSettings(cfgPath)
}
