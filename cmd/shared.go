package cmd

import (
	"fmt"

	"github.com/apex/log"

	"github.com/workbench-install/workbench/pkg/config"
	"github.com/workbench-install/workbench/pkg/target"
)

const defaultConfigHint = config.DefaultConfigPathYML

// loadTargets loads the configuration and builds the target registry from it.
func loadTargets() (*config.Config, []target.Target, error) {
	cfg, err := config.LoadOrDefault(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	targets := target.Builtin(cfg)
	log.Debugf("registry holds %d targets", len(targets))
	return cfg, targets, nil
}
