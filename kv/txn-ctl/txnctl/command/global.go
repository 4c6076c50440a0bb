package command

import (
	"github.com/pingcap-incubator/tinytxn/kv/config"
	"github.com/pingcap/errors"
	"github.com/spf13/cobra"
)

// loadConfig returns the config named by the --config flag, or the defaults if the flag is empty. The logger is set
// up from it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, errors.Trace(err)
	}
	var cfg *config.Config
	if path == "" {
		cfg = config.NewDefaultConfig()
	} else if cfg, err = config.LoadConfig(path); err != nil {
		return nil, err
	}
	if err := cfg.SetupLogger(); err != nil {
		return nil, err
	}
	return cfg, nil
}
