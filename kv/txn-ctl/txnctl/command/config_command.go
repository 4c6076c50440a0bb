package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewConfigCommand returns the config subcommand, which prints the effective configuration.
func NewConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "show the effective config",
		Args:  cobra.NoArgs,
		RunE:  showConfigCommandFunc,
	}
}

func showConfigCommandFunc(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), cfg.String())
	return nil
}
