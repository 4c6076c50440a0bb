package txnctl

import (
	"github.com/pingcap-incubator/tinytxn/kv/txn-ctl/txnctl/command"
	"github.com/spf13/cobra"
)

// CommandFlags are the flags shared by all subcommands.
type CommandFlags struct {
	ConfigPath string
}

// GetRootCmd builds the root command with every subcommand attached.
func GetRootCmd() *cobra.Command {
	commandFlags := CommandFlags{}
	rootCmd := &cobra.Command{
		Use:          "txn-ctl",
		Short:        "Transaction command inspector",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&commandFlags.ConfigPath, "config", "c", "", "path of the TOML config file")
	rootCmd.AddCommand(
		command.NewDescribeCommand(),
		command.NewTSOCommand(),
		command.NewConfigCommand(),
	)
	return rootCmd
}
