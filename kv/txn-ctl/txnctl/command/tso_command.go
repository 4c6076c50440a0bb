package command

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pingcap-incubator/tinytxn/kv/transaction/mvcc"
	"github.com/pingcap/errors"
	"github.com/spf13/cobra"
)

// NewTSOCommand returns the tso subcommand, which splits a timestamp into its physical and logical parts.
func NewTSOCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tso <timestamp>",
		Short: "parse TSO to the system and logic time",
		Args:  cobra.ExactArgs(1),
		RunE:  showTSOCommandFunc,
	}
}

func showTSOCommandFunc(cmd *cobra.Command, args []string) error {
	t, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return errors.Annotatef(err, "invalid timestamp %s", args[0])
	}
	ts := mvcc.TimeStamp(t)
	physical := ts.Physical()
	physicalTime := time.Unix(physical/1000, physical%1000*time.Millisecond.Nanoseconds())
	fmt.Fprintln(cmd.OutOrStdout(), "system: ", physicalTime)
	fmt.Fprintln(cmd.OutOrStdout(), "logic: ", ts.Logical())
	return nil
}
