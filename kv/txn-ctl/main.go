package main

import (
	"os"

	"github.com/pingcap-incubator/tinytxn/kv/txn-ctl/txnctl"
)

func main() {
	if err := txnctl.GetRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
