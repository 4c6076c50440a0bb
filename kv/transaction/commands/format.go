package commands

import (
	"fmt"

	"github.com/pingcap-incubator/tinytxn/kv/transaction/mvcc"
)

// maxKeyDisplayLen caps how many encoded bytes of a key are rendered in a description.
const maxKeyDisplayLen = 64

func formatKey(k mvcc.Key) string {
	if k == nil {
		return "None"
	}
	if k.Len() > maxKeyDisplayLen {
		return fmt.Sprintf("%X...(%d)", k.AsEncoded()[:maxKeyDisplayLen], k.Len())
	}
	return k.String()
}
