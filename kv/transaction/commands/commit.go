package commands

import (
	"fmt"

	"github.com/pingcap-incubator/tinytxn/kv/transaction/metrics"
	"github.com/pingcap-incubator/tinytxn/kv/transaction/mvcc"
)

// Commit makes the writes of the transaction that started at LockTs visible at CommitTs. It is the second phase of
// two phase commit and requires the prewrite locks to still be held on all Keys.
type Commit struct {
	Keys     []mvcc.Key
	LockTs   mvcc.TimeStamp
	CommitTs mvcc.TimeStamp
}

func NewCommit(keys []mvcc.Key, lockTs, commitTs mvcc.TimeStamp) *Commit {
	return &Commit{Keys: keys, LockTs: lockTs, CommitTs: commitTs}
}

func (c *Commit) tag() metrics.CommandKind { return metrics.CommandKindCommit }
func (c *Commit) ts() mvcc.TimeStamp       { return c.LockTs }
func (c *Commit) readonly() bool           { return false }
func (c *Commit) isSysCmd() bool           { return false }
func (c *Commit) writeBytes() int          { return keysBytes(c.Keys) }
func (c *Commit) willWrite() []mvcc.Key    { return latchKeys(c.Keys) }

func (c *Commit) describe() string {
	return fmt.Sprintf("kv::command::commit %d %v -> %v", len(c.Keys), c.LockTs, c.CommitTs)
}
