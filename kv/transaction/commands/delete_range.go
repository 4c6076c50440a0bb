package commands

import (
	"fmt"

	"github.com/pingcap-incubator/tinytxn/kv/transaction/metrics"
	"github.com/pingcap-incubator/tinytxn/kv/transaction/mvcc"
)

// DeleteRange deletes all data in [StartKey, EndKey). The caller guarantees no other command touches the range, so it
// takes no latches.
type DeleteRange struct {
	StartKey mvcc.Key
	EndKey   mvcc.Key
}

func NewDeleteRange(startKey, endKey mvcc.Key) *DeleteRange {
	return &DeleteRange{StartKey: startKey, EndKey: endKey}
}

func (d *DeleteRange) tag() metrics.CommandKind { return metrics.CommandKindDeleteRange }
func (d *DeleteRange) ts() mvcc.TimeStamp       { return 0 }
func (d *DeleteRange) readonly() bool           { return true }
func (d *DeleteRange) isSysCmd() bool           { return false }
func (d *DeleteRange) writeBytes() int          { return 0 }
func (d *DeleteRange) willWrite() []mvcc.Key    { return nil }

func (d *DeleteRange) describe() string {
	return fmt.Sprintf("kv::command::delete range [%s, %s)", formatKey(d.StartKey), formatKey(d.EndKey))
}
