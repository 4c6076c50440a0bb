package mvcc

import (
	"fmt"

	"github.com/pingcap/kvproto/pkg/kvrpcpb"
)

// ErrUnsupportedMutation is returned when a wire mutation has an op which a prewrite cannot stage.
type ErrUnsupportedMutation struct {
	Op  kvrpcpb.Op
	Key Key
}

func (e *ErrUnsupportedMutation) Error() string {
	return fmt.Sprintf("mvcc: unsupported mutation op %v on key %v", e.Op, e.Key)
}
