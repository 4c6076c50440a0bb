package commands

import (
	"fmt"

	"github.com/pingcap-incubator/tinytxn/kv/transaction/mvcc"
	"github.com/pingcap/kvproto/pkg/kvrpcpb"
)

// KeyError is implemented by errors which are reported to the client as key errors rather than failing the request.
type KeyError interface {
	KeyErrors() []*kvrpcpb.KeyError
}

// ErrTxnNotFound occurs when neither a lock nor a commit or rollback record exists for a transaction's primary key.
type ErrTxnNotFound struct {
	StartTs    mvcc.TimeStamp
	PrimaryKey mvcc.Key
}

func (err *ErrTxnNotFound) Error() string {
	return fmt.Sprintf("commands: txn not found, start_ts: %v, primary key: %v", err.StartTs, err.PrimaryKey)
}

func (err *ErrTxnNotFound) KeyErrors() []*kvrpcpb.KeyError {
	var result kvrpcpb.KeyError
	result.Abort = err.Error()
	return []*kvrpcpb.KeyError{&result}
}

// ErrTxnEntryTooLarge occurs when a command would write more bytes than one raft entry may carry.
type ErrTxnEntryTooLarge struct {
	Tag   string
	Size  int
	Limit uint64
}

func (err *ErrTxnEntryTooLarge) Error() string {
	return fmt.Sprintf("commands: %s writes %d bytes, exceeds entry size limit %d", err.Tag, err.Size, err.Limit)
}

func (err *ErrTxnEntryTooLarge) KeyErrors() []*kvrpcpb.KeyError {
	var result kvrpcpb.KeyError
	result.Abort = err.Error()
	return []*kvrpcpb.KeyError{&result}
}

// CheckTxnEntrySize rejects a command whose estimated write exceeds limit. A zero limit disables the check.
func CheckTxnEntrySize(cmd *Command, limit uint64) error {
	size := cmd.WriteBytes()
	if limit == 0 || uint64(size) <= limit {
		return nil
	}
	return &ErrTxnEntryTooLarge{Tag: string(cmd.Tag()), Size: size, Limit: limit}
}
