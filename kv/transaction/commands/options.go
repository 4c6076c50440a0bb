package commands

import (
	"time"

	"github.com/pingcap-incubator/tinytxn/kv/transaction/mvcc"
)

// Options tunes the write-family commands. It is a plain value; nothing here validates combinations of fields, that is
// left to the execution engine.
type Options struct {
	// LockTTL is the lock's time to live in milliseconds.
	LockTTL             uint64
	SkipConstraintCheck bool
	KeyOnly             bool
	ReverseScan         bool
	IsFirstLock         bool
	// ForUpdateTs is zero for optimistic transactions and non-zero for pessimistic ones.
	ForUpdateTs mvcc.TimeStamp
	// IsPessimisticLock has one flag per prewrite mutation.
	IsPessimisticLock []bool
	// TxnSize is how many keys the transaction involves.
	TxnSize     uint64
	MinCommitTs mvcc.TimeStamp
	// WaitTimeout is how long to wait for a lock to be released, in milliseconds. 0 means the default timeout,
	// negative means do not wait.
	WaitTimeout int64
}

func NewOptions(lockTTL uint64, skipConstraintCheck bool, keyOnly bool) Options {
	return Options{
		LockTTL:             lockTTL,
		SkipConstraintCheck: skipConstraintCheck,
		KeyOnly:             keyOnly,
	}
}

// WithReverseScan returns a copy of o which scans backwards.
func (o Options) WithReverseScan() Options {
	o.ReverseScan = true
	return o
}

func (o Options) IsPessimistic() bool {
	return !o.ForUpdateTs.IsZero()
}

// LockWaitTimeout resolves WaitTimeout against defaultTimeout. The boolean is false when the command must not wait.
func (o Options) LockWaitTimeout(defaultTimeout time.Duration) (time.Duration, bool) {
	switch {
	case o.WaitTimeout < 0:
		return 0, false
	case o.WaitTimeout == 0:
		return defaultTimeout, true
	default:
		return time.Duration(o.WaitTimeout) * time.Millisecond, true
	}
}
