package commands

import (
	"fmt"

	"github.com/pingcap-incubator/tinytxn/kv/transaction/metrics"
	"github.com/pingcap-incubator/tinytxn/kv/transaction/mvcc"
)

// ScanLock scans locks with ts <= MaxTs, starting at StartKey (nil for the beginning). Limit 0 means unlimited.
type ScanLock struct {
	MaxTs    mvcc.TimeStamp
	StartKey mvcc.Key
	Limit    int
}

func NewScanLock(maxTs mvcc.TimeStamp, startKey mvcc.Key, limit int) *ScanLock {
	return &ScanLock{MaxTs: maxTs, StartKey: startKey, Limit: limit}
}

func (s *ScanLock) tag() metrics.CommandKind { return metrics.CommandKindScanLock }
func (s *ScanLock) ts() mvcc.TimeStamp       { return s.MaxTs }
func (s *ScanLock) readonly() bool           { return true }
func (s *ScanLock) isSysCmd() bool           { return true }
func (s *ScanLock) writeBytes() int          { return 0 }
func (s *ScanLock) willWrite() []mvcc.Key    { return nil }

func (s *ScanLock) describe() string {
	return fmt.Sprintf("kv::command::scan_lock %s %d @ %v", formatKey(s.StartKey), s.Limit, s.MaxTs)
}

// ResolveLock resolves the locks of many transactions at once. It starts as a scan: with no KeyLocks it reads the
// locks of the transactions in TxnStatus from ScanKey on. Once KeyLocks is filled the same command turns into a write
// of those locks. TxnStatus maps a start ts to its commit ts, or to zero for a rollback.
type ResolveLock struct {
	TxnStatus map[mvcc.TimeStamp]mvcc.TimeStamp
	ScanKey   mvcc.Key
	KeyLocks  []mvcc.KeyLock
}

func NewResolveLock(txnStatus map[mvcc.TimeStamp]mvcc.TimeStamp, scanKey mvcc.Key, keyLocks []mvcc.KeyLock) *ResolveLock {
	return &ResolveLock{TxnStatus: txnStatus, ScanKey: scanKey, KeyLocks: keyLocks}
}

// NewResolveLockBatch builds the write for a batch of scanned locks. If the scan has more locks, the next scan resumes
// at the last key of this batch.
func NewResolveLockBatch(txnStatus map[mvcc.TimeStamp]mvcc.TimeStamp, keyLocks []mvcc.KeyLock, hasMore bool) *ResolveLock {
	var scanKey mvcc.Key
	if hasMore && len(keyLocks) > 0 {
		scanKey = keyLocks[len(keyLocks)-1].Key
	}
	return NewResolveLock(txnStatus, scanKey, keyLocks)
}

// ResolveAction is what resolving does to one lock.
type ResolveAction int

const (
	// ResolveSkip leaves a lock whose transaction is not in the status map.
	ResolveSkip ResolveAction = iota
	ResolveCommit
	ResolveRollback
)

func (a ResolveAction) String() string {
	switch a {
	case ResolveCommit:
		return "commit"
	case ResolveRollback:
		return "rollback"
	default:
		return "skip"
	}
}

type Resolution struct {
	Key      mvcc.Key
	Lock     *mvcc.Lock
	Action   ResolveAction
	CommitTs mvcc.TimeStamp
}

// Resolutions decides, for each key lock in order, whether it is committed, rolled back or left alone. A key lock
// without a lock is left alone.
func (r *ResolveLock) Resolutions() []Resolution {
	result := make([]Resolution, 0, len(r.KeyLocks))
	for _, kl := range r.KeyLocks {
		res := Resolution{Key: kl.Key, Lock: kl.Lock}
		if kl.Lock == nil {
			result = append(result, res)
			continue
		}
		commitTs, ok := r.TxnStatus[kl.Lock.Ts]
		switch {
		case !ok:
			res.Action = ResolveSkip
		case commitTs.IsZero():
			res.Action = ResolveRollback
		default:
			res.Action = ResolveCommit
			res.CommitTs = commitTs
		}
		result = append(result, res)
	}
	return result
}

func (r *ResolveLock) tag() metrics.CommandKind { return metrics.CommandKindResolveLock }
func (r *ResolveLock) ts() mvcc.TimeStamp       { return 0 }
func (r *ResolveLock) readonly() bool           { return len(r.KeyLocks) == 0 }
func (r *ResolveLock) isSysCmd() bool           { return true }

func (r *ResolveLock) writeBytes() int {
	bytes := 0
	for _, kl := range r.KeyLocks {
		bytes += kl.Key.Len()
	}
	return bytes
}

func (r *ResolveLock) willWrite() []mvcc.Key {
	if len(r.KeyLocks) == 0 {
		return nil
	}
	result := make([]mvcc.Key, 0, len(r.KeyLocks))
	for _, kl := range r.KeyLocks {
		result = append(result, kl.Key)
	}
	return result
}

func (r *ResolveLock) describe() string {
	return fmt.Sprintf("kv::command::resolve_lock txns(%d) keys(%d) scan %s",
		len(r.TxnStatus), len(r.KeyLocks), formatKey(r.ScanKey))
}

// ResolveLockLite resolves the locks of one transaction on the given keys, without scanning. CommitTs zero means roll
// back.
type ResolveLockLite struct {
	StartTs     mvcc.TimeStamp
	CommitTs    mvcc.TimeStamp
	ResolveKeys []mvcc.Key
}

func NewResolveLockLite(startTs, commitTs mvcc.TimeStamp, resolveKeys []mvcc.Key) *ResolveLockLite {
	return &ResolveLockLite{StartTs: startTs, CommitTs: commitTs, ResolveKeys: resolveKeys}
}

func (r *ResolveLockLite) tag() metrics.CommandKind { return metrics.CommandKindResolveLockLite }
func (r *ResolveLockLite) ts() mvcc.TimeStamp       { return r.StartTs }
func (r *ResolveLockLite) readonly() bool           { return false }
func (r *ResolveLockLite) isSysCmd() bool           { return true }
func (r *ResolveLockLite) writeBytes() int          { return keysBytes(r.ResolveKeys) }
func (r *ResolveLockLite) willWrite() []mvcc.Key    { return latchKeys(r.ResolveKeys) }

func (r *ResolveLockLite) describe() string {
	return fmt.Sprintf("kv::command::resolve_lock_lite keys(%d) @ %v -> %v",
		len(r.ResolveKeys), r.StartTs, r.CommitTs)
}
