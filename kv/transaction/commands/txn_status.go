package commands

import (
	"fmt"

	"github.com/pingcap-incubator/tinytxn/kv/transaction/metrics"
	"github.com/pingcap-incubator/tinytxn/kv/transaction/mvcc"
)

// TxnHeartBeat extends the TTL of the primary lock of a transaction that is still running.
type TxnHeartBeat struct {
	PrimaryKey mvcc.Key
	StartTs    mvcc.TimeStamp
	// AdviseTTL is the TTL in milliseconds the client asks for. A heartbeat never shortens a TTL.
	AdviseTTL uint64
}

func NewTxnHeartBeat(primaryKey mvcc.Key, startTs mvcc.TimeStamp, adviseTTL uint64) *TxnHeartBeat {
	return &TxnHeartBeat{PrimaryKey: primaryKey, StartTs: startTs, AdviseTTL: adviseTTL}
}

// NewTTL returns the TTL lock has after the heartbeat. lock is the primary lock found for StartTs and is never nil.
func (h *TxnHeartBeat) NewTTL(lock *mvcc.Lock) uint64 {
	if h.AdviseTTL > lock.TTL {
		return h.AdviseTTL
	}
	return lock.TTL
}

func (h *TxnHeartBeat) tag() metrics.CommandKind { return metrics.CommandKindTxnHeartBeat }
func (h *TxnHeartBeat) ts() mvcc.TimeStamp       { return h.StartTs }
func (h *TxnHeartBeat) readonly() bool           { return false }
func (h *TxnHeartBeat) isSysCmd() bool           { return false }
func (h *TxnHeartBeat) writeBytes() int          { return h.PrimaryKey.Len() }
func (h *TxnHeartBeat) willWrite() []mvcc.Key    { return []mvcc.Key{h.PrimaryKey} }

func (h *TxnHeartBeat) describe() string {
	return fmt.Sprintf("kv::command::txn_heart_beat %s @ %v ttl %d", formatKey(h.PrimaryKey), h.StartTs, h.AdviseTTL)
}

// CheckTxnStatus checks the primary lock of the transaction started at LockTs, rolling it back if it has expired and
// pushing its min commit ts forward on behalf of a reader if it has not.
type CheckTxnStatus struct {
	PrimaryKey mvcc.Key
	LockTs     mvcc.TimeStamp
	// CallerStartTs is the start ts of the transaction asking. TsMax means the caller does not read at a fixed ts and
	// never pushes min commit ts.
	CallerStartTs mvcc.TimeStamp
	CurrentTs     mvcc.TimeStamp
	// RollbackIfNotExist writes a rollback record when there is neither a lock nor a commit record.
	RollbackIfNotExist bool
}

func NewCheckTxnStatus(primaryKey mvcc.Key, lockTs, callerStartTs, currentTs mvcc.TimeStamp, rollbackIfNotExist bool) *CheckTxnStatus {
	return &CheckTxnStatus{
		PrimaryKey:         primaryKey,
		LockTs:             lockTs,
		CallerStartTs:      callerStartTs,
		CurrentTs:          currentTs,
		RollbackIfNotExist: rollbackIfNotExist,
	}
}

// CheckTxnStatusAction is the change a check txn status makes to the primary key.
type CheckTxnStatusAction int

const (
	ActionNone CheckTxnStatusAction = iota
	ActionTTLExpireRollback
	ActionLockNotExistRollback
	ActionMinCommitTsPushed
)

func (a CheckTxnStatusAction) String() string {
	switch a {
	case ActionTTLExpireRollback:
		return "ttl_expire_rollback"
	case ActionLockNotExistRollback:
		return "lock_not_exist_rollback"
	case ActionMinCommitTsPushed:
		return "min_commit_ts_pushed"
	default:
		return "no_action"
	}
}

type CheckTxnStatusResult struct {
	Status mvcc.TxnStatus
	Action CheckTxnStatusAction
	// Lock is the updated primary lock when Action is ActionMinCommitTsPushed, otherwise nil.
	Lock *mvcc.Lock
}

// Decide derives the outcome of the check from the lock found on the primary key and the commit or rollback record of
// the transaction, either of which may be nil. A lock left by another transaction counts as no lock. Neither argument
// is modified.
func (c *CheckTxnStatus) Decide(lock *mvcc.Lock, record *mvcc.TxnStatus) (CheckTxnStatusResult, error) {
	if lock != nil && lock.Ts == c.LockTs {
		if lock.IsExpired(c.CurrentTs) {
			return CheckTxnStatusResult{Status: mvcc.RolledBack(), Action: ActionTTLExpireRollback}, nil
		}
		if lock.MinCommitTs.IsZero() || c.CallerStartTs == mvcc.TsMax || c.CallerStartTs < lock.MinCommitTs {
			return CheckTxnStatusResult{Status: mvcc.Uncommitted(lock.TTL, lock.MinCommitTs)}, nil
		}
		pushed := *lock
		pushed.MinCommitTs = c.CallerStartTs.Next()
		if pushed.MinCommitTs < c.CurrentTs {
			pushed.MinCommitTs = c.CurrentTs
		}
		return CheckTxnStatusResult{
			Status: mvcc.Uncommitted(pushed.TTL, pushed.MinCommitTs),
			Action: ActionMinCommitTsPushed,
			Lock:   &pushed,
		}, nil
	}
	if record != nil {
		return CheckTxnStatusResult{Status: *record}, nil
	}
	if c.RollbackIfNotExist {
		return CheckTxnStatusResult{Status: mvcc.RolledBack(), Action: ActionLockNotExistRollback}, nil
	}
	return CheckTxnStatusResult{}, &ErrTxnNotFound{StartTs: c.LockTs, PrimaryKey: c.PrimaryKey}
}

func (c *CheckTxnStatus) tag() metrics.CommandKind { return metrics.CommandKindCheckTxnStatus }
func (c *CheckTxnStatus) ts() mvcc.TimeStamp       { return c.LockTs }
func (c *CheckTxnStatus) readonly() bool           { return false }
func (c *CheckTxnStatus) isSysCmd() bool           { return false }
func (c *CheckTxnStatus) writeBytes() int          { return c.PrimaryKey.Len() }
func (c *CheckTxnStatus) willWrite() []mvcc.Key    { return []mvcc.Key{c.PrimaryKey} }

func (c *CheckTxnStatus) describe() string {
	return fmt.Sprintf("kv::command::check_txn_status %s @ %v curr(%v, %v)",
		formatKey(c.PrimaryKey), c.LockTs, c.CallerStartTs, c.CurrentTs)
}
