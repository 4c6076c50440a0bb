package commands

import (
	"fmt"

	"github.com/pingcap-incubator/tinytxn/kv/transaction/metrics"
	"github.com/pingcap-incubator/tinytxn/kv/transaction/mvcc"
)

// Cleanup rolls back the provisional write of one key if its lock has expired.
type Cleanup struct {
	Key     mvcc.Key
	StartTs mvcc.TimeStamp
	// CurrentTs is the approximate current time used to check the lock's TTL. Zero skips the TTL check.
	CurrentTs mvcc.TimeStamp
}

func NewCleanup(key mvcc.Key, startTs, currentTs mvcc.TimeStamp) *Cleanup {
	return &Cleanup{Key: key, StartTs: startTs, CurrentTs: currentTs}
}

// ShouldRollback decides whether lock, found on Key and owned by StartTs, may be rolled back now. If not, the caller
// reports the key as locked.
func (c *Cleanup) ShouldRollback(lock *mvcc.Lock) bool {
	return c.CurrentTs.IsZero() || lock.IsExpired(c.CurrentTs)
}

func (c *Cleanup) tag() metrics.CommandKind { return metrics.CommandKindCleanup }
func (c *Cleanup) ts() mvcc.TimeStamp       { return c.StartTs }
func (c *Cleanup) readonly() bool           { return false }
func (c *Cleanup) isSysCmd() bool           { return false }
func (c *Cleanup) writeBytes() int          { return c.Key.Len() }
func (c *Cleanup) willWrite() []mvcc.Key    { return []mvcc.Key{c.Key} }

func (c *Cleanup) describe() string {
	return fmt.Sprintf("kv::command::cleanup %s @ %v", formatKey(c.Key), c.StartTs)
}

// Rollback aborts the provisional writes of the transaction started at StartTs on Keys.
type Rollback struct {
	Keys    []mvcc.Key
	StartTs mvcc.TimeStamp
}

func NewRollback(keys []mvcc.Key, startTs mvcc.TimeStamp) *Rollback {
	return &Rollback{Keys: keys, StartTs: startTs}
}

func (r *Rollback) tag() metrics.CommandKind { return metrics.CommandKindRollback }
func (r *Rollback) ts() mvcc.TimeStamp       { return r.StartTs }
func (r *Rollback) readonly() bool           { return false }
func (r *Rollback) isSysCmd() bool           { return false }
func (r *Rollback) writeBytes() int          { return keysBytes(r.Keys) }
func (r *Rollback) willWrite() []mvcc.Key    { return latchKeys(r.Keys) }

func (r *Rollback) describe() string {
	return fmt.Sprintf("kv::command::rollback keys(%d) @ %v", len(r.Keys), r.StartTs)
}

// PessimisticRollback releases the pessimistic locks identified by StartTs and ForUpdateTs without committing.
type PessimisticRollback struct {
	Keys        []mvcc.Key
	StartTs     mvcc.TimeStamp
	ForUpdateTs mvcc.TimeStamp
}

func NewPessimisticRollback(keys []mvcc.Key, startTs, forUpdateTs mvcc.TimeStamp) *PessimisticRollback {
	return &PessimisticRollback{Keys: keys, StartTs: startTs, ForUpdateTs: forUpdateTs}
}

func (r *PessimisticRollback) tag() metrics.CommandKind {
	return metrics.CommandKindPessimisticRollback
}
func (r *PessimisticRollback) ts() mvcc.TimeStamp    { return r.StartTs }
func (r *PessimisticRollback) readonly() bool        { return false }
func (r *PessimisticRollback) isSysCmd() bool        { return false }
func (r *PessimisticRollback) writeBytes() int       { return keysBytes(r.Keys) }
func (r *PessimisticRollback) willWrite() []mvcc.Key { return latchKeys(r.Keys) }

func (r *PessimisticRollback) describe() string {
	return fmt.Sprintf("kv::command::pessimistic_rollback keys(%d) @ %v %v", len(r.Keys), r.StartTs, r.ForUpdateTs)
}
