package commands

import (
	"fmt"

	"github.com/pingcap-incubator/tinytxn/kv/transaction/metrics"
	"github.com/pingcap-incubator/tinytxn/kv/transaction/mvcc"
)

// Prewrite represents the prewrite stage of a transaction, the first phase of two phase commit. All mutations are
// staged as provisional versions, each one locked. The lock on Primary is the point of truth for the transaction; the
// other locks refer to it. A Commit or a Rollback follows.
//
// The transaction is pessimistic iff Options.ForUpdateTs is non-zero.
type Prewrite struct {
	Mutations []mvcc.Mutation
	// Primary is the raw primary key.
	Primary []byte
	StartTs mvcc.TimeStamp
	Options Options
}

func NewPrewrite(mutations []mvcc.Mutation, primary []byte, startTs mvcc.TimeStamp, options Options) *Prewrite {
	return &Prewrite{
		Mutations: mutations,
		Primary:   primary,
		StartTs:   startTs,
		Options:   options,
	}
}

func (p *Prewrite) tag() metrics.CommandKind { return metrics.CommandKindPrewrite }
func (p *Prewrite) ts() mvcc.TimeStamp       { return p.StartTs }
func (p *Prewrite) readonly() bool           { return false }
func (p *Prewrite) isSysCmd() bool           { return false }

func (p *Prewrite) writeBytes() int {
	bytes := 0
	for _, m := range p.Mutations {
		bytes += m.Size()
	}
	return bytes
}

func (p *Prewrite) willWrite() []mvcc.Key {
	result := make([]mvcc.Key, 0, len(p.Mutations))
	for _, m := range p.Mutations {
		result = append(result, m.MutationKey())
	}
	return result
}

func (p *Prewrite) describe() string {
	return fmt.Sprintf("kv::command::prewrite mutations(%d) @ %v", len(p.Mutations), p.StartTs)
}

// PessimisticLockKey is a key to lock pessimistically. ShouldNotExist asks the lock to fail if the key has a value.
type PessimisticLockKey struct {
	Key            mvcc.Key
	ShouldNotExist bool
}

// AcquirePessimisticLock locks keys before the transaction knows their values. A Prewrite finalizes the locks, a
// PessimisticRollback releases them.
type AcquirePessimisticLock struct {
	Keys    []PessimisticLockKey
	Primary []byte
	StartTs mvcc.TimeStamp
	Options Options
}

func NewAcquirePessimisticLock(keys []PessimisticLockKey, primary []byte, startTs mvcc.TimeStamp, options Options) *AcquirePessimisticLock {
	return &AcquirePessimisticLock{
		Keys:    keys,
		Primary: primary,
		StartTs: startTs,
		Options: options,
	}
}

func (a *AcquirePessimisticLock) tag() metrics.CommandKind {
	return metrics.CommandKindAcquirePessimisticLock
}
func (a *AcquirePessimisticLock) ts() mvcc.TimeStamp { return a.StartTs }
func (a *AcquirePessimisticLock) readonly() bool     { return false }
func (a *AcquirePessimisticLock) isSysCmd() bool     { return false }

func (a *AcquirePessimisticLock) writeBytes() int {
	bytes := 0
	for _, k := range a.Keys {
		bytes += k.Key.Len()
	}
	return bytes
}

func (a *AcquirePessimisticLock) willWrite() []mvcc.Key {
	result := make([]mvcc.Key, 0, len(a.Keys))
	for _, k := range a.Keys {
		result = append(result, k.Key)
	}
	return result
}

func (a *AcquirePessimisticLock) describe() string {
	return fmt.Sprintf("kv::command::acquirepessimisticlock keys(%d) @ %v %v",
		len(a.Keys), a.StartTs, a.Options.ForUpdateTs)
}
