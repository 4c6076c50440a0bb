package commands

import (
	"fmt"

	"github.com/pingcap-incubator/tinytxn/kv/transaction/metrics"
	"github.com/pingcap-incubator/tinytxn/kv/transaction/mvcc"
)

// Pause holds the latches of Keys for Duration milliseconds. It is only used to test latch contention.
type Pause struct {
	Keys     []mvcc.Key
	Duration uint64
}

func NewPause(keys []mvcc.Key, duration uint64) *Pause {
	return &Pause{Keys: keys, Duration: duration}
}

func (p *Pause) tag() metrics.CommandKind { return metrics.CommandKindPause }
func (p *Pause) ts() mvcc.TimeStamp       { return 0 }
func (p *Pause) readonly() bool           { return false }
func (p *Pause) isSysCmd() bool           { return false }
func (p *Pause) writeBytes() int          { return keysBytes(p.Keys) }
func (p *Pause) willWrite() []mvcc.Key    { return latchKeys(p.Keys) }

func (p *Pause) describe() string {
	return fmt.Sprintf("kv::command::pause keys:(%d) %d ms", len(p.Keys), p.Duration)
}

// MvccByKey reads every version, lock and write record of one key, for debugging.
type MvccByKey struct {
	Key mvcc.Key
}

func NewMvccByKey(key mvcc.Key) *MvccByKey {
	return &MvccByKey{Key: key}
}

func (m *MvccByKey) tag() metrics.CommandKind { return metrics.CommandKindKeyMvcc }
func (m *MvccByKey) ts() mvcc.TimeStamp       { return 0 }
func (m *MvccByKey) readonly() bool           { return true }
func (m *MvccByKey) isSysCmd() bool           { return false }
func (m *MvccByKey) writeBytes() int          { return 0 }
func (m *MvccByKey) willWrite() []mvcc.Key    { return nil }

func (m *MvccByKey) describe() string {
	return fmt.Sprintf("kv::command::mvccbykey %s", formatKey(m.Key))
}

// MvccByStartTs finds a key written by the transaction started at StartTs and reads its MVCC information.
type MvccByStartTs struct {
	StartTs mvcc.TimeStamp
}

func NewMvccByStartTs(startTs mvcc.TimeStamp) *MvccByStartTs {
	return &MvccByStartTs{StartTs: startTs}
}

func (m *MvccByStartTs) tag() metrics.CommandKind { return metrics.CommandKindStartTsMvcc }
func (m *MvccByStartTs) ts() mvcc.TimeStamp       { return m.StartTs }
func (m *MvccByStartTs) readonly() bool           { return true }
func (m *MvccByStartTs) isSysCmd() bool           { return false }
func (m *MvccByStartTs) writeBytes() int          { return 0 }
func (m *MvccByStartTs) willWrite() []mvcc.Key    { return nil }

func (m *MvccByStartTs) describe() string {
	return fmt.Sprintf("kv::command::mvccbystartts %v", m.StartTs)
}
