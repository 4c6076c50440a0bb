package commands

import (
	"github.com/pingcap-incubator/tinytxn/kv/transaction/metrics"
	"github.com/pingcap-incubator/tinytxn/kv/transaction/mvcc"
	"github.com/pingcap/kvproto/pkg/kvrpcpb"
)

// Command is a transaction command as it flows from the gRPC layer through the scheduler to the execution engine.
// A command is immutable once built and is owned by one pipeline stage at a time.
type Command struct {
	// Ctx is the request context. Only its priority is interpreted here.
	Ctx  *kvrpcpb.Context
	Kind CommandKind
}

// CommandKind is one of the transaction protocol operations: Prewrite, AcquirePessimisticLock, Commit, Cleanup,
// Rollback, PessimisticRollback, TxnHeartBeat, CheckTxnStatus, ScanLock, ResolveLock, ResolveLockLite, DeleteRange,
// Pause, MvccByKey and MvccByStartTs.
//
// The set is closed. Every classification is a method of the variant, so a new variant which does not answer one of
// them does not compile.
type CommandKind interface {
	tag() metrics.CommandKind
	ts() mvcc.TimeStamp
	readonly() bool
	isSysCmd() bool
	writeBytes() int
	willWrite() []mvcc.Key
	describe() string
}

// NewCommand builds a command. A nil ctx is replaced by an empty context.
func NewCommand(ctx *kvrpcpb.Context, kind CommandKind) *Command {
	if ctx == nil {
		ctx = new(kvrpcpb.Context)
	}
	return &Command{Ctx: ctx, Kind: kind}
}

// Readonly reports whether the scheduler may run the command without write latches. DeleteRange is readonly because
// its caller guarantees nobody else touches the range, not because it writes nothing.
func (c *Command) Readonly() bool {
	return c.Kind.readonly()
}

func (c *Command) Priority() kvrpcpb.CommandPri {
	return c.Ctx.GetPriority()
}

// IsSysCmd reports whether the command is issued by background lock resolution and GC.
func (c *Command) IsSysCmd() bool {
	return c.Kind.isSysCmd()
}

func (c *Command) PriorityTag() metrics.CommandPriority {
	return GetPriorityTag(c.Priority())
}

// NeedFlowControl reports whether the command goes through admission throttling. Readonly and high priority commands
// bypass it.
func (c *Command) NeedFlowControl() bool {
	return !c.Readonly() && c.Priority() != kvrpcpb.CommandPri_High
}

// Tag is the metrics label of the command.
func (c *Command) Tag() metrics.CommandKind {
	return c.Kind.tag()
}

// Ts returns the timestamp which orders the command, or zero when no single timestamp governs it.
func (c *Command) Ts() mvcc.TimeStamp {
	return c.Kind.ts()
}

// WriteBytes estimates the bytes the command writes: encoded key lengths plus the values of puts and inserts.
func (c *Command) WriteBytes() int {
	return c.Kind.writeBytes()
}

// WillWrite returns all keys the command may write and so must latch exclusively. It returns nil iff the command is
// readonly.
func (c *Command) WillWrite() []mvcc.Key {
	return c.Kind.willWrite()
}

func (c *Command) String() string {
	return c.Kind.describe() + " | " + c.Ctx.String()
}

// GetPriorityTag maps a request priority to its metrics label. Unknown values get the protobuf default, normal.
func GetPriorityTag(priority kvrpcpb.CommandPri) metrics.CommandPriority {
	switch priority {
	case kvrpcpb.CommandPri_Low:
		return metrics.CommandPriorityLow
	case kvrpcpb.CommandPri_High:
		return metrics.CommandPriorityHigh
	default:
		return metrics.CommandPriorityNormal
	}
}

func keysBytes(keys []mvcc.Key) int {
	bytes := 0
	for _, k := range keys {
		bytes += k.Len()
	}
	return bytes
}

// latchKeys returns a non-nil copy of keys, so that a command with no keys still reads as a writer.
func latchKeys(keys []mvcc.Key) []mvcc.Key {
	result := make([]mvcc.Key, 0, len(keys))
	return append(result, keys...)
}
