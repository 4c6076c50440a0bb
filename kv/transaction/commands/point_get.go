package commands

import (
	"fmt"

	"github.com/pingcap-incubator/tinytxn/kv/transaction/metrics"
	"github.com/pingcap-incubator/tinytxn/kv/transaction/mvcc"
	"github.com/pingcap/kvproto/pkg/kvrpcpb"
)

// PointGetCommand is a single key read. Point reads bypass the scheduler, so they are not a CommandKind.
type PointGetCommand struct {
	Ctx *kvrpcpb.Context
	Key mvcc.Key
	// Ts is nil for a raw get and the read timestamp for a transactional get.
	Ts *mvcc.TimeStamp
}

func PointGetFromGet(request *kvrpcpb.GetRequest) *PointGetCommand {
	ts := mvcc.TimeStamp(request.GetVersion())
	return NewPointGet(request.GetContext(), mvcc.KeyFromRaw(request.GetKey()), &ts)
}

func PointGetFromRawGet(request *kvrpcpb.RawGetRequest) *PointGetCommand {
	return NewPointGet(request.GetContext(), mvcc.KeyFromRaw(request.GetKey()), nil)
}

// NewPointGet builds a point read directly. A nil ctx is replaced by an empty context.
func NewPointGet(ctx *kvrpcpb.Context, key mvcc.Key, ts *mvcc.TimeStamp) *PointGetCommand {
	if ctx == nil {
		ctx = new(kvrpcpb.Context)
	}
	return &PointGetCommand{Ctx: ctx, Key: key, Ts: ts}
}

func (g *PointGetCommand) IsRaw() bool {
	return g.Ts == nil
}

func (g *PointGetCommand) Tag() metrics.CommandKind {
	if g.IsRaw() {
		return metrics.CommandKindRawGet
	}
	return metrics.CommandKindGet
}

func (g *PointGetCommand) PriorityTag() metrics.CommandPriority {
	return GetPriorityTag(g.Ctx.GetPriority())
}

func (g *PointGetCommand) String() string {
	if g.IsRaw() {
		return fmt.Sprintf("kv::command::raw_get %s | %s", formatKey(g.Key), g.Ctx.String())
	}
	return fmt.Sprintf("kv::command::get %s @ %v | %s", formatKey(g.Key), *g.Ts, g.Ctx.String())
}
