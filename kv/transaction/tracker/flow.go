package tracker

import (
	"context"

	"github.com/pingcap-incubator/tinytxn/kv/transaction/commands"
	"github.com/pingcap/errors"
	"golang.org/x/time/rate"
)

type FlowLimiter = rate.Limiter

// NewFlowLimiter limits written bytes to bytesPerSec. Zero means no limit.
func NewFlowLimiter(bytesPerSec int) *FlowLimiter {
	if bytesPerSec <= 0 {
		return NewInfLimiter()
	}
	return rate.NewLimiter(rate.Limit(bytesPerSec), bytesPerSec)
}

func NewInfLimiter() *FlowLimiter {
	return rate.NewLimiter(rate.Inf, 0)
}

// Throttle blocks until the limiter admits the bytes cmd writes. Commands which bypass flow control return at once.
// A command larger than the burst waits for a full burst.
func (t *Tracker) Throttle(ctx context.Context, cmd *commands.Command) error {
	if !cmd.NeedFlowControl() || t.flowLimiter.Limit() == rate.Inf {
		return nil
	}
	n := cmd.WriteBytes()
	if burst := t.flowLimiter.Burst(); n > burst {
		n = burst
	}
	return errors.Trace(t.flowLimiter.WaitN(ctx, n))
}
