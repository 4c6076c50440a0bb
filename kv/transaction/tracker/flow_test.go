package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/pingcap-incubator/tinytxn/kv/config"
	"github.com/pingcap-incubator/tinytxn/kv/transaction/commands"
	"github.com/pingcap-incubator/tinytxn/kv/transaction/mvcc"
	"github.com/pingcap/kvproto/pkg/kvrpcpb"
	"github.com/stretchr/testify/assert"
)

func bigCommit(priority kvrpcpb.CommandPri) *commands.Command {
	keys := []mvcc.Key{mvcc.KeyFromRaw(make([]byte, 100))}
	return commands.NewCommand(&kvrpcpb.Context{Priority: priority}, commands.NewCommit(keys, 10, 20))
}

func TestThrottleUnlimited(t *testing.T) {
	tracker := NewTracker(&config.NewTestConfig().Txn)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	for i := 0; i < 100; i++ {
		assert.NoError(t, tracker.Throttle(ctx, bigCommit(kvrpcpb.CommandPri_Normal)))
	}
}

func TestThrottleLimited(t *testing.T) {
	cfg := config.NewTestConfig().Txn
	cfg.SchedulerWriteRateLimit = 64
	tracker := NewTracker(&cfg)

	// The first command takes the whole burst.
	assert.NoError(t, tracker.Throttle(context.Background(), bigCommit(kvrpcpb.CommandPri_Normal)))

	// The next one has to wait about a second, longer than the context allows.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, tracker.Throttle(ctx, bigCommit(kvrpcpb.CommandPri_Normal)))

	// High priority and readonly commands bypass flow control.
	assert.NoError(t, tracker.Throttle(ctx, bigCommit(kvrpcpb.CommandPri_High)))
	readonly := commands.NewCommand(nil, commands.NewMvccByKey(mvcc.KeyFromRaw([]byte("k"))))
	assert.NoError(t, tracker.Throttle(ctx, readonly))
}
