package tracker

import (
	"testing"
	"time"

	"github.com/pingcap-incubator/tinytxn/kv/config"
	"github.com/pingcap-incubator/tinytxn/kv/transaction/commands"
	"github.com/pingcap-incubator/tinytxn/kv/transaction/mvcc"
	"github.com/pingcap/kvproto/pkg/kvrpcpb"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gather returns the value of the counter or the sample count of the histogram named name whose labels match labels.
func gather(t *testing.T, name string, labels map[string]string) float64 {
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
	metric:
		for _, m := range family.GetMetric() {
			for _, pair := range m.GetLabel() {
				if v, ok := labels[pair.GetName()]; ok && v != pair.GetValue() {
					continue metric
				}
			}
			if m.GetCounter() != nil {
				return m.GetCounter().GetValue()
			}
			if m.GetHistogram() != nil {
				return float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return 0
}

func TestOnSchedule(t *testing.T) {
	tracker := NewTracker(&config.NewTestConfig().Txn)
	ctx := &kvrpcpb.Context{Priority: kvrpcpb.CommandPri_Low}
	cmd := commands.NewCommand(ctx, commands.NewCommit([]mvcc.Key{mvcc.KeyFromRaw([]byte("k"))}, 10, 20))

	labels := map[string]string{"type": "commit", "priority": "low"}
	before := gather(t, "tinykv_scheduler_commands_total", labels)
	flowBefore := gather(t, "tinykv_scheduler_flow_control_total", labels)
	bytesBefore := gather(t, "tinykv_scheduler_write_bytes", labels)

	require.NoError(t, tracker.OnSchedule(cmd))
	assert.Equal(t, before+1, gather(t, "tinykv_scheduler_commands_total", labels))
	assert.Equal(t, flowBefore+1, gather(t, "tinykv_scheduler_flow_control_total", labels))
	assert.Equal(t, bytesBefore+1, gather(t, "tinykv_scheduler_write_bytes", labels))
}

func TestOnScheduleReadonly(t *testing.T) {
	tracker := NewTracker(&config.NewTestConfig().Txn)
	cmd := commands.NewCommand(nil, commands.NewMvccByKey(mvcc.KeyFromRaw([]byte("k"))))

	labels := map[string]string{"type": "key_mvcc"}
	before := gather(t, "tinykv_scheduler_commands_total", labels)
	require.NoError(t, tracker.OnSchedule(cmd))
	assert.Equal(t, before+1, gather(t, "tinykv_scheduler_commands_total", labels))
	assert.Equal(t, float64(0), gather(t, "tinykv_scheduler_flow_control_total", labels))
	assert.Equal(t, float64(0), gather(t, "tinykv_scheduler_write_bytes", labels))
}

func TestOnScheduleTooLarge(t *testing.T) {
	cfg := config.NewTestConfig().Txn
	cfg.TxnEntrySizeLimit = 16
	tracker := NewTracker(&cfg)

	key := mvcc.KeyFromRaw([]byte("k"))
	cmd := commands.NewCommand(nil, commands.NewPrewrite(
		[]mvcc.Mutation{&mvcc.MutationPut{Key: key, Value: make([]byte, 64)}}, []byte("k"), 10, commands.Options{}))

	labels := map[string]string{"type": "prewrite"}
	before := gather(t, "tinykv_scheduler_commands_total", labels)
	err := tracker.OnSchedule(cmd)
	require.Error(t, err)
	_, ok := err.(*commands.ErrTxnEntryTooLarge)
	assert.True(t, ok)
	assert.Equal(t, before, gather(t, "tinykv_scheduler_commands_total", labels))
}

func TestOnFinish(t *testing.T) {
	cfg := config.NewTestConfig().Txn
	tracker := NewTracker(&cfg)
	cmd := commands.NewCommand(nil, commands.NewRollback(nil, 10))

	labels := map[string]string{"type": "rollback"}
	slowBefore := gather(t, "tinykv_scheduler_slow_commands_total", labels)
	latencyBefore := gather(t, "tinykv_scheduler_command_duration_seconds", labels)

	assert.False(t, tracker.OnFinish(cmd, time.Millisecond))
	assert.Equal(t, slowBefore, gather(t, "tinykv_scheduler_slow_commands_total", labels))

	assert.True(t, tracker.OnFinish(cmd, cfg.SlowLogThreshold.Duration))
	assert.Equal(t, slowBefore+1, gather(t, "tinykv_scheduler_slow_commands_total", labels))
	assert.Equal(t, latencyBefore+2, gather(t, "tinykv_scheduler_command_duration_seconds", labels))
}

func TestOnPointGet(t *testing.T) {
	tracker := NewTracker(&config.NewTestConfig().Txn)

	labels := map[string]string{"type": "raw_get", "priority": "high"}
	before := gather(t, "tinykv_storage_point_get_total", labels)
	tracker.OnPointGet(commands.PointGetFromRawGet(&kvrpcpb.RawGetRequest{
		Context: &kvrpcpb.Context{Priority: kvrpcpb.CommandPri_High},
		Key:     []byte("k"),
	}))
	assert.Equal(t, before+1, gather(t, "tinykv_storage_point_get_total", labels))
}
