package tracker

import (
	"time"

	"github.com/pingcap-incubator/tinytxn/kv/config"
	"github.com/pingcap-incubator/tinytxn/kv/transaction/commands"
	"github.com/pingcap-incubator/tinytxn/kv/transaction/metrics"
	"github.com/pingcap/log"
	"go.uber.org/zap"
)

// Tracker records the life of transaction commands: admission, flow control, latency and slow commands. It only reads
// commands and is safe for concurrent use.
type Tracker struct {
	slowLogThreshold  time.Duration
	txnEntrySizeLimit uint64
	flowLimiter       *FlowLimiter
}

func NewTracker(cfg *config.TxnConfig) *Tracker {
	return &Tracker{
		slowLogThreshold:  cfg.SlowLogThreshold.Duration,
		txnEntrySizeLimit: uint64(cfg.TxnEntrySizeLimit),
		flowLimiter:       NewFlowLimiter(int(cfg.SchedulerWriteRateLimit)),
	}
}

// OnSchedule is called when a command enters the scheduler. A command which writes more than the entry size limit is
// rejected and not counted.
func (t *Tracker) OnSchedule(cmd *commands.Command) error {
	if err := commands.CheckTxnEntrySize(cmd, t.txnEntrySizeLimit); err != nil {
		log.Warn("reject transaction command", zap.Stringer("cmd", cmd), zap.Error(err))
		return err
	}

	tag := string(cmd.Tag())
	metrics.SchedCommandCounter.WithLabelValues(tag, string(cmd.PriorityTag())).Inc()
	if !cmd.Readonly() {
		metrics.SchedWriteBytesHistogram.WithLabelValues(tag).Observe(float64(cmd.WriteBytes()))
	}
	if cmd.NeedFlowControl() {
		metrics.SchedFlowControlCounter.WithLabelValues(tag).Inc()
	}
	log.Debug("schedule transaction command",
		zap.Stringer("cmd", cmd),
		zap.Bool("sys", cmd.IsSysCmd()),
		zap.Int("latches", len(cmd.WillWrite())))
	return nil
}

// OnFinish is called when a command has been executed. It reports whether the command was slow.
func (t *Tracker) OnFinish(cmd *commands.Command, elapsed time.Duration) bool {
	tag := string(cmd.Tag())
	metrics.SchedLatencyHistogram.WithLabelValues(tag).Observe(elapsed.Seconds())
	if t.slowLogThreshold <= 0 || elapsed < t.slowLogThreshold {
		return false
	}
	metrics.SchedSlowCommandCounter.WithLabelValues(tag).Inc()
	log.Warn("slow transaction command",
		zap.Stringer("cmd", cmd),
		zap.Stringer("ts", cmd.Ts()),
		zap.Duration("elapsed", elapsed))
	return true
}

func (t *Tracker) OnPointGet(get *commands.PointGetCommand) {
	metrics.PointGetCounter.WithLabelValues(string(get.Tag()), string(get.PriorityTag())).Inc()
}
