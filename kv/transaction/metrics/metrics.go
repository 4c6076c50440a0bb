package metrics

import "github.com/prometheus/client_golang/prometheus"

// CommandKind is the metrics label of a transaction command. The values are part of the dashboards' contract and must
// not change.
type CommandKind string

const (
	CommandKindPrewrite               CommandKind = "prewrite"
	CommandKindAcquirePessimisticLock CommandKind = "acquire_pessimistic_lock"
	CommandKindCommit                 CommandKind = "commit"
	CommandKindCleanup                CommandKind = "cleanup"
	CommandKindRollback               CommandKind = "rollback"
	CommandKindPessimisticRollback    CommandKind = "pessimistic_rollback"
	CommandKindTxnHeartBeat           CommandKind = "txn_heart_beat"
	CommandKindCheckTxnStatus         CommandKind = "check_txn_status"
	CommandKindScanLock               CommandKind = "scan_lock"
	CommandKindResolveLock            CommandKind = "resolve_lock"
	CommandKindResolveLockLite        CommandKind = "resolve_lock_lite"
	CommandKindDeleteRange            CommandKind = "delete_range"
	CommandKindPause                  CommandKind = "pause"
	CommandKindKeyMvcc                CommandKind = "key_mvcc"
	CommandKindStartTsMvcc            CommandKind = "start_ts_mvcc"

	// Point reads bypass the scheduler but share the label space.
	CommandKindGet    CommandKind = "get"
	CommandKindRawGet CommandKind = "raw_get"
)

// CommandPriority is the metrics label of a command's priority.
type CommandPriority string

const (
	CommandPriorityLow    CommandPriority = "low"
	CommandPriorityNormal CommandPriority = "normal"
	CommandPriorityHigh   CommandPriority = "high"
)

var (
	SchedCommandCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tinykv",
			Subsystem: "scheduler",
			Name:      "commands_total",
			Help:      "Total number of transaction commands received.",
		}, []string{"type", "priority"})

	SchedWriteBytesHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tinykv",
			Subsystem: "scheduler",
			Name:      "write_bytes",
			Help:      "Bucketed histogram of estimated bytes written by a command.",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 10),
		}, []string{"type"})

	SchedFlowControlCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tinykv",
			Subsystem: "scheduler",
			Name:      "flow_control_total",
			Help:      "Total number of commands subject to flow control.",
		}, []string{"type"})

	SchedLatencyHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tinykv",
			Subsystem: "scheduler",
			Name:      "command_duration_seconds",
			Help:      "Bucketed histogram of command execution duration.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 20),
		}, []string{"type"})

	SchedSlowCommandCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tinykv",
			Subsystem: "scheduler",
			Name:      "slow_commands_total",
			Help:      "Total number of commands slower than the slow log threshold.",
		}, []string{"type"})

	PointGetCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tinykv",
			Subsystem: "storage",
			Name:      "point_get_total",
			Help:      "Total number of point reads.",
		}, []string{"type", "priority"})
)

func init() {
	prometheus.MustRegister(SchedCommandCounter)
	prometheus.MustRegister(SchedWriteBytesHistogram)
	prometheus.MustRegister(SchedFlowControlCounter)
	prometheus.MustRegister(SchedLatencyHistogram)
	prometheus.MustRegister(SchedSlowCommandCounter)
	prometheus.MustRegister(PointGetCounter)
}
