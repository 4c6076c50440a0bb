package command

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pingcap-incubator/tinytxn/kv/transaction/commands"
	"github.com/pingcap-incubator/tinytxn/kv/transaction/metrics"
	"github.com/pingcap-incubator/tinytxn/kv/transaction/mvcc"
	"github.com/pingcap-incubator/tinytxn/kv/transaction/tracker"
	"github.com/pingcap/errors"
	"github.com/pingcap/kvproto/pkg/kvrpcpb"
	"github.com/spf13/cobra"
)

type describeFlags struct {
	keys          []string
	primary       string
	value         string
	startKey      string
	endKey        string
	priority      string
	startTs       uint64
	commitTs      uint64
	forUpdateTs   uint64
	callerStartTs uint64
	currentTs     uint64
	maxTs         uint64
	ttl           uint64
	duration      uint64
	waitTimeout   int64
	limit         int
}

type kindBuilder func(f *describeFlags, cfgTTL uint64) commands.CommandKind

var kindBuilders = map[metrics.CommandKind]kindBuilder{
	metrics.CommandKindPrewrite: func(f *describeFlags, cfgTTL uint64) commands.CommandKind {
		mutations := make([]mvcc.Mutation, 0, len(f.keys))
		for _, k := range f.keys {
			mutations = append(mutations, &mvcc.MutationPut{Key: mvcc.KeyFromRaw([]byte(k)), Value: []byte(f.value)})
		}
		options := commands.NewOptions(f.lockTTL(cfgTTL), false, false)
		options.ForUpdateTs = mvcc.TimeStamp(f.forUpdateTs)
		return commands.NewPrewrite(mutations, f.primaryKey(), mvcc.TimeStamp(f.startTs), options)
	},
	metrics.CommandKindAcquirePessimisticLock: func(f *describeFlags, cfgTTL uint64) commands.CommandKind {
		keys := make([]commands.PessimisticLockKey, 0, len(f.keys))
		for _, k := range f.encodedKeys() {
			keys = append(keys, commands.PessimisticLockKey{Key: k})
		}
		options := commands.NewOptions(f.lockTTL(cfgTTL), false, false)
		options.ForUpdateTs = mvcc.TimeStamp(f.forUpdateTs)
		options.WaitTimeout = f.waitTimeout
		return commands.NewAcquirePessimisticLock(keys, f.primaryKey(), mvcc.TimeStamp(f.startTs), options)
	},
	metrics.CommandKindCommit: func(f *describeFlags, _ uint64) commands.CommandKind {
		return commands.NewCommit(f.encodedKeys(), mvcc.TimeStamp(f.startTs), mvcc.TimeStamp(f.commitTs))
	},
	metrics.CommandKindCleanup: func(f *describeFlags, _ uint64) commands.CommandKind {
		return commands.NewCleanup(mvcc.KeyFromRaw(f.primaryKey()), mvcc.TimeStamp(f.startTs), mvcc.TimeStamp(f.currentTs))
	},
	metrics.CommandKindRollback: func(f *describeFlags, _ uint64) commands.CommandKind {
		return commands.NewRollback(f.encodedKeys(), mvcc.TimeStamp(f.startTs))
	},
	metrics.CommandKindPessimisticRollback: func(f *describeFlags, _ uint64) commands.CommandKind {
		return commands.NewPessimisticRollback(f.encodedKeys(), mvcc.TimeStamp(f.startTs), mvcc.TimeStamp(f.forUpdateTs))
	},
	metrics.CommandKindTxnHeartBeat: func(f *describeFlags, cfgTTL uint64) commands.CommandKind {
		return commands.NewTxnHeartBeat(mvcc.KeyFromRaw(f.primaryKey()), mvcc.TimeStamp(f.startTs), f.lockTTL(cfgTTL))
	},
	metrics.CommandKindCheckTxnStatus: func(f *describeFlags, _ uint64) commands.CommandKind {
		return commands.NewCheckTxnStatus(mvcc.KeyFromRaw(f.primaryKey()), mvcc.TimeStamp(f.startTs),
			mvcc.TimeStamp(f.callerStartTs), mvcc.TimeStamp(f.currentTs), false)
	},
	metrics.CommandKindScanLock: func(f *describeFlags, _ uint64) commands.CommandKind {
		return commands.NewScanLock(mvcc.TimeStamp(f.maxTs), f.optionalKey(f.startKey), f.limit)
	},
	metrics.CommandKindResolveLock: func(f *describeFlags, _ uint64) commands.CommandKind {
		txnStatus := map[mvcc.TimeStamp]mvcc.TimeStamp{mvcc.TimeStamp(f.startTs): mvcc.TimeStamp(f.commitTs)}
		keyLocks := make([]mvcc.KeyLock, 0, len(f.keys))
		for _, k := range f.keys {
			keyLocks = append(keyLocks, mvcc.KeyLock{
				Key:  mvcc.KeyFromRaw([]byte(k)),
				Lock: mvcc.NewLock(mvcc.LockTypePut, f.primaryKey(), mvcc.TimeStamp(f.startTs), 0),
			})
		}
		return commands.NewResolveLock(txnStatus, f.optionalKey(f.startKey), keyLocks)
	},
	metrics.CommandKindResolveLockLite: func(f *describeFlags, _ uint64) commands.CommandKind {
		return commands.NewResolveLockLite(mvcc.TimeStamp(f.startTs), mvcc.TimeStamp(f.commitTs), f.encodedKeys())
	},
	metrics.CommandKindDeleteRange: func(f *describeFlags, _ uint64) commands.CommandKind {
		return commands.NewDeleteRange(mvcc.KeyFromRaw([]byte(f.startKey)), mvcc.KeyFromRaw([]byte(f.endKey)))
	},
	metrics.CommandKindPause: func(f *describeFlags, _ uint64) commands.CommandKind {
		return commands.NewPause(f.encodedKeys(), f.duration)
	},
	metrics.CommandKindKeyMvcc: func(f *describeFlags, _ uint64) commands.CommandKind {
		return commands.NewMvccByKey(mvcc.KeyFromRaw(f.primaryKey()))
	},
	metrics.CommandKindStartTsMvcc: func(f *describeFlags, _ uint64) commands.CommandKind {
		return commands.NewMvccByStartTs(mvcc.TimeStamp(f.startTs))
	},
}

func (f *describeFlags) encodedKeys() []mvcc.Key {
	keys := make([]mvcc.Key, 0, len(f.keys))
	for _, k := range f.keys {
		keys = append(keys, mvcc.KeyFromRaw([]byte(k)))
	}
	return keys
}

// primaryKey defaults to the first key.
func (f *describeFlags) primaryKey() []byte {
	if f.primary == "" && len(f.keys) > 0 {
		return []byte(f.keys[0])
	}
	return []byte(f.primary)
}

func (f *describeFlags) optionalKey(raw string) mvcc.Key {
	if raw == "" {
		return nil
	}
	return mvcc.KeyFromRaw([]byte(raw))
}

func (f *describeFlags) lockTTL(cfgTTL uint64) uint64 {
	if f.ttl == 0 {
		return cfgTTL
	}
	return f.ttl
}

func parsePriority(priority string) (kvrpcpb.CommandPri, error) {
	switch strings.ToLower(priority) {
	case "low":
		return kvrpcpb.CommandPri_Low, nil
	case "", "normal":
		return kvrpcpb.CommandPri_Normal, nil
	case "high":
		return kvrpcpb.CommandPri_High, nil
	}
	return kvrpcpb.CommandPri_Normal, errors.Errorf("unknown priority %q", priority)
}

func kindNames() []string {
	names := make([]string, 0, len(kindBuilders))
	for name := range kindBuilders {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}

// NewDescribeCommand returns the describe subcommand, which builds a command from flags and prints how the scheduler
// classifies it.
func NewDescribeCommand() *cobra.Command {
	f := &describeFlags{}
	cmd := &cobra.Command{
		Use:   "describe <kind>",
		Short: "build a transaction command and show its classification",
		Long:  "build a transaction command and show its classification. kinds: " + strings.Join(kindNames(), ", "),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return describeCommandFunc(cmd, args, f)
		},
	}
	cmd.Flags().StringSliceVar(&f.keys, "keys", nil, "raw keys the command touches")
	cmd.Flags().StringVar(&f.primary, "primary", "", "raw primary key, the first key by default")
	cmd.Flags().StringVar(&f.value, "value", "", "value of each prewrite put")
	cmd.Flags().StringVar(&f.startKey, "start-key", "", "raw start key of a scan or range")
	cmd.Flags().StringVar(&f.endKey, "end-key", "", "raw end key of a range")
	cmd.Flags().StringVar(&f.priority, "priority", "normal", "low, normal or high")
	cmd.Flags().Uint64Var(&f.startTs, "start-ts", 0, "start ts of the transaction")
	cmd.Flags().Uint64Var(&f.commitTs, "commit-ts", 0, "commit ts, 0 for a rollback")
	cmd.Flags().Uint64Var(&f.forUpdateTs, "for-update-ts", 0, "for update ts of a pessimistic transaction")
	cmd.Flags().Uint64Var(&f.callerStartTs, "caller-start-ts", 0, "start ts of the transaction checking status")
	cmd.Flags().Uint64Var(&f.currentTs, "current-ts", 0, "current ts for TTL checks")
	cmd.Flags().Uint64Var(&f.maxTs, "max-ts", 0, "max ts of a lock scan")
	cmd.Flags().Uint64Var(&f.ttl, "ttl", 0, "lock ttl in ms, the configured default if 0")
	cmd.Flags().Uint64Var(&f.duration, "duration", 0, "pause duration in ms")
	cmd.Flags().Int64Var(&f.waitTimeout, "wait-timeout", 0, "lock wait in ms, 0 for the configured default, negative for no wait")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "lock scan limit, 0 for unlimited")
	return cmd
}

func describeCommandFunc(cmd *cobra.Command, args []string, f *describeFlags) error {
	build, ok := kindBuilders[metrics.CommandKind(args[0])]
	if !ok {
		return errors.Errorf("unknown command kind %q, expect one of %s", args[0], strings.Join(kindNames(), ", "))
	}
	priority, err := parsePriority(f.priority)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	txnCmd := commands.NewCommand(&kvrpcpb.Context{Priority: priority}, build(f, cfg.Txn.DefaultLockTTLMillis()))
	admitErr := tracker.NewTracker(&cfg.Txn).OnSchedule(txnCmd)
	w := cmd.OutOrStdout()
	printCommand(w, txnCmd, admitErr)
	if lock, ok := txnCmd.Kind.(*commands.AcquirePessimisticLock); ok {
		if wait, ok := lock.Options.LockWaitTimeout(cfg.Txn.WaitForLockTimeout.Duration); ok {
			fmt.Fprintf(w, "lock wait: %v\n", wait)
		} else {
			fmt.Fprintln(w, "lock wait: none")
		}
	}
	return nil
}

func printCommand(w io.Writer, cmd *commands.Command, admitErr error) {
	fmt.Fprintf(w, "tag: %s\n", cmd.Tag())
	fmt.Fprintf(w, "ts: %v\n", cmd.Ts())
	fmt.Fprintf(w, "priority: %s\n", cmd.PriorityTag())
	fmt.Fprintf(w, "readonly: %t\n", cmd.Readonly())
	fmt.Fprintf(w, "sys: %t\n", cmd.IsSysCmd())
	fmt.Fprintf(w, "flow control: %t\n", cmd.NeedFlowControl())
	fmt.Fprintf(w, "write bytes: %d\n", cmd.WriteBytes())
	fmt.Fprintf(w, "latches: %d\n", len(cmd.WillWrite()))
	if admitErr != nil {
		fmt.Fprintf(w, "admitted: false (%v)\n", admitErr)
	} else {
		fmt.Fprintln(w, "admitted: true")
	}
	fmt.Fprintf(w, "desc: %s\n", cmd)
}
