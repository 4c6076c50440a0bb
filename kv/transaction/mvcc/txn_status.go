package mvcc

import "fmt"

// TxnStatusKind tells which state a transaction is in.
type TxnStatusKind int

const (
	// TxnStatusLocked means the primary lock still exists.
	TxnStatusLocked TxnStatusKind = iota
	TxnStatusCommitted
	TxnStatusRolledBack
)

// TxnStatus is the state of a transaction as seen from its primary key.
type TxnStatus struct {
	Kind TxnStatusKind
	// TTL and MinCommitTs are set when Kind is TxnStatusLocked.
	TTL         uint64
	MinCommitTs TimeStamp
	// CommitTs is set when Kind is TxnStatusCommitted.
	CommitTs TimeStamp
}

func Uncommitted(ttl uint64, minCommitTs TimeStamp) TxnStatus {
	return TxnStatus{Kind: TxnStatusLocked, TTL: ttl, MinCommitTs: minCommitTs}
}

func Committed(commitTs TimeStamp) TxnStatus {
	return TxnStatus{Kind: TxnStatusCommitted, CommitTs: commitTs}
}

func RolledBack() TxnStatus {
	return TxnStatus{Kind: TxnStatusRolledBack}
}

func (s TxnStatus) String() string {
	switch s.Kind {
	case TxnStatusLocked:
		return fmt.Sprintf("locked(ttl: %d, min_commit_ts: %v)", s.TTL, s.MinCommitTs)
	case TxnStatusCommitted:
		return fmt.Sprintf("committed(%v)", s.CommitTs)
	case TxnStatusRolledBack:
		return "rolled_back"
	}
	return fmt.Sprintf("unknown(%d)", s.Kind)
}
