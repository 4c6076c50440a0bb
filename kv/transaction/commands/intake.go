package commands

import (
	"github.com/pingcap-incubator/tinytxn/kv/transaction/mvcc"
	"github.com/pingcap/errors"
	"github.com/pingcap/kvproto/pkg/kvrpcpb"
)

func keysFromRaw(rawKeys [][]byte) []mvcc.Key {
	keys := make([]mvcc.Key, 0, len(rawKeys))
	for _, k := range rawKeys {
		keys = append(keys, mvcc.KeyFromRaw(k))
	}
	return keys
}

func FromPrewriteRequest(req *kvrpcpb.PrewriteRequest) (*Command, error) {
	mutations := make([]mvcc.Mutation, 0, len(req.GetMutations()))
	for _, m := range req.GetMutations() {
		mutation, err := mvcc.MutationFromProto(m)
		if err != nil {
			return nil, err
		}
		mutations = append(mutations, mutation)
	}
	isPessimisticLock := req.GetIsPessimisticLock()
	if len(isPessimisticLock) != 0 && len(isPessimisticLock) != len(mutations) {
		return nil, errors.Errorf("prewrite has %d mutations but %d pessimistic lock flags",
			len(mutations), len(isPessimisticLock))
	}

	options := NewOptions(req.GetLockTtl(), req.GetSkipConstraintCheck(), false)
	options.ForUpdateTs = mvcc.TimeStamp(req.GetForUpdateTs())
	options.IsPessimisticLock = isPessimisticLock
	options.TxnSize = req.GetTxnSize()

	kind := NewPrewrite(mutations, req.GetPrimaryLock(), mvcc.TimeStamp(req.GetStartVersion()), options)
	return NewCommand(req.GetContext(), kind), nil
}

func FromPessimisticLockRequest(req *kvrpcpb.PessimisticLockRequest) (*Command, error) {
	keys := make([]PessimisticLockKey, 0, len(req.GetMutations()))
	for _, m := range req.GetMutations() {
		if m.GetOp() != kvrpcpb.Op_PessimisticLock {
			return nil, errors.WithStack(&mvcc.ErrUnsupportedMutation{Op: m.GetOp(), Key: mvcc.KeyFromRaw(m.GetKey())})
		}
		keys = append(keys, PessimisticLockKey{
			Key:            mvcc.KeyFromRaw(m.GetKey()),
			ShouldNotExist: m.GetAssertion() == kvrpcpb.Assertion_NotExist,
		})
	}

	options := NewOptions(req.GetLockTtl(), false, false)
	options.IsFirstLock = req.GetIsFirstLock()
	options.ForUpdateTs = mvcc.TimeStamp(req.GetForUpdateTs())

	kind := NewAcquirePessimisticLock(keys, req.GetPrimaryLock(), mvcc.TimeStamp(req.GetStartVersion()), options)
	return NewCommand(req.GetContext(), kind), nil
}

func FromCommitRequest(req *kvrpcpb.CommitRequest) (*Command, error) {
	kind := NewCommit(keysFromRaw(req.GetKeys()),
		mvcc.TimeStamp(req.GetStartVersion()), mvcc.TimeStamp(req.GetCommitVersion()))
	return NewCommand(req.GetContext(), kind), nil
}

func FromBatchRollbackRequest(req *kvrpcpb.BatchRollbackRequest) (*Command, error) {
	kind := NewRollback(keysFromRaw(req.GetKeys()), mvcc.TimeStamp(req.GetStartVersion()))
	return NewCommand(req.GetContext(), kind), nil
}

func FromPessimisticRollbackRequest(req *kvrpcpb.PessimisticRollbackRequest) (*Command, error) {
	kind := NewPessimisticRollback(keysFromRaw(req.GetKeys()),
		mvcc.TimeStamp(req.GetStartVersion()), mvcc.TimeStamp(req.GetForUpdateTs()))
	return NewCommand(req.GetContext(), kind), nil
}

func FromScanLockRequest(req *kvrpcpb.ScanLockRequest) (*Command, error) {
	var startKey mvcc.Key
	if len(req.GetStartKey()) > 0 {
		startKey = mvcc.KeyFromRaw(req.GetStartKey())
	}
	kind := NewScanLock(mvcc.TimeStamp(req.GetMaxVersion()), startKey, int(req.GetLimit()))
	return NewCommand(req.GetContext(), kind), nil
}

// FromResolveLockRequest builds a ResolveLockLite when the request names keys, and a scanning ResolveLock otherwise.
func FromResolveLockRequest(req *kvrpcpb.ResolveLockRequest) (*Command, error) {
	startTs := mvcc.TimeStamp(req.GetStartVersion())
	commitTs := mvcc.TimeStamp(req.GetCommitVersion())

	if len(req.GetKeys()) > 0 {
		if startTs.IsZero() {
			return nil, errors.New("resolve lock with keys needs a start version")
		}
		kind := NewResolveLockLite(startTs, commitTs, keysFromRaw(req.GetKeys()))
		return NewCommand(req.GetContext(), kind), nil
	}

	txnStatus := make(map[mvcc.TimeStamp]mvcc.TimeStamp)
	if !startTs.IsZero() {
		txnStatus[startTs] = commitTs
	}
	for _, info := range req.GetTxnInfos() {
		txnStatus[mvcc.TimeStamp(info.GetTxn())] = mvcc.TimeStamp(info.GetStatus())
	}
	if len(txnStatus) == 0 {
		return nil, errors.New("resolve lock names no transaction")
	}
	return NewCommand(req.GetContext(), NewResolveLock(txnStatus, nil, nil)), nil
}

func FromDeleteRangeRequest(req *kvrpcpb.DeleteRangeRequest) (*Command, error) {
	kind := NewDeleteRange(mvcc.KeyFromRaw(req.GetStartKey()), mvcc.KeyFromRaw(req.GetEndKey()))
	return NewCommand(req.GetContext(), kind), nil
}

func FromMvccGetByKeyRequest(req *kvrpcpb.MvccGetByKeyRequest) (*Command, error) {
	return NewCommand(req.GetContext(), NewMvccByKey(mvcc.KeyFromRaw(req.GetKey()))), nil
}

func FromMvccGetByStartTsRequest(req *kvrpcpb.MvccGetByStartTsRequest) (*Command, error) {
	return NewCommand(req.GetContext(), NewMvccByStartTs(mvcc.TimeStamp(req.GetStartTs()))), nil
}
