package mvcc

import (
	"fmt"

	"github.com/pingcap/kvproto/pkg/kvrpcpb"
)

// LockType is the kind of a lock, stored as a single byte.
type LockType = byte

const (
	LockTypePut         LockType = 'P'
	LockTypeDelete      LockType = 'D'
	LockTypeLock        LockType = 'L'
	LockTypePessimistic LockType = 'S'
)

// Lock marks the latest version of a key as provisional until the owning transaction commits or rolls back. At most
// one uncommitted transaction holds a lock on a key.
type Lock struct {
	LockType LockType
	// Primary is the raw primary key of the transaction. Its lock decides the fate of the whole transaction.
	Primary []byte
	// Ts is the start timestamp of the owning transaction.
	Ts TimeStamp
	// TTL in milliseconds, counted from the physical part of Ts.
	TTL        uint64
	ShortValue []byte
	// ForUpdateTs is non-zero for locks of pessimistic transactions.
	ForUpdateTs TimeStamp
	TxnSize     uint64
	MinCommitTs TimeStamp
}

// NewLock creates a lock with the commonly set fields.
func NewLock(lockType LockType, primary []byte, ts TimeStamp, ttl uint64) *Lock {
	return &Lock{
		LockType: lockType,
		Primary:  primary,
		Ts:       ts,
		TTL:      ttl,
	}
}

// KeyLock pairs a key with the lock found on it.
type KeyLock struct {
	Key  Key
	Lock *Lock
}

// IsExpired checks whether the lock's TTL has passed at currentTs. Only physical time is compared.
func (lock *Lock) IsExpired(currentTs TimeStamp) bool {
	locked, current := uint64(lock.Ts.Physical()), uint64(currentTs.Physical())
	return current > locked && current-locked > lock.TTL
}

func (lock *Lock) IsPessimistic() bool {
	return lock.LockType == LockTypePessimistic
}

// Info creates a LockInfo object from a Lock object for rawKey.
func (lock *Lock) Info(rawKey []byte) *kvrpcpb.LockInfo {
	info := kvrpcpb.LockInfo{}
	info.Key = rawKey
	info.LockVersion = uint64(lock.Ts)
	info.PrimaryLock = lock.Primary
	info.LockTtl = lock.TTL
	return &info
}

func (lock *Lock) String() string {
	return fmt.Sprintf("Lock{type: %c, primary: %X, ts: %v, ttl: %d, for_update_ts: %v, min_commit_ts: %v}",
		lock.LockType, lock.Primary, lock.Ts, lock.TTL, lock.ForUpdateTs, lock.MinCommitTs)
}
