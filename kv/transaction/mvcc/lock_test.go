package mvcc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockIsExpired(t *testing.T) {
	lock := NewLock(LockTypePut, []byte("pk"), ComposeTs(1000, 5), 100)
	assert.False(t, lock.IsExpired(ComposeTs(1000, 0)))
	assert.False(t, lock.IsExpired(ComposeTs(1100, 0)))
	assert.False(t, lock.IsExpired(ComposeTs(1100, 100)))
	assert.True(t, lock.IsExpired(ComposeTs(1101, 0)))
	assert.False(t, lock.IsPessimistic())

	forever := NewLock(LockTypePut, []byte("pk"), ComposeTs(1000, 0), math.MaxUint64)
	assert.False(t, forever.IsExpired(ComposeTs(1<<40, 0)))
	assert.False(t, forever.IsExpired(TsMax))
}

func TestLockInfo(t *testing.T) {
	lock := NewLock(LockTypePessimistic, []byte("pk"), 100, 3000)
	info := lock.Info([]byte("k1"))
	assert.Equal(t, []byte("k1"), info.Key)
	assert.Equal(t, []byte("pk"), info.PrimaryLock)
	assert.Equal(t, uint64(100), info.LockVersion)
	assert.Equal(t, uint64(3000), info.LockTtl)
	assert.True(t, lock.IsPessimistic())
	assert.Contains(t, lock.String(), "type: S")
}

func TestTxnStatus(t *testing.T) {
	assert.Equal(t, "locked(ttl: 10, min_commit_ts: 5)", Uncommitted(10, 5).String())
	assert.Equal(t, "committed(101)", Committed(101).String())
	assert.Equal(t, "rolled_back", RolledBack().String())
	assert.Equal(t, TxnStatusCommitted, Committed(101).Kind)
}
