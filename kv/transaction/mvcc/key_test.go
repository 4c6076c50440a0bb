package mvcc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFromRaw(t *testing.T) {
	k := KeyFromRaw([]byte{42})
	assert.Equal(t, []byte{42, 0, 0, 0, 0, 0, 0, 0, 248}, k.AsEncoded())
	assert.Equal(t, 9, k.Len())
	assert.Equal(t, "2A00000000000000F8", k.String())

	raw, err := k.ToRaw()
	require.NoError(t, err)
	assert.Equal(t, []byte{42}, raw)

	assert.True(t, KeyFromEncoded(k.AsEncoded()).Equal(k))

	_, err = KeyFromEncoded([]byte{1, 2}).ToRaw()
	assert.Error(t, err)
}

func TestKeyOrder(t *testing.T) {
	assert.True(t, KeyFromRaw([]byte("a")).Compare(KeyFromRaw([]byte("b"))) < 0)
	assert.True(t, KeyFromRaw([]byte("a")).Compare(KeyFromRaw([]byte("a\x00"))) < 0)
	assert.Equal(t, 0, KeyFromRaw([]byte("k1")).Compare(KeyFromRaw([]byte("k1"))))
}

func TestKeyTs(t *testing.T) {
	k := KeyFromRaw([]byte("k1"))
	withTs := k.AppendTs(100)
	assert.Equal(t, k.Len()+8, withTs.Len())
	// The original key is not modified even though it has spare capacity.
	assert.Equal(t, KeyFromRaw([]byte("k1")), k)

	ts, err := withTs.DecodeTs()
	require.NoError(t, err)
	assert.Equal(t, TimeStamp(100), ts)

	truncated, err := withTs.TruncateTs()
	require.NoError(t, err)
	assert.True(t, truncated.Equal(k))

	raw, err := withTs.ToRaw()
	require.NoError(t, err)
	assert.Equal(t, []byte("k1"), raw)

	assert.True(t, k.AppendTs(200).Compare(k.AppendTs(100)) < 0)
}
