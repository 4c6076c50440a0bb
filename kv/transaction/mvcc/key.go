package mvcc

import (
	"bytes"
	"fmt"

	"github.com/pingcap-incubator/tinytxn/kv/util/codec"
	"github.com/pingcap/errors"
)

// Key is a user key in its memcomparable encoded form. Ordering and equality are byte-wise over the encoded bytes,
// which matches the ordering of the raw keys.
type Key []byte

// KeyFromRaw encodes a raw user key.
func KeyFromRaw(raw []byte) Key {
	return Key(codec.EncodeBytes(raw))
}

// KeyFromEncoded wraps bytes which are already encoded.
func KeyFromEncoded(encoded []byte) Key {
	return Key(encoded)
}

// AsEncoded returns the encoded bytes. The result must not be modified.
func (k Key) AsEncoded() []byte {
	return []byte(k)
}

// ToRaw decodes the raw user key. A key carrying a timestamp suffix decodes to its user key part.
func (k Key) ToRaw() ([]byte, error) {
	_, raw, err := codec.DecodeBytes(k)
	if err != nil {
		return nil, errors.Annotatef(err, "decode key %v", k)
	}
	return raw, nil
}

// Len is the length of the encoded key.
func (k Key) Len() int {
	return len(k)
}

// AppendTs returns a new key with ts appended. k is left untouched.
func (k Key) AppendTs(ts TimeStamp) Key {
	buf := make([]byte, len(k), len(k)+codec.TsLen)
	copy(buf, k)
	return Key(codec.AppendTs(buf, uint64(ts)))
}

// DecodeTs returns the timestamp suffix of a key built by AppendTs.
func (k Key) DecodeTs() (TimeStamp, error) {
	_, ts, err := codec.SplitTs(k)
	return TimeStamp(ts), err
}

// TruncateTs strips the timestamp suffix of a key built by AppendTs.
func (k Key) TruncateTs() (Key, error) {
	key, _, err := codec.SplitTs(k)
	if err != nil {
		return nil, err
	}
	return Key(key), nil
}

func (k Key) Compare(other Key) int {
	return bytes.Compare(k, other)
}

func (k Key) Equal(other Key) bool {
	return bytes.Equal(k, other)
}

// String renders the encoded bytes as upper-case hex.
func (k Key) String() string {
	return fmt.Sprintf("%X", []byte(k))
}
