package mvcc

import (
	"fmt"

	"github.com/pingcap/errors"
	"github.com/pingcap/kvproto/pkg/kvrpcpb"
)

// Mutation is one change staged by a prewrite. The set of mutations is closed: MutationPut, MutationInsert,
// MutationDelete and MutationLock are the only implementations.
type Mutation interface {
	// MutationKey is the key the mutation applies to.
	MutationKey() Key
	// Op is the wire operation of the mutation.
	Op() kvrpcpb.Op
	// Size is the encoded key length plus the value length for mutations which carry a value.
	Size() int
	fmt.Stringer

	isMutation()
}

// MutationPut writes a value.
type MutationPut struct {
	Key   Key
	Value []byte
}

// MutationInsert writes a value and requires that the key does not exist yet.
type MutationInsert struct {
	Key   Key
	Value []byte
}

// MutationDelete deletes the key.
type MutationDelete struct {
	Key Key
}

// MutationLock locks the key without changing it.
type MutationLock struct {
	Key Key
}

func (m *MutationPut) MutationKey() Key    { return m.Key }
func (m *MutationInsert) MutationKey() Key { return m.Key }
func (m *MutationDelete) MutationKey() Key { return m.Key }
func (m *MutationLock) MutationKey() Key   { return m.Key }

func (m *MutationPut) Op() kvrpcpb.Op    { return kvrpcpb.Op_Put }
func (m *MutationInsert) Op() kvrpcpb.Op { return kvrpcpb.Op_Insert }
func (m *MutationDelete) Op() kvrpcpb.Op { return kvrpcpb.Op_Del }
func (m *MutationLock) Op() kvrpcpb.Op   { return kvrpcpb.Op_Lock }

func (m *MutationPut) Size() int    { return m.Key.Len() + len(m.Value) }
func (m *MutationInsert) Size() int { return m.Key.Len() + len(m.Value) }
func (m *MutationDelete) Size() int { return m.Key.Len() }
func (m *MutationLock) Size() int   { return m.Key.Len() }

func (m *MutationPut) String() string    { return fmt.Sprintf("Put(%v)", m.Key) }
func (m *MutationInsert) String() string { return fmt.Sprintf("Insert(%v)", m.Key) }
func (m *MutationDelete) String() string { return fmt.Sprintf("Delete(%v)", m.Key) }
func (m *MutationLock) String() string   { return fmt.Sprintf("Lock(%v)", m.Key) }

func (*MutationPut) isMutation()    {}
func (*MutationInsert) isMutation() {}
func (*MutationDelete) isMutation() {}
func (*MutationLock) isMutation()   {}

// LockTypeOf returns the kind of lock a prewrite of m leaves behind.
func LockTypeOf(m Mutation) LockType {
	switch m.(type) {
	case *MutationPut, *MutationInsert:
		return LockTypePut
	case *MutationDelete:
		return LockTypeDelete
	default:
		return LockTypeLock
	}
}

// MutationFromProto converts a wire mutation, encoding its raw key.
func MutationFromProto(m *kvrpcpb.Mutation) (Mutation, error) {
	key := KeyFromRaw(m.GetKey())
	switch m.GetOp() {
	case kvrpcpb.Op_Put:
		return &MutationPut{Key: key, Value: m.GetValue()}, nil
	case kvrpcpb.Op_Insert:
		return &MutationInsert{Key: key, Value: m.GetValue()}, nil
	case kvrpcpb.Op_Del:
		return &MutationDelete{Key: key}, nil
	case kvrpcpb.Op_Lock:
		return &MutationLock{Key: key}, nil
	}
	return nil, errors.WithStack(&ErrUnsupportedMutation{Op: m.GetOp(), Key: key})
}
