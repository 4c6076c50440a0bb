package mvcc

import "strconv"

const (
	// physicalShiftBits is the number of low bits holding the logical part of a timestamp.
	physicalShiftBits = 18
	logicalMask       = (1 << physicalShiftBits) - 1
)

// TimeStamp is a logical clock value issued by the timestamp oracle. The high bits carry physical time in milliseconds,
// the low 18 bits a logical counter. Zero means "not applicable".
type TimeStamp uint64

// TsMax is the largest possible timestamp.
const TsMax = TimeStamp(^uint64(0))

// ComposeTs builds a timestamp from a physical time in milliseconds and a logical counter.
func ComposeTs(physical, logical int64) TimeStamp {
	return TimeStamp(uint64(physical)<<physicalShiftBits | uint64(logical)&logicalMask)
}

// Physical returns the physical time in milliseconds.
func (ts TimeStamp) Physical() int64 {
	return int64(ts >> physicalShiftBits)
}

// Logical returns the logical counter.
func (ts TimeStamp) Logical() int64 {
	return int64(ts & logicalMask)
}

func (ts TimeStamp) IsZero() bool {
	return ts == 0
}

// Next returns the smallest timestamp greater than ts.
func (ts TimeStamp) Next() TimeStamp {
	if ts == TsMax {
		return ts
	}
	return ts + 1
}

// Prev returns the greatest timestamp smaller than ts.
func (ts TimeStamp) Prev() TimeStamp {
	if ts == 0 {
		return ts
	}
	return ts - 1
}

func (ts TimeStamp) String() string {
	return strconv.FormatUint(uint64(ts), 10)
}
