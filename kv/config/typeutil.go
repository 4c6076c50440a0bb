package config

import (
	"fmt"
	"time"

	"github.com/docker/go-units"
	"github.com/pingcap/errors"
)

// Duration is a wrapper of time.Duration for TOML.
type Duration struct {
	time.Duration
}

func NewDuration(duration time.Duration) Duration {
	return Duration{Duration: duration}
}

// MarshalText returns the duration as a string such as "1s".
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses a TOML string into a duration.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return errors.WithStack(err)
}

// ByteSize is a retype uint64 for TOML. It accepts human readable sizes such as "8MiB".
type ByteSize uint64

func (b ByteSize) MarshalText() ([]byte, error) {
	return []byte(units.BytesSize(float64(b))), nil
}

func (b *ByteSize) UnmarshalText(text []byte) error {
	v, err := units.RAMInBytes(string(text))
	if err != nil {
		return errors.WithStack(err)
	}
	if v < 0 {
		return errors.Errorf("negative byte size %q", text)
	}
	*b = ByteSize(v)
	return nil
}

func (b ByteSize) String() string {
	return fmt.Sprintf("%d", uint64(b))
}
