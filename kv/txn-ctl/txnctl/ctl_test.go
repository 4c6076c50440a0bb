package txnctl

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ExecuteCommandC is used for test purpose.
func ExecuteCommandC(root *cobra.Command, args ...string) (c *cobra.Command, output []byte, err error) {
	buf := new(bytes.Buffer)
	root.SetOutput(buf)
	root.SetArgs(args)

	c, err = root.ExecuteC()
	return c, buf.Bytes(), err
}

func writeConfig(t *testing.T, content string) string {
	f, err := ioutil.TempFile("", "txn-ctl-*.toml")
	require.NoError(t, err)
	defer f.Close()
	_, err = f.WriteString(content)
	require.NoError(t, err)
	return f.Name()
}

func TestDescribePrewrite(t *testing.T) {
	_, output, err := ExecuteCommandC(GetRootCmd(), "describe", "prewrite",
		"--keys", "a,b", "--value", "xyz", "--start-ts", "10", "--priority", "low")
	require.NoError(t, err)

	out := string(output)
	assert.Contains(t, out, "tag: prewrite\n")
	assert.Contains(t, out, "ts: 10\n")
	assert.Contains(t, out, "priority: low\n")
	assert.Contains(t, out, "readonly: false\n")
	assert.Contains(t, out, "sys: false\n")
	assert.Contains(t, out, "flow control: true\n")
	assert.Contains(t, out, "write bytes: 24\n")
	assert.Contains(t, out, "latches: 2\n")
	assert.Contains(t, out, "admitted: true\n")
	assert.Contains(t, out, "desc: kv::command::prewrite mutations(2) @ 10 | ")
}

func TestDescribeReadonly(t *testing.T) {
	_, output, err := ExecuteCommandC(GetRootCmd(), "describe", "scan_lock", "--max-ts", "40", "--limit", "8")
	require.NoError(t, err)

	out := string(output)
	assert.Contains(t, out, "tag: scan_lock\n")
	assert.Contains(t, out, "ts: 40\n")
	assert.Contains(t, out, "readonly: true\n")
	assert.Contains(t, out, "sys: true\n")
	assert.Contains(t, out, "flow control: false\n")
	assert.Contains(t, out, "latches: 0\n")
	assert.Contains(t, out, "desc: kv::command::scan_lock None 8 @ 40 | ")
}

func TestDescribeEveryKind(t *testing.T) {
	kinds := []string{
		"prewrite", "acquire_pessimistic_lock", "commit", "cleanup", "rollback", "pessimistic_rollback",
		"txn_heart_beat", "check_txn_status", "scan_lock", "resolve_lock", "resolve_lock_lite", "delete_range",
		"pause", "key_mvcc", "start_ts_mvcc",
	}
	for _, kind := range kinds {
		_, output, err := ExecuteCommandC(GetRootCmd(), "describe", kind, "--keys", "k", "--start-ts", "5")
		require.NoError(t, err, kind)
		assert.Contains(t, string(output), fmt.Sprintf("tag: %s\n", kind))
	}
}

func TestDescribeErrors(t *testing.T) {
	_, _, err := ExecuteCommandC(GetRootCmd(), "describe", "get")
	assert.Error(t, err)

	_, _, err = ExecuteCommandC(GetRootCmd(), "describe", "commit", "--priority", "urgent")
	assert.Error(t, err)

	_, _, err = ExecuteCommandC(GetRootCmd(), "describe")
	assert.Error(t, err)
}

func TestDescribeEntryTooLarge(t *testing.T) {
	path := writeConfig(t, "[txn]\ntxn-entry-size-limit = \"16B\"\n")
	_, output, err := ExecuteCommandC(GetRootCmd(), "--config", path, "describe", "prewrite",
		"--keys", "a", "--value", strings.Repeat("v", 32))
	require.NoError(t, err)
	assert.Contains(t, string(output), "admitted: false (")
}

func TestDescribeLockWait(t *testing.T) {
	_, output, err := ExecuteCommandC(GetRootCmd(), "describe", "acquire_pessimistic_lock",
		"--keys", "k", "--start-ts", "10", "--for-update-ts", "12")
	require.NoError(t, err)
	assert.Contains(t, string(output), "lock wait: 1s\n")

	path := writeConfig(t, "[txn]\nwait-for-lock-timeout = \"250ms\"\n")
	_, output, err = ExecuteCommandC(GetRootCmd(), "-c", path, "describe", "acquire_pessimistic_lock", "--keys", "k")
	require.NoError(t, err)
	assert.Contains(t, string(output), "lock wait: 250ms\n")

	_, output, err = ExecuteCommandC(GetRootCmd(), "-c", path, "describe", "acquire_pessimistic_lock",
		"--keys", "k", "--wait-timeout", "40")
	require.NoError(t, err)
	assert.Contains(t, string(output), "lock wait: 40ms\n")

	_, output, err = ExecuteCommandC(GetRootCmd(), "describe", "acquire_pessimistic_lock",
		"--keys", "k", "--wait-timeout=-1")
	require.NoError(t, err)
	assert.Contains(t, string(output), "lock wait: none\n")

	_, output, err = ExecuteCommandC(GetRootCmd(), "describe", "commit", "--keys", "k")
	require.NoError(t, err)
	assert.NotContains(t, string(output), "lock wait")
}

func TestTSO(t *testing.T) {
	const (
		physicalShiftBits = 18
		logicalBits       = 0x3FFFF
	)

	ts := uint64(395181938313123110)
	_, output, err := ExecuteCommandC(GetRootCmd(), "tso", fmt.Sprint(ts))
	require.NoError(t, err)
	logicalTime := ts & logicalBits
	physical := ts >> physicalShiftBits
	physicalTime := time.Unix(int64(physical/1000), int64(physical%1000)*time.Millisecond.Nanoseconds())
	str := fmt.Sprintln("system: ", physicalTime) + fmt.Sprintln("logic: ", logicalTime)
	assert.Equal(t, str, string(output))

	_, _, err = ExecuteCommandC(GetRootCmd(), "tso", "not-a-ts")
	assert.Error(t, err)
}

func TestConfig(t *testing.T) {
	_, output, err := ExecuteCommandC(GetRootCmd(), "config")
	require.NoError(t, err)
	assert.Contains(t, string(output), `default-lock-ttl = "3s"`)

	path := writeConfig(t, "[txn]\ndefault-lock-ttl = \"7s\"\n")
	_, output, err = ExecuteCommandC(GetRootCmd(), "-c", path, "config")
	require.NoError(t, err)
	assert.Contains(t, string(output), `default-lock-ttl = "7s"`)

	_, _, err = ExecuteCommandC(GetRootCmd(), "-c", writeConfig(t, "[txn]\nbogus = 1\n"), "config")
	assert.Error(t, err)
}
