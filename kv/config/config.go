package config

import (
	"bytes"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	KB uint64 = 1024
	MB uint64 = 1024 * 1024
)

const (
	defaultLockTTL            = 3000 * time.Millisecond
	defaultWaitForLockTimeout = time.Second
	defaultTxnEntrySizeLimit  = 8 * MB
	defaultSlowLogThreshold   = time.Second
	defaultLogLevel           = "info"
)

// Config is the transaction layer configuration.
type Config struct {
	Log log.Config `toml:"log" json:"log"`
	Txn TxnConfig  `toml:"txn" json:"txn"`

	logger   *zap.Logger
	logProps *log.ZapProperties
}

type TxnConfig struct {
	// DefaultLockTTL is used when a write request does not carry a lock TTL.
	DefaultLockTTL Duration `toml:"default-lock-ttl" json:"default-lock-ttl"`
	// WaitForLockTimeout is how long a pessimistic lock waits when the request does not say.
	WaitForLockTimeout Duration `toml:"wait-for-lock-timeout" json:"wait-for-lock-timeout"`
	// TxnEntrySizeLimit caps the estimated bytes one command may write. 0 means no limit.
	TxnEntrySizeLimit ByteSize `toml:"txn-entry-size-limit" json:"txn-entry-size-limit"`
	// Commands slower than SlowLogThreshold are logged.
	SlowLogThreshold Duration `toml:"slow-log-threshold" json:"slow-log-threshold"`
	// SchedulerWriteRateLimit is the bytes per second flow controlled commands may write. 0 means no limit.
	SchedulerWriteRateLimit ByteSize `toml:"scheduler-write-rate-limit" json:"scheduler-write-rate-limit"`
}

func getLogLevel() (logLevel string) {
	logLevel = defaultLogLevel
	if l := os.Getenv("LOG_LEVEL"); len(l) != 0 {
		logLevel = l
	}
	return
}

func NewDefaultConfig() *Config {
	c := &Config{}
	c.Log.Level = getLogLevel()
	c.Txn.TxnEntrySizeLimit = ByteSize(defaultTxnEntrySizeLimit)
	c.adjust()
	return c
}

func NewTestConfig() *Config {
	c := &Config{
		Txn: TxnConfig{
			DefaultLockTTL:     NewDuration(100 * time.Millisecond),
			WaitForLockTimeout: NewDuration(50 * time.Millisecond),
			TxnEntrySizeLimit:  ByteSize(defaultTxnEntrySizeLimit),
			SlowLogThreshold:   NewDuration(10 * time.Millisecond),
		},
	}
	c.Log.Level = getLogLevel()
	c.adjust()
	return c
}

// LoadConfig reads a TOML file and fills in defaults for everything it leaves out.
func LoadConfig(path string) (*Config, error) {
	c := &Config{}
	meta, err := toml.DecodeFile(path, c)
	if err != nil {
		return nil, errors.Annotatef(err, "load config %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Errorf("config %s contains unknown items %v", path, undecoded)
	}
	if !meta.IsDefined("txn", "txn-entry-size-limit") {
		c.Txn.TxnEntrySizeLimit = ByteSize(defaultTxnEntrySizeLimit)
	}
	c.adjust()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func adjustString(v *string, defValue string) {
	if len(*v) == 0 {
		*v = defValue
	}
}

func adjustDuration(v *Duration, defValue time.Duration) {
	if v.Duration == 0 {
		v.Duration = defValue
	}
}

func (c *Config) adjust() {
	adjustString(&c.Log.Level, defaultLogLevel)
	c.Txn.adjust()
}

func (c *TxnConfig) adjust() {
	adjustDuration(&c.DefaultLockTTL, defaultLockTTL)
	adjustDuration(&c.WaitForLockTimeout, defaultWaitForLockTimeout)
	adjustDuration(&c.SlowLogThreshold, defaultSlowLogThreshold)
}

func (c *Config) Validate() error {
	if c.Txn.DefaultLockTTL.Duration < time.Millisecond {
		return errors.Errorf("default-lock-ttl must be at least 1ms, got %v", c.Txn.DefaultLockTTL)
	}
	if c.Txn.WaitForLockTimeout.Duration < 0 {
		return errors.Errorf("wait-for-lock-timeout must not be negative, got %v", c.Txn.WaitForLockTimeout)
	}
	if c.Txn.SlowLogThreshold.Duration < 0 {
		return errors.Errorf("slow-log-threshold must not be negative, got %v", c.Txn.SlowLogThreshold)
	}
	return nil
}

// DefaultLockTTLMillis returns the default lock TTL in the unit locks store it.
func (c *TxnConfig) DefaultLockTTLMillis() uint64 {
	return uint64(c.DefaultLockTTL.Duration / time.Millisecond)
}

func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return "<nil>"
	}
	return buf.String()
}

// SetupLogger initializes the global logger from the [log] section.
func (c *Config) SetupLogger() error {
	lg, p, err := log.InitLogger(&c.Log, zap.AddStacktrace(zapcore.FatalLevel))
	if err != nil {
		return errors.Trace(err)
	}
	c.logger = lg
	c.logProps = p
	log.ReplaceGlobals(lg, p)
	return nil
}

func (c *Config) GetZapLogger() *zap.Logger {
	return c.logger
}

func (c *Config) GetZapLogProperties() *log.ZapProperties {
	return c.logProps
}
