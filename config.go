package eventhook

import (
	"fmt"
	"time"
)

// DefaultPollInterval is how often a waiting caller re-checks a hook's call count.
const DefaultPollInterval = 50 * time.Millisecond

// Feeder populates a configuration structure from some source.
// The feeders package provides YAML, TOML and environment implementations.
type Feeder interface {
	Feed(structure interface{}) error
}

// KeyFeeder can populate a configuration structure from one section of its source.
type KeyFeeder interface {
	FeedKey(key string, target interface{}) error
}

// Config tunes how hooks wait and log.
type Config struct {
	// WaitTimeout bounds WaitForCall. Zero waits until the context is done.
	WaitTimeout time.Duration `yaml:"waitTimeout" toml:"wait_timeout" env:"WAIT_TIMEOUT"`

	// PollInterval is the longest a waiter sleeps between two checks of the call count.
	PollInterval time.Duration `yaml:"pollInterval" toml:"poll_interval" env:"POLL_INTERVAL"`

	// LogNotifications logs every recorded notification at debug level.
	LogNotifications bool `yaml:"logNotifications" toml:"log_notifications" env:"LOG_NOTIFICATIONS"`
}

// DefaultConfig returns an unbounded wait polled every DefaultPollInterval.
func DefaultConfig() Config {
	return Config{
		PollInterval: DefaultPollInterval,
	}
}

// Validate checks the config for values hooks cannot work with.
func (c Config) Validate() error {
	if c.WaitTimeout < 0 {
		return fmt.Errorf("%w: wait timeout %s is negative", ErrInvalidConfig, c.WaitTimeout)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("%w: poll interval %s must be positive", ErrInvalidConfig, c.PollInterval)
	}
	return nil
}

// LoadConfig starts from DefaultConfig, applies each feeder in order and
// validates the result.
func LoadConfig(feeders ...Feeder) (Config, error) {
	cfg := DefaultConfig()
	for _, f := range feeders {
		if err := f.Feed(&cfg); err != nil {
			return Config{}, fmt.Errorf("failed to feed hook config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigSection is LoadConfig for feeders reading a named section, such as
// an `eventhook:` block in a larger YAML test config.
func LoadConfigSection(key string, feeders ...KeyFeeder) (Config, error) {
	cfg := DefaultConfig()
	for _, f := range feeders {
		if err := f.FeedKey(key, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to feed hook config section %q: %w", key, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
