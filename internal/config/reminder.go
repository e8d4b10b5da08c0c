package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// ReminderConfig controls the subscription-expiry reminder scan.
type ReminderConfig struct {
	WindowDays  int           `mapstructure:"windowDays"`
	RunInterval time.Duration `mapstructure:"runInterval"`
	JobTimeout  time.Duration `mapstructure:"jobTimeout"`
}

func DefaultReminderConfig() ReminderConfig {
	return ReminderConfig{
		WindowDays:  3,
		RunInterval: 24 * time.Hour,
		JobTimeout:  30 * time.Second,
	}
}

// ReminderConfigHolder keeps the current reminder config and hot-reloads it
// when the underlying yml file changes.
type ReminderConfigHolder struct {
	current atomic.Value // holds ReminderConfig
}

func NewReminderConfigHolder() (*ReminderConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("reminder")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/enote")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ENOTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultReminderConfig()
		v.SetDefault("reminder.windowDays", defaults.WindowDays)
		v.SetDefault("reminder.runInterval", defaults.RunInterval)
		v.SetDefault("reminder.jobTimeout", defaults.JobTimeout)
	}

	var cfg ReminderConfig
	if err := v.UnmarshalKey("reminder", &cfg); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	if err := validateReminderConfig(cfg); err != nil {
		return nil, err
	}

	holder := &ReminderConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated ReminderConfig
		if err := v.UnmarshalKey("reminder", &updated); err != nil {
			log.Printf("[reminder-config] reload failed: %v", err)
			return
		}
		updated = updated.withDefaults()
		if err := validateReminderConfig(updated); err != nil {
			log.Printf("[reminder-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[reminder-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *ReminderConfigHolder) Get() ReminderConfig {
	return h.current.Load().(ReminderConfig)
}

// NewStaticReminderHolder wraps a fixed config with no file watching.
func NewStaticReminderHolder(cfg ReminderConfig) *ReminderConfigHolder {
	holder := &ReminderConfigHolder{}
	holder.current.Store(cfg.withDefaults())
	return holder
}

func (c ReminderConfig) withDefaults() ReminderConfig {
	defaults := DefaultReminderConfig()
	if c.WindowDays <= 0 {
		c.WindowDays = defaults.WindowDays
	}
	if c.RunInterval <= 0 {
		c.RunInterval = defaults.RunInterval
	}
	if c.JobTimeout <= 0 {
		c.JobTimeout = defaults.JobTimeout
	}
	return c
}

func validateReminderConfig(cfg ReminderConfig) error {
	if cfg.WindowDays <= 0 {
		return errors.New("reminder.windowDays must be positive")
	}
	if cfg.RunInterval < time.Minute {
		return errors.New("reminder.runInterval must be at least one minute")
	}
	return nil
}
