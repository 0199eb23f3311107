package app

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"kestrel/kestrelos/kernel"
	"kestrel/kestrelos/scancode"
)

// Config is the boot configuration, usually read from a TOML file.
type Config struct {
	Executor ExecutorConfig `toml:"executor"`
	Keyboard KeyboardConfig `toml:"keyboard"`
	Host     HostConfig     `toml:"host"`
}

type ExecutorConfig struct {
	// QueueCapacity bounds the ready queue.
	QueueCapacity int `toml:"queue_capacity"`
}

type KeyboardConfig struct {
	// QueueCapacity bounds the scancode buffer.
	QueueCapacity int `toml:"queue_capacity"`
}

// HostConfig only applies to the desktop build.
type HostConfig struct {
	Headless bool   `toml:"headless"`
	Hz       int    `toml:"hz"`
	Ticks    uint64 `toml:"ticks"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Executor: ExecutorConfig{QueueCapacity: kernel.DefaultQueueCapacity},
		Keyboard: KeyboardConfig{QueueCapacity: scancode.DefaultCapacity},
		Host:     HostConfig{Hz: 60},
	}
}

// ParseConfig decodes a TOML document over the defaults. Unknown keys are
// rejected.
func ParseConfig(data string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("parse config: unknown keys: %s", strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// LoadConfig reads the TOML file at path over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config %s: unknown key %s", path, undecoded[0])
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Executor.QueueCapacity <= 0 {
		return fmt.Errorf("executor.queue_capacity must be positive, got %d", c.Executor.QueueCapacity)
	}
	if c.Keyboard.QueueCapacity <= 0 {
		return fmt.Errorf("keyboard.queue_capacity must be positive, got %d", c.Keyboard.QueueCapacity)
	}
	if c.Host.Hz <= 0 {
		return fmt.Errorf("host.hz must be positive, got %d", c.Host.Hz)
	}
	return nil
}
