package config

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"runtime"
)

import (
	"github.com/timtadh/maxsets/stores/baskets"
)

const (
	JoinStrategy   = "join"
	BasketStrategy = "basket"
)

type Config struct {
	Cache       string `yaml:"cache"`
	Output      string `yaml:"output"`
	Support     int    `yaml:"support"`
	TargetK     int    `yaml:"k"`
	Strategy    string `yaml:"strategy"`
	Parallelism int    `yaml:"parallelism"`
	Separator   string `yaml:"separator"`
}

// ConfigError rejects a configuration before any work is done.
type ConfigError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

func (c *Config) Copy() *Config {
	return &Config{
		Cache:       c.Cache,
		Output:      c.Output,
		Support:     c.Support,
		TargetK:     c.TargetK,
		Strategy:    c.Strategy,
		Parallelism: c.Parallelism,
		Separator:   c.Separator,
	}
}

func (c *Config) Validate() error {
	if c.Support < 1 {
		return &ConfigError{Field: "support", Value: c.Support, Reason: "must be >= 1"}
	}
	if c.TargetK < 0 {
		return &ConfigError{Field: "k", Value: c.TargetK, Reason: "must be >= 1 (or 0 to run until exhausted)"}
	}
	switch c.Strategy {
	case "", JoinStrategy, BasketStrategy:
	default:
		return &ConfigError{Field: "strategy", Value: c.Strategy, Reason: "must be join or basket"}
	}
	if c.Parallelism < -1 {
		return &ConfigError{Field: "parallelism", Value: c.Parallelism, Reason: "must be >= -1"}
	}
	return nil
}

func (c *Config) StrategyName() string {
	if c.Strategy == "" {
		return BasketStrategy
	}
	return c.Strategy
}

func (c *Config) Workers() int {
	if c.Parallelism == 0 {
		return 1
	} else if c.Parallelism == -1 {
		return runtime.NumCPU()
	} else {
		return c.Parallelism
	}
}

func (c *Config) Randstr() string {
	runes := make([]rune, 0, 10)
	for i := 0; i < 10; i++ {
		runes = append(runes, rune(97+rand.Intn(26)))
	}
	return string(runes)
}

func (c *Config) CacheFile(name string) string {
	return filepath.Join(c.Cache, name)
}

func (c *Config) OutputFile(name string) string {
	return filepath.Join(c.Output, name)
}

func (c *Config) BasketStore(name string) (*baskets.BpTree, error) {
	if c.Cache == "" {
		return baskets.AnonBpTree()
	} else {
		return baskets.NewBpTree(c.CacheFile(name + "-" + c.Randstr() + ".bptree"))
	}
}
