package config

import (
	"os"
)

import (
	"github.com/timtadh/data-structures/errors"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML run description. Keys mirror the command line
// options; unknown keys are rejected.
//
//	support: 25
//	k: 4
//	strategy: join
//	parallelism: -1
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c := &Config{}
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return nil, errors.Errorf("could not parse config %v: %v", path, err)
	}
	return c, nil
}
