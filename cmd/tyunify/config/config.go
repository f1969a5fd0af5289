// Copyright 2026 The tyunify Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads .tyunify.yaml: a named set of built-in implicit
// conversions and named overload groups, so a .tyx tree file can refer to
// "add" or "int" instead of spelling out every converter and signature
// inline. Parsed with gopkg.in/yaml.v3, the same dependency the teacher
// reaches for whenever it needs a structured config or data file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cue-unify/tyunify/internal/types"
)

// Overload is one signature of a named overload group: parameter type heads
// followed by a return type head. Only plain, non-generic Known heads are
// supported from config; generic or constructor-typed signatures cannot be
// declared here and have to be built in Go with types.NewMethod and
// tree.NewMethodNode.
type Overload struct {
	Params []string `yaml:"params"`
	Return string   `yaml:"return"`
}

// Config is the parsed form of a .tyunify.yaml file.
type Config struct {
	// Conversions maps a source type head to the target heads it may
	// implicitly convert to, handed to
	// types.NewConverterRegistryFromHeadMap.
	Conversions map[string][]string `yaml:"conversions"`
	// Overloads maps a call name used in a .tyx file's (call name ...)
	// form to its candidate signatures.
	Overloads map[string][]Overload `yaml:"overloads"`
}

// Load reads and parses a .tyunify.yaml file. A missing path is not an
// error: it returns an empty Config, so `tyunify check` works without one.
func Load(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return &c, nil
}

// ConverterRegistry builds the ConverterRegistry described by c.Conversions.
func (c *Config) ConverterRegistry() *types.ConverterRegistry {
	if c == nil {
		return types.NewConverterRegistry()
	}
	return types.NewConverterRegistryFromHeadMap(c.Conversions)
}

// Overload looks up a named overload group, building its Dummy signatures.
func (c *Config) Overload(name string) ([]*types.Dummy, bool) {
	if c == nil {
		return nil, false
	}
	group, ok := c.Overloads[name]
	if !ok {
		return nil, false
	}
	out := make([]*types.Dummy, len(group))
	for i, o := range group {
		params := make([]types.Term, len(o.Params))
		for j, p := range o.Params {
			params[j] = types.NewKnown(p)
		}
		out[i] = types.NewMethod(types.NewKnown(o.Return), params...)
	}
	return out, true
}
