// Copyright (c) 2024 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package loader

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/ioc"
	"gopkg.in/yaml.v2"
)

// Registry maps the names used in configuration to Go functions.
type Registry struct {
	// Constructors are functions accepted by ioc.Container.Register.
	Constructors map[string]interface{}

	// Factories are ioc.Factory functions.
	Factories map[string]ioc.Factory
}

type serviceConfig struct {
	Alias       string        `yaml:"alias"`
	Constructor string        `yaml:"constructor"`
	Factory     string        `yaml:"factory"`
	Autowire    *bool         `yaml:"autowire"`
	Args        []interface{} `yaml:"args"`
	Params      []string      `yaml:"params"`
	Tags        []string      `yaml:"tags"`
	Calls       []callConfig  `yaml:"calls"`
	Public      *bool         `yaml:"public"`
}

type callConfig struct {
	Method string        `yaml:"method"`
	Args   []interface{} `yaml:"args"`
}

// YAML registers the services described by data into c. Loading stops at
// the first failing service; services before it stay registered.
func YAML(c *ioc.Container, reg Registry, data []byte) error {
	var doc yaml.MapSlice
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(err, "couldn't parse service configuration")
	}

	for _, item := range doc {
		id, ok := item.Key.(string)
		if !ok {
			return errors.Errorf("service id %v must be a string", item.Key)
		}
		if err := load(c, reg, id, item.Value); err != nil {
			return errors.Wrapf(err, "couldn't load service %q", id)
		}
	}
	return nil
}

// YAMLFile is like YAML, reading the configuration from path.
func YAMLFile(c *ioc.Container, reg Registry, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "couldn't read service configuration")
	}
	return errors.Wrapf(YAML(c, reg, data), "loading %s", path)
}

func load(c *ioc.Container, reg Registry, id string, value interface{}) error {
	switch v := value.(type) {
	case string:
		if target, ok := serviceID(v); ok {
			return c.Alias(id, target)
		}
		return c.Set(id, v)
	case yaml.MapSlice:
		cfg, err := decodeConfig(v)
		if err != nil {
			return err
		}
		return loadConfig(c, reg, id, cfg)
	default:
		return c.Set(id, value)
	}
}

func decodeConfig(m yaml.MapSlice) (*serviceConfig, error) {
	raw, err := yaml.Marshal(m)
	if err != nil {
		return nil, err
	}
	var cfg serviceConfig
	if err := yaml.UnmarshalStrict(raw, &cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

func loadConfig(c *ioc.Container, reg Registry, id string, cfg *serviceConfig) error {
	switch {
	case cfg.Alias != "":
		target, ok := serviceID(cfg.Alias)
		if !ok {
			return errors.Errorf("alias %q is not a service id; prefix it with @", cfg.Alias)
		}
		return c.Alias(id, target)

	case cfg.Constructor != "":
		ctor, ok := reg.Constructors[cfg.Constructor]
		if !ok {
			return errors.Errorf("unknown constructor %q", cfg.Constructor)
		}

		autowire := cfg.Autowire == nil || *cfg.Autowire
		var (
			d   *ioc.Definition
			err error
		)
		if autowire {
			d, err = c.Autowire(id, ctor)
		} else {
			d, err = c.Register(id, ctor)
		}
		if err != nil {
			return err
		}

		if autowire {
			if cfg.Params != nil {
				d.SetParameterNames(cfg.Params...)
			}
		} else {
			d.SetArguments(arguments(cfg.Args)...)
		}
		for _, call := range cfg.Calls {
			if call.Method == "" {
				return errors.New("method call without a method name")
			}
			d.AddMethodCall(call.Method, arguments(call.Args)...)
		}
		configure(d, cfg)
		return nil

	case cfg.Factory != "":
		f, ok := reg.Factories[cfg.Factory]
		if !ok {
			return errors.Errorf("unknown factory %q", cfg.Factory)
		}
		d, err := c.RegisterFactory(id, f)
		if err != nil {
			return err
		}
		configure(d, cfg)
		return nil

	default:
		return errors.New("configuration needs one of alias, constructor or factory")
	}
}

func configure(d *ioc.Definition, cfg *serviceConfig) {
	for _, tag := range cfg.Tags {
		d.AddTag(tag)
	}
	if cfg.Public != nil {
		d.SetPublic(*cfg.Public)
	}
}

// arguments turns "@id" strings into references.
func arguments(raw []interface{}) []interface{} {
	args := make([]interface{}, len(raw))
	for i, a := range raw {
		if s, ok := a.(string); ok {
			if id, ok := serviceID(s); ok {
				args[i] = ioc.Ref(id)
				continue
			}
		}
		args[i] = a
	}
	return args
}

func serviceID(s string) (string, bool) {
	if strings.HasPrefix(s, "@") && len(s) > 1 {
		return s[1:], true
	}
	return "", false
}
