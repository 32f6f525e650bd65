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

package ioc

import (
	"reflect"
	"sync"

	"go.uber.org/atomic"
)

// Resolver is the read side of a container. Factories and materializers
// receive one to look up their dependencies.
type Resolver interface {
	// Has reports whether id is a registered value, alias or definition.
	Has(id string) bool

	// Get resolves id, materializing it if needed.
	Get(id string) (interface{}, error)
}

// Factory builds a service from other services.
//
// A Factory must only resolve dependencies through the Resolver it is
// given, and must not retain it after returning.
type Factory func(Resolver) (interface{}, error)

// MethodCall is a method invoked on a freshly constructed service.
type MethodCall struct {
	Method string
	Args   []Argument
}

// Definition is the build recipe of one service: either a constructor or a
// Factory, plus constructor arguments, method calls and tags.
//
// Definitions are created by the container and may be changed until the
// container is frozen. Every setter panics with a ContainerFrozen *Error
// afterwards. A Definition is safe for concurrent use.
type Definition struct {
	id     string
	frozen *atomic.Bool

	mu sync.Mutex // guards the fields below

	ctor       *constructor
	factory    Factory
	args       []Argument
	calls      []MethodCall
	tags       []string
	autowired  bool
	public     bool
	paramNames []string
}

func newDefinition(id string, frozen *atomic.Bool) *Definition {
	return &Definition{
		id:     id,
		frozen: frozen,
	}
}

// ID returns the service id the definition is registered under.
func (d *Definition) ID() string { return d.id }

// Constructor returns the constructor function, or nil if the service is
// built by a Factory.
func (d *Definition) Constructor() interface{} {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ctor == nil {
		return nil
	}
	return d.ctor.fn
}

// Type returns the type produced by the constructor, or nil for factories.
func (d *Definition) Type() reflect.Type {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ctor == nil {
		return nil
	}
	return d.ctor.out
}

// Factory returns the factory, if any.
func (d *Definition) Factory() Factory {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.factory
}

// Arguments returns the configured constructor arguments.
func (d *Definition) Arguments() []Argument {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]Argument(nil), d.args...)
}

// MethodCalls returns the queued method calls in order.
func (d *Definition) MethodCalls() []MethodCall {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]MethodCall(nil), d.calls...)
}

// Tags returns the definition's tags in the order they were added.
func (d *Definition) Tags() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]string(nil), d.tags...)
}

// HasTag reports whether the definition carries tag.
func (d *Definition) HasTag(tag string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.hasTag(tag)
}

func (d *Definition) hasTag(tag string) bool {
	for _, t := range d.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Autowired reports whether constructor arguments are inferred from
// parameter names.
func (d *Definition) Autowired() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.autowired
}

// Public reports the visibility flag. It is advisory.
func (d *Definition) Public() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.public
}

// ParameterNames returns the explicitly supplied parameter names.
func (d *Definition) ParameterNames() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]string(nil), d.paramNames...)
}

// lockMutable panics if the container is frozen and locks d otherwise.
func (d *Definition) lockMutable() {
	if d.frozen != nil && d.frozen.Load() {
		panic(errFrozen(d.id))
	}
	d.mu.Lock()
}

// snapshot copies the build recipe so that it can be used without holding
// d's lock.
func (d *Definition) snapshot() *Definition {
	d.mu.Lock()
	defer d.mu.Unlock()

	var names []string
	if d.paramNames != nil {
		names = append([]string{}, d.paramNames...)
	}
	return &Definition{
		id:         d.id,
		frozen:     d.frozen,
		ctor:       d.ctor,
		factory:    d.factory,
		args:       append([]Argument(nil), d.args...),
		calls:      append([]MethodCall(nil), d.calls...),
		tags:       append([]string(nil), d.tags...),
		autowired:  d.autowired,
		public:     d.public,
		paramNames: names,
	}
}

// SetArguments replaces the constructor arguments. Values that are not a
// Reference or Literal are passed as literals.
func (d *Definition) SetArguments(args ...interface{}) *Definition {
	d.lockMutable()
	defer d.mu.Unlock()

	d.args = toArguments(args)
	return d
}

// SetTags replaces the definition's tags.
func (d *Definition) SetTags(tags ...string) *Definition {
	d.lockMutable()
	defer d.mu.Unlock()

	d.tags = nil
	for _, t := range tags {
		d.addTag(t)
	}
	return d
}

// AddTag adds a tag. Adding a tag twice has no effect.
func (d *Definition) AddTag(tag string) *Definition {
	d.lockMutable()
	defer d.mu.Unlock()

	d.addTag(tag)
	return d
}

func (d *Definition) addTag(tag string) {
	if !d.hasTag(tag) {
		d.tags = append(d.tags, tag)
	}
}

// AddMethodCall queues a call of the named exported method on the
// constructed service. Calls run in the order they were added.
func (d *Definition) AddMethodCall(method string, args ...interface{}) *Definition {
	d.lockMutable()
	defer d.mu.Unlock()

	d.calls = append(d.calls, MethodCall{
		Method: method,
		Args:   toArguments(args),
	})
	return d
}

// SetAutowired toggles autowiring.
func (d *Definition) SetAutowired(autowired bool) *Definition {
	d.lockMutable()
	defer d.mu.Unlock()

	d.autowired = autowired
	return d
}

// SetPublic sets the visibility flag.
func (d *Definition) SetPublic(public bool) *Definition {
	d.lockMutable()
	defer d.mu.Unlock()

	d.public = public
	return d
}

// SetFactory makes f the only build step of the service. The constructor,
// if any, is dropped.
func (d *Definition) SetFactory(f Factory) *Definition {
	d.lockMutable()
	defer d.mu.Unlock()

	d.factory = f
	d.ctor = nil
	return d
}

// SetParameterNames supplies the constructor's parameter names for
// autowiring, instead of recovering them from source.
func (d *Definition) SetParameterNames(names ...string) *Definition {
	d.lockMutable()
	defer d.mu.Unlock()

	d.paramNames = append([]string(nil), names...)
	return d
}
