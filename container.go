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
	"fmt"
	"sync"

	"go.uber.org/atomic"
	"go.uber.org/ioc/internal/iocreflect"
	"go.uber.org/ioc/iocevent"
)

// Container is a registry of services addressed by string ids.
//
// Services are either finished values (Set), or definitions that are built
// on first lookup and cached (Register, Autowire, RegisterFactory). Aliases
// give an existing id a second name. Compile builds everything eagerly and
// then freezes the container against further registration.
//
// A Container and its Definitions are safe for concurrent use. Factories,
// method calls and ContainerAware.SetContainer run with the container lock
// held; they must resolve dependencies through the Resolver they are handed
// rather than through the Container itself.
type Container struct {
	mu  sync.Mutex
	log iocevent.Logger

	values   map[string]interface{}
	valueIDs []string

	aliases  map[string]string
	aliasIDs []string

	definitions   map[string]*Definition
	definitionIDs []string

	// instances caches materialized definitions.
	instances map[string]interface{}

	frozen       *atomic.Bool
	compiling    bool
	path         []string
	registerSelf bool
}

var _ Resolver = (*Container)(nil)

// New builds an empty container.
func New(opts ...Option) *Container {
	c := &Container{
		log:         iocevent.NopLogger,
		values:      make(map[string]interface{}),
		aliases:     make(map[string]string),
		definitions: make(map[string]*Definition),
		instances:   make(map[string]interface{}),
		frozen:      atomic.NewBool(false),
	}
	for _, opt := range opts {
		opt.apply(c)
	}
	if c.registerSelf {
		c.set(ContainerID, c)
	}
	return c
}

// resolver is the unlocked view of a container handed to materializers.
// It is only valid while the container lock is held.
type resolver struct{ c *Container }

func (r resolver) Has(id string) bool                 { return r.c.has(id) }
func (r resolver) Get(id string) (interface{}, error) { return r.c.get(id) }

// Register adds a definition built by calling ctor with explicitly
// configured arguments.
//
// ctor must be a function returning a single value, or a value and an error.
func (c *Container) Register(id string, ctor interface{}) (*Definition, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.register(id, ctor, false)
}

// Autowire adds a definition whose constructor arguments are the services
// named like the constructor's parameters.
func (c *Container) Autowire(id string, ctor interface{}) (*Definition, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.register(id, ctor, true)
}

// AutowireNamed is like Autowire, but names the constructor's parameters
// up front instead of recovering them from source. It fails with
// ArgumentCountMismatch if names does not cover every parameter.
func (c *Container) AutowireNamed(id string, ctor interface{}, names ...string) (*Definition, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	d, err := c.newDefinition(id, ctor, true)
	if err == nil && len(names) != d.ctor.Arity() {
		err = newError(ErrArgumentCountMismatch, id,
			"%d parameter names supplied for constructor %v, which takes %d",
			len(names), d.ctor, d.ctor.Arity())
	}
	if err == nil {
		// Non-nil, so that a constructor without parameters never reads
		// its source.
		d.paramNames = append([]string{}, names...)
	}
	c.log.LogEvent(&iocevent.Registered{
		ID:          id,
		Constructor: ctor,
		Autowired:   true,
		Err:         err,
	})
	if err != nil {
		return nil, err
	}

	c.addDefinition(d)
	return d, nil
}

// RegisterSimple adds a definition whose constructor arguments are
// references to deps, in order.
func (c *Container) RegisterSimple(id string, ctor interface{}, deps ...string) (*Definition, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	d, err := c.register(id, ctor, false)
	if err != nil {
		return nil, err
	}
	args := make([]Argument, len(deps))
	for i, dep := range deps {
		args[i] = Ref(dep)
	}

	d.mu.Lock()
	d.args = args
	d.mu.Unlock()
	return d, nil
}

// RegisterFactory adds a definition built by calling f.
func (c *Container) RegisterFactory(id string, f Factory) (*Definition, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	d, err := c.registerFactory(id, f)
	c.log.LogEvent(&iocevent.Registered{ID: id, Factory: true, Err: err})
	return d, err
}

func (c *Container) registerFactory(id string, f Factory) (*Definition, error) {
	if err := c.checkRegistrable(id); err != nil {
		return nil, err
	}
	if f == nil {
		return nil, newError(ErrInvalidClassDefinition, id, "factory must not be nil")
	}

	d := newDefinition(id, c.frozen)
	d.factory = f
	c.addDefinition(d)
	return d, nil
}

func (c *Container) register(id string, ctor interface{}, autowired bool) (*Definition, error) {
	d, err := c.newDefinition(id, ctor, autowired)
	c.log.LogEvent(&iocevent.Registered{
		ID:          id,
		Constructor: ctor,
		Autowired:   autowired,
		Err:         err,
	})
	if err != nil {
		return nil, err
	}

	c.addDefinition(d)
	return d, nil
}

func (c *Container) newDefinition(id string, ctor interface{}, autowired bool) (*Definition, error) {
	if err := c.checkRegistrable(id); err != nil {
		return nil, err
	}
	con, err := newConstructor(id, ctor)
	if err != nil {
		return nil, err
	}

	d := newDefinition(id, c.frozen)
	d.ctor = con
	d.autowired = autowired
	return d, nil
}

func (c *Container) addDefinition(d *Definition) {
	c.definitions[d.id] = d
	c.definitionIDs = append(c.definitionIDs, d.id)
}

func (c *Container) checkRegistrable(id string) error {
	if c.frozen.Load() {
		return errFrozen(id)
	}
	if c.has(id) {
		return errDuplicate(id)
	}
	return nil
}

// Set adds a finished value. The value is returned as-is by every lookup.
func (c *Container) Set(id string, value interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.checkRegistrable(id)
	if err == nil {
		c.set(id, value)
	}
	c.log.LogEvent(&iocevent.Supplied{
		ID:       id,
		TypeName: iocreflect.TypeName(value),
		Err:      err,
	})
	return err
}

func (c *Container) set(id string, value interface{}) {
	c.values[id] = value
	c.valueIDs = append(c.valueIDs, id)
}

// Alias makes alias resolve to the same service as target. target must
// already be registered.
func (c *Container) Alias(alias, target string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.alias(alias, target)
	c.log.LogEvent(&iocevent.Aliased{Alias: alias, Target: target, Err: err})
	return err
}

func (c *Container) alias(alias, target string) error {
	if c.frozen.Load() {
		return errFrozen(alias)
	}
	if !c.has(target) {
		return newError(ErrAliasTargetMissing, alias,
			"cannot alias to %q because it does not exist", target)
	}
	if _, ok := c.aliases[alias]; ok {
		return newError(ErrAliasAlreadyRegistered, alias,
			"alias is already registered to %q", c.aliases[alias])
	}
	if c.has(alias) {
		return errDuplicate(alias)
	}

	c.aliases[alias] = target
	c.aliasIDs = append(c.aliasIDs, alias)
	return nil
}

// Freeze stops the container from accepting registrations. It cannot be
// undone.
func (c *Container) Freeze() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.freeze()
}

func (c *Container) freeze() {
	if !c.frozen.Swap(true) {
		c.log.LogEvent(&iocevent.Frozen{})
	}
}

// Frozen reports whether the container has been frozen.
func (c *Container) Frozen() bool { return c.frozen.Load() }

// Compile resolves every registered id, then freezes the container.
//
// Ids are resolved values first, then aliases, then definitions, each in
// registration order. The first failure is returned and leaves the container
// unfrozen.
func (c *Container) Compile() (err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := c.serviceIDs()
	defer func() {
		c.log.LogEvent(&iocevent.Compiled{Services: len(ids), Err: err})
	}()

	c.compiling = true
	c.path = c.path[:0]
	defer func() {
		c.compiling = false
		c.path = c.path[:0]
	}()

	for _, id := range ids {
		if _, err := c.get(id); err != nil {
			return err
		}
	}

	c.freeze()
	return nil
}

// Has reports whether id is a registered value, alias or definition.
func (c *Container) Has(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.has(id)
}

func (c *Container) has(id string) bool {
	if _, ok := c.values[id]; ok {
		return true
	}
	if _, ok := c.aliases[id]; ok {
		return true
	}
	_, ok := c.definitions[id]
	return ok
}

// Get resolves id. Values are returned as registered, aliases are followed,
// and definitions are built on first lookup and cached.
func (c *Container) Get(id string) (interface{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.get(id)
}

func (c *Container) get(id string) (interface{}, error) {
	if v, ok := c.values[id]; ok {
		return v, nil
	}
	if target, ok := c.aliases[id]; ok {
		return c.get(target)
	}

	d, ok := c.definitions[id]
	if !ok {
		return nil, c.notFound(id)
	}
	if v, ok := c.instances[id]; ok {
		return v, nil
	}

	for _, p := range c.path {
		if p == id {
			path := make([]string, len(c.path), len(c.path)+1)
			copy(path, c.path)
			return nil, errCycle(append(path, id))
		}
	}

	c.path = append(c.path, id)
	v, err := d.Materializer()(resolver{c})
	c.path = c.path[:len(c.path)-1]

	c.log.LogEvent(&iocevent.Materialized{
		ID:       id,
		TypeName: iocreflect.TypeName(v),
		Eager:    c.compiling,
		Err:      err,
	})
	if err != nil {
		return nil, err
	}

	c.instances[id] = v
	return v, nil
}

func (c *Container) notFound(id string) error {
	ids := c.serviceIDs()
	if len(ids) == 0 {
		return errEmpty(id)
	}
	return errNotFound(id, closest(id, ids))
}

// Definition returns the definition registered under id. Values and aliases
// are not definitions.
func (c *Container) Definition(id string) (*Definition, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	d, ok := c.definitions[id]
	if !ok {
		return nil, newError(ErrDefinitionNotFound, id, "no service definition found")
	}
	return d, nil
}

// FindTaggedServiceIDs returns the ids of definitions tagged tag, in
// registration order.
func (c *Container) FindTaggedServiceIDs(tag string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var ids []string
	for _, id := range c.definitionIDs {
		if c.definitions[id].HasTag(tag) {
			ids = append(ids, id)
		}
	}
	return ids
}

// AddCompilerPass runs p against the container immediately.
func (c *Container) AddCompilerPass(p CompilerPass) error {
	name := passName(p)
	if c.frozen.Load() {
		err := errFrozen("")
		c.logEvent(&iocevent.CompilerPassApplied{Name: name, Err: err})
		return err
	}

	// p calls back into the container, so the lock is not held here.
	err := p.Process(c)
	c.logEvent(&iocevent.CompilerPassApplied{Name: name, Err: err})
	return err
}

func passName(p CompilerPass) string {
	if f, ok := p.(CompilerPassFunc); ok {
		return iocreflect.FuncName(f)
	}
	return fmt.Sprintf("%T", p)
}

func (c *Container) logEvent(e iocevent.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.log.LogEvent(e)
}

// GetAll resolves every id in ids.
func (c *Container) GetAll(ids ...string) (map[string]interface{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	services := make(map[string]interface{}, len(ids))
	for _, id := range ids {
		v, err := c.get(id)
		if err != nil {
			return nil, err
		}
		services[id] = v
	}
	return services, nil
}

// ServiceIDs returns every registered id: values, then aliases, then
// definitions, each in registration order.
func (c *Container) ServiceIDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.serviceIDs()
}

func (c *Container) serviceIDs() []string {
	ids := make([]string, 0, len(c.valueIDs)+len(c.aliasIDs)+len(c.definitionIDs))
	seen := make(map[string]struct{}, cap(ids))
	for _, group := range [][]string{c.valueIDs, c.aliasIDs, c.definitionIDs} {
		for _, id := range group {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}
