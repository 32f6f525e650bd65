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

	"go.uber.org/multierr"
)

// Validate checks every definition without building anything, and reports
// all problems at once: missing builders, autowired parameters that are not
// services, argument count mismatches, references to unknown ids, methods
// the constructor result does not have, and dependency cycles.
//
// Validate cannot see the dependencies of factories.
func (c *Container) Validate() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var (
		err   error
		edges = make(map[string][]string, len(c.definitionIDs))
	)
	for _, id := range c.definitionIDs {
		deps, derr := c.validateDefinition(c.definitions[id].snapshot())
		err = multierr.Append(err, derr)
		edges[id] = deps
	}

	if err != nil {
		return err
	}
	return c.findCycles(edges)
}

// validateDefinition returns the ids the definition depends on.
func (c *Container) validateDefinition(d *Definition) ([]string, error) {
	if d.factory != nil {
		return nil, nil
	}
	if d.ctor == nil {
		return nil, newError(ErrMissingClassDefinition, d.id, "no constructor or factory found")
	}

	var (
		err  error
		deps []string
	)

	if d.autowired {
		names, perr := d.parameterNames()
		if perr != nil {
			return nil, perr
		}
		for i, name := range names {
			if !c.has(name) {
				err = multierr.Append(err, newError(ErrUnknownAutowireDependency, d.id,
					"constructor argument at index %d of %v is named %q but no matching service was found",
					i, d.ctor, name))
			}
		}
		deps = append(deps, names...)
	} else {
		if len(d.args) != d.ctor.Arity() {
			err = multierr.Append(err, newError(ErrArgumentCountMismatch, d.id,
				"incorrect number of constructor arguments for %v: expected %d, received %d",
				d.ctor, d.ctor.Arity(), len(d.args)))
		}
		deps = append(deps, references(d.args)...)
	}

	for _, call := range d.calls {
		if !hasMethod(d, call.Method) {
			err = multierr.Append(err, newError(ErrUndefinedMethodCall, d.id,
				"undefined method %q specified with method call on %v", call.Method, d.ctor.out))
		}
		deps = append(deps, references(call.Args)...)
	}

	for _, dep := range references(d.args) {
		err = multierr.Append(err, c.checkReference(dep))
	}
	for _, call := range d.calls {
		for _, dep := range references(call.Args) {
			err = multierr.Append(err, c.checkReference(dep))
		}
	}
	return deps, err
}

func hasMethod(d *Definition, method string) bool {
	// Interface results may hide methods of the dynamic type.
	if d.ctor.out.Kind() == reflect.Interface {
		return true
	}
	_, ok := d.ctor.out.MethodByName(method)
	return ok
}

func (c *Container) checkReference(id string) error {
	if c.has(id) {
		return nil
	}
	return c.notFound(id)
}

// findCycles walks the dependency graph of definitions in registration
// order and reports each cycle once.
func (c *Container) findCycles(edges map[string][]string) error {
	const (
		unvisited = iota
		visiting
		done
	)

	var (
		err   error
		state = make(map[string]int, len(edges))
		path  []string
		visit func(id string)
	)

	visit = func(id string) {
		id = c.canonical(id)
		if _, ok := edges[id]; !ok {
			return
		}

		switch state[id] {
		case done:
			return
		case visiting:
			cycle := append([]string(nil), path...)
			err = multierr.Append(err, errCycle(append(cycle, id)))
			return
		}

		state[id] = visiting
		path = append(path, id)
		for _, dep := range edges[id] {
			visit(dep)
		}
		path = path[:len(path)-1]
		state[id] = done
	}

	for _, id := range c.definitionIDs {
		visit(id)
	}
	return err
}

// canonical follows aliases to the id they name.
func (c *Container) canonical(id string) string {
	for {
		target, ok := c.aliases[id]
		if !ok {
			return id
		}
		id = target
	}
}
