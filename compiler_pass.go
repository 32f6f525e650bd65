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

import "reflect"

// A CompilerPass rewrites definitions in bulk. Passes run as soon as they
// are added, so they only see services registered before them.
type CompilerPass interface {
	Process(c *Container) error
}

// CompilerPassFunc adapts a function to a CompilerPass.
type CompilerPassFunc func(c *Container) error

// Process calls f(c).
func (f CompilerPassFunc) Process(c *Container) error { return f(c) }

// ContainerAwareTag marks definitions that ContainerAwareCompilerPass
// injects the container into.
const ContainerAwareTag = "container_aware"

// ContainerAware is implemented by services that want a reference to the
// container that built them.
//
// SetContainer runs while the service is being built, with the container
// lock held. It must only store c: calling c.Get, c.Has or any other
// Container method from SetContainer deadlocks. Resolve services from c
// later, once construction has returned.
type ContainerAware interface {
	SetContainer(c *Container)
}

var _containerAwareType = reflect.TypeOf((*ContainerAware)(nil)).Elem()

// BaseContainerAware implements ContainerAware. Embed it in a service
// struct.
type BaseContainerAware struct {
	container *Container
}

var _ ContainerAware = (*BaseContainerAware)(nil)

// SetContainer stores c.
func (b *BaseContainerAware) SetContainer(c *Container) { b.container = c }

// Container returns the stored container, or nil.
func (b *BaseContainerAware) Container() *Container { return b.container }

// ContainerAwareCompilerPass queues a SetContainer call on every definition
// tagged ContainerAwareTag whose constructor result implements
// ContainerAware. Other tagged definitions, factories included, are left
// alone.
type ContainerAwareCompilerPass struct{}

var _ CompilerPass = ContainerAwareCompilerPass{}

// Process implements CompilerPass.
func (ContainerAwareCompilerPass) Process(c *Container) error {
	for _, id := range c.FindTaggedServiceIDs(ContainerAwareTag) {
		d, err := c.Definition(id)
		if err != nil {
			return err
		}
		if t := d.Type(); t == nil || !t.Implements(_containerAwareType) {
			continue
		}
		d.AddMethodCall("SetContainer", Value(c))
	}
	return nil
}

// MethodCallPass queues a call of Method with Args on every definition
// tagged Tag whose constructor result has that method.
type MethodCallPass struct {
	Tag    string
	Method string
	Args   []interface{}
}

var _ CompilerPass = (*MethodCallPass)(nil)

// Process implements CompilerPass.
func (p *MethodCallPass) Process(c *Container) error {
	for _, id := range c.FindTaggedServiceIDs(p.Tag) {
		d, err := c.Definition(id)
		if err != nil {
			return err
		}
		t := d.Type()
		if t == nil {
			continue
		}
		if _, ok := t.MethodByName(p.Method); !ok {
			continue
		}
		d.AddMethodCall(p.Method, p.Args...)
	}
	return nil
}
