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

// Package digexport makes services of an ioc.Container injectable into a
// dig container, as named values.
//
//	c := ioc.New()
//	c.Set("port", 8080)
//
//	dc := dig.New()
//	digexport.Provide(c, dc, "port")
//
//	dc.Invoke(func(p struct {
//		dig.In
//
//		Port int `name:"port"`
//	}) {
//		// ...
//	})
package digexport

import (
	"reflect"

	"github.com/pkg/errors"
	"go.uber.org/dig"
	"go.uber.org/ioc"
	"go.uber.org/multierr"
)

var _errType = reflect.TypeOf((*error)(nil)).Elem()

// Provide adds a constructor to dc for every id, named after the id. With no
// ids, every service of c is provided.
//
// Definitions with a constructor are resolved lazily, when dc first needs
// them. Values, aliases and factory-built services are resolved immediately
// to learn their type.
func Provide(c *ioc.Container, dc *dig.Container, ids ...string) error {
	if len(ids) == 0 {
		ids = c.ServiceIDs()
	}

	var err error
	for _, id := range ids {
		err = multierr.Append(err, provide(c, dc, id))
	}
	return err
}

func provide(c *ioc.Container, dc *dig.Container, id string) error {
	t, err := serviceType(c, id)
	if err != nil {
		return err
	}

	ctor := newConstructor(c, id, t)
	return errors.Wrapf(dc.Provide(ctor, dig.Name(id)), "couldn't provide service %q", id)
}

func serviceType(c *ioc.Container, id string) (reflect.Type, error) {
	if d, err := c.Definition(id); err == nil {
		if t := d.Type(); t != nil {
			return t, nil
		}
	}

	v, err := c.Get(id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, errors.Errorf("service %q is nil and has no type", id)
	}
	return reflect.TypeOf(v), nil
}

// newConstructor builds a func() (t, error) that resolves id through c.
func newConstructor(c *ioc.Container, id string, t reflect.Type) interface{} {
	ft := reflect.FuncOf(nil, []reflect.Type{t, _errType}, false)
	fv := reflect.MakeFunc(ft, func([]reflect.Value) []reflect.Value {
		out := reflect.New(t).Elem()
		v, err := c.Get(id)
		if err != nil {
			return []reflect.Value{out, reflect.ValueOf(&err).Elem()}
		}
		if v != nil {
			out.Set(reflect.ValueOf(v))
		}
		return []reflect.Value{out, reflect.Zero(_errType)}
	})
	return fv.Interface()
}
