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
	"reflect"

	"github.com/pkg/errors"
	"go.uber.org/ioc/internal/iocreflect"
	"go.uber.org/ioc/internal/paramnames"
)

// Materializer runs a definition's build recipe once. The container caches
// the result; a Materializer does not.
type Materializer func(Resolver) (interface{}, error)

// Materializer returns the build recipe of the definition as it is now.
// Later changes to the definition do not affect the returned function.
func (d *Definition) Materializer() Materializer {
	return d.snapshot().materialize
}

func (d *Definition) materialize(r Resolver) (interface{}, error) {
	if d.factory != nil {
		return d.callFactory(r)
	}
	if d.ctor == nil {
		return nil, newError(ErrMissingClassDefinition, d.id, "no constructor or factory found")
	}

	var (
		args []interface{}
		err  error
	)
	if d.autowired {
		args, err = d.autowiredArguments(r)
	} else {
		args, err = d.explicitArguments(r)
	}
	if err != nil {
		return nil, err
	}

	service, err := d.construct(args)
	if err != nil {
		return nil, err
	}

	for _, call := range d.calls {
		if err := d.invoke(r, service, call); err != nil {
			return nil, err
		}
	}
	return service, nil
}

func (d *Definition) callFactory(r Resolver) (service interface{}, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &Error{
				Kind:    ErrConstructorFailed,
				ID:      d.id,
				Message: "factory panicked",
				Cause:   errors.Errorf("panic: %v", p),
			}
		}
	}()

	service, err = d.factory(r)
	if err == nil {
		return service, nil
	}

	// Resolution errors raised through the Resolver keep their kind.
	if KindOf(err) != "" {
		return nil, err
	}
	return nil, &Error{
		Kind:    ErrConstructorFailed,
		ID:      d.id,
		Message: "factory failed",
		Cause:   err,
	}
}

func (d *Definition) construct(args []interface{}) (service interface{}, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &Error{
				Kind:    ErrConstructorFailed,
				ID:      d.id,
				Message: fmt.Sprintf("constructor %v panicked", d.ctor),
				Cause:   errors.Errorf("panic: %v", p),
			}
		}
	}()
	return d.ctor.call(d.id, args)
}

// parameterNames returns the names autowiring matches against service ids.
func (d *Definition) parameterNames() ([]string, error) {
	names := d.paramNames
	if names == nil {
		var err error
		names, err = paramnames.FromFunc(d.ctor.fn)
		if err != nil {
			return nil, extractionError(d.id, d.ctor, err)
		}
	}

	// Method expressions take their receiver as a first, unnamed argument.
	if len(names) != d.ctor.Arity() {
		return nil, newError(ErrArgumentCountMismatch, d.id,
			"%d parameter names found for constructor %v, which takes %d",
			len(names), d.ctor, d.ctor.Arity())
	}
	return names, nil
}

func extractionError(id string, ctor *constructor, err error) error {
	kind := ErrUnparseableDeclaration
	var perr *paramnames.Error
	if errors.As(err, &perr) {
		switch perr.Code {
		case paramnames.Anonymous:
			kind = ErrAnonymousDeclaration
		case paramnames.UnsupportedParameter:
			kind = ErrUnsupportedParameterSyntax
		case paramnames.MissingConstructor:
			kind = ErrMissingConstructor
		}
	}
	return &Error{
		Kind:    kind,
		ID:      id,
		Message: "cannot autowire",
		Cause:   errors.Wrapf(err, "parsing constructor %v", ctor),
	}
}

func (d *Definition) autowiredArguments(r Resolver) ([]interface{}, error) {
	names, err := d.parameterNames()
	if err != nil {
		return nil, err
	}

	// Every name must be a service before anything is resolved.
	for i, name := range names {
		if !r.Has(name) {
			return nil, newError(ErrUnknownAutowireDependency, d.id,
				"constructor argument at index %d of %v is named %q but no matching service was found",
				i, d.ctor, name)
		}
	}

	args := make([]interface{}, len(names))
	for i, name := range names {
		v, err := r.Get(name)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

func (d *Definition) explicitArguments(r Resolver) ([]interface{}, error) {
	if len(d.args) != d.ctor.Arity() {
		return nil, newError(ErrArgumentCountMismatch, d.id,
			"incorrect number of constructor arguments for %v: expected %d, received %d",
			d.ctor, d.ctor.Arity(), len(d.args))
	}
	return resolveArguments(r, d.args)
}

func (d *Definition) invoke(r Resolver, service interface{}, call MethodCall) (err error) {
	var m reflect.Value
	if service != nil {
		m = reflect.ValueOf(service).MethodByName(call.Method)
	}
	if !m.IsValid() {
		return newError(ErrUndefinedMethodCall, d.id,
			"undefined method %q specified with method call on %v",
			call.Method, iocreflect.TypeName(service))
	}

	mt := m.Type()
	if len(call.Args) != mt.NumIn() {
		return newError(ErrArgumentCountMismatch, d.id,
			"incorrect number of arguments for method %q: expected %d, received %d",
			call.Method, mt.NumIn(), len(call.Args))
	}

	args, err := resolveArguments(r, call.Args)
	if err != nil {
		return err
	}
	in, err := callArgs(d.id, mt, args)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			err = &Error{
				Kind:    ErrMethodCallFailed,
				ID:      d.id,
				Message: fmt.Sprintf("method %q panicked", call.Method),
				Cause:   errors.Errorf("panic: %v", p),
			}
		}
	}()

	var results []reflect.Value
	if mt.IsVariadic() {
		results = m.CallSlice(in)
	} else {
		results = m.Call(in)
	}

	if n := len(results); n > 0 && mt.Out(n-1) == _errType {
		if cerr, _ := results[n-1].Interface().(error); cerr != nil {
			return &Error{
				Kind:    ErrMethodCallFailed,
				ID:      d.id,
				Message: fmt.Sprintf("method %q failed", call.Method),
				Cause:   cerr,
			}
		}
	}
	return nil
}
