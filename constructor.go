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
	"math"
	"reflect"

	"go.uber.org/ioc/internal/iocreflect"
)

var _errType = reflect.TypeOf((*error)(nil)).Elem()

// constructor is a validated constructor function.
type constructor struct {
	fn         interface{}
	value      reflect.Value
	typ        reflect.Type
	out        reflect.Type
	returnsErr bool
}

func newConstructor(id string, fn interface{}) (*constructor, error) {
	if fn == nil {
		return nil, newError(ErrInvalidClassDefinition, id, "constructor must not be nil")
	}

	ft := reflect.TypeOf(fn)
	if ft.Kind() != reflect.Func {
		return nil, newError(ErrInvalidClassDefinition, id,
			"constructor must be a function, got %v", ft)
	}

	switch ft.NumOut() {
	case 1:
	case 2:
		if ft.Out(1) != _errType {
			return nil, newError(ErrInvalidClassDefinition, id,
				"second result of %v must be an error, got %v", iocreflect.FuncName(fn), ft.Out(1))
		}
	default:
		return nil, newError(ErrInvalidClassDefinition, id,
			"constructor %v must return a value and an optional error", iocreflect.FuncName(fn))
	}

	if ft.Out(0) == _errType {
		return nil, newError(ErrInvalidClassDefinition, id,
			"constructor %v must not return only an error", iocreflect.FuncName(fn))
	}

	return &constructor{
		fn:         fn,
		value:      reflect.ValueOf(fn),
		typ:        ft,
		out:        ft.Out(0),
		returnsErr: ft.NumOut() == 2,
	}, nil
}

// Arity is the number of declared parameters. A variadic parameter counts
// once.
func (c *constructor) Arity() int { return c.typ.NumIn() }

func (c *constructor) String() string { return iocreflect.FuncName(c.fn) }

// call invokes the constructor with positional arguments. The caller has
// already checked the argument count.
func (c *constructor) call(id string, args []interface{}) (interface{}, error) {
	in, err := callArgs(id, c.typ, args)
	if err != nil {
		return nil, err
	}

	var results []reflect.Value
	if c.typ.IsVariadic() {
		results = c.value.CallSlice(in)
	} else {
		results = c.value.Call(in)
	}

	if c.returnsErr {
		if err, _ := results[1].Interface().(error); err != nil {
			return nil, &Error{
				Kind:    ErrConstructorFailed,
				ID:      id,
				Message: fmt.Sprintf("constructor %v failed", c),
				Cause:   err,
			}
		}
	}
	return results[0].Interface(), nil
}

// callArgs converts args to reflect.Values matching the parameters of the
// function type ft.
func callArgs(id string, ft reflect.Type, args []interface{}) ([]reflect.Value, error) {
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		pt := ft.In(i)
		v, ok := convertArg(a, pt)
		if !ok {
			return nil, newError(ErrTypeMismatch, id,
				"argument %d of type %T is not assignable to %v", i, a, pt)
		}
		in[i] = v
	}
	return in, nil
}

func convertArg(a interface{}, to reflect.Type) (reflect.Value, bool) {
	if a == nil {
		switch to.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
			return reflect.Zero(to), true
		}
		return reflect.Value{}, false
	}

	v := reflect.ValueOf(a)
	if v.Type().AssignableTo(to) {
		return v, true
	}

	// Numeric literals from declarative configuration rarely carry the
	// exact width the constructor asks for.
	if isNumeric(v.Kind()) && isNumeric(to.Kind()) && fits(v, to) {
		return v.Convert(to), true
	}
	return reflect.Value{}, false
}

// fits reports whether the numeric value v converts to to without changing
// its value.
func fits(v reflect.Value, to reflect.Type) bool {
	dst := reflect.New(to).Elem()
	switch {
	case isInt(v.Kind()):
		i := v.Int()
		switch {
		case isInt(to.Kind()):
			return !dst.OverflowInt(i)
		case isUint(to.Kind()):
			return i >= 0 && !dst.OverflowUint(uint64(i))
		}
	case isUint(v.Kind()):
		u := v.Uint()
		switch {
		case isInt(to.Kind()):
			return u <= math.MaxInt64 && !dst.OverflowInt(int64(u))
		case isUint(to.Kind()):
			return !dst.OverflowUint(u)
		}
	default:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return !isInt(to.Kind()) && !isUint(to.Kind()) && !dst.OverflowFloat(f)
		}
		switch {
		case isInt(to.Kind()):
			return f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 &&
				!dst.OverflowInt(int64(f))
		case isUint(to.Kind()):
			return f == math.Trunc(f) && f >= 0 && f < math.MaxUint64 &&
				!dst.OverflowUint(uint64(f))
		}
		return !dst.OverflowFloat(f)
	}
	// Integers always have a float representation, possibly rounded.
	return true
}

func isInt(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUint(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
