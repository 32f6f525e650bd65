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

// Get resolves id through r and asserts the result to T.
//
//	db, err := ioc.Get[*sql.DB](c, "database")
func Get[T any](r Resolver, id string) (T, error) {
	var zero T

	v, err := r.Get(id)
	if err != nil {
		return zero, err
	}

	t, ok := v.(T)
	if !ok {
		return zero, newError(ErrTypeMismatch, id,
			"service is a %T, not a %v", v, reflect.TypeOf((*T)(nil)).Elem())
	}
	return t, nil
}

// MustGet is like Get but panics on failure.
func MustGet[T any](r Resolver, id string) T {
	t, err := Get[T](r, id)
	if err != nil {
		panic(err)
	}
	return t
}
