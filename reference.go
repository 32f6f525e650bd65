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

import "fmt"

// Argument is a constructor or method-call argument: either a Literal passed
// through unchanged or a Reference resolved through the container when the
// service is materialized.
//
// Argument is a closed union; Literal and Reference are its only members.
type Argument interface {
	fmt.Stringer

	argument()
}

// Reference points at another service by id.
type Reference struct {
	id string
}

// Ref returns a Reference to the service with the given id.
func Ref(id string) Reference {
	return Reference{id: id}
}

// ServiceID returns the referenced service id.
func (r Reference) ServiceID() string { return r.id }

func (r Reference) String() string { return "@" + r.id }

func (Reference) argument() {}

// Literal is a value passed as-is.
type Literal struct {
	Value interface{}
}

// Value wraps v as a Literal argument.
func Value(v interface{}) Literal {
	return Literal{Value: v}
}

func (l Literal) String() string { return fmt.Sprintf("%v", l.Value) }

func (Literal) argument() {}

// toArguments wraps every element that is not already an Argument in a
// Literal.
func toArguments(args []interface{}) []Argument {
	out := make([]Argument, len(args))
	for i, a := range args {
		if arg, ok := a.(Argument); ok {
			out[i] = arg
			continue
		}
		out[i] = Literal{Value: a}
	}
	return out
}

// references returns the ids of every Reference in args.
func references(args []Argument) []string {
	var ids []string
	for _, a := range args {
		if r, ok := a.(Reference); ok {
			ids = append(ids, r.id)
		}
	}
	return ids
}

func resolveArguments(r Resolver, args []Argument) ([]interface{}, error) {
	values := make([]interface{}, len(args))
	for i, a := range args {
		switch a := a.(type) {
		case Reference:
			v, err := r.Get(a.id)
			if err != nil {
				return nil, err
			}
			values[i] = v
		case Literal:
			values[i] = a.Value
		}
	}
	return values, nil
}
