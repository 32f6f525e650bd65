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
	"errors"
	"fmt"
	"strings"
)

// Kind is a stable, machine-readable classification of a container failure.
//
// Kind implements error so that callers can match on it directly:
//
//	if errors.Is(err, ioc.ErrServiceNotFound) {
//		// ...
//	}
type Kind string

// Error returns the kind's name.
func (k Kind) Error() string { return string(k) }

// Registration failures.
const (
	ErrDuplicateServiceID     Kind = "DuplicateServiceId"
	ErrContainerFrozen        Kind = "ContainerFrozen"
	ErrAliasTargetMissing     Kind = "AliasTargetMissing"
	ErrAliasAlreadyRegistered Kind = "AliasAlreadyRegistered"
	ErrInvalidClassDefinition Kind = "InvalidClassDefinition"
)

// Lookup failures.
const (
	ErrServiceNotFound    Kind = "ServiceNotFound"
	ErrEmptyContainer     Kind = "EmptyContainer"
	ErrDefinitionNotFound Kind = "DefinitionNotFound"
	ErrTypeMismatch       Kind = "TypeMismatch"
)

// Materialization failures.
const (
	ErrCyclicalDependency        Kind = "CyclicalDependency"
	ErrMissingClassDefinition    Kind = "MissingClassDefinition"
	ErrUnknownAutowireDependency Kind = "UnknownAutowireDependency"
	ErrArgumentCountMismatch     Kind = "ArgumentCountMismatch"
	ErrUndefinedMethodCall       Kind = "UndefinedMethodCall"
	ErrConstructorFailed         Kind = "ConstructorFailed"
	ErrMethodCallFailed          Kind = "MethodCallFailed"
)

// Parameter-name extraction failures.
const (
	ErrUnparseableDeclaration     Kind = "UnparseableDeclaration"
	ErrAnonymousDeclaration       Kind = "AnonymousDeclaration"
	ErrUnsupportedParameterSyntax Kind = "UnsupportedParameterSyntax"
	ErrMissingConstructor         Kind = "MissingConstructor"
)

// Error is returned by every failing container operation.
type Error struct {
	// Kind classifies the failure.
	Kind Kind

	// ID is the service the failure is about, if any.
	ID string

	// Message is a human-readable description.
	Message string

	// Suggestion is the closest registered id for ErrServiceNotFound.
	Suggestion string

	// Path is the resolution path for ErrCyclicalDependency, with the
	// repeated id appended at the end.
	Path []string

	// Cause is the underlying error, if any.
	Cause error
}

var _ error = (*Error)(nil)

func (e *Error) Error() string {
	var b strings.Builder
	if e.ID != "" {
		fmt.Fprintf(&b, "service %q: ", e.ID)
	}
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is this error's Kind.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain, or the empty
// Kind if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func newError(kind Kind, id, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		ID:      id,
		Message: fmt.Sprintf(format, args...),
	}
}

func errFrozen(id string) error {
	return newError(ErrContainerFrozen, id,
		"container is frozen; no further registration is allowed")
}

func errDuplicate(id string) error {
	return newError(ErrDuplicateServiceID, id,
		"attempted to register the same service id multiple times")
}

func errCycle(path []string) error {
	e := newError(ErrCyclicalDependency, path[len(path)-1],
		"cyclical service dependency detected on (%s)", strings.Join(path, " -> "))
	e.Path = path
	return e
}

func errNotFound(id, suggestion string) error {
	e := newError(ErrServiceNotFound, id,
		"service not found, did you mean %q?", suggestion)
	e.Suggestion = suggestion
	return e
}

func errEmpty(id string) error {
	return newError(ErrEmptyContainer, id,
		"cannot fetch service because no services have been registered")
}
