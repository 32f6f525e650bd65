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

// Package paramnames recovers the declared parameter names of Go functions
// without calling them.
//
// Go's reflection exposes parameter types but not their names. The names are
// recovered from the declaration form instead: either declaration text handed
// to Parse, or the source file the runtime symbol table points at for a
// compiled function (FromFunc).
package paramnames

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
)

// Code classifies an extraction failure.
type Code int

const (
	// Unparseable means the input is not a function or type declaration.
	Unparseable Code = iota + 1
	// Anonymous means the input is a function literal or closure.
	Anonymous
	// UnsupportedParameter means a parameter is unnamed or blank.
	UnsupportedParameter
	// MissingConstructor means a type declaration has no New<Type> function.
	MissingConstructor
)

func (c Code) String() string {
	switch c {
	case Unparseable:
		return "unparseable declaration"
	case Anonymous:
		return "anonymous declaration"
	case UnsupportedParameter:
		return "unsupported parameter syntax"
	case MissingConstructor:
		return "missing constructor"
	default:
		return fmt.Sprintf("Code(%d)", int(c))
	}
}

// Error is returned for every extraction failure.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%v: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

func newError(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// DeclKind is the kind of a parsed declaration.
type DeclKind int

const (
	// Function is a plain function declaration.
	Function DeclKind = iota + 1
	// Type is a type declaration, constructed through New<Type>.
	Type
)

func (k DeclKind) String() string {
	switch k {
	case Function:
		return "function"
	case Type:
		return "type"
	default:
		return fmt.Sprintf("DeclKind(%d)", int(k))
	}
}

// Param is a declared parameter.
type Param struct {
	Name string

	// Variadic is set for a trailing ...T parameter, which callers may
	// omit.
	Variadic bool
}

// Declaration is the structural summary of a function or type declaration.
type Declaration struct {
	Name string
	Kind DeclKind

	// Embedded reports whether a struct type embeds another type.
	Embedded bool

	// HasConstructor reports whether a New<Name> function was found for a
	// type declaration. Always false for functions.
	HasConstructor bool

	// Params are the parameters of the function, or of the type's
	// constructor.
	Params []Param
}

// Names returns the parameter names in declaration order.
func (d *Declaration) Names() []string {
	names := make([]string, len(d.Params))
	for i, p := range d.Params {
		names[i] = p.Name
	}
	return names
}

// Parse parses declaration text. The first declaration decides the kind:
//
//	func NewServer(config *Config, logger *zap.Logger) *Server
//
// is a Function with parameters config and logger, while
//
//	type Server struct{ ... }
//	func NewServer(config *Config) *Server { ... }
//
// is a Type whose constructor parameters are config.
func Parse(src string) (*Declaration, error) {
	if expr, err := parser.ParseExpr(strings.TrimSpace(src)); err == nil {
		if _, ok := expr.(*ast.FuncLit); ok {
			return nil, newError(Anonymous, "function declaration must have a name: %q", src)
		}
	}

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "", "package p\n"+src, 0)
	if err != nil {
		return nil, &Error{
			Code:    Unparseable,
			Message: "input was neither a function nor a type declaration",
			Err:     err,
		}
	}
	return fromDecls(f.Decls)
}

// ConstructorParams returns the parameter names used to construct the
// declared function or type.
func ConstructorParams(src string) ([]string, error) {
	d, err := Parse(src)
	if err != nil {
		return nil, err
	}
	if d.Kind == Type && !d.HasConstructor {
		return nil, newError(MissingConstructor, "type %s has no New%s function", d.Name, d.Name)
	}
	return d.Names(), nil
}

func fromDecls(decls []ast.Decl) (*Declaration, error) {
	if len(decls) == 0 {
		return nil, newError(Unparseable, "no declaration found")
	}

	switch decl := decls[0].(type) {
	case *ast.FuncDecl:
		return funcDeclaration(decl)
	case *ast.GenDecl:
		if decl.Tok == token.TYPE && len(decl.Specs) > 0 {
			return typeDeclaration(decl.Specs[0].(*ast.TypeSpec), decls)
		}
	}
	return nil, newError(Unparseable, "input was neither a function nor a type declaration")
}

func funcDeclaration(fd *ast.FuncDecl) (*Declaration, error) {
	params, err := fieldParams(fd.Name.Name, fd.Type.Params)
	if err != nil {
		return nil, err
	}
	return &Declaration{
		Name:   fd.Name.Name,
		Kind:   Function,
		Params: params,
	}, nil
}

func typeDeclaration(spec *ast.TypeSpec, decls []ast.Decl) (*Declaration, error) {
	d := &Declaration{
		Name: spec.Name.Name,
		Kind: Type,
	}

	if st, ok := spec.Type.(*ast.StructType); ok && st.Fields != nil {
		for _, field := range st.Fields.List {
			if len(field.Names) == 0 {
				d.Embedded = true
				break
			}
		}
	}

	ctorName := "New" + d.Name
	for _, decl := range decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Recv != nil || fd.Name.Name != ctorName {
			continue
		}
		params, err := fieldParams(ctorName, fd.Type.Params)
		if err != nil {
			return nil, err
		}
		d.HasConstructor = true
		d.Params = params
		break
	}
	return d, nil
}

func fieldParams(fn string, fields *ast.FieldList) ([]Param, error) {
	if fields == nil {
		return nil, nil
	}

	params := make([]Param, 0, fields.NumFields())
	for _, field := range fields.List {
		if len(field.Names) == 0 {
			return nil, newError(UnsupportedParameter, "%s has an unnamed parameter", fn)
		}
		_, variadic := field.Type.(*ast.Ellipsis)
		for _, name := range field.Names {
			if name.Name == "_" {
				return nil, newError(UnsupportedParameter, "%s has a blank parameter", fn)
			}
			params = append(params, Param{Name: name.Name, Variadic: variadic})
		}
	}
	return params, nil
}
