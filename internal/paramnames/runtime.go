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

package paramnames

import (
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"regexp"
	"runtime"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Parsed source files, keyed by path. Constructors of one package usually
// live in a handful of files, so a small cache covers a whole container.
var _sources = mustCache(64)

type source struct {
	fset *token.FileSet
	file *ast.File
}

func mustCache(size int) *lru.Cache[string, *source] {
	c, err := lru.New[string, *source](size)
	if err != nil {
		panic(err)
	}
	return c
}

// Closures are named after their enclosing function: pkg.Outer.func1,
// pkg.Outer.func1.2, pkg.glob..func1 or pkg.Outer.gowrap1.
var _closureName = regexp.MustCompile(`\.(func|gowrap)\d+(\.\d+)*$`)

// FromFunc returns the parameter names of a compiled, named function by
// parsing the source file it was compiled from.
//
// Function literals fail with Anonymous. Binaries built with -trimpath, or
// run without their sources, fail with Unparseable.
func FromFunc(fn interface{}) ([]string, error) {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func {
		return nil, newError(Unparseable, "%T is not a function", fn)
	}

	rf := runtime.FuncForPC(fv.Pointer())
	if rf == nil {
		return nil, newError(Unparseable, "no symbol information for %T", fn)
	}

	fullName := strings.TrimSuffix(rf.Name(), "-fm")
	fullName = strings.Replace(fullName, "[...]", "", -1)
	if _closureName.MatchString(fullName) {
		return nil, newError(Anonymous, "function declaration must have a name: %s", fullName)
	}

	name := fullName
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}

	file, line := rf.FileLine(rf.Entry())
	src, err := load(file)
	if err != nil {
		return nil, &Error{
			Code:    Unparseable,
			Message: "cannot read source of " + fullName,
			Err:     err,
		}
	}

	fd := findFunc(src, name, line)
	if fd == nil {
		return nil, newError(Unparseable, "declaration of %s not found in %s", fullName, file)
	}

	d, err := funcDeclaration(fd)
	if err != nil {
		return nil, err
	}
	return d.Names(), nil
}

func load(path string) (*source, error) {
	if src, ok := _sources.Get(path); ok {
		return src, nil
	}

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, nil, 0)
	if err != nil {
		return nil, err
	}

	src := &source{fset: fset, file: f}
	_sources.Add(path, src)
	return src, nil
}

// findFunc returns the declaration named name that spans line, falling back
// to the first top-level function with that name.
func findFunc(src *source, name string, line int) *ast.FuncDecl {
	var byName *ast.FuncDecl
	for _, decl := range src.file.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Name.Name != name {
			continue
		}

		start := src.fset.Position(fd.Pos()).Line
		end := src.fset.Position(fd.End()).Line
		if start <= line && line <= end {
			return fd
		}
		if byName == nil && fd.Recv == nil {
			byName = fd
		}
	}
	return byName
}
