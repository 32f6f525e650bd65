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

// Package ioc is a service container: a registry of services addressed by
// string ids, built lazily from registered recipes.
//
// # Registering services
//
// A service is either a finished value,
//
//	c := ioc.New()
//	c.Set("dsn", "postgres://localhost/app")
//
// or a definition, built from a constructor on first lookup and cached:
//
//	d, err := c.Register("database", sql.Open)
//	if err != nil {
//		// ...
//	}
//	d.SetArguments("postgres", ioc.Ref("dsn"))
//
// Constructors return a value, or a value and an error. Arguments are
// literals, or references to other services created with Ref.
//
// # Autowiring
//
// An autowired definition passes the services named like the constructor's
// parameters:
//
//	func NewUserStore(database *sql.DB, logger *zap.Logger) *UserStore
//
//	c.Autowire("users", NewUserStore) // passes "database" and "logger"
//
// Parameter names are read from the constructor's source file, so the
// constructor must be a named function and its source must be available at
// run time. Use (*Definition).SetParameterNames when neither holds.
//
// # Compiling
//
// Compile builds every service up front, surfacing missing dependencies and
// dependency cycles at a single point, and freezes the container against
// further registration.
//
// # Compiler passes
//
// A CompilerPass rewrites definitions in bulk, usually by tag. The
// ContainerAwareCompilerPass hands the container to services that implement
// ContainerAware and are tagged "container_aware".
package ioc
