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

// Package loader fills an ioc.Container from declarative configuration or
// from a callback.
//
// The declarative form is a YAML (or JSON) mapping from service id to
// configuration, processed in document order:
//
//	dsn: postgres://localhost/app      # a value
//	db: "@database"                    # an alias
//	database:
//	  constructor: sql.Open            # looked up in the Registry
//	  autowire: false
//	  args: [postgres, "@dsn"]         # "@" marks a service reference
//	users:
//	  constructor: NewUserStore        # autowired by default
//	  tags: [store]
//	  calls:
//	    - method: SetLimit
//	      args: [100]
//	clock:
//	  factory: systemClock
//
// Constructors and factories are referred to by name and looked up in a
// Registry, since configuration cannot carry Go functions.
package loader
