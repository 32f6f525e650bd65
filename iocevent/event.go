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

package iocevent

// Event defines an event emitted by a container.
type Event interface {
	event() // Only iocevent can implement this interface.
}

// Logger is an interface for logging container events.
type Logger interface {
	// LogEvent is called when a container event occurs.
	LogEvent(Event)
}

func (*Registered) event()          {}
func (*Supplied) event()            {}
func (*Aliased) event()             {}
func (*CompilerPassApplied) event() {}
func (*Materialized) event()        {}
func (*Compiled) event()            {}
func (*Frozen) event()              {}

// Registered is emitted when a definition is added to the container, or
// fails to be added.
type Registered struct {
	// ID is the service id of the definition.
	ID string

	// Constructor is the constructor function, nil for factories.
	Constructor interface{}

	// Autowired reports whether constructor arguments are inferred from
	// parameter names.
	Autowired bool

	// Factory reports whether the definition is built by a factory.
	Factory bool

	// Err is non-nil if the registration was rejected.
	Err error
}

// Supplied is emitted when a finished value is added to the container.
type Supplied struct {
	ID       string
	TypeName string
	Err      error
}

// Aliased is emitted when an alias is added to the container.
type Aliased struct {
	Alias  string
	Target string
	Err    error
}

// CompilerPassApplied is emitted after a compiler pass has processed the
// container.
type CompilerPassApplied struct {
	// Name identifies the pass by its type.
	Name string
	Err  error
}

// Materialized is emitted after a definition's build recipe ran.
type Materialized struct {
	ID       string
	TypeName string

	// Eager is set when the service was built by Compile rather than on
	// first lookup.
	Eager bool

	Err error
}

// Compiled is emitted when Compile finishes.
type Compiled struct {
	// Services is the number of service ids that were resolved.
	Services int
	Err      error
}

// Frozen is emitted once, when the container stops accepting
// registrations.
type Frozen struct{}
