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

import (
	"fmt"
	"io"

	"go.uber.org/ioc/internal/iocreflect"
)

// ConsoleLogger is an event logger that writes human-readable messages to
// the console.
//
// Use this during development.
type ConsoleLogger struct {
	W io.Writer
}

var _ Logger = (*ConsoleLogger)(nil)

func (l *ConsoleLogger) logf(msg string, args ...interface{}) {
	fmt.Fprintf(l.W, "[IoC] "+msg+"\n", args...)
}

// LogEvent writes the given event to the console.
func (l *ConsoleLogger) LogEvent(event Event) {
	switch e := event.(type) {
	case *Registered:
		switch {
		case e.Err != nil:
			l.logf("ERROR\t\tFailed to register %q: %v", e.ID, e.Err)
		case e.Factory:
			l.logf("REGISTER\t%s <= factory", e.ID)
		case e.Autowired:
			l.logf("AUTOWIRE\t%s <= %v", e.ID, iocreflect.FuncName(e.Constructor))
		default:
			l.logf("REGISTER\t%s <= %v", e.ID, iocreflect.FuncName(e.Constructor))
		}
	case *Supplied:
		if e.Err != nil {
			l.logf("ERROR\t\tFailed to supply %q: %v", e.ID, e.Err)
		} else {
			l.logf("SUPPLY\t%s\t%v", e.ID, e.TypeName)
		}
	case *Aliased:
		if e.Err != nil {
			l.logf("ERROR\t\tFailed to alias %q to %q: %v", e.Alias, e.Target, e.Err)
		} else {
			l.logf("ALIAS\t\t%s => %s", e.Alias, e.Target)
		}
	case *CompilerPassApplied:
		if e.Err != nil {
			l.logf("ERROR\t\tCompiler pass %v failed: %v", e.Name, e.Err)
		} else {
			l.logf("PASS\t\t%v", e.Name)
		}
	case *Materialized:
		if e.Err != nil {
			l.logf("ERROR\t\tFailed to build %q: %v", e.ID, e.Err)
		} else {
			l.logf("BUILD\t\t%s\t%v", e.ID, e.TypeName)
		}
	case *Compiled:
		if e.Err != nil {
			l.logf("ERROR\t\tFailed to compile: %v", e.Err)
		} else {
			l.logf("COMPILED\t%d services", e.Services)
		}
	case *Frozen:
		l.logf("FROZEN")
	}
}
