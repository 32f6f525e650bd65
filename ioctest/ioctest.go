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

// Package ioctest holds helpers for testing code that uses an ioc.Container.
package ioctest

import (
	"strings"

	"go.uber.org/ioc"
	"go.uber.org/ioc/iocevent"
)

// TB is a subset of the standard library's testing.TB interface. It's
// satisfied by both *testing.T and *testing.B.
type TB interface {
	Logf(string, ...interface{})
	Errorf(string, ...interface{})
	FailNow()
}

// New builds a container that logs its events to the test log. Options
// given here are applied after the test logger, so a WithLogger option
// replaces it.
func New(tb TB, opts ...ioc.Option) *ioc.Container {
	logger := &iocevent.ConsoleLogger{W: writer{tb}}
	return ioc.New(append([]ioc.Option{ioc.WithLogger(logger)}, opts...)...)
}

// RequireCompile compiles c, failing the test if that fails.
func RequireCompile(tb TB, c *ioc.Container) {
	if err := c.Compile(); err != nil {
		tb.Errorf("container didn't compile: %+v", err)
		tb.FailNow()
	}
}

// RequireGet resolves id as a T, failing the test if that fails.
func RequireGet[T any](tb TB, c *ioc.Container, id string) T {
	v, err := ioc.Get[T](c, id)
	if err != nil {
		tb.Errorf("couldn't get %q: %+v", id, err)
		tb.FailNow()
	}
	return v
}

// writer sends each write to the test log.
type writer struct{ tb TB }

func (w writer) Write(p []byte) (int, error) {
	w.tb.Logf("%s", strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}
