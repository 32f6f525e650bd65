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

// Package iocevent defines a means of observing what an ioc.Container does.
//
// # Changing the Logger
//
// By default, a container logs nothing. Use the ioc.WithLogger option to
// install an implementation of the [Logger] interface.
//
//	c := ioc.New(
//		ioc.WithLogger(&iocevent.ConsoleLogger{W: os.Stderr}),
//	)
//
// If your application already uses Zap, the [ZapLogger] writes the same
// events as structured log entries.
//
//	c := ioc.New(
//		ioc.WithLogger(&iocevent.ZapLogger{Logger: log}),
//	)
//
// # Implementing a Custom Logger
//
// [Event] is a union type that represents all the different events that a
// container can emit. Use a type switch to handle each event type.
//
//	func (l *MyLogger) LogEvent(e iocevent.Event) {
//		switch e := e.(type) {
//		case *iocevent.Materialized:
//			// ...
//		// ...
//		}
//	}
//
// LogEvent is called with the container lock held. Implementations must not
// call back into the container.
package iocevent
