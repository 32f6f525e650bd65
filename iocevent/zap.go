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
	"go.uber.org/ioc/internal/iocreflect"
	"go.uber.org/zap"
)

// ZapLogger is an event logger that logs events to Zap.
type ZapLogger struct {
	Logger *zap.Logger
}

var _ Logger = (*ZapLogger)(nil)

// LogEvent logs the given event to the provided Zap logger.
func (l *ZapLogger) LogEvent(event Event) {
	switch e := event.(type) {
	case *Registered:
		if e.Err != nil {
			l.Logger.Error("registration failed",
				zap.String("id", e.ID),
				zap.Error(e.Err))
			return
		}
		if e.Factory {
			l.Logger.Info("registered factory", zap.String("id", e.ID))
			return
		}
		l.Logger.Info("registered",
			zap.String("id", e.ID),
			zap.String("constructor", iocreflect.FuncName(e.Constructor)),
			zap.String("type", iocreflect.ResultType(e.Constructor)),
			zap.Bool("autowired", e.Autowired),
		)
	case *Supplied:
		if e.Err != nil {
			l.Logger.Error("supply failed",
				zap.String("id", e.ID),
				zap.Error(e.Err))
			return
		}
		l.Logger.Info("supplied",
			zap.String("id", e.ID),
			zap.String("type", e.TypeName))
	case *Aliased:
		if e.Err != nil {
			l.Logger.Error("alias failed",
				zap.String("alias", e.Alias),
				zap.String("target", e.Target),
				zap.Error(e.Err))
			return
		}
		l.Logger.Info("aliased",
			zap.String("alias", e.Alias),
			zap.String("target", e.Target))
	case *CompilerPassApplied:
		if e.Err != nil {
			l.Logger.Error("compiler pass failed",
				zap.String("pass", e.Name),
				zap.Error(e.Err))
			return
		}
		l.Logger.Info("compiler pass applied", zap.String("pass", e.Name))
	case *Materialized:
		if e.Err != nil {
			l.Logger.Error("materialization failed",
				zap.String("id", e.ID),
				zap.Bool("eager", e.Eager),
				zap.Error(e.Err))
			return
		}
		l.Logger.Debug("materialized",
			zap.String("id", e.ID),
			zap.String("type", e.TypeName),
			zap.Bool("eager", e.Eager))
	case *Compiled:
		if e.Err != nil {
			l.Logger.Error("compile failed", zap.Error(e.Err))
			return
		}
		l.Logger.Info("compiled", zap.Int("services", e.Services))
	case *Frozen:
		l.Logger.Info("frozen")
	}
}
