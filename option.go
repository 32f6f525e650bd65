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
	"fmt"
	"strings"

	"go.uber.org/ioc/iocevent"
)

// ContainerID is the service id RegisterSelf registers the container under.
const ContainerID = "service_container"

// An Option configures a Container.
type Option interface {
	fmt.Stringer

	apply(*Container)
}

// WithLogger sets the logger the container reports its events to.
func WithLogger(logger iocevent.Logger) Option {
	return withLoggerOption{logger: logger}
}

type withLoggerOption struct {
	logger iocevent.Logger
}

func (o withLoggerOption) apply(c *Container) {
	if o.logger != nil {
		c.log = o.logger
	}
}

func (o withLoggerOption) String() string {
	return fmt.Sprintf("ioc.WithLogger(%T)", o.logger)
}

// RegisterSelf registers the container as a value under ContainerID, so
// that services and factories may depend on it.
func RegisterSelf() Option {
	return registerSelfOption{}
}

type registerSelfOption struct{}

func (registerSelfOption) apply(c *Container) {
	c.registerSelf = true
}

func (registerSelfOption) String() string {
	return "ioc.RegisterSelf()"
}

// Options bundles a group of options together.
func Options(opts ...Option) Option {
	return optionGroup(opts)
}

type optionGroup []Option

func (og optionGroup) apply(c *Container) {
	for _, opt := range og {
		opt.apply(c)
	}
}

func (og optionGroup) String() string {
	items := make([]string, len(og))
	for i, opt := range og {
		items[i] = fmt.Sprint(opt)
	}
	return fmt.Sprintf("ioc.Options(%s)", strings.Join(items, ", "))
}
