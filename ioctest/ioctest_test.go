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

package ioctest

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/ioc"
	"go.uber.org/ioc/internal/ioclog"
)

// Verify that TB always matches testing.T.
var _ TB = (*testing.T)(nil)

type tb struct {
	failures int
	errors   *bytes.Buffer
	logs     *bytes.Buffer
}

func newTB() *tb {
	return &tb{0, &bytes.Buffer{}, &bytes.Buffer{}}
}

func (t *tb) FailNow() {
	t.failures++
}

func (t *tb) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(t.errors, format, args...)
	t.errors.WriteRune('\n')
}

func (t *tb) Logf(format string, args ...interface{}) {
	fmt.Fprintf(t.logs, format, args...)
	t.logs.WriteRune('\n')
}

func TestNewLogsToTest(t *testing.T) {
	t.Parallel()

	spy := newTB()
	c := New(spy)
	require.NoError(t, c.Set("port", 8080))

	assert.Equal(t, "[IoC] SUPPLY\tport\tint\n", spy.logs.String())
	assert.Zero(t, spy.failures)
}

func TestNewAppliesOptions(t *testing.T) {
	t.Parallel()

	var events ioclog.Spy
	spy := newTB()
	c := New(spy, ioc.WithLogger(&events), ioc.RegisterSelf())
	require.NoError(t, c.Set("port", 8080))

	assert.True(t, c.Has(ioc.ContainerID))
	assert.Equal(t, []string{"Supplied"}, events.EventTypes())
	assert.Empty(t, spy.logs.String())
}

func TestRequireCompile(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		spy := newTB()
		c := New(spy)
		require.NoError(t, c.Set("port", 8080))

		RequireCompile(spy, c)
		assert.Zero(t, spy.failures)
		assert.Empty(t, spy.errors.String())
		assert.True(t, c.Frozen())
	})

	t.Run("failure", func(t *testing.T) {
		t.Parallel()

		spy := newTB()
		c := New(spy)
		_, err := c.RegisterSimple("addr", fmt.Sprint, "port")
		require.NoError(t, err)

		RequireCompile(spy, c)
		assert.Equal(t, 1, spy.failures)
		assert.Contains(t, spy.errors.String(), "container didn't compile")
		assert.Contains(t, spy.errors.String(), "service not found")
	})
}

func TestRequireGet(t *testing.T) {
	t.Parallel()

	spy := newTB()
	c := New(spy)
	require.NoError(t, c.Set("port", 8080))

	assert.Equal(t, 8080, RequireGet[int](spy, c, "port"))
	assert.Zero(t, spy.failures)

	assert.Equal(t, "", RequireGet[string](spy, c, "port"))
	assert.Equal(t, 1, spy.failures)
	assert.Contains(t, spy.errors.String(), `couldn't get "port"`)
}
