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

package ioc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/ioc"
	"go.uber.org/multierr"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		c := ioc.New()
		_, err := c.Autowire("service_d", newServiceD)
		require.NoError(t, err)
		_, err = c.RegisterSimple("service_c", newServiceC, "b")
		require.NoError(t, err)
		_, err = c.Register("service_b", newServiceB)
		require.NoError(t, err)
		require.NoError(t, c.Alias("b", "service_b"))

		assert.NoError(t, c.Validate())
	})

	t.Run("reports every problem", func(t *testing.T) {
		t.Parallel()

		c := ioc.New()
		_, err := c.Autowire("greeting", newOtherGreeting)
		require.NoError(t, err)
		d, err := c.Register("mailer", newMailer)
		require.NoError(t, err)
		d.AddMethodCall("Send").AddMethodCall("SetTransport", ioc.Ref("transprot"))
		d, err = c.Register("triple", func(a, b, c int) int { return a + b + c })
		require.NoError(t, err)
		d.SetArguments(1, 2)

		err = c.Validate()
		require.Error(t, err)

		var kinds []ioc.Kind
		for _, e := range multierr.Errors(err) {
			kinds = append(kinds, ioc.KindOf(e))
		}
		assert.Equal(t, []ioc.Kind{
			ioc.ErrUnknownAutowireDependency,
			ioc.ErrUndefinedMethodCall,
			ioc.ErrServiceNotFound,
			ioc.ErrArgumentCountMismatch,
		}, kinds)

		// Nothing was built.
		assert.False(t, c.Frozen())
	})

	t.Run("cycles", func(t *testing.T) {
		t.Parallel()

		c := ioc.New()
		_, err := c.Autowire("Foo", newFoo)
		require.NoError(t, err)
		_, err = c.Autowire("Bar", newBar)
		require.NoError(t, err)
		_, err = c.Autowire("Baz", newBaz)
		require.NoError(t, err)

		err = c.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ioc.ErrCyclicalDependency)
		assert.Contains(t, err.Error(), "Foo -> Bar -> Baz -> Foo")
		assert.Len(t, multierr.Errors(err), 1)
	})

	t.Run("cycles through aliases", func(t *testing.T) {
		t.Parallel()

		c := ioc.New()
		_, err := c.Register("Foo", newFoo)
		require.NoError(t, err)
		require.NoError(t, c.Alias("Bar", "Foo"))
		mustDefinition(t, c, "Foo").SetArguments(ioc.Ref("Bar"))

		err = c.Validate()
		assert.ErrorIs(t, err, ioc.ErrCyclicalDependency)
		assert.Contains(t, err.Error(), "Foo -> Foo")
	})

	t.Run("factories are skipped", func(t *testing.T) {
		t.Parallel()

		c := ioc.New()
		_, err := c.RegisterFactory("anything", func(r ioc.Resolver) (interface{}, error) {
			return r.Get("missing")
		})
		require.NoError(t, err)
		assert.NoError(t, c.Validate())
	})
}
