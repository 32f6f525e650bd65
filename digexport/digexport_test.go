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

package digexport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"
	"go.uber.org/ioc"
)

func TestProvide(t *testing.T) {
	t.Parallel()

	t.Run("named values", func(t *testing.T) {
		t.Parallel()

		built := 0
		c := ioc.New()
		require.NoError(t, c.Set("port", 8080))
		require.NoError(t, c.Alias("listen_port", "port"))
		_, err := c.Register("buffer", func() *bytes.Buffer {
			built++
			return bytes.NewBufferString("hello")
		})
		require.NoError(t, err)
		_, err = c.RegisterFactory("writer", func(ioc.Resolver) (interface{}, error) {
			return io.Discard, nil
		})
		require.NoError(t, err)

		dc := dig.New()
		require.NoError(t, Provide(c, dc))
		assert.Zero(t, built, "definitions must be resolved lazily")

		type params struct {
			dig.In

			Port       int           `name:"port"`
			ListenPort int           `name:"listen_port"`
			Buffer     *bytes.Buffer `name:"buffer"`
		}

		require.NoError(t, dc.Invoke(func(p params) {
			assert.Equal(t, 8080, p.Port)
			assert.Equal(t, 8080, p.ListenPort)
			assert.Equal(t, "hello", p.Buffer.String())
		}))
		assert.Equal(t, 1, built)

		buf, err := c.Get("buffer")
		require.NoError(t, err)
		require.NoError(t, dc.Invoke(func(p params) {
			assert.Same(t, buf, p.Buffer)
		}))
	})

	t.Run("selected ids", func(t *testing.T) {
		t.Parallel()

		c := ioc.New()
		require.NoError(t, c.Set("port", 8080))
		require.NoError(t, c.Set("host", "localhost"))

		dc := dig.New()
		require.NoError(t, Provide(c, dc, "host"))

		type params struct {
			dig.In

			Host string `name:"host"`
			Port int    `name:"port" optional:"true"`
		}
		require.NoError(t, dc.Invoke(func(p params) {
			assert.Equal(t, "localhost", p.Host)
			assert.Zero(t, p.Port)
		}))
	})

	t.Run("construction errors surface through dig", func(t *testing.T) {
		t.Parallel()

		c := ioc.New()
		_, err := c.Register("broken", func() (*bytes.Buffer, error) {
			return nil, errors.New("great sadness")
		})
		require.NoError(t, err)

		dc := dig.New()
		require.NoError(t, Provide(c, dc))

		type params struct {
			dig.In

			Broken *bytes.Buffer `name:"broken"`
		}
		err = dc.Invoke(func(params) {})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "great sadness")
	})

	t.Run("collects every failure", func(t *testing.T) {
		t.Parallel()

		c := ioc.New()
		require.NoError(t, c.Set("nothing", nil))

		err := Provide(c, dig.New(), "nothing", "missing")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `service "nothing" is nil`)
		assert.ErrorIs(t, err, ioc.ErrServiceNotFound)
	})

	t.Run("duplicate names", func(t *testing.T) {
		t.Parallel()

		c := ioc.New()
		require.NoError(t, c.Set("port", 8080))

		dc := dig.New()
		require.NoError(t, Provide(c, dc, "port"))
		err := Provide(c, dc, "port")
		require.Error(t, err)
		assert.Contains(t, err.Error(), fmt.Sprintf("couldn't provide service %q", "port"))
	})
}
