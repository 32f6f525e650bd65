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
)

func TestGetTyped(t *testing.T) {
	t.Parallel()

	c := ioc.New()
	require.NoError(t, c.Set("port", 8080))

	port, err := ioc.Get[int](c, "port")
	require.NoError(t, err)
	assert.Equal(t, 8080, port)

	_, err = ioc.Get[string](c, "port")
	require.Error(t, err)
	assert.ErrorIs(t, err, ioc.ErrTypeMismatch)
	assert.Contains(t, err.Error(), "service is a int, not a string")

	_, err = ioc.Get[int](c, "prot")
	assert.ErrorIs(t, err, ioc.ErrServiceNotFound)

	assert.Equal(t, 8080, ioc.MustGet[int](c, "port"))
	assert.Panics(t, func() { ioc.MustGet[string](c, "port") })
}
