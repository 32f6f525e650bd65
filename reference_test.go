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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapResolver map[string]interface{}

func (m mapResolver) Has(id string) bool {
	_, ok := m[id]
	return ok
}

func (m mapResolver) Get(id string) (interface{}, error) {
	v, ok := m[id]
	if !ok {
		return nil, errors.New("not found: " + id)
	}
	return v, nil
}

func TestArguments(t *testing.T) {
	t.Parallel()

	args := toArguments([]interface{}{Ref("a"), "plain", Value(3), nil})
	assert.Equal(t, []Argument{Ref("a"), Value("plain"), Value(3), Value(nil)}, args)
	assert.Equal(t, []string{"a"}, references(args))

	assert.Equal(t, "@a", Ref("a").String())
	assert.Equal(t, "a", Ref("a").ServiceID())
	assert.Equal(t, "plain", Value("plain").String())

	got, err := resolveArguments(mapResolver{"a": 42}, args)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{42, "plain", 3, nil}, got)

	_, err = resolveArguments(mapResolver{}, args)
	assert.EqualError(t, err, "not found: a")
}
