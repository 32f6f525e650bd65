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
	"bytes"
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructor(t *testing.T) {
	t.Parallel()

	c, err := newConstructor("buffer", bytes.NewBufferString)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Arity())
	assert.Equal(t, "bytes.NewBufferString()", c.String())
	assert.Equal(t, reflect.TypeOf(&bytes.Buffer{}), c.out)
	assert.False(t, c.returnsErr)

	got, err := c.call("buffer", []interface{}{"hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", got.(*bytes.Buffer).String())
}

func TestConvertArg(t *testing.T) {
	t.Parallel()

	var (
		intType     = reflect.TypeOf(0)
		int8Type    = reflect.TypeOf(int8(0))
		uint16Type  = reflect.TypeOf(uint16(0))
		float32Type = reflect.TypeOf(float32(0))
		stringType  = reflect.TypeOf("")
		pointerType = reflect.TypeOf(&bytes.Buffer{})
		stringerTyp = reflect.TypeOf((*interface{ String() string })(nil)).Elem()
	)

	tests := []struct {
		name   string
		give   interface{}
		to     reflect.Type
		wantOK bool
		want   interface{}
	}{
		{"assignable", 42, intType, true, 42},
		{"numeric widening", int8(4), intType, true, 4},
		{"float to int", 2.0, intType, true, 2},
		{"fits int8", -128, int8Type, true, int8(-128)},
		{"int8 overflow", 300, int8Type, false, nil},
		{"fits uint16", 65535, uint16Type, true, uint16(65535)},
		{"uint16 overflow", 65536, uint16Type, false, nil},
		{"negative to unsigned", -1, uint16Type, false, nil},
		{"unsigned to int8", uint(127), int8Type, true, int8(127)},
		{"unsigned int8 overflow", uint64(128), int8Type, false, nil},
		{"unsigned int overflow", uint64(math.MaxUint64), intType, false, nil},
		{"fractional float to int", 3.7, intType, false, nil},
		{"fractional float to unsigned", 0.5, uint16Type, false, nil},
		{"negative float to unsigned", -2.0, uint16Type, false, nil},
		{"float uint16 overflow", 70000.0, uint16Type, false, nil},
		{"float int overflow", 1e19, intType, false, nil},
		{"NaN to int", math.NaN(), intType, false, nil},
		{"float32 overflow", 1e39, float32Type, false, nil},
		{"float32 narrowing", 1.5, float32Type, true, float32(1.5)},
		{"int to float", 3, float32Type, true, float32(3)},
		{"interface", &bytes.Buffer{}, stringerTyp, true, nil},
		{"nil pointer", nil, pointerType, true, (*bytes.Buffer)(nil)},
		{"nil int", nil, intType, false, nil},
		{"string to int", "42", intType, false, nil},
		{"int to string", 42, stringType, false, nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, ok := convertArg(tt.give, tt.to)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK && tt.want != nil {
				assert.Equal(t, tt.want, v.Interface())
			}
		})
	}
}
