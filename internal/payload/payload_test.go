package payload

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "json code block", input: "```json\n{\"key\": \"value\"}\n```", expected: `{"key": "value"}`},
		{name: "generic code block", input: "```\n{\"key\": \"value\"}\n```", expected: `{"key": "value"}`},
		{name: "code block with language", input: "```javascript\n{\"key\": \"value\"}\n```", expected: `{"key": "value"}`},
		{name: "plain JSON", input: `{"key": "value"}`, expected: `{"key": "value"}`},
		{name: "preamble before object", input: "Here is the analysis:\n{\"score\": 80}", expected: `{"score": 80}`},
		{name: "preamble before array", input: "Items:\n[\"a\", \"b\"]", expected: `["a", "b"]`},
		{name: "trailing text", input: "{\"key\": \"value\"}\n\nLet me know {if} you need more", expected: `{"key": "value"}`},
		{name: "braces inside strings", input: `Result: {"template": "Hello {name}!"} done`, expected: `{"template": "Hello {name}!"}`},
		{name: "escaped quotes", input: "Result: {\"message\": \"He said \\\"hi}\\\"\"}", expected: `{"message": "He said \"hi}\""}`},
		{name: "no JSON at all", input: "not json", expected: "not json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestDecode_PreservesKeyOrder(t *testing.T) {
	v, err := Decode([]byte(`{"zeta": 1, "alpha": {"b": true, "a": null}, "mid": [1, "two", 3.5]}`))
	require.NoError(t, err)

	obj, ok := AsObject(v)
	require.True(t, ok)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, obj.Keys())

	zeta, _ := obj.Get("zeta")
	assert.Equal(t, float64(1), zeta)

	alphaRaw, _ := obj.Get("alpha")
	alpha, ok := AsObject(alphaRaw)
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, alpha.Keys())
	a, present := alpha.Get("a")
	assert.True(t, present)
	assert.Nil(t, a)

	mid, _ := obj.Get("mid")
	assert.Equal(t, []any{float64(1), "two", 3.5}, mid)
}

func TestDecode_DuplicateKeyKeepsFirstPositionLastValue(t *testing.T) {
	v, err := Decode([]byte(`{"a": 1, "b": 2, "a": 3}`))
	require.NoError(t, err)

	obj, _ := AsObject(v)
	assert.Equal(t, []string{"a", "b"}, obj.Keys())
	a, _ := obj.Get("a")
	assert.Equal(t, float64(3), a)
}

func TestDecode_Errors(t *testing.T) {
	for _, input := range []string{``, `{`, `{"a" 1}`, `{"a": 1,}`, `{} trailing`, `[1, 2`, `not json`} {
		t.Run(input, func(t *testing.T) {
			_, err := Decode([]byte(input))
			require.Error(t, err)
			var decodeErr *DecodeError
			assert.ErrorAs(t, err, &decodeErr)
		})
	}
}

func TestDecode_NestingLimit(t *testing.T) {
	nested := func(depth int) []byte {
		return []byte(strings.Repeat("[", depth) + strings.Repeat("]", depth))
	}

	_, err := Decode(nested(MaxDepth))
	require.NoError(t, err)

	_, err = Decode(nested(MaxDepth + 1))
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Contains(t, decodeErr.Error(), "nested too deeply")

	// unterminated input far past the limit fails fast instead of recursing
	_, err = Decode([]byte(`{"skills": ` + strings.Repeat("[", 4<<20) + `}`))
	assert.ErrorAs(t, err, &decodeErr)

	_, ok := DecodeText(strings.Repeat(`{"a":`, MaxDepth+1))
	assert.False(t, ok)
}

func TestDecode_Scalars(t *testing.T) {
	v, err := Decode([]byte(`"hello"`))
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	v, err = Decode([]byte(` 42 `))
	require.NoError(t, err)
	assert.Equal(t, float64(42), v)

	v, err = Decode([]byte(`1e400`))
	require.NoError(t, err)
	assert.True(t, math.IsInf(v.(float64), 1))
}

func TestDecodeText(t *testing.T) {
	v, ok := DecodeText(`{"a": 1}`)
	require.True(t, ok)
	_, isObj := AsObject(v)
	assert.True(t, isObj)

	v, ok = DecodeText("```json\n{\"a\": 1}\n```")
	require.True(t, ok)
	_, isObj = AsObject(v)
	assert.True(t, isObj)

	_, ok = DecodeText("the analyzer is down")
	assert.False(t, ok)
}

func TestNormalize(t *testing.T) {
	v, err := Normalize(map[string]any{"b": 1, "a": []any{"x"}})
	require.NoError(t, err)
	obj, ok := AsObject(v)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, obj.Keys(), "plain maps come out sorted")

	v, err = Normalize(json.RawMessage(`{"y": 1, "x": 2}`))
	require.NoError(t, err)
	obj, _ = AsObject(v)
	assert.Equal(t, []string{"y", "x"}, obj.Keys())

	v, err = Normalize("raw text")
	require.NoError(t, err)
	assert.Equal(t, "raw text", v)

	v, err = Normalize(nil)
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = Normalize(make(chan int))
	assert.Error(t, err)
}

func TestObject_MarshalJSONKeepsOrder(t *testing.T) {
	obj := NewObject()
	obj.Set("z", 1.0)
	obj.Set("a", []any{"x"})
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":["x"]}`, string(data))
}

func TestTruthy(t *testing.T) {
	assert.False(t, Truthy(nil))
	assert.False(t, Truthy(""))
	assert.False(t, Truthy(0.0))
	assert.False(t, Truthy(math.NaN()))
	assert.False(t, Truthy(false))
	assert.True(t, Truthy("x"))
	assert.True(t, Truthy(2.0))
	assert.True(t, Truthy([]any{}))
	assert.True(t, Truthy(NewObject()))
}

func TestScalarAndFormatNumber(t *testing.T) {
	s, ok := Scalar(2020.0)
	assert.True(t, ok)
	assert.Equal(t, "2020", s)

	s, _ = Scalar(3.75)
	assert.Equal(t, "3.75", s)

	s, _ = Scalar(true)
	assert.Equal(t, "true", s)

	_, ok = Scalar([]any{"x"})
	assert.False(t, ok)
	_, ok = Scalar(nil)
	assert.False(t, ok)

	assert.Equal(t, "1e+21", FormatNumber(1e21))
	assert.Equal(t, "Infinity", FormatNumber(math.Inf(1)))
}

func TestCompact(t *testing.T) {
	obj := NewObject()
	obj.Set("code", 42.0)
	assert.Equal(t, `{"code":42}`, Compact(obj))
	assert.Equal(t, "plain", Compact("plain"))
	assert.Equal(t, `["a",1]`, Compact([]any{"a", 1.0}))
}
