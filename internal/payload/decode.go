package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// MaxDepth is the deepest array/object nesting Decode accepts, matching the
// limit encoding/json applies in Unmarshal.
const MaxDepth = 10000

var errTooDeep = fmt.Errorf("exceeded max depth %d", MaxDepth)

// Decode parses JSON text into the payload model, keeping object key order.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec, 0)
	if errors.Is(err, errTooDeep) {
		return nil, &DecodeError{Message: "JSON nested too deeply", Cause: err}
	}
	if err != nil {
		return nil, &DecodeError{Message: "invalid JSON", Cause: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &DecodeError{Message: "unexpected data after JSON value", Cause: err}
	}
	return v, nil
}

// DecodeText parses s as JSON, retrying once with markdown fences and
// surrounding prose stripped. It reports whether a JSON value was recovered.
func DecodeText(s string) (any, bool) {
	if v, err := Decode([]byte(s)); err == nil {
		return v, true
	}
	cleaned := CleanJSONBlock(s)
	if cleaned == s || cleaned == "" {
		return nil, false
	}
	v, err := Decode([]byte(cleaned))
	if err != nil {
		return nil, false
	}
	return v, true
}

// Normalize converts an arbitrary Go value into the payload model.
// Raw JSON bytes are decoded; other values are marshalled first, so plain
// maps come out with their keys sorted. Strings are returned untouched.
func Normalize(v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case *Object:
		if x == nil {
			return nil, nil
		}
		return x, nil
	case string, bool, float64:
		return x, nil
	case json.RawMessage:
		return Decode(x)
	case []byte:
		return Decode(x)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, &DecodeError{Message: fmt.Sprintf("cannot encode %T", v), Cause: err}
	}
	return Decode(data)
}

func decodeValue(dec *json.Decoder, depth int) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		if depth >= MaxDepth {
			return nil, errTooDeep
		}
		switch t {
		case '{':
			return decodeObject(dec, depth+1)
		case '[':
			return decodeArray(dec, depth+1)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", rune(t))
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, err
		}
		return f, nil
	default:
		// string, bool or nil
		return t, nil
	}
}

func decodeObject(dec *json.Decoder, depth int) (*Object, error) {
	obj := NewObject()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		value, err := decodeValue(dec, depth)
		if err != nil {
			return nil, err
		}
		obj.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder, depth int) ([]any, error) {
	list := []any{}
	for dec.More() {
		value, err := decodeValue(dec, depth)
		if err != nil {
			return nil, err
		}
		list = append(list, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return list, nil
}
