package payload

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Truthy mirrors the truthiness rules clients apply to loosely typed JSON:
// null, false, 0, NaN and "" are false, everything else is true.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0 && !math.IsNaN(x)
	case string:
		return x != ""
	case *Object:
		return x != nil
	default:
		return true
	}
}

// Scalar returns the string form of a string, number or bool.
// Lists, objects and null report false.
func Scalar(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case float64:
		return FormatNumber(x), true
	case bool:
		return strconv.FormatBool(x), true
	default:
		return "", false
	}
}

// FormatNumber prints a number the way a JSON producer would: integers
// without a fractional part, no exponent below 1e21.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.Abs(f) >= 1e21:
		return strconv.FormatFloat(f, 'g', -1, 64)
	default:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
}

// Compact returns v as text: strings verbatim, everything else as compact JSON.
func Compact(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
