// Package payload classifies arbitrary values by shape so the renderer can
// pick a display strategy without the caller tagging the data.
package payload

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/arthur-debert/shine/pkg/errors"
)

// Kind is the rendering strategy chosen for a payload.
type Kind int

const (
	KindPlain Kind = iota
	KindKeyValue
	KindStructured
	KindTable
	KindList
	KindTree
)

// String returns the name used in logs and JSON output.
func (k Kind) String() string {
	switch k {
	case KindKeyValue:
		return "key_value"
	case KindStructured:
		return "structured"
	case KindTable:
		return "table"
	case KindList:
		return "list"
	case KindTree:
		return "tree"
	default:
		return "plain"
	}
}

// DefaultThreshold is the mapping size from which the structured block is used.
const DefaultThreshold = 10

// Classify applies the shape heuristic, first match wins:
//
//  1. mapping smaller than threshold      -> KindKeyValue
//  2. mapping at or above threshold       -> KindStructured
//  3. sequence of mappings (incl. empty)  -> KindTable
//  4. any other sequence                  -> KindList
//  5. string starting with '{' or '['     -> parsed as JSON, then 1-4
//  6. anything else                       -> KindPlain
//
// The returned value is the normalised payload (*Map, []any or the original
// value). A string that looks like JSON but does not parse yields KindPlain and
// a MALFORMED_INPUT error.
func Classify(v any, threshold int) (Kind, any, error) {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	if s, ok := asString(v); ok {
		if !LooksStructured(s) {
			return KindPlain, v, nil
		}
		parsed, err := DecodeJSON([]byte(s))
		if err != nil {
			return KindPlain, s, err
		}
		v = parsed
	}

	n := Normalize(v)
	switch val := n.(type) {
	case *Map:
		if val.Len() < threshold {
			return KindKeyValue, val, nil
		}
		return KindStructured, val, nil
	case []any:
		if IsTable(val) {
			return KindTable, val, nil
		}
		return KindList, val, nil
	}
	return KindPlain, n, nil
}

// LooksStructured reports whether s should be treated as JSON text.
func LooksStructured(s string) bool {
	t := strings.TrimSpace(s)
	return strings.HasPrefix(t, "{") || strings.HasPrefix(t, "[")
}

// IsTable reports whether every element is a mapping. An empty sequence
// qualifies so that it reaches the table path and its empty-input notice.
func IsTable(items []any) bool {
	for _, item := range items {
		if _, ok := item.(*Map); !ok {
			return false
		}
	}
	return true
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	case json.RawMessage:
		return string(s), true
	}
	return "", false
}

// Normalize converts Go maps with string keys into *Map (sorted keys) and
// slices or arrays into []any, recursively. Other values are returned as-is.
func Normalize(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case *Map:
		if val == nil {
			return nil
		}
		out := NewMap()
		val.Each(func(k string, x any) { out.Set(k, Normalize(x)) })
		return out
	case Map:
		return Normalize(&val)
	case []any:
		out := make([]any, len(val))
		for i, x := range val {
			out[i] = Normalize(x)
		}
		return out
	case map[string]any:
		m := FromGoMap(val)
		return Normalize(m)
	case []byte, json.RawMessage, json.Number, string:
		return v
	case error, fmt.Stringer:
		if isNilPointer(v) {
			return nil
		}
		return v
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v
		}
		src := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			src[iter.Key().String()] = iter.Value().Interface()
		}
		return Normalize(FromGoMap(src))
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = Normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		return Normalize(rv.Elem().Interface())
	}
	return v
}

// isNilPointer reports whether v is a typed nil pointer.
func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// Stringify returns the display form of a value.
func Stringify(v any) string {
	if isNilPointer(v) {
		return ""
	}
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case error:
		return val.Error()
	case fmt.Stringer:
		return val.String()
	case *Map, []any:
		return compactJSON(val)
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return compactJSON(Normalize(v))
	}
	return fmt.Sprint(v)
}

func compactJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// Malformed reports whether err is a parse failure of structured input.
func Malformed(err error) bool {
	return errors.IsErrorCode(err, errors.ErrMalformedInput)
}
