package payload_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shineerrors "github.com/arthur-debert/shine/pkg/errors"
	"github.com/arthur-debert/shine/pkg/payload"
)

type point struct{ X, Y int }

type label struct{ text string }

func (l label) String() string { return l.text }

func TestMap_KeepsInsertionOrder(t *testing.T) {
	m := payload.NewMap()
	m.Set("zeta", 1)
	m.Set("alpha", 2)
	m.Set("zeta", 3)

	assert.Equal(t, []string{"zeta", "alpha"}, m.Keys())
	v, ok := m.Get("zeta")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, 2, m.Len())

	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":3,"alpha":2}`, string(b))

	var nilMap *payload.Map
	assert.Equal(t, 0, nilMap.Len())
}

func TestMapOf_SkipsNonStringKeys(t *testing.T) {
	m := payload.MapOf("a", 1, 2, "x", "b")
	assert.Equal(t, []string{"a"}, m.Keys())
}

func TestFromGoMap_SortsKeys(t *testing.T) {
	m := payload.FromGoMap(map[string]any{"c": 1, "a": 2, "b": 3})
	assert.Equal(t, []string{"a", "b", "c"}, m.Keys())
}

func TestDecodeJSON(t *testing.T) {
	v, err := payload.DecodeJSON([]byte(`{"b": [1, {"y": true, "x": null}], "a": "s"}`))
	require.NoError(t, err)

	m, ok := v.(*payload.Map)
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, m.Keys())

	b, _ := m.Get("b")
	list, ok := b.([]any)
	require.True(t, ok)
	assert.Equal(t, json.Number("1"), list[0])
	assert.Equal(t, []string{"y", "x"}, list[1].(*payload.Map).Keys())
}

func TestDecodeJSON_Errors(t *testing.T) {
	for _, input := range []string{"{not json", `{"a": 1} trailing`, "", `{"a": }`, "[1, 2"} {
		t.Run(input, func(t *testing.T) {
			_, err := payload.DecodeJSON([]byte(input))
			require.Error(t, err)
			assert.True(t, shineerrors.IsErrorCode(err, shineerrors.ErrMalformedInput))
			assert.True(t, payload.Malformed(err))
		})
	}
}

func TestDecodeYAML(t *testing.T) {
	v, err := payload.DecodeYAML([]byte(`
people:
  - name: Elena
    score: 0.87
  - name: Ana
    score: 0.5
base: &base
  z: 1
copy: *base
`))
	require.NoError(t, err)

	m := v.(*payload.Map)
	assert.Equal(t, []string{"people", "base", "copy"}, m.Keys())

	people, _ := m.Get("people")
	first := people.([]any)[0].(*payload.Map)
	assert.Equal(t, []string{"name", "score"}, first.Keys())

	cp, _ := m.Get("copy")
	assert.Equal(t, []string{"z"}, cp.(*payload.Map).Keys())

	empty, err := payload.DecodeYAML(nil)
	require.NoError(t, err)
	assert.Nil(t, empty)

	_, err = payload.DecodeYAML([]byte("a: [1, 2"))
	assert.True(t, payload.Malformed(err))
}

func TestClassify(t *testing.T) {
	big := payload.NewMap()
	for _, k := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		big.Set(k, 1)
	}

	tests := []struct {
		name  string
		input any
		want  payload.Kind
	}{
		{"small map", payload.MapOf("a", 1), payload.KindKeyValue},
		{"empty map", payload.NewMap(), payload.KindKeyValue},
		{"threshold map", big, payload.KindStructured},
		{"rows", []any{payload.MapOf("a", 1), payload.MapOf("a", 2)}, payload.KindTable},
		{"empty sequence", []any{}, payload.KindTable},
		{"mixed sequence", []any{payload.MapOf("a", 1), 2}, payload.KindList},
		{"scalars", []int{1, 2}, payload.KindList},
		{"array", [2]string{"a", "b"}, payload.KindList},
		{"struct map", map[string]point{"p": {1, 2}}, payload.KindKeyValue},
		{"json text", `{"a":1}`, payload.KindKeyValue},
		{"json bytes", []byte(`[1,2]`), payload.KindList},
		{"plain text", "hello {x}", payload.KindPlain},
		{"number", 3.14, payload.KindPlain},
		{"struct", point{1, 2}, payload.KindPlain},
		{"int keyed map", map[int]string{1: "a"}, payload.KindPlain},
		{"nil", nil, payload.KindPlain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, _, err := payload.Classify(tt.input, payload.DefaultThreshold)
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind, "got %s", kind)
		})
	}
}

func TestClassify_Malformed(t *testing.T) {
	kind, value, err := payload.Classify("  {not json", 10)
	require.Error(t, err)
	assert.Equal(t, payload.KindPlain, kind)
	assert.Equal(t, "  {not json", value)

	var se *shineerrors.ShineError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, shineerrors.ErrMalformedInput, se.Code)
}

func TestClassify_ThresholdDefaultsWhenUnset(t *testing.T) {
	kind, _, err := payload.Classify(payload.MapOf("a", 1), 0)
	require.NoError(t, err)
	assert.Equal(t, payload.KindKeyValue, kind)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "key_value", payload.KindKeyValue.String())
	assert.Equal(t, "structured", payload.KindStructured.String())
	assert.Equal(t, "table", payload.KindTable.String())
	assert.Equal(t, "list", payload.KindList.String())
	assert.Equal(t, "tree", payload.KindTree.String())
	assert.Equal(t, "plain", payload.KindPlain.String())
}

func TestStringify(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"nil", nil, ""},
		{"string", "x", "x"},
		{"bytes", []byte("raw"), "raw"},
		{"int", 42, "42"},
		{"float", 0.870, "0.87"},
		{"whole float", 3.0, "3"},
		{"json number", json.Number("1.50"), "1.50"},
		{"bool", true, "true"},
		{"error", errors.New("bad"), "bad"},
		{"ordered map", payload.MapOf("b", 1, "a", []any{"x"}), `{"b":1,"a":["x"]}`},
		{"go map", map[string]int{"b": 1, "a": 2}, `{"a":2,"b":1}`},
		{"slice", []string{"a", "b"}, `["a","b"]`},
		{"nil map pointer", (*payload.Map)(nil), ""},
		{"nil stringer pointer", (*label)(nil), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, payload.Stringify(tt.input))
		})
	}
}

func TestNormalize(t *testing.T) {
	in := map[string]any{
		"list": []int{1, 2},
		"nested": map[string]string{
			"k": "v",
		},
	}
	out := payload.Normalize(in).(*payload.Map)
	assert.Equal(t, []string{"list", "nested"}, out.Keys())

	list, _ := out.Get("list")
	assert.Equal(t, []any{1, 2}, list)

	nested, _ := out.Get("nested")
	assert.IsType(t, &payload.Map{}, nested)

	p := &point{1, 2}
	assert.Equal(t, point{1, 2}, payload.Normalize(p))
	assert.Equal(t, []byte("x"), payload.Normalize([]byte("x")))
}

func TestMap_NilReceiver(t *testing.T) {
	var m *payload.Map

	assert.Nil(t, m.Keys())
	_, ok := m.Get("a")
	assert.False(t, ok)
	assert.NotPanics(t, func() {
		m.Each(func(string, any) { t.Fatal("called on nil map") })
	})

	b, err := json.Marshal(payload.MapOf("inner", m))
	require.NoError(t, err)
	assert.Equal(t, `{"inner":null}`, string(b))

	var zero payload.Map
	zero.Set("a", 1)
	assert.Equal(t, []string{"a"}, zero.Keys())
}

func TestNormalize_NilValues(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  any
	}{
		{"nil", nil, nil},
		{"nil map pointer", (*payload.Map)(nil), nil},
		{"nil struct pointer", (*point)(nil), nil},
		{"nil stringer pointer", (*label)(nil), nil},
		{"nil go map", map[string]any(nil), payload.NewMap()},
		{"nil slice", []map[string]any(nil), []any{}},
		{"nested nil", []any{(*payload.Map)(nil)}, []any{nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got any
			require.NotPanics(t, func() { got = payload.Normalize(tt.input) })
			assert.Equal(t, tt.want, got)
		})
	}
}
