package block

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) Value {
	t.Helper()
	v, err := Parse([]byte(src))
	require.NoError(t, err)
	return v
}

func TestParse_TagsKinds(t *testing.T) {
	v := mustParse(t, `{"n":null,"b":true,"num":1.5,"s":"x","seq":[1,"a"],"map":{"k":false}}`)

	require.Equal(t, Mapping, v.Kind)
	assert.Equal(t, []string{"n", "b", "num", "s", "seq", "map"}, v.Keys)
	assert.Equal(t, Null, v.Field("n").Kind)
	assert.Equal(t, Bool, v.Field("b").Kind)
	assert.Equal(t, Number, v.Field("num").Kind)
	assert.Equal(t, "1.5", v.Field("num").Text)
	assert.Equal(t, String, v.Field("s").Kind)
	assert.Equal(t, Sequence, v.Field("seq").Kind)
	assert.Len(t, v.Field("seq").Items, 2)
	assert.Equal(t, Mapping, v.Field("map").Kind)
	assert.Equal(t, Null, v.Field("missing").Kind)
}

func TestParse_DuplicateKeyKeepsFirstPositionLastValue(t *testing.T) {
	v := mustParse(t, `{"a":1,"b":2,"a":3}`)
	assert.Equal(t, []string{"a", "b"}, v.Keys)
	assert.Equal(t, "3", v.Field("a").Text)
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":          ``,
		"truncated":      `{"title":`,
		"trailing comma": `{"a":1,}`,
		"trailing data":  `{} {}`,
		"garbage":        `{}x`,
		"missing colon":  `{"a" 1}`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src))
			assert.Error(t, err)
		})
	}
}

func TestTruthy(t *testing.T) {
	v := mustParse(t, `{"t":true,"f":false,"z":0,"nz":-2,"e":"","s":"x","n":null,"ea":[],"eo":{}}`)

	truthy := map[string]bool{
		"t": true, "f": false, "z": false, "nz": true,
		"e": false, "s": true, "n": false, "ea": true, "eo": true,
	}
	for key, want := range truthy {
		assert.Equal(t, want, v.Field(key).Truthy(), key)
	}
}

func TestTruthyKeys_FiltersFalsyAndExperimental(t *testing.T) {
	v := mustParse(t, `{"b":true,"a":1,"off":false,"__experimentalLayout":true,"__expFoo":{"x":1}}`)
	assert.Equal(t, []string{"b", "a"}, TruthyKeys(v))
}

func TestTruthyKeys_NonMapping(t *testing.T) {
	assert.Empty(t, TruthyKeys(Value{Kind: Null}))
	assert.Empty(t, TruthyKeys(mustParse(t, `["a"]`)))
}

func TestInnerKeys(t *testing.T) {
	v := mustParse(t, `{"a":true,"b":false,"c":["z","y"]}`)
	assert.Equal(t, []string{"a", "c (y, z)"}, InnerKeys(v))
}

func TestInnerKeys_NestedMapping(t *testing.T) {
	v := mustParse(t, `{"spacing":{"padding":true,"margin":["top"],"blockGap":false,"__experimentalDefaultControls":{"padding":true}},"color":{}}`)
	assert.Equal(t, []string{"spacing (margin, padding)", "color ()"}, InnerKeys(v))
}

func TestInnerKeys_SequenceOfMixedScalars(t *testing.T) {
	// null sorts as "null" but prints empty; numbers print in shortest form.
	v := mustParse(t, `{"align":["wide",null,2,"full"],"n":[10,1.0],"flags":[true,false]}`)
	assert.Equal(t, []string{"align (2, full, , wide)", "n (1, 10)", "flags (false, true)"}, InnerKeys(v))
}

func TestInnerKeys_SequenceOfContainers(t *testing.T) {
	v := mustParse(t, `{"x":[{"a":1},["b",null,"c"]]}`)
	assert.Equal(t, []string{"x ([object Object], b,,c)"}, InnerKeys(v))
}

func TestSortStrings_UTF16Order(t *testing.T) {
	// U+1F600 is a surrogate pair (0xD83D...) and sorts before U+FF5E.
	ss := []string{"\uff5e", "\U0001F600", "b", "B", "a"}
	SortStrings(ss)
	assert.Equal(t, []string{"B", "a", "b", "\U0001F600", "\uff5e"}, ss)
}

func TestDecodeMetadata(t *testing.T) {
	m, err := DecodeMetadata([]byte(`{
		"title": "Paragraph",
		"description": "A block of text.",
		"name": "core/paragraph",
		"category": "text",
		"supports": {"anchor": true, "className": false, "typography": {"fontSize": true, "lineHeight": true}},
		"attributes": {"content": {}, "dropCap": {"type": "boolean"}}
	}`))
	require.NoError(t, err)

	assert.Equal(t, "Paragraph", m.Title)
	assert.Equal(t, "A block of text.", m.Description)
	assert.Equal(t, "core/paragraph", m.Name)
	assert.Equal(t, "text", m.Category)
	assert.Equal(t, []string{"anchor", "typography (fontSize, lineHeight)"}, m.SupportsList())
	assert.Equal(t, []string{"content", "dropCap"}, m.AttributesList())
}

func TestDecodeMetadata_MissingFieldsAreEmpty(t *testing.T) {
	m, err := DecodeMetadata([]byte(`{"name":"core/spacer"}`))
	require.NoError(t, err)

	assert.Equal(t, "core/spacer", m.Name)
	assert.Empty(t, m.Title)
	assert.Empty(t, m.SupportsList())
	assert.Empty(t, m.AttributesList())
}

func TestDecodeMetadata_NonObjectDocument(t *testing.T) {
	m, err := DecodeMetadata([]byte(`[1,2]`))
	require.NoError(t, err)
	assert.Empty(t, m.Name)
	assert.Empty(t, m.SupportsList())
}

func TestReadMetadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "block.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"title":"Quote","attributes":{"value":{"type":"string"}}}`), 0644))

	m, err := ReadMetadata(path)
	require.NoError(t, err)
	assert.Equal(t, path, m.Path)
	assert.Equal(t, "Quote", m.Title)
	assert.Equal(t, []string{"value"}, m.AttributesList())

	_, err = ReadMetadata(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"title":`), 0644))
	_, err = ReadMetadata(bad)
	assert.ErrorContains(t, err, bad)
}

func TestDisplay(t *testing.T) {
	v := mustParse(t, `{"n":null,"seq":[1,"a",null,{"k":true}],"num":10,"obj":{"k":1},"b":false}`)
	assert.Equal(t, "", v.Field("n").Display())
	assert.Equal(t, "1,a,,[object Object]", v.Field("seq").Display())
	assert.Equal(t, "10", v.Field("num").Display())
	assert.Equal(t, "[object Object]", v.Field("obj").Display())
	assert.Equal(t, "false", v.Field("b").Display())
}

func TestFormatNumber(t *testing.T) {
	cases := map[string]string{
		"1.0":      "1",
		"-0":       "0",
		"1.50":     "1.5",
		"1e3":      "1000",
		"0.000001": "0.000001",
		"1e-7":     "1e-7",
		"1.5e21":   "1.5e+21",
		"1e400":    "Infinity",
		"-1e400":   "-Infinity",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatNumber(in), in)
	}
}
