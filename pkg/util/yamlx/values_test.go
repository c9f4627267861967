package yamlx

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	in := []byte(`
zeta: 1
alpha:
  - x
  - true
  - 1.5
empty:
anchor: &a
  k: v
alias: *a
`)
	got, err := Decode(in)
	require.NoError(t, err)

	m, ok := got.(*Mapping)
	require.True(t, ok)
	assert.Equal(t, []string{"zeta", "alpha", "empty", "anchor", "alias"}, m.Keys())
	assert.Equal(t, S(1), mustGet(t, m, "zeta"))
	assert.Equal(t, Sequence{S("x"), S(true), S(1.5)}, mustGet(t, m, "alpha"))
	assert.Equal(t, Null{}, mustGet(t, m, "empty"))
	assert.Equal(t, NewMapping("k", "v"), mustGet(t, m, "alias"))
}

func TestDecodeMergeKeys(t *testing.T) {
	in := []byte(`
base: &base
  a: 1
  b: 2
extra: &extra
  a: 9
  d: 4
derived:
  b: 3
  <<: *base
  c: 5
multi:
  <<: [*base, *extra]
quoted:
  "<<": *base
`)
	got, err := Decode(in)
	require.NoError(t, err)
	m := got.(*Mapping)

	assert.Equal(t, NewMapping("b", 3, "a", 1, "c", 5), mustGet(t, m, "derived"))
	assert.Equal(t, NewMapping("a", 1, "b", 2, "d", 4), mustGet(t, m, "multi"))
	assert.Equal(t, NewMapping("<<", NewMapping("a", 1, "b", 2)), mustGet(t, m, "quoted"))

	// merged keys are separate values.
	SetPath(m, S(7), "derived", "a")
	assert.Equal(t, "1", String(m, "base", "a"))
}

func TestDecodeMergeKeysCanBeOverridden(t *testing.T) {
	def, err := Decode([]byte(`
defaults: &defaults
  sound: false
  blur: true
notifications:
  <<: *defaults
  blur: false
`))
	require.NoError(t, err)

	got := Merge(def, NewMapping("notifications", NewMapping("sound", true)))
	assert.Equal(t, "true", String(got, "notifications", "sound"))
	assert.Equal(t, "false", String(got, "notifications", "blur"))
	assert.Equal(t, []string{"sound", "blur"}, got.(*Mapping).items["notifications"].(*Mapping).Keys())
}

func TestDecodeMergeKeyError(t *testing.T) {
	_, err := Decode([]byte(`a:
  <<: 1
`))
	assert.Error(t, err)
}

func TestDecodeJSONKeepsOrder(t *testing.T) {
	got, err := Decode([]byte(`{"b": 1, "a": {"d": null, "c": [1, 2]}}`))
	require.NoError(t, err)

	b, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Equal(t, `{"b":1,"a":{"d":null,"c":[1,2]}}`, string(b))
}

func TestDecodeEmpty(t *testing.T) {
	got, err := Decode([]byte("# nothing\n"))
	require.NoError(t, err)
	assert.Equal(t, NullKind, KindOf(got))
}

func TestDecodeError(t *testing.T) {
	_, err := Decode([]byte("a: [1, 2\n"))
	assert.Error(t, err)
}

func TestEncode(t *testing.T) {
	v := NewMapping(
		"config", NewMapping("xmpp", NewMapping("domain", "example.org", "url", "")),
		"install", NewMapping("packs", Sequence{S("default")}, "styles", Sequence{}, "target", nil),
	)

	got, err := Encode(v)
	require.NoError(t, err)
	assert.Equal(t, `config:
  xmpp:
    domain: example.org
    url: ""
install:
  packs:
    - default
  styles: []
  target: null
`, string(got))

	back, err := Decode(got)
	require.NoError(t, err)
	assert.Equal(t, v, back)
}

func TestFromInterface(t *testing.T) {
	in := map[string]interface{}{
		"b": []interface{}{int64(1), "two"},
		"a": map[interface{}]interface{}{"x": nil},
		"c": []map[string]interface{}{{"k": true}},
	}
	want := NewMapping(
		"a", NewMapping("x", nil),
		"b", Sequence{S(1), S("two")},
		"c", Sequence{NewMapping("k", true)},
	)
	got := FromInterface(in)
	assert.Equal(t, want, got)
	assert.Equal(t, map[string]interface{}{
		"a": map[string]interface{}{"x": nil},
		"b": []interface{}{1, "two"},
		"c": []interface{}{map[string]interface{}{"k": true}},
	}, ToInterface(got))
}

func TestPath(t *testing.T) {
	m := NewMapping("config", NewMapping("xmpp", NewMapping("domain", "example.org", "port", 5281)))

	assert.Equal(t, "example.org", String(m, "config", "xmpp", "domain"))
	assert.Equal(t, "5281", String(m, "config", "xmpp", "port"))
	assert.Equal(t, "", String(m, "config", "xmpp", "missing"))
	assert.Equal(t, "", String(m, "config", "xmpp", "domain", "deeper"))

	SetPath(m, S("conference.example.org"), "config", "xmpp", "muc")
	SetPath(m, Sequence{S("a"), S("b")}, "install", "packs")
	assert.Equal(t, "conference.example.org", String(m, "config", "xmpp", "muc"))
	assert.Equal(t, []string{"a", "b"}, Strings(m, "install", "packs"))
	assert.Equal(t, []string{"config", "install"}, m.Keys())
	assert.Nil(t, Strings(m, "install", "styles"))
}

func TestClone(t *testing.T) {
	m := NewMapping("a", NewMapping("b", Sequence{S(1)}))
	c := m.Clone()
	SetPath(c, S(2), "a", "b")

	assert.Equal(t, Sequence{S(1)}, mustGet(t, mustGet(t, m, "a").(*Mapping), "b"))
}

func TestIsEmpty(t *testing.T) {
	var tsts = []struct {
		in   string
		want bool
	}{
		{
			in: `
aa: 1
`,
			want: false,
		},
		{ // comment is no content.
			in: `#
`,
			want: true,
		},

		{ // separator is no content.
			in: `---
`,
			want: true,
		},
		{
			in:   `{}`,
			want: true,
		},
	}

	for _, tst := range tsts {
		got := IsEmpty([]byte(tst.in))
		assert.Equal(t, tst.want, got, tst.in)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "MappingKind", NewMapping().Kind().String())
	assert.Equal(t, "NullKind", KindOf(nil).String())
}

func mustGet(t *testing.T, m *Mapping, key string) Value {
	t.Helper()
	v, ok := m.Get(key)
	require.True(t, ok, "key %s", key)
	return v
}
