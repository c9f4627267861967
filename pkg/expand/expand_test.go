package expand

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	tests := []struct {
		it   string
		doc  string
		vars map[string]string
		want string
	}{
		{
			it:   "can_substitute_a_placeholder",
			doc:  `<title>@@@TITLE@@@</title>`,
			vars: map[string]string{"TITLE": "cadence"},
			want: `<title>cadence</title>`,
		},
		{
			it:   "copies_braces_as_is",
			doc:  `var config = {a: '{{b}}', c: '@@@CDN_URL@@@'};{@@@X@@@}`,
			vars: map[string]string{"CDN_URL": "https://cdn/", "X": "}}"},
			want: `var config = {a: '{{b}}', c: 'https://cdn/'};{}}}`,
		},
		{
			it:   "copies_value_with_template_syntax_as_is",
			doc:  `@@@CONFIG@@@`,
			vars: map[string]string{"CONFIG": `{"t":"{{ .Values }}"}`},
			want: `{"t":"{{ .Values }}"}`,
		},
		{
			it:   "can_repeat_a_placeholder",
			doc:  "@@@VERSION@@@\n@@@VERSION@@@",
			vars: map[string]string{"VERSION": "1.2"},
			want: "1.2\n1.2",
		},
		{
			it:   "ignores_lower_case_tokens",
			doc:  `@@@title@@@`,
			vars: map[string]string{},
			want: `@@@title@@@`,
		},
		{
			it:   "can_pipe_through_functions",
			doc:  `@@@TITLE | upper@@@ @@@TITLE|quote@@@`,
			vars: map[string]string{"TITLE": "cadence"},
			want: `CADENCE "cadence"`,
		},
		{
			it:   "can_pipe_through_functions_with_at_sign_arguments",
			doc:  `<a>@@@EMAIL | replace "@" " at "@@@</a> @@@EMAIL@@@`,
			vars: map[string]string{"EMAIL": "me@example.org"},
			want: `<a>me at example.org</a> me@example.org`,
		},
		{
			it:   "can_escape_html",
			doc:  `<title>@@@TITLE | html@@@</title>`,
			vars: map[string]string{"TITLE": "a < b"},
			want: `<title>a &lt; b</title>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.it, func(t *testing.T) {
			got, err := Run("test", []byte(tt.doc), tt.vars)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestRunMissing(t *testing.T) {
	_, err := Run("index.tpl.html", []byte("<html>\n@@@TITLE@@@ @@@STYLE@@@\n@@@NOPE@@@"), map[string]string{
		"TITLE": "x",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingPlaceholder))

	var me *MissingError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, "STYLE", me.Name)
	assert.Equal(t, 2, me.Line)
	assert.EqualError(t, err, "index.tpl.html:2: missing placeholder value: STYLE")
}

func TestRunMissingWithAtSignPipeline(t *testing.T) {
	_, err := Run("index.tpl.html", []byte("<p>\n@@@NOPE | replace \"@\" \"at\"@@@</p>"), map[string]string{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingPlaceholder))

	var me *MissingError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, "NOPE", me.Name)
	assert.Equal(t, 2, me.Line)
}

func TestRunBadPipeline(t *testing.T) {
	_, err := Run("t", []byte(`@@@TITLE | nosuchfunc@@@`), map[string]string{"TITLE": "x"})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrMissingPlaceholder))
}

func TestNames(t *testing.T) {
	got := Names([]byte(`@@@B@@@ @@@A | lower@@@ @@@B@@@`))
	assert.Equal(t, []string{"B", "A"}, got)
}

func TestFunctions(t *testing.T) {
	fns := getDefaultFunctions()
	_, hasEnv := fns["env"]
	assert.False(t, hasEnv)

	assert.Equal(t, `{"a":1}`, toJson(map[string]int{"a": 1}))
	assert.Equal(t, "a: 1\n", toYaml(map[string]int{"a": 1}))
	assert.Equal(t, "a = 1\n", toToml(map[string]int{"a": 1}))
	assert.Equal(t, map[string]interface{}{"a": float64(1)}, fromJson(`{"a":1}`))
	assert.Contains(t, fromYaml(`[`), "Error")
}
