package vdom

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestH(t *testing.T) {
	el := H("div", nil, nil, Text("a"), nil, Span(nil, "b"))

	require.Len(t, el.Children, 2)
	assert.Equal(t, TextType, el.Children[0].Type)
	assert.Equal(t, "span", el.Children[1].Type)
}

func TestImgSetsSourceAndAlt(t *testing.T) {
	el := Img("a.png", "logo", map[string]any{"className": "w-6"})
	assert.Equal(t, map[string]any{"className": "w-6", "src": "a.png", "alt": "logo"}, el.Props)

	el = Img("b.png", "", nil)
	assert.Equal(t, "b.png", el.Props["src"])
}

func TestEqual(t *testing.T) {
	a := Div(map[string]any{"id": "x"}, Text("hi")).WithKey("k")
	b := Div(map[string]any{"id": "x"}, Text("hi")).WithKey("k")
	c := Div(map[string]any{"id": "x"}, Text("hi")).WithKey("other")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestElementJSON(t *testing.T) {
	data, err := json.Marshal(H("p", map[string]any{"className": "x"}, Text("hi")).WithKey("k"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"p","key":"k","props":{"className":"x"},"children":[{"type":"#text","text":"hi"}]}`, string(data))
}

func TestRender(t *testing.T) {
	el := H("button", map[string]any{
		"className":   "btn primary",
		"style":       map[string]any{"backgroundColor": "#fff", "borderRadius": "4px", "empty": ""},
		"disabled":    false,
		"hidden":      true,
		"data-count":  3.0,
		"data-action": `{"type":"navigate"}`,
		"onClick":     map[string]any{"not": "rendered"},
		"children":    []*Element{Text("ignored")},
	}, Text("Buy <now>")).WithKey("b1")

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, el))

	want := `<button class="btn primary" data-action="{&#34;type&#34;:&#34;navigate&#34;}" data-count="3" hidden="" style="background-color:#fff;border-radius:4px" data-key="b1">Buy &lt;now&gt;</button>`
	assert.Equal(t, want, buf.String())
}

func TestRenderSkipsInvalidAttributeNames(t *testing.T) {
	el := Div(map[string]any{
		`x"><script>alert(1)</script><i a`: "v",
		"id":                               "ok",
	})

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, el))
	assert.Equal(t, `<div id="ok"></div>`, buf.String())
}

func TestValidAttrName(t *testing.T) {
	for _, name := range []string{"id", "data-count", "aria-label", "xml:lang"} {
		assert.True(t, ValidAttrName(name), name)
	}
	for _, name := range []string{"", "a b", `a"b`, "a'b", "a>b", "a/b", "a=b", "a\tb", "a\x00"} {
		assert.False(t, ValidAttrName(name), "%q", name)
	}
}

func TestRenderNil(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, nil))
	assert.Empty(t, buf.String())
	assert.Nil(t, ToHTML(nil))
}

func TestScalar(t *testing.T) {
	cases := []struct {
		in   any
		want string
		ok   bool
	}{
		{"bar", "bar", true},
		{3.0, "3", true},
		{2.5, "2.5", true},
		{7, "7", true},
		{true, "true", true},
		{json.Number("12"), "12", true},
		{map[string]any{}, "", false},
		{[]any{1}, "", false},
		{nil, "", false},
	}
	for _, tc := range cases {
		got, ok := Scalar(tc.in)
		assert.Equal(t, tc.ok, ok, "%#v", tc.in)
		assert.Equal(t, tc.want, got, "%#v", tc.in)
	}
}

func TestStyleString(t *testing.T) {
	assert.Equal(t, "grid-template-columns:repeat(2, 1fr);height:60px",
		StyleString(map[string]any{"height": "60px", "gridTemplateColumns": "repeat(2, 1fr)"}))
	assert.Empty(t, StyleString(nil))
}
