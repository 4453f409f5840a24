package vdom

import (
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ToHTML materialises a virtual element into a detached html.Node tree for
// server-side output. Non-scalar props other than style are not rendered.
func ToHTML(e *Element) *html.Node {
	if e == nil {
		return nil
	}
	if e.Type == TextType {
		return &html.Node{Type: html.TextNode, Data: e.Text}
	}

	n := &html.Node{
		Type:     html.ElementNode,
		Data:     e.Type,
		DataAtom: atom.Lookup([]byte(e.Type)),
	}

	for _, key := range slices.Sorted(maps.Keys(e.Props)) {
		if key == "children" {
			continue
		}
		name, val, ok := attribute(key, e.Props[key])
		if ok {
			n.Attr = append(n.Attr, html.Attribute{Key: name, Val: val})
		}
	}
	if e.Key != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "data-key", Val: e.Key})
	}

	if e.Text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: e.Text})
	}
	for _, c := range e.Children {
		if child := ToHTML(c); child != nil {
			n.AppendChild(child)
		}
	}
	return n
}

func Render(w io.Writer, e *Element) error {
	n := ToHTML(e)
	if n == nil {
		return nil
	}
	return html.Render(w, n)
}

func attribute(key string, value any) (string, string, bool) {
	if key == "className" {
		key = "class"
	}
	if !ValidAttrName(key) {
		return "", "", false
	}
	if key == "style" {
		if m, ok := value.(map[string]any); ok {
			return key, StyleString(m), len(m) > 0
		}
	}
	switch v := value.(type) {
	case bool:
		if !v {
			return "", "", false
		}
		return key, "", true
	default:
		s, ok := Scalar(value)
		return key, s, ok
	}
}

// ValidAttrName reports whether name can be written as an html attribute
// key as is. The renderer does not escape keys.
func ValidAttrName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r < 0x20, r == 0x7f, unicode.IsSpace(r):
			return false
		case r == '"', r == '\'', r == '>', r == '<', r == '/', r == '=', r == '`':
			return false
		}
	}
	return true
}

// Scalar formats strings, numbers and booleans; other values report false.
func Scalar(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case interface{ String() string }:
		if _, isNumber := value.(interface{ Float64() (float64, error) }); isNumber {
			return v.String(), true
		}
	}
	return "", false
}

// StyleString converts a camelCase style map into a CSS declaration list.
func StyleString(style map[string]any) string {
	var sb strings.Builder
	for _, key := range slices.Sorted(maps.Keys(style)) {
		val, ok := Scalar(style[key])
		if !ok || val == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(";")
		}
		sb.WriteString(kebab(key))
		sb.WriteString(":")
		sb.WriteString(val)
	}
	return sb.String()
}

func kebab(s string) string {
	var sb strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
