package vdom

import "reflect"

const TextType = "#text"

// Element is a virtual element descriptor. Type is a tag name such as "div"
// or TextType for text content.
type Element struct {
	Type     string         `json:"type"`
	Key      string         `json:"key,omitempty"`
	Props    map[string]any `json:"props,omitempty"`
	Children []*Element     `json:"children,omitempty"`
	Text     string         `json:"text,omitempty"`
}

// H creates an element. Nil children are dropped.
func H(typ string, props map[string]any, children ...*Element) *Element {
	el := &Element{Type: typ, Props: props}
	for _, c := range children {
		if c != nil {
			el.Children = append(el.Children, c)
		}
	}
	return el
}

func Text(s string) *Element {
	return &Element{Type: TextType, Text: s}
}

func (e *Element) WithKey(key string) *Element {
	e.Key = key
	return e
}

// Equal reports structural equality.
func (e *Element) Equal(other *Element) bool {
	return reflect.DeepEqual(e, other)
}

func Div(props map[string]any, children ...*Element) *Element {
	return H("div", props, children...)
}

func Span(props map[string]any, text string) *Element {
	return H("span", props, Text(text))
}

func Img(src, alt string, props map[string]any) *Element {
	if props == nil {
		props = map[string]any{}
	}
	props["src"] = src
	props["alt"] = alt
	return H("img", props)
}
