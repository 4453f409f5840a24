package core

import (
	"encoding/json"

	"github.com/3-lines-studio/sdui/internal/vdom"
)

// ChildrenProp is the key under which virtual renderers receive their
// rendered children. It replaces any source prop of the same name.
const ChildrenProp = "children"

// Props is the property bag handed to renderers.
type Props map[string]any

func (p Props) String(key string) string {
	s, _ := p[key].(string)
	return s
}

func (p Props) StringOr(key, fallback string) string {
	if s := p.String(key); s != "" {
		return s
	}
	return fallback
}

func (p Props) Float(key string) (float64, bool) {
	switch v := p[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

func (p Props) Bool(key string) bool {
	b, _ := p[key].(bool)
	return b
}

// Children returns the rendered virtual children.
func (p Props) Children() []*vdom.Element {
	children, _ := p[ChildrenProp].([]*vdom.Element)
	return children
}

func (p Props) Action(key string) *Action {
	raw, ok := p[key]
	if !ok || raw == nil {
		return nil
	}
	if a, ok := raw.(*Action); ok {
		return a
	}
	if a, ok := raw.(Action); ok {
		return &a
	}
	var a Action
	if err := p.decodeValue(raw, &a); err != nil || a.Type == "" {
		return nil
	}
	return &a
}

// Decode converts the props, minus rendered children, into v.
func (p Props) Decode(v any) error {
	plain := make(map[string]any, len(p))
	for k, val := range p {
		if k != ChildrenProp {
			plain[k] = val
		}
	}
	return p.decodeValue(plain, v)
}

func (p Props) decodeValue(raw any, v any) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// clone copies p along with any nested maps and slices, so renderers can
// modify what they receive without touching the tree.
func (p Props) clone() Props {
	out := make(Props, len(p)+1)
	for k, v := range p {
		out[k] = deepCopy(v)
	}
	return out
}

func deepCopy(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = deepCopy(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = deepCopy(val)
		}
		return out
	case []map[string]any:
		out := make([]map[string]any, len(v))
		for i, val := range v {
			out[i], _ = deepCopy(val).(map[string]any)
		}
		return out
	default:
		return v
	}
}
