package core

import (
	"encoding/json"
	"testing"

	"github.com/3-lines-studio/sdui/internal/vdom"
)

func TestProps(t *testing.T) {
	p := Props{
		"title":  "Hello",
		"height": 60.0,
		"count":  json.Number("3"),
		"on":     true,
		"action": map[string]any{"type": "navigate", "destination": "/home"},
		"broken": map[string]any{"destination": "/x"},
		ChildrenProp: []*vdom.Element{vdom.Text("child")},
	}

	if p.String("title") != "Hello" || p.String("height") != "" {
		t.Error("String")
	}
	if p.StringOr("missing", "fallback") != "fallback" {
		t.Error("StringOr")
	}
	if f, ok := p.Float("height"); !ok || f != 60 {
		t.Errorf("Float(height) = %v, %v", f, ok)
	}
	if f, ok := p.Float("count"); !ok || f != 3 {
		t.Errorf("Float(count) = %v, %v", f, ok)
	}
	if _, ok := p.Float("title"); ok {
		t.Error("Float(title) should fail")
	}
	if !p.Bool("on") || p.Bool("title") {
		t.Error("Bool")
	}
	if len(p.Children()) != 1 {
		t.Error("Children")
	}

	a := p.Action("action")
	if a == nil || a.Type != ActionNavigate || a.Destination != "/home" {
		t.Errorf("Action = %+v", a)
	}
	if p.Action("broken") != nil || p.Action("missing") != nil {
		t.Error("Action should be nil for invalid or missing values")
	}

	var h struct {
		Title    string `json:"title"`
		Children any    `json:"children"`
	}
	if err := p.Decode(&h); err != nil {
		t.Fatal(err)
	}
	if h.Title != "Hello" || h.Children != nil {
		t.Errorf("Decode = %+v", h)
	}
}
