package renderers

import (
	"encoding/json"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/3-lines-studio/sdui/internal/core"
	"github.com/3-lines-studio/sdui/internal/vdom"
)

// Retained returns the built-in html element renderers.
func Retained() map[string]core.RetainedRenderer {
	return map[string]core.RetainedRenderer{
		core.TypeHeader:  core.RetainedFunc(Header),
		core.TypeButton:  core.RetainedFunc(Button),
		core.TypeSection: core.RetainedFunc(Section),
	}
}

func Header(props core.Props, children []*html.Node) *html.Node {
	var h core.Header
	if err := props.Decode(&h); err != nil {
		return nil
	}

	height := h.Height
	if height == 0 {
		height = 60
	}

	header := element("header", map[string]any{
		"backgroundColor": or(h.BackgroundColor, "#FFFFFF"),
		"color":           or(h.TextColor, "#000000"),
		"height":          px(height),
		"display":         "flex",
		"alignItems":      "center",
		"justifyContent":  "center",
		"padding":         "0 16px",
		"width":           "100%",
	})

	title := element("h1", map[string]any{"fontSize": "1.25rem", "fontWeight": "700"})
	appendText(title, h.Title)
	header.AppendChild(title)

	appendAll(header, children)
	return header
}

var buttonColors = map[core.ButtonStyle][2]string{
	core.ButtonPrimary:   {"#3B82F6", "#FFFFFF"},
	core.ButtonSecondary: {"#E5E7EB", "#1F2937"},
	core.ButtonOutline:   {"transparent", "#1F2937"},
}

func Button(props core.Props, children []*html.Node) *html.Node {
	var b core.Button
	if err := props.Decode(&b); err != nil {
		return nil
	}

	colors, ok := buttonColors[b.Style]
	if !ok {
		colors = buttonColors[core.ButtonPrimary]
	}

	radius := "4px"
	if b.CornerRadius > 0 {
		radius = px(b.CornerRadius)
	}

	style := map[string]any{
		"width":           "100%",
		"padding":         "12px 0",
		"fontWeight":      "500",
		"cursor":          "pointer",
		"border":          "none",
		"borderRadius":    radius,
		"backgroundColor": or(b.BackgroundColor, colors[0]),
		"color":           or(b.TextColor, colors[1]),
	}
	if b.Style == core.ButtonOutline {
		style["backgroundColor"] = "transparent"
		style["border"] = "1px solid #D1D5DB"
	}

	button := element("button", style)
	setAction(button, b.Action)
	appendText(button, b.Title)
	appendAll(button, children)
	return button
}

func Section(props core.Props, children []*html.Node) *html.Node {
	var s core.Section
	if err := props.Decode(&s); err != nil {
		return nil
	}

	section := element("section", map[string]any{"padding": "16px"})

	if s.Title != "" {
		title := element("h2", map[string]any{"fontSize": "1.125rem", "fontWeight": "700"})
		appendText(title, s.Title)
		section.AppendChild(title)
	}

	containerStyle := map[string]any{"marginTop": "8px"}
	switch s.Layout {
	case core.LayoutGrid:
		columns := s.Columns
		if columns == 0 {
			columns = 2
		}
		containerStyle["display"] = "grid"
		containerStyle["gap"] = "16px"
		containerStyle["gridTemplateColumns"] = fmt.Sprintf("repeat(%d, 1fr)", columns)
	case core.LayoutList:
		containerStyle["display"] = "flex"
		containerStyle["flexDirection"] = "column"
		containerStyle["gap"] = "8px"
	case core.LayoutHorizontal:
		containerStyle["display"] = "flex"
		containerStyle["overflowX"] = "auto"
		containerStyle["paddingBottom"] = "8px"
	}

	container := element("div", containerStyle)
	for _, item := range s.Items {
		container.AppendChild(sectionItem(item, s.Layout))
	}
	section.AppendChild(container)

	appendAll(section, children)
	return section
}

var sectionIconSizes = map[core.Layout]string{
	core.LayoutGrid:       "48px",
	core.LayoutList:       "32px",
	core.LayoutHorizontal: "40px",
}

func sectionItem(item core.SectionItem, layout core.Layout) *html.Node {
	style := map[string]any{
		"display":         "flex",
		"padding":         "8px",
		"backgroundColor": "white",
		"borderRadius":    "8px",
		"boxShadow":       "0 1px 2px 0 rgba(0, 0, 0, 0.05)",
	}
	switch layout {
	case core.LayoutList:
		style["alignItems"] = "center"
		style["padding"] = "12px"
	case core.LayoutHorizontal:
		style["flexDirection"] = "column"
		style["alignItems"] = "center"
		style["flexShrink"] = "0"
		style["marginRight"] = "12px"
		style["width"] = "80px"
	default:
		style["flexDirection"] = "column"
		style["alignItems"] = "center"
	}
	if item.Action != nil {
		style["cursor"] = "pointer"
	}

	el := element("div", style)
	setAction(el, item.Action)

	if item.IconURL != "" {
		size := sectionIconSizes[layout]
		if size == "" {
			size = sectionIconSizes[core.LayoutGrid]
		}
		icon := element("img", map[string]any{"width": size, "height": size})
		icon.Attr = append(icon.Attr,
			html.Attribute{Key: "src", Val: item.IconURL},
			html.Attribute{Key: "alt", Val: item.Title},
		)
		el.AppendChild(icon)
	}

	title := element("span", map[string]any{"fontSize": "0.875rem", "fontWeight": "500"})
	appendText(title, item.Title)
	el.AppendChild(title)
	return el
}

func element(tag string, style map[string]any) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	if css := vdom.StyleString(style); css != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "style", Val: css})
	}
	return n
}

func appendText(n *html.Node, text string) {
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

func appendAll(parent *html.Node, children []*html.Node) {
	for _, c := range children {
		if c != nil && c.Parent == nil {
			parent.AppendChild(c)
		}
	}
}

// setAction records the action as data for the client; nothing is dispatched.
func setAction(n *html.Node, action *core.Action) {
	if action == nil {
		return
	}
	data, err := json.Marshal(action)
	if err != nil {
		return
	}
	n.Attr = append(n.Attr, html.Attribute{Key: "data-action", Val: string(data)})
}

func or(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func px(v float64) string {
	return fmt.Sprintf("%gpx", v)
}
