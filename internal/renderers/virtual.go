package renderers

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/3-lines-studio/sdui/internal/core"
	"github.com/3-lines-studio/sdui/internal/vdom"
)

// Virtual returns the built-in virtual element components.
func Virtual() map[string]core.VirtualRenderer {
	return map[string]core.VirtualRenderer{
		core.TypeScreen:      core.VirtualFunc(ScreenComponent),
		core.TypeHeader:      core.VirtualFunc(HeaderComponent),
		core.TypeButton:      core.VirtualFunc(ButtonComponent),
		core.TypeSection:     core.VirtualFunc(SectionComponent),
		core.TypeCarousel:    core.VirtualFunc(CarouselComponent),
		core.TypeProductList: core.VirtualFunc(ProductListComponent),
		core.TypeFooter:      core.VirtualFunc(FooterComponent),
	}
}

func ScreenComponent(props core.Props) *vdom.Element {
	return vdom.Div(map[string]any{
		"className": "flex flex-col min-h-screen",
		"style":     map[string]any{"backgroundColor": props.StringOr("backgroundColor", "#ffffff")},
	}, props.Children()...).WithKey(props.String("id"))
}

func HeaderComponent(props core.Props) *vdom.Element {
	var h core.Header
	if err := props.Decode(&h); err != nil {
		return nil
	}
	height := h.Height
	if height == 0 {
		height = 60
	}

	return vdom.H("header", map[string]any{
		"className": "flex items-center justify-center px-4 w-full",
		"style": map[string]any{
			"backgroundColor": or(h.BackgroundColor, "#FFFFFF"),
			"color":           or(h.TextColor, "#000000"),
			"height":          px(height),
		},
	}, append([]*vdom.Element{
		vdom.H("h1", map[string]any{"className": "text-xl font-bold"}, vdom.Text(h.Title)),
	}, props.Children()...)...).WithKey(h.ID)
}

var buttonClasses = map[core.ButtonStyle]string{
	core.ButtonPrimary:   "bg-blue-600 text-white hover:bg-blue-700",
	core.ButtonSecondary: "bg-gray-200 text-gray-800 hover:bg-gray-300",
	core.ButtonOutline:   "bg-transparent border border-gray-300 text-gray-800 hover:bg-gray-100",
}

func ButtonComponent(props core.Props) *vdom.Element {
	var b core.Button
	if err := props.Decode(&b); err != nil {
		return nil
	}

	classes, ok := buttonClasses[b.Style]
	if !ok {
		classes = buttonClasses[core.ButtonPrimary]
	}
	radius := b.CornerRadius
	if radius == 0 {
		radius = 4
	}

	style := map[string]any{"borderRadius": px(radius)}
	if b.BackgroundColor != "" {
		style["backgroundColor"] = b.BackgroundColor
	}
	if b.TextColor != "" {
		style["color"] = b.TextColor
	}

	attrs := map[string]any{
		"className": "w-full py-3 font-medium transition-colors " + classes,
		"style":     style,
	}
	withAction(attrs, b.Action)

	return vdom.H("button", attrs,
		append([]*vdom.Element{vdom.Text(b.Title)}, props.Children()...)...,
	).WithKey(b.ID)
}

var sectionContainerClasses = map[core.Layout]string{
	core.LayoutGrid:       "grid gap-4 mt-2",
	core.LayoutList:       "flex flex-col mt-2 space-y-2",
	core.LayoutHorizontal: "flex overflow-x-auto mt-2 pb-2",
}

var sectionItemClasses = map[core.Layout][2]string{
	core.LayoutGrid:       {"flex flex-col items-center p-2 bg-white rounded-lg shadow-sm", "w-12 h-12 mb-2"},
	core.LayoutList:       {"flex items-center p-3 bg-white rounded-lg shadow-sm", "w-8 h-8 mr-3"},
	core.LayoutHorizontal: {"flex-shrink-0 flex flex-col items-center p-2 mr-3 bg-white rounded-lg shadow-sm", "w-10 h-10 mb-1"},
}

func SectionComponent(props core.Props) *vdom.Element {
	var s core.Section
	if err := props.Decode(&s); err != nil {
		return nil
	}
	if s.Layout == "" {
		s.Layout = core.LayoutGrid
	}
	columns := s.Columns
	if columns == 0 {
		columns = 2
	}

	containerProps := map[string]any{"className": or(sectionContainerClasses[s.Layout], "mt-2")}
	if s.Layout == core.LayoutGrid {
		containerProps["style"] = map[string]any{"gridTemplateColumns": fmt.Sprintf("repeat(%d, 1fr)", columns)}
	}

	items := make([]*vdom.Element, 0, len(s.Items))
	for i, item := range s.Items {
		classes := sectionItemClasses[s.Layout]
		attrs := map[string]any{"className": classes[0]}
		if s.Layout == core.LayoutHorizontal {
			attrs["style"] = map[string]any{"width": "80px"}
		}
		withAction(attrs, item.Action)

		var icon *vdom.Element
		if item.IconURL != "" {
			icon = vdom.Img(item.IconURL, item.Title, map[string]any{"className": classes[1]})
		}
		titleClass := "text-sm font-medium"
		if s.Layout != core.LayoutList {
			titleClass += " text-center"
		}
		items = append(items, vdom.Div(attrs, icon, vdom.Span(map[string]any{"className": titleClass}, item.Title)).
			WithKey(or(item.ID, strconv.Itoa(i))))
	}

	var title *vdom.Element
	if s.Title != "" {
		title = vdom.H("h2", map[string]any{"className": "text-lg font-bold"}, vdom.Text(s.Title))
	}

	children := []*vdom.Element{title, vdom.Div(containerProps, items...)}
	return vdom.H("section", map[string]any{"className": "p-4"}, append(children, props.Children()...)...).WithKey(s.ID)
}

func CarouselComponent(props core.Props) *vdom.Element {
	var c core.Carousel
	if err := props.Decode(&c); err != nil {
		return nil
	}

	attrs := map[string]any{"className": "relative w-full overflow-hidden"}
	if c.Autoplay {
		interval := c.AutoplayInterval
		if interval == 0 {
			interval = 3000
		}
		attrs["data-autoplay"] = true
		attrs["data-autoplay-interval"] = interval
	}

	slides := make([]*vdom.Element, 0, len(c.Items))
	for i, item := range c.Items {
		slideAttrs := map[string]any{"className": "w-full flex-shrink-0"}
		withAction(slideAttrs, item.Action)
		slides = append(slides, vdom.Div(slideAttrs,
			vdom.Img(item.ImageURL, fmt.Sprintf("slide %d", i+1), map[string]any{"className": "w-full h-48 object-cover"}),
		).WithKey(item.ID))
	}

	dots := make([]*vdom.Element, 0, len(c.Items))
	for i, item := range c.Items {
		class := "w-2 h-2 rounded-full bg-gray-300"
		if i == 0 {
			class = "w-2 h-2 rounded-full bg-white"
		}
		dots = append(dots, vdom.H("span", map[string]any{"className": class}).WithKey(item.ID))
	}

	return vdom.Div(attrs, append([]*vdom.Element{
		vdom.Div(map[string]any{"className": "flex transition-transform duration-300"}, slides...),
		vdom.Div(map[string]any{"className": "absolute bottom-2 left-0 right-0 flex justify-center gap-1"}, dots...),
	}, props.Children()...)...).WithKey(c.ID)
}

var productListClasses = map[core.Layout]string{
	core.LayoutGrid:       "grid grid-cols-2 gap-4 mt-2",
	core.LayoutList:       "flex flex-col gap-3 mt-2",
	core.LayoutHorizontal: "flex overflow-x-auto gap-3 mt-2 pb-2",
}

func ProductListComponent(props core.Props) *vdom.Element {
	var p core.ProductList
	if err := props.Decode(&p); err != nil {
		return nil
	}
	if p.Layout == "" {
		p.Layout = core.LayoutHorizontal
	}
	showPrice := p.ShowPrice == nil || *p.ShowPrice
	showDiscount := p.ShowDiscountPrice == nil || *p.ShowDiscountPrice

	items := make([]*vdom.Element, 0, len(p.Items))
	for _, item := range p.Items {
		attrs := map[string]any{"className": "bg-white rounded-lg shadow-sm overflow-hidden"}
		if p.Layout == core.LayoutHorizontal {
			attrs["className"] = "flex-shrink-0 w-32 bg-white rounded-lg shadow-sm overflow-hidden"
		}
		withAction(attrs, item.Action)

		var badge *vdom.Element
		if item.Badge != "" {
			badge = vdom.Span(map[string]any{"className": "absolute top-2 left-2 bg-red-500 text-white text-xs px-2 py-1 rounded"}, item.Badge)
		}

		discounted := showDiscount && item.DiscountPrice != ""
		var price, discount *vdom.Element
		if showPrice && item.Price != "" {
			class := "text-sm mt-1 font-bold"
			if discounted {
				class = "text-sm mt-1 line-through text-gray-400"
			}
			price = vdom.H("p", map[string]any{"className": class}, vdom.Text(item.Price))
		}
		if discounted {
			discount = vdom.H("p", map[string]any{"className": "text-sm text-red-600 font-bold mt-1"}, vdom.Text(item.DiscountPrice))
		}

		items = append(items, vdom.Div(attrs,
			vdom.Div(map[string]any{"className": "relative"},
				vdom.Img(item.ImageURL, item.Title, map[string]any{"className": "w-full h-32 object-cover"}),
				badge,
			),
			vdom.Div(map[string]any{"className": "p-3"},
				vdom.H("h3", map[string]any{"className": "text-sm font-medium"}, vdom.Text(item.Title)),
				price,
				discount,
			),
		).WithKey(item.ID))
	}

	var title *vdom.Element
	if p.Title != "" {
		title = vdom.H("h2", map[string]any{"className": "text-lg font-bold"}, vdom.Text(p.Title))
	}

	return vdom.H("section", map[string]any{"className": "p-4"}, append([]*vdom.Element{
		title,
		vdom.Div(map[string]any{"className": productListClasses[p.Layout]}, items...),
	}, props.Children()...)...).WithKey(p.ID)
}

func FooterComponent(props core.Props) *vdom.Element {
	var f core.Footer
	if err := props.Decode(&f); err != nil {
		return nil
	}

	barClass := "flex items-center justify-around h-16"
	if f.Layout == core.FooterButtons {
		barClass = "flex items-center justify-around py-3"
	}

	items := make([]*vdom.Element, 0, len(f.Items))
	for _, item := range f.Items {
		class := "flex flex-col items-center text-gray-500"
		if item.IsSelected {
			class = "flex flex-col items-center text-blue-600"
		}
		attrs := map[string]any{"className": class}
		withAction(attrs, item.Action)

		var icon, badge *vdom.Element
		if item.IconURL != "" {
			icon = vdom.Img(item.IconURL, item.Title, map[string]any{"className": "w-6 h-6 mb-1"})
		}
		if item.BadgeCount > 0 {
			count := strconv.Itoa(item.BadgeCount)
			if item.BadgeCount > 9 {
				count = "9+"
			}
			badge = vdom.Span(map[string]any{"className": "absolute -top-1 -right-1 bg-red-500 text-white text-xs rounded-full w-4 h-4 flex items-center justify-center"}, count)
		}

		items = append(items, vdom.Div(attrs,
			vdom.Div(map[string]any{"className": "relative"}, icon, badge),
			vdom.Span(map[string]any{"className": "text-xs"}, item.Title),
		).WithKey(item.ID))
	}

	return vdom.Div(map[string]any{
		"className": "fixed bottom-0 left-0 right-0 shadow-top z-20",
		"style":     map[string]any{"backgroundColor": or(f.BackgroundColor, "#FFFFFF")},
	}, append([]*vdom.Element{vdom.Div(map[string]any{"className": barClass}, items...)}, props.Children()...)...).WithKey(f.ID)
}

func withAction(attrs map[string]any, action *core.Action) {
	if action == nil {
		return
	}
	data, err := json.Marshal(action)
	if err != nil {
		return
	}
	attrs["data-action"] = string(data)
}
