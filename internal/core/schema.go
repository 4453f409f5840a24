package core

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed component.schema.json
var componentSchemaSource string

const componentSchemaURL = "https://sdui.schemas.local/component.schema.json"

type ActionKind string

const (
	ActionNavigate ActionKind = "navigate"
	ActionDeeplink ActionKind = "deeplink"
	ActionWebview  ActionKind = "webview"
	ActionAPI      ActionKind = "api"
)

// Action describes a side effect attached to an interactive node. The engine
// never performs it; hosts receive it through their ActionHandler.
type Action struct {
	Type        ActionKind     `json:"type"`
	Destination string         `json:"destination"`
	Params      map[string]any `json:"params,omitempty"`
}

type Document struct {
	Version string  `json:"version"`
	Screen  *Screen `json:"screen"`
}

// Screen holds the raw component records. Entries are kept as decoded JSON so
// that unknown fields reach renderers untouched.
type Screen struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	Components      []any  `json:"components"`
}

func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid screen document: %w", err)
	}
	return &doc, nil
}

const (
	TypeScreen      = "screen"
	TypeHeader      = "header"
	TypeCarousel    = "carousel"
	TypeSection     = "section"
	TypeProductList = "product_list"
	TypeButton      = "button"
	TypeFooter      = "footer"
)

type Component interface {
	ComponentType() string
}

type Layout string

const (
	LayoutGrid       Layout = "grid"
	LayoutList       Layout = "list"
	LayoutHorizontal Layout = "horizontal"
)

type Header struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	BackgroundColor string  `json:"backgroundColor,omitempty"`
	TextColor       string  `json:"textColor,omitempty"`
	Height          float64 `json:"height,omitempty"`
}

type CarouselItem struct {
	ID       string  `json:"id"`
	ImageURL string  `json:"imageUrl"`
	Action   *Action `json:"action,omitempty"`
}

type Carousel struct {
	ID               string         `json:"id"`
	Items            []CarouselItem `json:"items"`
	Autoplay         bool           `json:"autoplay,omitempty"`
	AutoplayInterval float64        `json:"autoplayInterval,omitempty"`
}

type SectionItem struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	IconURL string  `json:"iconUrl,omitempty"`
	Action  *Action `json:"action,omitempty"`
}

type Section struct {
	ID      string        `json:"id"`
	Title   string        `json:"title"`
	Items   []SectionItem `json:"items"`
	Layout  Layout        `json:"layout"`
	Columns int           `json:"columns,omitempty"`
}

type ProductItem struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Price         string  `json:"price,omitempty"`
	DiscountPrice string  `json:"discountPrice,omitempty"`
	ImageURL      string  `json:"imageUrl"`
	Badge         string  `json:"badge,omitempty"`
	Action        *Action `json:"action,omitempty"`
}

// ProductList prices are shown unless explicitly disabled.
type ProductList struct {
	ID                string        `json:"id"`
	Title             string        `json:"title"`
	Items             []ProductItem `json:"items"`
	Layout            Layout        `json:"layout"`
	ShowPrice         *bool         `json:"showPrice,omitempty"`
	ShowDiscountPrice *bool         `json:"showDiscountPrice,omitempty"`
}

type ButtonStyle string

const (
	ButtonPrimary   ButtonStyle = "primary"
	ButtonSecondary ButtonStyle = "secondary"
	ButtonOutline   ButtonStyle = "outline"
)

type Button struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Style           ButtonStyle `json:"style,omitempty"`
	BackgroundColor string      `json:"backgroundColor,omitempty"`
	TextColor       string      `json:"textColor,omitempty"`
	CornerRadius    float64     `json:"cornerRadius,omitempty"`
	Action          *Action     `json:"action,omitempty"`
}

type FooterItem struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	IconURL    string  `json:"iconUrl,omitempty"`
	IsSelected bool    `json:"isSelected,omitempty"`
	BadgeCount int     `json:"badgeCount,omitempty"`
	Action     *Action `json:"action,omitempty"`
}

type FooterLayout string

const (
	FooterTabs    FooterLayout = "tabs"
	FooterButtons FooterLayout = "buttons"
)

type Footer struct {
	ID              string       `json:"id"`
	Items           []FooterItem `json:"items"`
	BackgroundColor string       `json:"backgroundColor,omitempty"`
	Layout          FooterLayout `json:"layout"`
}

// Unknown carries records whose type tag has no schema.
type Unknown struct {
	Type   string
	Fields map[string]any
}

func (Header) ComponentType() string      { return TypeHeader }
func (Carousel) ComponentType() string    { return TypeCarousel }
func (Section) ComponentType() string     { return TypeSection }
func (ProductList) ComponentType() string { return TypeProductList }
func (Button) ComponentType() string      { return TypeButton }
func (Footer) ComponentType() string      { return TypeFooter }
func (u Unknown) ComponentType() string   { return u.Type }

var variants = map[string]func() Component{
	TypeHeader:      func() Component { return &Header{} },
	TypeCarousel:    func() Component { return &Carousel{} },
	TypeSection:     func() Component { return &Section{} },
	TypeProductList: func() Component { return &ProductList{} },
	TypeButton:      func() Component { return &Button{} },
	TypeFooter:      func() Component { return &Footer{} },
}

func IsKnownType(typ string) bool {
	_, ok := variants[typ]
	return ok
}

// DecodeComponent validates props against the schema of typ and converts them
// into the typed variant. Unrecognised tags decode to Unknown without checks.
// The returned variant is a value, not a pointer.
func DecodeComponent(typ string, props map[string]any) (Component, error) {
	newVariant, ok := variants[typ]
	if !ok {
		return Unknown{Type: typ, Fields: props}, nil
	}

	raw, err := json.Marshal(props)
	if err != nil {
		return nil, &SchemaError{Type: typ, ID: stringField(props, "id"), Err: err}
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, &SchemaError{Type: typ, ID: stringField(props, "id"), Err: err}
	}

	schema, err := componentSchema(typ)
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(value); err != nil {
		return nil, &SchemaError{Type: typ, ID: stringField(props, "id"), Err: err}
	}

	target := newVariant()
	if err := json.Unmarshal(raw, target); err != nil {
		return nil, &SchemaError{Type: typ, ID: stringField(props, "id"), Err: err}
	}
	return deref(target), nil
}

func deref(c Component) Component {
	switch v := c.(type) {
	case *Header:
		return *v
	case *Carousel:
		return *v
	case *Section:
		return *v
	case *ProductList:
		return *v
	case *Button:
		return *v
	case *Footer:
		return *v
	}
	return c
}

var (
	schemaOnce     sync.Once
	schemaCompiler *jsonschema.Compiler
	schemaErr      error
	schemaMu       sync.Mutex
	schemaCache    = map[string]*jsonschema.Schema{}
)

func componentSchema(typ string) (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(componentSchemaURL, strings.NewReader(componentSchemaSource)); err != nil {
			schemaErr = fmt.Errorf("failed to load component schema: %w", err)
			return
		}
		schemaCompiler = c
	})
	if schemaErr != nil {
		return nil, schemaErr
	}

	schemaMu.Lock()
	defer schemaMu.Unlock()

	if s, ok := schemaCache[typ]; ok {
		return s, nil
	}
	s, err := schemaCompiler.Compile(componentSchemaURL + "#/$defs/" + typ)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s schema: %w", typ, err)
	}
	schemaCache[typ] = s
	return s, nil
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
