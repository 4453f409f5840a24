package core

type BuildOptions struct {
	// OpaqueKnownItems keeps the items of built-in component types as data.
	// By default every typed record inside a node's items becomes a child node.
	OpaqueKnownItems bool
}

// Build converts a document into a node tree. A nil document or a document
// without a screen yields a nil tree. Records without a type are skipped;
// records that fail their schema stay in the tree and are reported.
func Build(doc *Document, opts BuildOptions) (*Tree, []error) {
	if doc == nil || doc.Screen == nil {
		return nil, nil
	}

	b := &builder{opts: opts, tree: &Tree{}}

	root := b.tree.add(Node{
		Type: TypeScreen,
		Props: map[string]any{
			"id":              doc.Screen.ID,
			"title":           doc.Screen.Title,
			"backgroundColor": doc.Screen.BackgroundColor,
		},
		Parent: NoNode,
	})

	for _, record := range doc.Screen.Components {
		b.build(record, root)
	}

	return b.tree, b.issues
}

type builder struct {
	opts   BuildOptions
	tree   *Tree
	issues []error
}

func (b *builder) build(record any, parent NodeID) {
	fields, ok := record.(map[string]any)
	if !ok {
		return
	}
	typ, _ := fields["type"].(string)
	if typ == "" {
		return
	}

	props := make(map[string]any, len(fields))
	for k, v := range fields {
		if k != "type" {
			props[k] = v
		}
	}

	component, err := DecodeComponent(typ, props)
	if err != nil {
		b.issues = append(b.issues, err)
	}

	id := b.tree.add(Node{
		Type:      typ,
		Props:     props,
		Component: component,
		Parent:    parent,
	})

	if b.opts.OpaqueKnownItems && IsKnownType(typ) {
		return
	}

	switch items := props["items"].(type) {
	case []any:
		for _, item := range items {
			b.build(item, id)
		}
	case []map[string]any:
		for _, item := range items {
			b.build(item, id)
		}
	}
}
