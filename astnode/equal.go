package astnode

// NodeEqual reports whether a and b are deeply structurally equal,
// ignoring source comments and formatting. Raw expressions are compared
// via Equaler when implemented; otherwise two non-nil raw expressions
// are considered equal only when they share the same source position,
// which is the best this module can do without parsing the opaque
// expression itself.
func NodeEqual(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindStringLit, KindText:
		return a.Value == b.Value && rawEqual(a.Raw, b.Raw)
	case KindArg:
		if a.ArgName != b.ArgName || len(a.ArgTags) != len(b.ArgTags) {
			return false
		}
		for i := range a.ArgTags {
			if !NodeEqual(a.ArgTags[i], b.ArgTags[i]) {
				return false
			}
		}
		return rawEqual(a.ArgExpr, b.ArgExpr)
	case KindCondStrCall, KindOpaque:
		return rawEqual(a.Raw, b.Raw)
	case KindTagOrComponent:
		return JSXElementEqual(a.Element, b.Element) && rawEqual(a.Raw, b.Raw)
	default:
		panic("astnode: unhandled Kind")
	}
}

// JSXElementEqual reports whether a and b are deeply structurally equal.
func JSXElementEqual(a, b *JSXElement) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.NameInID != b.NameInID || a.SelfClosing != b.SelfClosing {
		return false
	}
	if len(a.Attrs) != len(b.Attrs) || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Attrs {
		if !AttrEqual(a.Attrs[i], b.Attrs[i]) {
			return false
		}
	}
	for i := range a.Children {
		if !NodeEqual(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return rawEqual(a.Raw, b.Raw)
}

// AttrEqual reports whether a and b are deeply structurally equal.
func AttrEqual(a, b Attr) bool {
	if a.IsSpread != b.IsSpread || a.Name != b.Name {
		return false
	}
	return NodeEqual(a.Value, b.Value) && rawEqual(a.Raw, b.Raw)
}

func rawEqual(a, b RawExpr) bool {
	if a == nil || b == nil {
		return a == b
	}
	if eq, ok := a.(Equaler); ok {
		return eq.Equal(b)
	}
	return a.Pos() == b.Pos()
}
