package astnode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// rawAt is a minimal RawExpr for tests.
type rawAt int

func (r rawAt) Pos() int { return int(r) }

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindTagOrComponent: "tag-or-component",
		KindArg:            "arg",
		KindCondStrCall:    "cond-str-call",
		KindStringLit:      "string-lit",
		KindText:           "text",
		KindOpaque:         "opaque",
		Kind(99):           "Kind(99)",
	}
	for k, want := range cases {
		assert.Equal(t, want, k.String())
	}
}

func TestKindIsValid(t *testing.T) {
	assert.True(t, KindTagOrComponent.IsValid())
	assert.True(t, KindOpaque.IsValid())
	assert.False(t, Kind(-1).IsValid())
	assert.False(t, Kind(100).IsValid())
}

func TestNodePos(t *testing.T) {
	var nilNode *Node
	assert.Equal(t, -1, nilNode.Pos())

	n := &Node{Kind: KindText, Value: "hi"}
	assert.Equal(t, -1, n.Pos())

	n.Raw = rawAt(42)
	assert.Equal(t, 42, n.Pos())
}

func TestJSXElementPos(t *testing.T) {
	var nilEl *JSXElement
	assert.Equal(t, -1, nilEl.Pos())

	el := &JSXElement{NameInID: "Root"}
	assert.Equal(t, -1, el.Pos())

	el.Raw = rawAt(7)
	assert.Equal(t, 7, el.Pos())
}

func TestAttrPos(t *testing.T) {
	a := Attr{Name: "title"}
	assert.Equal(t, -1, a.Pos())

	a.Raw = rawAt(3)
	assert.Equal(t, 3, a.Pos())
}
