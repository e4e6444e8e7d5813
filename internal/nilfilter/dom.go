package nilfilter

import (
	"io"

	"github.com/beevik/etree"

	"github.com/KimNorgaard/go-xmlser/internal/xmltoken"
)

// DOM filters nil-marked elements by loading the whole document into a tree,
// collecting every marked element first and detaching them only after the
// traversal completes. Mutating a tree while walking it invalidates the
// iteration, so the two phases must stay separate.
func DOM(w io.Writer, r io.Reader) error {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return err
	}

	var marked []*etree.Element
	if root := doc.Root(); root != nil {
		collectNil(root, &marked)
	}
	for _, e := range marked {
		if p := e.Parent(); p != nil {
			p.RemoveChild(e)
		}
	}

	_, err := doc.WriteTo(w)
	return err
}

// collectNil appends e and stops descending when e is nil-marked; otherwise
// it recurses into the children.
func collectNil(e *etree.Element, out *[]*etree.Element) {
	if domMarkedNil(e) {
		*out = append(*out, e)
		return
	}
	for _, c := range e.ChildElements() {
		collectNil(c, out)
	}
}

func domMarkedNil(e *etree.Element) bool {
	for _, a := range e.Attr {
		if a.Key != "nil" || a.Space == "xmlns" {
			continue
		}
		if a.Space != "" && a.NamespaceURI() != xmltoken.XSINamespace {
			continue
		}
		if xmltoken.Truthy(a.Value) {
			return true
		}
	}
	return false
}
