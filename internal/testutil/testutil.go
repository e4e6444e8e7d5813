// Package testutil holds small helpers shared by the package tests.
package testutil

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Canonical reduces an XML document to a normalized token trace so that two
// serializations can be compared independently of attribute order, quoting
// and escaping choices. It fails on malformed input.
func Canonical(data []byte) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(string(data)))
	var b strings.Builder
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return b.String(), nil
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			attrs := make([]string, 0, len(t.Attr))
			for _, a := range t.Attr {
				attrs = append(attrs, fmt.Sprintf("%s|%s=%s", a.Name.Space, a.Name.Local, a.Value))
			}
			sort.Strings(attrs)
			fmt.Fprintf(&b, "<%s|%s %s>", t.Name.Space, t.Name.Local, strings.Join(attrs, " "))
		case xml.EndElement:
			fmt.Fprintf(&b, "</%s|%s>", t.Name.Space, t.Name.Local)
		case xml.CharData:
			b.Write(t)
		case xml.Comment:
			fmt.Fprintf(&b, "<!--%s-->", t)
		case xml.ProcInst:
			fmt.Fprintf(&b, "<?%s %s?>", t.Target, t.Inst)
		case xml.Directive:
			fmt.Fprintf(&b, "<!%s>", t)
		}
	}
}
