package nilfilter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func streamFilter(t *testing.T, in string) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, Stream(&out, strings.NewReader(in)))
	return out.String()
}

func TestStream(t *testing.T) {
	t.Run("Removes Bare Marked Element", func(t *testing.T) {
		got := streamFilter(t, `<r><a nil="true">gone</a><b>kept</b></r>`)
		require.Equal(t, `<r><b>kept</b></r>`, got)
	})

	t.Run("Removes Whole Subtree", func(t *testing.T) {
		got := streamFilter(t, `<r><a nil="1"><c><d>deep</d></c></a><b>kept</b></r>`)
		require.Equal(t, `<r><b>kept</b></r>`, got)
	})

	t.Run("Nested Marker Inside Kept Parent", func(t *testing.T) {
		got := streamFilter(t, `<r><p><a nil="true"/><b>x</b></p></r>`)
		require.Equal(t, `<r><p><b>x</b></p></r>`, got)
	})

	t.Run("Markers Inside Removed Subtree Not Reprocessed", func(t *testing.T) {
		got := streamFilter(t, `<r><a nil="true"><b nil="false">inner</b></a><c/></r>`)
		require.Equal(t, `<r><c></c></r>`, got)
	})

	t.Run("Truthy Values", func(t *testing.T) {
		for _, v := range []string{"1", "t", "T", "true", "True", "TRUE", "tRuE"} {
			got := streamFilter(t, `<r><a nil="`+v+`"/></r>`)
			require.Equal(t, `<r></r>`, got, "value %q must remove the element", v)
		}
	})

	t.Run("Non Truthy Values Keep Element", func(t *testing.T) {
		for _, v := range []string{"0", "false", "False", "yes", "", "truthy", "tt"} {
			got := streamFilter(t, `<r><a nil="`+v+`">x</a></r>`)
			require.Contains(t, got, ">x</a>", "value %q must keep the element", v)
		}
	})

	t.Run("Namespaced Marker Via Inline Declaration", func(t *testing.T) {
		in := `<r><a xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xsi:nil="true"/><b/></r>`
		require.Equal(t, `<r><b></b></r>`, streamFilter(t, in))
	})

	t.Run("Namespaced Marker Via Ancestor Declaration", func(t *testing.T) {
		in := `<r xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"><a xsi:nil="true"/><b/></r>`
		got := streamFilter(t, in)
		require.NotContains(t, got, "<a")
		require.Contains(t, got, "<b>")
	})

	t.Run("Foreign Prefix Is Not A Marker", func(t *testing.T) {
		in := `<r xmlns:o="urn:other"><a o:nil="true">kept</a></r>`
		require.Contains(t, streamFilter(t, in), "kept")
	})

	t.Run("Rebinding Shadows Outer Prefix", func(t *testing.T) {
		in := `<r xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
			`<s xmlns:xsi="urn:other"><a xsi:nil="true">kept</a></s></r>`
		require.Contains(t, streamFilter(t, in), "kept")
	})

	t.Run("Preserves Declaration Comments And PIs", func(t *testing.T) {
		in := `<?xml version="1.0" encoding="UTF-8"?><!-- note --><?target data?>` + "\n" +
			`<r>  <a nil="true"/>text</r>`
		got := streamFilter(t, in)
		require.Contains(t, got, `<?xml version="1.0" encoding="UTF-8"?>`)
		require.Contains(t, got, `<!-- note -->`)
		require.Contains(t, got, `<?target data?>`)
		require.Contains(t, got, ">  ", "whitespace outside removed subtrees is kept")
		require.Contains(t, got, "text")
		require.NotContains(t, got, "<a")
	})

	t.Run("Malformed Input Errors", func(t *testing.T) {
		for name, in := range map[string]string{
			"mismatched close":  `<r><a>x</b></r>`,
			"unclosed element":  `<r><a>x`,
			"stray end element": `</r>`,
			"bad token":         `<r><a nil=</a></r>`,
			"truncated skip":    `<r><a nil="true"><b>`,
		} {
			var out bytes.Buffer
			require.Error(t, Stream(&out, strings.NewReader(in)), name)
		}
	})
}
