package nilfilter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func domFilter(t *testing.T, in string) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, DOM(&out, strings.NewReader(in)))
	return out.String()
}

func TestDOM(t *testing.T) {
	t.Run("Removes Marked Subtree", func(t *testing.T) {
		got := domFilter(t, `<r><a nil="true"><c>deep</c></a><b>kept</b></r>`)
		require.NotContains(t, got, "deep")
		require.NotContains(t, got, "<a")
		require.Contains(t, got, "kept")
	})

	t.Run("Keeps Non Truthy", func(t *testing.T) {
		got := domFilter(t, `<r><a nil="0">x</a><b nil="false">y</b></r>`)
		require.Contains(t, got, "x")
		require.Contains(t, got, "y")
	})

	t.Run("Namespaced Marker", func(t *testing.T) {
		in := `<r xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"><a xsi:nil="1"/><b/></r>`
		got := domFilter(t, in)
		require.NotContains(t, got, "<a")
		require.Contains(t, got, "<b")
	})

	t.Run("Foreign Prefix Kept", func(t *testing.T) {
		in := `<r xmlns:o="urn:other"><a o:nil="true">kept</a></r>`
		require.Contains(t, domFilter(t, in), "kept")
	})

	t.Run("Preserves Declaration And Comments", func(t *testing.T) {
		in := `<?xml version="1.0" encoding="UTF-8"?><!--hi--><r><a nil="t"/>text</r>`
		got := domFilter(t, in)
		require.Contains(t, got, "<?xml")
		require.Contains(t, got, "<!--hi-->")
		require.Contains(t, got, "text")
		require.NotContains(t, got, "<a")
	})

	t.Run("Malformed Input Errors", func(t *testing.T) {
		var out bytes.Buffer
		require.Error(t, DOM(&out, strings.NewReader(`<r><a>x</b></r>`)))
		require.Error(t, DOM(&out, strings.NewReader(`<r><a>x`)))
	})

	t.Run("Marked Root Removes Everything", func(t *testing.T) {
		got := domFilter(t, `<r nil="true"><a>x</a></r>`)
		require.NotContains(t, got, "<r")
		require.NotContains(t, got, "x")
	})
}
