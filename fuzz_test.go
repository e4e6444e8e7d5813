package xmlser_test

import (
	"testing"

	"github.com/KimNorgaard/go-xmlser"
)

func FuzzUnmarshal(f *testing.F) {
	f.Add([]byte(`<Greeting><Required>hello</Required><Optional>world</Optional></Greeting>`))
	f.Add([]byte(`<Greeting><Required/><Optional nil="true"/></Greeting>`))
	f.Add([]byte(`<?xml version="1.0" encoding="UTF-8"?><Greeting/>`))
	f.Add([]byte{0xEF, 0xBB, 0xBF})
	f.Add([]byte(`<!DOCTYPE g><Greeting/>`))
	f.Add([]byte(``))

	// Arbitrary input may fail to decode, but it must never panic, and a
	// value that decodes must re-encode cleanly.
	f.Fuzz(func(t *testing.T, data []byte) {
		var g Greeting
		if err := xmlser.Unmarshal(data, &g); err != nil {
			return
		}
		if _, err := xmlser.Marshal(g, xmlser.OmitNilElements()); err != nil {
			t.Fatalf("re-encoding a decoded value failed: %v", err)
		}
	})
}
