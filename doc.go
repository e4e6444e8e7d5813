/*
Package xmlser serializes typed values to XML and deserializes XML back into
typed values, with two policies applied uniformly on request: total
suppression of namespace declarations and removal of elements marked nil by
the XML-Schema-instance convention. The API mirrors the standard
encoding packages.

Basic round trip:

	type Greeting struct {
		Required string
		Optional xmlser.Nillable[string]
	}

	out, err := xmlser.Marshal(Greeting{Required: "hello"})
	if err != nil {
		// handle error
	}
	// out holds the declaration, <Required>hello</Required> and an
	// <Optional ... xsi:nil="true"> element.

	var g Greeting
	if err := xmlser.Unmarshal(out, &g); err != nil {
		// handle error
	}

Calls are configured with functional options. Serializing the same value with
nil-element removal routes the output through the streaming filter stage and
drops the nil-marked element entirely:

	out, err = xmlser.Marshal(g, xmlser.OmitNilElements())

A nil value marshals to an absent result rather than an error, and empty
input unmarshals to the target's default value. Deserialization refuses
document type definitions and never resolves external entities.

For control over the mapper cache and buffer pool, construct a Codec with New
and use its methods; the package-level functions share one default Codec.
Custom structural mappers (generated encoders, schema-driven descriptors) can
replace the built-in encoding/xml reflection via the Mapper interface.
*/
package xmlser
