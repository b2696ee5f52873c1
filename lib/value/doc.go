// Package value implements the typed values held by the store.
//
// A TypedValue is a type tag (String, Int, Float, Bool) plus the canonical byte
// encoding of the value for that tag. Values are immutable after construction.
//
// Key Components:
//
//   - Constructors: FromString, FromInt, FromFloat and FromBool build values from
//     native Go values. Parse builds a value from its textual form (used by the
//     command processor).
//
//   - Accessors: AsString, AsInt, AsFloat and AsBool only return a value if the tag
//     matches. Requesting the wrong type is not an error, the accessor just reports
//     ok=false. Only a payload that can't be decoded under its own tag (e.g. invalid
//     UTF-8 for a string) produces ErrMalformedValue.
//
//   - Encoding: MarshalBinary and UnmarshalBinary prefix the payload with the tag
//     byte, so the value can be stored in any byte-oriented db.KVDB.
//
// Note on Int and Float:
//
//	Both types encode to 8 raw native-endian bytes without any marker. The tag is
//	authoritative and must be checked before decoding, which is why every accessor
//	checks the tag before it checks the payload length.
package value
