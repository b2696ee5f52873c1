package value

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// --------------------------------------------------------------------------
// Errors
// --------------------------------------------------------------------------

var (
	// ErrMalformedValue is returned if the stored bytes can't be decoded under their own type tag.
	ErrMalformedValue = errors.New("malformed value")
	ErrInvalidInt     = errors.New("invalid integer value")
	ErrInvalidFloat   = errors.New("invalid float value")
	ErrInvalidBool    = errors.New("invalid boolean value")
)

// --------------------------------------------------------------------------
// Data Types
// --------------------------------------------------------------------------

// DataType is the type tag of a TypedValue
type DataType uint8

const (
	TypeString DataType = iota // 0: UTF-8 text
	TypeInt                    // 1: 64-bit signed integer
	TypeFloat                  // 2: 64-bit IEEE-754 float
	TypeBool                   // 3: boolean
)

func (t DataType) String() string {
	switch t {
	case TypeString:
		return "String"
	case TypeInt:
		return "Int"
	case TypeFloat:
		return "Float"
	case TypeBool:
		return "Bool"
	default:
		return "Unknown"
	}
}

// Name returns the short type name accepted by ParseDataType (str, int, float, bool)
func (t DataType) Name() string {
	switch t {
	case TypeString:
		return "str"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	default:
		return "unknown"
	}
}

// valid returns whether t is one of the known type tags
func (t DataType) valid() bool {
	return t <= TypeBool
}

// ParseDataType converts a type name to a DataType.
// The name is expected in lower case, the caller is responsible for case folding.
func ParseDataType(name string) (DataType, bool) {
	switch name {
	case "str", "string":
		return TypeString, true
	case "int", "i64":
		return TypeInt, true
	case "float", "f64":
		return TypeFloat, true
	case "bool":
		return TypeBool, true
	default:
		return 0, false
	}
}

// --------------------------------------------------------------------------
// Typed Value
// --------------------------------------------------------------------------

// TypedValue is a value together with its type tag. The data field holds the
// canonical encoding for the tag:
//
//   - TypeString: raw UTF-8 bytes
//   - TypeInt:    8 bytes, native-endian two's complement
//   - TypeFloat:  8 bytes, native-endian IEEE-754
//   - TypeBool:   1 byte, 0 or 1
//
// Int and Float payloads have the same width, so the bytes alone are not type-safe.
// Every accessor checks the tag before it looks at the payload.
type TypedValue struct {
	tag  DataType
	data []byte
}

func FromString(s string) TypedValue {
	return TypedValue{tag: TypeString, data: []byte(s)}
}

func FromInt(i int64) TypedValue {
	data := make([]byte, 8)
	binary.NativeEndian.PutUint64(data, uint64(i))
	return TypedValue{tag: TypeInt, data: data}
}

func FromFloat(f float64) TypedValue {
	data := make([]byte, 8)
	binary.NativeEndian.PutUint64(data, math.Float64bits(f))
	return TypedValue{tag: TypeFloat, data: data}
}

func FromBool(b bool) TypedValue {
	if b {
		return TypedValue{tag: TypeBool, data: []byte{1}}
	}
	return TypedValue{tag: TypeBool, data: []byte{0}}
}

// Parse converts the textual representation of a value into a TypedValue of type t.
// Booleans must be exactly "true" or "false".
func Parse(t DataType, text string) (TypedValue, error) {
	switch t {
	case TypeString:
		return FromString(text), nil
	case TypeInt:
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return TypedValue{}, fmt.Errorf("%w: %q", ErrInvalidInt, text)
		}
		return FromInt(i), nil
	case TypeFloat:
		if !isDecimalFloat(text) {
			return TypedValue{}, fmt.Errorf("%w: %q", ErrInvalidFloat, text)
		}
		f, err := strconv.ParseFloat(text, 64)
		// out of range values are rounded to +-Inf
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return TypedValue{}, fmt.Errorf("%w: %q", ErrInvalidFloat, text)
		}
		return FromFloat(f), nil
	case TypeBool:
		switch text {
		case "true":
			return FromBool(true), nil
		case "false":
			return FromBool(false), nil
		default:
			return TypedValue{}, fmt.Errorf("%w: %q", ErrInvalidBool, text)
		}
	default:
		return TypedValue{}, fmt.Errorf("unknown type tag %d", t)
	}
}

// isDecimalFloat rejects the hexadecimal and underscore forms strconv.ParseFloat accepts
func isDecimalFloat(text string) bool {
	if strings.Contains(text, "_") {
		return false
	}
	unsigned := strings.TrimLeft(text, "+-")
	return !strings.HasPrefix(unsigned, "0x") && !strings.HasPrefix(unsigned, "0X")
}

// Type returns the type tag of the value
func (v TypedValue) Type() DataType {
	return v.tag
}

// Bytes returns a copy of the encoded payload
func (v TypedValue) Bytes() []byte {
	data := make([]byte, len(v.data))
	copy(data, v.data)
	return data
}

// Clone returns a deep copy of the value
func (v TypedValue) Clone() TypedValue {
	return TypedValue{tag: v.tag, data: v.Bytes()}
}

// --------------------------------------------------------------------------
// Accessors
// --------------------------------------------------------------------------

// AsString returns the text if the value is a string.
// ok is false for every other tag. A string payload that is not valid UTF-8
// returns ErrMalformedValue.
func (v TypedValue) AsString() (s string, ok bool, err error) {
	if v.tag != TypeString {
		return "", false, nil
	}
	if !utf8.Valid(v.data) {
		return "", false, fmt.Errorf("%w: string payload is not valid UTF-8", ErrMalformedValue)
	}
	return string(v.data), true, nil
}

// AsInt returns the integer if the value is an int with an 8 byte payload
func (v TypedValue) AsInt() (int64, bool) {
	if v.tag != TypeInt || len(v.data) != 8 {
		return 0, false
	}
	return int64(binary.NativeEndian.Uint64(v.data)), true
}

// AsFloat returns the float if the value is a float with an 8 byte payload
func (v TypedValue) AsFloat() (float64, bool) {
	if v.tag != TypeFloat || len(v.data) != 8 {
		return 0, false
	}
	return math.Float64frombits(binary.NativeEndian.Uint64(v.data)), true
}

// AsBool returns the boolean if the value is a bool with a non-empty payload
func (v TypedValue) AsBool() (bool, bool) {
	if v.tag != TypeBool || len(v.data) == 0 {
		return false, false
	}
	return v.data[0] != 0, true
}

// --------------------------------------------------------------------------
// Rendering
// --------------------------------------------------------------------------

// Render returns the native textual form of the value. The stored tag decides how
// the payload is decoded. A payload that does not fit its tag returns ErrMalformedValue.
func (v TypedValue) Render() (string, error) {
	switch v.tag {
	case TypeString:
		s, _, err := v.AsString()
		return s, err
	case TypeInt:
		if i, ok := v.AsInt(); ok {
			return strconv.FormatInt(i, 10), nil
		}
	case TypeFloat:
		if f, ok := v.AsFloat(); ok {
			return formatFloat(f), nil
		}
	case TypeBool:
		if b, ok := v.AsBool(); ok {
			return strconv.FormatBool(b), nil
		}
	}
	return "", fmt.Errorf("%w: %d byte payload for type %s", ErrMalformedValue, len(v.data), v.tag)
}

// GoString returns the debug representation (tag and raw bytes)
func (v TypedValue) GoString() string {
	return fmt.Sprintf("TypedValue{Type: %s, Data: %v}", v.tag, v.data)
}

// formatFloat prints the shortest decimal representation without exponent
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	default:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
}

// --------------------------------------------------------------------------
// Binary encoding (used by the storage layer)
// --------------------------------------------------------------------------

// MarshalBinary encodes the value as [tag][payload]
func (v TypedValue) MarshalBinary() ([]byte, error) {
	if !v.tag.valid() {
		return nil, fmt.Errorf("%w: unknown type tag %d", ErrMalformedValue, v.tag)
	}
	result := make([]byte, 1+len(v.data))
	result[0] = byte(v.tag)
	copy(result[1:], v.data)
	return result, nil
}

// UnmarshalBinary decodes a value written by MarshalBinary.
// The payload is copied, the value does not alias b.
func (v *TypedValue) UnmarshalBinary(b []byte) error {
	if len(b) < 1 {
		return fmt.Errorf("%w: data too short for type tag", ErrMalformedValue)
	}
	tag := DataType(b[0])
	if !tag.valid() {
		return fmt.Errorf("%w: unknown type tag %d", ErrMalformedValue, b[0])
	}
	data := make([]byte, len(b)-1)
	copy(data, b[1:])
	v.tag = tag
	v.data = data
	return nil
}
