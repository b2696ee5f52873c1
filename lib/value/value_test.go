package value

import (
	"errors"
	"math"
	"testing"
)

// TestRoundTrip tests that every accessor returns the value its constructor encoded
func TestRoundTrip(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		for _, s := range []string{"", "hello", "Ada Lovelace", "你好世界", "emoji 🚀", "with\nnewline"} {
			got, ok, err := FromString(s).AsString()
			if err != nil || !ok || got != s {
				t.Errorf("AsString() = %q, %v, %v, want %q", got, ok, err, s)
			}
		}
	})

	t.Run("Int", func(t *testing.T) {
		for _, i := range []int64{0, 1, -1, 42, math.MaxInt64, math.MinInt64} {
			got, ok := FromInt(i).AsInt()
			if !ok || got != i {
				t.Errorf("AsInt() = %d, %v, want %d", got, ok, i)
			}
		}
	})

	t.Run("Float", func(t *testing.T) {
		for _, f := range []float64{0, -0.5, 3.14, math.MaxFloat64, math.SmallestNonzeroFloat64, math.Inf(1), math.Inf(-1)} {
			got, ok := FromFloat(f).AsFloat()
			if !ok || got != f {
				t.Errorf("AsFloat() = %v, %v, want %v", got, ok, f)
			}
		}
		got, ok := FromFloat(math.NaN()).AsFloat()
		if !ok || !math.IsNaN(got) {
			t.Errorf("AsFloat() = %v, %v, want NaN", got, ok)
		}
	})

	t.Run("Bool", func(t *testing.T) {
		for _, b := range []bool{true, false} {
			got, ok := FromBool(b).AsBool()
			if !ok || got != b {
				t.Errorf("AsBool() = %v, %v, want %v", got, ok, b)
			}
		}
	})
}

// TestTagIsolation tests that accessors of a foreign tag never return a value
func TestTagIsolation(t *testing.T) {
	values := []TypedValue{
		FromString("12345678"), // 8 bytes, same width as int and float
		FromInt(42),
		FromFloat(3.14),
		FromBool(true),
	}

	for _, v := range values {
		t.Run(v.Type().String(), func(t *testing.T) {
			if _, ok, err := v.AsString(); v.Type() != TypeString && (ok || err != nil) {
				t.Errorf("AsString() on %s returned ok=%v err=%v", v.Type(), ok, err)
			}
			if _, ok := v.AsInt(); v.Type() != TypeInt && ok {
				t.Errorf("AsInt() on %s returned a value", v.Type())
			}
			if _, ok := v.AsFloat(); v.Type() != TypeFloat && ok {
				t.Errorf("AsFloat() on %s returned a value", v.Type())
			}
			if _, ok := v.AsBool(); v.Type() != TypeBool && ok {
				t.Errorf("AsBool() on %s returned a value", v.Type())
			}
		})
	}
}

// TestNumericPayloadsAreNotInterchangeable tests that the int and float tag guard the shared 8 byte width
func TestNumericPayloadsAreNotInterchangeable(t *testing.T) {
	i := FromInt(4614253070214989087) // same bits as 3.14
	f := FromFloat(3.14)

	if len(i.Bytes()) != 8 || len(f.Bytes()) != 8 {
		t.Fatalf("expected 8 byte payloads, got %d and %d", len(i.Bytes()), len(f.Bytes()))
	}
	if _, ok := i.AsFloat(); ok {
		t.Errorf("int value decoded as float")
	}
	if _, ok := f.AsInt(); ok {
		t.Errorf("float value decoded as int")
	}
}

// TestMalformedPayload tests that broken payloads produce errors or empty results instead of panics
func TestMalformedPayload(t *testing.T) {
	t.Run("InvalidUTF8", func(t *testing.T) {
		v := TypedValue{tag: TypeString, data: []byte{0xff, 0xfe}}
		_, ok, err := v.AsString()
		if ok || !errors.Is(err, ErrMalformedValue) {
			t.Errorf("AsString() = ok=%v err=%v, want ErrMalformedValue", ok, err)
		}
		if _, err := v.Render(); !errors.Is(err, ErrMalformedValue) {
			t.Errorf("Render() err = %v, want ErrMalformedValue", err)
		}
	})

	t.Run("ShortInt", func(t *testing.T) {
		v := TypedValue{tag: TypeInt, data: []byte{1, 2, 3}}
		if _, ok := v.AsInt(); ok {
			t.Errorf("AsInt() returned a value for a 3 byte payload")
		}
		if _, err := v.Render(); !errors.Is(err, ErrMalformedValue) {
			t.Errorf("Render() err = %v, want ErrMalformedValue", err)
		}
	})

	t.Run("EmptyBool", func(t *testing.T) {
		v := TypedValue{tag: TypeBool}
		if _, ok := v.AsBool(); ok {
			t.Errorf("AsBool() returned a value for an empty payload")
		}
	})
}

// TestParse tests the textual parsing of values
func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		typ      DataType
		text     string
		expected string
		err      error
	}{
		{name: "String with spaces", typ: TypeString, text: "Ada Lovelace", expected: "Ada Lovelace"},
		{name: "Empty string", typ: TypeString, text: "", expected: ""},
		{name: "Int", typ: TypeInt, text: "42", expected: "42"},
		{name: "Negative int", typ: TypeInt, text: "-7", expected: "-7"},
		{name: "Int with plus sign", typ: TypeInt, text: "+7", expected: "7"},
		{name: "Int overflow", typ: TypeInt, text: "9223372036854775808", err: ErrInvalidInt},
		{name: "Int not a number", typ: TypeInt, text: "notanumber", err: ErrInvalidInt},
		{name: "Int with space", typ: TypeInt, text: "4 2", err: ErrInvalidInt},
		{name: "Int as float", typ: TypeInt, text: "3.5", err: ErrInvalidInt},
		{name: "Float", typ: TypeFloat, text: "3.14", expected: "3.14"},
		{name: "Float integral", typ: TypeFloat, text: "1", expected: "1"},
		{name: "Float exponent", typ: TypeFloat, text: "1e3", expected: "1000"},
		{name: "Float infinity", typ: TypeFloat, text: "inf", expected: "inf"},
		{name: "Float out of range", typ: TypeFloat, text: "1e400", expected: "inf"},
		{name: "Float invalid", typ: TypeFloat, text: "pi", err: ErrInvalidFloat},
		{name: "Float hexadecimal", typ: TypeFloat, text: "0x1p4", err: ErrInvalidFloat},
		{name: "Float hexadecimal upper case", typ: TypeFloat, text: "-0X1P4", err: ErrInvalidFloat},
		{name: "Float hexadecimal with underscore", typ: TypeFloat, text: "0x_1p-2", err: ErrInvalidFloat},
		{name: "Float with underscore", typ: TypeFloat, text: "1_000.5", err: ErrInvalidFloat},
		{name: "Bool true", typ: TypeBool, text: "true", expected: "true"},
		{name: "Bool false", typ: TypeBool, text: "false", expected: "false"},
		{name: "Bool is case sensitive", typ: TypeBool, text: "True", err: ErrInvalidBool},
		{name: "Bool numeric", typ: TypeBool, text: "1", err: ErrInvalidBool},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(tt.typ, tt.text)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("Parse() err = %v, want %v", err, tt.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() unexpected error: %v", err)
			}
			if v.Type() != tt.typ {
				t.Errorf("Type() = %s, want %s", v.Type(), tt.typ)
			}
			rendered, err := v.Render()
			if err != nil {
				t.Fatalf("Render() unexpected error: %v", err)
			}
			if rendered != tt.expected {
				t.Errorf("Render() = %q, want %q", rendered, tt.expected)
			}
		})
	}
}

// TestParseDataType tests the accepted type names
func TestParseDataType(t *testing.T) {
	tests := map[string]DataType{
		"str":    TypeString,
		"string": TypeString,
		"int":    TypeInt,
		"i64":    TypeInt,
		"float":  TypeFloat,
		"f64":    TypeFloat,
		"bool":   TypeBool,
	}
	for name, expected := range tests {
		if got, ok := ParseDataType(name); !ok || got != expected {
			t.Errorf("ParseDataType(%q) = %s, %v, want %s", name, got, ok, expected)
		}
	}
	for _, name := range []string{"", "boolean", "integer", "STR", "u64"} {
		if _, ok := ParseDataType(name); ok {
			t.Errorf("ParseDataType(%q) accepted an unknown name", name)
		}
	}
}

// TestBinaryEncoding tests MarshalBinary and UnmarshalBinary
func TestBinaryEncoding(t *testing.T) {
	values := []TypedValue{FromString("hello"), FromString(""), FromInt(-1), FromFloat(2.5), FromBool(false)}

	for _, v := range values {
		t.Run(v.GoString(), func(t *testing.T) {
			b, err := v.MarshalBinary()
			if err != nil {
				t.Fatalf("MarshalBinary() error: %v", err)
			}
			if DataType(b[0]) != v.Type() {
				t.Errorf("tag byte = %d, want %d", b[0], v.Type())
			}

			var decoded TypedValue
			if err := decoded.UnmarshalBinary(b); err != nil {
				t.Fatalf("UnmarshalBinary() error: %v", err)
			}
			if decoded.GoString() != v.GoString() {
				t.Errorf("decoded = %s, want %s", decoded.GoString(), v.GoString())
			}

			// the decoded value must not alias the input
			if len(b) > 1 {
				b[1] ^= 0xff
				if decoded.GoString() != v.GoString() {
					t.Errorf("decoded value aliases the input buffer")
				}
			}
		})
	}

	t.Run("Invalid", func(t *testing.T) {
		var v TypedValue
		if err := v.UnmarshalBinary(nil); !errors.Is(err, ErrMalformedValue) {
			t.Errorf("UnmarshalBinary(nil) err = %v, want ErrMalformedValue", err)
		}
		if err := v.UnmarshalBinary([]byte{9, 1}); !errors.Is(err, ErrMalformedValue) {
			t.Errorf("UnmarshalBinary(unknown tag) err = %v, want ErrMalformedValue", err)
		}
	})
}

// TestGoString tests the debug representation
func TestGoString(t *testing.T) {
	tests := []struct {
		value    TypedValue
		expected string
	}{
		{FromString("hi"), "TypedValue{Type: String, Data: [104 105]}"},
		{FromBool(true), "TypedValue{Type: Bool, Data: [1]}"},
		{FromBool(false), "TypedValue{Type: Bool, Data: [0]}"},
	}
	for _, tt := range tests {
		if got := tt.value.GoString(); got != tt.expected {
			t.Errorf("GoString() = %s, want %s", got, tt.expected)
		}
	}
}

// TestClone tests that a clone does not share its payload
func TestClone(t *testing.T) {
	original := FromString("abc")
	clone := original.Clone()
	clone.data[0] = 'x'
	if s, _, _ := original.AsString(); s != "abc" {
		t.Errorf("original changed to %q after modifying the clone", s)
	}
}
