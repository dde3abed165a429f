package resp

import "bytes"

// MakeSimpleString construct SimpleString Value from string
func MakeSimpleString(s string) Value {
	return Value{
		Type:   TypeSimpleString,
		String: []byte(s),
	}
}

// MakeError construct Error Value from string
func MakeError(s string) Value {
	return Value{
		Type:   TypeError,
		String: []byte(s),
	}
}

// MakeInteger construct Integer Value from int64
func MakeInteger(n int64) Value {
	return Value{
		Type:    TypeInteger,
		Integer: n,
	}
}

// MakeBulkString construct BulkString Value from string
func MakeBulkString(s string) Value {
	return Value{
		Type:   TypeBulkString,
		String: []byte(s),
	}
}

// MakeBulkBytes construct BulkString Value from a raw byte payload.
// The payload is binary-safe and may contain any byte, including CR and LF.
func MakeBulkBytes(b []byte) Value {
	return Value{
		Type:   TypeBulkString,
		String: b,
	}
}

// MakeNilBulkString construct null BulkString Value ($-1 on the wire)
func MakeNilBulkString() Value {
	return Value{
		Type:   TypeBulkString,
		IsNull: true,
	}
}

// MakeArray construct Array Value containing the provided elements.
// A nil or empty slice yields the empty array (*0), not the null array.
func MakeArray(values []Value) Value {
	if values == nil {
		values = []Value{}
	}
	return Value{
		Type:  TypeArray,
		Array: values,
	}
}

// MakeNilArray construct null Array Value (*-1 on the wire)
func MakeNilArray() Value {
	return Value{
		Type:   TypeArray,
		IsNull: true,
	}
}

// Equal reports whether two values are structurally identical: same kind,
// same nullness, same payload, and for arrays the same elements in order.
// A null bulk string or array never equals its empty counterpart.
func (v Value) Equal(o Value) bool {
	if v.Type != o.Type || v.IsNull != o.IsNull {
		return false
	}
	if v.IsNull {
		return true
	}

	switch v.Type {
	case TypeInteger:
		return v.Integer == o.Integer
	case TypeSimpleString, TypeError, TypeBulkString:
		return bytes.Equal(v.String, o.String)
	case TypeArray:
		if len(v.Array) != len(o.Array) {
			return false
		}
		for i := range v.Array {
			if !v.Array[i].Equal(o.Array[i]) {
				return false
			}
		}
		return true
	}

	return false
}
