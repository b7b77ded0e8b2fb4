package logic

import "strconv"

// ValueTag identifies which variant a Value holds.
type ValueTag uint8

// Value variants. Vector covers wire/register/enum signals; the remaining
// tags cover the non-binary signal kinds.
const (
	TagVector ValueTag = iota
	TagInt
	TagReal
	TagString
)

// Value is the tagged variant carried by every transition: a 4-state
// bit-vector, a signed integer, a real number or a string.
//
// Values are immutable once stored; accessors return (value, ok) pairs and
// never panic on a tag mismatch.
type Value struct {
	str string
	vec Vector
	num uint64
	tag ValueTag
}

// VectorValue wraps a bit-vector.
func VectorValue(v Vector) Value {
	return Value{tag: TagVector, vec: v}
}

// IntValue wraps a signed integer.
func IntValue(v int64) Value {
	return Value{tag: TagInt, num: uint64(v)}
}

// RealValue wraps a float64.
func RealValue(v float64) Value {
	return Value{tag: TagReal, num: realBits(v)}
}

// StringValue wraps a string.
func StringValue(s string) Value {
	return Value{tag: TagString, str: s}
}

// Tag returns the variant tag.
func (v Value) Tag() ValueTag {
	return v.tag
}

// Vector returns the bit-vector variant.
func (v Value) Vector() (Vector, bool) {
	return v.vec, v.tag == TagVector
}

// Int returns the integer variant.
func (v Value) Int() (int64, bool) {
	return int64(v.num), v.tag == TagInt
}

// Real returns the real variant.
func (v Value) Real() (float64, bool) {
	return realFromBits(v.num), v.tag == TagReal
}

// Str returns the string variant.
func (v Value) Str() (string, bool) {
	return v.str, v.tag == TagString
}

// String renders a raw representation of whichever variant is held.
func (v Value) String() string {
	switch v.tag {
	case TagVector:
		return v.vec.String()
	case TagInt:
		return strconv.FormatInt(int64(v.num), 10)
	case TagReal:
		return strconv.FormatFloat(realFromBits(v.num), 'g', -1, 64)
	default:
		return v.str
	}
}
