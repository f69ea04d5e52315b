package cael

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

type ValueKind int

const (
	KindNull ValueKind = iota
	KindNumber
	KindString
	KindBool
	KindObject
)

// Value is an immutable runtime value. The zero Value is null.
type Value struct {
	kind ValueKind
	data any
}

func NewNull() Value            { return Value{kind: KindNull} }
func NewNumber(n float64) Value { return Value{kind: KindNumber, data: n} }
func NewString(s string) Value  { return Value{kind: KindString, data: s} }
func NewBool(b bool) Value      { return Value{kind: KindBool, data: b} }

// NewObject copies attrs so later changes to the caller's map are not seen.
func NewObject(attrs map[string]Value) Value {
	copied := make(map[string]Value, len(attrs))
	for k, v := range attrs {
		copied[k] = v
	}
	return Value{kind: KindObject, data: copied}
}

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) Number() float64 {
	if v.kind == KindNumber {
		return v.data.(float64)
	}
	return 0
}

func (v Value) Str() string {
	if v.kind == KindString {
		return v.data.(string)
	}
	return ""
}

func (v Value) Bool() bool {
	if v.kind == KindBool {
		return v.data.(bool)
	}
	return false
}

// Property returns a single attribute of an object value.
func (v Value) Property(name string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	val, ok := v.data.(map[string]Value)[name]
	return val, ok
}

// Keys returns an object's attribute names in sorted order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	attrs := v.data.(map[string]Value)
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String renders v the way print shows it.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindNumber:
		return formatNumber(v.Number())
	case KindString:
		return v.Str()
	case KindBool:
		return formatBool(v.Bool())
	case KindObject:
		keys := v.Keys()
		if len(keys) == 0 {
			return "{}"
		}
		parts := make([]string, len(keys))
		for i, k := range keys {
			attr, _ := v.Property(k)
			if attr.kind == KindString {
				parts[i] = fmt.Sprintf("%s: %q", k, attr.Str())
			} else {
				parts[i] = fmt.Sprintf("%s: %s", k, attr.String())
			}
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("<%s>", v.kind)
	}
}

func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindNumber:
		return v.Number() == other.Number()
	case KindString:
		return v.Str() == other.Str()
	case KindBool:
		return v.Bool() == other.Bool()
	case KindObject:
		left := v.data.(map[string]Value)
		right := other.data.(map[string]Value)
		if len(left) != len(right) {
			return false
		}
		for k, lv := range left {
			rv, ok := right[k]
			if !ok || !lv.Equal(rv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// formatNumber drops the fractional part of integer-valued numbers and
// otherwise uses the shortest decimal that round-trips.
func formatNumber(n float64) string {
	if math.IsInf(n, 0) || math.IsNaN(n) {
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	if n == 0 {
		return "0"
	}
	if n == math.Trunc(n) {
		return strconv.FormatFloat(n, 'f', 0, 64)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
