package field

import (
	"fmt"
	"math"
	"strings"
)

// A Type represents a preference value kind. The set is closed: it is
// exactly the kinds the underlying key/value store supports natively.
type Type uint8

// List of value kinds.
const (
	TypeInvalid Type = iota
	TypeBool
	TypeInt
	TypeInt64
	TypeFloat
	TypeString
	TypeStringSet
	endTypes
)

var (
	typeNames = [...]string{
		TypeInvalid:   "invalid",
		TypeBool:      "bool",
		TypeInt:       "int",
		TypeInt64:     "int64",
		TypeFloat:     "float32",
		TypeString:    "string",
		TypeStringSet: "[]string",
	}
	constNames = [...]string{
		TypeInvalid:   "invalid",
		TypeBool:      "TypeBool",
		TypeInt:       "TypeInt",
		TypeInt64:     "TypeInt64",
		TypeFloat:     "TypeFloat",
		TypeString:    "TypeString",
		TypeStringSet: "TypeStringSet",
	}
	// storeNames are the Store/Editor method suffixes for each kind.
	storeNames = [...]string{
		TypeInvalid:   "",
		TypeBool:      "Bool",
		TypeInt:       "Int",
		TypeInt64:     "Int64",
		TypeFloat:     "Float32",
		TypeString:    "String",
		TypeStringSet: "StringSet",
	}
	// aliases accepted by ParseType.
	aliases = map[string]Type{
		"bool":       TypeBool,
		"boolean":    TypeBool,
		"int":        TypeInt,
		"integer":    TypeInt,
		"int64":      TypeInt64,
		"long":       TypeInt64,
		"float":      TypeFloat,
		"float32":    TypeFloat,
		"string":     TypeString,
		"stringset":  TypeStringSet,
		"string_set": TypeStringSet,
		"[]string":   TypeStringSet,
	}
)

// String returns the Go type of the kind.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return typeNames[TypeInvalid]
}

// Valid reports if the given type is one of the supported kinds.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// Numeric reports if the given type is a numeric kind.
func (t Type) Numeric() bool {
	return t == TypeInt || t == TypeInt64 || t == TypeFloat
}

// ConstName returns the constant name of the kind.
func (t Type) ConstName() string {
	if t < endTypes {
		return constNames[t]
	}
	return constNames[TypeInvalid]
}

// StoreName returns the method suffix used by the store for reading and
// writing values of this kind. For example, "Int64" for Int64/PutInt64.
func (t Type) StoreName() string {
	if t < endTypes {
		return storeNames[t]
	}
	return ""
}

// ParseType returns the kind for the given name. Names are matched
// case-insensitively against the Go type names and their common aliases.
func ParseType(name string) (Type, error) {
	if t, ok := aliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t, nil
	}
	return TypeInvalid, fmt.Errorf("unsupported value type %q", name)
}

// Zero returns the zero value of the kind.
func (t Type) Zero() any {
	switch t {
	case TypeBool:
		return false
	case TypeInt:
		return 0
	case TypeInt64:
		return int64(0)
	case TypeFloat:
		return float32(0)
	case TypeString:
		return ""
	case TypeStringSet:
		return []string(nil)
	default:
		return nil
	}
}

// Coerce converts v into the Go representation of the kind. A nil value
// yields the zero value. Numbers decoded from schema files (int, int64,
// uint64 or float64) are accepted for numeric kinds as long as they fit
// without loss.
func (t Type) Coerce(v any) (any, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unsupported value type %q", t)
	}
	if v == nil {
		return t.Zero(), nil
	}
	switch t {
	case TypeBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case TypeString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case TypeInt:
		if n, ok := integer(v); ok && n >= math.MinInt && n <= math.MaxInt {
			return int(n), nil
		}
	case TypeInt64:
		if n, ok := integer(v); ok {
			return n, nil
		}
	case TypeFloat:
		switch n := v.(type) {
		case float32:
			return n, nil
		case float64:
			if math.Abs(n) <= math.MaxFloat32 {
				return float32(n), nil
			}
		default:
			if i, ok := integer(v); ok {
				return float32(i), nil
			}
		}
	case TypeStringSet:
		return stringSet(v)
	}
	return nil, fmt.Errorf("default value %v (%T) does not match type %s", v, v, t)
}

func integer(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		if n <= math.MaxInt64 {
			return int64(n), true
		}
	case float64:
		if n == math.Trunc(n) && n >= math.MinInt64 && n <= math.MaxInt64 {
			return int64(n), true
		}
	}
	return 0, false
}

func stringSet(v any) (any, error) {
	var in []string
	switch vs := v.(type) {
	case []string:
		in = vs
	case []any:
		in = make([]string, 0, len(vs))
		for _, e := range vs {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("string set element %v (%T) is not a string", e, e)
			}
			in = append(in, s)
		}
	default:
		return nil, fmt.Errorf("default value %v (%T) does not match type %s", v, v, TypeStringSet)
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out, nil
}
