package audit

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Values maps column names to the values read from or written to a row.
type Values map[string]any

// Clone returns a shallow copy.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// NonEmpty returns the fields that hold a value (not nil and not "").
func (v Values) NonEmpty() Values {
	out := Values{}
	for k, val := range v {
		if !isEmpty(val) {
			out[k] = val
		}
	}
	return out
}

// Empty returns the fields that are nil or "".
func (v Values) Empty() Values {
	out := Values{}
	for k, val := range v {
		if isEmpty(val) {
			out[k] = val
		}
	}
	return out
}

// String returns the named field as a string, "" when missing or NULL.
func (v Values) String(name string) string {
	switch val := v[name].(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	default:
		return fmt.Sprint(val)
	}
}

// Bool returns the named field as a bool. SQLite may hand back integers.
func (v Values) Bool(name string) bool {
	switch val := v[name].(type) {
	case bool:
		return val
	case int64:
		return val != 0
	case int:
		return val != 0
	case string:
		b, _ := strconv.ParseBool(val)
		return b
	}
	return false
}

// Int returns the named field as an int, 0 when missing or not numeric.
func (v Values) Int(name string) int {
	switch val := v[name].(type) {
	case int64:
		return int(val)
	case int:
		return val
	case float64:
		return int(val)
	case string:
		n, _ := strconv.Atoi(val)
		return n
	}
	return 0
}

// Time returns the named field as a time, zero when missing.
func (v Values) Time(name string) time.Time {
	t, _ := v[name].(time.Time)
	return t
}

func isEmpty(val any) bool {
	switch x := val.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case []byte:
		return len(x) == 0
	}
	return false
}

// normalize turns driver values into comparable Go values.
func normalize(val any) any {
	switch x := val.(type) {
	case []byte:
		return string(x)
	case time.Time:
		return x.UTC()
	}
	return val
}

// FieldValue is one (column, value) pair of a snapshot.
type FieldValue struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

func (f FieldValue) key() string {
	v := normalize(f.Value)
	if t, ok := v.(time.Time); ok {
		v = t.Format(time.RFC3339Nano)
	}
	return fmt.Sprintf("%s\x00%T\x00%v", f.Name, v, v)
}

// FieldSet is a set of (column, value) pairs.
type FieldSet map[string]FieldValue

// NewFieldSet builds a set from values.
func NewFieldSet(values Values) FieldSet {
	s := FieldSet{}
	for name, val := range values {
		s.add(FieldValue{Name: name, Value: normalize(val)})
	}
	return s
}

func (s FieldSet) add(f FieldValue) { s[f.key()] = f }

// Contains reports whether the pair (name, value) is in the set.
func (s FieldSet) Contains(name string, value any) bool {
	_, ok := s[FieldValue{Name: name, Value: value}.key()]
	return ok
}

// Len returns the number of pairs.
func (s FieldSet) Len() int { return len(s) }

// Minus returns the pairs in s but not in other.
func (s FieldSet) Minus(other FieldSet) FieldSet {
	out := FieldSet{}
	for k, f := range s {
		if _, ok := other[k]; !ok {
			out[k] = f
		}
	}
	return out
}

// Intersect returns the pairs present in both sets.
func (s FieldSet) Intersect(other FieldSet) FieldSet {
	out := FieldSet{}
	for k, f := range s {
		if _, ok := other[k]; ok {
			out[k] = f
		}
	}
	return out
}

// SymmetricDifference returns the pairs present in exactly one of the sets.
func (s FieldSet) SymmetricDifference(other FieldSet) FieldSet {
	out := s.Minus(other)
	for k, f := range other.Minus(s) {
		out[k] = f
	}
	return out
}

// Sorted returns the pairs ordered by name, then by value.
func (s FieldSet) Sorted() []FieldValue {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]FieldValue, 0, len(keys))
	for _, k := range keys {
		out = append(out, s[k])
	}
	return out
}

// MarshalJSON encodes the set as a sorted list of pairs.
func (s FieldSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}
