package token

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"unicode/utf8"
)

// maxDepth bounds nesting of arrays and objects in both directions
const maxDepth = 512

// Kind identifies the JSON type held by a Value
type Kind int

// Value kinds. KindAbsent is the zero Value and means "no value at all",
// which is distinct from JSON null.
const (
	KindAbsent Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "absent"
	}
}

// Member is a single key/value pair of a JSON object
type Member struct {
	Key   string
	Value Value
}

// Value is a JSON value that remembers object key order and the literal
// text of numbers, so that decoding and re-encoding reproduces the same bytes.
type Value struct {
	kind    Kind
	boolean bool
	text    string // string contents or number literal
	items   []Value
	members []Member
}

// Null returns the JSON null value
func Null() Value { return Value{kind: KindNull} }

// Bool returns a JSON boolean
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// String returns a JSON string
func String(s string) Value { return Value{kind: KindString, text: s} }

// Number returns a JSON number holding the given literal. The literal is
// checked when the value is encoded.
func Number(n json.Number) Value { return Value{kind: KindNumber, text: string(n)} }

// Int returns a JSON integer
func Int(i int64) Value { return Value{kind: KindNumber, text: strconv.FormatInt(i, 10)} }

// Array returns a JSON array of the given elements
func Array(items ...Value) Value {
	return Value{kind: KindArray, items: append([]Value{}, items...)}
}

// Object returns a JSON object with members in the given order.
// A repeated key replaces the earlier value in place.
func Object(members ...Member) Value {
	v := Value{kind: KindObject, members: make([]Member, 0, len(members))}
	for _, m := range members {
		v = v.With(m.Key, m.Value)
	}
	return v
}

// M is shorthand for building a Member
func M(key string, value Value) Member {
	return Member{Key: key, Value: value}
}

// Kind reports the JSON type of v
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether v is the zero Value
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Get returns the member value for key when v is an object
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// With returns a copy of the object v with key set to value. An existing
// key keeps its position; a new key is appended.
func (v Value) With(key string, value Value) Value {
	if v.kind != KindObject {
		return v
	}
	members := make([]Member, len(v.members), len(v.members)+1)
	copy(members, v.members)
	for i := range members {
		if members[i].Key == key {
			members[i].Value = value
			return Value{kind: KindObject, members: members}
		}
	}
	return Value{kind: KindObject, members: append(members, Member{Key: key, Value: value})}
}

// Members returns the object members in order
func (v Value) Members() []Member {
	return append([]Member(nil), v.members...)
}

// Items returns the array elements
func (v Value) Items() []Value {
	return append([]Value(nil), v.items...)
}

// Str returns the string contents when v is a string
func (v Value) Str() (string, bool) {
	return v.text, v.kind == KindString
}

// BoolValue returns the boolean when v is a boolean
func (v Value) BoolValue() (bool, bool) {
	return v.boolean, v.kind == KindBool
}

// NumberValue returns the number literal when v is a number
func (v Value) NumberValue() (json.Number, bool) {
	return json.Number(v.text), v.kind == KindNumber
}

// Equal reports whether v and other are the same JSON value, including
// object key order and number literal text
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.boolean == other.boolean
	case KindNumber, KindString:
		return v.text == other.text
	case KindArray:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.members) != len(other.members) {
			return false
		}
		for i := range v.members {
			if v.members[i].Key != other.members[i].Key || !v.members[i].Value.Equal(other.members[i].Value) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// MarshalJSON writes the compact canonical form of v
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.write(&buf, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON replaces v with the decoded document, keeping key order
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := ParseJSON(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// String returns the compact JSON text, or an empty string when v cannot be encoded
func (v Value) String() string {
	b, err := v.MarshalJSON()
	if err != nil {
		return ""
	}
	return string(b)
}

// Indent returns v formatted with the given indent, as a JSON editor would show it
func (v Value) Indent(indent string) (string, error) {
	b, err := v.MarshalJSON()
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, b, "", indent); err != nil {
		return "", err
	}
	return out.String(), nil
}

func (v Value) write(buf *bytes.Buffer, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("nesting exceeds %d levels", maxDepth)
	}
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.boolean))
	case KindNumber:
		if !isNumberLiteral(v.text) {
			return fmt.Errorf("invalid number literal %q", v.text)
		}
		buf.WriteString(v.text)
	case KindString:
		writeString(buf, v.text)
	case KindArray:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.write(buf, depth+1); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeString(buf, m.Key)
			buf.WriteByte(':')
			if err := m.Value.write(buf, depth+1); err != nil {
				return fmt.Errorf("%q: %w", m.Key, err)
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("absent value cannot be encoded")
	}
	return nil
}

const hexDigits = "0123456789abcdef"

// writeString quotes s the way ECMAScript JSON.stringify does: only the
// quote, the backslash and control characters are escaped.
func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch c {
			case '"':
				buf.WriteString(`\"`)
			case '\\':
				buf.WriteString(`\\`)
			case '\b':
				buf.WriteString(`\b`)
			case '\f':
				buf.WriteString(`\f`)
			case '\n':
				buf.WriteString(`\n`)
			case '\r':
				buf.WriteString(`\r`)
			case '\t':
				buf.WriteString(`\t`)
			default:
				if c < 0x20 {
					buf.WriteString(`\u00`)
					buf.WriteByte(hexDigits[c>>4])
					buf.WriteByte(hexDigits[c&0xf])
				} else {
					buf.WriteByte(c)
				}
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune(utf8.RuneError)
		} else {
			buf.WriteString(s[i : i+size])
		}
		i += size
	}
	buf.WriteByte('"')
}

// isNumberLiteral checks s against the JSON number grammar
func isNumberLiteral(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	switch {
	case i < len(s) && s[i] == '0':
		i++
	case i < len(s) && s[i] >= '1' && s[i] <= '9':
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	default:
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == start {
			return false
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == start {
			return false
		}
	}
	return i == len(s)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// ParseJSON decodes a single JSON document into a Value. Trailing data
// after the document is an error.
func ParseJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec, 0)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("unexpected data after JSON value")
	}
	return v, nil
}

// MustParseJSON is ParseJSON for literals known to be valid; it panics otherwise
func MustParseJSON(s string) Value {
	v, err := ParseJSON([]byte(s))
	if err != nil {
		panic(err)
	}
	return v
}

func decodeValue(dec *json.Decoder, depth int) (Value, error) {
	if depth > maxDepth {
		return Value{}, fmt.Errorf("nesting exceeds %d levels", maxDepth)
	}

	tok, err := dec.Token()
	if err == io.EOF {
		return Value{}, io.ErrUnexpectedEOF
	}
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '[':
			arr := Value{kind: KindArray, items: []Value{}}
			for dec.More() {
				item, err := decodeValue(dec, depth+1)
				if err != nil {
					return Value{}, err
				}
				arr.items = append(arr.items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return arr, nil
		case '{':
			obj := Value{kind: KindObject, members: []Member{}}
			index := make(map[string]int)
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("object key must be a string")
				}
				item, err := decodeValue(dec, depth+1)
				if err != nil {
					return Value{}, err
				}
				if i, seen := index[key]; seen {
					obj.members[i].Value = item
					continue
				}
				index[key] = len(obj.members)
				obj.members = append(obj.members, Member{Key: key, Value: item})
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return obj, nil
		}
	}
	return Value{}, fmt.Errorf("unexpected JSON token %v", tok)
}

// FromAny converts a decoded Go value (maps, slices, strings, numbers,
// booleans, nil) into a Value. Go maps carry no order, so their keys are
// sorted. Values that have no JSON form are rejected, as is nesting deeper
// than the encoder accepts, which also catches self-referencing structures.
func FromAny(x any) (Value, error) {
	return fromAny(x, 0)
}

func fromAny(x any, depth int) (Value, error) {
	if depth > maxDepth {
		return Value{}, fmt.Errorf("nesting exceeds %d levels", maxDepth)
	}
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		if !isNumberLiteral(string(t)) {
			return Value{}, fmt.Errorf("invalid number literal %q", string(t))
		}
		return Number(t), nil
	case int:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return Number(json.Number(strconv.FormatUint(uint64(t), 10))), nil
	case uint32:
		return Int(int64(t)), nil
	case uint64:
		return Number(json.Number(strconv.FormatUint(t, 10))), nil
	case float32:
		return fromFloat(float64(t), 32)
	case float64:
		return fromFloat(t, 64)
	case []any:
		items := make([]Value, 0, len(t))
		for _, item := range t {
			v, err := fromAny(item, depth+1)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return Value{kind: KindArray, items: items}, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		members := make([]Member, 0, len(keys))
		for _, k := range keys {
			v, err := fromAny(t[k], depth+1)
			if err != nil {
				return Value{}, fmt.Errorf("%q: %w", k, err)
			}
			members = append(members, Member{Key: k, Value: v})
		}
		return Value{kind: KindObject, members: members}, nil
	default:
		return Value{}, fmt.Errorf("type %T has no JSON representation", x)
	}
}

func fromFloat(f float64, bits int) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, fmt.Errorf("number %v has no JSON representation", f)
	}
	return Number(json.Number(strconv.FormatFloat(f, 'g', -1, bits))), nil
}
