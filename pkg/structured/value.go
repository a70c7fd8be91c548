// Package structured aligns tree-shaped values (scalars, sequences,
// keyed mappings) against expected trees carrying the same pattern
// grammar as line-oriented text, plus two structural wildcards:
//
//   - "{...}" as an expected value accepts any actual value
//   - "..." as an expected mapping key, bound to "{...}", accepts any
//     actual keys not explicitly listed
package structured

// Kind discriminates the closed set of tree node variants.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindSequence
	KindMapping
)

// ValueWildcard is the expected-value form that accepts any actual
// value, and the standalone sequence element that splices zero or more
// actual elements.
const ValueWildcard = "{...}"

// KeyWildcard is the expected mapping key that, bound to ValueWildcard,
// absorbs actual keys not explicitly listed.
const KeyWildcard = "..."

// Member is one key/value pair of a mapping. Member order is preserved
// so a normalized tree renders byte-identically to its pattern.
type Member struct {
	Key   string
	Value Value
}

// Value is a closed tagged variant over tree node kinds. The zero
// value is null.
type Value struct {
	kind Kind
	b    bool
	num  string // raw number text, preserved verbatim
	str  string
	seq  []Value
	obj  []Member
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean scalar.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric scalar from its raw text form.
func Number(text string) Value { return Value{kind: KindNumber, num: text} }

// String returns a string scalar.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Seq returns a sequence of the given elements.
func Seq(elems ...Value) Value {
	return Value{kind: KindSequence, seq: elems}
}

// Map returns a mapping with the given members, in order.
func Map(members ...Member) Value {
	return Value{kind: KindMapping, obj: members}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// Text returns the scalar text: the string content, raw number text,
// "true"/"false", or "null".
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindNull:
		return "null"
	}
	return ""
}

// Items returns the sequence elements, or nil for other kinds.
func (v Value) Items() []Value { return v.seq }

// Members returns the mapping members in order, or nil for other kinds.
func (v Value) Members() []Member { return v.obj }

// Equal reports deep equality.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.num == other.num
	case KindString:
		return v.str == other.str
	case KindSequence:
		if len(v.seq) != len(other.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(other.seq[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(v.obj) != len(other.obj) {
			return false
		}
		for i := range v.obj {
			if v.obj[i].Key != other.obj[i].Key ||
				!v.obj[i].Value.Equal(other.obj[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// Transform returns a copy of v with op applied to every string scalar,
// recursively. Mapping keys are left alone.
func (v Value) Transform(op func(string) string) Value {
	switch v.kind {
	case KindString:
		return String(op(v.str))
	case KindSequence:
		out := make([]Value, len(v.seq))
		for i := range v.seq {
			out[i] = v.seq[i].Transform(op)
		}
		return Seq(out...)
	case KindMapping:
		out := make([]Member, len(v.obj))
		for i := range v.obj {
			out[i] = Member{Key: v.obj[i].Key, Value: v.obj[i].Value.Transform(op)}
		}
		return Map(out...)
	}
	return v
}

func isValueWildcard(v Value) bool {
	return v.kind == KindString && v.str == ValueWildcard
}
