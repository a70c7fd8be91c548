package structured

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// FromJSON parses one JSON document into a Value, preserving object
// member order and the raw text of numbers. The stock decoder is only
// used as a tokenizer; its map type would lose member order, which the
// aligner needs for byte-exact rendering.
func FromJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("trailing data after JSON document")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, fmt.Errorf("parsing JSON: %w", err)
	}
	return decodeFromToken(dec, tok)
}

func decodeFromToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t.String()), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '[':
			var elems []Value
			for dec.More() {
				e, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				elems = append(elems, e)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, fmt.Errorf("parsing JSON array: %w", err)
			}
			return Seq(elems...), nil
		case '{':
			var members []Member
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, fmt.Errorf("parsing JSON object key: %w", err)
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("JSON object key is not a string: %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				members = append(members, Member{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, fmt.Errorf("parsing JSON object: %w", err)
			}
			return Map(members...), nil
		}
	}
	return Value{}, fmt.Errorf("unexpected JSON token: %v", tok)
}

// ToJSON renders v as two-space-indented JSON with a trailing newline,
// members in stored order and numbers verbatim. The rendering is
// deterministic so normalized output can be compared byte-for-byte
// against a recorded pattern.
func ToJSON(v Value) string {
	var b strings.Builder
	encodeValue(&b, v, 0)
	b.WriteByte('\n')
	return b.String()
}

func encodeValue(b *strings.Builder, v Value, depth int) {
	switch v.kind {
	case KindNull:
		b.WriteString("null")
	case KindBool, KindNumber:
		b.WriteString(v.Text())
	case KindString:
		b.WriteString(quoteJSON(v.str))
	case KindSequence:
		if len(v.seq) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteString("[\n")
		for i, e := range v.seq {
			writeIndent(b, depth+1)
			encodeValue(b, e, depth+1)
			if i < len(v.seq)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		writeIndent(b, depth)
		b.WriteByte(']')
	case KindMapping:
		if len(v.obj) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{\n")
		for i, m := range v.obj {
			writeIndent(b, depth+1)
			b.WriteString(quoteJSON(m.Key))
			b.WriteString(": ")
			encodeValue(b, m.Value, depth+1)
			if i < len(v.obj)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		writeIndent(b, depth)
		b.WriteByte('}')
	}
}

func writeIndent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

func quoteJSON(s string) string {
	out, err := json.Marshal(s)
	if err != nil {
		// Strings always marshal.
		return `""`
	}
	return string(out)
}
