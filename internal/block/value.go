package block

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Kind tags the shape of a decoded metadata value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Sequence
	Mapping
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Sequence:
		return "sequence"
	case Mapping:
		return "mapping"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Value is a decoded JSON value. Scalars keep their literal text, mappings
// keep their keys in document order.
type Value struct {
	Kind   Kind
	Text   string
	Items  []Value
	Keys   []string
	Fields map[string]Value
}

// Parse decodes exactly one JSON document.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			return Value{}, errors.New("invalid character after top-level value")
		}
		return Value{}, err
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err == io.EOF {
		return Value{}, io.ErrUnexpectedEOF
	}
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeMapping(dec)
		case '[':
			return decodeSequence(dec)
		}
		return Value{}, fmt.Errorf("unexpected delimiter %q", t)
	case nil:
		return Value{Kind: Null}, nil
	case bool:
		return Value{Kind: Bool, Text: strconv.FormatBool(t)}, nil
	case json.Number:
		return Value{Kind: Number, Text: t.String()}, nil
	case string:
		return Value{Kind: String, Text: t}, nil
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

func decodeMapping(dec *json.Decoder) (Value, error) {
	v := Value{Kind: Mapping, Fields: make(map[string]Value)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("unexpected object key %v", tok)
		}
		child, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		// A repeated key keeps its first position and its last value.
		if _, seen := v.Fields[key]; !seen {
			v.Keys = append(v.Keys, key)
		}
		v.Fields[key] = child
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return v, nil
}

func decodeSequence(dec *json.Decoder) (Value, error) {
	v := Value{Kind: Sequence}
	for dec.More() {
		child, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		v.Items = append(v.Items, child)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return v, nil
}

// Field returns the value stored under key, or a null value when v is not a
// mapping or has no such key.
func (v Value) Field(key string) Value {
	if v.Kind != Mapping {
		return Value{Kind: Null}
	}
	if f, ok := v.Fields[key]; ok {
		return f
	}
	return Value{Kind: Null}
}

// Truthy reports whether v counts as present/enabled. Containers are truthy
// even when empty, so an attribute declared as {} is still listed.
func (v Value) Truthy() bool {
	switch v.Kind {
	case Bool:
		return v.Text == "true"
	case Number:
		f, err := strconv.ParseFloat(v.Text, 64)
		if err != nil {
			return true
		}
		return f != 0
	case String:
		return v.Text != ""
	case Sequence, Mapping:
		return true
	}
	return false
}

// Display renders v the way the block editor's tooling prints values:
// null as the empty string, numbers in shortest form (1.0 is "1"),
// sequences as their elements joined by "," and mappings as
// "[object Object]".
func (v Value) Display() string {
	switch v.Kind {
	case Null:
		return ""
	case Number:
		return formatNumber(v.Text)
	case Sequence:
		parts := make([]string, len(v.Items))
		for i, item := range v.Items {
			parts[i] = item.Display()
		}
		return strings.Join(parts, ",")
	case Mapping:
		return "[object Object]"
	}
	return v.Text
}

// sortKey is the text a sequence element sorts by. It only differs from
// Display for null, which sorts as "null" but prints as "".
func (v Value) sortKey() string {
	if v.Kind == Null {
		return "null"
	}
	return v.Display()
}

func formatNumber(text string) string {
	f, err := strconv.ParseFloat(text, 64)
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case err != nil:
		return text
	case f == 0:
		return "0"
	}

	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	// Exponent without zero padding: 1e+21, 1.5e-7
	mant, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	return mant + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
}
