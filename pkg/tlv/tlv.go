// Copyright 2025 The Umoja QR Project Contributors.
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tlv implements the ASCII tag-length-value encoding used by EMVCo
// merchant-presented QR payloads. Every field is a 2-character tag, a
// 2-character declared length and exactly that many characters of value.
// Lengths are decimal; a hexadecimal fallback covers national-extension
// sub-templates that encode lengths in hex. Template tags carry a value
// that is itself a TLV sequence, parsed one level deep.
package tlv

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Common errors. Parse failures wrap one of these inside a *ParseError.
var (
	ErrEmptyInput   = errors.New("tlv: empty input")
	ErrDataTooShort = errors.New("tlv: data too short")
	ErrBadTag       = errors.New("tlv: malformed tag")
	ErrBadLength    = errors.New("tlv: malformed length")
	ErrValueTooLong = errors.New("tlv: value exceeds maximum encodable length")
)

// MaxValueLength is the largest value a 2-character length token can declare.
const MaxValueLength = 99

// Field is a single parsed TLV object. Nested is non-nil only for template
// tags; in that case Value is exactly the concatenation of the nested
// fields' own tag+length+value encodings.
type Field struct {
	Tag    string
	Value  string
	Nested []Field
	Length int
}

// EncodedLen returns the number of characters the field occupies on the
// wire: 2 tag characters, 2 length characters and the value.
func (f *Field) EncodedLen() int {
	return 4 + len(f.Value)
}

// Options controls how Parse interprets the input.
type Options struct {
	// Templates reports whether a top-level tag opens a template whose
	// value must be re-parsed as a nested TLV sequence. It is consulted
	// only at the top level; nested sequences never recurse further.
	Templates func(tag string) bool
	// Nested relaxes tag validation to the 2-character alphanumeric set
	// some national sub-formats use. Parse sets it when descending into
	// a template; callers normally leave it false.
	Nested bool
}

// ParseError reports where and why parsing stopped.
type ParseError struct {
	Err    error
	Tag    string
	Offset int
	Nested bool
}

func (e *ParseError) Error() string {
	where := fmt.Sprintf("offset %d", e.Offset)
	if e.Nested {
		where = fmt.Sprintf("template %s, %s", e.Tag, where)
	} else if e.Tag != "" {
		where = fmt.Sprintf("tag %s, %s", e.Tag, where)
	}
	return fmt.Sprintf("%v (%s)", e.Err, where)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse tokenizes data into an ordered field sequence. It fails fast on the
// first malformed field and never panics, whatever the input.
func Parse(data string, opts Options) ([]Field, error) {
	if data == "" {
		return nil, &ParseError{Err: ErrEmptyInput, Nested: opts.Nested}
	}

	var fields []Field
	for cursor := 0; cursor < len(data); {
		field, next, err := parseFieldAt(data, cursor, opts)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
		cursor = next
	}
	return fields, nil
}

// parseFieldAt reads one field starting at cursor and returns it along with
// the offset of the next field.
func parseFieldAt(data string, cursor int, opts Options) (Field, int, error) {
	remaining := len(data) - cursor
	if remaining < 4 {
		return Field{}, 0, &ParseError{
			Err:    fmt.Errorf("%w: need 4 header characters, have %d", ErrDataTooShort, remaining),
			Offset: cursor,
			Nested: opts.Nested,
		}
	}

	tag := data[cursor : cursor+2]
	if !validTag(tag, opts.Nested) {
		return Field{}, 0, &ParseError{
			Err:    fmt.Errorf("%w: %q", ErrBadTag, tag),
			Tag:    tag,
			Offset: cursor,
			Nested: opts.Nested,
		}
	}

	length, err := parseLength(data[cursor+2 : cursor+4])
	if err != nil {
		return Field{}, 0, &ParseError{
			Err:    err,
			Tag:    tag,
			Offset: cursor + 2,
			Nested: opts.Nested,
		}
	}

	if remaining-4 < length {
		return Field{}, 0, &ParseError{
			Err:    fmt.Errorf("%w: tag %s declares %d characters, %d remain", ErrDataTooShort, tag, length, remaining-4),
			Tag:    tag,
			Offset: cursor,
			Nested: opts.Nested,
		}
	}

	field := Field{
		Tag:    tag,
		Length: length,
		Value:  data[cursor+4 : cursor+4+length],
	}

	if !opts.Nested && opts.Templates != nil && opts.Templates(tag) {
		nested, err := Parse(field.Value, Options{Nested: true})
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				// Re-anchor the error on the enclosing template.
				pe.Tag = tag
				pe.Offset += cursor + 4
				return Field{}, 0, pe
			}
			return Field{}, 0, err
		}
		field.Nested = nested
	}

	return field, cursor + 4 + length, nil
}

// parseLength decodes a 2-character length token: decimal when both
// characters are digits, hexadecimal otherwise. The character set is
// checked first so strconv never sees a sign or other stray byte.
func parseLength(token string) (int, error) {
	for i := 0; i < len(token); i++ {
		if !isHexDigit(token[i]) {
			return 0, fmt.Errorf("%w: %q", ErrBadLength, token)
		}
	}
	if isDigits(token) {
		n, err := strconv.ParseInt(token, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrBadLength, token)
		}
		return int(n), nil
	}
	n, err := strconv.ParseInt(token, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadLength, token)
	}
	return int(n), nil
}

func validTag(tag string, nested bool) bool {
	if len(tag) != 2 {
		return false
	}
	if nested {
		return isAlphanumeric(tag)
	}
	return isDigits(tag)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isHexDigit(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'A' && c <= 'F':
		return true
	case c >= 'a' && c <= 'f':
		return true
	}
	return false
}

func isAlphanumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		default:
			return false
		}
	}
	return true
}

// Serialize encodes a single leaf field. Lengths are always emitted in
// decimal; the hexadecimal form is accepted on parse only.
func Serialize(tag, value string) (string, error) {
	if len(tag) != 2 || !isAlphanumeric(tag) {
		return "", fmt.Errorf("%w: %q", ErrBadTag, tag)
	}
	if len(value) > MaxValueLength {
		return "", fmt.Errorf("%w: tag %s value is %d characters", ErrValueTooLong, tag, len(value))
	}
	return fmt.Sprintf("%s%02d%s", tag, len(value), value), nil
}

// SerializeFields encodes an ordered field sequence. Fields carrying a
// nested sequence are re-serialized from it, so edits to Nested win over a
// stale Value.
func SerializeFields(fields []Field) (string, error) {
	var b strings.Builder
	for i := range fields {
		value := fields[i].Value
		if fields[i].Nested != nil {
			inner, err := SerializeFields(fields[i].Nested)
			if err != nil {
				return "", err
			}
			value = inner
		}
		encoded, err := Serialize(fields[i].Tag, value)
		if err != nil {
			return "", err
		}
		b.WriteString(encoded)
	}
	return b.String(), nil
}

// Template builds a template field whose value is the serialized nested
// sequence.
func Template(tag string, nested []Field) (Field, error) {
	value, err := SerializeFields(nested)
	if err != nil {
		return Field{}, err
	}
	if len(value) > MaxValueLength {
		return Field{}, fmt.Errorf("%w: template %s content is %d characters", ErrValueTooLong, tag, len(value))
	}
	return Field{Tag: tag, Length: len(value), Value: value, Nested: nested}, nil
}
