// Copyright 2026 The Umoja QR Project Contributors.
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

package tlv

import (
	"testing"
)

// =============================================================================
// Fuzz Tests for TLV Parsing
// =============================================================================
// QR payload strings arrive straight from camera/barcode pipelines and are
// fully attacker-controlled. The parser must reject malformed input with an
// error, never a panic or an out-of-bounds read.
//
// Run with: go test -fuzz=FuzzParse -fuzztime=30s ./pkg/tlv/

// FuzzParse feeds arbitrary strings through the tokenizer.
func FuzzParse(f *testing.F) {
	// Valid payloads
	f.Add("000201")
	f.Add("0002010102115204541153034045802KE")
	f.Add("29230008ke.go.qr68072226665")
	f.Add("8219010F11062025T125906")
	f.Add("6100")

	// Truncations and malformed headers
	f.Add("")
	f.Add("0")
	f.Add("00")
	f.Add("000")
	f.Add("0005abc")
	f.Add("00FF")
	f.Add("00-101")
	f.Add("ZZ0201")
	f.Add("6200")
	f.Add("2903abc")

	// Hostile lengths
	f.Add("00990")
	f.Add("0099" + string(make([]byte, 99)))
	f.Add("26FF0008ke.go.qr")

	f.Fuzz(func(t *testing.T, data string) {
		fields, err := Parse(data, Options{Templates: qrTemplates})
		if err != nil {
			if fields != nil {
				t.Error("Parse returned fields alongside an error")
			}
			return
		}

		// Whatever parsed must re-encode and re-parse to the same shape.
		// Hex-declared lengths beyond 99 cannot be re-encoded in decimal;
		// those inputs are valid to parse but excluded from the round trip.
		encoded, err := SerializeFields(fields)
		if err != nil {
			return
		}
		reparsed, err := Parse(encoded, Options{Templates: qrTemplates})
		if err != nil {
			t.Fatalf("re-parse of serialized fields failed: %v", err)
		}
		if len(reparsed) != len(fields) {
			t.Errorf("round trip changed field count: %d != %d", len(reparsed), len(fields))
		}
		for i := range fields {
			if reparsed[i].Tag != fields[i].Tag {
				t.Errorf("round trip changed tag %d: %q != %q", i, reparsed[i].Tag, fields[i].Tag)
			}
		}
	})
}

// FuzzParseNested exercises the relaxed nested-tag mode directly.
func FuzzParseNested(f *testing.F) {
	f.Add("0008ke.go.qr")
	f.Add("010501002020854321012")
	f.Add("Ab03xyz")
	f.Add("")
	f.Add("680722266")

	f.Fuzz(func(_ *testing.T, data string) {
		// Must not panic regardless of input.
		_, _ = Parse(data, Options{Nested: true})
	})
}

// FuzzSerialize checks the encoder against arbitrary tag/value pairs.
func FuzzSerialize(f *testing.F) {
	f.Add("00", "01")
	f.Add("59", "Thika Vivian Stores")
	f.Add("61", "")
	f.Add("6", "x")
	f.Add("629", "x")

	f.Fuzz(func(t *testing.T, tag, value string) {
		encoded, err := Serialize(tag, value)
		if err != nil {
			return
		}
		// A successful encode must tokenize back to the same field.
		fields, err := Parse(encoded, Options{Nested: true})
		if err != nil {
			t.Fatalf("parse of serialized field failed: %v", err)
		}
		if len(fields) != 1 || fields[0].Tag != tag || fields[0].Value != value {
			t.Errorf("round trip mismatch: %q -> %+v", encoded, fields)
		}
	})
}
