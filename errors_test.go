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

package umojaqr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allErrorCodes enumerates the closed taxonomy for table checks.
var allErrorCodes = []ErrorCode{
	CodeInvalidDataLength,
	CodeInvalidTag,
	CodeInvalidLength,
	CodeInvalidValue,
	CodeCorruptedData,
	CodeMissingRequiredField,
	CodeInvalidChecksum,
	CodeUnknownPSP,
	CodeInvalidPSPFormat,
	CodeInvalidNestedTLV,
	CodeUnsupportedQRVersion,
	CodeInvalidCountry,
	CodeCurrencyMismatch,
	CodeEmvCoCompliance,
}

func TestEveryCodeHasCategoryAndSuggestion(t *testing.T) {
	t.Parallel()

	for _, code := range allErrorCodes {
		qe := &QRError{Code: code}
		assert.NotEqual(t, "unknown error", code.String())
		assert.NotEmpty(t, qe.RecoverySuggestion(), "code %v needs a user-facing hint", code)
		assert.NotEqual(t, "unknown", qe.Category().String(), "code %v needs a category", code)
	}
}

func TestSentinelMatching(t *testing.T) {
	t.Parallel()

	err := NewChecksumError("AA94", "AA95")
	assert.ErrorIs(t, err, ErrInvalidChecksum)
	assert.NotErrorIs(t, err, ErrCorruptedData)

	// Wrapping preserves matchability.
	wrapped := fmt.Errorf("outer context: %w", err)
	assert.ErrorIs(t, wrapped, ErrInvalidChecksum)

	var qe *QRError
	require.True(t, errors.As(wrapped, &qe))
	assert.Equal(t, CodeInvalidChecksum, qe.Code)
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  *QRError
		want string
		name string
	}{
		{
			name: "currency mismatch names both codes",
			err:  NewCurrencyMismatchError("404", "834"),
			want: "currency mismatch: country implies currency 404, payload carries 834 (tag 53)",
		},
		{
			name: "checksum carries computed and declared",
			err:  NewChecksumError("AA94", "0000"),
			want: "invalid checksum: computed AA94, declared 0000 (tag 63)",
		},
		{
			name: "missing field names the tag",
			err:  NewMissingFieldError("59"),
			want: "missing required field (tag 59)",
		},
		{
			name: "unknown PSP carries the reference",
			err:  NewUnknownPSPError("ZZZZ"),
			want: "unknown payment service provider: ZZZZ",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestCategoryAssignments(t *testing.T) {
	t.Parallel()

	assert.Equal(t, CategoryDataIntegrity, (&QRError{Code: CodeInvalidChecksum}).Category())
	assert.Equal(t, CategoryDataIntegrity, (&QRError{Code: CodeCorruptedData}).Category())
	assert.Equal(t, CategoryUnsupportedProvider, (&QRError{Code: CodeUnknownPSP}).Category())
	assert.Equal(t, CategoryUnsupportedVersion, (&QRError{Code: CodeUnsupportedQRVersion}).Category())
	assert.Equal(t, CategoryMalformedData, (&QRError{Code: CodeEmvCoCompliance}).Category())
}

func TestErrorCategoryOutsideTaxonomy(t *testing.T) {
	t.Parallel()

	assert.Equal(t, CategoryMalformedData, ErrorCategory(errors.New("stray")))
	assert.Equal(t, CategoryDataIntegrity, ErrorCategory(NewChecksumError("AA94", "AA95")))
}

func TestAsQRError(t *testing.T) {
	t.Parallel()

	qe, ok := AsQRError(fmt.Errorf("ctx: %w", NewInvalidCountryError("UG")))
	require.True(t, ok)
	assert.Equal(t, CodeInvalidCountry, qe.Code)

	_, ok = AsQRError(errors.New("not ours"))
	assert.False(t, ok)
}
