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
)

// ErrorCode identifies one variant of the closed validation taxonomy.
// Every failure returned by Parse, Validate or Generate carries exactly
// one of these codes.
type ErrorCode int

const (
	// CodeInvalidDataLength rejects payloads that are empty or exceed the
	// 512-character EMVCo cap.
	CodeInvalidDataLength ErrorCode = iota
	// CodeInvalidTag marks a tag token that is not valid for its nesting
	// level.
	CodeInvalidTag
	// CodeInvalidLength marks a malformed length token or a field whose
	// declared length violates its tag's constraints.
	CodeInvalidLength
	// CodeInvalidValue marks field content that violates a content rule.
	CodeInvalidValue
	// CodeCorruptedData marks a payload truncated mid-field.
	CodeCorruptedData
	// CodeMissingRequiredField marks an absent mandatory tag.
	CodeMissingRequiredField
	// CodeInvalidChecksum marks a CRC16 mismatch.
	CodeInvalidChecksum
	// CodeUnknownPSP marks a well-formed provider reference not present
	// in the directory.
	CodeUnknownPSP
	// CodeInvalidPSPFormat marks a provider reference whose structure is
	// itself malformed.
	CodeInvalidPSPFormat
	// CodeInvalidNestedTLV marks template content that is not parseable
	// as a TLV sequence.
	CodeInvalidNestedTLV
	// CodeUnsupportedQRVersion marks a payload format indicator other
	// than "01".
	CodeUnsupportedQRVersion
	// CodeInvalidCountry marks a country outside the supported markets.
	CodeInvalidCountry
	// CodeCurrencyMismatch marks a currency that contradicts the country.
	CodeCurrencyMismatch
	// CodeEmvCoCompliance marks a violation of a standard-mandated
	// structural rule, such as data objects after the checksum.
	CodeEmvCoCompliance
)

func (c ErrorCode) String() string {
	switch c {
	case CodeInvalidDataLength:
		return "invalid data length"
	case CodeInvalidTag:
		return "invalid tag"
	case CodeInvalidLength:
		return "invalid length"
	case CodeInvalidValue:
		return "invalid value"
	case CodeCorruptedData:
		return "corrupted data"
	case CodeMissingRequiredField:
		return "missing required field"
	case CodeInvalidChecksum:
		return "invalid checksum"
	case CodeUnknownPSP:
		return "unknown payment service provider"
	case CodeInvalidPSPFormat:
		return "invalid PSP format"
	case CodeInvalidNestedTLV:
		return "invalid nested TLV"
	case CodeUnsupportedQRVersion:
		return "unsupported QR version"
	case CodeInvalidCountry:
		return "invalid country"
	case CodeCurrencyMismatch:
		return "currency mismatch"
	case CodeEmvCoCompliance:
		return "EMVCo compliance violation"
	default:
		return "unknown error"
	}
}

// Category groups error codes by how a scanning application should react.
type Category int

const (
	// CategoryDataIntegrity covers damaged or tampered payloads.
	CategoryDataIntegrity Category = iota
	// CategoryUnsupportedProvider covers references to providers or
	// markets outside the directory.
	CategoryUnsupportedProvider
	// CategoryExpired is reserved for callers enforcing a staleness
	// policy over ParsedQRCode.GeneratedAt; no core code maps to it.
	CategoryExpired
	// CategoryMalformedData covers structural and semantic rule breaks.
	CategoryMalformedData
	// CategoryUnsupportedVersion covers payload format indicators this
	// library does not speak.
	CategoryUnsupportedVersion
)

func (c Category) String() string {
	switch c {
	case CategoryDataIntegrity:
		return "data integrity"
	case CategoryUnsupportedProvider:
		return "unsupported provider"
	case CategoryExpired:
		return "expired"
	case CategoryMalformedData:
		return "malformed data"
	case CategoryUnsupportedVersion:
		return "unsupported version"
	default:
		return "unknown"
	}
}

// errorCategories fixes the category of every code.
var errorCategories = map[ErrorCode]Category{
	CodeInvalidDataLength:    CategoryMalformedData,
	CodeInvalidTag:           CategoryMalformedData,
	CodeInvalidLength:        CategoryMalformedData,
	CodeInvalidValue:         CategoryMalformedData,
	CodeCorruptedData:        CategoryDataIntegrity,
	CodeMissingRequiredField: CategoryMalformedData,
	CodeInvalidChecksum:      CategoryDataIntegrity,
	CodeUnknownPSP:           CategoryUnsupportedProvider,
	CodeInvalidPSPFormat:     CategoryUnsupportedProvider,
	CodeInvalidNestedTLV:     CategoryMalformedData,
	CodeUnsupportedQRVersion: CategoryUnsupportedVersion,
	CodeInvalidCountry:       CategoryUnsupportedProvider,
	CodeCurrencyMismatch:     CategoryMalformedData,
	CodeEmvCoCompliance:      CategoryMalformedData,
}

// recoverySuggestions carries the user-facing hint for each code. These
// strings are shown to the person scanning a bad code, not to developers.
var recoverySuggestions = map[ErrorCode]string{
	CodeInvalidDataLength:    "Rescan the code. If the problem persists, ask the merchant for a fresh QR code.",
	CodeInvalidTag:           "This does not look like a payment QR code. Confirm you are scanning the payment sticker.",
	CodeInvalidLength:        "The code could not be read completely. Flatten the sticker and rescan.",
	CodeInvalidValue:         "The code contains unreadable payment details. Ask the merchant to regenerate it.",
	CodeCorruptedData:        "The code is damaged. Rescan it, or ask the merchant for a new one.",
	CodeMissingRequiredField: "The code is incomplete. Ask the merchant to regenerate their QR code.",
	CodeInvalidChecksum:      "The code failed its integrity check and may have been altered. Do not pay against it; request a fresh code.",
	CodeUnknownPSP:           "The payment provider behind this code is not supported yet. Pay through another method.",
	CodeInvalidPSPFormat:     "The provider details in this code are malformed. Ask the merchant to regenerate it.",
	CodeInvalidNestedTLV:     "Part of the code could not be decoded. Rescan it, or ask for a new one.",
	CodeUnsupportedQRVersion: "This code uses a newer format than this app understands. Update the app and try again.",
	CodeInvalidCountry:       "This code was issued for an unsupported country.",
	CodeCurrencyMismatch:     "The code's currency does not match its country. Ask the merchant to regenerate it.",
	CodeEmvCoCompliance:      "The code is not standards-conformant. Ask the merchant to regenerate it.",
}

// QRError is the error type for every parse, validation and generation
// failure. Match on Code directly, or use errors.Is against the exported
// sentinel instances.
type QRError struct {
	wrapped  error
	Tag      string // offending tag, when known
	Expected string
	Actual   string
	Detail   string
	Code     ErrorCode
}

func (e *QRError) Error() string {
	msg := e.Code.String()
	switch {
	case e.Code == CodeCurrencyMismatch:
		msg = fmt.Sprintf("%s: country implies currency %s, payload carries %s", msg, e.Expected, e.Actual)
	case e.Code == CodeInvalidChecksum:
		msg = fmt.Sprintf("%s: computed %s, declared %s", msg, e.Expected, e.Actual)
	case e.Expected != "" && e.Actual != "":
		msg = fmt.Sprintf("%s: expected %s, got %s", msg, e.Expected, e.Actual)
	case e.Actual != "":
		msg = fmt.Sprintf("%s: %s", msg, e.Actual)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Tag != "" {
		msg += fmt.Sprintf(" (tag %s)", e.Tag)
	}
	return msg
}

func (e *QRError) Unwrap() error {
	return e.wrapped
}

// Is matches any *QRError carrying the same code, which makes the exported
// sentinels below work with errors.Is.
func (e *QRError) Is(target error) bool {
	var qe *QRError
	if !errors.As(target, &qe) {
		return false
	}
	return qe.Code == e.Code
}

// Category reports how a scanning application should classify the failure.
func (e *QRError) Category() Category {
	return errorCategories[e.Code]
}

// RecoverySuggestion returns the user-facing hint for the failure.
func (e *QRError) RecoverySuggestion() string {
	return recoverySuggestions[e.Code]
}

// Sentinel instances for errors.Is matching. These carry no context; the
// errors actually returned are fully populated QRError values.
var (
	ErrInvalidDataLength    = &QRError{Code: CodeInvalidDataLength}
	ErrInvalidTag           = &QRError{Code: CodeInvalidTag}
	ErrInvalidLength        = &QRError{Code: CodeInvalidLength}
	ErrInvalidValue         = &QRError{Code: CodeInvalidValue}
	ErrCorruptedData        = &QRError{Code: CodeCorruptedData}
	ErrMissingRequiredField = &QRError{Code: CodeMissingRequiredField}
	ErrInvalidChecksum      = &QRError{Code: CodeInvalidChecksum}
	ErrUnknownPSP           = &QRError{Code: CodeUnknownPSP}
	ErrInvalidPSPFormat     = &QRError{Code: CodeInvalidPSPFormat}
	ErrInvalidNestedTLV     = &QRError{Code: CodeInvalidNestedTLV}
	ErrUnsupportedVersion   = &QRError{Code: CodeUnsupportedQRVersion}
	ErrInvalidCountry       = &QRError{Code: CodeInvalidCountry}
	ErrCurrencyMismatch     = &QRError{Code: CodeCurrencyMismatch}
	ErrEmvCoCompliance      = &QRError{Code: CodeEmvCoCompliance}
)

// NewDataLengthError reports an unusable overall payload size.
func NewDataLengthError(detail string) *QRError {
	return &QRError{Code: CodeInvalidDataLength, Detail: detail}
}

// NewMissingFieldError reports an absent mandatory tag. The pseudo-tag
// "account_template" stands for the 26-51 range as a whole.
func NewMissingFieldError(tag string) *QRError {
	return &QRError{Code: CodeMissingRequiredField, Tag: tag}
}

// NewInvalidValueError reports field content violating a content rule.
func NewInvalidValueError(tag, detail string) *QRError {
	return &QRError{Code: CodeInvalidValue, Tag: tag, Detail: detail}
}

// NewInvalidLengthError reports a field whose declared length breaks its
// tag's constraints.
func NewInvalidLengthError(tag, detail string) *QRError {
	return &QRError{Code: CodeInvalidLength, Tag: tag, Detail: detail}
}

// NewChecksumError reports a CRC16 mismatch.
func NewChecksumError(computed, declared string) *QRError {
	return &QRError{Code: CodeInvalidChecksum, Tag: TagChecksum, Expected: computed, Actual: declared}
}

// NewUnknownPSPError reports a provider reference absent from the
// directory; ref is the GUID or numeric identifier as it appeared.
func NewUnknownPSPError(ref string) *QRError {
	return &QRError{Code: CodeUnknownPSP, Actual: ref}
}

// NewPSPFormatError reports a structurally broken provider reference.
func NewPSPFormatError(tag, detail string) *QRError {
	return &QRError{Code: CodeInvalidPSPFormat, Tag: tag, Detail: detail}
}

// NewVersionError reports an unsupported payload format indicator.
func NewVersionError(actual string) *QRError {
	return &QRError{Code: CodeUnsupportedQRVersion, Tag: TagPayloadFormat, Expected: payloadFormatIndicator, Actual: actual}
}

// NewInvalidCountryError reports a country outside the supported markets.
func NewInvalidCountryError(code string) *QRError {
	return &QRError{Code: CodeInvalidCountry, Tag: TagCountryCode, Actual: code}
}

// NewCurrencyMismatchError reports a currency contradicting the country.
func NewCurrencyMismatchError(expected, actual string) *QRError {
	return &QRError{Code: CodeCurrencyMismatch, Tag: TagCurrency, Expected: expected, Actual: actual}
}

// NewComplianceError reports a standard-mandated structural violation.
func NewComplianceError(detail string) *QRError {
	return &QRError{Code: CodeEmvCoCompliance, Detail: detail}
}

// AsQRError unwraps err to the taxonomy type when possible.
func AsQRError(err error) (*QRError, bool) {
	var qe *QRError
	ok := errors.As(err, &qe)
	return qe, ok
}

// ErrorCategory reports the category of err, defaulting to malformed data
// for errors outside the taxonomy.
func ErrorCategory(err error) Category {
	if qe, ok := AsQRError(err); ok {
		return qe.Category()
	}
	return CategoryMalformedData
}
