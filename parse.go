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

// Package umojaqr parses, validates and generates EMVCo merchant-presented
// payment QR payloads for the Kenya CBK QR 2023 and Tanzania TANQR/TIPS
// standards, including the legacy proprietary bank formats still found on
// printed stickers.
//
// The three entry points are Parse (full parse with validation), Validate
// (non-throwing, returns warnings alongside errors) and Generate (builds a
// checksummed payload from a request). All three are pure synchronous
// functions, safe for concurrent callers.
package umojaqr

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pwnstarSmithers/Umoja-QR-sub001/internal/crc16"
	"github.com/pwnstarSmithers/Umoja-QR-sub001/pkg/tlv"
	"github.com/pwnstarSmithers/Umoja-QR-sub001/psp"
	"github.com/shopspring/decimal"
)

// Parse tokenizes and fully validates a QR payload string: structural
// check, CRC16 verification, semantic/country check, then account-template
// resolution. It fails fast on the first problem; every returned error is a
// *QRError from the closed taxonomy.
func Parse(qr string) (*ParsedQRCode, error) {
	parsed, _, err := parseDocument(qr)
	if err != nil {
		return nil, err
	}
	return parsed, nil
}

// Validate is the non-throwing variant of Parse. It never returns an
// error; failures land in the result's Errors list and advisory findings
// in Warnings.
func Validate(qr string) *QRValidationResult {
	parsed, warnings, err := parseDocument(qr)
	result := &QRValidationResult{Warnings: warnings}
	if err != nil {
		var qe *QRError
		if !errors.As(err, &qe) {
			qe = &QRError{Code: CodeCorruptedData, Detail: err.Error(), wrapped: err}
		}
		result.Errors = append(result.Errors, qe)
		return result
	}
	result.Valid = true
	for _, ue := range parsed.UnresolvedTemplates {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("account template did not resolve: %v", ue))
	}
	return result
}

// DetectCountry is a cheap tag-58 sniff for UI routing. It tokenizes
// without validating, so a payload that detects as Kenya can still fail
// Parse.
func DetectCountry(qr string) (psp.Country, bool) {
	fields, err := tlv.Parse(qr, tlv.Options{})
	if err != nil {
		return "", false
	}
	for i := range fields {
		if fields[i].Tag == TagCountryCode {
			return psp.CountryFromCode(fields[i].Value)
		}
	}
	return "", false
}

// document carries the state threaded through the validation stages.
type document struct {
	raw      string
	fields   []tlv.Field
	position map[string]int // tag -> first document-order index
	warnings []string
}

// parseDocument runs the linear pipeline: tokenize, structural check,
// checksum check, semantic check, template resolution. Stage order
// matters: the checksum is verified over raw bytes before any semantic
// interpretation is trusted.
func parseDocument(qr string) (*ParsedQRCode, []string, error) {
	doc := &document{raw: qr}

	for _, stage := range []func() error{
		doc.tokenize,
		doc.checkStructure,
		doc.checkChecksum,
		doc.checkSemantics,
	} {
		if err := stage(); err != nil {
			return nil, doc.warnings, err
		}
	}

	parsed, err := doc.build()
	if err != nil {
		return nil, doc.warnings, err
	}
	return parsed, doc.warnings, nil
}

func (doc *document) tokenize() error {
	if doc.raw == "" {
		return NewDataLengthError("empty payload")
	}
	if len(doc.raw) > maxPayloadLength {
		return NewDataLengthError(fmt.Sprintf("payload is %d characters, limit is %d", len(doc.raw), maxPayloadLength))
	}

	fields, err := tlv.Parse(doc.raw, tlv.Options{Templates: isTemplateTag})
	if err != nil {
		return convertTLVError(err)
	}
	doc.fields = fields
	doc.position = make(map[string]int, len(fields))
	for i := range fields {
		if _, seen := doc.position[fields[i].Tag]; !seen {
			doc.position[fields[i].Tag] = i
		}
	}
	return nil
}

// convertTLVError maps codec failures onto the taxonomy at the API
// boundary.
func convertTLVError(err error) *QRError {
	var pe *tlv.ParseError
	if !errors.As(err, &pe) {
		return &QRError{Code: CodeCorruptedData, Detail: err.Error(), wrapped: err}
	}
	if pe.Nested {
		return &QRError{Code: CodeInvalidNestedTLV, Tag: pe.Tag, Detail: pe.Error(), wrapped: err}
	}
	switch {
	case errors.Is(err, tlv.ErrBadTag):
		return &QRError{Code: CodeInvalidTag, Tag: pe.Tag, Detail: pe.Error(), wrapped: err}
	case errors.Is(err, tlv.ErrBadLength):
		return &QRError{Code: CodeInvalidLength, Tag: pe.Tag, Detail: pe.Error(), wrapped: err}
	default:
		return &QRError{Code: CodeCorruptedData, Tag: pe.Tag, Detail: pe.Error(), wrapped: err}
	}
}

func (doc *document) checkStructure() error {
	for _, tag := range requiredRootTags {
		if _, ok := doc.position[tag]; !ok {
			return NewMissingFieldError(tag)
		}
	}

	// Type-specific requirements hinge on the MCC.
	switch qrTypeForMCC(doc.value(TagMerchantCategory)) {
	case QRTypeP2M:
		if _, ok := doc.position[TagRecipientName]; !ok {
			return NewMissingFieldError(TagRecipientName)
		}
	case QRTypeP2P:
		if _, ok := doc.position[TagRecipientCity]; !ok {
			return NewMissingFieldError(TagRecipientCity)
		}
	}

	hasTemplate := false
	for i := range doc.fields {
		if isAccountTemplateTag(doc.fields[i].Tag) {
			hasTemplate = true
			break
		}
	}
	if !hasTemplate {
		return NewMissingFieldError("account_template")
	}

	// Standard-mandated ordering: the format-version indicator, when
	// present, precedes the checksum; the checksum is the final object.
	if pos, ok := doc.position[TagFormatVersion]; ok && pos > doc.position[TagChecksum] {
		return NewComplianceError("format version (tag 64) must precede the checksum (tag 63)")
	}
	if doc.position[TagChecksum] != len(doc.fields)-1 {
		return NewComplianceError("checksum (tag 63) must be the final data object")
	}
	if _, ok := doc.position[TagFormatVersion]; !ok {
		doc.warnings = append(doc.warnings, "optional format version (tag 64) not present")
	}

	return nil
}

// checkChecksum recomputes the CRC over everything preceding the checksum
// field plus the literal "6304" header and compares it against the declared
// digits in constant time, so a forged value leaks no timing signal about
// where it diverges.
func (doc *document) checkChecksum() error {
	declared := doc.value(TagChecksum)
	if len(declared) != 4 || !isHex(declared) {
		return NewInvalidValueError(TagChecksum, "checksum must be 4 hexadecimal digits")
	}

	offset := 0
	for i := 0; i < doc.position[TagChecksum]; i++ {
		offset += doc.fields[i].EncodedLen()
	}
	computed := crc16.Format(crc16.ChecksumString(doc.raw[:offset] + checksumHeader))

	if subtle.ConstantTimeCompare([]byte(computed), []byte(strings.ToUpper(declared))) != 1 {
		return NewChecksumError(computed, declared)
	}
	return nil
}

// checkSemantics applies per-field content rules. Top level only: nested
// template fields are deliberately validated more permissively because
// national extensions diverge.
func (doc *document) checkSemantics() error {
	if v := doc.value(TagPayloadFormat); v != payloadFormatIndicator {
		return NewVersionError(v)
	}
	if m := InitiationMethod(doc.value(TagInitiationMethod)); !m.Valid() {
		return NewInvalidValueError(TagInitiationMethod, "initiation method must be 11 (static) or 12 (dynamic)")
	}
	if v := doc.value(TagMerchantCategory); !isNumeric(v) {
		return NewInvalidValueError(TagMerchantCategory, "merchant category code must be numeric")
	}
	if v := doc.value(TagCurrency); !isNumeric(v) {
		return NewInvalidValueError(TagCurrency, "currency code must be numeric")
	}
	if v := doc.value(TagCountryCode); !isAlphabetic(v) {
		return NewInvalidValueError(TagCountryCode, "country code must be alphabetic")
	}

	if _, ok := doc.position[TagAmount]; ok {
		if _, err := parseAmount(doc.value(TagAmount)); err != nil {
			return err
		}
	}

	country, ok := psp.CountryFromCode(doc.value(TagCountryCode))
	if !ok {
		return NewInvalidCountryError(doc.value(TagCountryCode))
	}
	if currency := doc.value(TagCurrency); currency != country.Currency() {
		return NewCurrencyMismatchError(country.Currency(), currency)
	}
	return nil
}

// parseAmount enforces the tag-54 contract: a parseable, strictly positive
// decimal.
func parseAmount(v string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Decimal{}, &QRError{
			Code: CodeInvalidValue, Tag: TagAmount,
			Detail:  "amount is not a decimal number",
			wrapped: err,
		}
	}
	if !amount.IsPositive() {
		return decimal.Decimal{}, NewInvalidValueError(TagAmount, "amount must be positive")
	}
	return amount, nil
}

// build assembles the public result from the validated field list and runs
// template resolution, the one stage that tolerates partial failure.
func (doc *document) build() (*ParsedQRCode, error) {
	templates, unresolved, fatal := resolveAllTemplates(doc.fields)
	if fatal != nil {
		return nil, fatal
	}
	if len(templates) > 1 {
		doc.warnings = append(doc.warnings,
			fmt.Sprintf("payload carries %d account templates", len(templates)))
	}

	parsed := &ParsedQRCode{
		PayloadFormat:        doc.value(TagPayloadFormat),
		InitiationMethod:     InitiationMethod(doc.value(TagInitiationMethod)),
		Templates:            templates,
		MerchantCategoryCode: doc.value(TagMerchantCategory),
		RecipientName:        doc.value(TagRecipientName),
		RecipientIdentifier:  doc.value(TagRecipientCity),
		PostalCode:           doc.value(TagPostalCode),
		Currency:             doc.value(TagCurrency),
		CountryCode:          strings.ToUpper(doc.value(TagCountryCode)),
		FormatVersion:        doc.value(TagFormatVersion),
		QRType:               qrTypeForMCC(doc.value(TagMerchantCategory)),
		Fields:               doc.fields,
		UnresolvedTemplates:  unresolved,
	}

	if _, ok := doc.position[TagAmount]; ok {
		amount, err := parseAmount(doc.value(TagAmount))
		if err != nil {
			return nil, err
		}
		parsed.Amount = &amount
	}

	if pos, ok := doc.position[TagAdditionalData]; ok {
		parsed.AdditionalData = parseAdditionalData(doc.fields[pos].Nested)
	}

	if pos, ok := doc.position[TagExtensionTemplate]; ok {
		parsed.GeneratedAt = doc.extensionTimestamp(&doc.fields[pos])
	}

	return parsed, nil
}

// extensionTimestamp reads the generation timestamp out of the national
// extension template. An unparseable timestamp degrades to a warning; the
// extension is advisory and must not fail an otherwise valid payload.
func (doc *document) extensionTimestamp(f *tlv.Field) *time.Time {
	raw := nestedValue(f.Nested, subTagTimestamp)
	if raw == "" {
		return nil
	}
	ts, err := time.Parse(timestampLayout, raw)
	if err != nil {
		doc.warnings = append(doc.warnings,
			fmt.Sprintf("extension template timestamp %q is unparseable", raw))
		return nil
	}
	return &ts
}

// value returns the first occurrence of tag, or "" when absent.
func (doc *document) value(tag string) string {
	if pos, ok := doc.position[tag]; ok {
		return doc.fields[pos].Value
	}
	return ""
}
