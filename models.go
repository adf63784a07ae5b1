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
	"time"

	"github.com/pwnstarSmithers/Umoja-QR-sub001/pkg/tlv"
	"github.com/pwnstarSmithers/Umoja-QR-sub001/psp"
	"github.com/shopspring/decimal"
)

// InitiationMethod is the tag-01 point-of-initiation value.
type InitiationMethod string

const (
	// InitiationStatic marks a reusable printed code; the payer keys in
	// the amount.
	InitiationStatic InitiationMethod = "11"
	// InitiationDynamic marks a per-transaction code carrying its amount.
	InitiationDynamic InitiationMethod = "12"
)

// Valid reports whether the value is one of the two defined methods.
func (m InitiationMethod) Valid() bool {
	return m == InitiationStatic || m == InitiationDynamic
}

// IsDynamic reports whether the code carries a transaction amount.
func (m InitiationMethod) IsDynamic() bool {
	return m == InitiationDynamic
}

// QRType distinguishes person-to-person from person-to-merchant codes.
// It is derived from the merchant category code, never carried on the wire.
type QRType int

const (
	// QRTypeP2M is a merchant-presented payment code.
	QRTypeP2M QRType = iota
	// QRTypeP2P is a person-to-person transfer code.
	QRTypeP2P
)

func (t QRType) String() string {
	switch t {
	case QRTypeP2P:
		return "P2P"
	case QRTypeP2M:
		return "P2M"
	default:
		return "unknown"
	}
}

// AccountTemplate is one resolved payment destination. A payload carries at
// least one and may carry several (multi-PSP codes).
type AccountTemplate struct {
	// Tag is the template's position in the 26-51 account range.
	Tag string
	// GUID is the identifier actually present at sub-tag 00: a national
	// GUID, a legacy bank code or a proprietary format code.
	GUID string
	// ParticipantID is the provider identifier that resolved the PSP: the
	// matched CBK numeric prefix for Kenya, the TIPS acquirer id for
	// Tanzania. Empty for legacy formats resolved by GUID alone.
	ParticipantID string
	// AccountID is the destination account identifier as carried on the
	// wire: a till/paybill/account number, phone number or merchant id.
	AccountID string
	// PSP is the directory entry the template resolved to.
	PSP psp.Info
}

// ParsedQRCode is the result of a successful Parse. It is immutable once
// returned; its lifetime is the single parse call.
type ParsedQRCode struct {
	// PayloadFormat is the tag-00 indicator, always "01".
	PayloadFormat string
	// InitiationMethod is static or dynamic.
	InitiationMethod InitiationMethod
	// Templates are the resolved payment destinations, in document order.
	Templates []AccountTemplate
	// MerchantCategoryCode is the 4-digit MCC from tag 52.
	MerchantCategoryCode string
	// Amount is the transaction amount, nil unless tag 54 is present.
	Amount *decimal.Decimal
	// RecipientName is the merchant or payee name (tag 59).
	RecipientName string
	// RecipientIdentifier is the tag-60 value: a city for P2M codes, the
	// recipient identifier for P2P codes.
	RecipientIdentifier string
	// PostalCode is the optional tag-61 value.
	PostalCode string
	// Currency is the ISO 4217 numeric code from tag 53.
	Currency string
	// CountryCode is the ISO 3166-1 alpha-2 code from tag 58.
	CountryCode string
	// AdditionalData holds the decoded tag-62 template, nil when absent.
	AdditionalData *AdditionalData
	// FormatVersion is the optional tag-64 value.
	FormatVersion string
	// GeneratedAt is the generation timestamp from the national extension
	// template (tag 82), nil when absent or unparseable.
	GeneratedAt *time.Time
	// QRType is derived from the MCC.
	QRType QRType
	// Fields is the full ordered field list for audit and debugging.
	Fields []tlv.Field
	// UnresolvedTemplates records account templates that failed PSP
	// resolution. Non-fatal while at least one template resolved.
	UnresolvedTemplates []*QRError
}

// Country returns the payload's country as a directory value.
func (p *ParsedQRCode) Country() psp.Country {
	c, _ := psp.CountryFromCode(p.CountryCode)
	return c
}

// QRCodeGenerationRequest drives Generate. It mirrors ParsedQRCode but is
// assembled by the caller.
type QRCodeGenerationRequest struct {
	// InitiationMethod defaults to static when empty.
	InitiationMethod InitiationMethod
	// Templates are the payment destinations to encode; at least one is
	// required. A template needs either an explicit AccountID/GUID pair
	// or a PSP entry the generator can derive the wire format from.
	Templates []AccountTemplate
	// MerchantCategoryCode is required; it also fixes the derived QR type.
	MerchantCategoryCode string
	// Amount is emitted only on dynamic codes; must be positive when set.
	Amount *decimal.Decimal
	// RecipientName is truncated to 25 characters.
	RecipientName string
	// RecipientIdentifier is truncated to 15 characters.
	RecipientIdentifier string
	// PostalCode is optional.
	PostalCode string
	// CountryCode selects the market and fixes the currency.
	CountryCode string
	// AdditionalData is emitted only when at least one sub-field is set.
	AdditionalData *AdditionalData
	// FormatVersion emits tag 64 when non-empty.
	FormatVersion string
	// Timestamp emits the national extension template when non-nil.
	Timestamp *time.Time
}

// QRValidationResult is the non-throwing validation outcome.
type QRValidationResult struct {
	// Valid is true when no errors were found; warnings do not affect it.
	Valid bool
	// Errors lists validation failures. Validation is fail-fast, so this
	// holds at most the first structural failure plus any template
	// resolution failures that turned out to be fatal.
	Errors []*QRError
	// Warnings are advisory findings a caller may surface: a missing
	// optional format-version tag, multiple account templates, templates
	// that failed to resolve, an unparseable extension timestamp.
	Warnings []string
}
