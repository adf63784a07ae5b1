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
	"sort"

	"github.com/pwnstarSmithers/Umoja-QR-sub001/pkg/tlv"
)

// AdditionalData is the decoded tag-62 template: the EMVCo base sub-fields
// (01-11) plus the CBK/TANQR domain extensions (12-37). Absent sub-fields
// stay empty, never defaulted. Sub-tags 50-99 without a named field land in
// CustomFields.
type AdditionalData struct {
	BillNumber           string // 01
	MobileNumber         string // 02
	StoreLabel           string // 03
	LoyaltyNumber        string // 04
	ReferenceLabel       string // 05
	CustomerLabel        string // 06
	TerminalLabel        string // 07
	PurposeOfTransaction string // 08
	ConsumerDataRequest  string // 09
	MerchantTaxID        string // 10
	MerchantChannel      string // 11

	// Domain extensions.
	MerchantSubCategory   string // 12
	PatientID             string // 13 healthcare
	HealthcareProviderID  string // 14
	InsurancePolicyNumber string // 15
	SchemeMemberNumber    string // 16
	RouteID               string // 17 transport
	VehicleRegistration   string // 18
	TicketNumber          string // 19
	SeatNumber            string // 20
	UtilityAccountNumber  string // 21 utilities
	MeterNumber           string // 22
	BillingPeriod         string // 23
	InvoiceNumber         string // 24
	StudentID             string // 25 education
	InstitutionCode       string // 26
	AcademicTerm          string // 27
	TaxReference          string // 28 government
	PermitNumber          string // 29
	FarmerID              string // 30 agriculture
	CooperativeCode       string // 31
	SourceCurrency        string // 32 cross-border FX
	SourceAmount          string // 33
	ExchangeRate          string // 34
	FXProviderID          string // 35
	RemittanceReference   string // 36
	OriginCountry         string // 37

	// CustomFields holds sub-tags 50-99 that have no named field.
	CustomFields map[string]string
}

// additionalDataFields maps each named sub-tag to its struct field, in
// ascending tag order. Both the decoder and the encoder walk this table so
// the two can never disagree about a tag's home.
var additionalDataFields = []struct {
	tag string
	ref func(*AdditionalData) *string
}{
	{"01", func(d *AdditionalData) *string { return &d.BillNumber }},
	{"02", func(d *AdditionalData) *string { return &d.MobileNumber }},
	{"03", func(d *AdditionalData) *string { return &d.StoreLabel }},
	{"04", func(d *AdditionalData) *string { return &d.LoyaltyNumber }},
	{"05", func(d *AdditionalData) *string { return &d.ReferenceLabel }},
	{"06", func(d *AdditionalData) *string { return &d.CustomerLabel }},
	{"07", func(d *AdditionalData) *string { return &d.TerminalLabel }},
	{"08", func(d *AdditionalData) *string { return &d.PurposeOfTransaction }},
	{"09", func(d *AdditionalData) *string { return &d.ConsumerDataRequest }},
	{"10", func(d *AdditionalData) *string { return &d.MerchantTaxID }},
	{"11", func(d *AdditionalData) *string { return &d.MerchantChannel }},
	{"12", func(d *AdditionalData) *string { return &d.MerchantSubCategory }},
	{"13", func(d *AdditionalData) *string { return &d.PatientID }},
	{"14", func(d *AdditionalData) *string { return &d.HealthcareProviderID }},
	{"15", func(d *AdditionalData) *string { return &d.InsurancePolicyNumber }},
	{"16", func(d *AdditionalData) *string { return &d.SchemeMemberNumber }},
	{"17", func(d *AdditionalData) *string { return &d.RouteID }},
	{"18", func(d *AdditionalData) *string { return &d.VehicleRegistration }},
	{"19", func(d *AdditionalData) *string { return &d.TicketNumber }},
	{"20", func(d *AdditionalData) *string { return &d.SeatNumber }},
	{"21", func(d *AdditionalData) *string { return &d.UtilityAccountNumber }},
	{"22", func(d *AdditionalData) *string { return &d.MeterNumber }},
	{"23", func(d *AdditionalData) *string { return &d.BillingPeriod }},
	{"24", func(d *AdditionalData) *string { return &d.InvoiceNumber }},
	{"25", func(d *AdditionalData) *string { return &d.StudentID }},
	{"26", func(d *AdditionalData) *string { return &d.InstitutionCode }},
	{"27", func(d *AdditionalData) *string { return &d.AcademicTerm }},
	{"28", func(d *AdditionalData) *string { return &d.TaxReference }},
	{"29", func(d *AdditionalData) *string { return &d.PermitNumber }},
	{"30", func(d *AdditionalData) *string { return &d.FarmerID }},
	{"31", func(d *AdditionalData) *string { return &d.CooperativeCode }},
	{"32", func(d *AdditionalData) *string { return &d.SourceCurrency }},
	{"33", func(d *AdditionalData) *string { return &d.SourceAmount }},
	{"34", func(d *AdditionalData) *string { return &d.ExchangeRate }},
	{"35", func(d *AdditionalData) *string { return &d.FXProviderID }},
	{"36", func(d *AdditionalData) *string { return &d.RemittanceReference }},
	{"37", func(d *AdditionalData) *string { return &d.OriginCountry }},
}

// customFieldTagMin opens the range that lands in CustomFields. Tags
// between the last named extension and 50 are reserved and ignored on
// parse for forward compatibility.
const customFieldTagMin = "50"

// parseAdditionalData decodes the nested fields of a tag-62 template.
func parseAdditionalData(nested []tlv.Field) *AdditionalData {
	d := &AdditionalData{}
	byTag := make(map[string]func(*AdditionalData) *string, len(additionalDataFields))
	for _, entry := range additionalDataFields {
		byTag[entry.tag] = entry.ref
	}
	for i := range nested {
		f := &nested[i]
		if ref, ok := byTag[f.Tag]; ok {
			*ref(d) = f.Value
			continue
		}
		if f.Tag >= customFieldTagMin && f.Tag <= "99" {
			if d.CustomFields == nil {
				d.CustomFields = make(map[string]string)
			}
			d.CustomFields[f.Tag] = f.Value
		}
		// Unnamed tags below 50 are reserved; skip them.
	}
	return d
}

// Empty reports whether no sub-field is set, in which case generation
// omits tag 62 entirely.
func (d *AdditionalData) Empty() bool {
	if d == nil {
		return true
	}
	for _, entry := range additionalDataFields {
		if *entry.ref(d) != "" {
			return false
		}
	}
	return len(d.CustomFields) == 0
}

// fields encodes the set sub-fields: named tags in ascending order, then
// custom tags in ascending order.
func (d *AdditionalData) fields() []tlv.Field {
	var out []tlv.Field
	for _, entry := range additionalDataFields {
		if v := *entry.ref(d); v != "" {
			out = append(out, tlv.Field{Tag: entry.tag, Length: len(v), Value: v})
		}
	}
	if len(d.CustomFields) > 0 {
		tags := make([]string, 0, len(d.CustomFields))
		for tag := range d.CustomFields {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		for _, tag := range tags {
			v := d.CustomFields[tag]
			out = append(out, tlv.Field{Tag: tag, Length: len(v), Value: v})
		}
	}
	return out
}
