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
	"strings"

	"github.com/pwnstarSmithers/Umoja-QR-sub001/internal/crc16"
	"github.com/pwnstarSmithers/Umoja-QR-sub001/pkg/tlv"
	"github.com/pwnstarSmithers/Umoja-QR-sub001/psp"
)

// Generate builds a checksummed, EMVCo-ordered payload string from a
// request. It fails only when the request cannot be represented: no
// account templates, a template without provider identity, an unsupported
// country, a non-positive amount. The output re-parses to the same logical
// fields (Parse(Generate(req)) round-trips).
func Generate(req *QRCodeGenerationRequest) (string, error) {
	if req == nil || len(req.Templates) == 0 {
		return "", NewMissingFieldError("account_template")
	}
	country, ok := psp.CountryFromCode(req.CountryCode)
	if !ok {
		return "", NewInvalidCountryError(req.CountryCode)
	}
	if req.MerchantCategoryCode == "" || !isNumeric(req.MerchantCategoryCode) {
		return "", NewInvalidValueError(TagMerchantCategory, "merchant category code must be numeric")
	}

	method := req.InitiationMethod
	if method == "" {
		method = InitiationStatic
	}
	if !method.Valid() {
		return "", NewInvalidValueError(TagInitiationMethod, "initiation method must be 11 (static) or 12 (dynamic)")
	}

	qrType := qrTypeForMCC(req.MerchantCategoryCode)

	fields := []tlv.Field{
		leaf(TagPayloadFormat, payloadFormatIndicator),
		leaf(TagInitiationMethod, string(method)),
	}

	templateFields, err := buildTemplateFields(req.Templates, country, qrType)
	if err != nil {
		return "", err
	}
	fields = append(fields, templateFields...)

	fields = append(fields,
		leaf(TagMerchantCategory, req.MerchantCategoryCode),
		leaf(TagCurrency, country.Currency()),
	)

	// The amount travels only on dynamic codes, and only when supplied.
	if method.IsDynamic() && req.Amount != nil {
		if !req.Amount.IsPositive() {
			return "", NewInvalidValueError(TagAmount, "amount must be positive")
		}
		fields = append(fields, leaf(TagAmount, req.Amount.StringFixed(2)))
	}

	fields = append(fields, leaf(TagCountryCode, string(country)))

	// Character-set policy belongs to the caller's sanitization layer;
	// the generator only trims and truncates to the per-tag maxima.
	if name := truncate(req.RecipientName, maxNameLength); name != "" {
		fields = append(fields, leaf(TagRecipientName, name))
	} else if qrType == QRTypeP2M {
		return "", NewMissingFieldError(TagRecipientName)
	}
	if id := truncate(req.RecipientIdentifier, maxCityLength); id != "" {
		fields = append(fields, leaf(TagRecipientCity, id))
	} else if qrType == QRTypeP2P {
		return "", NewMissingFieldError(TagRecipientCity)
	}
	if req.PostalCode != "" {
		fields = append(fields, leaf(TagPostalCode, req.PostalCode))
	}

	if !req.AdditionalData.Empty() {
		adf, terr := tlv.Template(TagAdditionalData, req.AdditionalData.fields())
		if terr != nil {
			return "", NewInvalidLengthError(TagAdditionalData, terr.Error())
		}
		fields = append(fields, adf)
	}

	if req.Timestamp != nil {
		ext, terr := tlv.Template(TagExtensionTemplate, []tlv.Field{
			leaf(subTagGUID, psp.NationalGUID(country)),
			leaf(subTagTimestamp, req.Timestamp.Format(timestampLayout)),
		})
		if terr != nil {
			return "", NewInvalidLengthError(TagExtensionTemplate, terr.Error())
		}
		fields = append(fields, ext)
	}

	if req.FormatVersion != "" {
		fields = append(fields, leaf(TagFormatVersion, req.FormatVersion))
	}

	payload, err := tlv.SerializeFields(fields)
	if err != nil {
		return "", &QRError{Code: CodeInvalidValue, Detail: err.Error(), wrapped: err}
	}

	// The checksum is computed over everything preceding it plus its own
	// tag-and-length header, and is always the final data object.
	crc := crc16.Format(crc16.ChecksumString(payload + checksumHeader))
	payload += checksumHeader + crc

	if len(payload) > maxPayloadLength {
		return "", NewDataLengthError("generated payload exceeds the 512-character limit")
	}
	return payload, nil
}

// buildTemplateFields derives the nested wire structure for each account
// template and orders the templates by ascending tag. This is the
// generator-side mirror of resolveAccountTemplate.
func buildTemplateFields(templates []AccountTemplate, country psp.Country, qrType QRType) ([]tlv.Field, error) {
	out := make([]tlv.Field, 0, len(templates))
	used := make(map[string]bool, len(templates))
	for i := range templates {
		f, err := buildTemplateField(&templates[i], country, qrType)
		if err != nil {
			return nil, err
		}
		if used[f.Tag] {
			return nil, NewInvalidValueError(f.Tag, "duplicate account template tag")
		}
		used[f.Tag] = true
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out, nil
}

func buildTemplateField(at *AccountTemplate, country psp.Country, qrType QRType) (tlv.Field, error) {
	tag := at.Tag
	if tag == "" {
		tag = defaultTemplateTag(country, qrType)
	}
	if !isAccountTemplateTag(tag) {
		return tlv.Field{}, NewInvalidValueError(tag, "template tag must be in the 26-51 account range")
	}

	accountID := at.AccountID
	if accountID == "" {
		accountID = at.PSP.AccountNumber
	}

	guid := at.GUID
	if guid == "" {
		guid = psp.NationalGUID(country)
	}

	nested, err := buildTemplateBody(at, qrType, guid, accountID)
	if err != nil {
		return tlv.Field{}, err
	}

	f, terr := tlv.Template(tag, nested)
	if terr != nil {
		return tlv.Field{}, NewInvalidLengthError(tag, terr.Error())
	}
	return f, nil
}

// buildTemplateBody picks the nested layout the resolver expects for the
// template's format: national standard, legacy direct GUID or proprietary.
func buildTemplateBody(at *AccountTemplate, qrType QRType, guid, accountID string) ([]tlv.Field, error) {
	switch {
	case strings.EqualFold(guid, psp.KenyaNationalGUID):
		if accountID == "" {
			return nil, NewPSPFormatError(at.Tag, "national template needs an account identifier")
		}
		// P2P codes carry the identifier at sub-tag 68, P2M at 07.
		idTag := subTagMerchantID
		if qrType == QRTypeP2P {
			idTag = subTagAccountID
		}
		return []tlv.Field{leaf(subTagGUID, guid), leaf(idTag, accountID)}, nil

	case strings.EqualFold(guid, psp.TanzaniaNationalGUID):
		acquirerID := at.ParticipantID
		if acquirerID == "" {
			acquirerID = at.PSP.Identifier
		}
		if !psp.ValidTanzaniaAcquirerID(acquirerID) {
			return nil, NewPSPFormatError(at.Tag, "TIPS template needs a 5-digit acquirer id")
		}
		nested := []tlv.Field{leaf(subTagGUID, guid), leaf(subTagLegacyID, acquirerID)}
		if accountID != "" {
			nested = append(nested, leaf(subTagTZAccount, accountID))
		}
		return nested, nil

	default:
		// Legacy and proprietary formats keep the caller's GUID verbatim.
		if _, ok := psp.LookupKenyaGUID(guid); !ok {
			if _, _, pok := psp.LookupProprietary(guid); !pok {
				return nil, NewUnknownPSPError(guid)
			}
		}
		if accountID == "" {
			return nil, NewPSPFormatError(at.Tag, "legacy template needs an account identifier")
		}
		accountTag := subTagLegacyID
		if _, propTag, ok := psp.LookupProprietary(guid); ok {
			accountTag = propTag
		}
		return []tlv.Field{leaf(subTagGUID, guid), leaf(accountTag, accountID)}, nil
	}
}

// defaultTemplateTag picks the customary template position when the caller
// did not fix one.
func defaultTemplateTag(country psp.Country, qrType QRType) string {
	if country == psp.CountryTanzania {
		return tanzaniaTemplateTag
	}
	if qrType == QRTypeP2P {
		return kenyaP2PTemplateTag
	}
	return kenyaP2MTemplateTag
}

func leaf(tag, value string) tlv.Field {
	return tlv.Field{Tag: tag, Length: len(value), Value: value}
}

// truncate trims surrounding whitespace and cuts the value to max
// characters.
func truncate(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	return s
}
