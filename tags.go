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

// Top-level EMVCo tag identifiers.
const (
	// TagPayloadFormat carries the payload format indicator, always "01".
	TagPayloadFormat = "00"
	// TagInitiationMethod is "11" for static codes, "12" for dynamic.
	TagInitiationMethod = "01"
	// TagMerchantCategory is the 4-digit MCC.
	TagMerchantCategory = "52"
	// TagCurrency is the ISO 4217 numeric currency code.
	TagCurrency = "53"
	// TagAmount is the transaction amount, dynamic codes only.
	TagAmount = "54"
	// TagCountryCode is the ISO 3166-1 alpha-2 country.
	TagCountryCode = "58"
	// TagRecipientName is the merchant or payee display name.
	TagRecipientName = "59"
	// TagRecipientCity doubles as the recipient identifier on P2P codes.
	TagRecipientCity = "60"
	// TagPostalCode is optional.
	TagPostalCode = "61"
	// TagAdditionalData opens the additional-data template.
	TagAdditionalData = "62"
	// TagChecksum is the CRC16 field and must be the final data object.
	TagChecksum = "63"
	// TagFormatVersion is the optional national format-version indicator.
	TagFormatVersion = "64"
	// TagExtensionTemplate is the Kenya national extension template.
	TagExtensionTemplate = "82"
)

// Account template tags used when generating.
const (
	kenyaP2PTemplateTag    = "28"
	kenyaP2MTemplateTag    = "29"
	tanzaniaTemplateTag    = "26"
	accountTemplateTagMin  = "26"
	accountTemplateTagMax  = "51"
	checksumHeader         = "6304"
	payloadFormatIndicator = "01"
)

// Nested sub-tags inside account templates.
const (
	subTagGUID       = "00" // template GUID
	subTagLegacyID   = "01" // legacy Kenya participant id / Tanzania acquirer id
	subTagMerchantID = "07" // Kenya P2M merchant identifier
	subTagAccountID  = "68" // Kenya P2P account identifier
	subTagTZAccount  = "02" // Tanzania merchant/account identifier
	subTagTimestamp  = "01" // generation timestamp inside the 82 extension
)

// timestampLayout is the generation-timestamp encoding observed in CBK
// extension templates: ddMMyyyy'T'HHmmss.
const timestampLayout = "02012006T150405"

// Payload size gates. EMVCo caps the rendered payload at 512 characters.
const (
	maxPayloadLength = 512
	maxNameLength    = 25
	maxCityLength    = 15
)

// p2pMCCs is the fixed merchant-category set that marks a code as
// person-to-person; everything else is person-to-merchant.
var p2pMCCs = map[string]struct{}{
	"6011": {},
	"6012": {},
	"6051": {},
	"6211": {},
	"6540": {},
}

// requiredRootTags must be present on every payload regardless of type.
var requiredRootTags = []string{
	TagPayloadFormat,
	TagInitiationMethod,
	TagMerchantCategory,
	TagCurrency,
	TagCountryCode,
	TagChecksum,
}

// isAccountTemplateTag reports whether tag is in the 26-51 account range.
func isAccountTemplateTag(tag string) bool {
	return len(tag) == 2 && tag >= accountTemplateTagMin && tag <= accountTemplateTagMax
}

// isTemplateTag reports whether the parser should descend into tag.
func isTemplateTag(tag string) bool {
	return isAccountTemplateTag(tag) || tag == TagAdditionalData || tag == TagExtensionTemplate
}

// qrTypeForMCC derives the code type from the merchant category.
func qrTypeForMCC(mcc string) QRType {
	if _, ok := p2pMCCs[mcc]; ok {
		return QRTypeP2P
	}
	return QRTypeP2M
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isAlphabetic(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'A' && c <= 'F':
		case c >= 'a' && c <= 'f':
		default:
			return false
		}
	}
	return true
}
