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
	"strings"

	"github.com/pwnstarSmithers/Umoja-QR-sub001/pkg/tlv"
	"github.com/pwnstarSmithers/Umoja-QR-sub001/psp"
)

// nestedValue returns the value of the first nested field with the given
// tag, or "" when absent.
func nestedValue(fields []tlv.Field, tag string) string {
	for i := range fields {
		if fields[i].Tag == tag {
			return fields[i].Value
		}
	}
	return ""
}

// resolveAccountTemplate identifies the PSP behind one account-template
// field. Strategies run in a fixed fallback order: national-standard
// format, legacy direct-GUID format, proprietary bank format. Later
// strategies run only when earlier ones fail to identify a known provider.
func resolveAccountTemplate(f *tlv.Field) (AccountTemplate, *QRError) {
	if len(f.Nested) == 0 {
		return AccountTemplate{}, NewPSPFormatError(f.Tag, "account template has no sub-fields")
	}
	guid := nestedValue(f.Nested, subTagGUID)
	if guid == "" {
		return AccountTemplate{}, NewPSPFormatError(f.Tag, "account template has no GUID at sub-tag 00")
	}

	switch {
	case strings.EqualFold(guid, psp.KenyaNationalGUID):
		return resolveKenyaNational(f, guid)
	case strings.EqualFold(guid, psp.TanzaniaNationalGUID):
		return resolveTanzaniaNational(f, guid)
	}

	// Legacy direct GUID: sub-tag 00 is itself a directory code.
	if info, ok := psp.LookupKenyaGUID(guid); ok {
		return AccountTemplate{
			Tag:       f.Tag,
			GUID:      guid,
			AccountID: nestedValue(f.Nested, subTagLegacyID),
			PSP:       info,
		}, nil
	}

	// Proprietary bank format: a pre-standard code with its own account
	// sub-tag layout.
	if info, accountTag, ok := psp.LookupProprietary(guid); ok {
		return AccountTemplate{
			Tag:       f.Tag,
			GUID:      guid,
			AccountID: nestedValue(f.Nested, accountTag),
			PSP:       info,
		}, nil
	}

	return AccountTemplate{}, NewUnknownPSPError(guid)
}

// resolveKenyaNational handles a CBK QR 2023 template: the participant
// identifier lives at sub-tag 68 (P2P account), 07 (P2M merchant) or 01
// (legacy placement), and resolves by progressive prefix matching.
func resolveKenyaNational(f *tlv.Field, guid string) (AccountTemplate, *QRError) {
	id := nestedValue(f.Nested, subTagAccountID)
	if id == "" {
		id = nestedValue(f.Nested, subTagMerchantID)
	}
	if id == "" {
		id = nestedValue(f.Nested, subTagLegacyID)
	}
	if id == "" {
		return AccountTemplate{}, NewPSPFormatError(f.Tag, "national template carries no participant identifier")
	}

	if info, prefix, ok := psp.MatchKenyaNumericID(id); ok {
		return AccountTemplate{
			Tag:           f.Tag,
			GUID:          guid,
			ParticipantID: prefix,
			AccountID:     id,
			PSP:           info,
		}, nil
	}

	// Last resort for tag-28 person-to-person templates: classify a
	// phone-shaped identifier by its operator prefix block. Best-effort
	// only; see psp.ClassifyKenyaPhone.
	if f.Tag == kenyaP2PTemplateTag && psp.LooksLikeKenyaPhone(id) {
		if info, ok := psp.ClassifyKenyaPhone(id); ok {
			Debugf("template %s: resolved %q by phone heuristic to %s", f.Tag, id, info.Name)
			return AccountTemplate{
				Tag:       f.Tag,
				GUID:      guid,
				AccountID: id,
				PSP:       info,
			}, nil
		}
	}

	return AccountTemplate{}, NewUnknownPSPError(id)
}

// resolveTanzaniaNational handles a TANQR/TIPS template: a 5-digit acquirer
// id at sub-tag 01 and the merchant/account identifier at sub-tag 02.
func resolveTanzaniaNational(f *tlv.Field, guid string) (AccountTemplate, *QRError) {
	acquirerID := nestedValue(f.Nested, subTagLegacyID)
	if acquirerID == "" {
		return AccountTemplate{}, NewPSPFormatError(f.Tag, "TIPS template carries no acquirer id")
	}
	if !psp.ValidTanzaniaAcquirerID(acquirerID) {
		return AccountTemplate{}, NewPSPFormatError(f.Tag, "acquirer id "+acquirerID+" is not a valid TIPS identifier")
	}
	info, ok := psp.LookupTanzaniaAcquirer(acquirerID)
	if !ok {
		return AccountTemplate{}, NewUnknownPSPError(acquirerID)
	}
	return AccountTemplate{
		Tag:           f.Tag,
		GUID:          guid,
		ParticipantID: acquirerID,
		AccountID:     nestedValue(f.Nested, subTagTZAccount),
		PSP:           info,
	}, nil
}

// resolveAllTemplates walks every account-template field. Resolution
// tolerates partial failure: the document stands as long as one template
// resolves; it fails only when every template failed.
func resolveAllTemplates(fields []tlv.Field) (templates []AccountTemplate, unresolved []*QRError, fatal *QRError) {
	for i := range fields {
		if !isAccountTemplateTag(fields[i].Tag) {
			continue
		}
		at, err := resolveAccountTemplate(&fields[i])
		if err != nil {
			unresolved = append(unresolved, err)
			continue
		}
		templates = append(templates, at)
	}
	if len(templates) == 0 && len(unresolved) > 0 {
		return nil, unresolved, unresolved[0]
	}
	return templates, unresolved, nil
}
