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

package psp

import (
	"strings"
	"sync"
)

// directory is the resolved lookup index. Built once, read-only afterwards,
// so lookups need no locking.
type directory struct {
	kenyaByGUID map[string]Info   // legacy GUID (upper case) -> entry
	numericID   map[string]string // participant-id prefix -> legacy GUID
}

var (
	dirOnce sync.Once
	dir     *directory
)

// index returns the lazily built lookup index.
func index() *directory {
	dirOnce.Do(func() {
		d := &directory{
			kenyaByGUID: make(map[string]Info, len(kenyaBanks)+len(kenyaTelecoms)+len(kenyaGateways)),
			numericID:   make(map[string]string, len(kenyaBanks)+len(kenyaTelecoms)+len(kenyaGateways)+len(kenyaNumericNamespaces)),
		}
		for _, table := range []map[string]Info{kenyaBanks, kenyaTelecoms, kenyaGateways} {
			for guid, info := range table {
				d.kenyaByGUID[guid] = info
				d.numericID[info.Identifier] = guid
			}
		}
		for prefix, guid := range kenyaNumericNamespaces {
			d.numericID[prefix] = guid
		}
		dir = d
	})
	return dir
}

// LookupKenyaGUID resolves a legacy 4-character GUID against the Kenya bank,
// telecom and gateway tables. Lookup is case-insensitive.
func LookupKenyaGUID(guid string) (Info, bool) {
	info, ok := index().kenyaByGUID[strings.ToUpper(guid)]
	return info, ok
}

// LookupProprietary resolves a pre-standard bank code and reports the
// sub-tag its account identifier is carried in.
func LookupProprietary(code string) (Info, string, bool) {
	format, ok := kenyaProprietary[strings.ToUpper(code)]
	if !ok {
		return Info{}, "", false
	}
	info, ok := index().kenyaByGUID[format.GUID]
	if !ok {
		return Info{}, "", false
	}
	return info, format.AccountTag, true
}

// LookupTanzaniaAcquirer resolves a 5-digit TIPS acquirer id.
func LookupTanzaniaAcquirer(id string) (Info, bool) {
	info, ok := tanzaniaAcquirers[id]
	return info, ok
}

// prefixLengths is the progressive matching order after the full id:
// longest prefix first so namespace entries win over base identifiers.
var prefixLengths = []int{7, 6, 5, 4, 3, 2}

// MatchKenyaNumericID resolves a national-format participant identifier by
// progressive prefix matching: the full id first, then its 7, 6, 5, 4, 3
// and 2 character prefixes. It returns the entry, the prefix that matched
// and whether anything matched at all.
func MatchKenyaNumericID(id string) (Info, string, bool) {
	if id == "" {
		return Info{}, "", false
	}
	d := index()
	if guid, ok := d.numericID[id]; ok {
		return d.kenyaByGUID[guid], id, true
	}
	for _, l := range prefixLengths {
		if l >= len(id) {
			continue
		}
		prefix := id[:l]
		if guid, ok := d.numericID[prefix]; ok {
			return d.kenyaByGUID[guid], prefix, true
		}
	}
	return Info{}, "", false
}

// normalizeKenyaPhone reduces a phone-number candidate to the 9-digit
// national significant number (e.g. "722123456"). It accepts the common
// renderings: +2547..., 2547..., 07..., and the bare 9-digit form.
func normalizeKenyaPhone(s string) (string, bool) {
	s = strings.TrimPrefix(s, "+")
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return "", false
		}
	}
	switch {
	case len(s) == 12 && strings.HasPrefix(s, "254"):
		s = s[3:]
	case len(s) == 10 && s[0] == '0':
		s = s[1:]
	case len(s) == 9:
		// already national significant form
	default:
		return "", false
	}
	if s[0] != '7' && s[0] != '1' {
		return "", false
	}
	return s, true
}

// LooksLikeKenyaPhone reports whether s has the shape of a Kenyan mobile
// number in any of the accepted renderings.
func LooksLikeKenyaPhone(s string) bool {
	_, ok := normalizeKenyaPhone(s)
	return ok
}

// ClassifyKenyaPhone guesses the mobile-money operator behind a phone
// number from its prefix block.
//
// This is a best-effort heuristic with no standard backing: prefix blocks
// are reassigned between operators and number portability breaks the
// mapping entirely. Callers must treat the result as provisional, never
// authoritative.
func ClassifyKenyaPhone(phone string) (Info, bool) {
	national, ok := normalizeKenyaPhone(phone)
	if !ok {
		return Info{}, false
	}
	guid, ok := kenyaMobilePrefixes[national[:2]]
	if !ok {
		return Info{}, false
	}
	info := index().kenyaByGUID[guid]
	return info, true
}
