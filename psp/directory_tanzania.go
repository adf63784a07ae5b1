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

package psp

// TIPS acquirer identifiers are 5 digits. The leading pair encodes the
// institution class.
const (
	// TanzaniaAcquirerIDLength is the mandated acquirer id width.
	TanzaniaAcquirerIDLength = 5
	// tanzaniaBankPrefix marks licensed banks.
	tanzaniaBankPrefix = "01"
	// tanzaniaNonBankPrefix marks mobile-money and other non-bank FSPs.
	tanzaniaNonBankPrefix = "02"
)

// tanzaniaAcquirers maps a TIPS acquirer id to its directory entry.
var tanzaniaAcquirers = map[string]Info{
	// Banks
	"01001": {Type: TypeBank, Identifier: "01001", Name: "CRDB Bank", Country: CountryTanzania},
	"01002": {Type: TypeBank, Identifier: "01002", Name: "NMB Bank", Country: CountryTanzania},
	"01003": {Type: TypeBank, Identifier: "01003", Name: "NBC Bank", Country: CountryTanzania},
	"01004": {Type: TypeBank, Identifier: "01004", Name: "Stanbic Bank Tanzania", Country: CountryTanzania},
	"01005": {Type: TypeBank, Identifier: "01005", Name: "Exim Bank Tanzania", Country: CountryTanzania},
	"01006": {Type: TypeBank, Identifier: "01006", Name: "Diamond Trust Bank Tanzania", Country: CountryTanzania},
	"01007": {Type: TypeBank, Identifier: "01007", Name: "Azania Bank", Country: CountryTanzania},
	"01008": {Type: TypeBank, Identifier: "01008", Name: "KCB Bank Tanzania", Country: CountryTanzania},
	"01009": {Type: TypeBank, Identifier: "01009", Name: "Absa Bank Tanzania", Country: CountryTanzania},
	"01010": {Type: TypeBank, Identifier: "01010", Name: "Equity Bank Tanzania", Country: CountryTanzania},

	// Mobile money and other non-bank FSPs
	"02001": {Type: TypeTelecom, Identifier: "02001", Name: "Vodacom M-Pesa", Country: CountryTanzania},
	"02002": {Type: TypeTelecom, Identifier: "02002", Name: "Airtel Money Tanzania", Country: CountryTanzania},
	"02003": {Type: TypeTelecom, Identifier: "02003", Name: "Tigo Pesa", Country: CountryTanzania},
	"02004": {Type: TypeTelecom, Identifier: "02004", Name: "Halotel HaloPesa", Country: CountryTanzania},
	"02005": {Type: TypeTelecom, Identifier: "02005", Name: "TTCL T-Pesa", Country: CountryTanzania},
	"02006": {Type: TypeTelecom, Identifier: "02006", Name: "Azam Pesa", Country: CountryTanzania},
	"02007": {Type: TypePaymentGateway, Identifier: "02007", Name: "Selcom Paypoint", Country: CountryTanzania},
}

// ValidTanzaniaAcquirerID reports whether id has the mandated TIPS shape:
// exactly 5 digits with a recognized institution-class prefix. It says
// nothing about whether the id is actually registered.
func ValidTanzaniaAcquirerID(id string) bool {
	if len(id) != TanzaniaAcquirerIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return false
		}
	}
	switch id[:2] {
	case tanzaniaBankPrefix, tanzaniaNonBankPrefix:
		return true
	}
	return false
}
