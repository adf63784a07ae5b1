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

// kenyaBanks maps a bank's 4-character legacy GUID to its directory entry.
// Identifiers are the CBK clearing codes, which double as the leading
// digits of national-format participant identifiers.
var kenyaBanks = map[string]Info{
	"KCBK": {Type: TypeBank, Identifier: "01", Name: "KCB Bank Kenya", Country: CountryKenya},
	"SCBK": {Type: TypeBank, Identifier: "02", Name: "Standard Chartered Bank Kenya", Country: CountryKenya},
	"ABSA": {Type: TypeBank, Identifier: "03", Name: "Absa Bank Kenya", Country: CountryKenya},
	"NCBA": {Type: TypeBank, Identifier: "07", Name: "NCBA Bank Kenya", Country: CountryKenya},
	"PRIM": {Type: TypeBank, Identifier: "10", Name: "Prime Bank", Country: CountryKenya},
	"COOP": {Type: TypeBank, Identifier: "11", Name: "Co-operative Bank of Kenya", Country: CountryKenya},
	"NBKE": {Type: TypeBank, Identifier: "12", Name: "National Bank of Kenya", Country: CountryKenya},
	"CITI": {Type: TypeBank, Identifier: "16", Name: "Citibank N.A. Kenya", Country: CountryKenya},
	"HABB": {Type: TypeBank, Identifier: "17", Name: "Habib Bank AG Zurich", Country: CountryKenya},
	"MEBK": {Type: TypeBank, Identifier: "18", Name: "Middle East Bank Kenya", Country: CountryKenya},
	"BOAK": {Type: TypeBank, Identifier: "19", Name: "Bank of Africa Kenya", Country: CountryKenya},
	"CONS": {Type: TypeBank, Identifier: "23", Name: "Consolidated Bank of Kenya", Country: CountryKenya},
	"CRED": {Type: TypeBank, Identifier: "25", Name: "Credit Bank", Country: CountryKenya},
	"STAN": {Type: TypeBank, Identifier: "31", Name: "Stanbic Bank Kenya", Country: CountryKenya},
	"ABCB": {Type: TypeBank, Identifier: "35", Name: "African Banking Corporation", Country: CountryKenya},
	"ECOB": {Type: TypeBank, Identifier: "43", Name: "Ecobank Kenya", Country: CountryKenya},
	"PARA": {Type: TypeBank, Identifier: "50", Name: "Paramount Bank", Country: CountryKenya},
	"KING": {Type: TypeBank, Identifier: "51", Name: "Kingdom Bank", Country: CountryKenya},
	"GTBK": {Type: TypeBank, Identifier: "53", Name: "Guaranty Trust Bank Kenya", Country: CountryKenya},
	"VICT": {Type: TypeBank, Identifier: "54", Name: "Victoria Commercial Bank", Country: CountryKenya},
	"GUAR": {Type: TypeBank, Identifier: "55", Name: "Guardian Bank", Country: CountryKenya},
	"IMBK": {Type: TypeBank, Identifier: "57", Name: "I&M Bank", Country: CountryKenya},
	"DEVB": {Type: TypeBank, Identifier: "59", Name: "Development Bank of Kenya", Country: CountryKenya},
	"SBMK": {Type: TypeBank, Identifier: "60", Name: "SBM Bank Kenya", Country: CountryKenya},
	"HFCK": {Type: TypeBank, Identifier: "61", Name: "HF Group", Country: CountryKenya},
	"DTBK": {Type: TypeBank, Identifier: "63", Name: "Diamond Trust Bank", Country: CountryKenya},
	"MAYF": {Type: TypeBank, Identifier: "65", Name: "Mayfair CIB Bank", Country: CountryKenya},
	"SIDN": {Type: TypeBank, Identifier: "66", Name: "Sidian Bank", Country: CountryKenya},
	"EQTY": {Type: TypeBank, Identifier: "68", Name: "Equity Bank Kenya", Country: CountryKenya},
	"FAMB": {Type: TypeBank, Identifier: "70", Name: "Family Bank", Country: CountryKenya},
	"GULF": {Type: TypeBank, Identifier: "72", Name: "Gulf African Bank", Country: CountryKenya},
	"FCBK": {Type: TypeBank, Identifier: "74", Name: "First Community Bank", Country: CountryKenya},
	"DIBK": {Type: TypeBank, Identifier: "75", Name: "DIB Bank Kenya", Country: CountryKenya},
	"UBAK": {Type: TypeBank, Identifier: "76", Name: "UBA Kenya Bank", Country: CountryKenya},
	"KWFT": {Type: TypeBank, Identifier: "78", Name: "Kenya Women Microfinance Bank", Country: CountryKenya},
}

// kenyaTelecoms maps a mobile-money operator's legacy GUID to its entry.
var kenyaTelecoms = map[string]Info{
	"MPSA": {Type: TypeTelecom, Identifier: "222", Name: "Safaricom M-PESA", Country: CountryKenya},
	"ARTL": {Type: TypeTelecom, Identifier: "333", Name: "Airtel Money Kenya", Country: CountryKenya},
	"TKSH": {Type: TypeTelecom, Identifier: "555", Name: "Telkom T-Kash", Country: CountryKenya},
}

// kenyaGateways covers licensed non-bank aggregators that issue QR codes of
// their own.
var kenyaGateways = map[string]Info{
	"IPAY": {Type: TypePaymentGateway, Identifier: "88", Name: "iPay Africa", Country: CountryKenya},
	"CELL": {Type: TypeUnified, Identifier: "91", Name: "Cellulant Kenya", Country: CountryKenya},
}

// kenyaNumericNamespaces adds participant-id prefixes that are longer than
// a provider's base identifier, such as the M-PESA merchant till namespace.
// Base identifiers themselves are indexed automatically.
var kenyaNumericNamespaces = map[string]string{
	"22266": "MPSA", // merchant till range
	"22277": "MPSA", // paybill range
	"33355": "ARTL", // Airtel merchant range
}

// proprietaryFormat describes a pre-standard bank QR layout: the 4-character
// code found at sub-tag 00 and the sub-tag the account identifier lives in.
type proprietaryFormat struct {
	GUID       string
	AccountTag string
}

// kenyaProprietary maps pre-standard codes still seen on printed stickers.
var kenyaProprietary = map[string]proprietaryFormat{
	"EAZZ": {GUID: "EQTY", AccountTag: "01"}, // Equity Eazzy Pay
	"KCBM": {GUID: "KCBK", AccountTag: "01"}, // KCB legacy merchant
	"SCPY": {GUID: "SCBK", AccountTag: "02"}, // StanChart SC Pay pilot
}

// kenyaMobilePrefixes assigns the leading two digits of a national-format
// subscriber number to the operator that currently holds the block. Blocks
// get reassigned between operators, so this table backs a best-effort
// heuristic only (see ClassifyKenyaPhone).
var kenyaMobilePrefixes = map[string]string{
	"70": "MPSA",
	"71": "MPSA",
	"72": "MPSA",
	"74": "MPSA",
	"79": "MPSA",
	"11": "MPSA",
	"73": "ARTL",
	"75": "ARTL",
	"78": "ARTL",
	"10": "ARTL",
	"77": "TKSH",
}
