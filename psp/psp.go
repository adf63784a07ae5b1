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

// Package psp holds the static Payment Service Provider directory for the
// supported markets and the resolution functions that map the identifiers
// found inside QR account templates onto directory entries. The tables are
// built once on first use and are read-only afterwards, so every lookup is
// safe for concurrent callers.
package psp

import "strings"

// Type classifies a payment service provider.
type Type int

const (
	// TypeBank is a licensed commercial bank.
	TypeBank Type = iota
	// TypeTelecom is a mobile-network money operator.
	TypeTelecom
	// TypePaymentGateway is a non-bank payment aggregator.
	TypePaymentGateway
	// TypeUnified is a provider spanning both bank and mobile-money rails.
	TypeUnified
)

func (t Type) String() string {
	switch t {
	case TypeBank:
		return "bank"
	case TypeTelecom:
		return "telecom"
	case TypePaymentGateway:
		return "payment gateway"
	case TypeUnified:
		return "unified"
	default:
		return "unknown"
	}
}

// Country is an ISO 3166-1 alpha-2 code for a supported market.
type Country string

const (
	// CountryKenya is Kenya (CBK QR standard).
	CountryKenya Country = "KE"
	// CountryTanzania is Tanzania (TANQR/TIPS standard).
	CountryTanzania Country = "TZ"
)

// Currency returns the ISO 4217 numeric currency code for the country.
func (c Country) Currency() string {
	switch c {
	case CountryKenya:
		return "404"
	case CountryTanzania:
		return "834"
	default:
		return ""
	}
}

// Valid reports whether the country is a supported market.
func (c Country) Valid() bool {
	return c == CountryKenya || c == CountryTanzania
}

// CountryFromCode maps a tag-58 value onto a supported country.
func CountryFromCode(code string) (Country, bool) {
	c := Country(strings.ToUpper(code))
	return c, c.Valid()
}

// CountryForCurrency maps a tag-53 value onto a supported country.
func CountryForCurrency(currency string) (Country, bool) {
	for _, c := range SupportedCountries() {
		if c.Currency() == currency {
			return c, true
		}
	}
	return "", false
}

// SupportedCountries lists the markets this directory covers.
func SupportedCountries() []Country {
	return []Country{CountryKenya, CountryTanzania}
}

// National GUIDs carried at sub-tag 00 of standard-conforming account
// templates.
const (
	// KenyaNationalGUID marks a CBK QR 2023 account template.
	KenyaNationalGUID = "ke.go.qr"
	// TanzaniaNationalGUID marks a TANQR/TIPS account template.
	TanzaniaNationalGUID = "tz.go.bot.tips"
)

// IsNationalGUID reports whether guid is one of the national identifiers.
// Comparison is case-insensitive; issuers are inconsistent about case.
func IsNationalGUID(guid string) bool {
	return strings.EqualFold(guid, KenyaNationalGUID) ||
		strings.EqualFold(guid, TanzaniaNationalGUID)
}

// NationalGUID returns the national template GUID for a country.
func NationalGUID(c Country) string {
	switch c {
	case CountryKenya:
		return KenyaNationalGUID
	case CountryTanzania:
		return TanzaniaNationalGUID
	default:
		return ""
	}
}

// Info describes one payment service provider. Values are immutable;
// resolution functions return copies.
type Info struct {
	// Identifier is the short numeric code used inside account templates:
	// a CBK PSP code for Kenya, a 5-digit TIPS acquirer id for Tanzania.
	Identifier string
	// Name is the provider's customer-facing name.
	Name string
	// AccountNumber is set only on Info values built by a caller for
	// generation; directory entries leave it empty.
	AccountNumber string
	// Country is the market the provider operates in.
	Country Country
	// Type classifies the provider.
	Type Type
}
