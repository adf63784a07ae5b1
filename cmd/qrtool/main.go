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

// qrtool is a command-line diagnostic for EMVCo payment QR payloads:
// decode or validate a payload string, or generate a demo payload from
// flags. It consumes the public library API only.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	umojaqr "github.com/pwnstarSmithers/Umoja-QR-sub001"
	"github.com/pwnstarSmithers/Umoja-QR-sub001/psp"
	"github.com/shopspring/decimal"
)

type config struct {
	decode   string
	validate string
	country  string
	guid     string
	account  string
	amount   string
	mcc      string
	name     string
	city     string
	generate bool
	dynamic  bool
	debug    bool
}

// Package-level flag variables
var (
	flagDecode   string
	flagValidate string
	flagGenerate bool
	flagCountry  string
	flagGUID     string
	flagAccount  string
	flagAmount   string
	flagMCC      string
	flagName     string
	flagCity     string
	flagDynamic  bool
	flagDebug    bool
)

func init() {
	flag.StringVar(&flagDecode, "decode", "", "Parse and pretty-print a QR payload string")
	flag.StringVar(&flagValidate, "validate", "", "Validate a QR payload string, reporting warnings")
	flag.BoolVar(&flagGenerate, "generate", false, "Generate a payload from the flags below")
	flag.StringVar(&flagCountry, "country", "KE", "Country code for generation (KE or TZ)")
	flag.StringVar(&flagGUID, "guid", "", "Template GUID (empty uses the national format)")
	flag.StringVar(&flagAccount, "account", "", "Account / till / merchant identifier")
	flag.StringVar(&flagAmount, "amount", "", "Transaction amount (forces a dynamic code)")
	flag.StringVar(&flagMCC, "mcc", "5411", "Merchant category code")
	flag.StringVar(&flagName, "name", "", "Recipient name (tag 59)")
	flag.StringVar(&flagCity, "city", "", "Recipient city or identifier (tag 60)")
	flag.BoolVar(&flagDynamic, "dynamic", false, "Generate a dynamic (per-transaction) code")
	flag.BoolVar(&flagDebug, "debug", false, "Enable debug output")
}

func main() {
	flag.Parse()
	cfg := &config{
		decode:   flagDecode,
		validate: flagValidate,
		generate: flagGenerate,
		country:  flagCountry,
		guid:     flagGUID,
		account:  flagAccount,
		amount:   flagAmount,
		mcc:      flagMCC,
		name:     flagName,
		city:     flagCity,
		dynamic:  flagDynamic,
		debug:    flagDebug,
	}

	if cfg.debug {
		umojaqr.SetDebugEnabled(true)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if qe, ok := umojaqr.AsQRError(err); ok {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", qe.RecoverySuggestion())
		}
		os.Exit(1)
	}
}

func run(cfg *config) error {
	switch {
	case cfg.decode != "":
		return decode(cfg.decode)
	case cfg.validate != "":
		return validate(cfg.validate)
	case cfg.generate:
		return generate(cfg)
	default:
		flag.Usage()
		return nil
	}
}

func decode(payload string) error {
	parsed, err := umojaqr.Parse(payload)
	if err != nil {
		return err
	}

	fmt.Printf("Type:       %s (%s)\n", parsed.QRType, initiationLabel(parsed.InitiationMethod))
	fmt.Printf("Country:    %s  Currency: %s\n", parsed.CountryCode, parsed.Currency)
	fmt.Printf("MCC:        %s\n", parsed.MerchantCategoryCode)
	if parsed.RecipientName != "" {
		fmt.Printf("Recipient:  %s\n", parsed.RecipientName)
	}
	if parsed.RecipientIdentifier != "" {
		fmt.Printf("Identifier: %s\n", parsed.RecipientIdentifier)
	}
	if parsed.Amount != nil {
		fmt.Printf("Amount:     %s\n", parsed.Amount.StringFixed(2))
	}
	for _, at := range parsed.Templates {
		fmt.Printf("Template %s: %s (%s) account %s\n", at.Tag, at.PSP.Name, at.PSP.Type, at.AccountID)
	}
	if parsed.GeneratedAt != nil {
		fmt.Printf("Generated:  %s\n", parsed.GeneratedAt.Format("2006-01-02 15:04:05"))
	}
	if ad := parsed.AdditionalData; ad != nil {
		if ad.BillNumber != "" {
			fmt.Printf("Bill:       %s\n", ad.BillNumber)
		}
		if ad.ReferenceLabel != "" {
			fmt.Printf("Reference:  %s\n", ad.ReferenceLabel)
		}
	}
	return nil
}

func validate(payload string) error {
	result := umojaqr.Validate(payload)
	if result.Valid {
		fmt.Println("VALID")
	} else {
		fmt.Println("INVALID")
	}
	for _, e := range result.Errors {
		fmt.Printf("  error: %v [%s]\n", e, e.Category())
	}
	for _, w := range result.Warnings {
		fmt.Printf("  warning: %s\n", w)
	}
	if !result.Valid {
		return fmt.Errorf("payload failed validation with %d error(s)", len(result.Errors))
	}
	return nil
}

func generate(cfg *config) error {
	req := &umojaqr.QRCodeGenerationRequest{
		Templates: []umojaqr.AccountTemplate{{
			GUID:      cfg.guid,
			AccountID: cfg.account,
		}},
		MerchantCategoryCode: cfg.mcc,
		RecipientName:        cfg.name,
		RecipientIdentifier:  cfg.city,
		CountryCode:          strings.ToUpper(cfg.country),
	}
	if cfg.dynamic || cfg.amount != "" {
		req.InitiationMethod = umojaqr.InitiationDynamic
	}
	if cfg.amount != "" {
		amount, err := decimal.NewFromString(cfg.amount)
		if err != nil {
			return fmt.Errorf("bad -amount value: %w", err)
		}
		req.Amount = &amount
	}
	if c, ok := psp.CountryFromCode(cfg.country); ok && cfg.guid == "" {
		umojaqr.Debugf("using national template format %s", psp.NationalGUID(c))
	}

	qr, err := umojaqr.Generate(req)
	if err != nil {
		return err
	}
	fmt.Println(qr)
	return nil
}

func initiationLabel(m umojaqr.InitiationMethod) string {
	if m.IsDynamic() {
		return "dynamic"
	}
	return "static"
}
