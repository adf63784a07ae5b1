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

// Package crc16 implements the CRC-16/CCITT-FALSE checksum used by EMVCo
// merchant-presented QR payloads: polynomial 0x1021, initial value 0xFFFF,
// no final XOR, no bit reflection.
package crc16

import "fmt"

const polynomial = 0x1021

// table is a pure function of the polynomial, computed once at startup.
var table [256]uint16

func init() {
	for i := range table {
		crc := uint16(i) << 8 //nolint:gosec // i is 0..255
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ polynomial
			} else {
				crc <<= 1
			}
		}
		table[i] = crc
	}
}

// Checksum returns the CRC-16/CCITT-FALSE value of data.
// Checksum(nil) == 0xFFFF, the initial register value.
func Checksum(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc = crc<<8 ^ table[byte(crc>>8)^b]
	}
	return crc
}

// ChecksumString computes the checksum over the raw bytes of s.
func ChecksumString(s string) uint16 {
	return Checksum([]byte(s))
}

// Format renders a checksum the way payloads embed it: exactly four
// uppercase hexadecimal characters.
func Format(crc uint16) string {
	return fmt.Sprintf("%04X", crc)
}
