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

package crc16

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksum(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		data string
		want uint16
	}{
		{
			name: "empty input is the initial register value",
			data: "",
			want: 0xFFFF,
		},
		{
			name: "single character",
			data: "A",
			want: 0xB915,
		},
		{
			name: "reference check string",
			data: "123456789",
			want: 0x29B1,
		},
		{
			name: "payload prefix",
			data: "00020101",
			want: 0xB415,
		},
		{
			name: "checksum header alone",
			data: "6304",
			want: 0x6007,
		},
		{
			name: "kenya merchant payload up to the checksum value",
			data: "00020101021129230008ke.go.qr680722266655204541153034045802KE5919" +
				"Thika Vivian Stores6002KE61020082310008ke.go.qr011511062025T1259066304",
			want: 0xAA94,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ChecksumString(tt.data))
			assert.Equal(t, tt.want, Checksum([]byte(tt.data)))
		})
	}
}

func TestChecksumNilEqualsEmpty(t *testing.T) {
	t.Parallel()
	assert.Equal(t, Checksum(nil), Checksum([]byte{}))
	assert.Equal(t, uint16(0xFFFF), Checksum(nil))
}

func TestChecksumDeterministic(t *testing.T) {
	t.Parallel()
	data := []byte("00020101021126280008ke.go.qr")
	first := Checksum(data)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Checksum(data))
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		crc  uint16
		want string
	}{
		{name: "zero pads to four digits", crc: 0x0000, want: "0000"},
		{name: "low value pads", crc: 0x00AB, want: "00AB"},
		{name: "letters are uppercase", crc: 0xaa94, want: "AA94"},
		{name: "max value", crc: 0xFFFF, want: "FFFF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Format(tt.crc))
		})
	}
}
