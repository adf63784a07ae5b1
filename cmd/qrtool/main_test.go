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

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleKenyaPayload = "00020101021129230008ke.go.qr680722266655204541153034045802KE5919Thika Vivian Stores6002KE61020082310008ke.go.qr011511062025T1259066304AA94"

func TestRunDecode(t *testing.T) {
	err := run(&config{decode: sampleKenyaPayload})
	assert.NoError(t, err)
}

func TestRunDecodeRejectsGarbage(t *testing.T) {
	err := run(&config{decode: "not a payload"})
	require.Error(t, err)
}

func TestRunValidate(t *testing.T) {
	err := run(&config{validate: sampleKenyaPayload})
	assert.NoError(t, err)

	err = run(&config{validate: "123"})
	require.Error(t, err)
}

func TestRunGenerate(t *testing.T) {
	cfg := &config{
		generate: true,
		country:  "KE",
		account:  "2226665",
		mcc:      "5411",
		name:     "Test Duka",
	}
	err := run(cfg)
	assert.NoError(t, err)
}

func TestRunGenerateDynamicWithAmount(t *testing.T) {
	cfg := &config{
		generate: true,
		country:  "ke",
		account:  "2226665",
		amount:   "120.00",
		mcc:      "5411",
		name:     "Test Duka",
	}
	err := run(cfg)
	assert.NoError(t, err)
}

func TestRunGenerateBadAmount(t *testing.T) {
	cfg := &config{
		generate: true,
		country:  "KE",
		account:  "2226665",
		amount:   "12,00",
		mcc:      "5411",
		name:     "Test Duka",
	}
	err := run(cfg)
	require.Error(t, err)
}
