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
	"fmt"
	"os"
	"time"
)

// debugEnabled controls console debug output. Parse and generate calls may
// run on many goroutines, so it is guarded together with the session log
// state in debugMu (debug_file.go).
var debugEnabled = false

func init() {
	// Enable debug logging if the environment asks for it.
	if os.Getenv("UMOJAQR_DEBUG") != "" || os.Getenv("DEBUG") != "" {
		debugEnabled = true
	}
}

// Debugf prints debug information.
// Always writes to the session log file (if initialized) with a timestamp.
// Only prints to console when debug mode is enabled.
func Debugf(format string, args ...any) {
	message := fmt.Sprintf(format, args...)

	debugMu.RLock()
	writer := sessionLogWriter
	console := debugEnabled
	debugMu.RUnlock()

	if writer != nil {
		timestamp := time.Now().Format("15:04:05.000")
		_, _ = fmt.Fprintf(writer, "%s DEBUG: %s\n", timestamp, message)
	}

	if console {
		_, _ = fmt.Printf("DEBUG: %s\n", message)
	}
}

// Debugln prints debug information the way Debugf does, without a format
// string.
func Debugln(args ...any) {
	Debugf("%s", fmt.Sprint(args...))
}

// SetDebugEnabled allows programmatic control of debug logging.
// Useful for testing or application-controlled debug modes.
func SetDebugEnabled(enabled bool) {
	debugMu.Lock()
	debugEnabled = enabled
	debugMu.Unlock()
}
