// Copyright 2025 Poiesic Systems
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

package ai

import "github.com/poiesic/compass/repair"

// Analysis is the outcome of one analysis call.
type Analysis struct {
	// Document is the career analysis. It always parses as JSON.
	Document string

	// Raw is the model output after fence stripping and before repair.
	Raw string

	// ParseError is the message of the strict parse failure of Raw,
	// empty when Raw parsed as is.
	ParseError string

	// Stage is the repair stage that produced Document.
	Stage repair.Stage

	// Degraded is set when repair may have dropped content.
	Degraded bool

	// Attempts is the number of generations made.
	Attempts int
}

// Repaired reports whether Document differs from what the model produced.
func (a *Analysis) Repaired() bool {
	return a.Stage != repair.StageNone
}
