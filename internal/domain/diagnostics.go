/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// Kind distinguishes syntax problems found while reading JSON text from
// schema problems found while inspecting a parsed document.
type Kind string

const (
	KindSyntax Kind = "syntax"
	KindSchema Kind = "schema"
)

// Severity ranks a diagnostic. Errors block export, warnings and infos do
// not.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Category groups diagnostics by the aspect of the document they concern.
type Category string

const (
	CategoryEssential Category = "essential"
	CategoryStory     Category = "story"
	CategoryVisual    Category = "visual"
	CategorySchema    Category = "schema"
	CategoryOther     Category = "other"
)

// Diagnostic is one finding reported by parsing or validation.
type Diagnostic struct {
	Kind       Kind     `json:"type"`
	Severity   Severity `json:"severity"`
	Category   Category `json:"category"`
	Path       string   `json:"path"`
	Message    string   `json:"message"`
	Line       int      `json:"line,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// CountBySeverity tallies the diagnostics per severity level.
func CountBySeverity(diags []Diagnostic) (errors, warnings, infos int) {
	for _, d := range diags {
		switch d.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		case SeverityInfo:
			infos++
		}
	}
	return
}

// HasErrors reports whether any diagnostic is an error.
func HasErrors(diags []Diagnostic) bool {
	e, _, _ := CountBySeverity(diags)
	return e > 0
}
