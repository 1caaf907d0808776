/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package validate checks parsed pipeline documents against the stage rules
// and reports every finding as a diagnostic. Validation never fails hard: a
// document full of problems yields a long diagnostic list, not an error.
//
// The checks run on the raw decoded tree rather than the typed structs so
// that missing fields, wrong types and unknown keys can all be reported on
// documents the typed decode rejects. Output order is deterministic: rules
// run in a fixed sequence and iterate slices only.
package validate

import "filmstage/internal/domain"

// Document validates doc according to its stage.
func Document(doc *domain.Document) []domain.Diagnostic {
	if doc == nil || doc.Raw == nil {
		return nil
	}
	if doc.Stage == domain.StageTwo {
		return Stage2(doc)
	}
	return Stage1(doc)
}

// missing reports JSON-absence of a scalar field: not present, null, or an
// empty string.
func missing(m map[string]any, key string) bool {
	v, ok := m[key]
	if !ok || v == nil {
		return true
	}
	if s, isStr := v.(string); isStr && s == "" {
		return true
	}
	return false
}

func getMap(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	sub, _ := m[key].(map[string]any)
	return sub
}

func getString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func getSlice(m map[string]any, key string) ([]any, bool) {
	if m == nil {
		return nil, false
	}
	s, ok := m[key].([]any)
	return s, ok
}

func diag(severity domain.Severity, category domain.Category, path, message string) domain.Diagnostic {
	return domain.Diagnostic{
		Kind:     domain.KindSchema,
		Severity: severity,
		Category: category,
		Path:     path,
		Message:  message,
	}
}
