/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package parse reads pipeline JSON documents. Input frequently comes out of
// language models or manual edits, so parsing is forgiving: a strict decode
// is tried first, then a round of mechanical auto-fixes, and every failure is
// reported as a diagnostic rather than a bare error.
package parse

import (
	"encoding/json"
	"strings"

	"filmstage/internal/domain"
)

// Result is the outcome of parsing one document text.
type Result struct {
	Valid       bool
	Doc         *domain.Document
	Diagnostics []domain.Diagnostic
	AutoFixed   bool
	FixedText   string
	Fixes       []string
}

// Parse reads input as a pipeline document. When the strict decode fails the
// auto-fix heuristics are applied once and the decode retried; fixes that
// rescued the document are reported as info diagnostics.
func Parse(input string) Result {
	if strings.TrimSpace(input) == "" {
		return Result{Diagnostics: []domain.Diagnostic{{
			Kind:     domain.KindSyntax,
			Severity: domain.SeverityError,
			Category: domain.CategorySchema,
			Message:  "document is empty",
		}}}
	}

	doc, err := Decode(input)
	if err == nil {
		return Result{Valid: true, Doc: doc}
	}

	fixed, fixes := AutoFix(input)
	if len(fixes) > 0 {
		if doc, ferr := Decode(fixed); ferr == nil {
			res := Result{Valid: true, Doc: doc, AutoFixed: true, FixedText: fixed, Fixes: fixes}
			for _, f := range fixes {
				res.Diagnostics = append(res.Diagnostics, domain.Diagnostic{
					Kind:     domain.KindSyntax,
					Severity: domain.SeverityInfo,
					Category: domain.CategorySchema,
					Message:  "auto-fixed: " + f,
				})
			}
			return res
		}
	}

	return Result{Diagnostics: []domain.Diagnostic{
		SyntaxDiagnostic(decodeError(err), input),
	}}
}

// Decode strictly decodes input into a Document. The generic tree and root
// key order are always populated on success; the typed form is populated
// when the document shape allows it.
func Decode(input string) (*domain.Document, error) {
	data := []byte(input)
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	doc := &domain.Document{
		Stage:    detectStage(raw),
		Raw:      raw,
		RootKeys: domain.RootKeys(data),
	}
	switch doc.Stage {
	case domain.StageTwo:
		var two domain.Stage2Document
		if err := json.Unmarshal(data, &two); err == nil {
			doc.Two = &two
		}
	default:
		var one domain.Stage1Document
		if err := json.Unmarshal(data, &one); err == nil {
			doc.One = &one
		}
	}
	return doc, nil
}

// detectStage classifies a decoded tree. A document is stage 2 when it has a
// scenes array and a stage 2 step; everything else is treated as stage 1.
func detectStage(raw map[string]any) domain.Stage {
	_, hasScenes := raw["scenes"].([]any)
	step, _ := raw["current_step"].(string)
	if hasScenes && (domain.Step(step) == domain.StepShotDivision || domain.Step(step) == domain.StepVisualDirection) {
		return domain.StageTwo
	}
	return domain.StageOne
}

// Salvage extracts the outermost JSON object from text that carries leading
// or trailing noise, such as markdown fences around a model response. The
// input is returned unchanged when no braces are found.
func Salvage(input string) string {
	start := strings.Index(input, "{")
	end := strings.LastIndex(input, "}")
	if start < 0 || end < start {
		return input
	}
	return input[start : end+1]
}
