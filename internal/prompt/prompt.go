/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package prompt renders documents and diagnostics into text blocks meant to
// be pasted into a language model conversation.
package prompt

import (
	"fmt"
	"regexp"
	"strings"

	"filmstage/internal/domain"
)

// Asset block keys carry a numeric ordering prefix like "1_look" that is
// noise in prompt text.
var reOrderPrefix = regexp.MustCompile(`^\d+_`)

// FormatBlocks renders an asset block mapping as a single prompt line:
// upper-cased keys without their ordering prefix, empty values skipped,
// entries joined with semicolons.
func FormatBlocks(b domain.Blocks) string {
	var parts []string
	for _, e := range b.Entries {
		if e.Value == "" {
			continue
		}
		key := strings.ToUpper(reOrderPrefix.ReplaceAllString(e.Key, ""))
		parts = append(parts, fmt.Sprintf("%s: %s", key, e.Value))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "; ") + ";"
}

// CorrectionRequest builds a prompt asking a model to re-emit a document
// with the listed problems fixed. Only error severity diagnostics are
// included; their context excerpts follow the list.
func CorrectionRequest(stageLabel string, diags []domain.Diagnostic) string {
	var errs []domain.Diagnostic
	for _, d := range diags {
		if d.Severity == domain.SeverityError {
			errs = append(errs, d)
		}
	}
	if len(errs) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s JSON Correction Request\n\n", stageLabel)
	b.WriteString("## Errors\n")
	for i, d := range errs {
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, d.Path, d.Message)
	}
	var ctx []string
	for _, d := range errs {
		if d.Suggestion != "" {
			ctx = append(ctx, d.Suggestion)
		}
	}
	if len(ctx) > 0 {
		b.WriteString("\n## Context\n")
		b.WriteString(strings.Join(ctx, "\n---\n"))
		b.WriteString("\n")
	}
	b.WriteString("\n## Request\nRe-output the complete corrected JSON with every error above fixed. Keep all other content unchanged.\n")
	return b.String()
}

// statusTags annotate shots in the direction prompt by how the last
// scenario edit produced them.
var statusTags = map[domain.ShotStatus]string{
	domain.StatusNew:        " [New]",
	domain.StatusSplit:      " [Split]",
	domain.StatusSplitAdded: " [Split Added]",
	domain.StatusMerged:     " [Merged]",
}

// SceneDirection builds the scene direction update prompt for an edited
// scene: the renumbered shot list with change tags, followed by the
// editor's per-shot requests when any were written.
func SceneDirection(sceneID string, shots []domain.Shot, statuses map[string]domain.ShotStatus, requests map[string]string) string {
	var b strings.Builder
	b.WriteString("# Scene Direction Update Request\n\n")
	fmt.Fprintf(&b, "The shot division of scene %s changed. Update the visual direction of each shot to match the new shot list below.\n\n", sceneID)
	b.WriteString("## Updated Shot List\n")
	for _, s := range shots {
		b.WriteString(s.ShotID)
		b.WriteString(statusTags[statuses[s.ShotID]])
		b.WriteString(": ")
		b.WriteString(s.ShotText)
		b.WriteString("\n")
	}

	var lines []string
	for _, s := range shots {
		if r := requests[s.ShotID]; r != "" {
			lines = append(lines, fmt.Sprintf("[%s] %s", s.ShotID, r))
		}
	}
	if len(lines) > 0 {
		b.WriteString("\n## Specific Modification Requests\n")
		b.WriteString(strings.Join(lines, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}

// RequestLines renders the per-shot modification requests on their own, in
// shot order, for copying without the surrounding prompt.
func RequestLines(shots []domain.Shot, requests map[string]string) string {
	var lines []string
	for _, s := range shots {
		if r := requests[s.ShotID]; r != "" {
			lines = append(lines, fmt.Sprintf("[%s] %s", s.ShotID, r))
		}
	}
	return strings.Join(lines, "\n\n")
}
