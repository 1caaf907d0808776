/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package parse

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"filmstage/internal/domain"
)

var rePosition = regexp.MustCompile(`(?i)position\s+(\d+)`)

// decodeError rewords a JSON decode failure so the message always carries the
// byte position of the failure. Offsets reported by encoding/json do not
// appear in the error text itself.
func decodeError(err error) string {
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		return fmt.Sprintf("%s at position %d", syn.Error(), syn.Offset)
	}
	var typ *json.UnmarshalTypeError
	if errors.As(err, &typ) {
		return fmt.Sprintf("%s at position %d", typ.Error(), typ.Offset)
	}
	return err.Error()
}

// SyntaxDiagnostic turns a decode failure message into a diagnostic with the
// failing line number and a few surrounding lines quoted as context.
func SyntaxDiagnostic(message, input string) domain.Diagnostic {
	d := domain.Diagnostic{
		Kind:     domain.KindSyntax,
		Severity: domain.SeverityError,
		Category: domain.CategorySchema,
		Message:  "JSON syntax error: " + message,
	}
	m := rePosition.FindStringSubmatch(message)
	if m == nil {
		return d
	}
	pos, err := strconv.Atoi(m[1])
	if err != nil {
		return d
	}
	if pos > len(input) {
		pos = len(input)
	}
	line := strings.Count(input[:pos], "\n") + 1
	d.Line = line
	d.Path = fmt.Sprintf("Line %d", line)

	all := strings.Split(input, "\n")
	start := line - 3
	if start < 0 {
		start = 0
	}
	end := line + 2
	if end > len(all) {
		end = len(all)
	}
	var ctx []string
	for i := start; i < end; i++ {
		ctx = append(ctx, fmt.Sprintf("%d: %s", i+1, all[i]))
	}
	d.Suggestion = strings.Join(ctx, "\n")
	return d
}
