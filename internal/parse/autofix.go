/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package parse

import "regexp"

// Mechanical JSON defects that LLM output and hand edits introduce. Each fix
// is applied at most once, in this order.
var (
	reTrailingComma  = regexp.MustCompile(`,(\s*[\}\]])`)
	reSingleQuoteKey = regexp.MustCompile(`'([^']+)'(\s*:)`)
	reNullString     = regexp.MustCompile(`:\s*"null"`)
	reDoubleComma    = regexp.MustCompile(`,\s*,`)
)

// AutoFix applies the mechanical repairs to input and returns the repaired
// text together with a description of every fix that changed something. The
// returned text equals the input when no pattern matched.
func AutoFix(input string) (string, []string) {
	out := input
	var fixes []string
	if reTrailingComma.MatchString(out) {
		out = reTrailingComma.ReplaceAllString(out, "${1}")
		fixes = append(fixes, "removed trailing comma")
	}
	if reSingleQuoteKey.MatchString(out) {
		out = reSingleQuoteKey.ReplaceAllString(out, `"${1}"${2}`)
		fixes = append(fixes, "replaced single-quoted key with double quotes")
	}
	if reNullString.MatchString(out) {
		out = reNullString.ReplaceAllString(out, `: null`)
		fixes = append(fixes, `replaced "null" string with null literal`)
	}
	if reDoubleComma.MatchString(out) {
		out = reDoubleComma.ReplaceAllString(out, ",")
		fixes = append(fixes, "collapsed repeated commas")
	}
	return out, fixes
}
