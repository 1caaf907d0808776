/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package reconcile

import "strings"

var punct = strings.NewReplacer(".", "", ",", "", "!", "", "?", "")

// normalize lowercases, strips sentence punctuation and trims the ends.
func normalize(s string) string {
	return strings.TrimSpace(punct.Replace(strings.ToLower(s)))
}

// similarity scores two prose lines with a Dice coefficient over whitespace
// tokens of the normalized text. Each token of a counts when it occurs
// anywhere in b, repeats included. Returns 0 when either string is empty or
// neither has tokens.
func similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	ta := strings.Fields(normalize(a))
	tb := strings.Fields(normalize(b))
	if len(ta)+len(tb) == 0 {
		return 0
	}
	in := make(map[string]bool, len(tb))
	for _, t := range tb {
		in[t] = true
	}
	matches := 0
	for _, t := range ta {
		if in[t] {
			matches++
		}
	}
	return float64(2*matches) / float64(len(ta)+len(tb))
}
