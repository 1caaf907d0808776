/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package reconcile

import "testing"

func TestSimilarityIdentity(t *testing.T) {
	for _, s := range []string{"The hero waits.", "Fog rolls in, slowly!", "one"} {
		if got := similarity(s, s); got != 1 {
			t.Fatalf("similarity(%q, %q) = %v, want 1", s, s, got)
		}
	}
}

// Symmetry only holds when neither side repeats a token: each token of the
// first string is counted against membership in the second, so a repeated
// token inflates one direction.
func TestSimilaritySymmetry(t *testing.T) {
	pairs := [][2]string{
		{"hero waits at pier", "hero runs home"},
		{"Fog rolls in", "Rain falls hard"},
		{"A quiet morning", "A quiet morning at sea"},
	}
	for _, p := range pairs {
		ab := similarity(p[0], p[1])
		ba := similarity(p[1], p[0])
		if ab != ba {
			t.Fatalf("similarity(%q, %q) = %v but reversed = %v", p[0], p[1], ab, ba)
		}
	}
}

func TestSimilarityRepeatedTokenAsymmetry(t *testing.T) {
	// "the" occurs twice on the left, so both occurrences count toward the
	// overlap in one direction but only one match exists in the other.
	a := "The hero waits at the pier"
	b := "The hero runs home"
	if got := similarity(a, b); got != 0.6 {
		t.Fatalf("similarity(a, b) = %v, want 0.6", got)
	}
	if got := similarity(b, a); got != 0.4 {
		t.Fatalf("similarity(b, a) = %v, want 0.4", got)
	}
}

func TestSimilarityIgnoresCaseAndPunctuation(t *testing.T) {
	if got := similarity("The hero waits.", "the HERO waits"); got != 1 {
		t.Fatalf("normalization not applied: %v", got)
	}
}

func TestSimilarityEmptyInputs(t *testing.T) {
	if similarity("", "anything") != 0 {
		t.Fatalf("empty first argument must score 0")
	}
	if similarity("anything", "") != 0 {
		t.Fatalf("empty second argument must score 0")
	}
	if similarity("...", "!!!") != 0 {
		t.Fatalf("punctuation-only strings must score 0")
	}
}

func TestSimilarityDisjoint(t *testing.T) {
	if got := similarity("alpha beta", "gamma delta"); got != 0 {
		t.Fatalf("disjoint token lists scored %v", got)
	}
}

func TestSimilarityPartialOverlap(t *testing.T) {
	// 2 shared tokens out of 3 + 2
	if got := similarity("the hero waits", "the hero"); got != 0.8 {
		t.Fatalf("similarity = %v, want 0.8", got)
	}
}
