/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package reconcile

import (
	"fmt"
	"strings"
	"testing"

	"filmstage/internal/domain"
)

func testScene() *domain.Scene {
	return &domain.Scene{
		SceneID:    "S01",
		SceneTitle: "Pier at dawn",
		Shots: []domain.Shot{
			{
				ShotID:         "S01.01.01",
				ShotType:       "regular",
				ShotText:       "The hero waits at the end of the pier.",
				ShotCharacter:  []string{"char_01"},
				Scene:          "Pier at dawn",
				CameraMovement: &domain.CameraMovement{Type: "dolly_in", Speed: "slow", Duration: "3s"},
				StartingFrame:  &domain.Blocks{Entries: []domain.BlockEntry{{Key: "camera_composition", Value: "wide"}}},
			},
			{
				ShotID:         "S01.01.02",
				ShotType:       "regular",
				ShotText:       "A ferry horn sounds far across open water.",
				ShotCharacter:  []string{},
				Scene:          "Pier at dawn",
				CameraMovement: &domain.CameraMovement{Type: "pan", Speed: "fast", Duration: "4s"},
			},
		},
	}
}

func shotTexts(scene *domain.Scene) string {
	var lines []string
	for _, s := range scene.Shots {
		lines = append(lines, s.ShotText)
	}
	return strings.Join(lines, "\n")
}

func TestReworkIdempotent(t *testing.T) {
	scene := testScene()
	out := Rework(scene, shotTexts(scene))
	if len(out) != len(scene.Shots) {
		t.Fatalf("expected %d shots, got %d", len(scene.Shots), len(out))
	}
	for i, r := range out {
		if r.Status != domain.StatusNone {
			t.Fatalf("shot %d status = %q, want none", i, r.Status)
		}
		old := scene.Shots[i]
		if r.Shot.ShotText != old.ShotText {
			t.Fatalf("shot %d changed: %+v", i, r.Shot)
		}
		// ids are renumbered under the scene id
		if want := fmt.Sprintf("S01.%02d", i+1); r.Shot.ShotID != want {
			t.Fatalf("shot %d id = %q, want %q", i, r.Shot.ShotID, want)
		}
		if r.Shot.CameraMovement == nil || *r.Shot.CameraMovement != *old.CameraMovement {
			t.Fatalf("shot %d lost its camera: %+v", i, r.Shot.CameraMovement)
		}
	}
}

func TestReworkBlankLinesDropped(t *testing.T) {
	scene := testScene()
	out := Rework(scene, "\n\n"+shotTexts(scene)+"\n   \n")
	if len(out) != 2 {
		t.Fatalf("expected 2 shots, got %d", len(out))
	}
	if out[0].Shot.ShotID != "S01.01" {
		t.Fatalf("unexpected shot id %q", out[0].Shot.ShotID)
	}
}

func TestReworkNewLine(t *testing.T) {
	scene := testScene()
	out := Rework(scene, shotTexts(scene)+"\nSeagulls scatter into grey sky.")
	if len(out) != 3 {
		t.Fatalf("expected 3 shots, got %d", len(out))
	}
	last := out[2]
	if last.Status != domain.StatusNew {
		t.Fatalf("status = %q, want new", last.Status)
	}
	if last.Shot.ShotType != "regular" || last.Shot.Scene != "Pier at dawn" {
		t.Fatalf("bare shot fields wrong: %+v", last.Shot)
	}
	if last.Shot.CameraMovement != nil {
		t.Fatalf("new shot must not inherit a camera")
	}
	if last.Shot.ShotCharacter == nil || len(last.Shot.ShotCharacter) != 0 {
		t.Fatalf("new shot character list = %v", last.Shot.ShotCharacter)
	}
}

func TestReworkSplit(t *testing.T) {
	scene := testScene()
	// first prior shot split over two lines, second kept
	edited := "The hero waits\nat the end of the pier\nA ferry horn sounds far across open water."
	out := Rework(scene, edited)
	if len(out) != 3 {
		t.Fatalf("expected 3 shots, got %d", len(out))
	}
	if out[0].Status != domain.StatusSplit {
		t.Fatalf("first fragment status = %q, want split", out[0].Status)
	}
	if out[1].Status != domain.StatusSplitAdded {
		t.Fatalf("second fragment status = %q, want split-added", out[1].Status)
	}
	if out[2].Status != domain.StatusNone {
		t.Fatalf("untouched line status = %q, want none", out[2].Status)
	}
	// both fragments inherit the source shot's camera
	for i := 0; i < 2; i++ {
		cam := out[i].Shot.CameraMovement
		if cam == nil || cam.Type != "dolly_in" {
			t.Fatalf("fragment %d camera = %+v", i, cam)
		}
	}
	if out[0].Shot.ShotID != "S01.01" {
		t.Fatalf("renumbered id = %q", out[0].Shot.ShotID)
	}
}

func TestReworkMergedCombinesCameras(t *testing.T) {
	scene := testScene()
	edited := "The hero waits at the end of the pier as a ferry horn sounds far across open water."
	out := Rework(scene, edited)
	if len(out) != 1 {
		t.Fatalf("expected 1 shot, got %d", len(out))
	}
	r := out[0]
	if r.Status != domain.StatusMerged {
		t.Fatalf("status = %q, want merged", r.Status)
	}
	cam := r.Shot.CameraMovement
	if cam == nil {
		t.Fatalf("merged shot lost camera")
	}
	if cam.Type != "dolly_in + pan" {
		t.Fatalf("combined type = %q", cam.Type)
	}
	if cam.Speed != "slow / fast" {
		t.Fatalf("combined speed = %q", cam.Speed)
	}
	if cam.Duration != "3s + 4s" {
		t.Fatalf("combined duration = %q", cam.Duration)
	}
}

func TestReworkMergedKeepsBaseCameraWhenTypesAbsent(t *testing.T) {
	scene := testScene()
	scene.Shots[0].CameraMovement = nil
	scene.Shots[1].CameraMovement = nil
	edited := "The hero waits at the end of the pier as a ferry horn sounds far across open water."
	out := Rework(scene, edited)
	if len(out) != 1 || out[0].Status != domain.StatusMerged {
		t.Fatalf("unexpected result: %+v", out)
	}
	if out[0].Shot.CameraMovement != nil {
		t.Fatalf("camera invented from nothing: %+v", out[0].Shot.CameraMovement)
	}
}

func TestReworkShortLinesNeedSimilarity(t *testing.T) {
	scene := &domain.Scene{
		SceneID:    "S02",
		SceneTitle: "Alley",
		Shots: []domain.Shot{{
			ShotID:   "S02.01.01",
			ShotType: "regular",
			ShotText: "ab cd ef gh ij kl",
		}},
	}
	// two characters normalized, substring of the prior text, but too short
	// to count as a substring match and too small a token share to score
	out := Rework(scene, "ab")
	if len(out) != 1 || out[0].Status != domain.StatusNew {
		t.Fatalf("short line matched: %+v", out)
	}
}

func TestReworkDoesNotMutateScene(t *testing.T) {
	scene := testScene()
	before := shotTexts(scene)
	Rework(scene, "Completely different content here.")
	if shotTexts(scene) != before {
		t.Fatalf("scene mutated by rework")
	}
}
