/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package merge

import (
	"strings"
	"testing"

	"filmstage/internal/domain"
	"filmstage/internal/parse"
)

func file(t *testing.T, name, input string) File {
	t.Helper()
	doc, err := parse.Decode(input)
	if err != nil {
		t.Fatalf("decode %s: %v", name, err)
	}
	return File{ID: name, Name: name, Doc: doc}
}

const mainStage1 = `{
	"film_id": "FILM_000001",
	"current_step": "scenario_development",
	"timestamp": "2026-01-01T00:00:00Z",
	"film_metadata": {"title_working": "Harbor", "duration_minutes": 12},
	"current_work": {"scenario": {"scenario_title": "Harbor", "scenes": [
		{"scene_number": 1, "scene_id": "S01", "sequence_id": "seq_01", "scenario_text": "Dawn."}
	]}}
}`

const assetStage1 = `{
	"film_id": "FILM_000001",
	"current_step": "asset_addition",
	"timestamp": "2026-01-02T00:00:00Z",
	"film_metadata": {"title_working": "Harbor"},
	"current_work": {},
	"visual_blocks": {
		"characters": [{"id": "char_01", "name": "Mara", "blocks": {"1_look": "weathered coat"}}],
		"locations": [{"id": "loc_01", "name": "Pier", "blocks": {}}],
		"props": []
	}
}`

func TestMergeEmptyInput(t *testing.T) {
	res := Merge(nil)
	if res.Merged != nil || len(res.Errors) != 1 {
		t.Fatalf("result = %+v", res)
	}
}

func TestMergeFilmIDMismatchAborts(t *testing.T) {
	other := strings.Replace(assetStage1, "FILM_000001", "FILM_000002", 1)
	res := Merge([]File{file(t, "main.json", mainStage1), file(t, "assets.json", other)})
	if res.Merged != nil {
		t.Fatalf("merge proceeded despite mismatch")
	}
	if len(res.Errors) != 1 || !strings.Contains(res.Errors[0], "assets.json") {
		t.Fatalf("errors = %v", res.Errors)
	}
}

func TestMergeStage1CollectsAssets(t *testing.T) {
	res := Merge([]File{file(t, "assets.json", assetStage1), file(t, "main.json", mainStage1)})
	if res.Merged == nil {
		t.Fatalf("merge failed: %v", res.Errors)
	}
	one := res.Merged.One
	if one == nil {
		t.Fatalf("merged document has no stage 1 form")
	}
	// the main file wins even when listed second
	if one.CurrentWork.Scenario == nil || one.CurrentWork.Scenario.ScenarioTitle != "Harbor" {
		t.Fatalf("main file not used as base: %+v", one.CurrentWork)
	}
	if len(one.VisualBlocks.Characters) != 1 || one.VisualBlocks.Characters[0].ID != "char_01" {
		t.Fatalf("characters = %+v", one.VisualBlocks.Characters)
	}
	if len(one.VisualBlocks.Locations) != 1 {
		t.Fatalf("locations = %+v", one.VisualBlocks.Locations)
	}
	if one.CurrentStep != domain.StepConceptArtBlocksCompleted {
		t.Fatalf("step not advanced: %q", one.CurrentStep)
	}
}

func TestMergeStage1DuplicateIDsWarn(t *testing.T) {
	res := Merge([]File{
		file(t, "main.json", mainStage1),
		file(t, "a.json", assetStage1),
		file(t, "b.json", assetStage1),
	})
	if res.Merged == nil {
		t.Fatalf("merge failed: %v", res.Errors)
	}
	one := res.Merged.One
	if len(one.VisualBlocks.Characters) != 1 || len(one.VisualBlocks.Locations) != 1 {
		t.Fatalf("duplicates not dropped: %+v", one.VisualBlocks)
	}
	var charWarn bool
	for _, w := range res.Warnings {
		if strings.Contains(w, "b.json") && strings.Contains(w, "char_01") && strings.Contains(w, "Mara") {
			charWarn = true
		}
	}
	if !charWarn {
		t.Fatalf("warnings = %v", res.Warnings)
	}
}

func stage2File(t *testing.T, name string, sceneIDs ...string) File {
	t.Helper()
	var scenes []string
	for _, id := range sceneIDs {
		scenes = append(scenes, `{"scene_id":"`+id+`","scene_title":"t","scene_scenario":"s","shots":[]}`)
	}
	input := `{"film_id":"FILM_000001","current_step":"shot_division_2A","timestamp":"t","scenes":[` +
		strings.Join(scenes, ",") + `]}`
	return file(t, name, input)
}

func TestMergeStage2OrdersAndDeduplicates(t *testing.T) {
	res := Merge([]File{
		stage2File(t, "late.json", "S03", "S01"),
		stage2File(t, "early.json", "S02", "S01"),
	})
	if res.Merged == nil {
		t.Fatalf("merge failed: %v", res.Errors)
	}
	two := res.Merged.Two
	if two == nil {
		t.Fatalf("merged document has no stage 2 form")
	}
	var ids []string
	for _, sc := range two.Scenes {
		ids = append(ids, sc.SceneID)
	}
	if strings.Join(ids, ",") != "S01,S02,S03" {
		t.Fatalf("scene order = %v", ids)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "early.json") {
		t.Fatalf("warnings = %v", res.Warnings)
	}
}

func TestMergeStage2RejectsForeignFilesButContinues(t *testing.T) {
	res := Merge([]File{
		stage2File(t, "shots.json", "S01"),
		file(t, "story.json", mainStage1),
	})
	if res.Merged == nil {
		t.Fatalf("merge failed entirely: %v", res.Errors)
	}
	if len(res.Errors) != 1 || !strings.Contains(res.Errors[0], "story.json") {
		t.Fatalf("errors = %v", res.Errors)
	}
	if len(res.Merged.Two.Scenes) != 1 {
		t.Fatalf("scenes = %+v", res.Merged.Two.Scenes)
	}
}

func TestClassify(t *testing.T) {
	if k := Classify(file(t, "m", mainStage1).Doc); k != KindMain {
		t.Fatalf("main classified as %q", k)
	}
	if k := Classify(file(t, "a", assetStage1).Doc); k != KindAsset {
		t.Fatalf("asset classified as %q", k)
	}
	other, err := parse.Decode(`{"film_id":"FILM_000001","current_step":"synopsis_planning"}`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if k := Classify(other); k != KindUnknown {
		t.Fatalf("bare document classified as %q", k)
	}
}
