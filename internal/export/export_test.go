/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"filmstage/internal/domain"
)

func stage1Fixture(t *testing.T) *domain.Document {
	t.Helper()
	doc, err := domain.FromStage1(&domain.Stage1Document{
		FilmID:      "FILM_654321",
		CurrentStep: domain.StepScenarioDevelopment,
		Timestamp:   "2026-02-02T00:00:00Z",
		FilmMetadata: domain.FilmMetadata{
			TitleWorking:    "Harbor Lights",
			Genre:           "drama",
			DurationMinutes: 12,
		},
		CurrentWork: domain.CurrentWork{
			Logline: "A lighthouse keeper shelters a stowaway.",
			Scenario: &domain.Scenario{
				ScenarioTitle: "Harbor Lights",
				Scenes: []domain.ScenarioScene{
					{SceneNumber: 1, SceneID: "S01", SequenceID: "SEQ01", ScenarioText: "Dawn over the pier."},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("FromStage1: %v", err)
	}
	return doc
}

func stage2Fixture(t *testing.T) *domain.Document {
	t.Helper()
	doc, err := domain.FromStage2(&domain.Stage2Document{
		FilmID:      "FILM_654321",
		CurrentStep: domain.StepShotDivision,
		Timestamp:   "2026-02-02T00:00:00Z",
		Scenes: []domain.Scene{{
			SceneID:       "S01",
			SceneTitle:    "Pier at dawn",
			SceneScenario: "Dawn over the pier.",
			Shots: []domain.Shot{{
				ShotID:        "S01.01.01",
				ShotType:      "regular",
				ShotText:      "The keeper climbs the stairs.",
				ShotCharacter: []string{"keeper"},
				Scene:         "Pier at dawn",
				CameraMovement: &domain.CameraMovement{
					Type: "dolly_in", Speed: "slow", Duration: "3s",
				},
			}},
		}},
	})
	if err != nil {
		t.Fatalf("FromStage2: %v", err)
	}
	return doc
}

func TestFileNameConventions(t *testing.T) {
	if got := FileName(stage1Fixture(t)); got != "FILM_654321_scenario_development.json" {
		t.Fatalf("stage1 name = %q", got)
	}
	if got := FileName(stage2Fixture(t)); got != "S01_edited.json" {
		t.Fatalf("stage2 name = %q", got)
	}
	empty, err := domain.FromStage2(&domain.Stage2Document{
		FilmID:      "FILM_654321",
		CurrentStep: domain.StepShotDivision,
	})
	if err != nil {
		t.Fatalf("FromStage2: %v", err)
	}
	if got := FileName(empty); got != "stage2_edited.json" {
		t.Fatalf("sceneless stage2 name = %q", got)
	}
}

func TestWriteDocument(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteDocument(dir, stage1Fixture(t))
	if err != nil {
		t.Fatalf("WriteDocument: %v", err)
	}
	if filepath.Base(path) != "FILM_654321_scenario_development.json" {
		t.Fatalf("path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, "\n  \"film_id\"") {
		t.Fatalf("output not indented:\n%s", s)
	}
	if !strings.HasSuffix(s, "\n") {
		t.Fatalf("output missing trailing newline")
	}
}

func TestWriteDocumentNil(t *testing.T) {
	if _, err := WriteDocument(t.TempDir(), nil); err == nil {
		t.Fatalf("expected error for nil document")
	}
}
