/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"os"
	"path/filepath"
	"testing"

	"filmstage/internal/merge"
)

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestReadFilesPreservesOrderAndClassifies(t *testing.T) {
	dir := t.TempDir()
	main := writeTemp(t, dir, "main.json",
		`{"film_id":"FILM_000001","current_step":"scenario_development","timestamp":"t","film_metadata":{},"current_work":{"scenario":{"scenario_title":"x","scenes":[]}}}`)
	// asset file wrapped in a markdown fence, as pasted from a model reply
	asset := writeTemp(t, dir, "assets.json",
		"```json\n{\"film_id\":\"FILM_000001\",\"current_step\":\"asset_addition\",\"timestamp\":\"t\",\"film_metadata\":{},\"visual_blocks\":{\"characters\":[],\"locations\":[],\"props\":[]}}\n```")
	broken := writeTemp(t, dir, "broken.json", `{"film_id": FILM`)

	files := ReadFiles([]string{main, asset, broken})
	if len(files) != 3 {
		t.Fatalf("got %d results", len(files))
	}
	if files[0].Name != "main.json" || files[1].Name != "assets.json" || files[2].Name != "broken.json" {
		t.Fatalf("order not preserved: %v %v %v", files[0].Name, files[1].Name, files[2].Name)
	}
	if files[0].Kind != merge.KindMain {
		t.Fatalf("main kind = %q", files[0].Kind)
	}
	if files[1].Kind != merge.KindAsset {
		t.Fatalf("asset kind = %q (fence salvage failed?)", files[1].Kind)
	}
	if files[0].FilmID != "FILM_000001" {
		t.Fatalf("film id = %q", files[0].FilmID)
	}
	if files[2].Doc != nil || len(files[2].Diagnostics) == 0 {
		t.Fatalf("broken file not reported: %+v", files[2])
	}
	if files[0].ID == files[1].ID || files[0].ID == "" {
		t.Fatalf("ids not unique: %q %q", files[0].ID, files[1].ID)
	}
}

func TestReadFilesMissingPath(t *testing.T) {
	files := ReadFiles([]string{filepath.Join(t.TempDir(), "absent.json")})
	if files[0].Err == nil {
		t.Fatalf("missing file not reported")
	}
	if files[0].FilmID != "UNKNOWN" {
		t.Fatalf("film id = %q", files[0].FilmID)
	}
}

func TestMergeInputsSkipsUnparsed(t *testing.T) {
	dir := t.TempDir()
	good := writeTemp(t, dir, "good.json", `{"film_id":"FILM_000001","current_step":"synopsis_planning"}`)
	bad := writeTemp(t, dir, "bad.json", `]`)
	inputs := MergeInputs(ReadFiles([]string{good, bad}))
	if len(inputs) != 1 || inputs[0].Name != "good.json" {
		t.Fatalf("inputs = %+v", inputs)
	}
}
