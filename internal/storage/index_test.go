/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"os"
	"testing"

	"filmstage/internal/domain"
)

func indexDoc(t *testing.T) *domain.Document {
	t.Helper()
	doc, err := domain.FromStage2(&domain.Stage2Document{
		FilmID:      "FILM_123456",
		CurrentStep: domain.StepShotDivision,
		Timestamp:   "2026-01-01T00:00:00Z",
		Scenes: []domain.Scene{{
			SceneID:       "S01",
			SceneTitle:    "Pier at dawn",
			SceneScenario: "Fog rolls over the harbor.",
			Shots: []domain.Shot{
				{ShotID: "S01.01.01", ShotText: "The keeper watches the lighthouse beam."},
				{ShotID: "S01.01.02", ShotText: "A stowaway slips between crates."},
			},
		}},
	})
	if err != nil {
		t.Fatalf("build document: %v", err)
	}
	return doc
}

func TestRebuildIndexAndSearch(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()
	if err := RebuildIndex(ctx, root, indexDoc(t)); err != nil {
		t.Fatalf("RebuildIndex: %v", err)
	}

	hits, err := Search(ctx, root, SearchQuery{Text: "lighthouse"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("hits = %+v", hits)
	}
	h := hits[0]
	if h.Type != "shot" || h.SceneID != "S01" || h.ShotID != "S01.01.01" {
		t.Fatalf("hit = %+v", h)
	}

	// type filter without text lists all rows of that type
	hits, err = Search(ctx, root, SearchQuery{Types: []string{"shot"}})
	if err != nil {
		t.Fatalf("Search by type: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("shot rows = %+v", hits)
	}

	// scene filter narrows FTS results
	hits, err = Search(ctx, root, SearchQuery{Text: "fog", SceneID: "S01"})
	if err != nil {
		t.Fatalf("Search scene: %v", err)
	}
	if len(hits) != 1 || hits[0].Type != "scene" {
		t.Fatalf("scene hit = %+v", hits)
	}
}

func TestUpdateIndexReplacesContent(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()
	doc := indexDoc(t)
	if err := BuildIndexIfEmpty(ctx, root, doc); err != nil {
		t.Fatalf("BuildIndexIfEmpty: %v", err)
	}
	doc.Two.Scenes[0].Shots[0].ShotText = "The keeper sleeps."
	if err := UpdateIndex(ctx, root, doc); err != nil {
		t.Fatalf("UpdateIndex: %v", err)
	}
	hits, err := Search(ctx, root, SearchQuery{Text: "lighthouse"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 0 {
		t.Fatalf("stale content still indexed: %+v", hits)
	}
	hits, err = Search(ctx, root, SearchQuery{Text: "sleeps"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("new content not indexed: %+v", hits)
	}
}

func TestDetectAndRebuildIndexAfterCorruption(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()
	doc := indexDoc(t)
	if err := RebuildIndex(ctx, root, doc); err != nil {
		t.Fatalf("RebuildIndex: %v", err)
	}
	if err := os.WriteFile(IndexPath(root), []byte("this is not a database"), 0o644); err != nil {
		t.Fatalf("corrupt index: %v", err)
	}
	rebuilt, err := DetectAndRebuildIndex(ctx, root, doc)
	if err != nil {
		t.Fatalf("DetectAndRebuildIndex: %v", err)
	}
	if !rebuilt {
		t.Fatalf("corruption not detected")
	}
	hits, err := Search(ctx, root, SearchQuery{Text: "stowaway"})
	if err != nil {
		t.Fatalf("Search after rebuild: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("hits = %+v", hits)
	}
}

func TestBuildIndexIfEmptySkipsPopulated(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()
	doc := indexDoc(t)
	if err := BuildIndexIfEmpty(ctx, root, doc); err != nil {
		t.Fatalf("first build: %v", err)
	}
	doc.Two.Scenes[0].Shots[0].ShotText = "Replaced text that must not appear."
	if err := BuildIndexIfEmpty(ctx, root, doc); err != nil {
		t.Fatalf("second build: %v", err)
	}
	hits, err := Search(ctx, root, SearchQuery{Text: "lighthouse"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("index rebuilt despite content: %+v", hits)
	}
}
