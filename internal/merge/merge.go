/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package merge combines several pipeline JSON files describing the same
// film into a single document. Stage 1 files contribute visual asset lists
// on top of the main story file; stage 2 files contribute whole scenes.
package merge

import (
	"fmt"
	"sort"
	"strings"

	"filmstage/internal/domain"
)

// Kind classifies an input file by its role in the pipeline.
type Kind string

const (
	KindMain    Kind = "main"
	KindAsset   Kind = "asset"
	KindUnknown Kind = "unknown"
)

// File is one input to a merge.
type File struct {
	ID   string
	Name string
	Doc  *domain.Document
}

// Result carries the merge outcome. Merged is nil when a fatal error
// prevented merging; Warnings report content that was dropped or adjusted.
type Result struct {
	Merged   *domain.Document
	Warnings []string
	Errors   []string
}

// Classify determines a file's role. Main files carry the scenario work,
// asset files carry visual blocks; stage assignment is not enough because a
// stage 1 document may be either.
func Classify(doc *domain.Document) Kind {
	if doc == nil || doc.Raw == nil {
		return KindUnknown
	}
	step := doc.CurrentStep()
	if step == domain.StepScenarioDevelopment {
		return KindMain
	}
	if work := doc.Raw["current_work"]; work != nil {
		if w, ok := work.(map[string]any); ok {
			if _, has := w["scenario"]; has {
				return KindMain
			}
		}
	}
	if step == domain.StepAssetAddition {
		return KindAsset
	}
	if vb, ok := doc.Raw["visual_blocks"].(map[string]any); ok && len(vb) > 0 {
		return KindAsset
	}
	return KindUnknown
}

// Merge combines the given files. All files must agree on film_id; the stage
// of the first file decides whether scenes or asset lists are merged.
func Merge(files []File) Result {
	if len(files) == 0 {
		return Result{Errors: []string{"no files to merge"}}
	}

	want := files[0].Doc.FilmID()
	var mismatched []string
	for _, f := range files[1:] {
		if f.Doc.FilmID() != want {
			mismatched = append(mismatched, f.Name)
		}
	}
	if len(mismatched) > 0 {
		return Result{Errors: []string{fmt.Sprintf(
			"film_id mismatch: expected %q, differs in %s", want, strings.Join(mismatched, ", "))}}
	}

	if files[0].Doc.Stage == domain.StageTwo {
		return mergeStage2(files)
	}
	return mergeStage1(files)
}

// mergeStage1 starts from the main story file and folds every other stage 1
// file's asset lists into it, dropping duplicate ids.
func mergeStage1(files []File) Result {
	var res Result

	mainIdx := 0
	for i, f := range files {
		one := f.Doc.One
		if one == nil {
			continue
		}
		if one.CurrentStep == domain.StepScenarioDevelopment || one.CurrentWork.Scenario != nil {
			mainIdx = i
			break
		}
	}
	main := files[mainIdx]
	if main.Doc.One == nil {
		res.Errors = append(res.Errors, fmt.Sprintf("%s: not a readable stage 1 document", main.Name))
		return res
	}

	merged := domain.CloneStage1(main.Doc.One)
	vb := merged.EnsureVisualBlocks()

	charIDs := map[string]bool{}
	locIDs := map[string]bool{}
	propIDs := map[string]bool{}
	for _, c := range vb.Characters {
		charIDs[c.ID] = true
	}
	for _, l := range vb.Locations {
		locIDs[l.ID] = true
	}
	for _, p := range vb.Props {
		propIDs[p.ID] = true
	}

	for i, f := range files {
		if i == mainIdx || f.Doc.Stage == domain.StageTwo {
			continue
		}
		one := f.Doc.One
		if one == nil || one.VisualBlocks == nil {
			continue
		}
		for _, c := range one.VisualBlocks.Characters {
			if charIDs[c.ID] {
				res.Warnings = append(res.Warnings, fmt.Sprintf(
					"%s: duplicate character id ignored: %s (%s)", f.Name, c.ID, c.Name))
				continue
			}
			charIDs[c.ID] = true
			vb.Characters = append(vb.Characters, c)
		}
		for _, l := range one.VisualBlocks.Locations {
			if locIDs[l.ID] {
				res.Warnings = append(res.Warnings, fmt.Sprintf(
					"%s: duplicate location id ignored: %s (%s)", f.Name, l.ID, l.Name))
				continue
			}
			locIDs[l.ID] = true
			vb.Locations = append(vb.Locations, l)
		}
		for _, p := range one.VisualBlocks.Props {
			if propIDs[p.ID] {
				res.Warnings = append(res.Warnings, fmt.Sprintf(
					"%s: duplicate prop id ignored: %s (%s)", f.Name, p.ID, p.Name))
				continue
			}
			propIDs[p.ID] = true
			vb.Props = append(vb.Props, p)
		}
	}

	if len(vb.Characters)+len(vb.Locations)+len(vb.Props) > 0 &&
		merged.CurrentStep != domain.StepConceptArtBlocksCompleted {
		merged.CurrentStep = domain.StepConceptArtBlocksCompleted
	}

	doc, err := domain.FromStage1(merged)
	if err != nil {
		res.Errors = append(res.Errors, err.Error())
		return res
	}
	res.Merged = doc
	return res
}

// mergeStage2 takes the first file as the metadata base and collects scenes
// from every file. The first occurrence of a scene id wins; the final scene
// list is ordered by scene id.
func mergeStage2(files []File) Result {
	var res Result

	base := files[0].Doc.Two
	if base == nil {
		res.Errors = append(res.Errors, fmt.Sprintf("%s: not a readable stage 2 document", files[0].Name))
		return res
	}
	merged := domain.CloneStage2(base)

	var scenes []domain.Scene
	seen := map[string]bool{}
	for _, f := range files {
		if f.Doc.Stage != domain.StageTwo || f.Doc.Two == nil {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: not a stage 2 document", f.Name))
			continue
		}
		for _, sc := range f.Doc.Two.Scenes {
			if seen[sc.SceneID] {
				res.Warnings = append(res.Warnings, fmt.Sprintf(
					"%s: duplicate scene id ignored: %s", f.Name, sc.SceneID))
				continue
			}
			seen[sc.SceneID] = true
			scenes = append(scenes, sc)
		}
	}
	sort.SliceStable(scenes, func(a, b int) bool {
		return scenes[a].SceneID < scenes[b].SceneID
	})
	merged.Scenes = scenes

	doc, err := domain.FromStage2(merged)
	if err != nil {
		res.Errors = append(res.Errors, err.Error())
		return res
	}
	res.Merged = doc
	return res
}
