/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package validate

import (
	"fmt"

	"filmstage/internal/domain"
)

// knownStage1Keys are the top level keys a stage 1 document may carry.
// Anything else is reported as informational.
var knownStage1Keys = map[string]bool{
	"film_id":       true,
	"current_step":  true,
	"timestamp":     true,
	"film_metadata": true,
	"current_work":  true,
	"visual_blocks": true,
}

// stepsWithVisuals are the steps at which visual asset blocks are expected.
var stepsWithVisuals = map[domain.Step]bool{
	domain.StepAssetAddition:             true,
	domain.StepConceptArtBlocksCompleted: true,
	domain.StepConceptArtGeneration:      true,
}

// Stage1 validates a story and asset document. Rules run in a fixed order:
// essential fields, story progress for the current step, visual blocks,
// metadata field types, then unknown keys.
func Stage1(doc *domain.Document) []domain.Diagnostic {
	raw := doc.Raw
	var out []domain.Diagnostic

	// essential fields
	if missing(raw, "film_id") {
		out = append(out, diag(domain.SeverityError, domain.CategoryEssential, "film_id", "film_id is missing"))
	} else if _, isStr := raw["film_id"].(string); !isStr {
		out = append(out, diag(domain.SeverityError, domain.CategorySchema, "film_id", "film_id must be a string"))
	}
	if missing(raw, "current_step") {
		out = append(out, diag(domain.SeverityError, domain.CategoryEssential, "current_step", "current_step is missing"))
	} else if !stepInList(domain.Stage1Steps, getString(raw, "current_step")) {
		out = append(out, diag(domain.SeverityError, domain.CategorySchema, "current_step",
			fmt.Sprintf("invalid current_step: %v", raw["current_step"])))
	}
	if missing(raw, "film_metadata") {
		out = append(out, diag(domain.SeverityError, domain.CategoryEssential, "film_metadata", "film_metadata is missing"))
	}
	if missing(raw, "timestamp") {
		out = append(out, diag(domain.SeverityError, domain.CategoryEssential, "timestamp", "timestamp is missing"))
	}

	step := domain.Step(getString(raw, "current_step"))
	work := getMap(raw, "current_work")

	// story progress; the legacy steps logline_synopsis_development and
	// treatment_expansion are no longer valid current_step values but their
	// story checks still run for documents produced before the step rename.
	if step == domain.StepSynopsisPlanning || step == "logline_synopsis_development" {
		if missing(work, "logline") {
			out = append(out, diag(domain.SeverityWarning, domain.CategoryStory, "current_work.logline", "logline is missing"))
		}
		if missing(work, "synopsis") {
			out = append(out, diag(domain.SeverityWarning, domain.CategoryStory, "current_work.synopsis", "synopsis is missing"))
		}
	}
	if step == domain.StepScenarioDevelopment || step == domain.StepConceptArtBlocksCompleted || step == "treatment_expansion" {
		if missing(work, "treatment") {
			out = append(out, diag(domain.SeverityWarning, domain.CategoryStory, "current_work.treatment", "treatment is missing"))
		} else if missing(getMap(work, "treatment"), "treatment_title") {
			out = append(out, diag(domain.SeverityWarning, domain.CategoryStory, "current_work.treatment.treatment_title", "treatment_title is missing"))
		}
	}
	if step == domain.StepScenarioDevelopment || step == domain.StepConceptArtBlocksCompleted {
		if missing(work, "scenario") {
			out = append(out, diag(domain.SeverityError, domain.CategoryStory, "current_work.scenario", "scenario is missing"))
		} else {
			scenario := getMap(work, "scenario")
			if missing(scenario, "scenario_title") {
				out = append(out, diag(domain.SeverityWarning, domain.CategoryStory, "current_work.scenario.scenario_title", "scenario_title is missing"))
			}
			if scenes, ok := getSlice(scenario, "scenes"); !ok || len(scenes) == 0 {
				out = append(out, diag(domain.SeverityWarning, domain.CategoryStory, "current_work.scenario.scenes", "scenario has no scenes"))
			}
		}
	}

	// visual asset blocks
	if stepsWithVisuals[step] {
		if missing(raw, "visual_blocks") {
			out = append(out, diag(domain.SeverityError, domain.CategoryVisual, "visual_blocks", "visual_blocks is missing"))
		} else {
			vb := getMap(raw, "visual_blocks")
			for _, key := range []string{"characters", "locations", "props"} {
				list, ok := getSlice(vb, key)
				if !ok {
					out = append(out, diag(domain.SeverityError, domain.CategoryVisual, "visual_blocks."+key,
						fmt.Sprintf("%s array is missing", key)))
				} else if len(list) == 0 {
					out = append(out, diag(domain.SeverityWarning, domain.CategoryVisual, "visual_blocks."+key,
						fmt.Sprintf("%s list is empty", key)))
				}
			}
		}
	}

	// metadata field types
	if meta := getMap(raw, "film_metadata"); meta != nil {
		if v, ok := meta["duration_minutes"]; ok {
			if _, isNum := v.(float64); !isNum {
				out = append(out, diag(domain.SeverityError, domain.CategorySchema, "film_metadata.duration_minutes",
					"duration_minutes must be a number"))
			}
		}
		if v, ok := meta["artist"]; ok && v != nil {
			if _, isStr := v.(string); !isStr {
				out = append(out, diag(domain.SeverityError, domain.CategorySchema, "film_metadata.artist",
					"artist must be a string"))
			}
		}
	}

	// unknown top level keys, in source order
	for _, key := range doc.RootKeys {
		if !knownStage1Keys[key] {
			out = append(out, diag(domain.SeverityInfo, domain.CategoryOther, key,
				fmt.Sprintf("unknown field: %s", key)))
		}
	}

	return out
}

func stepInList(steps []domain.Step, v string) bool {
	for _, s := range steps {
		if string(s) == v {
			return true
		}
	}
	return false
}
