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

// Stage2 validates a shot division document: header fields, then every
// scene and every shot in document order.
func Stage2(doc *domain.Document) []domain.Diagnostic {
	raw := doc.Raw
	var out []domain.Diagnostic

	if missing(raw, "film_id") {
		out = append(out, diag(domain.SeverityError, domain.CategoryEssential, "film_id", "film_id is missing"))
	} else if !reFilmID.MatchString(getString(raw, "film_id")) {
		out = append(out, diag(domain.SeverityError, domain.CategorySchema, "film_id",
			fmt.Sprintf("film_id must match FILM_ followed by six digits: %v", raw["film_id"])))
	}
	if missing(raw, "current_step") {
		out = append(out, diag(domain.SeverityError, domain.CategoryEssential, "current_step", "current_step is missing"))
	} else if !stepInList(domain.Stage2Steps, getString(raw, "current_step")) {
		out = append(out, diag(domain.SeverityError, domain.CategorySchema, "current_step",
			fmt.Sprintf("invalid current_step: %v", raw["current_step"])))
	}
	if missing(raw, "timestamp") {
		out = append(out, diag(domain.SeverityError, domain.CategoryEssential, "timestamp", "timestamp is missing"))
	}

	scenes, ok := getSlice(raw, "scenes")
	if !ok {
		out = append(out, diag(domain.SeverityError, domain.CategoryStory, "scenes", "scenes array is missing"))
		return out
	}
	if len(scenes) == 0 {
		out = append(out, diag(domain.SeverityWarning, domain.CategoryStory, "scenes", "at least one scene is required"))
		return out
	}

	for i, sv := range scenes {
		scene, _ := sv.(map[string]any)
		path := fmt.Sprintf("scenes[%d]", i)
		out = append(out, checkScene(scene, path)...)
	}
	return out
}

func checkScene(scene map[string]any, path string) []domain.Diagnostic {
	var out []domain.Diagnostic

	if missing(scene, "scene_id") {
		out = append(out, diag(domain.SeverityError, domain.CategoryEssential, path+".scene_id", "scene_id is missing"))
	} else if !reSceneID.MatchString(getString(scene, "scene_id")) {
		out = append(out, diag(domain.SeverityError, domain.CategorySchema, path+".scene_id",
			fmt.Sprintf("scene_id must match S followed by two digits: %v", scene["scene_id"])))
	}
	if missing(scene, "scene_title") {
		out = append(out, diag(domain.SeverityError, domain.CategoryStory, path+".scene_title", "scene_title is missing"))
	}
	if missing(scene, "scene_scenario") {
		out = append(out, diag(domain.SeverityError, domain.CategoryStory, path+".scene_scenario", "scene_scenario is missing"))
	}

	if missing(scene, "concept_art_references") {
		out = append(out, diag(domain.SeverityError, domain.CategoryVisual, path+".concept_art_references",
			"concept_art_references is missing"))
	} else {
		refs := getMap(scene, "concept_art_references")
		for _, key := range []string{"characters", "location", "props"} {
			if _, ok := refs[key]; !ok {
				out = append(out, diag(domain.SeverityError, domain.CategoryVisual, path+".concept_art_references."+key,
					fmt.Sprintf("%s reference is missing", key)))
			}
		}
	}

	shots, ok := getSlice(scene, "shots")
	if !ok {
		out = append(out, diag(domain.SeverityError, domain.CategoryStory, path+".shots", "shots array is missing"))
		return out
	}
	if len(shots) == 0 {
		out = append(out, diag(domain.SeverityError, domain.CategoryStory, path+".shots", "at least one shot is required"))
		return out
	}
	for j, sv := range shots {
		shot, _ := sv.(map[string]any)
		out = append(out, checkShot(shot, fmt.Sprintf("%s.shots[%d]", path, j))...)
	}
	return out
}

func checkShot(shot map[string]any, path string) []domain.Diagnostic {
	var out []domain.Diagnostic

	if missing(shot, "shot_id") {
		out = append(out, diag(domain.SeverityError, domain.CategoryEssential, path+".shot_id", "shot_id is missing"))
	} else if !reShotID.MatchString(getString(shot, "shot_id")) {
		out = append(out, diag(domain.SeverityError, domain.CategorySchema, path+".shot_id",
			fmt.Sprintf("shot_id must match Sxx.xx.xx: %v", shot["shot_id"])))
	}
	if !missing(shot, "shot_type") && getString(shot, "shot_type") != "regular" {
		out = append(out, diag(domain.SeverityError, domain.CategorySchema, path+".shot_type",
			fmt.Sprintf("shot_type must be \"regular\": %v", shot["shot_type"])))
	}
	if missing(shot, "shot_text") {
		out = append(out, diag(domain.SeverityError, domain.CategoryStory, path+".shot_text", "shot_text is missing"))
	}

	if missing(shot, "camera_movement") {
		out = append(out, diag(domain.SeverityError, domain.CategoryVisual, path+".camera_movement", "camera_movement is missing"))
	} else {
		cam := getMap(shot, "camera_movement")
		if missing(cam, "type") {
			out = append(out, diag(domain.SeverityError, domain.CategorySchema, path+".camera_movement.type",
				"camera movement type is missing"))
		} else if !inVocab(CameraTypes, getString(cam, "type")) {
			out = append(out, diag(domain.SeverityError, domain.CategorySchema, path+".camera_movement.type",
				fmt.Sprintf("invalid camera type: %v", cam["type"])))
		}
		if !missing(cam, "speed") && !inVocab(CameraSpeeds, getString(cam, "speed")) {
			out = append(out, diag(domain.SeverityError, domain.CategorySchema, path+".camera_movement.speed",
				fmt.Sprintf("invalid camera speed: %v", cam["speed"])))
		}
		if !missing(cam, "duration") && !reDuration.MatchString(getString(cam, "duration")) {
			out = append(out, diag(domain.SeverityError, domain.CategorySchema, path+".camera_movement.duration",
				fmt.Sprintf("duration must be seconds like 3s or 2.5s: %v", cam["duration"])))
		}
	}

	if missing(shot, "movement_description") {
		out = append(out, diag(domain.SeverityError, domain.CategoryVisual, path+".movement_description",
			"movement_description is missing"))
	}
	if missing(shot, "starting_frame") {
		out = append(out, diag(domain.SeverityError, domain.CategoryVisual, path+".starting_frame", "starting_frame is missing"))
	}
	if missing(shot, "ending_frame") {
		out = append(out, diag(domain.SeverityError, domain.CategoryVisual, path+".ending_frame", "ending_frame is missing"))
	}
	return out
}
