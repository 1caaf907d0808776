/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// Stage 2 production steps.
const (
	StepShotDivision    Step = "shot_division_2A"
	StepVisualDirection Step = "visual_direction_2B"
)

// Stage2Steps lists every recognized stage 2 step value.
var Stage2Steps = []Step{StepShotDivision, StepVisualDirection}

// CameraMovement describes how the camera moves during a shot. Only Type is
// mandatory; the remaining fields are omitted when unset.
type CameraMovement struct {
	Type       string `json:"type"`
	Speed      string `json:"speed,omitempty"`
	Duration   string `json:"duration,omitempty"`
	Secondary  string `json:"secondary,omitempty"`
	FocusShift string `json:"focus_shift,omitempty"`
}

// MovementDescription describes what moves inside the frame. Action and
// Expression are keyed per character, so key order is preserved.
type MovementDescription struct {
	Action          Blocks `json:"action"`
	Expression      Blocks `json:"expression"`
	EnvironmentMove string `json:"environment_move,omitempty"`
	MoodEmotion     string `json:"mood_emotion,omitempty"`
}

// Shot is a single shot inside a scene. StartingFrame and EndingFrame are
// free-form keyed descriptions: camera_composition and environment plus one
// key per visible character.
type Shot struct {
	ShotID              string               `json:"shot_id"`
	ShotType            string               `json:"shot_type"`
	ShotText            string               `json:"shot_text"`
	ShotCharacter       []string             `json:"shot_character"`
	Scene               string               `json:"scene"`
	MovementDescription *MovementDescription `json:"movement_description,omitempty"`
	CameraMovement      *CameraMovement      `json:"camera_movement,omitempty"`
	StartingFrame       *Blocks              `json:"starting_frame,omitempty"`
	EndingFrame         *Blocks              `json:"ending_frame,omitempty"`
}

// ConceptArtReferences links a scene to the stage 1 asset ids it uses.
type ConceptArtReferences struct {
	Characters []string `json:"characters"`
	Location   string   `json:"location"`
	Props      []string `json:"props"`
}

// Scene is a stage 2 scene with its shot division.
type Scene struct {
	SceneID              string                `json:"scene_id"`
	SceneTitle           string                `json:"scene_title"`
	SceneScenario        string                `json:"scene_scenario"`
	ConceptArtReferences *ConceptArtReferences `json:"concept_art_references,omitempty"`
	Shots                []Shot                `json:"shots"`
}

// Stage2Document is the shot division document produced by the second
// pipeline stage.
type Stage2Document struct {
	FilmID      string  `json:"film_id"`
	CurrentStep Step    `json:"current_step"`
	Timestamp   string  `json:"timestamp"`
	Scenes      []Scene `json:"scenes"`
}

// SceneByID returns the scene with the given id, or nil.
func (d *Stage2Document) SceneByID(id string) *Scene {
	for i := range d.Scenes {
		if d.Scenes[i].SceneID == id {
			return &d.Scenes[i]
		}
	}
	return nil
}

// ShotStatus records how a shot was produced by the most recent scenario
// edit. Statuses are editing state, not document content: they are never
// serialized into the document itself.
type ShotStatus string

const (
	StatusNone       ShotStatus = "none"
	StatusNew        ShotStatus = "new"
	StatusSplit      ShotStatus = "split"
	StatusSplitAdded ShotStatus = "split-added"
	StatusMerged     ShotStatus = "merged"
)
