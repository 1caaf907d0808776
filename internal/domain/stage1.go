/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// Step identifies the production step a stage 1 document is in.
type Step string

// Stage 1 production steps, in pipeline order.
const (
	StepSynopsisPlanning          Step = "synopsis_planning"
	StepScenarioDevelopment       Step = "scenario_development"
	StepAssetAddition             Step = "asset_addition"
	StepConceptArtBlocksCompleted Step = "concept_art_blocks_completed"
	StepConceptArtGeneration      Step = "concept_art_generation"
)

// Stage1Steps lists every recognized stage 1 step value.
var Stage1Steps = []Step{
	StepSynopsisPlanning,
	StepScenarioDevelopment,
	StepAssetAddition,
	StepConceptArtBlocksCompleted,
	StepConceptArtGeneration,
}

// ---- Film metadata ----

// FilmMetadata carries the production-wide description of the film.
// Artist is a pointer because upstream tools emit an explicit null before an
// artist has been assigned.
type FilmMetadata struct {
	TitleWorking    string  `json:"title_working"`
	Genre           string  `json:"genre"`
	DurationMinutes float64 `json:"duration_minutes"`
	Style           string  `json:"style"`
	Artist          *string `json:"artist"`
	Medium          string  `json:"medium"`
	Era             string  `json:"era"`
	AspectRatio     string  `json:"aspect_ratio"`
}

// ---- Story development ----

// Synopsis is the three act summary written during synopsis planning.
type Synopsis struct {
	Act1 string `json:"act1"`
	Act2 string `json:"act2"`
	Act3 string `json:"act3"`
}

// Sequence is one narrative unit of the treatment.
type Sequence struct {
	SequenceID        string `json:"sequence_id"`
	SequenceTitle     string `json:"sequence_title"`
	NarrativeFunction string `json:"narrative_function"`
	TreatmentText     string `json:"treatment_text"`
}

// Treatment is the expanded story treatment.
type Treatment struct {
	TreatmentTitle     string     `json:"treatment_title"`
	StoryStructureType string     `json:"story_structure_type"`
	Sequences          []Sequence `json:"sequences"`
}

// ScenarioScene is a single scene entry of the written scenario.
type ScenarioScene struct {
	SceneNumber  int    `json:"scene_number"`
	SceneID      string `json:"scene_id"`
	SequenceID   string `json:"sequence_id"`
	ScenarioText string `json:"scenario_text"`
}

// Scenario is the scene-by-scene script developed from the treatment.
type Scenario struct {
	ScenarioTitle string          `json:"scenario_title"`
	Scenes        []ScenarioScene `json:"scenes"`
}

// CurrentWork groups the in-progress story artifacts. The nested objects are
// pointers so that an absent section can be told apart from an empty one.
type CurrentWork struct {
	Logline   string     `json:"logline,omitempty"`
	Synopsis  *Synopsis  `json:"synopsis,omitempty"`
	Treatment *Treatment `json:"treatment,omitempty"`
	Scenario  *Scenario  `json:"scenario,omitempty"`
}

// ---- Visual asset blocks ----

// Character is a visual asset entry describing one character.
type Character struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Blocks          Blocks `json:"blocks"`
	CharacterDetail string `json:"character_detail,omitempty"`
	VoiceStyle      string `json:"voice_style,omitempty"`
}

// Location is a visual asset entry describing one location.
type Location struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Blocks Blocks `json:"blocks"`
}

// Prop is a visual asset entry describing one prop.
type Prop struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Blocks     Blocks `json:"blocks"`
	PropDetail string `json:"prop_detail,omitempty"`
}

// VisualBlocks groups the concept art asset lists.
type VisualBlocks struct {
	Characters []Character `json:"characters"`
	Locations  []Location  `json:"locations"`
	Props      []Prop      `json:"props"`
}

// Stage1Document is the story and asset document produced by the first
// pipeline stage.
type Stage1Document struct {
	FilmID       string        `json:"film_id"`
	CurrentStep  Step          `json:"current_step"`
	Timestamp    string        `json:"timestamp"`
	FilmMetadata FilmMetadata  `json:"film_metadata"`
	CurrentWork  CurrentWork   `json:"current_work"`
	VisualBlocks *VisualBlocks `json:"visual_blocks,omitempty"`
}

// EnsureVisualBlocks returns the document's visual block section, creating an
// empty one with non-nil lists when absent.
func (d *Stage1Document) EnsureVisualBlocks() *VisualBlocks {
	if d.VisualBlocks == nil {
		d.VisualBlocks = &VisualBlocks{}
	}
	vb := d.VisualBlocks
	if vb.Characters == nil {
		vb.Characters = []Character{}
	}
	if vb.Locations == nil {
		vb.Locations = []Location{}
	}
	if vb.Props == nil {
		vb.Props = []Prop{}
	}
	return vb
}
