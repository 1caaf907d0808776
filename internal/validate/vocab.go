/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package validate

import "regexp"

// CameraTypes is the closed vocabulary of camera movement types accepted in
// stage 2 shots.
var CameraTypes = []string{
	"static", "pan", "tilt", "dolly_in", "dolly_out", "dolly_zoom",
	"track", "truck", "crane", "crane_up", "crane_down", "handheld",
	"steadicam", "zoom", "rack_focus", "arc", "whip_pan", "whip_pan_down",
	"dutch_angle", "overhead", "worm_view", "spiral", "pendulum", "drift",
	"snap_zoom", "push_in", "pull_out", "slow_push_in", "quick_pull_back",
	"tracking_backward", "tracking_left", "tilt_down_then_focus",
}

// CameraSpeeds is the closed vocabulary of camera movement speeds.
var CameraSpeeds = []string{"very_slow", "slow", "medium", "fast", "match_subject"}

// Identifier and value patterns enforced on stage 2 documents.
var (
	reFilmID   = regexp.MustCompile(`^FILM_\d{6}$`)
	reSceneID  = regexp.MustCompile(`^S\d{2}$`)
	reShotID   = regexp.MustCompile(`^S\d{2}\.\d{2}\.\d{2}$`)
	reDuration = regexp.MustCompile(`^\d+(\.\d+)?s$`)
)

func inVocab(vocab []string, v string) bool {
	for _, s := range vocab {
		if s == v {
			return true
		}
	}
	return false
}
