/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package reconcile rebuilds a scene's shot list from a free-text scenario
// edit. Every non-blank line of the edited text becomes one shot; prior
// shots that still match a line keep their camera and frame work, so an
// editor rewriting the prose does not lose the visual direction already
// attached to it.
package reconcile

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"filmstage/internal/domain"
)

// Reshot pairs a rebuilt shot with the status describing how it relates to
// the prior shot list.
type Reshot struct {
	Shot   domain.Shot
	Status domain.ShotStatus
}

var reNewline = regexp.MustCompile(`\r?\n`)

const similarityFloor = 0.3

// Rework builds a new shot list for scene from the edited scenario text.
// Shot ids are renumbered sequentially under the scene id. The scene itself
// is not modified.
func Rework(scene *domain.Scene, edited string) []Reshot {
	var lines []string
	for _, l := range reNewline.Split(edited, -1) {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}

	// match every line against the prior shots first so usage counts are
	// global before any line is classified
	matched := make([][]*domain.Shot, len(lines))
	usage := map[string]int{}
	for i, line := range lines {
		cleanLine := normalize(line)
		var cands []*domain.Shot
		for j := range scene.Shots {
			old := &scene.Shots[j]
			cleanOld := normalize(old.ShotText)
			ok := (len(cleanLine) > 2 && strings.Contains(cleanOld, cleanLine)) ||
				(len(cleanOld) > 2 && strings.Contains(cleanLine, cleanOld)) ||
				similarity(line, old.ShotText) > similarityFloor
			if ok {
				cands = append(cands, old)
			}
		}
		sort.SliceStable(cands, func(a, b int) bool {
			return similarity(line, cands[a].ShotText) > similarity(line, cands[b].ShotText)
		})
		matched[i] = cands
		for _, c := range cands {
			usage[c.ShotID]++
		}
	}

	seen := map[string]int{}
	out := make([]Reshot, 0, len(lines))
	for i, line := range lines {
		shotID := fmt.Sprintf("%s.%02d", scene.SceneID, i+1)
		cands := matched[i]

		if len(cands) == 0 {
			out = append(out, Reshot{
				Shot: domain.Shot{
					ShotID:        shotID,
					ShotType:      "regular",
					ShotText:      line,
					ShotCharacter: []string{},
					Scene:         scene.SceneTitle,
				},
				Status: domain.StatusNew,
			})
			continue
		}

		base := domain.CloneShot(*cands[0])
		base.ShotID = shotID
		base.ShotText = line

		status := domain.StatusNone
		if len(cands) > 1 {
			status = domain.StatusMerged
			if cam := combineCameras(cands); cam != nil {
				base.CameraMovement = cam
			}
		} else {
			oldID := cands[0].ShotID
			if usage[oldID] > 1 {
				if seen[oldID] == 0 {
					status = domain.StatusSplit
				} else {
					status = domain.StatusSplitAdded
				}
			}
			seen[oldID]++
		}
		out = append(out, Reshot{Shot: base, Status: status})
	}
	return out
}

// combineCameras joins the camera movements of all merged source shots.
// Types and durations concatenate with " + ", speeds with " / ", first
// occurrence wins on duplicates. Returns nil when no source shot carries a
// camera type, in which case the strongest match keeps its camera as is.
func combineCameras(shots []*domain.Shot) *domain.CameraMovement {
	var types, speeds, durations []string
	for _, s := range shots {
		if s.CameraMovement == nil {
			continue
		}
		if s.CameraMovement.Type != "" {
			types = appendUnique(types, s.CameraMovement.Type)
		}
		if s.CameraMovement.Speed != "" {
			speeds = appendUnique(speeds, s.CameraMovement.Speed)
		}
		if s.CameraMovement.Duration != "" {
			durations = appendUnique(durations, s.CameraMovement.Duration)
		}
	}
	if len(types) == 0 {
		return nil
	}
	return &domain.CameraMovement{
		Type:     strings.Join(types, " + "),
		Speed:    strings.Join(speeds, " / "),
		Duration: strings.Join(durations, " + "),
	}
}

func appendUnique(list []string, v string) []string {
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}
