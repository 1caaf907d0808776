/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package session holds one loaded document and the editing state layered on
// top of it: per-scene restore points, shot change statuses from the last
// scenario edit, and per-shot modification requests. Statuses and requests
// are working state only and never reach the serialized document.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"filmstage/internal/domain"
	"filmstage/internal/reconcile"
	"filmstage/internal/validate"
)

// ErrNoDocument is returned by operations that need a loaded document.
var ErrNoDocument = errors.New("session: no document loaded")

// ErrImportDeclined is returned when a scene import targets a different
// scene and the caller's confirm callback rejected the overwrite.
var ErrImportDeclined = errors.New("session: import declined")

// Session is an editing session over one document. All methods are safe for
// concurrent use.
type Session struct {
	mu       sync.Mutex
	doc      *domain.Document
	warnings []string
	diags    []domain.Diagnostic
	restore  map[string][]domain.Shot
	statuses map[string]domain.ShotStatus
	requests map[string]string
}

// New returns an empty session.
func New() *Session {
	return &Session{
		restore:  map[string][]domain.Shot{},
		statuses: map[string]domain.ShotStatus{},
		requests: map[string]string{},
	}
}

// Load replaces the session content with doc. Warnings from merging are kept
// for display, all transient state is dropped, and stage 2 scenes get a
// restore point at their loaded shot lists.
func (s *Session) Load(doc *domain.Document, warnings []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	s.warnings = append([]string(nil), warnings...)
	s.restore = map[string][]domain.Shot{}
	s.statuses = map[string]domain.ShotStatus{}
	s.requests = map[string]string{}
	if doc != nil && doc.Two != nil {
		for _, sc := range doc.Two.Scenes {
			s.restore[sc.SceneID] = domain.CloneShots(sc.Shots)
		}
	}
	s.revalidateLocked()
}

func (s *Session) revalidateLocked() {
	s.diags = validate.Document(s.doc)
}

// Document returns the current document.
func (s *Session) Document() *domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Warnings returns the merge warnings recorded at load time.
func (s *Session) Warnings() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.warnings...)
}

// Diagnostics returns the validation findings for the current document
// state.
func (s *Session) Diagnostics() []domain.Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Diagnostic(nil), s.diags...)
}

// ScenarioText returns the editable scenario text of a scene: the shot texts
// joined with newlines.
func (s *Session) ScenarioText(sceneID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	scene, err := s.sceneLocked(sceneID)
	if err != nil {
		return "", err
	}
	texts := make([]string, 0, len(scene.Shots))
	for _, sh := range scene.Shots {
		texts = append(texts, sh.ShotText)
	}
	return strings.Join(texts, "\n"), nil
}

// ApplyScenarioEdit rebuilds a scene's shots from edited scenario text and
// records the resulting change statuses. The returned reshots mirror the new
// shot list.
func (s *Session) ApplyScenarioEdit(sceneID, edited string) ([]reconcile.Reshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	scene, err := s.sceneLocked(sceneID)
	if err != nil {
		return nil, err
	}
	reshots := reconcile.Rework(scene, edited)
	shots := make([]domain.Shot, len(reshots))
	s.clearSceneStateLocked(sceneID)
	for i, r := range reshots {
		shots[i] = r.Shot
		s.statuses[r.Shot.ShotID] = r.Status
	}
	scene.Shots = shots
	if err := s.refreshLocked(); err != nil {
		return nil, err
	}
	return reshots, nil
}

// ResetScene restores a scene's shots to the state captured at load time and
// clears its transient state.
func (s *Session) ResetScene(sceneID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	scene, err := s.sceneLocked(sceneID)
	if err != nil {
		return err
	}
	saved, ok := s.restore[sceneID]
	if !ok {
		return fmt.Errorf("session: no restore point for scene %s", sceneID)
	}
	scene.Shots = domain.CloneShots(saved)
	s.clearSceneStateLocked(sceneID)
	return s.refreshLocked()
}

// ImportScene replaces one scene from standalone scene JSON. The payload
// must carry a scene_id and a shots array. When its id differs from the
// targeted scene, confirm decides whether the overwrite proceeds; the
// imported scene keeps its own id in that case.
func (s *Session) ImportScene(sceneID, payload string, confirm func(got, want string) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	scene, err := s.sceneLocked(sceneID)
	if err != nil {
		return err
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return fmt.Errorf("session: scene JSON invalid: %w", err)
	}
	if id, _ := raw["scene_id"].(string); id == "" {
		return errors.New("session: scene JSON has no scene_id")
	}
	if _, ok := raw["shots"].([]any); !ok {
		return errors.New("session: scene JSON has no shots array")
	}
	var imported domain.Scene
	if err := json.Unmarshal([]byte(payload), &imported); err != nil {
		return fmt.Errorf("session: scene JSON invalid: %w", err)
	}

	if imported.SceneID != sceneID {
		if confirm == nil || !confirm(imported.SceneID, sceneID) {
			return ErrImportDeclined
		}
	}
	s.clearSceneStateLocked(sceneID)
	*scene = imported
	return s.refreshLocked()
}

// SetRequest stores a per-shot modification request; an empty text removes
// it.
func (s *Session) SetRequest(shotID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if text == "" {
		delete(s.requests, shotID)
		return
	}
	s.requests[shotID] = text
}

// Requests returns a copy of the per-shot modification requests.
func (s *Session) Requests() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.requests))
	for k, v := range s.requests {
		out[k] = v
	}
	return out
}

// Statuses returns a copy of the shot change statuses from the last edit.
func (s *Session) Statuses() map[string]domain.ShotStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]domain.ShotStatus, len(s.statuses))
	for k, v := range s.statuses {
		out[k] = v
	}
	return out
}

// Export returns the current document for serialization and drops the
// transient editing state, which has no place in the saved file.
func (s *Session) Export() (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return nil, ErrNoDocument
	}
	s.statuses = map[string]domain.ShotStatus{}
	s.requests = map[string]string{}
	return s.doc, nil
}

// sceneLocked resolves a stage 2 scene by id.
func (s *Session) sceneLocked(sceneID string) (*domain.Scene, error) {
	if s.doc == nil {
		return nil, ErrNoDocument
	}
	if s.doc.Two == nil {
		return nil, errors.New("session: document has no scenes")
	}
	scene := s.doc.Two.SceneByID(sceneID)
	if scene == nil {
		return nil, fmt.Errorf("session: scene %s not found", sceneID)
	}
	return scene, nil
}

// clearSceneStateLocked drops statuses and requests belonging to a scene.
// Shot ids are prefixed by their scene id, in both the two and three segment
// forms.
func (s *Session) clearSceneStateLocked(sceneID string) {
	prefix := sceneID + "."
	for id := range s.statuses {
		if strings.HasPrefix(id, prefix) {
			delete(s.statuses, id)
		}
	}
	for id := range s.requests {
		if strings.HasPrefix(id, prefix) {
			delete(s.requests, id)
		}
	}
}

// refreshLocked rebuilds the raw tree after a typed mutation and
// revalidates.
func (s *Session) refreshLocked() error {
	doc, err := domain.FromStage2(s.doc.Two)
	if err != nil {
		return err
	}
	s.doc = doc
	s.revalidateLocked()
	return nil
}
