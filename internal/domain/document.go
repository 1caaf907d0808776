/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Stage identifies which pipeline stage a document belongs to.
type Stage int

const (
	StageUnknown Stage = iota
	StageOne
	StageTwo
)

func (s Stage) String() string {
	switch s {
	case StageOne:
		return "stage 1"
	case StageTwo:
		return "stage 2"
	default:
		return "unknown"
	}
}

// Document is a parsed pipeline document. Raw holds the generic decoded tree
// and RootKeys the top level keys in source order; both are kept so the
// validator can report on documents the typed decode rejects. Exactly one of
// One and Two is set when the typed decode succeeded.
type Document struct {
	Stage    Stage
	Raw      map[string]any
	RootKeys []string
	One      *Stage1Document
	Two      *Stage2Document
}

// FilmID returns the document's film id, or the empty string when absent or
// not a string.
func (d *Document) FilmID() string {
	if d == nil || d.Raw == nil {
		return ""
	}
	id, _ := d.Raw["film_id"].(string)
	return id
}

// CurrentStep returns the document's current_step value, or the empty string.
func (d *Document) CurrentStep() Step {
	if d == nil || d.Raw == nil {
		return ""
	}
	s, _ := d.Raw["current_step"].(string)
	return Step(s)
}

// MarshalDocument renders the typed document as indented JSON with a trailing
// newline, the on-disk format of the pipeline.
func MarshalDocument(d *Document) ([]byte, error) {
	var v any
	switch {
	case d == nil:
		return nil, errors.New("domain: nil document")
	case d.One != nil:
		v = d.One
	case d.Two != nil:
		v = d.Two
	default:
		return nil, errors.New("domain: document has no typed form")
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// FromStage1 wraps a typed stage 1 document into a Document, rebuilding the
// raw tree so validation sees the current state.
func FromStage1(one *Stage1Document) (*Document, error) {
	b, err := json.Marshal(one)
	if err != nil {
		return nil, fmt.Errorf("domain: encode stage 1: %w", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	return &Document{Stage: StageOne, Raw: raw, RootKeys: RootKeys(b), One: one}, nil
}

// FromStage2 wraps a typed stage 2 document into a Document.
func FromStage2(two *Stage2Document) (*Document, error) {
	b, err := json.Marshal(two)
	if err != nil {
		return nil, fmt.Errorf("domain: encode stage 2: %w", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	return &Document{Stage: StageTwo, Raw: raw, RootKeys: RootKeys(b), Two: two}, nil
}

// RootKeys scans a JSON object and returns its top level keys in source
// order. A nil slice is returned when data is not a JSON object.
func RootKeys(data []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil
	}
	var keys []string
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return keys
		}
		key, ok := kt.(string)
		if !ok {
			return keys
		}
		keys = append(keys, key)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return keys
		}
	}
	return keys
}

// CloneStage1 deep copies a stage 1 document via its JSON form.
func CloneStage1(d *Stage1Document) *Stage1Document {
	if d == nil {
		return nil
	}
	b, _ := json.Marshal(d)
	out := &Stage1Document{}
	_ = json.Unmarshal(b, out)
	return out
}

// CloneStage2 deep copies a stage 2 document via its JSON form.
func CloneStage2(d *Stage2Document) *Stage2Document {
	if d == nil {
		return nil
	}
	b, _ := json.Marshal(d)
	out := &Stage2Document{}
	_ = json.Unmarshal(b, out)
	return out
}

// CloneShot deep copies a single shot.
func CloneShot(s Shot) Shot {
	b, _ := json.Marshal(s)
	var out Shot
	_ = json.Unmarshal(b, &out)
	return out
}

// CloneShots deep copies a shot slice.
func CloneShots(shots []Shot) []Shot {
	out := make([]Shot, len(shots))
	for i, s := range shots {
		out[i] = CloneShot(s)
	}
	return out
}
