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
	"fmt"
)

// BlockEntry is a single key/value pair inside a Blocks mapping.
type BlockEntry struct {
	Key   string
	Value string
}

// Blocks is an ordered string-to-string mapping. JSON objects in the source
// documents carry descriptive keys whose order is meaningful for prompt
// generation, so a plain map will not do: marshaling must reproduce the keys
// in the order they were read.
type Blocks struct {
	Entries []BlockEntry
}

// Len reports the number of entries.
func (b Blocks) Len() int { return len(b.Entries) }

// Get returns the value stored under key and whether the key is present.
func (b Blocks) Get(key string) (string, bool) {
	for _, e := range b.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// Set replaces the value for key in place, or appends a new entry when the
// key is not present yet.
func (b *Blocks) Set(key, value string) {
	for i := range b.Entries {
		if b.Entries[i].Key == key {
			b.Entries[i].Value = value
			return
		}
	}
	b.Entries = append(b.Entries, BlockEntry{Key: key, Value: value})
}

// MarshalJSON writes the entries as a JSON object in insertion order.
func (b Blocks) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range b.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, preserving key order. Values must be
// strings; anything else is a type error surfaced to the caller.
func (b *Blocks) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("blocks: expected object, got %v", tok)
	}
	b.Entries = nil
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := kt.(string)
		if !ok {
			return fmt.Errorf("blocks: invalid key %v", kt)
		}
		var val string
		if err := dec.Decode(&val); err != nil {
			return fmt.Errorf("blocks: value for %q: %w", key, err)
		}
		b.Entries = append(b.Entries, BlockEntry{Key: key, Value: val})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
