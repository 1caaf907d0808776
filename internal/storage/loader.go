/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"filmstage/internal/domain"
	"filmstage/internal/merge"
	"filmstage/internal/parse"
)

// LoadedFile is one input file read from disk and parsed, successfully or
// not. Diagnostics carry parse findings; Err is set only for read failures.
type LoadedFile struct {
	ID          string
	Name        string
	Path        string
	FilmID      string
	Kind        merge.Kind
	Doc         *domain.Document
	Diagnostics []domain.Diagnostic
	AutoFixed   bool
	Err         error
}

// ReadFiles reads and parses all paths concurrently. Results come back in
// input order regardless of which file finished first. Fenced or otherwise
// decorated content is salvaged down to its outermost JSON object before
// parsing.
func ReadFiles(paths []string) []LoadedFile {
	out := make([]LoadedFile, len(paths))
	var wg sync.WaitGroup
	for i, p := range paths {
		wg.Add(1)
		go func(i int, p string) {
			defer wg.Done()
			out[i] = readFile(p)
		}(i, p)
	}
	wg.Wait()
	return out
}

func readFile(path string) LoadedFile {
	lf := LoadedFile{
		ID:     uuid.NewString(),
		Name:   filepath.Base(path),
		Path:   path,
		FilmID: "UNKNOWN",
		Kind:   merge.KindUnknown,
	}
	b, err := os.ReadFile(path)
	if err != nil {
		lf.Err = err
		return lf
	}
	res := parse.Parse(parse.Salvage(string(b)))
	lf.Diagnostics = res.Diagnostics
	lf.AutoFixed = res.AutoFixed
	if !res.Valid {
		return lf
	}
	lf.Doc = res.Doc
	if id := res.Doc.FilmID(); id != "" {
		lf.FilmID = id
	}
	lf.Kind = merge.Classify(res.Doc)
	return lf
}

// MergeInputs converts successfully parsed files into merge inputs,
// preserving order.
func MergeInputs(files []LoadedFile) []merge.File {
	var out []merge.File
	for _, f := range files {
		if f.Doc == nil {
			continue
		}
		out = append(out, merge.File{ID: f.ID, Name: f.Name, Doc: f.Doc})
	}
	return out
}
