/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export writes production documents to external formats: pretty
// JSON files with stage-dependent names and a shot-list PDF.
package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"filmstage/internal/domain"
	applog "filmstage/internal/log"
)

// FileName derives the download name for a document. Stage 1 files are named
// after the film id and current step; stage 2 files after the first scene id.
func FileName(doc *domain.Document) string {
	if doc == nil {
		return "document.json"
	}
	if doc.Stage == domain.StageTwo {
		base := "stage2"
		if doc.Two != nil && len(doc.Two.Scenes) > 0 && doc.Two.Scenes[0].SceneID != "" {
			base = doc.Two.Scenes[0].SceneID
		}
		return base + "_edited.json"
	}
	film := doc.FilmID()
	if film == "" {
		film = "film"
	}
	step := doc.CurrentStep()
	if step == "" {
		step = "draft"
	}
	return fmt.Sprintf("%s_%s.json", film, step)
}

// WriteDocument writes the document as indented JSON into dir using the
// stage-dependent file name and returns the full path.
func WriteDocument(dir string, doc *domain.Document) (string, error) {
	l := applog.WithOperation(applog.WithComponent("export"), "write_json")
	if doc == nil {
		return "", fmt.Errorf("document is nil")
	}
	if strings.TrimSpace(dir) == "" {
		return "", fmt.Errorf("output directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	data, err := domain.MarshalDocument(doc)
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}
	path := filepath.Join(dir, FileName(doc))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		l.Error("write failed", slog.String("path", path), slog.Any("err", err))
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	l.Info("document exported", slog.String("path", path))
	return path, nil
}
