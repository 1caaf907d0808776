/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package crash

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"filmstage/internal/domain"
	"filmstage/internal/storage"
)

// TestRecoverWritesReportAndSnapshot ensures Recover handles a panic, writes
// a report, attempts autosave, and does not terminate the test process due to
// the injected exitFn.
func TestRecoverWritesReportAndSnapshot(t *testing.T) {
	// Capture stderr temporarily to avoid noisy test logs
	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w
	defer func() {
		_ = w.Close()
		os.Stderr = oldStderr
		_, _ = io.Copy(os.Stderr, r) // drain pipe
	}()

	// Override exitFn to avoid os.Exit during test and to assert it was called
	called := 0
	oldExit := exitFn
	exitFn = func(code int) { called = code }
	defer func() { exitFn = oldExit }()

	root := t.TempDir()
	doc, err := domain.FromStage1(&domain.Stage1Document{
		FilmID:      "FILM_123456",
		CurrentStep: domain.StepSynopsisPlanning,
		Timestamp:   "2026-01-01T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("build document: %v", err)
	}
	ws := &storage.Workspace{
		Root:         root,
		ManifestPath: filepath.Join(root, storage.ManifestFileName),
		Doc:          doc,
	}

	func() {
		defer Recover(ws)
		panic("boom")
	}()

	// Allow time for filesystem writes
	time.Sleep(50 * time.Millisecond)

	bdir := filepath.Join(root, storage.BackupsDirName)
	files, _ := os.ReadDir(bdir)
	var report, snapshot string
	for _, f := range files {
		switch {
		case strings.HasPrefix(f.Name(), "crash-") && strings.HasSuffix(f.Name(), ".log"):
			report = filepath.Join(bdir, f.Name())
		case strings.HasPrefix(f.Name(), "crash-") && strings.HasSuffix(f.Name(), ".json"):
			snapshot = filepath.Join(bdir, f.Name())
		}
	}
	if report == "" {
		t.Fatalf("expected crash report file under backups dir")
	}
	if snapshot == "" {
		t.Fatalf("expected crash snapshot under backups dir")
	}
	b, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !bytes.Contains(b, []byte("Panic: boom")) {
		t.Fatalf("report does not contain panic: %s", string(b))
	}

	if called != 2 {
		t.Fatalf("expected exit code 2, got %d", called)
	}
}

func TestRecoverNoPanicIsNoop(t *testing.T) {
	oldExit := exitFn
	exitFn = func(code int) { t.Fatalf("exitFn called without panic") }
	defer func() { exitFn = oldExit }()

	func() {
		defer Recover(nil)
	}()
}
