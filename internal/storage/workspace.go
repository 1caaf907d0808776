/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"filmstage/internal/domain"
	"filmstage/internal/parse"
)

const (
	ManifestFileName = "film.json"
	BackupsDirName   = "backups"
)

var standardSubDirs = []string{
	"exports",
	"incoming",
	BackupsDirName,
}

// Workspace tracks a film workspace loaded from or saved to disk.
// Root is the directory containing film.json and the standard subfolders.
type Workspace struct {
	Root         string
	ManifestPath string
	Doc          *domain.Document
}

// Init creates a workspace directory at root, scaffolds the standard
// subfolders, and writes the document as its manifest.
func Init(root string, doc *domain.Document) (*Workspace, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("root path is required")
	}
	if doc == nil {
		return nil, errors.New("document is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace root: %w", err)
	}
	for _, d := range standardSubDirs {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			return nil, fmt.Errorf("create subdir %s: %w", d, err)
		}
	}
	ws := &Workspace{
		Root:         root,
		ManifestPath: filepath.Join(root, ManifestFileName),
		Doc:          doc,
	}
	if err := Save(ws); err != nil {
		return nil, err
	}
	return ws, nil
}

// Open loads the workspace manifest at root. If the current manifest cannot
// be read or decoded, the latest timestamped backup is tried.
func Open(root string) (*Workspace, error) {
	mpath := filepath.Join(root, ManifestFileName)
	b, err := os.ReadFile(mpath)
	if err != nil {
		doc, berr := openFromLatestBackup(root)
		if berr != nil {
			return nil, fmt.Errorf("open manifest: %w; backup attempt: %v", err, berr)
		}
		return &Workspace{Root: root, ManifestPath: mpath, Doc: doc}, nil
	}
	doc, err := parse.Decode(string(b))
	if err != nil {
		bdoc, berr := openFromLatestBackup(root)
		if berr != nil {
			return nil, fmt.Errorf("decode manifest: %w; backup attempt: %v", err, berr)
		}
		return &Workspace{Root: root, ManifestPath: mpath, Doc: bdoc}, nil
	}
	return &Workspace{Root: root, ManifestPath: mpath, Doc: doc}, nil
}

// Save writes the manifest transactionally: temp file plus rename, with a
// timestamped backup of the previous manifest when one exists.
func Save(ws *Workspace) error {
	if ws == nil {
		return errors.New("nil Workspace")
	}
	if ws.Root == "" || ws.ManifestPath == "" {
		return errors.New("invalid Workspace: missing paths")
	}
	data, err := domain.MarshalDocument(ws.Doc)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	bdir := filepath.Join(ws.Root, BackupsDirName)
	if err := os.MkdirAll(bdir, 0o755); err != nil {
		return fmt.Errorf("ensure backups dir: %w", err)
	}
	if _, statErr := os.Stat(ws.ManifestPath); statErr == nil {
		stamp := time.Now().Format("20060102-150405")
		bname := fmt.Sprintf("%s.%s.bak", ManifestFileName, stamp)
		if cerr := copyFile(ws.ManifestPath, filepath.Join(bdir, bname)); cerr != nil {
			return fmt.Errorf("backup current manifest: %w", cerr)
		}
	}

	dir := filepath.Dir(ws.ManifestPath)
	temp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d-%d", ManifestFileName, os.Getpid(), rand.Int()))
	if werr := writeFileSync(temp, data); werr != nil {
		return fmt.Errorf("write temp manifest: %w", werr)
	}
	// replace by removing destination first so the rename works on Windows
	if _, err := os.Stat(ws.ManifestPath); err == nil {
		_ = os.Remove(ws.ManifestPath)
	}
	if rerr := os.Rename(temp, ws.ManifestPath); rerr != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("replace manifest: %w", rerr)
	}
	return nil
}

// SaveAs writes the manifest under a new root, scaffolding the workspace
// structure there, and points the handle at it.
func SaveAs(ws *Workspace, newRoot string) error {
	if ws == nil {
		return errors.New("nil Workspace")
	}
	if newRoot == "" {
		return errors.New("new root is empty")
	}
	if err := os.MkdirAll(newRoot, 0o755); err != nil {
		return fmt.Errorf("create new root: %w", err)
	}
	for _, d := range standardSubDirs {
		if err := os.MkdirAll(filepath.Join(newRoot, d), 0o755); err != nil {
			return fmt.Errorf("create subdir %s: %w", d, err)
		}
	}
	ws.Root = newRoot
	ws.ManifestPath = filepath.Join(newRoot, ManifestFileName)
	return Save(ws)
}

// AutosaveCrashSnapshot writes the in-memory document to a crash snapshot
// under the backups directory and returns its path. Used by the crash
// handler, so it must not touch the manifest itself.
func AutosaveCrashSnapshot(ws *Workspace) (string, error) {
	if ws == nil || ws.Doc == nil {
		return "", errors.New("no document to snapshot")
	}
	data, err := domain.MarshalDocument(ws.Doc)
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	bdir := filepath.Join(ws.Root, BackupsDirName)
	if err := os.MkdirAll(bdir, 0o755); err != nil {
		return "", fmt.Errorf("ensure backups dir: %w", err)
	}
	stamp := time.Now().Format("20060102-150405.000000000")
	path := filepath.Join(bdir, fmt.Sprintf("crash-%s.json", stamp))
	if err := writeFileSync(path, data); err != nil {
		return "", fmt.Errorf("write crash snapshot: %w", err)
	}
	return path, nil
}

// writeFileSync writes data to a file and flushes it to disk.
func writeFileSync(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := f.Write(data); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return err
	}
	return nil
}

// copyFile copies src to dst, overwriting dst if it exists.
func copyFile(src, dst string) (err error) {
	sf, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sf.Close(); err == nil {
			err = cerr
		}
	}()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	df, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := df.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := io.Copy(df, sf); err != nil {
		return err
	}
	if err := df.Sync(); err != nil {
		return err
	}
	return nil
}

// openFromLatestBackup decodes the newest timestamped manifest backup.
func openFromLatestBackup(root string) (*domain.Document, error) {
	bdir := filepath.Join(root, BackupsDirName)
	ents, err := os.ReadDir(bdir)
	if err != nil {
		return nil, fmt.Errorf("read backups dir: %w", err)
	}
	var candidates []string
	for _, e := range ents {
		name := e.Name()
		if strings.HasPrefix(name, ManifestFileName+".") && strings.HasSuffix(name, ".bak") {
			candidates = append(candidates, filepath.Join(bdir, name))
		}
	}
	if len(candidates) == 0 {
		return nil, errors.New("no backups found")
	}
	sort.Strings(candidates) // timestamp in name yields lexicographic order
	latest := candidates[len(candidates)-1]
	b, err := os.ReadFile(latest)
	if err != nil {
		return nil, fmt.Errorf("read latest backup: %w", err)
	}
	doc, err := parse.Decode(string(b))
	if err != nil {
		return nil, fmt.Errorf("decode latest backup: %w", err)
	}
	return doc, nil
}
