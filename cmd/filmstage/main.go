/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"filmstage/internal/backend"
	"filmstage/internal/crash"
	"filmstage/internal/domain"
	"filmstage/internal/export"
	applog "filmstage/internal/log"
	"filmstage/internal/merge"
	"filmstage/internal/parse"
	"filmstage/internal/prompt"
	"filmstage/internal/reconcile"
	"filmstage/internal/session"
	"filmstage/internal/storage"
	"filmstage/internal/validate"
	"filmstage/internal/version"
)

func usage() {
	fmt.Println("FilmStage — two-stage film production document toolkit")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  filmstage version|-v|--version              Show version")
	fmt.Println("  filmstage validate <file>                   Parse and validate a document")
	fmt.Println("  filmstage fix <file> [<out>]                Apply auto-fix heuristics and write the result")
	fmt.Println("  filmstage merge <out> <file>...             Merge documents into <out>")
	fmt.Println("  filmstage reshot <file> <scene> <textfile>  Rework a scene's shots from edited scenario text")
	fmt.Println("  filmstage import-scene [--force] <file> <scene> <payload>  Replace one scene from a payload file")
	fmt.Println("  filmstage prompt <file> [<scene>]           Print a correction or scene direction prompt")
	fmt.Println("  filmstage export <file> <dir> [--pdf <out>] Export a document as JSON (and optionally PDF)")
	fmt.Println("  filmstage init <dir> <file>                 Create a workspace at <dir> from a document")
	fmt.Println("  filmstage open <dir>                        Open a workspace and print a summary")
	fmt.Println("  filmstage save <dir>                        Save the workspace manifest (creates backup)")
	fmt.Println("  filmstage index <dir>                       Rebuild the workspace search index")
	fmt.Println("  filmstage search <dir> <query> [scene] [type]  Search the workspace index")
	fmt.Println("  filmstage serve                             Run the sharing server")
}

func main() {
	// initialize structured logging using environment defaults
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	var ws *storage.Workspace
	defer func() { crash.Recover(ws) }()

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) < 2 {
		usage()
		return
	}

	switch args[1] {
	case "version", "--version", "-v":
		fmt.Println("FilmStage", version.String())
	case "validate":
		requireArgs(args, 3, "validate requires <file>")
		os.Exit(cmdValidate(args[2]))
	case "fix":
		requireArgs(args, 3, "fix requires <file>")
		out := ""
		if len(args) > 3 {
			out = args[3]
		}
		os.Exit(cmdFix(args[2], out))
	case "merge":
		requireArgs(args, 4, "merge requires <out> and at least one <file>")
		os.Exit(cmdMerge(args[2], args[3:]))
	case "reshot":
		requireArgs(args, 5, "reshot requires <file> <scene> <textfile>")
		os.Exit(cmdReshot(args[2], args[3], args[4]))
	case "import-scene":
		rest := args[2:]
		force := false
		if len(rest) > 0 && rest[0] == "--force" {
			force = true
			rest = rest[1:]
		}
		if len(rest) < 3 {
			fmt.Println("import-scene requires <file> <scene> <payload>")
			usage()
			os.Exit(2)
		}
		os.Exit(cmdImportScene(rest[0], rest[1], rest[2], force))
	case "prompt":
		requireArgs(args, 3, "prompt requires <file>")
		scene := ""
		if len(args) > 3 {
			scene = args[3]
		}
		os.Exit(cmdPrompt(args[2], scene))
	case "export":
		requireArgs(args, 4, "export requires <file> and <dir>")
		pdfOut := ""
		if len(args) > 5 && args[4] == "--pdf" {
			pdfOut = args[5]
		}
		os.Exit(cmdExport(args[2], args[3], pdfOut))
	case "init":
		requireArgs(args, 4, "init requires <dir> and <file>")
		h, code := cmdInit(args[2], args[3])
		ws = h
		os.Exit(code)
	case "open":
		requireArgs(args, 3, "open requires <dir>")
		h, code := cmdOpen(args[2])
		ws = h
		os.Exit(code)
	case "save":
		requireArgs(args, 3, "save requires <dir>")
		h, code := cmdSave(args[2])
		ws = h
		os.Exit(code)
	case "index":
		requireArgs(args, 3, "index requires <dir>")
		os.Exit(cmdIndex(args[2]))
	case "search":
		requireArgs(args, 4, "search requires <dir> and <query>")
		scene, typ := "", ""
		if len(args) > 4 {
			scene = args[4]
		}
		if len(args) > 5 {
			typ = args[5]
		}
		os.Exit(cmdSearch(args[2], args[3], scene, typ))
	case "serve":
		if err := backend.Start(); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func requireArgs(args []string, n int, msg string) {
	if len(args) < n {
		fmt.Println(msg)
		usage()
		os.Exit(2)
	}
}

func loadDocument(path string) (*domain.Document, parse.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, parse.Result{}, fmt.Errorf("read %s: %w", path, err)
	}
	res := parse.Parse(string(data))
	return res.Doc, res, nil
}

func printDiagnostics(diags []domain.Diagnostic) {
	for _, d := range diags {
		loc := d.Path
		if d.Line > 0 {
			loc = fmt.Sprintf("%s (line %d)", d.Path, d.Line)
		}
		fmt.Printf("%-7s %-8s %s: %s\n", d.Severity, d.Category, loc, d.Message)
		if d.Suggestion != "" {
			fmt.Printf("        suggestion: %s\n", d.Suggestion)
		}
	}
}

func cmdValidate(path string) int {
	doc, res, err := loadDocument(path)
	if err != nil {
		fmt.Println("Error:", err)
		return 1
	}
	diags := res.Diagnostics
	if doc != nil {
		diags = append(diags, validate.Document(doc)...)
	}
	printDiagnostics(diags)
	nErr, nWarn, nInfo := domain.CountBySeverity(diags)
	fmt.Printf("%d error(s), %d warning(s), %d info\n", nErr, nWarn, nInfo)
	if domain.HasErrors(diags) {
		return 1
	}
	return 0
}

func cmdFix(path, out string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Println("Error:", err)
		return 1
	}
	res := parse.Parse(string(data))
	if !res.AutoFixed {
		if res.Doc != nil {
			fmt.Println("No fixes needed.")
			return 0
		}
		fmt.Println("Document could not be repaired:")
		printDiagnostics(res.Diagnostics)
		return 1
	}
	for _, f := range res.Fixes {
		fmt.Println("fixed:", f)
	}
	if out == "" {
		out = path
	}
	if err := os.WriteFile(out, []byte(res.FixedText), 0o644); err != nil {
		fmt.Println("Error:", err)
		return 1
	}
	fmt.Println("Wrote", out)
	return 0
}

func cmdMerge(out string, paths []string) int {
	files := storage.ReadFiles(paths)
	for _, f := range files {
		if f.Err != nil {
			fmt.Printf("%s: %v\n", f.Name, f.Err)
			return 1
		}
	}
	res := merge.Merge(storage.MergeInputs(files))
	for _, w := range res.Warnings {
		fmt.Println("warning:", w)
	}
	for _, e := range res.Errors {
		fmt.Println("error:", e)
	}
	if res.Merged == nil {
		return 1
	}
	data, err := domain.MarshalDocument(res.Merged)
	if err != nil {
		fmt.Println("Error:", err)
		return 1
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		fmt.Println("Error:", err)
		return 1
	}
	fmt.Println("Merged", len(paths), "file(s) into", out)
	return 0
}

func cmdReshot(path, sceneID, textPath string) int {
	doc, res, err := loadDocument(path)
	if err != nil {
		fmt.Println("Error:", err)
		return 1
	}
	if doc == nil || doc.Two == nil {
		fmt.Println("Error: not a stage 2 document")
		printDiagnostics(res.Diagnostics)
		return 1
	}
	scene := doc.Two.SceneByID(sceneID)
	if scene == nil {
		fmt.Printf("Error: scene %s not found\n", sceneID)
		return 1
	}
	edited, err := os.ReadFile(textPath)
	if err != nil {
		fmt.Println("Error:", err)
		return 1
	}
	reshots := reconcile.Rework(scene, string(edited))
	scene.Shots = make([]domain.Shot, 0, len(reshots))
	for _, r := range reshots {
		scene.Shots = append(scene.Shots, r.Shot)
		status := r.Status
		if status == domain.StatusNone {
			status = "kept"
		}
		fmt.Printf("%-12s %s  %s\n", status, r.Shot.ShotID, r.Shot.ShotText)
	}
	updated, err := domain.FromStage2(doc.Two)
	if err != nil {
		fmt.Println("Error:", err)
		return 1
	}
	data, err := domain.MarshalDocument(updated)
	if err != nil {
		fmt.Println("Error:", err)
		return 1
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Println("Error:", err)
		return 1
	}
	fmt.Printf("Rewrote %d shot(s) in %s\n", len(reshots), sceneID)
	return 0
}

func cmdImportScene(path, sceneID, payloadPath string, force bool) int {
	doc, res, err := loadDocument(path)
	if err != nil {
		fmt.Println("Error:", err)
		return 1
	}
	if doc == nil {
		fmt.Println("Error: document could not be parsed")
		printDiagnostics(res.Diagnostics)
		return 1
	}
	payload, err := os.ReadFile(payloadPath)
	if err != nil {
		fmt.Println("Error:", err)
		return 1
	}
	sess := session.New()
	sess.Load(doc, nil)
	err = sess.ImportScene(sceneID, string(payload), func(got, want string) bool {
		if force {
			return true
		}
		fmt.Printf("payload is for scene %s, expected %s; use --force to import anyway\n", got, want)
		return false
	})
	if err != nil {
		fmt.Println("Error:", err)
		return 1
	}
	out, err := sess.Export()
	if err != nil {
		fmt.Println("Error:", err)
		return 1
	}
	data, err := domain.MarshalDocument(out)
	if err != nil {
		fmt.Println("Error:", err)
		return 1
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Println("Error:", err)
		return 1
	}
	fmt.Println("Imported scene", sceneID)
	return 0
}

func cmdPrompt(path, sceneID string) int {
	doc, res, err := loadDocument(path)
	if err != nil {
		fmt.Println("Error:", err)
		return 1
	}
	diags := res.Diagnostics
	if doc != nil {
		diags = append(diags, validate.Document(doc)...)
	}
	if sceneID == "" {
		label := "stage 1"
		if doc != nil && doc.Stage == domain.StageTwo {
			label = "stage 2"
		}
		fmt.Println(prompt.CorrectionRequest(label, diags))
		return 0
	}
	if doc == nil || doc.Two == nil {
		fmt.Println("Error: scene prompts need a stage 2 document")
		return 1
	}
	scene := doc.Two.SceneByID(sceneID)
	if scene == nil {
		fmt.Printf("Error: scene %s not found\n", sceneID)
		return 1
	}
	fmt.Println(prompt.SceneDirection(sceneID, scene.Shots, nil, nil))
	return 0
}

func cmdExport(path, dir, pdfOut string) int {
	doc, res, err := loadDocument(path)
	if err != nil {
		fmt.Println("Error:", err)
		return 1
	}
	if doc == nil {
		fmt.Println("Error: document could not be parsed")
		printDiagnostics(res.Diagnostics)
		return 1
	}
	out, err := export.WriteDocument(dir, doc)
	if err != nil {
		fmt.Println("Error:", err)
		return 1
	}
	fmt.Println("Wrote", out)
	if pdfOut != "" {
		if err := export.ExportShotListPDF(doc, pdfOut, export.PDFOptions{WithCamera: true}); err != nil {
			fmt.Println("Error:", err)
			return 1
		}
		fmt.Println("Wrote", pdfOut)
	}
	return 0
}

func cmdInit(dir, docPath string) (*storage.Workspace, int) {
	doc, res, err := loadDocument(docPath)
	if err != nil {
		fmt.Println("Error:", err)
		return nil, 1
	}
	if doc == nil {
		fmt.Println("Error: document could not be parsed")
		printDiagnostics(res.Diagnostics)
		return nil, 1
	}
	abs, _ := filepath.Abs(dir)
	ws, err := storage.Init(abs, doc)
	if err != nil {
		fmt.Println("Error:", err)
		return nil, 1
	}
	if err := storage.RebuildIndex(context.Background(), abs, doc); err != nil {
		fmt.Println("Warning: index build failed:", err)
	}
	fmt.Println("Created workspace at", abs)
	return ws, 0
}

func cmdOpen(dir string) (*storage.Workspace, int) {
	abs, _ := filepath.Abs(dir)
	ws, err := storage.Open(abs)
	if err != nil {
		fmt.Println("Error:", err)
		return nil, 1
	}
	doc := ws.Doc
	fmt.Printf("Opened film %s (%s, step %s)\n", doc.FilmID(), doc.Stage, doc.CurrentStep())
	if doc.Two != nil {
		shots := 0
		for _, sc := range doc.Two.Scenes {
			shots += len(sc.Shots)
		}
		fmt.Printf("Scenes: %d, shots: %d\n", len(doc.Two.Scenes), shots)
	}
	fmt.Println("Root:", ws.Root)
	if _, err := storage.DetectAndRebuildIndex(context.Background(), abs, doc); err != nil {
		fmt.Println("Warning: index check failed:", err)
	}
	return ws, 0
}

func cmdSave(dir string) (*storage.Workspace, int) {
	abs, _ := filepath.Abs(dir)
	ws, err := storage.Open(abs)
	if err != nil {
		fmt.Println("Error:", err)
		return nil, 1
	}
	if err := storage.Save(ws); err != nil {
		fmt.Println("Error:", err)
		return ws, 1
	}
	if err := storage.UpdateIndex(context.Background(), abs, ws.Doc); err != nil {
		fmt.Println("Warning: index update failed:", err)
	}
	fmt.Println("Saved manifest and created a backup of the previous version (if any).")
	return ws, 0
}

func cmdIndex(dir string) int {
	abs, _ := filepath.Abs(dir)
	ws, err := storage.Open(abs)
	if err != nil {
		fmt.Println("Error:", err)
		return 1
	}
	if err := storage.RebuildIndex(context.Background(), abs, ws.Doc); err != nil {
		fmt.Println("Error:", err)
		return 1
	}
	fmt.Println("Index rebuilt.")
	return 0
}

func cmdSearch(dir, query, scene, typ string) int {
	abs, _ := filepath.Abs(dir)
	q := storage.SearchQuery{Text: query, SceneID: scene}
	if typ != "" {
		q.Types = strings.Split(typ, ",")
	}
	hits, err := storage.Search(context.Background(), abs, q)
	if err != nil {
		fmt.Println("Error:", err)
		return 1
	}
	for _, h := range hits {
		loc := h.Path
		if h.ShotID != "" {
			loc = h.ShotID
		} else if h.SceneID != "" {
			loc = h.SceneID
		}
		fmt.Printf("%-10s %-12s %s\n", h.Type, loc, h.Snippet)
	}
	fmt.Printf("%d hit(s)\n", len(hits))
	return 0
}
