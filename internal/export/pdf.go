/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"filmstage/internal/domain"
)

// PDFOptions controls shot-list PDF export.
// Built-in Helvetica keeps text vector without font embedding.
type PDFOptions struct {
	Title      string
	SceneIDs   []string // if empty, export all scenes
	WithCamera bool     // include camera movement metadata per shot
}

// ExportShotListPDF writes a multi-page A4 shot list for a stage 2 document.
func ExportShotListPDF(doc *domain.Document, outPath string, opt PDFOptions) error {
	if doc == nil || doc.Two == nil {
		return fmt.Errorf("stage 2 document required")
	}
	two := doc.Two

	title := opt.Title
	if title == "" {
		title = fmt.Sprintf("%s shot list", two.FilmID)
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetTitle(title, false)
	pdf.SetMargins(48, 56, 48)
	pdf.SetAutoPageBreak(true, 56)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 20, title, "", "L", false)
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 14, fmt.Sprintf("step: %s", two.CurrentStep), "", "L", false)
	pdf.Ln(8)

	want := map[string]bool{}
	for _, id := range opt.SceneIDs {
		want[id] = true
	}

	for _, sc := range two.Scenes {
		if len(want) > 0 && !want[sc.SceneID] {
			continue
		}
		pdf.SetFont("Helvetica", "B", 12)
		heading := sc.SceneID
		if sc.SceneTitle != "" {
			heading += "  " + sc.SceneTitle
		}
		pdf.MultiCell(0, 16, heading, "", "L", false)

		pdf.SetFont("Helvetica", "", 10)
		for _, sh := range sc.Shots {
			line := fmt.Sprintf("%s [%s] %s", sh.ShotID, sh.ShotType, sh.ShotText)
			if len(sh.ShotCharacter) > 0 {
				line += "  (" + strings.Join(sh.ShotCharacter, ", ") + ")"
			}
			pdf.MultiCell(0, 13, line, "", "L", false)
			if opt.WithCamera && sh.CameraMovement != nil {
				cam := cameraLine(sh.CameraMovement)
				if cam != "" {
					pdf.SetFont("Helvetica", "I", 9)
					pdf.MultiCell(0, 12, "    "+cam, "", "L", false)
					pdf.SetFont("Helvetica", "", 10)
				}
			}
		}
		pdf.Ln(6)
	}

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func cameraLine(cm *domain.CameraMovement) string {
	parts := make([]string, 0, 4)
	if cm.Type != "" {
		parts = append(parts, cm.Type)
	}
	if cm.Speed != "" {
		parts = append(parts, "speed "+cm.Speed)
	}
	if cm.Duration != "" {
		parts = append(parts, cm.Duration)
	}
	if cm.Secondary != "" {
		parts = append(parts, "secondary "+cm.Secondary)
	}
	return strings.Join(parts, ", ")
}
