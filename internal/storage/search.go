/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// SearchQuery describes an index search. Text is matched against the FTS
// index; the remaining fields narrow the result set. A zero Limit means 50.
type SearchQuery struct {
	Text    string
	SceneID string
	Types   []string
	Limit   int
	Offset  int
}

// SearchResult is one index hit. Snippet contains the matched text with the
// match marked when Text was given, otherwise the stored fragment.
type SearchResult struct {
	DocID   int64
	Type    string
	Path    string
	SceneID string
	ShotID  string
	Snippet string
}

// Search opens the workspace index and runs the query.
func Search(ctx context.Context, root string, q SearchQuery) ([]SearchResult, error) {
	db, err := InitOrOpenIndex(root)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return searchDB(ctx, db, q)
}

func searchDB(ctx context.Context, db *sql.DB, q SearchQuery) ([]SearchResult, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}

	var (
		sb   strings.Builder
		args []any
	)
	if strings.TrimSpace(q.Text) != "" {
		sb.WriteString(`SELECT d.doc_id, d.type, d.path, COALESCE(d.scene_id,''), COALESCE(d.shot_id,''),
			snippet(fts_documents, 0, '[', ']', '…', 8)
			FROM fts_documents f
			JOIN documents d ON d.doc_id = f.rowid
			WHERE fts_documents MATCH ?`)
		args = append(args, ftsQuery(q.Text))
	} else {
		sb.WriteString(`SELECT d.doc_id, d.type, d.path, COALESCE(d.scene_id,''), COALESCE(d.shot_id,''), d.text
			FROM documents d
			WHERE 1=1`)
	}
	if q.SceneID != "" {
		sb.WriteString(" AND d.scene_id = ?")
		args = append(args, q.SceneID)
	}
	if len(q.Types) > 0 {
		sb.WriteString(" AND d.type IN (")
		for i, t := range q.Types {
			if i > 0 {
				sb.WriteString(",")
			}
			sb.WriteString("?")
			args = append(args, t)
		}
		sb.WriteString(")")
	}
	sb.WriteString(" ORDER BY d.doc_id LIMIT ? OFFSET ?")
	args = append(args, limit, q.Offset)

	rows, err := db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.DocID, &r.Type, &r.Path, &r.SceneID, &r.ShotID, &r.Snippet); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ftsQuery quotes every token so user input cannot inject FTS operators.
func ftsQuery(text string) string {
	fields := strings.Fields(text)
	quoted := make([]string, 0, len(fields))
	for _, f := range fields {
		quoted = append(quoted, `"`+strings.ReplaceAll(f, `"`, `""`)+`"`)
	}
	return strings.Join(quoted, " ")
}
