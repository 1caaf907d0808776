/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a minimal HTTP client for the sharing API. The CLI uses it
// read-mostly behind the enable_server feature flag.
type Client struct {
	BaseURL string
	Token   string // bearer token
	client  *http.Client
}

// NewClient creates a new backend client. baseURL may include a trailing
// slash; it will be normalized.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) doJSON(ctx context.Context, method, path string, body []byte, dest any) error {
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return err
	}
	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("server %s %s: %s", method, u.Path, resp.Status)
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	return dec.Decode(dest)
}

// Film is the listing projection: the latest uploaded version per film.
type Film struct {
	ID        int64     `json:"id"`
	FilmID    string    `json:"film_id"`
	Stage     string    `json:"stage"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}

// ListFilms returns the films known to the server.
func (c *Client) ListFilms(ctx context.Context) ([]Film, error) {
	var list []Film
	if err := c.doJSON(ctx, http.MethodGet, "/api/films", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// DocumentEnvelope matches the server response for the latest document of a
// film.
type DocumentEnvelope struct {
	FilmID    string          `json:"film_id"`
	Stage     string          `json:"stage"`
	Version   int64           `json:"version"`
	CreatedAt time.Time       `json:"created_at"`
	Document  json.RawMessage `json:"document"`
}

// GetDocument fetches the latest uploaded document for a film.
func (c *Client) GetDocument(ctx context.Context, filmID string) (*DocumentEnvelope, error) {
	var env DocumentEnvelope
	path := fmt.Sprintf("/api/films/%s/document", url.PathEscape(filmID))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// Upload pushes a document as a new version and returns the assigned version.
func (c *Client) Upload(ctx context.Context, document []byte) (int64, error) {
	var resp struct {
		FilmID  string `json:"film_id"`
		Version int64  `json:"version"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/films", document, &resp); err != nil {
		return 0, err
	}
	return resp.Version, nil
}
