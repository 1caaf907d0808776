/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"testing"
	"time"
)

// fakeTokenStore keeps tokens in memory so tests never touch the OS keychain.
type fakeTokenStore struct{ vals map[string]string }

func (f *fakeTokenStore) Get(service, key string) (string, error) {
	v, ok := f.vals[service+"/"+key]
	if !ok {
		return "", errors.New("not found")
	}
	return v, nil
}
func (f *fakeTokenStore) Set(service, key, value string) error {
	if f.vals == nil {
		f.vals = map[string]string{}
	}
	f.vals[service+"/"+key] = value
	return nil
}
func (f *fakeTokenStore) Delete(service, key string) error {
	delete(f.vals, service+"/"+key)
	return nil
}

func stubTokenStore(t *testing.T) *fakeTokenStore {
	t.Helper()
	old := tokenStore
	fake := &fakeTokenStore{}
	tokenStore = fake
	t.Cleanup(func() { tokenStore = old })
	return fake
}

func TestEnvOverridesBackendURL(t *testing.T) {
	stubTokenStore(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvBackendURL, "https://example.test:8443")
	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got, want := cfg.Backend.BaseURL, "https://example.test:8443"; got != want {
		t.Fatalf("Backend.BaseURL = %q, want %q", got, want)
	}
}

func TestEnvOverridesTelemetry(t *testing.T) {
	stubTokenStore(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvTelemetryOptIn, "true")
	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.General.TelemetryOptIn {
		t.Fatalf("General.TelemetryOptIn expected true from env override")
	}
}

func TestMergeIncludesEnableServer(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.General.EnableServer = true
	mergeInto(&dst, &src)
	if !dst.General.EnableServer {
		t.Fatalf("EnableServer was not merged from file config")
	}
}

func TestMergeIncludesLogging(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Logging.Level = "debug"
	src.Logging.Format = "json"
	src.Logging.Source = true
	src.Logging.File = "/tmp/fst.log"
	mergeInto(&dst, &src)
	if dst.Logging.Level != "debug" || dst.Logging.Format != "json" || !dst.Logging.Source || dst.Logging.File != "/tmp/fst.log" {
		t.Fatalf("logging fields not merged correctly: %#v", dst.Logging)
	}
}

func TestEnvOverridesLogging(t *testing.T) {
	stubTokenStore(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvLogSource, "1")
	t.Setenv(EnvLogFile, "/tmp/fst.log")
	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Logging.Level != "error" || cfg.Logging.Format != "json" || !cfg.Logging.Source || cfg.Logging.File != "/tmp/fst.log" {
		t.Fatalf("env overrides not applied to logging: %#v", cfg.Logging)
	}
}

func TestSaveLoadRoundTripWithToken(t *testing.T) {
	fake := stubTokenStore(t)
	t.Setenv("HOME", t.TempDir())

	cfg := Defaults()
	cfg.Backend.BaseURL = "https://pipeline.example"
	cfg.General.EnableServer = true
	if err := Save(cfg, "secret-token"); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if fake.vals[keyringService+"/"+keyringToken] != "secret-token" {
		t.Fatalf("token not stored in keychain stub")
	}

	got, tok, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Backend.BaseURL != "https://pipeline.example" || !got.General.EnableServer {
		t.Fatalf("round trip mismatch: %#v", got)
	}
	if tok != "secret-token" {
		t.Fatalf("token = %q", tok)
	}
}

func TestEffectiveTimeout(t *testing.T) {
	b := BackendConfig{TimeoutMs: 2500}
	if b.EffectiveTimeout() != 2500*time.Millisecond {
		t.Fatalf("EffectiveTimeout = %v", b.EffectiveTimeout())
	}
	b.TimeoutMs = 0
	if b.EffectiveTimeout() != 15*time.Second {
		t.Fatalf("default EffectiveTimeout = %v", b.EffectiveTimeout())
	}
}
