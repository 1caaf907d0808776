/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package domain defines the film production document model shared by the
// rest of the application: stage 1 story and asset documents, stage 2 shot
// division documents, and the diagnostic records produced by validation.
//
// Documents arrive as JSON written by external tools, so the model keeps two
// views of every parsed file: a typed struct for editing operations and the
// raw decoded tree for validation, which has to report on malformed or
// partially filled documents that the typed decode rejects.
package domain
