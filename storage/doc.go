// Copyright 2025 Plant QA Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package storage defines the persistence abstraction for the QA matrix.
//
// The MatrixRepository interface covers the full lifecycle of matrix
// entries: catalog import, per-entry updates after weekly match runs, and
// ordered listing for reports. The storage/badger sub-package provides the
// BadgerDB implementation, including an in-memory mode for tests.
//
// Entries are serialized with strict MUS codecs (see core): truncated or
// malformed bytes are rejected with an error rather than decoded loosely.
package storage
