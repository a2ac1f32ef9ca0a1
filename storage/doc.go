// Copyright 2025 Poiesic Systems
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


// Package storage provides the storage abstraction layer for the emoji dataset.
//
// Parsing the distributed JSON tables is comparatively slow, so a dataset is
// imported once into a store and loaded from there on every start. This
// package defines the repository interfaces that decouple that store from the
// loader and the search engine.
//
// # Architecture
//
// The storage layer follows the Repository pattern:
//
//   - EmojiRepository: emoji records with their keywords, in dataset order
//   - LexiconRepository: keyword preferences, ranked common words and the glossary
//   - InfoRepository: the marker describing the imported dataset
//   - DatasetRepository: all of the above plus Clear
//
// Records are encoded with mus serializers from the core package; see
// serialization.go.
//
// # Usage
//
// Open a repository:
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	repo := badger.NewDatasetRepository(backend)
//	defer repo.Close()
//
// Use in tests with in-memory storage:
//
//	repo, err := badger.NewMemoryRepository()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
