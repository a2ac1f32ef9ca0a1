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


// Package search ranks dataset entities against a free-text query.
//
// The Searcher picks one of three matchers by the shape of the query:
//   - a single word is matched exactly or as a prefix against every keyword word
//   - a phrase is matched against multi-word keywords, in order or out of order,
//     falling back to the union of an entity's keyword words
//   - a best-matching phrase is filtered of function words and stemmed first
//
// Each matcher computes a fixed-shape attribute record per entity and orders
// the entities with a chain of tie-break rules. Scoring fans out over a
// worker pool owned by the Searcher; sorting happens once, after the gather.
package search
