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


// Package nlp holds the text processing shared by every matcher.
//
// Three pieces live here:
//   - Normalize canonicalizes queries and keywords before any comparison
//   - Stem reduces a single word to an approximate root
//   - FilterPartsOfSpeech drops function words from a word sequence
//
// All tables are package-level and never mutated, so every function is safe
// for concurrent use.
package nlp
