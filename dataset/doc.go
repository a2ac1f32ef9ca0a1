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


// Package dataset loads the emoji vocabulary and moves it into a store.
//
// ReadJSON and LoadDir parse the four JSON tables of the emoji distribution
// (keywords per emoji, the most relevant emoji per keyword, the optional
// glossary and the ranked common-word list), keeping the file order of
// entries. Importer writes a parsed dataset into a storage.DatasetRepository
// in concurrent batches, and Load reads it back.
package dataset
