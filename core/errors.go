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


package core

import "errors"

var (
	// ErrInvalidDataset indicates the dataset violates one of its invariants.
	ErrInvalidDataset = errors.New("invalid dataset")

	// ErrInvalidEmojiRecord indicates an EmojiRecord failed validation.
	ErrInvalidEmojiRecord = errors.New("invalid emoji record")

	// ErrEmptyEntity indicates an entry has no symbol.
	ErrEmptyEntity = errors.New("entity cannot be empty")

	// ErrEmptyCanonicalName indicates an entry has no keywords or an empty first keyword.
	ErrEmptyCanonicalName = errors.New("canonical name cannot be empty")

	// ErrDuplicateEntity indicates the same entity appears more than once.
	ErrDuplicateEntity = errors.New("duplicate entity")

	// ErrUnknownEntity indicates a reference to an entity missing from the dataset.
	ErrUnknownEntity = errors.New("unknown entity")
)
