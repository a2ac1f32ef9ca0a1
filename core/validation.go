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

import "fmt"

// ValidateEntry validates a dataset entry.
//
// Validation rules:
//   - Entity must not be empty
//   - Keywords must contain a non-empty canonical name at index 0
func ValidateEntry(e Entry) error {
	if e.Entity == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDataset, ErrEmptyEntity)
	}
	if e.Name() == "" {
		return fmt.Errorf("%w: %w: %q", ErrInvalidDataset, ErrEmptyCanonicalName, e.Entity)
	}
	return nil
}

// ValidateEmojiRecord validates a stored emoji record.
func ValidateEmojiRecord(record *EmojiRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidEmojiRecord)
	}
	if record.Symbol == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEmojiRecord, ErrEmptyEntity)
	}
	if len(record.Keywords) == 0 || record.Keywords[0] == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEmojiRecord, ErrEmptyCanonicalName)
	}
	if record.Position < 0 {
		return fmt.Errorf("%w: negative position %d", ErrInvalidEmojiRecord, record.Position)
	}
	return nil
}
