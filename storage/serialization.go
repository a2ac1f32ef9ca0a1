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


package storage

import (
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/philocalyst/emoji-search/core"
)

// symbolsMUS encodes the emoji symbols stored under a keyword.
var symbolsMUS = ord.NewSliceSer[string](ord.String)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: id: %w", ErrSerializationFailed, err)
	}
	return id, nil
}

// MarshalString serializes a single string to bytes.
func MarshalString(s string) []byte {
	buf := make([]byte, ord.String.Size(s))
	ord.String.Marshal(s, buf)
	return buf
}

// UnmarshalString deserializes a single string from bytes.
func UnmarshalString(data []byte) (string, error) {
	s, _, err := ord.String.Unmarshal(data)
	if err != nil {
		return "", fmt.Errorf("%w: string: %w", ErrSerializationFailed, err)
	}
	return s, nil
}

// MarshalEntities serializes a list of emoji symbols to bytes.
func MarshalEntities(ids []core.EntityID) []byte {
	symbols := make([]string, len(ids))
	for i, id := range ids {
		symbols[i] = string(id)
	}
	buf := make([]byte, symbolsMUS.Size(symbols))
	symbolsMUS.Marshal(symbols, buf)
	return buf
}

// UnmarshalEntities deserializes a list of emoji symbols from bytes.
func UnmarshalEntities(data []byte) ([]core.EntityID, error) {
	symbols, _, err := symbolsMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: entities: %w", ErrSerializationFailed, err)
	}
	ids := make([]core.EntityID, len(symbols))
	for i, s := range symbols {
		ids[i] = core.EntityID(s)
	}
	return ids, nil
}

// MarshalEmojiRecord serializes an EmojiRecord to bytes.
func MarshalEmojiRecord(record *core.EmojiRecord) []byte {
	buf := make([]byte, core.EmojiRecordMUS.Size(*record))
	core.EmojiRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalEmojiRecord deserializes an EmojiRecord from bytes.
func UnmarshalEmojiRecord(data []byte) (*core.EmojiRecord, error) {
	record, _, err := core.EmojiRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: emoji record: %w", ErrSerializationFailed, err)
	}
	return &record, nil
}

// MarshalDatasetInfo serializes a DatasetInfo to bytes.
func MarshalDatasetInfo(info *core.DatasetInfo) []byte {
	buf := make([]byte, core.DatasetInfoMUS.Size(*info))
	core.DatasetInfoMUS.Marshal(*info, buf)
	return buf
}

// UnmarshalDatasetInfo deserializes a DatasetInfo from bytes.
func UnmarshalDatasetInfo(data []byte) (*core.DatasetInfo, error) {
	info, _, err := core.DatasetInfoMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: dataset info: %w", ErrSerializationFailed, err)
	}
	return &info, nil
}
