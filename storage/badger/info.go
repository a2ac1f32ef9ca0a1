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


package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/philocalyst/emoji-search/core"
	"github.com/philocalyst/emoji-search/storage"
)

// InfoRepository implements storage.InfoRepository for BadgerDB.
type InfoRepository struct {
	backend *Backend
}

var _ storage.InfoRepository = (*InfoRepository)(nil)

// NewInfoRepository creates a new InfoRepository.
func NewInfoRepository(backend *Backend) *InfoRepository {
	return &InfoRepository{
		backend: backend,
	}
}

// SaveInfo persists the dataset marker. A zero ImportedAt is set to now.
func (r *InfoRepository) SaveInfo(ctx context.Context, info *core.DatasetInfo) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if info.ImportedAt.IsZero() {
			info.ImportedAt = time.Now().UTC()
		}
		if err := tx.Set(makeDatasetInfoKey(), storage.MarshalDatasetInfo(info)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// LoadInfo retrieves the dataset marker.
// Returns nil, nil if no dataset was imported.
func (r *InfoRepository) LoadInfo(ctx context.Context) (*core.DatasetInfo, error) {
	var info *core.DatasetInfo
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeDatasetInfoKey())
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}

		return item.Value(func(val []byte) error {
			var unmarshalErr error
			info, unmarshalErr = storage.UnmarshalDatasetInfo(val)
			return unmarshalErr
		})
	}, false)

	return info, err
}
