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


package dataset

import "errors"

var (
	// ErrDataLoad is returned when a dataset cannot be read or parsed.
	// The underlying cause is wrapped alongside it.
	ErrDataLoad = errors.New("data load failed")

	// ErrNoDataset is returned when a store holds no imported dataset.
	ErrNoDataset = errors.New("no dataset imported")

	// ErrDatasetRequired is returned when a nil dataset is imported.
	ErrDatasetRequired = errors.New("dataset required")

	// ErrRepositoryRequired is returned when a repository is not provided.
	ErrRepositoryRequired = errors.New("dataset repository required")

	// ErrInvalidMaxAttempts is returned when maxAttempts is invalid.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
