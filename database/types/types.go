// Copyright 2026 Blink Labs Software
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

package types

import "errors"

var (
	// ErrNilTxn is returned when a nil transaction handle is provided
	// where one is required
	ErrNilTxn = errors.New("nil transaction handle")

	// ErrTxnWrongType is returned when a transaction handle from a
	// different store implementation is provided
	ErrTxnWrongType = errors.New("unexpected transaction handle type")

	// ErrNoStoreAvailable is returned when no backing store is available
	// to commit a read-write transaction
	ErrNoStoreAvailable = errors.New("no store available")
)

// Txn is a simple transaction handle for commit/rollback only. All
// writes in the registry are staged against a Txn and persisted only
// when the caller commits.
type Txn interface {
	Commit() error
	Rollback() error
}
