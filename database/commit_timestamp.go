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

package database

import (
	"github.com/blinklabs-io/cleansweep/database/types"
)

// GetCommitTimestamp returns the timestamp of the last committed
// read-write transaction, or zero when nothing has been committed
func (d *Database) GetCommitTimestamp() (int64, error) {
	return d.Metadata().GetCommitTimestamp()
}

func (d *Database) updateCommitTimestamp(txn *Txn, timestamp int64) error {
	if txn == nil || txn.Metadata() == nil {
		return types.ErrNilTxn
	}
	return d.Metadata().SetCommitTimestamp(timestamp, txn.Metadata())
}
