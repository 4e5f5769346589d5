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

package sqlite

import (
	"github.com/blinklabs-io/cleansweep/database/types"
	"gorm.io/gorm"
)

// sqliteTxn wraps a GORM transaction handle. A failed Begin is captured
// in beginErr and surfaced when the handle is first used, so callers
// don't need a separate error return from Transaction().
type sqliteTxn struct {
	db       *gorm.DB
	beginErr error
}

func (t *sqliteTxn) Commit() error {
	if t.beginErr != nil {
		return t.beginErr
	}
	return t.db.Commit().Error
}

func (t *sqliteTxn) Rollback() error {
	if t.beginErr != nil {
		return t.beginErr
	}
	return t.db.Rollback().Error
}

// Transaction creates a new database transaction.
func (d *MetadataStoreSqlite) Transaction() types.Txn {
	tmpDb := d.DB().Begin()
	return &sqliteTxn{
		db:       tmpDb,
		beginErr: tmpDb.Error,
	}
}

// dbFromTxn returns d.DB() only when txn is nil, unwraps known *sqliteTxn or
// provider.MetadataTxn() when available, and returns nil for unrecognized txn
// types so callers can detect errors
func (d *MetadataStoreSqlite) dbFromTxn(txn types.Txn) *gorm.DB {
	if txn == nil {
		return d.DB()
	}
	if stx, ok := txn.(*sqliteTxn); ok && stx != nil {
		return stx.db
	}
	if provider, ok := txn.(interface{ MetadataTxn() *gorm.DB }); ok {
		if db := provider.MetadataTxn(); db != nil {
			return db
		}
	}
	return nil
}

// resolveDB returns the *gorm.DB for the given transaction, or d.DB() if txn is nil.
// Returns nil, ErrTxnWrongType if txn is non-nil but not the expected type.
func (d *MetadataStoreSqlite) resolveDB(txn types.Txn) (*gorm.DB, error) {
	if stx, ok := txn.(*sqliteTxn); ok {
		if stx != nil && stx.beginErr != nil {
			return nil, stx.beginErr
		}
	}
	if txn == nil {
		return d.DB(), nil
	}
	db := d.dbFromTxn(txn)
	if db == nil {
		return nil, types.ErrTxnWrongType
	}
	return db, nil
}

// resolveReadDB returns the *gorm.DB for read-only queries. SQLite in WAL
// mode handles concurrent readers on the shared connection, so this
// delegates to resolveDB.
func (d *MetadataStoreSqlite) resolveReadDB(txn types.Txn) (*gorm.DB, error) {
	return d.resolveDB(txn)
}
