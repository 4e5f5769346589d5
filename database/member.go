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
	"github.com/blinklabs-io/cleansweep/database/models"
)

func (d *Database) AddMember(
	member *models.Member,
	txn *Txn,
) error {
	if txn == nil {
		return d.Transaction(true).Do(func(t *Txn) error {
			return d.metadata.AddMember(member, t.Metadata())
		})
	}
	return d.metadata.AddMember(member, txn.Metadata())
}

func (d *Database) GetMemberByEmail(
	email string,
	txn *Txn,
) (*models.Member, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.GetMemberByEmail(email, txn.Metadata())
}

func (d *Database) GetMembersByPlace(
	place *models.Place,
	txn *Txn,
) ([]models.Member, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.GetMembersByPlace(place, txn.Metadata())
}
