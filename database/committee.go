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

func (d *Database) AddCommitteeType(
	committeeType *models.CommitteeType,
	txn *Txn,
) error {
	if txn == nil {
		return d.Transaction(true).Do(func(t *Txn) error {
			return d.metadata.AddCommitteeType(committeeType, t.Metadata())
		})
	}
	return d.metadata.AddCommitteeType(committeeType, txn.Metadata())
}

func (d *Database) NewCommitteeTypeFromFormData(
	place *models.Place,
	formData *models.CommitteeTypeFormData,
	txn *Txn,
) (*models.CommitteeType, error) {
	if txn == nil {
		var ret *models.CommitteeType
		err := d.Transaction(true).Do(func(t *Txn) error {
			var err error
			ret, err = d.metadata.NewCommitteeTypeFromFormData(
				place,
				formData,
				t.Metadata(),
			)
			return err
		})
		return ret, err
	}
	return d.metadata.NewCommitteeTypeFromFormData(
		place,
		formData,
		txn.Metadata(),
	)
}

func (d *Database) GetCommitteeTypesByPlace(
	place *models.Place,
	recursive bool,
	txn *Txn,
) ([]models.CommitteeType, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.GetCommitteeTypesByPlace(
		place,
		recursive,
		txn.Metadata(),
	)
}

func (d *Database) GetCommitteeType(
	place *models.Place,
	slug string,
	recursive bool,
	txn *Txn,
) (*models.CommitteeType, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.GetCommitteeType(
		place,
		slug,
		recursive,
		txn.Metadata(),
	)
}

func (d *Database) AddCommittee(
	committee *models.Committee,
	txn *Txn,
) error {
	if txn == nil {
		return d.Transaction(true).Do(func(t *Txn) error {
			return d.metadata.AddCommittee(committee, t.Metadata())
		})
	}
	return d.metadata.AddCommittee(committee, txn.Metadata())
}

func (d *Database) GetCommittee(
	place *models.Place,
	slug string,
	txn *Txn,
) (*models.Committee, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.GetCommittee(place, slug, txn.Metadata())
}

func (d *Database) GetCommittees(
	place *models.Place,
	txn *Txn,
) ([]models.Committee, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.GetCommittees(place, txn.Metadata())
}

func (d *Database) AddCommitteeMember(
	committeeMember *models.CommitteeMember,
	txn *Txn,
) error {
	if txn == nil {
		return d.Transaction(true).Do(func(t *Txn) error {
			return d.metadata.AddCommitteeMember(
				committeeMember,
				t.Metadata(),
			)
		})
	}
	return d.metadata.AddCommitteeMember(committeeMember, txn.Metadata())
}

func (d *Database) GetCommitteeMembers(
	committee *models.Committee,
	txn *Txn,
) ([]models.CommitteeMember, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.GetCommitteeMembers(committee, txn.Metadata())
}
