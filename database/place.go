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

func (d *Database) AddPlace(
	parent *models.Place,
	place *models.Place,
	txn *Txn,
) error {
	if txn == nil {
		return d.Transaction(true).Do(func(t *Txn) error {
			return d.metadata.AddPlace(parent, place, t.Metadata())
		})
	}
	return d.metadata.AddPlace(parent, place, txn.Metadata())
}

func (d *Database) GetPlace(
	key string,
	txn *Txn,
) (*models.Place, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.GetPlace(key, txn.Metadata())
}

func (d *Database) GetTopLevelPlaces(txn *Txn) ([]models.Place, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.GetTopLevelPlaces(txn.Metadata())
}

func (d *Database) GetPlaceParents(
	place *models.Place,
	txn *Txn,
) ([]models.Place, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.GetPlaceParents(place, txn.Metadata())
}

func (d *Database) GetPlaceParent(
	place *models.Place,
	placeType *models.PlaceType,
	txn *Txn,
) (*models.Place, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.GetPlaceParent(place, placeType, txn.Metadata())
}

func (d *Database) GetPlacesBelow(
	place *models.Place,
	placeType *models.PlaceType,
	txn *Txn,
) ([]models.Place, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.GetPlacesBelow(place, placeType, txn.Metadata())
}

func (d *Database) GetPlacesBelowCount(
	place *models.Place,
	placeType *models.PlaceType,
	txn *Txn,
) (int64, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.GetPlacesBelowCount(place, placeType, txn.Metadata())
}

func (d *Database) GetPlaceSiblings(
	place *models.Place,
	txn *Txn,
) ([]models.Place, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.GetPlaceSiblings(place, txn.Metadata())
}

func (d *Database) GetChildPlacesByType(
	place *models.Place,
	txn *Txn,
) ([]models.ChildPlaceGroup, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.GetChildPlacesByType(place, txn.Metadata())
}
