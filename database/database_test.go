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
	"errors"
	"testing"

	"github.com/blinklabs-io/cleansweep/database/models"
	"github.com/blinklabs-io/cleansweep/database/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := New(nil)
	require.NoError(t, err)
	require.NoError(t, db.Metadata().Start())
	t.Cleanup(func() {
		db.Close() //nolint:errcheck
	})
	return db
}

func TestDatabaseImplicitTransaction(t *testing.T) {
	db := setupTestDatabase(t)

	// Writes without an explicit transaction are committed immediately
	placeType := &models.PlaceType{
		Name:      "Country",
		ShortName: "country",
		Level:     10,
	}
	require.NoError(t, db.SetPlaceType(placeType, nil))
	require.NotZero(t, placeType.ID)

	fetched, err := db.GetPlaceType("country", nil)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "Country", fetched.Name)
}

func TestDatabaseTxnDoCommits(t *testing.T) {
	db := setupTestDatabase(t)

	err := db.Transaction(true).Do(func(txn *Txn) error {
		placeType := &models.PlaceType{
			Name:      "Country",
			ShortName: "country",
			Level:     10,
		}
		if err := db.SetPlaceType(placeType, txn); err != nil {
			return err
		}
		place := &models.Place{
			Key:    "india",
			Name:   "India",
			TypeID: placeType.ID,
		}
		return db.AddPlace(nil, place, txn)
	})
	require.NoError(t, err)

	place, err := db.GetPlace("india", nil)
	require.NoError(t, err)
	require.NotNil(t, place)
	assert.Equal(t, "India", place.Name)
}

func TestDatabaseTxnDoRollsBackOnError(t *testing.T) {
	db := setupTestDatabase(t)
	errBoom := errors.New("boom")

	err := db.Transaction(true).Do(func(txn *Txn) error {
		placeType := &models.PlaceType{
			Name:      "Country",
			ShortName: "country",
			Level:     10,
		}
		if err := db.SetPlaceType(placeType, txn); err != nil {
			return err
		}
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	// Staged write was discarded with the transaction
	placeType, err := db.GetPlaceType("country", nil)
	require.NoError(t, err)
	assert.Nil(t, placeType)
}

func TestDatabaseCommitTimestamp(t *testing.T) {
	db := setupTestDatabase(t)

	// Zero before any read-write commit
	timestamp, err := db.GetCommitTimestamp()
	require.NoError(t, err)
	assert.Equal(t, int64(0), timestamp)

	// Read-only transactions don't record a timestamp
	txn := db.Transaction(false)
	_, err = db.GetPlaceTypes(txn)
	require.NoError(t, err)
	require.NoError(t, txn.Commit())
	timestamp, err = db.GetCommitTimestamp()
	require.NoError(t, err)
	assert.Equal(t, int64(0), timestamp)

	// Read-write commits do
	err = db.SetPlaceType(&models.PlaceType{
		Name:      "Country",
		ShortName: "country",
		Level:     10,
	}, nil)
	require.NoError(t, err)
	timestamp, err = db.GetCommitTimestamp()
	require.NoError(t, err)
	assert.Positive(t, timestamp)
}

func TestUpdateCommitTimestampRequiresTxn(t *testing.T) {
	db := setupTestDatabase(t)

	require.ErrorIs(
		t,
		db.updateCommitTimestamp(nil, 1),
		types.ErrNilTxn,
	)
	require.ErrorIs(
		t,
		db.updateCommitTimestamp(&Txn{db: db}, 1),
		types.ErrNilTxn,
	)
}

func TestDatabaseTxnRelease(t *testing.T) {
	db := setupTestDatabase(t)

	txn := db.Transaction(true)
	err := db.SetPlaceType(&models.PlaceType{
		Name:      "Country",
		ShortName: "country",
		Level:     10,
	}, txn)
	require.NoError(t, err)
	txn.Release()

	// Release without commit discards the staged write
	placeType, err := db.GetPlaceType("country", nil)
	require.NoError(t, err)
	assert.Nil(t, placeType)

	// Release after commit is a no-op
	txn = db.Transaction(true)
	require.NoError(t, db.SetPlaceType(&models.PlaceType{
		Name:      "State",
		ShortName: "state",
		Level:     20,
	}, txn))
	require.NoError(t, txn.Commit())
	txn.Release()
	placeType, err = db.GetPlaceType("state", nil)
	require.NoError(t, err)
	require.NotNil(t, placeType)
}
