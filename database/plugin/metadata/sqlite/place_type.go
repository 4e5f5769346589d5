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
	"errors"
	"fmt"

	"github.com/blinklabs-io/cleansweep/database/models"
	"github.com/blinklabs-io/cleansweep/database/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SetPlaceType saves a place type, updating the existing row when one
// already exists with the same short name
func (d *MetadataStoreSqlite) SetPlaceType(
	placeType *models.PlaceType,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return fmt.Errorf("SetPlaceType: resolve db: %w", err)
	}
	if result := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "short_name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name",
			"level",
		}),
	}).Create(placeType); result.Error != nil {
		return fmt.Errorf(
			"SetPlaceType: create place type: %w",
			result.Error,
		)
	}
	// On conflict, GORM may not populate the ID. Re-fetch if necessary
	// so callers can reference the row.
	if placeType.ID == 0 {
		var existing models.PlaceType
		if err := db.Where(
			"short_name = ?", placeType.ShortName,
		).First(&existing).Error; err != nil {
			return fmt.Errorf(
				"SetPlaceType: fetch place type ID after upsert: %w",
				err,
			)
		}
		placeType.ID = existing.ID
	}
	return nil
}

// GetPlaceType returns a place type by its short name, or nil if not found
func (d *MetadataStoreSqlite) GetPlaceType(
	shortName string,
	txn types.Txn,
) (*models.PlaceType, error) {
	var ret models.PlaceType
	db, err := d.resolveReadDB(txn)
	if err != nil {
		return nil, fmt.Errorf("GetPlaceType: resolve db: %w", err)
	}
	result := db.Where("short_name = ?", shortName).First(&ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("GetPlaceType: query: %w", result.Error)
	}
	return &ret, nil
}

// GetPlaceTypes returns all place types ordered from broadest to
// narrowest level
func (d *MetadataStoreSqlite) GetPlaceTypes(
	txn types.Txn,
) ([]models.PlaceType, error) {
	var ret []models.PlaceType
	db, err := d.resolveReadDB(txn)
	if err != nil {
		return nil, fmt.Errorf("GetPlaceTypes: resolve db: %w", err)
	}
	result := db.Order("level").Find(&ret)
	if result.Error != nil {
		return nil, fmt.Errorf("GetPlaceTypes: query: %w", result.Error)
	}
	return ret, nil
}

// GetPlaceSubtype returns the next narrower place type after the given
// one, or nil when the given type is already the narrowest
func (d *MetadataStoreSqlite) GetPlaceSubtype(
	placeType *models.PlaceType,
	txn types.Txn,
) (*models.PlaceType, error) {
	if placeType == nil {
		return nil, models.ErrPlaceTypeNotFound
	}
	var ret models.PlaceType
	db, err := d.resolveReadDB(txn)
	if err != nil {
		return nil, fmt.Errorf("GetPlaceSubtype: resolve db: %w", err)
	}
	result := db.Where("level > ?", placeType.Level).
		Order("level").
		First(&ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("GetPlaceSubtype: query: %w", result.Error)
	}
	return &ret, nil
}
