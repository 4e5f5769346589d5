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
	"sort"

	"github.com/blinklabs-io/cleansweep/database/models"
	"github.com/blinklabs-io/cleansweep/database/types"
	"gorm.io/gorm"
)

// AddPlace stages a new place under the given parent, or as a top-level
// place when parent is nil. The ancestor chain is materialized at this
// point by copying the parent's chain and appending the parent itself.
// The chain is written once and never recomputed.
func (d *MetadataStoreSqlite) AddPlace(
	parent *models.Place,
	place *models.Place,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return fmt.Errorf("AddPlace: resolve db: %w", err)
	}
	if parent != nil {
		if parent.ID == 0 {
			return models.ErrPlaceNotStaged
		}
		place.IparentID = &parent.ID
	}
	if result := db.Create(place); result.Error != nil {
		return fmt.Errorf("AddPlace: create place: %w", result.Error)
	}
	if parent != nil {
		var parentChain []models.PlaceParent
		result := db.Where("child_id = ?", parent.ID).
			Order("position").
			Find(&parentChain)
		if result.Error != nil {
			return fmt.Errorf(
				"AddPlace: query parent chain: %w",
				result.Error,
			)
		}
		chainRows := make([]models.PlaceParent, 0, len(parentChain)+1)
		for _, row := range parentChain {
			chainRows = append(chainRows, models.PlaceParent{
				ChildID:  place.ID,
				ParentID: row.ParentID,
				Position: row.Position,
			})
		}
		chainRows = append(chainRows, models.PlaceParent{
			ChildID:  place.ID,
			ParentID: parent.ID,
			Position: len(parentChain),
		})
		if result := db.Create(&chainRows); result.Error != nil {
			return fmt.Errorf(
				"AddPlace: create ancestor chain: %w",
				result.Error,
			)
		}
	}
	d.metrics.placesCreated.Inc()
	return nil
}

// GetPlace returns a place by its key, or nil if not found. Keys are
// not enforced unique; when duplicates exist the first row wins.
func (d *MetadataStoreSqlite) GetPlace(
	key string,
	txn types.Txn,
) (*models.Place, error) {
	var ret models.Place
	db, err := d.resolveReadDB(txn)
	if err != nil {
		return nil, fmt.Errorf("GetPlace: resolve db: %w", err)
	}
	result := db.Preload("Type").Where("key = ?", key).First(&ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("GetPlace: query: %w", result.Error)
	}
	return &ret, nil
}

// GetTopLevelPlaces returns all places without a parent, ordered by key
func (d *MetadataStoreSqlite) GetTopLevelPlaces(
	txn types.Txn,
) ([]models.Place, error) {
	var ret []models.Place
	db, err := d.resolveReadDB(txn)
	if err != nil {
		return nil, fmt.Errorf("GetTopLevelPlaces: resolve db: %w", err)
	}
	result := db.Preload("Type").
		Where("iparent_id IS NULL").
		Order("key").
		Find(&ret)
	if result.Error != nil {
		return nil, fmt.Errorf(
			"GetTopLevelPlaces: query: %w",
			result.Error,
		)
	}
	return ret, nil
}

// GetPlaceParents returns the materialized ancestor chain for a place,
// ordered from the most distant ancestor down to the direct parent
func (d *MetadataStoreSqlite) GetPlaceParents(
	place *models.Place,
	txn types.Txn,
) ([]models.Place, error) {
	if place == nil || place.ID == 0 {
		return nil, models.ErrPlaceNotStaged
	}
	var ret []models.Place
	db, err := d.resolveReadDB(txn)
	if err != nil {
		return nil, fmt.Errorf("GetPlaceParents: resolve db: %w", err)
	}
	result := db.Preload("Type").
		Joins("JOIN place_parents pp ON pp.parent_id = place.id").
		Where("pp.child_id = ?", place.ID).
		Order("pp.position").
		Find(&ret)
	if result.Error != nil {
		return nil, fmt.Errorf("GetPlaceParents: query: %w", result.Error)
	}
	return ret, nil
}

// GetPlaceParent returns the ancestor of a place with the given place
// type, or nil when no ancestor of that type exists
func (d *MetadataStoreSqlite) GetPlaceParent(
	place *models.Place,
	placeType *models.PlaceType,
	txn types.Txn,
) (*models.Place, error) {
	if place == nil || place.ID == 0 {
		return nil, models.ErrPlaceNotStaged
	}
	if placeType == nil {
		return nil, models.ErrPlaceTypeNotFound
	}
	var ret models.Place
	db, err := d.resolveReadDB(txn)
	if err != nil {
		return nil, fmt.Errorf("GetPlaceParent: resolve db: %w", err)
	}
	result := db.Preload("Type").
		Joins("JOIN place_parents pp ON pp.parent_id = place.id").
		Where("pp.child_id = ? AND place.type_id = ?", place.ID, placeType.ID).
		First(&ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("GetPlaceParent: query: %w", result.Error)
	}
	return &ret, nil
}

// GetPlacesBelow returns all descendants of a place at any depth,
// optionally filtered to a single place type, ordered by key
func (d *MetadataStoreSqlite) GetPlacesBelow(
	place *models.Place,
	placeType *models.PlaceType,
	txn types.Txn,
) ([]models.Place, error) {
	if place == nil || place.ID == 0 {
		return nil, models.ErrPlaceNotStaged
	}
	var ret []models.Place
	db, err := d.resolveReadDB(txn)
	if err != nil {
		return nil, fmt.Errorf("GetPlacesBelow: resolve db: %w", err)
	}
	query := db.Preload("Type").
		Joins("JOIN place_parents pp ON pp.child_id = place.id").
		Where("pp.parent_id = ?", place.ID)
	if placeType != nil {
		query = query.Where("place.type_id = ?", placeType.ID)
	}
	result := query.Order("place.key").Find(&ret)
	if result.Error != nil {
		return nil, fmt.Errorf("GetPlacesBelow: query: %w", result.Error)
	}
	return ret, nil
}

// GetPlacesBelowCount returns the number of descendants of a place,
// optionally filtered to a single place type
func (d *MetadataStoreSqlite) GetPlacesBelowCount(
	place *models.Place,
	placeType *models.PlaceType,
	txn types.Txn,
) (int64, error) {
	if place == nil || place.ID == 0 {
		return 0, models.ErrPlaceNotStaged
	}
	var ret int64
	db, err := d.resolveReadDB(txn)
	if err != nil {
		return 0, fmt.Errorf("GetPlacesBelowCount: resolve db: %w", err)
	}
	query := db.Model(&models.Place{}).
		Joins("JOIN place_parents pp ON pp.child_id = place.id").
		Where("pp.parent_id = ?", place.ID)
	if placeType != nil {
		query = query.Where("place.type_id = ?", placeType.ID)
	}
	result := query.Count(&ret)
	if result.Error != nil {
		return 0, fmt.Errorf(
			"GetPlacesBelowCount: query: %w",
			result.Error,
		)
	}
	return ret, nil
}

// GetPlaceSiblings returns all places of the same type under the
// nearest ancestor of the given place, where nearest means the
// ancestor with the narrowest place type. Top-level places with no
// ancestors get all places of the same type.
func (d *MetadataStoreSqlite) GetPlaceSiblings(
	place *models.Place,
	txn types.Txn,
) ([]models.Place, error) {
	if place == nil || place.ID == 0 {
		return nil, models.ErrPlaceNotStaged
	}
	db, err := d.resolveReadDB(txn)
	if err != nil {
		return nil, fmt.Errorf("GetPlaceSiblings: resolve db: %w", err)
	}
	// Nearest ancestor is the chain entry with the narrowest place
	// type. For well-formed chains this is also the last entry, which
	// breaks any level ties.
	var nearest models.Place
	result := db.
		Joins("JOIN place_parents pp ON pp.parent_id = place.id").
		Joins("JOIN place_type pt ON pt.id = place.type_id").
		Where("pp.child_id = ?", place.ID).
		Order("pt.level DESC, pp.position DESC").
		First(&nearest)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf(
				"GetPlaceSiblings: query chain: %w",
				result.Error,
			)
		}
		// No ancestors, so siblings are all places of the same type
		var ret []models.Place
		result := db.Preload("Type").
			Where("type_id = ?", place.TypeID).
			Order("key").
			Find(&ret)
		if result.Error != nil {
			return nil, fmt.Errorf(
				"GetPlaceSiblings: query: %w",
				result.Error,
			)
		}
		return ret, nil
	}
	var ret []models.Place
	result = db.Preload("Type").
		Joins("JOIN place_parents pp ON pp.child_id = place.id").
		Where(
			"pp.parent_id = ? AND place.type_id = ?",
			nearest.ID,
			place.TypeID,
		).
		Order("place.key").
		Find(&ret)
	if result.Error != nil {
		return nil, fmt.Errorf("GetPlaceSiblings: query: %w", result.Error)
	}
	return ret, nil
}

// GetChildPlacesByType returns the immediate children of a place,
// grouped by place type. Groups are ordered from broadest to narrowest
// type and places within a group are ordered by key.
func (d *MetadataStoreSqlite) GetChildPlacesByType(
	place *models.Place,
	txn types.Txn,
) ([]models.ChildPlaceGroup, error) {
	if place == nil || place.ID == 0 {
		return nil, models.ErrPlaceNotStaged
	}
	var children []models.Place
	db, err := d.resolveReadDB(txn)
	if err != nil {
		return nil, fmt.Errorf(
			"GetChildPlacesByType: resolve db: %w",
			err,
		)
	}
	result := db.Preload("Type").
		Where("iparent_id = ?", place.ID).
		Find(&children)
	if result.Error != nil {
		return nil, fmt.Errorf(
			"GetChildPlacesByType: query: %w",
			result.Error,
		)
	}
	sort.Slice(children, func(i, j int) bool {
		if children[i].Type.Level != children[j].Type.Level {
			return children[i].Type.Level < children[j].Type.Level
		}
		return children[i].Key < children[j].Key
	})
	var ret []models.ChildPlaceGroup
	for _, child := range children {
		if len(ret) == 0 || ret[len(ret)-1].Type.ID != child.TypeID {
			ret = append(ret, models.ChildPlaceGroup{
				Type: child.Type,
			})
		}
		ret[len(ret)-1].Places = append(ret[len(ret)-1].Places, child)
	}
	return ret, nil
}
