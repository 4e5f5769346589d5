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
	"strings"

	"github.com/blinklabs-io/cleansweep/database/models"
	"github.com/blinklabs-io/cleansweep/database/types"
	"gorm.io/gorm"
)

// AddCommitteeType stages a new committee type along with its role rows
func (d *MetadataStoreSqlite) AddCommitteeType(
	committeeType *models.CommitteeType,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return fmt.Errorf("AddCommitteeType: resolve db: %w", err)
	}
	if result := db.Create(committeeType); result.Error != nil {
		return fmt.Errorf(
			"AddCommitteeType: create committee type: %w",
			result.Error,
		)
	}
	d.metrics.committeeTypesCreated.Inc()
	return nil
}

// NewCommitteeTypeFromFormData builds and stages a committee type at
// the given place from structured form input. Roles with a blank name
// are skipped, and a role's multiple flag is set only when the form
// value is exactly "yes".
func (d *MetadataStoreSqlite) NewCommitteeTypeFromFormData(
	place *models.Place,
	formData *models.CommitteeTypeFormData,
	txn types.Txn,
) (*models.CommitteeType, error) {
	if place == nil || place.ID == 0 {
		return nil, models.ErrPlaceNotStaged
	}
	placeType, err := d.GetPlaceType(formData.Level, txn)
	if err != nil {
		return nil, err
	}
	if placeType == nil {
		return nil, models.ErrPlaceTypeNotFound
	}
	ret := &models.CommitteeType{
		PlaceID:     place.ID,
		PlaceTypeID: placeType.ID,
		Name:        formData.Name,
		Slug:        formData.Slug,
		Description: formData.Description,
	}
	for _, role := range formData.Roles {
		if strings.TrimSpace(role.Name) == "" {
			continue
		}
		ret.Roles = append(ret.Roles, models.CommitteeRole{
			Role:       role.Name,
			Multiple:   role.Multiple == "yes",
			Permission: role.Permission,
		})
	}
	if err := d.AddCommitteeType(ret, txn); err != nil {
		return nil, err
	}
	return ret, nil
}

// ancestorPlaceIds returns the IDs of a place's ancestors along with
// the place's own ID
func (d *MetadataStoreSqlite) ancestorPlaceIds(
	place *models.Place,
	db *gorm.DB,
) ([]uint, error) {
	var parentIds []uint
	result := db.Model(&models.PlaceParent{}).
		Where("child_id = ?", place.ID).
		Pluck("parent_id", &parentIds)
	if result.Error != nil {
		return nil, result.Error
	}
	return append(parentIds, place.ID), nil
}

// committeeTypeQuery builds the base query for committee types visible
// at a place. A recursive query includes types defined at any ancestor,
// restricted to those whose place type matches the place itself.
// Ancestors are matched as a set, so when more than one ancestor
// defines the same slug, whichever row the database returns first wins.
func (d *MetadataStoreSqlite) committeeTypeQuery(
	place *models.Place,
	recursive bool,
	db *gorm.DB,
) (*gorm.DB, error) {
	query := db.Preload("Roles").Preload("Place").Preload("PlaceType")
	if !recursive {
		return query.Where("place_id = ?", place.ID), nil
	}
	placeIds, err := d.ancestorPlaceIds(place, db)
	if err != nil {
		return nil, err
	}
	return query.Where(
		"place_id IN ? AND place_type_id = ?",
		placeIds,
		place.TypeID,
	), nil
}

// GetCommitteeTypesByPlace returns committee types defined at a place.
// With recursive set, types inherited from ancestor places are included.
func (d *MetadataStoreSqlite) GetCommitteeTypesByPlace(
	place *models.Place,
	recursive bool,
	txn types.Txn,
) ([]models.CommitteeType, error) {
	if place == nil || place.ID == 0 {
		return nil, models.ErrPlaceNotStaged
	}
	db, err := d.resolveReadDB(txn)
	if err != nil {
		return nil, fmt.Errorf(
			"GetCommitteeTypesByPlace: resolve db: %w",
			err,
		)
	}
	query, err := d.committeeTypeQuery(place, recursive, db)
	if err != nil {
		return nil, fmt.Errorf(
			"GetCommitteeTypesByPlace: query chain: %w",
			err,
		)
	}
	var ret []models.CommitteeType
	if result := query.Find(&ret); result.Error != nil {
		return nil, fmt.Errorf(
			"GetCommitteeTypesByPlace: query: %w",
			result.Error,
		)
	}
	return ret, nil
}

// GetCommitteeType returns the committee type with the given slug
// visible at a place, or nil if not found
func (d *MetadataStoreSqlite) GetCommitteeType(
	place *models.Place,
	slug string,
	recursive bool,
	txn types.Txn,
) (*models.CommitteeType, error) {
	if place == nil || place.ID == 0 {
		return nil, models.ErrPlaceNotStaged
	}
	db, err := d.resolveReadDB(txn)
	if err != nil {
		return nil, fmt.Errorf("GetCommitteeType: resolve db: %w", err)
	}
	query, err := d.committeeTypeQuery(place, recursive, db)
	if err != nil {
		return nil, fmt.Errorf(
			"GetCommitteeType: query chain: %w",
			err,
		)
	}
	var ret models.CommitteeType
	result := query.Where("slug = ?", slug).First(&ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("GetCommitteeType: query: %w", result.Error)
	}
	return &ret, nil
}

// AddCommittee stages a committee instance
func (d *MetadataStoreSqlite) AddCommittee(
	committee *models.Committee,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return fmt.Errorf("AddCommittee: resolve db: %w", err)
	}
	if result := db.Create(committee); result.Error != nil {
		return fmt.Errorf(
			"AddCommittee: create committee: %w",
			result.Error,
		)
	}
	d.metrics.committeesCreated.Inc()
	return nil
}

// GetCommittee returns the committee with the given slug at a place.
// The slug is first resolved to a committee type through the ancestor
// chain, so a persisted row whose type is not applicable at the place
// stays invisible. When the type resolves but no committee row exists,
// a transient instance with a zero ID is returned. Nil is returned
// when the slug doesn't resolve at all.
func (d *MetadataStoreSqlite) GetCommittee(
	place *models.Place,
	slug string,
	txn types.Txn,
) (*models.Committee, error) {
	if place == nil || place.ID == 0 {
		return nil, models.ErrPlaceNotStaged
	}
	db, err := d.resolveReadDB(txn)
	if err != nil {
		return nil, fmt.Errorf("GetCommittee: resolve db: %w", err)
	}
	committeeType, err := d.GetCommitteeType(place, slug, true, txn)
	if err != nil {
		return nil, err
	}
	if committeeType == nil {
		return nil, nil
	}
	var ret models.Committee
	result := db.Preload("Type.Roles").
		Where(
			"place_id = ? AND type_id = ?",
			place.ID,
			committeeType.ID,
		).
		First(&ret)
	if result.Error == nil {
		return &ret, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("GetCommittee: query: %w", result.Error)
	}
	return &models.Committee{
		Place:   place,
		Type:    committeeType,
		PlaceID: place.ID,
		TypeID:  committeeType.ID,
	}, nil
}

// GetCommittees returns one committee for every committee type
// applicable at a place, resolved through the ancestor chain. Types
// without a persisted row come back as transient instances.
func (d *MetadataStoreSqlite) GetCommittees(
	place *models.Place,
	txn types.Txn,
) ([]models.Committee, error) {
	if place == nil || place.ID == 0 {
		return nil, models.ErrPlaceNotStaged
	}
	db, err := d.resolveReadDB(txn)
	if err != nil {
		return nil, fmt.Errorf("GetCommittees: resolve db: %w", err)
	}
	committeeTypes, err := d.GetCommitteeTypesByPlace(place, true, txn)
	if err != nil {
		return nil, err
	}
	ret := make([]models.Committee, 0, len(committeeTypes))
	for i := range committeeTypes {
		committeeType := &committeeTypes[i]
		var committee models.Committee
		result := db.Preload("Type.Roles").
			Where(
				"place_id = ? AND type_id = ?",
				place.ID,
				committeeType.ID,
			).
			First(&committee)
		if result.Error != nil {
			if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf(
					"GetCommittees: query: %w",
					result.Error,
				)
			}
			committee = models.Committee{
				Place:   place,
				Type:    committeeType,
				PlaceID: place.ID,
				TypeID:  committeeType.ID,
			}
		}
		ret = append(ret, committee)
	}
	return ret, nil
}

// AddCommitteeMember assigns a member to a role within a committee. A
// transient committee attached to the assignment is staged first so the
// membership row has a real committee to point at.
func (d *MetadataStoreSqlite) AddCommitteeMember(
	committeeMember *models.CommitteeMember,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return fmt.Errorf("AddCommitteeMember: resolve db: %w", err)
	}
	if committeeMember.CommitteeID == 0 &&
		committeeMember.Committee != nil {
		if !committeeMember.Committee.Persisted() {
			if err := d.AddCommittee(committeeMember.Committee, txn); err != nil {
				return err
			}
		}
		committeeMember.CommitteeID = committeeMember.Committee.ID
	}
	if result := db.Create(committeeMember); result.Error != nil {
		return fmt.Errorf(
			"AddCommitteeMember: create committee member: %w",
			result.Error,
		)
	}
	return nil
}

// GetCommitteeMembers returns the role assignments for a committee. A
// transient committee has no rows, so an empty list comes back.
func (d *MetadataStoreSqlite) GetCommitteeMembers(
	committee *models.Committee,
	txn types.Txn,
) ([]models.CommitteeMember, error) {
	if committee == nil || !committee.Persisted() {
		return nil, nil
	}
	db, err := d.resolveReadDB(txn)
	if err != nil {
		return nil, fmt.Errorf(
			"GetCommitteeMembers: resolve db: %w",
			err,
		)
	}
	var ret []models.CommitteeMember
	result := db.Preload("Member").Preload("Role").
		Where("committee_id = ?", committee.ID).
		Find(&ret)
	if result.Error != nil {
		return nil, fmt.Errorf(
			"GetCommitteeMembers: query: %w",
			result.Error,
		)
	}
	return ret, nil
}
