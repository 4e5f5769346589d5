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
)

// AddMember stages a new member. Email and phone are enforced unique
// by the schema, so a duplicate surfaces as a constraint error.
func (d *MetadataStoreSqlite) AddMember(
	member *models.Member,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return fmt.Errorf("AddMember: resolve db: %w", err)
	}
	if result := db.Create(member); result.Error != nil {
		return fmt.Errorf("AddMember: create member: %w", result.Error)
	}
	d.metrics.membersCreated.Inc()
	return nil
}

// GetMemberByEmail returns a member by email address, or nil if not found
func (d *MetadataStoreSqlite) GetMemberByEmail(
	email string,
	txn types.Txn,
) (*models.Member, error) {
	var ret models.Member
	db, err := d.resolveReadDB(txn)
	if err != nil {
		return nil, fmt.Errorf("GetMemberByEmail: resolve db: %w", err)
	}
	result := db.Preload("Place").Where("email = ?", email).First(&ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("GetMemberByEmail: query: %w", result.Error)
	}
	return &ret, nil
}

// GetMembersByPlace returns all members registered at a place, ordered
// by name
func (d *MetadataStoreSqlite) GetMembersByPlace(
	place *models.Place,
	txn types.Txn,
) ([]models.Member, error) {
	if place == nil || place.ID == 0 {
		return nil, models.ErrPlaceNotStaged
	}
	var ret []models.Member
	db, err := d.resolveReadDB(txn)
	if err != nil {
		return nil, fmt.Errorf("GetMembersByPlace: resolve db: %w", err)
	}
	result := db.Where("place_id = ?", place.ID).Order("name").Find(&ret)
	if result.Error != nil {
		return nil, fmt.Errorf(
			"GetMembersByPlace: query: %w",
			result.Error,
		)
	}
	return ret, nil
}
