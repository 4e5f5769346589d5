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

package models

import "errors"

var ErrPlaceTypeNotFound = errors.New("place type not found")

// PlaceType classifies places in the administrative hierarchy, like
// country, state or region. Types are ordered by level, with lower
// numbers being coarser:
//
//	10 for country
//	20 for state
//	30 for region
//
// A PlaceType is immutable once places reference it.
type PlaceType struct {
	Name      string `gorm:"not null"`
	ShortName string `gorm:"uniqueIndex;not null"`
	ID        uint   `gorm:"primarykey"`
	Level     int    `gorm:"not null"`
}

func (PlaceType) TableName() string {
	return "place_type"
}
