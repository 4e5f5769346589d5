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

var ErrPlaceNotStaged = errors.New("place has not been staged")

// Place is a node in the administrative hierarchy. IparentID points at
// the direct parent; the full ancestor chain is materialized separately
// in PlaceParent rows for fast descendant queries.
type Place struct {
	Type      *PlaceType `gorm:"foreignKey:TypeID"`
	Iparent   *Place     `gorm:"foreignKey:IparentID"`
	IparentID *uint      `gorm:"index"`
	Key       string     `gorm:"index;not null"`
	Name      string     `gorm:"not null"`
	ID        uint       `gorm:"primarykey"`
	TypeID    uint       `gorm:"index;not null"`
}

func (Place) TableName() string {
	return "place"
}

// PlaceParent materializes the ancestor chain of a place. Position is
// the index within the chain, starting at zero for the most distant
// ancestor. Rows are written once when the place is added under its
// parent and are never recomputed if iparent later changes.
type PlaceParent struct {
	ID       uint `gorm:"primarykey"`
	ChildID  uint `gorm:"index"`
	ParentID uint `gorm:"index"`
	Position int  `gorm:"not null"`
}

func (PlaceParent) TableName() string {
	return "place_parents"
}

// ChildPlaceGroup is one group returned by GetChildPlacesByType: a
// place type along with the immediate children of that type, ordered
// by key.
type ChildPlaceGroup struct {
	Type   *PlaceType
	Places []Place
}
