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

// CommitteeType is a reusable committee template. It declares that
// places of PlaceType below Place may instantiate a committee with the
// role slots described by Roles. Unique on (place_id, slug).
type CommitteeType struct {
	Place       *Place     `gorm:"foreignKey:PlaceID"`
	PlaceType   *PlaceType `gorm:"foreignKey:PlaceTypeID"`
	Name        string     `gorm:"not null"`
	Slug        string     `gorm:"index:idx_committee_type_place_slug,unique,priority:2;not null"`
	Description string
	Roles       []CommitteeRole `gorm:"foreignKey:CommitteeTypeID"`
	ID          uint            `gorm:"primarykey"`
	PlaceID     uint            `gorm:"index:idx_committee_type_place_slug,unique,priority:1"`
	PlaceTypeID uint            `gorm:"index"`
}

func (CommitteeType) TableName() string {
	return "committee_type"
}

// CommitteeRole is one named role slot within a committee template.
type CommitteeRole struct {
	Role            string `gorm:"not null"`
	Permission      string
	ID              uint `gorm:"primarykey"`
	CommitteeTypeID uint `gorm:"index"`
	Multiple        bool
}

func (CommitteeRole) TableName() string {
	return "committee_role"
}

// Committee is a concrete committee instantiated at a specific place,
// following a committee type's template. Committees are created lazily
// on first access and persisted only when the caller commits, so a
// value with a zero ID is a transient instance that has not been
// staged yet.
type Committee struct {
	Place   *Place         `gorm:"foreignKey:PlaceID"`
	Type    *CommitteeType `gorm:"foreignKey:TypeID"`
	ID      uint           `gorm:"primarykey"`
	PlaceID uint           `gorm:"index"`
	TypeID  uint           `gorm:"index"`
}

func (Committee) TableName() string {
	return "committee"
}

// Persisted reports whether this committee exists as a row in the
// store, as opposed to a transient instance built during resolution.
func (c *Committee) Persisted() bool {
	return c.ID != 0
}

// CommitteeMember assigns a member to a role within a committee.
type CommitteeMember struct {
	Committee   *Committee     `gorm:"foreignKey:CommitteeID"`
	Member      *Member        `gorm:"foreignKey:MemberID"`
	Role        *CommitteeRole `gorm:"foreignKey:RoleID"`
	ID          uint           `gorm:"primarykey"`
	CommitteeID uint           `gorm:"index"`
	MemberID    uint           `gorm:"index"`
	RoleID      uint           `gorm:"index"`
}

func (CommitteeMember) TableName() string {
	return "committee_member"
}

// CommitteeTypeFormData is the structured input used to build a new
// committee type along with its role rows. Level carries the short
// name of the place type the template applies to.
type CommitteeTypeFormData struct {
	Level       string
	Name        string
	Slug        string
	Description string
	Roles       []CommitteeRoleFormData
}

// CommitteeRoleFormData describes one role slot in form input. Roles
// with a blank name are skipped. Multiple is the literal form value;
// "yes" allows more than one member in the role.
type CommitteeRoleFormData struct {
	Name       string
	Multiple   string
	Permission string
}
