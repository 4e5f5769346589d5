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

// Member is a person tied to a single place, eligible to fill
// committee roles. Duplicate email or phone surfaces as a store-level
// constraint violation at commit time rather than a domain error.
type Member struct {
	Place   *Place `gorm:"foreignKey:PlaceID"`
	Name    string `gorm:"not null"`
	Email   string `gorm:"uniqueIndex"`
	Phone   string `gorm:"uniqueIndex;not null"`
	ID      uint   `gorm:"primarykey"`
	PlaceID uint   `gorm:"index"`
}

func (Member) TableName() string {
	return "member"
}
