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
	"testing"

	"github.com/blinklabs-io/cleansweep/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createCommitteeType(
	t *testing.T,
	store *MetadataStoreSqlite,
	place *models.Place,
	placeType *models.PlaceType,
	name, slug string,
	roles ...string,
) *models.CommitteeType {
	t.Helper()
	committeeType := &models.CommitteeType{
		PlaceID:     place.ID,
		PlaceTypeID: placeType.ID,
		Name:        name,
		Slug:        slug,
	}
	for _, role := range roles {
		committeeType.Roles = append(
			committeeType.Roles,
			models.CommitteeRole{Role: role},
		)
	}
	require.NoError(t, store.AddCommitteeType(committeeType, nil))
	require.NotZero(t, committeeType.ID)
	return committeeType
}

func TestNewCommitteeTypeFromFormData(t *testing.T) {
	store := setupTestStore(t)
	countryType := createPlaceType(t, store, "Country", "country", 10)
	stateType := createPlaceType(t, store, "State", "state", 20)
	india := createPlace(t, store, nil, countryType, "india", "India")

	committeeType, err := store.NewCommitteeTypeFromFormData(
		india,
		&models.CommitteeTypeFormData{
			Level:       "state",
			Name:        "Sanitation Committee",
			Slug:        "sanitation",
			Description: "Keeps the streets clean",
			Roles: []models.CommitteeRoleFormData{
				{Name: "Chair", Multiple: "no"},
				{Name: "  "},
				{Name: "Member", Multiple: "yes"},
			},
		},
		nil,
	)
	require.NoError(t, err)
	require.NotNil(t, committeeType)
	assert.NotZero(t, committeeType.ID)
	assert.Equal(t, india.ID, committeeType.PlaceID)
	assert.Equal(t, stateType.ID, committeeType.PlaceTypeID)

	// Blank role names are skipped
	require.Len(t, committeeType.Roles, 2)
	assert.Equal(t, "Chair", committeeType.Roles[0].Role)
	assert.False(t, committeeType.Roles[0].Multiple)
	assert.Equal(t, "Member", committeeType.Roles[1].Role)
	assert.True(t, committeeType.Roles[1].Multiple)
}

func TestNewCommitteeTypeFromFormDataUnknownLevel(t *testing.T) {
	store := setupTestStore(t)
	countryType := createPlaceType(t, store, "Country", "country", 10)
	india := createPlace(t, store, nil, countryType, "india", "India")

	_, err := store.NewCommitteeTypeFromFormData(
		india,
		&models.CommitteeTypeFormData{
			Level: "galaxy",
			Name:  "Sanitation Committee",
			Slug:  "sanitation",
		},
		nil,
	)
	require.ErrorIs(t, err, models.ErrPlaceTypeNotFound)
}

func TestGetCommitteeTypesByPlace(t *testing.T) {
	store := setupTestStore(t)
	countryType := createPlaceType(t, store, "Country", "country", 10)
	stateType := createPlaceType(t, store, "State", "state", 20)
	regionType := createPlaceType(t, store, "Region", "region", 30)

	india := createPlace(t, store, nil, countryType, "india", "India")
	maharashtra := createPlace(
		t, store, india, stateType, "maharashtra", "Maharashtra",
	)
	pune := createPlace(t, store, maharashtra, regionType, "pune", "Pune")

	// Defined at the country for states and regions respectively
	createCommitteeType(
		t, store, india, stateType, "State Sanitation", "sanitation", "Chair",
	)
	createCommitteeType(
		t, store, india, regionType, "Region Water", "water", "Chair",
	)
	// Defined at the state for regions
	createCommitteeType(
		t, store, maharashtra, regionType, "Region Roads", "roads", "Chair",
	)

	// Non-recursive listing only includes types defined at the place
	committeeTypes, err := store.GetCommitteeTypesByPlace(
		maharashtra, false, nil,
	)
	require.NoError(t, err)
	require.Len(t, committeeTypes, 1)
	assert.Equal(t, "roads", committeeTypes[0].Slug)

	// Recursive listing at a state only matches state-targeted types
	committeeTypes, err = store.GetCommitteeTypesByPlace(
		maharashtra, true, nil,
	)
	require.NoError(t, err)
	require.Len(t, committeeTypes, 1)
	assert.Equal(t, "sanitation", committeeTypes[0].Slug)

	// Recursive listing at a region picks up both ancestors
	committeeTypes, err = store.GetCommitteeTypesByPlace(pune, true, nil)
	require.NoError(t, err)
	require.Len(t, committeeTypes, 2)
	slugs := []string{committeeTypes[0].Slug, committeeTypes[1].Slug}
	assert.Contains(t, slugs, "water")
	assert.Contains(t, slugs, "roads")
}

func TestGetCommitteeType(t *testing.T) {
	store := setupTestStore(t)
	countryType := createPlaceType(t, store, "Country", "country", 10)
	stateType := createPlaceType(t, store, "State", "state", 20)

	india := createPlace(t, store, nil, countryType, "india", "India")
	maharashtra := createPlace(
		t, store, india, stateType, "maharashtra", "Maharashtra",
	)
	createCommitteeType(
		t, store, india, stateType, "State Sanitation", "sanitation",
		"Chair", "Secretary",
	)

	// Inherited type resolves recursively
	committeeType, err := store.GetCommitteeType(
		maharashtra, "sanitation", true, nil,
	)
	require.NoError(t, err)
	require.NotNil(t, committeeType)
	assert.Equal(t, "State Sanitation", committeeType.Name)
	assert.Len(t, committeeType.Roles, 2)
	require.NotNil(t, committeeType.Place)
	assert.Equal(t, "india", committeeType.Place.Key)

	// Not visible without recursion since it's defined at the country
	committeeType, err = store.GetCommitteeType(
		maharashtra, "sanitation", false, nil,
	)
	require.NoError(t, err)
	assert.Nil(t, committeeType)

	// Unknown slug is not an error
	committeeType, err = store.GetCommitteeType(
		maharashtra, "galaxy", true, nil,
	)
	require.NoError(t, err)
	assert.Nil(t, committeeType)
}

func TestGetCommitteeTransient(t *testing.T) {
	store := setupTestStore(t)
	countryType := createPlaceType(t, store, "Country", "country", 10)
	stateType := createPlaceType(t, store, "State", "state", 20)

	india := createPlace(t, store, nil, countryType, "india", "India")
	maharashtra := createPlace(
		t, store, india, stateType, "maharashtra", "Maharashtra",
	)
	createCommitteeType(
		t, store, india, stateType, "State Sanitation", "sanitation", "Chair",
	)

	// Resolves to a transient instance until a row is staged
	committee, err := store.GetCommittee(maharashtra, "sanitation", nil)
	require.NoError(t, err)
	require.NotNil(t, committee)
	assert.False(t, committee.Persisted())
	require.NotNil(t, committee.Type)
	assert.Equal(t, "sanitation", committee.Type.Slug)
	assert.Equal(t, maharashtra.ID, committee.PlaceID)

	// Repeated lookups stay transient
	again, err := store.GetCommittee(maharashtra, "sanitation", nil)
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.False(t, again.Persisted())

	// Unresolvable slug returns nothing
	committee, err = store.GetCommittee(maharashtra, "galaxy", nil)
	require.NoError(t, err)
	assert.Nil(t, committee)

	// Listing materializes one transient committee per applicable type
	committees, err := store.GetCommittees(maharashtra, nil)
	require.NoError(t, err)
	require.Len(t, committees, 1)
	assert.False(t, committees[0].Persisted())
	require.NotNil(t, committees[0].Type)
	assert.Equal(t, "sanitation", committees[0].Type.Slug)
}

func TestGetCommitteePersisted(t *testing.T) {
	store := setupTestStore(t)
	countryType := createPlaceType(t, store, "Country", "country", 10)
	stateType := createPlaceType(t, store, "State", "state", 20)

	india := createPlace(t, store, nil, countryType, "india", "India")
	maharashtra := createPlace(
		t, store, india, stateType, "maharashtra", "Maharashtra",
	)
	createCommitteeType(
		t, store, india, stateType, "State Sanitation", "sanitation", "Chair",
	)

	transient, err := store.GetCommittee(maharashtra, "sanitation", nil)
	require.NoError(t, err)
	require.NotNil(t, transient)
	require.NoError(t, store.AddCommittee(transient, nil))
	require.True(t, transient.Persisted())

	committee, err := store.GetCommittee(maharashtra, "sanitation", nil)
	require.NoError(t, err)
	require.NotNil(t, committee)
	assert.True(t, committee.Persisted())
	assert.Equal(t, transient.ID, committee.ID)

	committees, err := store.GetCommittees(maharashtra, nil)
	require.NoError(t, err)
	require.Len(t, committees, 1)
	assert.True(t, committees[0].Persisted())
	require.NotNil(t, committees[0].Type)
	assert.Equal(t, "sanitation", committees[0].Type.Slug)
}

func TestGetCommitteeIgnoresInapplicableType(t *testing.T) {
	store := setupTestStore(t)
	countryType := createPlaceType(t, store, "Country", "country", 10)
	stateType := createPlaceType(t, store, "State", "state", 20)
	regionType := createPlaceType(t, store, "Region", "region", 30)

	india := createPlace(t, store, nil, countryType, "india", "India")
	maharashtra := createPlace(
		t, store, india, stateType, "maharashtra", "Maharashtra",
	)

	// A type defined at the place itself but targeting regions, so it
	// never applies to the state, even with a persisted row
	regionOnly := createCommitteeType(
		t, store, maharashtra, regionType, "Region Sanitation",
		"sanitation", "Chair",
	)
	require.NoError(t, store.AddCommittee(&models.Committee{
		PlaceID: maharashtra.ID,
		TypeID:  regionOnly.ID,
	}, nil))

	committee, err := store.GetCommittee(maharashtra, "sanitation", nil)
	require.NoError(t, err)
	assert.Nil(t, committee)

	// An applicable ancestor type with the same slug resolves to a
	// transient instance instead of the inapplicable persisted row
	applicable := createCommitteeType(
		t, store, india, stateType, "State Sanitation", "sanitation",
		"Chair",
	)
	committee, err = store.GetCommittee(maharashtra, "sanitation", nil)
	require.NoError(t, err)
	require.NotNil(t, committee)
	assert.False(t, committee.Persisted())
	assert.Equal(t, applicable.ID, committee.TypeID)
}

func TestAddCommitteeMemberStagesTransientCommittee(t *testing.T) {
	store := setupTestStore(t)
	countryType := createPlaceType(t, store, "Country", "country", 10)
	stateType := createPlaceType(t, store, "State", "state", 20)

	india := createPlace(t, store, nil, countryType, "india", "India")
	maharashtra := createPlace(
		t, store, india, stateType, "maharashtra", "Maharashtra",
	)
	committeeType := createCommitteeType(
		t, store, india, stateType, "State Sanitation", "sanitation",
		"Chair",
	)
	member := &models.Member{
		Name:    "Asha Kamble",
		Email:   "asha@example.com",
		Phone:   "+91-5550101",
		PlaceID: maharashtra.ID,
	}
	require.NoError(t, store.AddMember(member, nil))

	committee, err := store.GetCommittee(maharashtra, "sanitation", nil)
	require.NoError(t, err)
	require.NotNil(t, committee)
	require.False(t, committee.Persisted())

	// No assignments against a transient committee
	members, err := store.GetCommitteeMembers(committee, nil)
	require.NoError(t, err)
	assert.Empty(t, members)

	// Assignment stages the transient committee on the way in
	assignment := &models.CommitteeMember{
		Committee: committee,
		MemberID:  member.ID,
		RoleID:    committeeType.Roles[0].ID,
	}
	require.NoError(t, store.AddCommitteeMember(assignment, nil))
	assert.True(t, committee.Persisted())
	assert.Equal(t, committee.ID, assignment.CommitteeID)

	persisted, err := store.GetCommittee(maharashtra, "sanitation", nil)
	require.NoError(t, err)
	require.NotNil(t, persisted)
	require.True(t, persisted.Persisted())

	members, err = store.GetCommitteeMembers(persisted, nil)
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.NotNil(t, members[0].Member)
	assert.Equal(t, "Asha Kamble", members[0].Member.Name)
	require.NotNil(t, members[0].Role)
	assert.Equal(t, "Chair", members[0].Role.Role)
}
