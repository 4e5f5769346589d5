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

func TestPlaceTypes(t *testing.T) {
	store := setupTestStore(t)
	createPlaceType(t, store, "Region", "region", 30)
	createPlaceType(t, store, "Country", "country", 10)
	createPlaceType(t, store, "State", "state", 20)

	// Lookup by short name
	placeType, err := store.GetPlaceType("state", nil)
	require.NoError(t, err)
	require.NotNil(t, placeType)
	assert.Equal(t, "State", placeType.Name)
	assert.Equal(t, 20, placeType.Level)

	// Unknown short name is not an error
	missing, err := store.GetPlaceType("galaxy", nil)
	require.NoError(t, err)
	assert.Nil(t, missing)

	// Listing is ordered from broadest to narrowest
	placeTypes, err := store.GetPlaceTypes(nil)
	require.NoError(t, err)
	require.Len(t, placeTypes, 3)
	assert.Equal(t, "country", placeTypes[0].ShortName)
	assert.Equal(t, "state", placeTypes[1].ShortName)
	assert.Equal(t, "region", placeTypes[2].ShortName)
}

func TestSetPlaceTypeUpsert(t *testing.T) {
	store := setupTestStore(t)
	original := createPlaceType(t, store, "State", "state", 20)

	// Same short name updates in place
	update := &models.PlaceType{
		Name:      "Province",
		ShortName: "state",
		Level:     25,
	}
	require.NoError(t, store.SetPlaceType(update, nil))
	assert.Equal(t, original.ID, update.ID)

	placeType, err := store.GetPlaceType("state", nil)
	require.NoError(t, err)
	require.NotNil(t, placeType)
	assert.Equal(t, "Province", placeType.Name)
	assert.Equal(t, 25, placeType.Level)
}

func TestGetPlaceSubtype(t *testing.T) {
	store := setupTestStore(t)
	country := createPlaceType(t, store, "Country", "country", 10)
	state := createPlaceType(t, store, "State", "state", 20)
	region := createPlaceType(t, store, "Region", "region", 30)

	subtype, err := store.GetPlaceSubtype(country, nil)
	require.NoError(t, err)
	require.NotNil(t, subtype)
	assert.Equal(t, state.ID, subtype.ID)

	subtype, err = store.GetPlaceSubtype(state, nil)
	require.NoError(t, err)
	require.NotNil(t, subtype)
	assert.Equal(t, region.ID, subtype.ID)

	// Narrowest type has no subtype
	subtype, err = store.GetPlaceSubtype(region, nil)
	require.NoError(t, err)
	assert.Nil(t, subtype)
}

func TestPlaceAncestorChain(t *testing.T) {
	store := setupTestStore(t)
	countryType := createPlaceType(t, store, "Country", "country", 10)
	stateType := createPlaceType(t, store, "State", "state", 20)
	regionType := createPlaceType(t, store, "Region", "region", 30)

	india := createPlace(t, store, nil, countryType, "india", "India")
	maharashtra := createPlace(
		t, store, india, stateType, "maharashtra", "Maharashtra",
	)
	pune := createPlace(t, store, maharashtra, regionType, "pune", "Pune")

	// Top-level place has no ancestors
	parents, err := store.GetPlaceParents(india, nil)
	require.NoError(t, err)
	assert.Empty(t, parents)

	// Chain is parent's chain plus the parent, root first
	parents, err = store.GetPlaceParents(maharashtra, nil)
	require.NoError(t, err)
	require.Len(t, parents, 1)
	assert.Equal(t, "india", parents[0].Key)

	parents, err = store.GetPlaceParents(pune, nil)
	require.NoError(t, err)
	require.Len(t, parents, 2)
	assert.Equal(t, "india", parents[0].Key)
	assert.Equal(t, "maharashtra", parents[1].Key)

	// Ancestor lookup by type
	parent, err := store.GetPlaceParent(pune, countryType, nil)
	require.NoError(t, err)
	require.NotNil(t, parent)
	assert.Equal(t, "india", parent.Key)

	parent, err = store.GetPlaceParent(pune, stateType, nil)
	require.NoError(t, err)
	require.NotNil(t, parent)
	assert.Equal(t, "maharashtra", parent.Key)

	// No ancestor of the place's own type
	parent, err = store.GetPlaceParent(pune, regionType, nil)
	require.NoError(t, err)
	assert.Nil(t, parent)
}

func TestAddPlaceRequiresStagedParent(t *testing.T) {
	store := setupTestStore(t)
	stateType := createPlaceType(t, store, "State", "state", 20)

	unstaged := &models.Place{
		Key:    "nowhere",
		Name:   "Nowhere",
		TypeID: stateType.ID,
	}
	child := &models.Place{
		Key:    "child",
		Name:   "Child",
		TypeID: stateType.ID,
	}
	err := store.AddPlace(unstaged, child, nil)
	require.ErrorIs(t, err, models.ErrPlaceNotStaged)
}

func TestGetTopLevelPlaces(t *testing.T) {
	store := setupTestStore(t)
	countryType := createPlaceType(t, store, "Country", "country", 10)
	stateType := createPlaceType(t, store, "State", "state", 20)

	createPlace(t, store, nil, countryType, "nepal", "Nepal")
	india := createPlace(t, store, nil, countryType, "india", "India")
	createPlace(t, store, india, stateType, "goa", "Goa")

	places, err := store.GetTopLevelPlaces(nil)
	require.NoError(t, err)
	require.Len(t, places, 2)
	// Ordered by key
	assert.Equal(t, "india", places[0].Key)
	assert.Equal(t, "nepal", places[1].Key)
	require.NotNil(t, places[0].Type)
	assert.Equal(t, "country", places[0].Type.ShortName)
}

func TestGetPlacesBelow(t *testing.T) {
	store := setupTestStore(t)
	countryType := createPlaceType(t, store, "Country", "country", 10)
	stateType := createPlaceType(t, store, "State", "state", 20)
	regionType := createPlaceType(t, store, "Region", "region", 30)

	india := createPlace(t, store, nil, countryType, "india", "India")
	karnataka := createPlace(
		t, store, india, stateType, "karnataka", "Karnataka",
	)
	maharashtra := createPlace(
		t, store, india, stateType, "maharashtra", "Maharashtra",
	)
	createPlace(t, store, karnataka, regionType, "bangalore", "Bangalore")
	createPlace(t, store, maharashtra, regionType, "pune", "Pune")

	// All descendants at any depth
	below, err := store.GetPlacesBelow(india, nil, nil)
	require.NoError(t, err)
	require.Len(t, below, 4)

	// Filtered by type, ordered by key
	regions, err := store.GetPlacesBelow(india, regionType, nil)
	require.NoError(t, err)
	require.Len(t, regions, 2)
	assert.Equal(t, "bangalore", regions[0].Key)
	assert.Equal(t, "pune", regions[1].Key)

	// Descendants of a mid-level place
	below, err = store.GetPlacesBelow(karnataka, nil, nil)
	require.NoError(t, err)
	require.Len(t, below, 1)
	assert.Equal(t, "bangalore", below[0].Key)

	// Counts match
	count, err := store.GetPlacesBelowCount(india, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	count, err = store.GetPlacesBelowCount(india, stateType, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestGetPlaceSiblings(t *testing.T) {
	store := setupTestStore(t)
	countryType := createPlaceType(t, store, "Country", "country", 10)
	stateType := createPlaceType(t, store, "State", "state", 20)
	regionType := createPlaceType(t, store, "Region", "region", 30)

	india := createPlace(t, store, nil, countryType, "india", "India")
	createPlace(t, store, nil, countryType, "nepal", "Nepal")
	karnataka := createPlace(
		t, store, india, stateType, "karnataka", "Karnataka",
	)
	createPlace(t, store, india, stateType, "maharashtra", "Maharashtra")
	bangalore := createPlace(
		t, store, karnataka, regionType, "bangalore", "Bangalore",
	)
	createPlace(t, store, karnataka, regionType, "mysore", "Mysore")

	// Siblings under the same nearest ancestor, self included
	siblings, err := store.GetPlaceSiblings(bangalore, nil)
	require.NoError(t, err)
	require.Len(t, siblings, 2)
	assert.Equal(t, "bangalore", siblings[0].Key)
	assert.Equal(t, "mysore", siblings[1].Key)

	siblings, err = store.GetPlaceSiblings(karnataka, nil)
	require.NoError(t, err)
	require.Len(t, siblings, 2)
	assert.Equal(t, "karnataka", siblings[0].Key)
	assert.Equal(t, "maharashtra", siblings[1].Key)

	// Top-level places fall back to all places of the same type
	siblings, err = store.GetPlaceSiblings(india, nil)
	require.NoError(t, err)
	require.Len(t, siblings, 2)
	assert.Equal(t, "india", siblings[0].Key)
	assert.Equal(t, "nepal", siblings[1].Key)
}

func TestGetPlaceSiblingsNarrowestAncestorType(t *testing.T) {
	store := setupTestStore(t)
	countryType := createPlaceType(t, store, "Country", "country", 10)
	stateType := createPlaceType(t, store, "State", "state", 20)
	regionType := createPlaceType(t, store, "Region", "region", 30)

	// A chain whose type levels don't follow the nesting order. The
	// nearest ancestor is the one with the narrowest type, not the
	// direct parent.
	india := createPlace(t, store, nil, countryType, "india", "India")
	delhi := createPlace(t, store, india, regionType, "delhi", "Delhi")
	oddState := createPlace(t, store, delhi, stateType, "odd", "Odd State")
	zoneA := createPlace(t, store, oddState, regionType, "zone-a", "Zone A")
	createPlace(t, store, delhi, regionType, "zone-b", "Zone B")

	// zone-a's ancestors are [india, delhi, odd], and delhi has the
	// narrowest type, so both zones below delhi are siblings
	siblings, err := store.GetPlaceSiblings(zoneA, nil)
	require.NoError(t, err)
	require.Len(t, siblings, 2)
	assert.Equal(t, "zone-a", siblings[0].Key)
	assert.Equal(t, "zone-b", siblings[1].Key)
}

func TestGetChildPlacesByType(t *testing.T) {
	store := setupTestStore(t)
	countryType := createPlaceType(t, store, "Country", "country", 10)
	stateType := createPlaceType(t, store, "State", "state", 20)
	regionType := createPlaceType(t, store, "Region", "region", 30)

	india := createPlace(t, store, nil, countryType, "india", "India")
	// Mixed direct children of different types
	createPlace(t, store, india, regionType, "delhi", "Delhi")
	createPlace(t, store, india, stateType, "maharashtra", "Maharashtra")
	createPlace(t, store, india, stateType, "karnataka", "Karnataka")

	groups, err := store.GetChildPlacesByType(india, nil)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	// Groups ordered from broadest to narrowest type
	assert.Equal(t, "state", groups[0].Type.ShortName)
	require.Len(t, groups[0].Places, 2)
	assert.Equal(t, "karnataka", groups[0].Places[0].Key)
	assert.Equal(t, "maharashtra", groups[0].Places[1].Key)

	assert.Equal(t, "region", groups[1].Type.ShortName)
	require.Len(t, groups[1].Places, 1)
	assert.Equal(t, "delhi", groups[1].Places[0].Key)

	// Grandchildren are not included
	karnataka, err := store.GetPlace("karnataka", nil)
	require.NoError(t, err)
	require.NotNil(t, karnataka)
	createPlace(t, store, karnataka, regionType, "mysore", "Mysore")
	groups, err = store.GetChildPlacesByType(india, nil)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	require.Len(t, groups[1].Places, 1)
}
