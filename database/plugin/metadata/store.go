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

package metadata

import (
	"fmt"
	"log/slog"

	"github.com/blinklabs-io/cleansweep/database/models"
	"github.com/blinklabs-io/cleansweep/database/plugin"
	"github.com/blinklabs-io/cleansweep/database/plugin/metadata/sqlite"
	"github.com/blinklabs-io/cleansweep/database/types"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// MetadataStore is the interface for the registry metadata database.
// Lookup methods return a nil object and a nil error when no matching
// row exists; an error indicates an actual storage failure.
type MetadataStore interface {
	// Database
	Close() error
	DB() *gorm.DB
	Start() error
	Stop() error
	GetCommitTimestamp() (int64, error)
	SetCommitTimestamp(int64, types.Txn) error
	Transaction() types.Txn

	// Place types
	SetPlaceType(
		*models.PlaceType,
		types.Txn,
	) error
	GetPlaceType(
		string, // shortName
		types.Txn,
	) (*models.PlaceType, error)
	GetPlaceTypes(types.Txn) ([]models.PlaceType, error)
	GetPlaceSubtype(
		*models.PlaceType,
		types.Txn,
	) (*models.PlaceType, error)

	// Places
	AddPlace(
		*models.Place, // parent, nil for top-level
		*models.Place,
		types.Txn,
	) error
	GetPlace(
		string, // key
		types.Txn,
	) (*models.Place, error)
	GetTopLevelPlaces(types.Txn) ([]models.Place, error)
	GetPlaceParents(
		*models.Place,
		types.Txn,
	) ([]models.Place, error)
	GetPlaceParent(
		*models.Place,
		*models.PlaceType,
		types.Txn,
	) (*models.Place, error)
	GetPlacesBelow(
		*models.Place,
		*models.PlaceType, // nil for all types
		types.Txn,
	) ([]models.Place, error)
	GetPlacesBelowCount(
		*models.Place,
		*models.PlaceType,
		types.Txn,
	) (int64, error)
	GetPlaceSiblings(
		*models.Place,
		types.Txn,
	) ([]models.Place, error)
	GetChildPlacesByType(
		*models.Place,
		types.Txn,
	) ([]models.ChildPlaceGroup, error)

	// Members
	AddMember(
		*models.Member,
		types.Txn,
	) error
	GetMemberByEmail(
		string, // email
		types.Txn,
	) (*models.Member, error)
	GetMembersByPlace(
		*models.Place,
		types.Txn,
	) ([]models.Member, error)

	// Committee types
	AddCommitteeType(
		*models.CommitteeType,
		types.Txn,
	) error
	NewCommitteeTypeFromFormData(
		*models.Place,
		*models.CommitteeTypeFormData,
		types.Txn,
	) (*models.CommitteeType, error)
	GetCommitteeTypesByPlace(
		*models.Place,
		bool, // recursive
		types.Txn,
	) ([]models.CommitteeType, error)
	GetCommitteeType(
		*models.Place,
		string, // slug
		bool, // recursive
		types.Txn,
	) (*models.CommitteeType, error)

	// Committees
	AddCommittee(
		*models.Committee,
		types.Txn,
	) error
	GetCommittee(
		*models.Place,
		string, // slug
		types.Txn,
	) (*models.Committee, error)
	GetCommittees(
		*models.Place,
		types.Txn,
	) ([]models.Committee, error)
	AddCommitteeMember(
		*models.CommitteeMember,
		types.Txn,
	) error
	GetCommitteeMembers(
		*models.Committee,
		types.Txn,
	) ([]models.CommitteeMember, error)
}

// New returns the metadata store selected by name. The default sqlite
// store is constructed directly so the caller's logger and metrics
// registry are wired through; any other name goes through the plugin
// registry.
func New(
	pluginName, dataDir string,
	logger *slog.Logger,
	promRegistry prometheus.Registerer,
) (MetadataStore, error) {
	if pluginName == "" || pluginName == "sqlite" {
		return sqlite.New(dataDir, logger, promRegistry)
	}

	// Get and start the plugin
	p, err := plugin.StartPlugin(plugin.PluginTypeMetadata, pluginName)
	if err != nil {
		return nil, err
	}

	// Type assert to MetadataStore interface
	metadataStore, ok := p.(MetadataStore)
	if !ok {
		return nil, fmt.Errorf(
			"plugin '%s' does not implement MetadataStore interface",
			pluginName,
		)
	}

	return metadataStore, nil
}
