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

package main

import (
	"fmt"
	"log/slog"
	"os"

	cleansweep "github.com/blinklabs-io/cleansweep"
	"github.com/blinklabs-io/cleansweep/database"
	"github.com/blinklabs-io/cleansweep/database/models"
	"github.com/blinklabs-io/cleansweep/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// seedFile is the YAML format consumed by the load command. Places nest
// to describe the hierarchy, and committee types use the same form
// shape as interactive input.
type seedFile struct {
	PlaceTypes []seedPlaceType `yaml:"placeTypes"`
	Places     []seedPlace     `yaml:"places"`
	Committees []seedCommittee `yaml:"committeeTypes"`
	Members    []seedMember    `yaml:"members"`
}

type seedPlaceType struct {
	Name      string `yaml:"name"`
	ShortName string `yaml:"shortName"`
	Level     int    `yaml:"level"`
}

type seedPlace struct {
	Key    string      `yaml:"key"`
	Name   string      `yaml:"name"`
	Type   string      `yaml:"type"`
	Places []seedPlace `yaml:"places"`
}

type seedCommittee struct {
	Place       string     `yaml:"place"`
	Level       string     `yaml:"level"`
	Name        string     `yaml:"name"`
	Slug        string     `yaml:"slug"`
	Description string     `yaml:"description"`
	Roles       []seedRole `yaml:"roles"`
}

type seedRole struct {
	Name       string `yaml:"name"`
	Multiple   string `yaml:"multiple"`
	Permission string `yaml:"permission"`
}

type seedMember struct {
	Place string `yaml:"place"`
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
	Phone string `yaml:"phone"`
}

func openRegistry(
	cfg *config.Config,
	logger *slog.Logger,
) (*cleansweep.Registry, error) {
	r, err := cleansweep.New(cleansweep.NewConfig(
		cleansweep.WithLogger(logger),
		cleansweep.WithDataDir(cfg.DataDir),
		cleansweep.WithMetadataPlugin(cfg.MetadataPlugin),
		cleansweep.WithMetricsPort(cfg.MetricsPort),
		cleansweep.WithPrometheusRegistry(prometheus.DefaultRegisterer),
		cleansweep.WithTracing(cfg.Tracing),
		cleansweep.WithTracingStdout(cfg.TracingStdout),
	))
	if err != nil {
		return nil, err
	}
	if err := r.Start(); err != nil {
		return nil, err
	}
	return r, nil
}

func loadSeedPlaces(
	db *database.Database,
	parent *models.Place,
	seeds []seedPlace,
	txn *database.Txn,
) error {
	for _, seed := range seeds {
		placeType, err := db.GetPlaceType(seed.Type, txn)
		if err != nil {
			return err
		}
		if placeType == nil {
			return fmt.Errorf("unknown place type: %s", seed.Type)
		}
		place := &models.Place{
			Key:    seed.Key,
			Name:   seed.Name,
			TypeID: placeType.ID,
		}
		if err := db.AddPlace(parent, place, txn); err != nil {
			return err
		}
		if err := loadSeedPlaces(db, place, seed.Places, txn); err != nil {
			return err
		}
	}
	return nil
}

func loadSeed(db *database.Database, seed *seedFile) error {
	txn := db.Transaction(true)
	defer txn.Release()
	return txn.Do(func(t *database.Txn) error {
		for _, pt := range seed.PlaceTypes {
			placeType := &models.PlaceType{
				Name:      pt.Name,
				ShortName: pt.ShortName,
				Level:     pt.Level,
			}
			if err := db.SetPlaceType(placeType, t); err != nil {
				return err
			}
		}
		if err := loadSeedPlaces(db, nil, seed.Places, t); err != nil {
			return err
		}
		for _, ct := range seed.Committees {
			place, err := db.GetPlace(ct.Place, t)
			if err != nil {
				return err
			}
			if place == nil {
				return fmt.Errorf("unknown place: %s", ct.Place)
			}
			formData := &models.CommitteeTypeFormData{
				Level:       ct.Level,
				Name:        ct.Name,
				Slug:        ct.Slug,
				Description: ct.Description,
			}
			for _, role := range ct.Roles {
				formData.Roles = append(
					formData.Roles,
					models.CommitteeRoleFormData{
						Name:       role.Name,
						Multiple:   role.Multiple,
						Permission: role.Permission,
					},
				)
			}
			if _, err := db.NewCommitteeTypeFromFormData(place, formData, t); err != nil {
				return err
			}
		}
		for _, m := range seed.Members {
			place, err := db.GetPlace(m.Place, t)
			if err != nil {
				return err
			}
			if place == nil {
				return fmt.Errorf("unknown place: %s", m.Place)
			}
			member := &models.Member{
				PlaceID: place.ID,
				Name:    m.Name,
				Email:   m.Email,
				Phone:   m.Phone,
			}
			if err := db.AddMember(member, t); err != nil {
				return err
			}
		}
		return nil
	})
}

func loadRun(args []string, cfg *config.Config) {
	logger := commonRun()
	buf, err := os.ReadFile(args[0])
	if err != nil {
		slog.Error("failed to read seed file", "error", err)
		os.Exit(1)
	}
	var seed seedFile
	if err := yaml.Unmarshal(buf, &seed); err != nil {
		slog.Error("failed to parse seed file", "error", err)
		os.Exit(1)
	}
	r, err := openRegistry(cfg, logger)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	defer r.Stop() //nolint:errcheck
	if err := loadSeed(r.DB(), &seed); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	logger.Info(
		"seed data loaded",
		"component", programName,
		"file", args[0],
	)
}

func loadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <seed-file>",
		Short: "Load place types, places, committee types, and members from a YAML seed file",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.FromContext(cmd.Context())
			if cfg == nil {
				cfg = config.GetConfig()
			}
			loadRun(args, cfg)
		},
	}
	return cmd
}
