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

	"github.com/blinklabs-io/cleansweep/internal/config"
	"github.com/spf13/cobra"
)

func placesRun(args []string, cfg *config.Config) {
	logger := commonRun()
	r, err := openRegistry(cfg, logger)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	defer r.Stop() //nolint:errcheck
	db := r.DB()
	if len(args) == 0 {
		places, err := db.GetTopLevelPlaces(nil)
		if err != nil {
			slog.Error(err.Error())
			os.Exit(1)
		}
		for _, place := range places {
			fmt.Printf(
				"%s\t%s (%s)\n",
				place.Key,
				place.Name,
				place.Type.Name,
			)
		}
		return
	}
	place, err := db.GetPlace(args[0], nil)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	if place == nil {
		slog.Error("place not found", "key", args[0])
		os.Exit(1)
	}
	fmt.Printf("%s (%s)\n", place.Name, place.Type.Name)
	parents, err := db.GetPlaceParents(place, nil)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	for _, parent := range parents {
		fmt.Printf("  parent: %s\t%s (%s)\n", parent.Key, parent.Name, parent.Type.Name)
	}
	groups, err := db.GetChildPlacesByType(place, nil)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	for _, group := range groups {
		fmt.Printf("  %s:\n", group.Type.Name)
		for _, child := range group.Places {
			fmt.Printf("    %s\t%s\n", child.Key, child.Name)
		}
	}
	count, err := db.GetPlacesBelowCount(place, nil, nil)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	fmt.Printf("  places below: %d\n", count)
}

func placesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "places [key]",
		Short: "Show top-level places, or details for the place with the given key",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.FromContext(cmd.Context())
			if cfg == nil {
				cfg = config.GetConfig()
			}
			placesRun(args, cfg)
		},
	}
	return cmd
}
