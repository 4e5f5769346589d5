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

func committeesRun(args []string, cfg *config.Config) {
	logger := commonRun()
	r, err := openRegistry(cfg, logger)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	defer r.Stop() //nolint:errcheck
	db := r.DB()
	place, err := db.GetPlace(args[0], nil)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	if place == nil {
		slog.Error("place not found", "key", args[0])
		os.Exit(1)
	}
	committeeTypes, err := db.GetCommitteeTypesByPlace(place, true, nil)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	fmt.Printf("Committee types visible at %s:\n", place.Name)
	for _, ct := range committeeTypes {
		fmt.Printf("  %s\t%s\n", ct.Slug, ct.Name)
		for _, role := range ct.Roles {
			multiple := ""
			if role.Multiple {
				multiple = " (multiple)"
			}
			fmt.Printf("    role: %s%s\n", role.Role, multiple)
		}
	}
	committees, err := db.GetCommittees(place, nil)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	fmt.Printf("Committees at %s:\n", place.Name)
	for _, committee := range committees {
		status := ""
		if !committee.Persisted() {
			status = " (not yet formed)"
		}
		fmt.Printf(
			"  %s\t%s%s\n",
			committee.Type.Slug,
			committee.Type.Name,
			status,
		)
		members, err := db.GetCommitteeMembers(&committee, nil)
		if err != nil {
			slog.Error(err.Error())
			os.Exit(1)
		}
		for _, cm := range members {
			fmt.Printf(
				"    %s: %s\n",
				cm.Role.Role,
				cm.Member.Name,
			)
		}
	}
}

func committeesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "committees <place-key>",
		Short: "Show committee types and committees for the place with the given key",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.FromContext(cmd.Context())
			if cfg == nil {
				cfg = config.GetConfig()
			}
			committeesRun(args, cfg)
		},
	}
	return cmd
}
