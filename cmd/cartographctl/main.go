// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"os"

	logging "github.com/cartograph-io/cartograph-go/pkg/log"

	"github.com/spf13/cobra"
)

func init() {
	logging.InitStructureLogConfig()
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "cartographctl",
		Short: "Command-line interface for the Cartograph metadata catalog",
		Long: `cartographctl searches the Cartograph catalog and manages tag, custom
metadata, and enum definitions through the Go SDK.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(logging.AppendCtx(cmd.Context(), slog.String("command", cmd.Name())))
		},
	}

	rootCmd.PersistentFlags().String("base-url", "", "catalog tenant URL (or CARTOGRAPH_BASE_URL)")
	rootCmd.PersistentFlags().String("api-key", "", "API bearer token (or CARTOGRAPH_API_KEY)")

	// Add subcommands
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(typedefsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
