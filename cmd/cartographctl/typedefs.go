// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	cartograph "github.com/cartograph-io/cartograph-go"

	"github.com/spf13/cobra"
)

var typedefsCmd = &cobra.Command{
	Use:   "typedefs",
	Short: "Inspect and manage registry definitions",
}

var typedefsListCmd = &cobra.Command{
	Use:   "list [tag|custom_metadata|enum]",
	Short: "List definition names of one kind",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}

		names, err := c.DefinitionNames(cmd.Context(), cartograph.Kind(args[0]))
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var typedefsRefreshCmd = &cobra.Command{
	Use:   "refresh [tag|custom_metadata|enum]",
	Short: "Force a registry snapshot refresh for one kind",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}

		kind := cartograph.Kind(args[0])
		if err := c.RefreshCache(cmd.Context(), kind); err != nil {
			return err
		}
		fmt.Printf("refreshed %s definitions\n", kind)
		return nil
	},
}

var typedefsCreateTagCmd = &cobra.Command{
	Use:   "create-tag <name>",
	Short: "Register a new tag definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}

		description, _ := cmd.Flags().GetString("description")
		def, err := c.CreateTag(cmd.Context(), args[0], description)
		if err != nil {
			return err
		}
		fmt.Printf("created tag %s (%s)\n", def.Name, def.ID)
		return nil
	},
}

func init() {
	typedefsCreateTagCmd.Flags().String("description", "", "tag description")

	typedefsCmd.AddCommand(typedefsListCmd)
	typedefsCmd.AddCommand(typedefsRefreshCmd)
	typedefsCmd.AddCommand(typedefsCreateTagCmd)
}
