// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	cartograph "github.com/cartograph-io/cartograph-go"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search catalog assets",
	Long: `Search iterates over every asset matching the filters, fetching pages
lazily and translating tag IDs to names as it goes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}

		criteria := cartograph.SearchCriteria{}
		if name, _ := cmd.Flags().GetString("name"); name != "" {
			criteria.Name = &name
		}
		if typeName, _ := cmd.Flags().GetString("type"); typeName != "" {
			criteria.TypeName = &typeName
		}
		if tags, _ := cmd.Flags().GetStringSlice("tag"); len(tags) > 0 {
			criteria.Tags = tags
		}
		criteria.PageSize, _ = cmd.Flags().GetInt("page-size")
		criteria.ForceBulk, _ = cmd.Flags().GetBool("bulk")
		limit, _ := cmd.Flags().GetInt("limit")

		it, err := c.Search(cmd.Context(), criteria)
		if err != nil {
			return err
		}

		count := 0
		for asset, err := range it.All(cmd.Context()) {
			if err != nil {
				return err
			}
			typed := cartograph.ResolveAsset(asset)
			fmt.Printf("%s\t%s\t%s", typed.Variant(), asset.Guid, asset.Name)
			if len(asset.TagNames) > 0 {
				fmt.Printf("\t[%s]", strings.Join(asset.TagNames, ", "))
			}
			fmt.Println()

			count++
			if limit > 0 && count >= limit {
				break
			}
		}

		fmt.Printf("%d assets (estimated total %d)\n", count, it.TotalEstimate())
		return nil
	},
}

func init() {
	searchCmd.Flags().String("name", "", "match assets by name prefix")
	searchCmd.Flags().String("type", "", "restrict to one asset type")
	searchCmd.Flags().StringSlice("tag", nil, "filter by tag name (repeatable)")
	searchCmd.Flags().Int("page-size", 0, "page size (0 = client default)")
	searchCmd.Flags().Bool("bulk", false, "start in bulk pagination mode")
	searchCmd.Flags().Int("limit", 0, "stop after this many assets (0 = all)")
}
