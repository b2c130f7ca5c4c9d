package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bilgisen/newsdeck/internal/aggregator"
	"github.com/bilgisen/newsdeck/internal/models"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search every enabled provider",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, _ := cmd.Flags().GetString("source")
		category, _ := cmd.Flags().GetString("category")

		filters := aggregator.SearchFilters{Source: models.Source(source)}
		if category != "" {
			c, ok := models.ParseCategory(category)
			if !ok {
				return fmt.Errorf("unknown category %q", category)
			}
			filters.Category = c
		}

		page, err := svc.Search(cmd.Context(), strings.Join(args, " "), filters)
		if err != nil {
			return err
		}
		return printPage(cmd.OutOrStdout(), cmd, page)
	},
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the enabled providers",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, s := range svc.Sources() {
			fmt.Fprintln(cmd.OutOrStdout(), s)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().String("source", "", "restrict to one provider id")
	searchCmd.Flags().String("category", "", "canonical category")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(sourcesCmd)
}
