package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bilgisen/newsdeck/internal/models"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch one page of headlines",
	Long: `Fetch queries every enabled provider, or only --source, and prints one
page of articles sorted newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		source, _ := cmd.Flags().GetString("source")
		category, _ := cmd.Flags().GetString("category")
		query, _ := cmd.Flags().GetString("query")
		page, _ := cmd.Flags().GetInt("page")
		pageSize, _ := cmd.Flags().GetInt("page-size")

		params := models.FetchParams{
			Query:    query,
			Page:     page,
			PageSize: pageSize,
		}
		if category != "" {
			c, ok := models.ParseCategory(category)
			if !ok {
				return fmt.Errorf("unknown category %q", category)
			}
			params.Category = c
		}

		ctx := cmd.Context()
		if source == "" {
			return printPage(cmd.OutOrStdout(), cmd, svc.FetchAll(ctx, params))
		}

		result, err := svc.FetchOne(ctx, models.Source(source), params)
		if err != nil {
			return err
		}
		return printPage(cmd.OutOrStdout(), cmd, result)
	},
}

func init() {
	fetchCmd.Flags().String("source", "", "provider id (newsapi, nytimes); all when empty")
	fetchCmd.Flags().String("category", "", "canonical category")
	fetchCmd.Flags().String("query", "", "free-text filter")
	fetchCmd.Flags().Int("page", models.DefaultPage, "1-based page number")
	fetchCmd.Flags().Int("page-size", models.DefaultPageSize, "articles per page")

	rootCmd.AddCommand(fetchCmd)
}
