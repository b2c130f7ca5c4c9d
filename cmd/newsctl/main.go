// Package main is the newsctl CLI. It runs the aggregation core directly,
// without the HTTP server, and prints pages to stdout.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bilgisen/newsdeck/internal/aggregator"
	"github.com/bilgisen/newsdeck/internal/bootstrap"
	"github.com/bilgisen/newsdeck/internal/config"
	"github.com/bilgisen/newsdeck/internal/models"
)

// newsService is the part of the aggregation core the commands drive
type newsService interface {
	FetchAll(ctx context.Context, params models.FetchParams) models.Page
	FetchOne(ctx context.Context, id models.Source, params models.FetchParams) (models.Page, error)
	Search(ctx context.Context, query string, filters aggregator.SearchFilters) (models.Page, error)
	Sources() []models.Source
	Close() error
}

// svc is built once the root command has loaded configuration.
var svc newsService

// openService builds svc from environment configuration. Tests replace it.
var openService = func(cmd *cobra.Command) (newsService, error) {
	cfg := config.Load()
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		cfg.LogLevel = "disabled"
	}
	if err := bootstrap.InitLogger(cfg); err != nil {
		return nil, err
	}

	s, err := bootstrap.New(cfg)
	if err != nil {
		return nil, err
	}
	return s, nil
}

var rootCmd = &cobra.Command{
	Use:   "newsctl",
	Short: "Query the news aggregation pipeline from the command line",
	Long: `newsctl fetches normalized headlines from the enabled providers using the
same environment configuration as the HTTP server (.env is honoured).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := openService(cmd)
		if err != nil {
			return err
		}
		svc = s
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if svc == nil {
			return nil
		}
		return svc.Close()
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress log output")
	rootCmd.PersistentFlags().Bool("json", false, "print the page as JSON")
}

// printPage writes page as JSON or as one line per article
func printPage(w io.Writer, cmd *cobra.Command, page models.Page) error {
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	}

	for _, a := range page.Articles {
		fmt.Fprintf(w, "%s  [%s/%s]  %s\n    %s\n", a.PublishedAt, a.Source, a.Category, a.Title, a.URL)
	}
	fmt.Fprintf(w, "page %d, %d of %d results, more: %t\n",
		page.Page, len(page.Articles), page.TotalResults, page.HasMore)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
