package main

import (
	"fmt"
	"strconv"

	"gamebase/internal/service"

	"github.com/spf13/cobra"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape STEAM_ID [APP_ID...]",
	Short: "Scrape achievement stats from Steam",
	Long:  "Scrape achievement stats for specific app ids, or for every tracked game when none are given.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steamID := args[0]
		var appIDs []int
		for _, arg := range args[1:] {
			appID, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("invalid app id %q: %w", arg, err)
			}
			appIDs = append(appIDs, appID)
		}
		return runApp(func(scraper *service.Scraper) error {
			results, err := scraper.ScrapeAllGameStats(cmd.Context(), steamID, appIDs)
			if err != nil {
				return err
			}
			fmt.Printf("Scraped stats for %d games.\n", len(results))
			return nil
		})
	},
}
