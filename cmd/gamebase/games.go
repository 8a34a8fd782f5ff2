package main

import (
	"fmt"
	"os"
	"strconv"

	"gamebase/internal/domain"
	"gamebase/internal/service"

	"github.com/spf13/cobra"
)

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "Manage tracked games",
}

var gamesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked games",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(tracker *service.Tracker) error {
			games, err := tracker.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(games) == 0 {
				fmt.Println("No games tracked.")
				return nil
			}
			fmt.Printf("%-12s %8s  %s\n", "AppID", "Hours", "Name")
			fmt.Println("--------------------------------------------------")
			for _, game := range games {
				fmt.Printf("%-12d %8.1f  %s\n", game.AppID, game.PlaytimeHours(), game.Name)
			}
			return nil
		})
	},
}

var gamesAddNotes string

var gamesAddCmd = &cobra.Command{
	Use:   "add APP_ID NAME",
	Short: "Manually add a game",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		appID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid app id %q: %w", args[0], err)
		}
		return runApp(func(tracker *service.Tracker) error {
			game, err := tracker.Add(cmd.Context(), domain.Game{
				AppID: appID,
				Name:  args[1],
				Notes: gamesAddNotes,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Added game: %s (app_id=%d)\n", game.Name, game.AppID)
			return nil
		})
	},
}

var gamesRemoveCmd = &cobra.Command{
	Use:   "remove APP_ID",
	Short: "Remove a tracked game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid app id %q: %w", args[0], err)
		}
		return runApp(func(tracker *service.Tracker) error {
			removed, err := tracker.Remove(cmd.Context(), appID)
			if err != nil {
				return err
			}
			if removed {
				fmt.Printf("Removed game %d.\n", appID)
			} else {
				fmt.Fprintf(os.Stderr, "Game %d not found.\n", appID)
			}
			return nil
		})
	},
}

var gamesImportCmd = &cobra.Command{
	Use:   "import STEAM_ID",
	Short: "Import owned games from Steam",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(scraper *service.Scraper) error {
			games, err := scraper.ScrapeOwnedGames(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d games for %s.\n", len(games), args[0])
			return nil
		})
	},
}

func init() {
	gamesAddCmd.Flags().StringVar(&gamesAddNotes, "notes", "", "Personal notes")
	gamesCmd.AddCommand(gamesListCmd, gamesAddCmd, gamesRemoveCmd, gamesImportCmd)
}
