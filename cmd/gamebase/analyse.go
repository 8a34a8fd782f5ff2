package main

import (
	"fmt"

	"gamebase/internal/constants"
	"gamebase/internal/service"

	"github.com/spf13/cobra"
)

var analyseTopN int

var analyseCmd = &cobra.Command{
	Use:   "analyse STEAM_ID",
	Short: "Analyse stored stats for a Steam account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steamID := args[0]
		return runApp(func(analyser *service.Analyser) error {
			summary, err := analyser.LibrarySummary(cmd.Context(), steamID, analyseTopN)
			if err != nil {
				return err
			}

			fmt.Printf("\n=== Library summary for %s ===\n", steamID)
			fmt.Printf("  Total games tracked : %d\n", summary.TotalGames)
			fmt.Printf("  Total playtime      : %.1f hours\n", summary.TotalPlaytimeHours)
			fmt.Printf("  Achievements        : %d / %d (%.1f%%)\n",
				summary.TotalAchievementsUnlocked,
				summary.TotalAchievementsTotal,
				summary.OverallAchievementRate*100)

			if len(summary.TopPlayed) > 0 {
				fmt.Printf("\n  Top %d most-played games:\n", analyseTopN)
				for _, g := range summary.TopPlayed {
					fmt.Printf("    %8.1fh  %s\n", g.PlaytimeHours, g.GameName)
				}
			}

			if len(summary.MostComplete) > 0 {
				fmt.Printf("\n  Top %d most-completed games:\n", analyseTopN)
				for _, g := range summary.MostComplete {
					fmt.Printf("    %5.1f%%  %s\n", g.AchievementRate*100, g.GameName)
				}
			}

			unplayed, err := analyser.UnplayedGames(cmd.Context(), steamID)
			if err != nil {
				return err
			}
			fmt.Printf("\n  Unplayed games      : %d\n", len(unplayed))

			completed, err := analyser.CompletedGames(cmd.Context(), steamID)
			if err != nil {
				return err
			}
			fmt.Printf("  Fully completed     : %d\n", len(completed))
			return nil
		})
	},
}

func init() {
	analyseCmd.Flags().IntVar(&analyseTopN, "top-n", constants.DefaultTopN, "Number of top entries to show")
}
