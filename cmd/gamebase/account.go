package main

import (
	"fmt"
	"os"

	"gamebase/internal/repository"
	"gamebase/internal/service"

	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage Steam accounts",
}

var accountAddCmd = &cobra.Command{
	Use:   "add STEAM_ID",
	Short: "Add or refresh a Steam account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(scraper *service.Scraper) error {
			account, err := scraper.ScrapeAccount(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Added account: %s (%s)\n", account.PersonaName, account.SteamID)
			return nil
		})
	},
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored Steam accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(accounts *repository.AccountRepository) error {
			all, err := accounts.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(all) == 0 {
				fmt.Println("No accounts stored.")
				return nil
			}
			for _, acc := range all {
				fmt.Printf("  %s  %s  %s\n", acc.SteamID, acc.PersonaName, acc.ProfileURL)
			}
			return nil
		})
	},
}

var accountRemoveCmd = &cobra.Command{
	Use:   "remove STEAM_ID",
	Short: "Remove a Steam account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(accounts *repository.AccountRepository) error {
			removed, err := accounts.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if removed {
				fmt.Printf("Removed account %s.\n", args[0])
			} else {
				fmt.Fprintf(os.Stderr, "Account %s not found.\n", args[0])
			}
			return nil
		})
	},
}

func init() {
	accountCmd.AddCommand(accountAddCmd, accountListCmd, accountRemoveCmd)
}
