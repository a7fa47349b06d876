package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/readnoevil/rnoe/internal/config"
)

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:   "remove <account-id>",
	Short: "Remove an account",
	Long: `Remove the account with the given id from the configuration.
The remaining accounts keep their order.

Examples:
  rnoe remove work
  rnoe remove default`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	store := newStore()

	doc, err := store.Load()
	if err != nil {
		return err
	}

	if err := config.RemoveAccount(doc, args[0]); err != nil {
		return err
	}
	if err := store.Save(doc); err != nil {
		return err
	}

	fmt.Printf("Account '%s' removed from config.\n", args[0])
	return nil
}
