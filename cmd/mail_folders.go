package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// mailFoldersCmd represents the mail folders command
var mailFoldersCmd = &cobra.Command{
	Use:   "folders",
	Short: "List folders",
	Long:  `List the folders of the selected account.`,
	RunE:  runMailFolders,
}

func init() {
	mailCmd.AddCommand(mailFoldersCmd)
}

func runMailFolders(cmd *cobra.Command, args []string) error {
	mb, err := openMailbox()
	if err != nil {
		return err
	}
	defer mb.Close()

	folders, err := mb.ListFolders()
	if err != nil {
		return err
	}

	for _, name := range folders {
		fmt.Println(name)
	}
	return nil
}
