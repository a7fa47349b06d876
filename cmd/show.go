package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/readnoevil/rnoe/internal/errors"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the raw config file",
	Long: `Print the configuration file contents exactly as stored on disk,
including comments.`,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	path := configPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewNotFoundError(
				errors.ErrCodeConfigNotFound,
				"config file not found: "+path+" (run 'rnoe create' to create one)",
			)
		}
		return errors.NewIOError(errors.ErrCodeIOFailure, "cannot read config file "+path, err)
	}

	fmt.Print(string(data))
	return nil
}
