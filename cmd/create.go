package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/readnoevil/rnoe/internal/config"
	"github.com/readnoevil/rnoe/internal/errors"
)

var (
	createThreshold float64
	createForce     bool
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a config skeleton",
	Long: `Create a new configuration file with a global protection threshold
and an empty account list.

Examples:
  rnoe create                     # Create with threshold 0.5
  rnoe create --threshold 0.8     # Stricter injection threshold
  rnoe create --force             # Overwrite an existing config`,
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().Float64Var(&createThreshold, "threshold", config.DefaultThreshold, "Global protection threshold")
	createCmd.Flags().BoolVar(&createForce, "force", false, "Overwrite existing config")
}

func runCreate(cmd *cobra.Command, args []string) error {
	store := newStore()

	if _, err := os.Stat(store.Path()); err == nil && !createForce {
		return errors.NewValidationError(
			errors.ErrCodeConfigExists,
			"config file already exists: "+store.Path()+" (use --force to overwrite)",
		)
	}

	doc := config.DefaultDocument(createThreshold)
	if err := store.Save(doc); err != nil {
		return err
	}

	fmt.Printf("Config created: %s\n", store.Path())
	return nil
}
