package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/readnoevil/rnoe/internal/errors"
)

var mailMoveTarget string

// mailMoveCmd represents the mail move command
var mailMoveCmd = &cobra.Command{
	Use:   "move <uid>",
	Short: "Move a message to another folder",
	Long: `Move a message to another folder. Requires the move permission on
the account.

Examples:
  rnoe mail move 4521 --to Archive
  rnoe mail -f Archive move 17 --to INBOX`,
	Args: cobra.ExactArgs(1),
	RunE: runMailMove,
}

func init() {
	mailCmd.AddCommand(mailMoveCmd)

	mailMoveCmd.Flags().StringVar(&mailMoveTarget, "to", "", "Target folder (required)")
	mailMoveCmd.MarkFlagRequired("to")
}

func runMailMove(cmd *cobra.Command, args []string) error {
	uid, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return errors.NewValidationError(
			errors.ErrCodeMessageNotFound,
			"uid must be a positive integer: "+args[0],
		)
	}

	mb, err := openMailbox()
	if err != nil {
		return err
	}
	defer mb.Close()

	if err := mb.Move(mailFolder, uint32(uid), mailMoveTarget); err != nil {
		return err
	}

	fmt.Printf("Message %d moved to %s\n", uid, mailMoveTarget)
	return nil
}
