package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/readnoevil/rnoe/internal/errors"
)

// mailReadCmd represents the mail read command
var mailReadCmd = &cobra.Command{
	Use:   "read <uid>",
	Short: "Read a message",
	Long: `Fetch and display one message by UID. The decoded body is scanned
for prompt injection first; a detection aborts the read with a security
error instead of printing content.

Examples:
  rnoe mail read 4521
  rnoe mail -f Archive read 17`,
	Args: cobra.ExactArgs(1),
	RunE: runMailRead,
}

func init() {
	mailCmd.AddCommand(mailReadCmd)
}

func runMailRead(cmd *cobra.Command, args []string) error {
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

	msg, err := mb.Fetch(mailFolder, uint32(uid))
	if err != nil {
		return err
	}

	fmt.Printf("From: %s\n", msg.Sender)
	fmt.Printf("To: %s\n", strings.Join(msg.Recipients, ", "))
	if !msg.Date.IsZero() {
		fmt.Printf("Date: %s\n", msg.Date.Format("2006-01-02 15:04:05 -0700"))
	}
	fmt.Printf("Subject: %s\n", msg.Subject)

	if len(msg.Attachments) > 0 {
		fmt.Printf("\nAttachments: %d\n", len(msg.Attachments))
		for _, att := range msg.Attachments {
			fmt.Printf("  %s (%s)\n", att.FileName, att.ContentType)
		}
	}

	fmt.Println("\n--- Body ---")
	if msg.Body == "" {
		fmt.Println("(empty)")
	} else {
		fmt.Println(msg.Body)
	}
	return nil
}
