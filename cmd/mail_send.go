package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	mailSendTo      string
	mailSendCC      string
	mailSendSubject string
	mailSendBody    string
)

// mailSendCmd represents the mail send command
var mailSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send an email",
	Long: `Send a plain-text email through the account's SMTP settings.
Requires the send permission on the account.

Examples:
  rnoe mail send --to a@example.com --subject "Hi" --body "Hello"
  rnoe mail send --to a@example.com,b@example.com -s "Hi" -b "Hello" --cc c@example.com`,
	RunE: runMailSend,
}

func init() {
	mailCmd.AddCommand(mailSendCmd)

	mailSendCmd.Flags().StringVar(&mailSendTo, "to", "", "Recipient(s), comma-separated (required)")
	mailSendCmd.Flags().StringVarP(&mailSendSubject, "subject", "s", "", "Subject (required)")
	mailSendCmd.Flags().StringVarP(&mailSendBody, "body", "b", "", "Body text (required)")
	mailSendCmd.Flags().StringVar(&mailSendCC, "cc", "", "CC recipient(s), comma-separated")

	mailSendCmd.MarkFlagRequired("to")
	mailSendCmd.MarkFlagRequired("subject")
	mailSendCmd.MarkFlagRequired("body")
}

func runMailSend(cmd *cobra.Command, args []string) error {
	mb, err := openMailbox()
	if err != nil {
		return err
	}
	defer mb.Close()

	to := splitAddresses(mailSendTo)
	cc := splitAddresses(mailSendCC)

	if err := mb.Send(to, cc, mailSendSubject, mailSendBody); err != nil {
		return err
	}

	fmt.Printf("Email sent to %s\n", mailSendTo)
	return nil
}

func splitAddresses(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if addr := strings.TrimSpace(part); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}
