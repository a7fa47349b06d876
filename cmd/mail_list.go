package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var (
	mailListLimit int
	mailListDays  int
)

// mailListCmd represents the mail list command
var mailListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent messages",
	Long: `List recent messages in the selected folder, newest first.

Examples:
  rnoe mail list                  # Last 30 days, up to 20 messages
  rnoe mail list -n 50 -d 7       # Last week, up to 50 messages`,
	RunE: runMailList,
}

func init() {
	mailCmd.AddCommand(mailListCmd)

	mailListCmd.Flags().IntVarP(&mailListLimit, "limit", "n", 20, "Max messages to list")
	mailListCmd.Flags().IntVarP(&mailListDays, "days", "d", 30, "Lookback days")
}

func runMailList(cmd *cobra.Command, args []string) error {
	mb, err := openMailbox()
	if err != nil {
		return err
	}
	defer mb.Close()

	lookback := time.Duration(mailListDays) * 24 * time.Hour
	summaries, err := mb.ListMessages(mailFolder, lookback, mailListLimit)
	if err != nil {
		return err
	}

	if len(summaries) == 0 {
		fmt.Println("No messages.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "UID\tFROM\tSUBJECT\tDATE\tATT")
	for _, s := range summaries {
		att := ""
		if s.HasAttachments {
			att = "*"
		}
		date := ""
		if !s.Date.IsZero() {
			date = s.Date.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			s.UID, truncate(s.Sender, 40), truncate(s.Subject, 45), date, att)
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
