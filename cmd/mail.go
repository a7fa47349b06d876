package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/readnoevil/rnoe/internal/config"
	"github.com/readnoevil/rnoe/internal/errors"
	"github.com/readnoevil/rnoe/internal/mailbox"
	"github.com/readnoevil/rnoe/internal/protection"
	"github.com/readnoevil/rnoe/internal/secrets"
)

var (
	mailAccount string
	mailFolder  string
)

// mailCmd represents the mail command group
var mailCmd = &cobra.Command{
	Use:   "mail",
	Short: "Access mail through a configured account",
	Long: `Access mail through a configured account, gated by the account's
permissions. Message bodies are scanned for prompt injection before they
are shown; a detection aborts the read.

Examples:
  rnoe mail list                          # Recent inbox messages
  rnoe mail read 4521                     # Read one message
  rnoe mail -a work -f Archive list       # Other account and folder`,
}

func init() {
	rootCmd.AddCommand(mailCmd)

	mailCmd.PersistentFlags().StringVarP(&mailAccount, "account", "a", "default", "Account ID")
	mailCmd.PersistentFlags().StringVarP(&mailFolder, "folder", "f", "INBOX", "Folder")
}

// openMailbox loads the config, resolves the account and its password,
// and returns a connected mailbox. The caller must Close it.
func openMailbox() (*mailbox.Mailbox, error) {
	store := newStore()
	logger := newLogger().WithComponent("mailbox")

	doc, err := store.Load()
	if err != nil {
		return nil, err
	}

	account, ok := config.FindAccount(doc, mailAccount)
	if !ok {
		return nil, errors.NewValidationError(
			errors.ErrCodeAccountNotFound,
			"account '"+mailAccount+"' not found in config",
		)
	}

	password, err := secrets.LookupPassword(store.Path(), mailAccount)
	if err != nil {
		return nil, err
	}

	settings := mailbox.SettingsFromAccount(account, password)
	perms := mailbox.PermissionsFromAccount(account)
	guard := protection.NewService(protection.NewScanner(), config.ThresholdFor(doc, account))

	mb := mailbox.New(settings, perms, guard)

	logger.Debug(context.Background(), "connecting",
		"account", mailAccount,
		"host", settings.Host,
		"threshold", guard.Threshold())

	if err := mb.Connect(); err != nil {
		return nil, err
	}
	return mb, nil
}
