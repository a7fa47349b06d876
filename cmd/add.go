package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/readnoevil/rnoe/internal/config"
	"github.com/readnoevil/rnoe/internal/secrets"
)

var (
	addEmail     string
	addID        string
	addHost      string
	addPort      int64
	addSMTPHost  string
	addSMTPPort  int64
	addNoSSL     bool
	addSMTPSSL   bool
	addSend      bool
	addDelete    bool
	addMove      bool
	addThreshold float64
	addCreateEnv bool
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an account",
	Long: `Add an IMAP account to the configuration.

The account id is derived from the email local part unless --id is given.
Read permission is always granted; send, delete, and move must be opted
into explicitly. The password is never stored in the config file: set
RNOE_ACCOUNT_<ID>_PASSWORD, or use --create-env to write a placeholder
.env file beside the config.

Examples:
  rnoe add --email you@example.com --host imap.example.com --smtp-host smtp.example.com
  rnoe add --email you@example.com --host imap.example.com --smtp-host smtp.example.com --send --move
  rnoe add --email you@example.com --host imap.example.com --smtp-host smtp.example.com --threshold 0.3`,
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addEmail, "email", "", "Email address (required)")
	addCmd.Flags().StringVar(&addID, "id", "", "Account ID (auto-generated from email if omitted)")
	addCmd.Flags().StringVar(&addHost, "host", "", "IMAP host (required)")
	addCmd.Flags().Int64Var(&addPort, "port", config.DefaultIMAPPort, "IMAP port")
	addCmd.Flags().StringVar(&addSMTPHost, "smtp-host", "", "SMTP host (required)")
	addCmd.Flags().Int64Var(&addSMTPPort, "smtp-port", config.DefaultSMTPPort, "SMTP port")
	addCmd.Flags().BoolVar(&addNoSSL, "no-ssl", false, "Disable IMAP SSL")
	addCmd.Flags().BoolVar(&addSMTPSSL, "smtp-ssl", false, "Enable implicit SMTP TLS")
	addCmd.Flags().BoolVar(&addSend, "send", false, "Allow sending emails")
	addCmd.Flags().BoolVar(&addDelete, "delete", false, "Allow deleting emails")
	addCmd.Flags().BoolVar(&addMove, "move", false, "Allow moving emails")
	addCmd.Flags().Float64Var(&addThreshold, "threshold", -1, "Per-account protection threshold")
	addCmd.Flags().BoolVar(&addCreateEnv, "create-env", false, "Create .env with password placeholders")

	addCmd.MarkFlagRequired("email")
	addCmd.MarkFlagRequired("host")
	addCmd.MarkFlagRequired("smtp-host")
}

func runAdd(cmd *cobra.Command, args []string) error {
	store := newStore()

	doc, err := store.Load()
	if err != nil {
		return err
	}

	spec := config.AccountSpec{
		Email:     addEmail,
		ID:        addID,
		Host:      addHost,
		Port:      addPort,
		SSL:       !addNoSSL,
		SMTPHost:  addSMTPHost,
		SMTPPort:  addSMTPPort,
		SMTPSSL:   addSMTPSSL,
		AllowSend: addSend,
		AllowDel:  addDelete,
		AllowMove: addMove,
	}
	if cmd.Flags().Changed("threshold") {
		threshold := addThreshold
		spec.Threshold = &threshold
	}

	account, err := config.BuildAccount(spec, config.AccountIDs(doc))
	if err != nil {
		return err
	}

	config.AppendAccount(doc, account)
	if err := store.Save(doc); err != nil {
		return err
	}

	id := config.TextField(account, "id", "")
	fmt.Printf("Account '%s' added to: %s\n", id, store.Path())
	fmt.Printf("Set password env var: %s\n", secrets.EnvVar(id))

	if addCreateEnv {
		if err := secrets.WriteEnvFile(store.Path(), config.AccountIDs(doc)); err != nil {
			return err
		}
		fmt.Printf("Created .env: %s\n", secrets.EnvFilePath(store.Path()))
	}
	return nil
}
