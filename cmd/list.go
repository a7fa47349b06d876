package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/readnoevil/rnoe/internal/config"
	"github.com/readnoevil/rnoe/internal/markup"
)

var listFormat string

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List configured accounts",
	Long: `List all configured accounts with their hosts and permissions.

Examples:
  rnoe list                       # List accounts in table format
  rnoe list -f json               # Output as JSON`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "Output format (table, json)")
}

func runList(cmd *cobra.Command, args []string) error {
	store := newStore()

	doc, err := store.Load()
	if err != nil {
		return err
	}

	accounts := config.Accounts(doc)
	if len(accounts) == 0 {
		fmt.Println("No accounts configured.")
		return nil
	}

	switch strings.ToLower(listFormat) {
	case "json":
		return outputAccountsJSON(doc, accounts)
	case "table":
		return outputAccountsTable(store.Path(), doc, accounts)
	default:
		return fmt.Errorf("unsupported format: %s (supported: table, json)", listFormat)
	}
}

func outputAccountsTable(path string, doc markup.Value, accounts []*markup.Mapping) error {
	fmt.Printf("Accounts in %s:\n", path)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tUSERNAME\tHOST\tPERMISSIONS\tTHRESHOLD")
	for _, acc := range accounts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\n",
			config.TextField(acc, "id", "?"),
			config.TextField(acc, "username", "?"),
			config.TextField(acc, "host", "?"),
			permissionSummary(acc),
			config.ThresholdFor(doc, acc),
		)
	}

	fmt.Fprintf(w, "\nTotal: %d accounts\n", len(accounts))
	return nil
}

func outputAccountsJSON(doc markup.Value, accounts []*markup.Mapping) error {
	output := make([]map[string]interface{}, len(accounts))
	for i, acc := range accounts {
		output[i] = map[string]interface{}{
			"id":          config.TextField(acc, "id", ""),
			"username":    config.TextField(acc, "username", ""),
			"host":        config.TextField(acc, "host", ""),
			"port":        config.IntField(acc, "port", config.DefaultIMAPPort),
			"ssl":         config.BoolField(acc, "ssl", true),
			"smtp_host":   config.TextField(acc, "smtp_host", ""),
			"permissions": permissionSummary(acc),
			"threshold":   config.ThresholdFor(doc, acc),
		}
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// permissionSummary renders granted permissions as a compact list.
func permissionSummary(acc *markup.Mapping) string {
	var granted []string
	v, ok := acc.Get("permissions")
	if !ok || v.Kind() != markup.KindMapping {
		return "read"
	}
	for _, name := range []string{"read", "send", "delete", "move"} {
		if config.BoolField(v.Mapping(), name, name == "read") {
			granted = append(granted, name)
		}
	}
	return strings.Join(granted, ",")
}
