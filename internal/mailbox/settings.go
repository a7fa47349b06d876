// Package mailbox provides permission-gated IMAP and SMTP access for one
// configured account. Connection settings come from the account mapping
// in the config document plus the password resolved by the secrets
// package; message bodies pass through the protection scanner before
// they are returned.
package mailbox

import (
	"fmt"

	"github.com/readnoevil/rnoe/internal/config"
	"github.com/readnoevil/rnoe/internal/errors"
	"github.com/readnoevil/rnoe/internal/markup"
)

// Settings holds the connection parameters for one account.
type Settings struct {
	Host     string
	Port     int64
	SSL      bool
	Username string
	Password string

	SMTPHost string
	SMTPPort int64
	SMTPSSL  bool
}

// SettingsFromAccount extracts connection settings from an account
// mapping, applying the standard port defaults for absent fields.
func SettingsFromAccount(account *markup.Mapping, password string) Settings {
	return Settings{
		Host:     config.TextField(account, "host", ""),
		Port:     config.IntField(account, "port", config.DefaultIMAPPort),
		SSL:      config.BoolField(account, "ssl", true),
		Username: config.TextField(account, "username", ""),
		Password: password,
		SMTPHost: config.TextField(account, "smtp_host", ""),
		SMTPPort: config.IntField(account, "smtp_port", config.DefaultSMTPPort),
		SMTPSSL:  config.BoolField(account, "smtp_ssl", false),
	}
}

// Addr returns the IMAP dial address.
func (s Settings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SMTPAddr returns the SMTP dial address.
func (s Settings) SMTPAddr() string {
	return fmt.Sprintf("%s:%d", s.SMTPHost, s.SMTPPort)
}

// Permissions are the per-account operation grants.
type Permissions struct {
	Read   bool
	Send   bool
	Delete bool
	Move   bool
}

// PermissionsFromAccount extracts the permissions mapping of an account.
// Absent permissions default to read-only.
func PermissionsFromAccount(account *markup.Mapping) Permissions {
	perms := Permissions{Read: true}
	v, ok := account.Get("permissions")
	if !ok || v.Kind() != markup.KindMapping {
		return perms
	}
	m := v.Mapping()
	perms.Read = config.BoolField(m, "read", true)
	perms.Send = config.BoolField(m, "send", false)
	perms.Delete = config.BoolField(m, "delete", false)
	perms.Move = config.BoolField(m, "move", false)
	return perms
}

// require returns a permission-denied error for a missing grant.
func require(granted bool, operation string) error {
	if granted {
		return nil
	}
	return errors.NewSecurityError(
		errors.ErrCodePermissionDenied,
		"account does not permit "+operation,
	)
}
