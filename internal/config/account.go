package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/readnoevil/rnoe/internal/errors"
	"github.com/readnoevil/rnoe/internal/markup"
)

// accountIDPattern constrains ids to lowercase alphanumerics and hyphens
// so they can be embedded in environment variable names and file paths.
var accountIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Default ports per the common provider setup: IMAPS and submission.
const (
	DefaultIMAPPort = 993
	DefaultSMTPPort = 587
)

// AccountSpec carries the flag-level inputs for a new account. Zero
// values mean "not provided" for ID and Threshold; ports default when
// left zero.
type AccountSpec struct {
	Email     string
	ID        string
	Host      string
	Port      int64
	SSL       bool
	SMTPHost  string
	SMTPPort  int64
	SMTPSSL   bool
	AllowSend bool
	AllowDel  bool
	AllowMove bool
	Threshold *float64
}

// BuildAccount validates the spec against the existing account ids and
// constructs the account mapping in its canonical field order.
func BuildAccount(spec AccountSpec, existingIDs []string) (*markup.Mapping, error) {
	if err := validateEmail(spec.Email); err != nil {
		return nil, err
	}

	existing := make(map[string]bool, len(existingIDs))
	for _, id := range existingIDs {
		existing[id] = true
	}

	id := strings.ToLower(spec.ID)
	if id == "" {
		id = SuggestAccountID(spec.Email, existingIDs)
	}
	if existing[id] {
		return nil, errors.NewValidationError(
			errors.ErrCodeDuplicateAccount,
			fmt.Sprintf("account '%s' already exists", id),
		)
	}
	if !accountIDPattern.MatchString(id) {
		return nil, errors.NewValidationError(
			errors.ErrCodeInvalidAccount,
			"account id must be lowercase alphanumeric with hyphens only",
		)
	}

	port := spec.Port
	if port == 0 {
		port = DefaultIMAPPort
	}
	smtpPort := spec.SMTPPort
	if smtpPort == 0 {
		smtpPort = DefaultSMTPPort
	}

	account := markup.NewMapping()
	account.Set("id", markup.StringValue(id))
	account.Set("type", markup.StringValue("imap"))
	account.Set("host", markup.StringValue(spec.Host))
	account.Set("port", markup.IntValue(port))
	account.Set("ssl", markup.BoolValue(spec.SSL))
	account.Set("username", markup.StringValue(spec.Email))
	account.Set("smtp_host", markup.StringValue(spec.SMTPHost))
	account.Set("smtp_port", markup.IntValue(smtpPort))
	account.Set("smtp_ssl", markup.BoolValue(spec.SMTPSSL))

	// Read is always granted: an account that cannot read is useless.
	permissions := markup.NewMapping()
	permissions.Set("read", markup.BoolValue(true))
	permissions.Set("send", markup.BoolValue(spec.AllowSend))
	permissions.Set("delete", markup.BoolValue(spec.AllowDel))
	permissions.Set("move", markup.BoolValue(spec.AllowMove))
	account.Set("permissions", markup.MappingValue(permissions))

	if spec.Threshold != nil {
		protection := markup.NewMapping()
		protection.Set("threshold", markup.FloatValue(*spec.Threshold))
		account.Set("protection", markup.MappingValue(protection))
	}

	return account, nil
}

// SuggestAccountID derives an id from the email local part, appending a
// numeric suffix when the candidate collides with an existing id.
func SuggestAccountID(email string, existingIDs []string) string {
	existing := make(map[string]bool, len(existingIDs))
	for _, id := range existingIDs {
		existing[id] = true
	}

	local := email
	if at := strings.IndexByte(email, '@'); at >= 0 {
		local = email[:at]
	}

	var b strings.Builder
	for _, r := range strings.ToLower(local) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	candidate := b.String()
	if candidate == "" {
		candidate = "default"
	}

	if !existing[candidate] {
		return candidate
	}
	for i := 2; i < 100; i++ {
		numbered := fmt.Sprintf("%s%d", candidate, i)
		if !existing[numbered] {
			return numbered
		}
	}
	return candidate
}

func validateEmail(email string) error {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return errors.NewValidationError(
			errors.ErrCodeInvalidAccount,
			"invalid email address: "+email,
		)
	}
	domain := email[at+1:]
	if !strings.Contains(domain, ".") {
		return errors.NewValidationError(
			errors.ErrCodeInvalidAccount,
			"invalid email address: "+email,
		)
	}
	return nil
}
