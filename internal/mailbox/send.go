package mailbox

import (
	"bytes"
	"net/mail"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/jhillyerd/enmime"

	"github.com/readnoevil/rnoe/internal/errors"
)

// Send composes a plain-text message and submits it over SMTP. With
// smtp_ssl the connection is implicit TLS; otherwise STARTTLS is
// negotiated on the submission port.
func (m *Mailbox) Send(to, cc []string, subject, body string) error {
	if err := require(m.perms.Send, "sending"); err != nil {
		return err
	}
	if m.settings.SMTPHost == "" {
		return errors.NewValidationError(
			errors.ErrCodeSendFailed,
			"account has no smtp_host configured",
		)
	}

	builder := enmime.Builder().
		From("", m.settings.Username).
		ToAddrs(toAddresses(to)).
		Subject(subject).
		Date(time.Now()).
		Text([]byte(body))
	if len(cc) > 0 {
		builder = builder.CCAddrs(toAddresses(cc))
	}

	root, err := builder.Build()
	if err != nil {
		return errors.NewInternalError(
			errors.ErrCodeSendFailed,
			"cannot compose message",
			err,
		)
	}

	var buf bytes.Buffer
	if err := root.Encode(&buf); err != nil {
		return errors.NewInternalError(
			errors.ErrCodeSendFailed,
			"cannot encode message",
			err,
		)
	}

	recipients := append(append([]string{}, to...), cc...)
	auth := sasl.NewPlainClient("", m.settings.Username, m.settings.Password)

	if m.settings.SMTPSSL {
		err = smtp.SendMailTLS(m.settings.SMTPAddr(), auth, m.settings.Username, recipients, &buf)
	} else {
		err = smtp.SendMail(m.settings.SMTPAddr(), auth, m.settings.Username, recipients, &buf)
	}
	if err != nil {
		return errors.NewNetworkError(
			errors.ErrCodeSendFailed,
			"smtp submission to "+m.settings.SMTPAddr()+" failed",
			err,
		)
	}
	return nil
}

func toAddresses(addrs []string) []mail.Address {
	out := make([]mail.Address, len(addrs))
	for i, a := range addrs {
		out[i] = mail.Address{Address: a}
	}
	return out
}
