package mailbox

import (
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/jhillyerd/enmime"

	"github.com/readnoevil/rnoe/internal/errors"
	"github.com/readnoevil/rnoe/internal/protection"
)

// Summary is the envelope-level view of a message used by listings.
type Summary struct {
	UID            uint32
	Sender         string
	Subject        string
	Date           time.Time
	HasAttachments bool
}

// Attachment is the metadata of one message attachment. Content is not
// exposed: this tool reads mail for humans, it does not download files.
type Attachment struct {
	FileName    string
	ContentType string
}

// Message is one fully fetched and MIME-decoded message.
type Message struct {
	UID         uint32
	Sender      string
	Recipients  []string
	Subject     string
	Date        time.Time
	Body        string
	Attachments []Attachment
}

// Mailbox is a connected, permission-gated IMAP session for one account.
type Mailbox struct {
	settings   Settings
	perms      Permissions
	guard      *protection.Service
	client     *client.Client
	selected   string
	selectedRO bool
}

// New returns an unconnected mailbox.
func New(settings Settings, perms Permissions, guard *protection.Service) *Mailbox {
	return &Mailbox{settings: settings, perms: perms, guard: guard}
}

// Connect dials the IMAP server and logs in.
func (m *Mailbox) Connect() error {
	var (
		c   *client.Client
		err error
	)
	if m.settings.SSL {
		c, err = client.DialTLS(m.settings.Addr(), nil)
	} else {
		c, err = client.Dial(m.settings.Addr())
	}
	if err != nil {
		return errors.NewNetworkError(
			errors.ErrCodeConnectionFailed,
			"cannot connect to "+m.settings.Addr(),
			err,
		)
	}

	if err := c.Login(m.settings.Username, m.settings.Password); err != nil {
		c.Logout()
		return errors.NewNetworkError(
			errors.ErrCodeConnectionFailed,
			"login failed for "+m.settings.Username,
			err,
		)
	}

	m.client = c
	m.selected = ""
	return nil
}

// Close logs out of the session.
func (m *Mailbox) Close() error {
	if m.client == nil {
		return nil
	}
	err := m.client.Logout()
	m.client = nil
	return err
}

// ListFolders returns the folder names of the account.
func (m *Mailbox) ListFolders() ([]string, error) {
	if err := require(m.perms.Read, "reading"); err != nil {
		return nil, err
	}

	mailboxes := make(chan *imap.MailboxInfo, 10)
	done := make(chan error, 1)
	go func() {
		done <- m.client.List("", "*", mailboxes)
	}()

	var names []string
	for info := range mailboxes {
		names = append(names, info.Name)
	}
	if err := <-done; err != nil {
		return names, errors.NewNetworkError(
			errors.ErrCodeConnectionFailed,
			"cannot list folders",
			err,
		)
	}
	return names, nil
}

// ListMessages returns envelope summaries of the messages received within
// the lookback window, newest first, capped at limit.
func (m *Mailbox) ListMessages(folder string, lookback time.Duration, limit int) ([]Summary, error) {
	if err := require(m.perms.Read, "reading"); err != nil {
		return nil, err
	}
	if err := m.selectFolder(folder, true); err != nil {
		return nil, err
	}

	criteria := imap.NewSearchCriteria()
	criteria.Since = time.Now().Add(-lookback)
	uids, err := m.client.UidSearch(criteria)
	if err != nil {
		return nil, errors.NewNetworkError(
			errors.ErrCodeConnectionFailed,
			"search failed in "+folder,
			err,
		)
	}
	if len(uids) == 0 {
		return nil, nil
	}
	if limit > 0 && len(uids) > limit {
		uids = uids[len(uids)-limit:]
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(uids...)

	items := []imap.FetchItem{imap.FetchEnvelope, imap.FetchBodyStructure, imap.FetchUid}
	messages := make(chan *imap.Message, 10)
	done := make(chan error, 1)
	go func() {
		done <- m.client.UidFetch(seqset, items, messages)
	}()

	var summaries []Summary
	for msg := range messages {
		summaries = append(summaries, summarize(msg))
	}
	if err := <-done; err != nil {
		return summaries, errors.NewNetworkError(
			errors.ErrCodeConnectionFailed,
			"fetch failed in "+folder,
			err,
		)
	}

	// UID search returns ascending order; listings want newest first.
	for i, j := 0, len(summaries)-1; i < j; i, j = i+1, j-1 {
		summaries[i], summaries[j] = summaries[j], summaries[i]
	}
	return summaries, nil
}

// Fetch retrieves and MIME-decodes one message by UID. The decoded text
// body passes through the protection scanner; a score at or above the
// threshold aborts with a security error instead of returning content.
func (m *Mailbox) Fetch(folder string, uid uint32) (*Message, error) {
	if err := require(m.perms.Read, "reading"); err != nil {
		return nil, err
	}
	if err := m.selectFolder(folder, true); err != nil {
		return nil, err
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(uid)

	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{section.FetchItem(), imap.FetchEnvelope, imap.FetchUid}
	messages := make(chan *imap.Message, 1)
	done := make(chan error, 1)
	go func() {
		done <- m.client.UidFetch(seqset, items, messages)
	}()

	var fetched *imap.Message
	for msg := range messages {
		fetched = msg
	}
	if err := <-done; err != nil {
		return nil, errors.NewNetworkError(
			errors.ErrCodeConnectionFailed,
			fmt.Sprintf("fetch of uid %d failed", uid),
			err,
		)
	}
	if fetched == nil {
		return nil, errors.NewNotFoundError(
			errors.ErrCodeMessageNotFound,
			fmt.Sprintf("no message with uid %d in %s", uid, folder),
		)
	}

	body := fetched.GetBody(section)
	if body == nil {
		return nil, errors.NewNetworkError(
			errors.ErrCodeConnectionFailed,
			fmt.Sprintf("server returned no body for uid %d", uid),
			nil,
		)
	}

	env, err := enmime.ReadEnvelope(body)
	if err != nil {
		return nil, errors.NewInternalError(
			errors.ErrCodeInternalError,
			fmt.Sprintf("cannot decode message %d", uid),
			err,
		)
	}

	msg := &Message{
		UID:     fetched.Uid,
		Subject: env.GetHeader("Subject"),
		Body:    env.Text,
	}
	if fetched.Envelope != nil {
		msg.Sender = formatAddresses(fetched.Envelope.From)
		msg.Recipients = addressList(fetched.Envelope.To)
		msg.Date = fetched.Envelope.Date
		if msg.Subject == "" {
			msg.Subject = fetched.Envelope.Subject
		}
	}
	for _, att := range env.Attachments {
		msg.Attachments = append(msg.Attachments, Attachment{
			FileName:    att.FileName,
			ContentType: att.ContentType,
		})
	}

	if m.guard != nil {
		if _, err := m.guard.Check(msg.Body); err != nil {
			return nil, err
		}
	}
	return msg, nil
}

// Move relocates a message to another folder, preferring the MOVE
// extension and falling back to copy, flag deleted, expunge.
func (m *Mailbox) Move(folder string, uid uint32, target string) error {
	if err := require(m.perms.Move, "moving"); err != nil {
		return err
	}
	if err := m.selectFolder(folder, false); err != nil {
		return err
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(uid)

	if ok, _ := m.client.Support("MOVE"); ok {
		if err := m.client.UidMove(seqset, target); err != nil {
			return errors.NewNetworkError(
				errors.ErrCodeConnectionFailed,
				fmt.Sprintf("cannot move uid %d to %s", uid, target),
				err,
			)
		}
		return nil
	}

	if err := m.client.UidCopy(seqset, target); err != nil {
		return errors.NewNetworkError(
			errors.ErrCodeConnectionFailed,
			fmt.Sprintf("cannot copy uid %d to %s", uid, target),
			err,
		)
	}
	flags := []interface{}{imap.DeletedFlag}
	if err := m.client.UidStore(seqset, imap.FormatFlagsOp(imap.AddFlags, true), flags, nil); err != nil {
		return errors.NewNetworkError(
			errors.ErrCodeConnectionFailed,
			fmt.Sprintf("cannot flag uid %d deleted", uid),
			err,
		)
	}
	if err := m.client.Expunge(nil); err != nil {
		return errors.NewNetworkError(
			errors.ErrCodeConnectionFailed,
			"expunge failed",
			err,
		)
	}
	return nil
}

func (m *Mailbox) selectFolder(folder string, readOnly bool) error {
	if m.selected == folder && m.selectedRO == readOnly {
		return nil
	}
	if _, err := m.client.Select(folder, readOnly); err != nil {
		return errors.NewNetworkError(
			errors.ErrCodeConnectionFailed,
			"cannot select folder "+folder,
			err,
		)
	}
	m.selected = folder
	m.selectedRO = readOnly
	return nil
}

func summarize(msg *imap.Message) Summary {
	s := Summary{UID: msg.Uid}
	if msg.Envelope != nil {
		s.Sender = formatAddresses(msg.Envelope.From)
		s.Subject = msg.Envelope.Subject
		s.Date = msg.Envelope.Date
	}
	if msg.BodyStructure != nil {
		s.HasAttachments = hasAttachments(msg.BodyStructure)
	}
	return s
}

// hasAttachments walks the body structure looking for a part marked as
// an attachment or carrying a filename.
func hasAttachments(bs *imap.BodyStructure) bool {
	if strings.EqualFold(bs.Disposition, "attachment") {
		return true
	}
	if _, ok := bs.DispositionParams["filename"]; ok {
		return true
	}
	for _, part := range bs.Parts {
		if hasAttachments(part) {
			return true
		}
	}
	return false
}

func formatAddresses(addrs []*imap.Address) string {
	parts := addressList(addrs)
	return strings.Join(parts, ", ")
}

func addressList(addrs []*imap.Address) []string {
	var parts []string
	for _, a := range addrs {
		addr := a.MailboxName + "@" + a.HostName
		if a.PersonalName != "" {
			parts = append(parts, fmt.Sprintf("%s <%s>", a.PersonalName, addr))
		} else {
			parts = append(parts, addr)
		}
	}
	return parts
}
