package clients

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
	"github.com/gabriel-vasile/mimetype"
	"github.com/steven0413/BiblioteEmail/config"
)

// InboundMessage is one unread message pulled from the mailbox.
type InboundMessage struct {
	From      string
	Subject   string
	Body      string
	Date      time.Time
	MessageID string
}

// Mailbox reads unseen messages from an IMAP inbox. Each fetch opens a
// fresh connection so no IMAP session state is shared between runs.
type Mailbox struct {
	addr     string
	username string
	password string
	name     string
}

// NewMailbox builds an IMAP mailbox reader from the app configuration.
func NewMailbox(cfg config.Config) *Mailbox {
	return &Mailbox{
		addr:     fmt.Sprintf("%s:%d", cfg.Imap.Host, cfg.Imap.Port),
		username: cfg.Imap.Username,
		password: cfg.Imap.Password,
		name:     cfg.Imap.Mailbox,
	}
}

// FetchUnread returns all unseen messages and marks them seen so they are
// not handed out again on the next fetch.
func (m *Mailbox) FetchUnread() ([]InboundMessage, error) {
	c, err := client.DialTLS(m.addr, nil)
	if err != nil {
		return nil, fmt.Errorf("mailbox: dial: %w", err)
	}
	defer c.Logout()
	if err := c.Login(m.username, m.password); err != nil {
		return nil, fmt.Errorf("mailbox: login: %w", err)
	}
	if _, err := c.Select(m.name, false); err != nil {
		return nil, fmt.Errorf("mailbox: select %s: %w", m.name, err)
	}
	criteria := imap.NewSearchCriteria()
	criteria.WithoutFlags = []string{imap.SeenFlag}
	ids, err := c.Search(criteria)
	if err != nil {
		return nil, fmt.Errorf("mailbox: search: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	seqset := new(imap.SeqSet)
	seqset.AddNum(ids...)
	section := &imap.BodySectionName{}
	items := []imap.FetchItem{imap.FetchEnvelope, section.FetchItem()}
	messages := make(chan *imap.Message, len(ids))
	done := make(chan error, 1)
	go func() {
		done <- c.Fetch(seqset, items, messages)
	}()
	var inbound []InboundMessage
	for msg := range messages {
		inbound = append(inbound, decodeMessage(msg, section))
	}
	if err := <-done; err != nil {
		return nil, fmt.Errorf("mailbox: fetch: %w", err)
	}
	// Mark everything we fetched as seen. A failure here means messages
	// may be handed out again, which the caller deduplicates.
	op := imap.FormatFlagsOp(imap.AddFlags, true)
	_ = c.Store(seqset, op, []interface{}{imap.SeenFlag}, nil)
	return inbound, nil
}

// Check verifies that the mailbox can be reached and opened.
func (m *Mailbox) Check() error {
	c, err := client.DialTLS(m.addr, nil)
	if err != nil {
		return err
	}
	defer c.Logout()
	if err := c.Login(m.username, m.password); err != nil {
		return err
	}
	_, err = c.Select(m.name, true)
	return err
}

func decodeMessage(msg *imap.Message, section *imap.BodySectionName) InboundMessage {
	inbound := InboundMessage{Body: ""}
	if msg.Envelope != nil {
		inbound.Subject = msg.Envelope.Subject
		inbound.Date = msg.Envelope.Date
		inbound.MessageID = msg.Envelope.MessageId
		if len(msg.Envelope.From) > 0 {
			inbound.From = msg.Envelope.From[0].Address()
		}
	}
	if r := msg.GetBody(section); r != nil {
		inbound.Body = extractBody(r)
	}
	return inbound
}

var htmlTagRX = regexp.MustCompile(`<[^<>]+?>`)

// extractBody pulls a plain-text body out of a message, preferring the
// text/plain part and falling back to tag-stripped HTML.
func extractBody(r io.Reader) string {
	mr, err := mail.CreateReader(r)
	if err != nil {
		return ""
	}
	var plain, html string
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}
		header, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		contentType, _, _ := header.ContentType()
		body, _ := io.ReadAll(part.Body)
		switch {
		case contentType == "text/plain" && plain == "":
			plain = string(body)
		case contentType == "text/html" && html == "":
			html = string(body)
		case plain == "" && html == "":
			// Untyped part: sniff it so HTML mail from clients that omit
			// the content type still gets its tags stripped.
			if mimetype.Detect(body).Is("text/html") {
				html = string(body)
			} else {
				plain = string(body)
			}
		}
	}
	if plain != "" {
		return strings.TrimSpace(plain)
	}
	if html != "" {
		return strings.TrimSpace(htmlTagRX.ReplaceAllString(html, ""))
	}
	return ""
}
