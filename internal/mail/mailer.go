package mail

import (
	"gopkg.in/gomail.v2"

	"aeropark/internal/config"
)

// Message is one outbound email. Attachment is a filesystem path and may
// be empty.
type Message struct {
	To         string
	Subject    string
	Body       string
	Attachment string
}

// Sender abstracts the SMTP transport so services and tests can swap it.
type Sender interface {
	Send(msg Message) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(env config.Env) *SMTPMailer {
	d := gomail.NewDialer(env.SMTPHost, env.SMTPPort, env.SMTPUser, env.SMTPPassword)
	return &SMTPMailer{dialer: d, from: env.EmailFrom}
}

func (m *SMTPMailer) Send(msg Message) error {
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Body)
	if msg.Attachment != "" {
		gm.Attach(msg.Attachment)
	}
	return m.dialer.DialAndSend(gm)
}
