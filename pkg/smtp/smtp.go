package smtp

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"github.com/thalyssonDEV/EventSync/pkg/logger"
)

// Client is a thin mail client. Sending is best-effort: failures are
// logged and never propagated to the caller.
type Client struct {
	dialer *gomail.Dialer
	logger *logger.Logger
	from   string
	domain string
}

func NewClient(dialer *gomail.Dialer, log *logger.Logger, from, domain string) *Client {
	return &Client{
		dialer: dialer,
		logger: log,
		from:   from,
		domain: domain,
	}
}

// Send delivers a plain-text email.
func (c *Client) Send(to, subject, body string) {
	msg := gomail.NewMessage()

	msg.SetHeader("Message-ID", generateMessageID(c.domain))
	msg.SetHeader("Date", time.Now().Format(time.RFC1123Z))
	msg.SetHeader("From", c.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := c.dialer.DialAndSend(msg); err != nil {
		c.logger.Errorf("failed to send email to %s: %v", to, err)
		return
	}

	c.logger.Debugf("email %q sent to %s", subject, to)
}

func generateMessageID(domain string) string {
	return fmt.Sprintf("<%s@%s>", uuid.New().String(), domain)
}
