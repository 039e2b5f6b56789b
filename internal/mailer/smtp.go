package mailer

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	mail "gopkg.in/mail.v2"
)

type SMTPClient struct {
	dialer    *mail.Dialer
	fromEmail string
}

func NewSMTPClient(host string, port int, username, password, fromEmail string) (*SMTPClient, error) {
	if host == "" || fromEmail == "" {
		return nil, fmt.Errorf("smtp host and from email are required")
	}

	return &SMTPClient{
		dialer:    mail.NewDialer(host, port, username, password),
		fromEmail: fromEmail,
	}, nil
}

// Send renders the named template and delivers it. Templates define a
// "subject" and a "body" block. Returns the number of attempts used.
func (c *SMTPClient) Send(templateFile, username, email string, data any) (int, error) {
	tmpl, err := template.ParseFS(FS, "templates/"+templateFile)
	if err != nil {
		return -1, err
	}

	subject := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(subject, "subject", data); err != nil {
		return -1, err
	}

	body := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(body, "body", data); err != nil {
		return -1, err
	}

	msg := mail.NewMessage()
	msg.SetAddressHeader("From", c.fromEmail, FromName)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", subject.String())
	msg.SetBody("text/html", body.String())

	var lastErr error
	for i := 1; i <= maxRetries; i++ {
		if err := c.dialer.DialAndSend(msg); err != nil {
			lastErr = err
			time.Sleep(time.Second * time.Duration(i))
			continue
		}
		return i, nil
	}

	return maxRetries, fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
