package mailer

import "embed"

const (
	FromName   = "Paygate"
	maxRetries = 3

	SubscriptionConfirmTemplate = "subscription_confirm.tmpl"
	SubscriberWelcomeTemplate   = "subscriber_welcome.tmpl"
	NewsletterIssueTemplate     = "newsletter_issue.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile, username, email string, data any) (int, error)
}
