package botcheck

import (
	"regexp"
	"strings"
)

// DefaultDisposableDomains are the domains rejected when no custom list is
// configured. Callers can extend or replace this via Config.
var DefaultDisposableDomains = []string{
	"mailinator.com",
	"guerrillamail.com",
	"10minutemail.com",
	"tempmail.com",
	"temp-mail.org",
	"yopmail.com",
	"trashmail.com",
	"sharklasers.com",
	"getnada.com",
	"dispostable.com",
	"maildrop.cc",
}

// DefaultSuspiciousPatterns flag names that look machine-generated or spammy.
var DefaultSuspiciousPatterns = []string{
	`^[a-z]{1,2}\d{5,}$`,
	`(?i)(viagra|cialis|casino|loan offer|seo service)`,
	`(.)\1{4,}`,
	`https?://`,
	`^[^aeiouAEIOU\s]{8,}$`,
}

type Config struct {
	DisposableDomains  []string
	SuspiciousPatterns []string
}

type Checker struct {
	domains  map[string]struct{}
	patterns []*regexp.Regexp
}

func New(cfg Config) (*Checker, error) {
	domains := cfg.DisposableDomains
	if domains == nil {
		domains = DefaultDisposableDomains
	}
	patterns := cfg.SuspiciousPatterns
	if patterns == nil {
		patterns = DefaultSuspiciousPatterns
	}

	c := &Checker{domains: make(map[string]struct{}, len(domains))}
	for _, d := range domains {
		c.domains[strings.ToLower(strings.TrimSpace(d))] = struct{}{}
	}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		c.patterns = append(c.patterns, re)
	}

	return c, nil
}

// IsDisposableEmail reports whether the email's domain is on the denylist.
func (c *Checker) IsDisposableEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	domain := strings.ToLower(strings.TrimSpace(email[at+1:]))
	_, found := c.domains[domain]
	return found
}

// IsSuspiciousName reports whether the name matches any configured pattern.
func (c *Checker) IsSuspiciousName(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	for _, re := range c.patterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}
