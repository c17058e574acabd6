package safety

import "regexp"

type redactionRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Order matters: e-mails can contain digit runs that look like phones.
var piiRedactionRules = []redactionRule{
	{
		pattern:     regexp.MustCompile(`(?i)[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`),
		replacement: `<email>`,
	},
	{
		pattern:     regexp.MustCompile(`\b\d{1,2}\.\d{1,2}\.\d{4}\b`),
		replacement: `<date>`,
	},
	{
		pattern:     regexp.MustCompile(`\+?\(?\d[\d\s\-()]{6,}\d`),
		replacement: `<phone>`,
	},
	{
		pattern:     regexp.MustCompile(`(?i)([a-z0-9_]*(?:token|secret|password|passwd|пароль)[a-z0-9_]*)\s*[=:]\s*([^\s"']+|"[^"]*"|'[^']*')`),
		replacement: `$1=<redacted>`,
	},
}

// RedactText scrubs e-mails, phone numbers, dates and password-like
// assignments from free-form text before it reaches a log.
func RedactText(input string) string {
	redacted := input
	for _, rule := range piiRedactionRules {
		redacted = rule.pattern.ReplaceAllString(redacted, rule.replacement)
	}
	return redacted
}
