package validation

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/abdidvp/dqscore/internal/domain"
)

var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{0,14}$`)

var formatCheckers = map[domain.Format]func(string) bool{
	domain.FormatEmail: isEmail,
	domain.FormatPhone: isPhone,
	domain.FormatURL:   isURL,
	domain.FormatDate:  isDate,
}

func isEmail(s string) bool {
	at := strings.LastIndexByte(s, '@')
	if at <= 0 || strings.ContainsAny(s, " \t") {
		return false
	}
	host := s[at+1:]
	dot := strings.IndexByte(host, '.')
	return dot > 0 && dot < len(host)-1
}

// isPhone strips separators, keeping digits and '+', before matching
// E.164 shape.
func isPhone(s string) bool {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	return phonePattern.MatchString(b.String())
}

func isURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	return err == nil && u.Scheme != "" && u.Host != ""
}

func isDate(s string) bool {
	_, ok := parseTime(domain.String(s))
	return ok
}
