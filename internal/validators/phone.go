package validators

import (
	"regexp"
	"strings"
)

var phoneRe = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// NormalizePhone strips formatting characters so the same number always
// stores identically (the per-organization uniqueness check depends on it).
func NormalizePhone(phone string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(phone) {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func IsValidPhone(phone string) bool {
	return phoneRe.MatchString(NormalizePhone(phone))
}
